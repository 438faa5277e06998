package figure

import (
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
)

// bandSeries fills the area between two y-curves sharing one x sequence.
// go-chart's built-in series fill only shades down to the zero line, which
// cannot express a quantile ribbon or a full-height region marker, so this
// implements chart.Series directly against the renderer.
type bandSeries struct {
	Name    string
	Style   chart.Style
	XValues []float64
	Upper   []float64
	Lower   []float64
}

func (bs bandSeries) GetName() string { return bs.Name }

func (bs bandSeries) GetStyle() chart.Style { return bs.Style }

func (bs bandSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

func (bs bandSeries) Validate() error {
	if len(bs.XValues) == 0 {
		return fmt.Errorf("band series %q has no values", bs.Name)
	}
	if len(bs.Upper) != len(bs.XValues) || len(bs.Lower) != len(bs.XValues) {
		return fmt.Errorf("band series %q length mismatch: x=%d upper=%d lower=%d",
			bs.Name, len(bs.XValues), len(bs.Upper), len(bs.Lower))
	}
	return nil
}

// Render traces the upper edge left to right, the lower edge right to left,
// and fills the closed path.
func (bs bandSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, s chart.Style) {
	if len(bs.XValues) == 0 {
		return
	}
	style := bs.Style.InheritFrom(s)

	cb := canvasBox.Bottom
	cl := canvasBox.Left

	r.SetFillColor(style.FillColor)
	r.MoveTo(cl+xrange.Translate(bs.XValues[0]), cb-yrange.Translate(bs.Upper[0]))
	for i := 1; i < len(bs.XValues); i++ {
		r.LineTo(cl+xrange.Translate(bs.XValues[i]), cb-yrange.Translate(bs.Upper[i]))
	}
	for i := len(bs.XValues) - 1; i >= 0; i-- {
		r.LineTo(cl+xrange.Translate(bs.XValues[i]), cb-yrange.Translate(bs.Lower[i]))
	}
	r.Close()
	r.Fill()
}
