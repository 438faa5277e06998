// Package figure renders one annotated panel per scenario and composes the
// three panels plus a shared phase legend into the output figure.
package figure

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ecodyn/collapseviz/internal/constants"
	"github.com/ecodyn/collapseviz/internal/fit"
	"github.com/ecodyn/collapseviz/internal/simulate"
)

// Neutral colors shared by every panel.
var (
	trendColor     = drawing.Color{R: 60, G: 60, B: 60, A: 255}
	referenceColor = drawing.Color{R: 140, G: 140, B: 140, A: 255}
	regionColor    = drawing.Color{R: 120, G: 120, B: 120, A: 30}
)

// Dash patterns mapping line style to meaning: solid Pre trend, dashed Post
// trend and zero line, dotted threshold line.
var (
	dashedPattern = []float64{6, 4}
	dottedPattern = []float64{2, 3}
)

// Panel is one rendered scenario, consumed once by Compose.
type Panel struct {
	Title string
	Image image.Image
}

// PanelOptions configure a single panel render.
type PanelOptions struct {
	Title string
	Color drawing.Color

	// XLabel is drawn under the x-axis when non-empty; the composer labels
	// only the bottom panel.
	XLabel string

	Width  int
	Height int

	// Legend attaches a per-panel phase legend. The composer leaves it off
	// and draws one shared legend instead.
	Legend bool
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    3,
		DotColor:    col,
	}
}

// RenderPanel fits the ribbon and trend for one dataset and renders the
// panel: post-threshold region marker, pre-threshold ribbon, observations,
// two-phase trend, threshold and zero reference lines, fixed y-range.
func RenderPanel(ds simulate.Dataset, threshold float64, opts PanelOptions) (*Panel, error) {
	if len(ds) == 0 {
		return nil, fmt.Errorf("figure: empty dataset for panel %q", opts.Title)
	}

	band, err := fit.FitRibbon(ds, constants.QuantileLow, constants.QuantileHigh)
	if err != nil {
		return nil, fmt.Errorf("figure: panel %q ribbon: %w", opts.Title, err)
	}
	trend, err := fit.FitTrend(ds, threshold)
	if err != nil {
		return nil, fmt.Errorf("figure: panel %q trend: %w", opts.Title, err)
	}

	xs := ds.Xs()
	minX, maxX := xs[0], xs[len(xs)-1]

	// Back-to-front: region, ribbon, points, trend, reference lines.
	series := []chart.Series{
		regionSeries(threshold, maxX),
		ribbonSeries(band, threshold, opts.Color),
		chart.ContinuousSeries{
			XValues: xs,
			YValues: ds.Ys(),
			Style:   pointStyle(opts.Color.WithAlpha(110)),
		},
	}
	series = append(series, trendSeries(trend)...)
	series = append(series,
		chart.ContinuousSeries{
			XValues: []float64{threshold, threshold},
			YValues: []float64{constants.YAxisMin, constants.YAxisMax},
			Style: chart.Style{
				StrokeColor:     referenceColor,
				StrokeWidth:     1.5,
				StrokeDashArray: dottedPattern,
			},
		},
		chart.ContinuousSeries{
			XValues: []float64{minX, maxX},
			YValues: []float64{0, 0},
			Style: chart.Style{
				StrokeColor:     referenceColor,
				StrokeWidth:     1.2,
				StrokeDashArray: dashedPattern,
			},
		},
	)

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           opts.XLabel,
			Range:          &chart.ContinuousRange{Min: minX, Max: maxX},
			ValueFormatter: func(v interface{}) string { return chart.FloatValueFormatterWithFormat(v, "%.1f") },
		},
		YAxis: chart.YAxis{
			Name:           "Organism response",
			Range:          &chart.ContinuousRange{Min: constants.YAxisMin, Max: constants.YAxisMax},
			ValueFormatter: func(v interface{}) string { return chart.FloatValueFormatterWithFormat(v, "%.0f") },
		},
		Series: series,
	}
	if opts.Legend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("figure: rendering panel %q: %w", opts.Title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("figure: decoding panel %q: %w", opts.Title, err)
	}

	return &Panel{Title: opts.Title, Image: img}, nil
}

// regionSeries shades the full panel height over [threshold, maxX].
func regionSeries(threshold, maxX float64) chart.Series {
	return bandSeries{
		Style:   chart.Style{FillColor: regionColor},
		XValues: []float64{threshold, maxX},
		Upper:   []float64{constants.YAxisMax, constants.YAxisMax},
		Lower:   []float64{constants.YAxisMin, constants.YAxisMin},
	}
}

// ribbonSeries keeps only the pre-threshold part of the band for display.
// The post-threshold part was computed and is discarded here.
func ribbonSeries(band []fit.BandPoint, threshold float64, col drawing.Color) chart.Series {
	var xs, upper, lower []float64
	for _, p := range band {
		if p.X > threshold {
			continue
		}
		xs = append(xs, p.X)
		upper = append(upper, p.YMax)
		lower = append(lower, p.YMin)
	}
	return bandSeries{
		Style:   chart.Style{FillColor: col.WithAlpha(60)},
		XValues: xs,
		Upper:   upper,
		Lower:   lower,
	}
}

// trendSeries splits the fitted curve into one named series per phase, solid
// for Pre and dashed for Post. The names feed the phase legend.
func trendSeries(trend []fit.TrendPoint) []chart.Series {
	byPhase := map[fit.Phase][2][]float64{}
	for _, p := range trend {
		entry := byPhase[p.Phase]
		entry[0] = append(entry[0], p.X)
		entry[1] = append(entry[1], p.Y)
		byPhase[p.Phase] = entry
	}

	var out []chart.Series
	for _, phase := range []fit.Phase{fit.PhasePre, fit.PhasePost} {
		entry, ok := byPhase[phase]
		if !ok {
			continue
		}
		style := chart.Style{StrokeColor: trendColor, StrokeWidth: 2.5}
		if phase == fit.PhasePost {
			style.StrokeDashArray = dashedPattern
		}
		out = append(out, chart.ContinuousSeries{
			Name:    phase.String(),
			XValues: entry[0],
			YValues: entry[1],
			Style:   style,
		})
	}
	return out
}
