package figure

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ecodyn/collapseviz/internal/constants"
	"github.com/ecodyn/collapseviz/internal/fit"
)

// PanelSize returns the pixel size each panel must be rendered at so that
// three stacked panels plus the legend strip fill the fixed figure geometry.
func PanelSize() (width, height int) {
	stackH := int(math.Round(float64(constants.FigureHeightPx) / (1 + constants.LegendFraction)))
	return constants.FigureWidthPx, stackH / 3
}

// Compose stacks the panels vertically, draws the shared phase legend in the
// strip below them, and writes the figure to outPath. An unwritable path is
// fatal to the run; no partial figure is left behind on encode failure.
func Compose(panels []*Panel, outPath string) error {
	if len(panels) == 0 {
		return fmt.Errorf("figure: no panels to compose")
	}

	canvas := image.NewRGBA(image.Rect(0, 0, constants.FigureWidthPx, constants.FigureHeightPx))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	y := 0
	for _, p := range panels {
		b := p.Image.Bounds()
		draw.Draw(canvas, image.Rect(0, y, b.Dx(), y+b.Dy()), p.Image, b.Min, draw.Src)
		y += b.Dy()
	}

	drawLegendStrip(canvas, y)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("figure: creating %s: %w", outPath, err)
	}
	if err := png.Encode(f, canvas); err != nil {
		f.Close()
		os.Remove(outPath)
		return fmt.Errorf("figure: encoding %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("figure: closing %s: %w", outPath, err)
	}
	return nil
}

// legendEntry pairs a phase label with its line style.
type legendEntry struct {
	label  string
	dashed bool
}

// drawLegendStrip draws the shared Pre/Post line-style legend centered in the
// strip between top and the canvas bottom.
func drawLegendStrip(canvas *image.RGBA, top int) {
	entries := []legendEntry{
		{label: fit.PhasePre.String(), dashed: false},
		{label: fit.PhasePost.String(), dashed: true},
	}

	const (
		sampleW   = 46
		sampleH   = 3
		labelGap  = 8
		entryGap  = 36
		fontW     = 7 // basicfont.Face7x13 advance
		fontH     = 13
		dashLen   = 8
		dashSpace = 5
	)

	totalW := 0
	for i, e := range entries {
		totalW += sampleW + labelGap + len(e.label)*fontW
		if i < len(entries)-1 {
			totalW += entryGap
		}
	}

	x := (canvas.Bounds().Dx() - totalW) / 2
	midY := (top + canvas.Bounds().Max.Y) / 2
	lineCol := color.RGBA{R: trendColor.R, G: trendColor.G, B: trendColor.B, A: 255}

	for _, e := range entries {
		if e.dashed {
			for sx := x; sx < x+sampleW; sx += dashLen + dashSpace {
				end := sx + dashLen
				if end > x+sampleW {
					end = x + sampleW
				}
				draw.Draw(canvas, image.Rect(sx, midY-sampleH/2, end, midY+sampleH/2+1),
					&image.Uniform{lineCol}, image.Point{}, draw.Src)
			}
		} else {
			draw.Draw(canvas, image.Rect(x, midY-sampleH/2, x+sampleW, midY+sampleH/2+1),
				&image.Uniform{lineCol}, image.Point{}, draw.Src)
		}
		x += sampleW + labelGap

		d := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(lineCol),
			Face: basicfont.Face7x13,
			Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(midY + fontH/2 - 2)},
		}
		d.DrawString(e.label)
		x += len(e.label)*fontW + entryGap
	}
}
