// collapseviz renders the threshold-collapse comparison figure: three
// simulated stress-response scenarios (symmetric, left-skewed, right-skewed),
// each with a fitted piecewise trend and a quantile ribbon, stacked into one
// PNG with a shared phase legend.
//
// The run takes no flags and no environment; every parameter is a
// compile-time constant so a given binary always produces the same figure.
package main

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/exp/rand"

	"github.com/ecodyn/collapseviz/internal/constants"
	"github.com/ecodyn/collapseviz/internal/figure"
	"github.com/ecodyn/collapseviz/internal/log"
	"github.com/ecodyn/collapseviz/internal/simulate"
)

// scenario pairs one hypothesis' parameters with its panel color.
type scenario struct {
	params simulate.Params
	color  drawing.Color
}

// Scenario order is the entropy-consumption order and must not change:
// reproducibility of the figure depends on it.
var scenarios = []scenario{
	{
		params: simulate.Params{Name: "Symmetric response", Skew: 0, CenterShift: 0, Drop: -5},
		color:  drawing.Color{R: 27, G: 158, B: 119, A: 255},
	},
	{
		params: simulate.Params{Name: "Left-skewed response", Skew: -6, CenterShift: 2, Drop: -5},
		color:  drawing.Color{R: 217, G: 95, B: 2, A: 255},
	},
	{
		params: simulate.Params{Name: "Right-skewed response", Skew: 6, CenterShift: -2, Drop: -5},
		color:  drawing.Color{R: 117, G: 112, B: 179, A: 255},
	},
}

func main() {
	if err := log.Init(false); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Infof("collapseviz %s", constants.Version)

	rng := rand.New(rand.NewSource(constants.Seed))
	xs := simulate.Linspace(constants.DomainMin, constants.DomainMax, constants.PointCount)
	width, height := figure.PanelSize()

	panels := make([]*figure.Panel, 0, len(scenarios))
	for i, sc := range scenarios {
		if err := sc.params.Validate(constants.DomainMin, constants.DomainMax, constants.ThresholdPoint); err != nil {
			log.Fatalf("invalid scenario configuration: %v", err)
		}

		ds, err := simulate.Generate(rng, sc.params, xs, constants.ThresholdPoint)
		if err != nil {
			log.Fatalf("generating %q: %v", sc.params.Name, err)
		}

		opts := figure.PanelOptions{
			Title:  sc.params.Name,
			Color:  sc.color,
			Width:  width,
			Height: height,
		}
		if i == len(scenarios)-1 {
			opts.XLabel = "Thermal variability"
		}

		panel, err := figure.RenderPanel(ds, constants.ThresholdPoint, opts)
		if err != nil {
			log.Fatalf("rendering %q: %v", sc.params.Name, err)
		}
		panels = append(panels, panel)
		log.Infof("rendered panel %q (%d observations)", sc.params.Name, len(ds))
	}

	if err := figure.Compose(panels, constants.OutputFile); err != nil {
		log.Fatalf("composing figure: %v", err)
	}
	log.Infof("wrote %s (%dx%d)", constants.OutputFile, constants.FigureWidthPx, constants.FigureHeightPx)
}
