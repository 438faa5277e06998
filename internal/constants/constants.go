// Package constants defines application-wide constants and version information.
package constants

import "runtime"

// Version holds the application version information
const Version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

// Simulation parameters. These are fixed at compile time: the run takes no
// flags and no environment, and reproducibility depends on every run using
// the same configuration.
const (
	// PointCount is the number of observations per scenario dataset.
	PointCount = 300

	// DomainMin and DomainMax bound the thermal variability axis.
	DomainMin = 0.5
	DomainMax = 3.0

	// ThresholdPoint is where the response location collapses.
	ThresholdPoint = 2.5

	// Seed is the process-wide random seed. All three scenarios draw from
	// one source seeded with this value, in scenario order.
	Seed = 42
)

// Fitting parameters.
const (
	// PolyDegree is the degree of both the trend and quantile polynomials.
	PolyDegree = 2

	// TrendPointsPerPhase is the evaluation resolution of each trend phase.
	TrendPointsPerPhase = 100

	// RibbonPoints is the evaluation resolution of the quantile ribbon.
	RibbonPoints = 300

	// QuantileLow and QuantileHigh bound the uncertainty ribbon.
	QuantileLow  = 0.05
	QuantileHigh = 0.95
)

// Figure geometry. 6in x 8.5in at 300 dpi.
const (
	FigureWidthPx  = 1800
	FigureHeightPx = 2550

	// LegendFraction is the shared legend strip's share of the panel stack
	// height.
	LegendFraction = 0.07

	// YAxisMin and YAxisMax fix the response axis on every panel so the
	// three scenarios are visually comparable.
	YAxisMin = -45.0
	YAxisMax = 45.0

	// OutputFile is the fixed path of the rendered figure.
	OutputFile = "thermal_collapse.png"
)
