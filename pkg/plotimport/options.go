// Package plotimport converts owner exports into flat (owner, plot) records.
package plotimport

import (
	"github.com/rs/zerolog"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/classify"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/normalize"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/report"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/source"
)

// Options configures Process.
type Options struct {
	// Source controls how the input file is read.
	Source source.Options
	// Classify controls column role inference.
	Classify classify.Config
	// PlotPrefix is stripped from plot identifiers. If nil, defaults to
	// normalize.DefaultPlotPrefix.
	PlotPrefix *string
	// Report controls the summary attached to the result.
	Report report.Options
	// Logger receives pipeline progress.
	Logger zerolog.Logger
}

// DefaultOptions returns default pipeline options.
func DefaultOptions() Options {
	return Options{
		Source:   source.DefaultOptions(),
		Classify: classify.DefaultConfig(),
		Report:   report.DefaultOptions(),
		Logger:   zerolog.Nop(),
	}
}

// plotPrefix returns the marker stripped from plot identifiers.
func (o Options) plotPrefix() string {
	if o.PlotPrefix != nil {
		return *o.PlotPrefix
	}
	return normalize.DefaultPlotPrefix
}
