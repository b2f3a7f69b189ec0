package plotimport

import (
	"github.com/ukaji3/plotimport-go/pkg/plotimport/classify"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/expand"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/normalize"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/report"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/source"
)

// ErrUnreadableSource is returned when no load strategy can parse the input.
var ErrUnreadableSource = source.ErrUnreadableSource

// Result is the outcome of processing one table.
type Result struct {
	Table          *models.RawTable
	Classification classify.Result
	Records        []models.NormalizedRecord
	Stats          expand.Stats
	Summary        models.Summary
}

// Process loads the file at path and converts it to records.
func Process(path string, opts Options) (*Result, error) {
	log := opts.Logger
	opts.Source.Logger = log

	table, err := source.Load(path, opts.Source)
	if err != nil {
		return nil, err
	}

	return ProcessTable(table, opts), nil
}

// ProcessTable classifies and expands an already loaded table.
func ProcessTable(table *models.RawTable, opts Options) *Result {
	log := opts.Logger

	classification := classify.New(opts.Classify, classify.WithLogger(log)).Classify(table)
	for _, d := range classification.Decisions {
		log.Debug().
			Int("column", d.Column).
			Str("name", d.Name).
			Str("role", string(d.Role)).
			Str("source", d.Source).
			Strs("samples", d.Samples).
			Msg("column decision")
	}

	expander := expand.New(
		expand.WithLogger(log),
		expand.WithPlotCleaner(normalize.NewPlotCleaner(opts.plotPrefix())),
	)
	records, stats := expander.Expand(table, classification.Assignment)

	return &Result{
		Table:          table,
		Classification: classification,
		Records:        records,
		Stats:          stats,
		Summary:        report.Summarize(records, opts.Report),
	}
}
