// Package expand turns classified owner rows into one record per plot.
package expand

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/normalize"
)

// plotSeparators are replaced by ',' before splitting a plot cell.
// Space is included, so identifiers containing spaces are split too.
var plotSeparators = strings.NewReplacer(";", ",", "\n", ",", " ", ",")

// Stats counts what happened while expanding a table.
type Stats struct {
	RowsRead       int `json:"rowsRead"`
	RowsSkipped    int `json:"rowsSkipped"`
	RecordsEmitted int `json:"recordsEmitted"`
}

// Expander produces NormalizedRecords from a classified table.
type Expander struct {
	cleaner *normalize.PlotCleaner
	logger  zerolog.Logger
}

// Option configures an Expander.
type Option func(*Expander)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Expander) { e.logger = l }
}

// WithPlotCleaner replaces the default plot cleaner.
func WithPlotCleaner(c *normalize.PlotCleaner) Option {
	return func(e *Expander) { e.cleaner = c }
}

// New creates an Expander.
func New(opts ...Option) *Expander {
	e := &Expander{
		cleaner: normalize.NewPlotCleaner(normalize.DefaultPlotPrefix),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand expands t with the default settings.
func Expand(t *models.RawTable, roles models.RoleAssignment) []models.NormalizedRecord {
	records, _ := New().Expand(t, roles)
	return records
}

// Expand walks the rows of t in order and emits one record per plot token.
// Rows without a usable plot are skipped.
func (e *Expander) Expand(t *models.RawTable, roles models.RoleAssignment) ([]models.NormalizedRecord, Stats) {
	var (
		records []models.NormalizedRecord
		stats   Stats
	)

	for row := 0; row < t.NumRows(); row++ {
		stats.RowsRead++

		plots := e.SplitPlots(t.Cell(row, roles.Plot).String())
		if len(plots) == 0 {
			stats.RowsSkipped++
			e.logger.Debug().Int("row", row).Msg("row has no plot, skipped")
			continue
		}

		email := field(t, row, roles.Email)
		fullName := field(t, row, roles.Name)
		phone := normalize.FormatPhone(field(t, row, roles.Phone))

		for _, plot := range plots {
			records = append(records, models.NormalizedRecord{
				Email:      email,
				FullName:   fullName,
				PlotNumber: plot,
				Phone:      phone,
			})
		}
		stats.RecordsEmitted += len(plots)
	}

	e.logger.Info().
		Int("rows", stats.RowsRead).
		Int("skipped", stats.RowsSkipped).
		Int("records", stats.RecordsEmitted).
		Msg("rows expanded")

	return records, stats
}

// SplitPlots tokenizes a plot cell and cleans each token, dropping tokens
// that clean to nothing. Token order is preserved.
func (e *Expander) SplitPlots(raw string) []string {
	if raw == "" {
		return nil
	}
	var plots []string
	for _, token := range strings.Split(plotSeparators.Replace(raw), ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if plot := e.cleaner.Clean(token); plot != "" {
			plots = append(plots, plot)
		}
	}
	return plots
}

// field reads a trimmed cell for a role column; unresolved roles yield "".
func field(t *models.RawTable, row, col int) string {
	if col == models.NoColumn {
		return ""
	}
	return t.Cell(row, col).Trimmed()
}
