package source

import (
	"fmt"
	"os"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

// reader parses one file format into a cell grid.
type reader func(path string, opts Options) (grid [][]models.Cell, sheet string, err error)

var readers = map[Strategy]reader{
	StrategyXLS:  readXLS,
	StrategyXLSX: readXLSX,
	StrategyCSV:  readCSV,
}

// Load reads path into a RawTable, trying each strategy of opts.Chain()
// until one parses. The first row of the source is the header row.
// When every strategy fails the returned error is a *LoadError matching
// ErrUnreadableSource.
func Load(path string, opts Options) (*models.RawTable, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	var rng *CellRange
	if opts.Range != "" {
		r, err := ParseRange(opts.Range)
		if err != nil {
			return nil, err
		}
		rng = r
	}

	log := opts.Logger
	var attempts []*AttemptError
	for _, strategy := range opts.Chain() {
		read, ok := readers[strategy]
		if !ok {
			return nil, fmt.Errorf("invalid strategy: %s", strategy)
		}

		grid, sheet, err := read(path, opts)
		if err != nil {
			log.Debug().Str("strategy", string(strategy)).Err(err).Msg("load strategy failed")
			attempts = append(attempts, &AttemptError{Strategy: strategy, Err: err})
			continue
		}

		table := buildTable(grid, rng)
		table.Source = models.SourceInfo{Path: path, Strategy: string(strategy), Sheet: sheet}
		log.Info().
			Str("strategy", string(strategy)).
			Str("sheet", sheet).
			Int("rows", table.NumRows()).
			Int("columns", table.NumColumns()).
			Strs("column_names", table.ColumnNames()).
			Msg("source loaded")
		return table, nil
	}

	return nil, NewLoadError(path, attempts)
}
