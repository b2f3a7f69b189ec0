// Package source loads owner exports into a RawTable.
package source

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Strategy names a table reader.
type Strategy string

const (
	// StrategyAuto tries xls, xlsx and csv in that order.
	StrategyAuto Strategy = "auto"
	// StrategyXLS reads legacy BIFF8 workbooks.
	StrategyXLS Strategy = "xls"
	// StrategyXLSX reads Office Open XML workbooks.
	StrategyXLSX Strategy = "xlsx"
	// StrategyCSV reads delimited text.
	StrategyCSV Strategy = "csv"
)

// DefaultEncoding is the text encoding assumed for delimited files.
const DefaultEncoding = "utf-8"

// Options configures loading.
type Options struct {
	// Strategy forces a single reader. StrategyAuto or "" runs the
	// fallback chain.
	Strategy Strategy
	// Sheet selects a worksheet by name. Empty means the first sheet.
	Sheet string
	// Range restricts workbook cells to an A1:D10 style range.
	Range string
	// Encoding is a WHATWG encoding label for delimited files.
	Encoding string
	// Delimiter separates fields in delimited files.
	Delimiter rune
	// Logger receives load progress. The zero value discards output.
	Logger zerolog.Logger
}

// DefaultOptions returns default load options.
func DefaultOptions() Options {
	return Options{
		Strategy:  StrategyAuto,
		Encoding:  DefaultEncoding,
		Delimiter: ',',
		Logger:    zerolog.Nop(),
	}
}

// ParseStrategy converts s to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case "", StrategyAuto:
		return StrategyAuto, nil
	case StrategyXLS, StrategyXLSX, StrategyCSV:
		return st, nil
	default:
		return "", fmt.Errorf("invalid strategy: %s (must be auto, xls, xlsx, or csv)", s)
	}
}

// Chain returns the strategies to attempt, in order.
func (o Options) Chain() []Strategy {
	switch o.Strategy {
	case "", StrategyAuto:
		return []Strategy{StrategyXLS, StrategyXLSX, StrategyCSV}
	default:
		return []Strategy{o.Strategy}
	}
}

func (o Options) encoding() string {
	if o.Encoding == "" {
		return DefaultEncoding
	}
	return o.Encoding
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}
