package classify

import (
	"fmt"
	"strings"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

// FallbackLayout is the canonical column layout assumed when the
// heuristics leave a role unresolved: plot, ?, name, email, phone.
type FallbackLayout struct {
	// EmailProbeColumn is checked first for an '@' in its first cell.
	EmailProbeColumn int
	// EmailColumn is used when the probe fails.
	EmailColumn int
	// NameColumn is the assumed name column.
	NameColumn int
	// PhoneColumn is the assumed phone column.
	PhoneColumn int
}

// DefaultFallbackLayout returns the layout of the usual owner export.
func DefaultFallbackLayout() FallbackLayout {
	return FallbackLayout{
		EmailProbeColumn: 3,
		EmailColumn:      2,
		NameColumn:       2,
		PhoneColumn:      4,
	}
}

// Validate reports fallback positions that cannot name a contact column.
// Column 0 holds plots.
func (l FallbackLayout) Validate() error {
	cols := []struct {
		name string
		col  int
	}{
		{"email_probe_column", l.EmailProbeColumn},
		{"email_column", l.EmailColumn},
		{"name_column", l.NameColumn},
		{"phone_column", l.PhoneColumn},
	}
	for _, c := range cols {
		if c.col <= models.PlotColumn {
			return fmt.Errorf("invalid fallback %s: %d (must be greater than %d)", c.name, c.col, models.PlotColumn)
		}
	}
	return nil
}

// fits reports whether col is a contact column of a table with width columns.
func fits(col, width int) bool {
	return col > models.PlotColumn && col < width
}

// emailColumn picks the fallback email column for a table with width
// columns whose probe column starts with firstProbe.
func (l FallbackLayout) emailColumn(width int, firstProbe string) (int, bool) {
	if !fits(l.EmailProbeColumn, width) {
		return 0, false
	}
	if strings.Contains(firstProbe, "@") {
		return l.EmailProbeColumn, true
	}
	if fits(l.EmailColumn, width) {
		return l.EmailColumn, true
	}
	return 0, false
}

func (l FallbackLayout) nameColumn(width int) (int, bool) {
	return l.NameColumn, fits(l.NameColumn, width)
}

func (l FallbackLayout) phoneColumn(width int) (int, bool) {
	return l.PhoneColumn, fits(l.PhoneColumn, width)
}
