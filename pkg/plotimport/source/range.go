package source

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

// CellRange represents cell coordinate bounds (1-based, inclusive).
type CellRange struct {
	R1 int
	C1 int
	R2 int
	C2 int
}

// ParseRange parses a range string like A1:E200, $A$1:$E$200 or
// 'Sheet 1'!A1:E200. A sheet prefix is ignored; use Options.Sheet.
func ParseRange(ref string) (*CellRange, error) {
	s := strings.TrimSpace(ref)

	// Split by ! to drop the sheet name
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		s = s[idx+1:]
	}

	// Remove $ signs
	s = strings.ReplaceAll(s, "$", "")

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid range %q: expected START:END", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid range %q: %w", ref, err)
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid range %q: %w", ref, err)
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return &CellRange{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, nil
}

// crop returns the part of grid inside the range.
func (r *CellRange) crop(grid [][]models.Cell) [][]models.Cell {
	var out [][]models.Cell
	for rowIdx := r.R1 - 1; rowIdx < r.R2 && rowIdx < len(grid); rowIdx++ {
		row := grid[rowIdx]
		var cells []models.Cell
		for colIdx := r.C1 - 1; colIdx < r.C2 && colIdx < len(row); colIdx++ {
			cells = append(cells, row[colIdx])
		}
		out = append(out, cells)
	}
	return out
}
