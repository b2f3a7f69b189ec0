package source

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

// buildTable turns a cell grid into a RawTable. The first grid row becomes
// the header; blank data rows are dropped and text is NFC-normalized.
func buildTable(grid [][]models.Cell, rng *CellRange) *models.RawTable {
	if rng != nil {
		grid = rng.crop(grid)
	}
	if len(grid) == 0 {
		return models.NewRawTable(nil, nil)
	}

	width := 0
	for _, row := range grid {
		if n := rowWidth(row); n > width {
			width = n
		}
	}

	header := make([]string, width)
	for i := range header {
		if i < len(grid[0]) && !grid[0][i].IsMissing() {
			header[i] = norm.NFC.String(grid[0][i].Trimmed())
		}
		if header[i] == "" {
			header[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}

	rows := make([][]models.Cell, 0, len(grid)-1)
	for _, row := range grid[1:] {
		if rowWidth(row) == 0 {
			continue
		}
		cells := make([]models.Cell, len(row))
		for i, c := range row {
			if c.Kind == models.CellText {
				c.Text = norm.NFC.String(c.Text)
			}
			cells[i] = c
		}
		rows = append(rows, cells)
	}

	return models.NewRawTable(header, rows)
}

// rowWidth returns the position after the last non-missing cell.
func rowWidth(row []models.Cell) int {
	for i := len(row) - 1; i >= 0; i-- {
		if !row[i].IsMissing() {
			return i + 1
		}
	}
	return 0
}
