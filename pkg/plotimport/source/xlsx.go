package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

// readXLSX reads a sheet of an Office Open XML workbook.
func readXLSX(path string, opts Options) ([][]models.Cell, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	sheetName, err := pickSheet(f.GetSheetList(), opts.Sheet)
	if err != nil {
		return nil, "", err
	}

	grid, err := ExtractCells(f, sheetName)
	if err != nil {
		return nil, "", err
	}
	return grid, sheetName, nil
}

// ExtractCells reads every row of a sheet as typed cells.
// Raw values are used so that numbers are not affected by display formats.
func ExtractCells(f *excelize.File, sheetName string) ([][]models.Cell, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := make([][]models.Cell, len(rows))
	for rowIdx, row := range rows {
		cells := make([]models.Cell, len(row))
		for colIdx, cellValue := range row {
			if cellValue == "" {
				cells[colIdx] = models.Missing
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cells[colIdx] = parseValue(cellValue, cellType)
		}
		grid[rowIdx] = cells
	}

	return grid, nil
}

// parseValue types a raw cell value.
// Numeric cells are rendered in their shortest decimal form.
func parseValue(s string, cellType excelize.CellType) models.Cell {
	switch cellType {
	case excelize.CellTypeBool:
		if s == "1" || strings.EqualFold(s, "true") {
			return models.Cell{Kind: models.CellBool, Text: "TRUE"}
		}
		return models.Cell{Kind: models.CellBool, Text: "FALSE"}
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		// Untyped cells are numbers in OOXML; fall back to text if not.
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return numberCell(v)
		}
	}
	return models.TextCell(s)
}

func numberCell(v float64) models.Cell {
	return models.Cell{Kind: models.CellNumber, Text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// pickSheet returns want if present, or the first sheet when want is empty.
func pickSheet(sheets []string, want string) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
	}
	if want == "" {
		return sheets[0], nil
	}
	for _, name := range sheets {
		if name == want {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSheetNotFound, want)
}
