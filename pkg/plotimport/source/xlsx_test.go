package source

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

// writeWorkbook saves a workbook built by fill into a temp directory.
func writeWorkbook(t *testing.T, fill func(f *excelize.File, sheet string)) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	fill(f, "Sheet1")

	path := filepath.Join(t.TempDir(), "owners.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestExtractCells(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File, sheet string) {
		f.SetCellValue(sheet, "A1", "Участок")
		f.SetCellValue(sheet, "B1", "Телефон")
		f.SetCellValue(sheet, "A2", "АП-1")
		f.SetCellValue(sheet, "B2", 79991112233)
		f.SetCellValue(sheet, "C2", 12.5)
		f.SetCellValue(sheet, "D2", true)
		f.SetCellStr(sheet, "E2", "007")
	})

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f.Close()

	grid, err := ExtractCells(f, "Sheet1")
	if err != nil {
		t.Fatalf("ExtractCells failed: %v", err)
	}

	if len(grid) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(grid))
	}
	if grid[0][0].Text != "Участок" {
		t.Errorf("Expected 'Участок', got %q", grid[0][0].Text)
	}

	row := grid[1]
	tests := []struct {
		col  int
		kind models.CellKind
		text string
	}{
		{0, models.CellText, "АП-1"},
		{1, models.CellNumber, "79991112233"},
		{2, models.CellNumber, "12.5"},
		{3, models.CellBool, "TRUE"},
		{4, models.CellText, "007"},
	}
	for _, tt := range tests {
		if row[tt.col].Kind != tt.kind || row[tt.col].Text != tt.text {
			t.Errorf("cell %d = %+v, expected kind %d text %q", tt.col, row[tt.col], tt.kind, tt.text)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		cellType excelize.CellType
		expected models.Cell
	}{
		{"123", excelize.CellTypeUnset, models.Cell{Kind: models.CellNumber, Text: "123"}},
		{"123.45", excelize.CellTypeNumber, models.Cell{Kind: models.CellNumber, Text: "123.45"}},
		{"7.9991112233E10", excelize.CellTypeUnset, models.Cell{Kind: models.CellNumber, Text: "79991112233"}},
		{"1", excelize.CellTypeBool, models.Cell{Kind: models.CellBool, Text: "TRUE"}},
		{"0", excelize.CellTypeBool, models.Cell{Kind: models.CellBool, Text: "FALSE"}},
		{"123", excelize.CellTypeSharedString, models.Cell{Kind: models.CellText, Text: "123"}},
		{"hello", excelize.CellTypeUnset, models.Cell{Kind: models.CellText, Text: "hello"}},
	}

	for _, tt := range tests {
		result := parseValue(tt.input, tt.cellType)
		if result != tt.expected {
			t.Errorf("parseValue(%q, %d) = %+v, expected %+v", tt.input, tt.cellType, result, tt.expected)
		}
	}
}

func TestLoadXLSX(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File, sheet string) {
		f.SetSheetRow(sheet, "A1", &[]interface{}{"Участок", "", "ФИО", "Email"})
		f.SetSheetRow(sheet, "A2", &[]interface{}{"АП-1", nil, "Иванов Иван", "a@x.ru"})
		// row 3 left blank
		f.SetSheetRow(sheet, "A4", &[]interface{}{"АП-2"})
	})

	table, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if table.Source.Strategy != string(StrategyXLSX) {
		t.Errorf("Expected strategy xlsx, got %q", table.Source.Strategy)
	}
	if table.Source.Sheet != "Sheet1" {
		t.Errorf("Expected sheet Sheet1, got %q", table.Source.Sheet)
	}
	names := table.ColumnNames()
	expected := []string{"Участок", "Unnamed: 1", "ФИО", "Email"}
	if len(names) != len(expected) {
		t.Fatalf("Expected columns %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("column %d = %q, expected %q", i, names[i], expected[i])
		}
	}
	if table.NumRows() != 2 {
		t.Fatalf("Expected 2 data rows, got %d", table.NumRows())
	}
	if !table.Cell(0, 1).IsMissing() {
		t.Errorf("Expected missing cell, got %+v", table.Cell(0, 1))
	}
	if got := table.Cell(1, 0).Text; got != "АП-2" {
		t.Errorf("Expected 'АП-2', got %q", got)
	}
}

func TestLoadXLSXSheetAndRange(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File, sheet string) {
		f.NewSheet("Owners")
		f.SetSheetRow("Owners", "B2", &[]interface{}{"plot", "email"})
		f.SetSheetRow("Owners", "B3", &[]interface{}{"1", "a@x.ru"})
		f.SetSheetRow("Owners", "B4", &[]interface{}{"2", "b@x.ru"})
	})

	opts := DefaultOptions()
	opts.Strategy = StrategyXLSX
	opts.Sheet = "Owners"
	opts.Range = "B2:C3"

	table, err := Load(path, opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.NumColumns() != 2 || table.NumRows() != 1 {
		t.Fatalf("Expected 2x1 table, got %dx%d", table.NumColumns(), table.NumRows())
	}
	if table.Columns[1].Name != "email" {
		t.Errorf("Expected header 'email', got %q", table.Columns[1].Name)
	}

	opts.Sheet = "Missing"
	if _, err := Load(path, opts); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("Expected ErrSheetNotFound, got %v", err)
	}
}
