package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	writeFileAt(t, path, data)
	return path
}

func writeFileAt(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
}

func TestLoadCSVFallback(t *testing.T) {
	data := "\xEF\xBB\xBFУчасток,ФИО,Email\nАП-1,Иванов Иван,a@x.ru\n,,\nАП-2;АП-3,,\n"
	path := writeFile(t, "owners.xls", []byte(data))

	table, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Source.Strategy != string(StrategyCSV) {
		t.Errorf("Expected csv strategy, got %q", table.Source.Strategy)
	}
	if table.Columns[0].Name != "Участок" {
		t.Errorf("BOM not stripped from header: %q", table.Columns[0].Name)
	}
	if table.NumRows() != 2 {
		t.Fatalf("Expected 2 rows, got %d", table.NumRows())
	}
	if !table.Cell(1, 1).IsMissing() {
		t.Errorf("Expected empty field to be missing, got %+v", table.Cell(1, 1))
	}
}

func TestLoadCSVWindows1251(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().String("Участок;ФИО\nАП-1;Иванов Иван\n")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := writeFile(t, "owners.csv", []byte(encoded))

	opts := DefaultOptions()
	opts.Strategy = StrategyCSV
	opts.Encoding = "windows-1251"
	opts.Delimiter = ';'

	table, err := Load(path, opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := table.Cell(0, 1).Text; got != "Иванов Иван" {
		t.Errorf("Expected decoded name, got %q", got)
	}

	// The same bytes are not valid UTF-8.
	opts.Encoding = "utf-8"
	if _, err := Load(path, opts); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("Expected ErrInvalidEncoding, got %v", err)
	}
}

func TestLoadUnreadableSource(t *testing.T) {
	path := writeFile(t, "garbage.bin", []byte{0xFF, 0xFE, 0x00, 0xC3, 0x28})

	_, err := Load(path, DefaultOptions())
	if !errors.Is(err, ErrUnreadableSource) {
		t.Fatalf("Expected ErrUnreadableSource, got %v", err)
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected *LoadError, got %T", err)
	}
	if len(loadErr.Attempts) != 3 {
		t.Fatalf("Expected 3 attempts, got %d", len(loadErr.Attempts))
	}
	for i, want := range []Strategy{StrategyXLS, StrategyXLSX, StrategyCSV} {
		if loadErr.Attempts[i].Strategy != want {
			t.Errorf("attempt %d = %s, expected %s", i, loadErr.Attempts[i].Strategy, want)
		}
	}
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("Expected csv attempt error to be reachable, got %v", err)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.xls"), DefaultOptions())
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestLoadInvalidRange(t *testing.T) {
	path := writeFile(t, "owners.csv", []byte("a\n1\n"))
	opts := DefaultOptions()
	opts.Range = "A1"
	if _, err := Load(path, opts); err == nil {
		t.Error("Expected error for invalid range")
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input    string
		expected Strategy
		wantErr  bool
	}{
		{"", StrategyAuto, false},
		{"AUTO", StrategyAuto, false},
		{"xls", StrategyXLS, false},
		{" xlsx ", StrategyXLSX, false},
		{"csv", StrategyCSV, false},
		{"ods", "", true},
	}

	for _, tt := range tests {
		result, err := ParseStrategy(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if result != tt.expected {
			t.Errorf("ParseStrategy(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		input    string
		expected CellRange
	}{
		{"A1:E200", CellRange{R1: 1, C1: 1, R2: 200, C2: 5}},
		{"$B$2:$C$3", CellRange{R1: 2, C1: 2, R2: 3, C2: 3}},
		{"'Sheet 1'!A1:B2", CellRange{R1: 1, C1: 1, R2: 2, C2: 2}},
		{"C3:A1", CellRange{R1: 1, C1: 1, R2: 3, C2: 3}},
	}

	for _, tt := range tests {
		result, err := ParseRange(tt.input)
		if err != nil {
			t.Errorf("ParseRange(%q) failed: %v", tt.input, err)
			continue
		}
		if *result != tt.expected {
			t.Errorf("ParseRange(%q) = %+v, expected %+v", tt.input, *result, tt.expected)
		}
	}
}
