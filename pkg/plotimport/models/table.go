package models

// Column describes one column of a RawTable.
type Column struct {
	// Index is the 0-based column position.
	Index int `json:"index"`
	// Name is the header text of the column.
	Name string `json:"name"`
}

// SourceInfo records how a table was loaded.
type SourceInfo struct {
	// Path is the file the table was read from.
	Path string `json:"path"`
	// Strategy is the loader that produced the table (xls, xlsx, csv).
	Strategy string `json:"strategy"`
	// Sheet is the worksheet name for workbook sources.
	Sheet string `json:"sheet,omitempty"`
}

// RawTable is an ordered set of columns and rows as read from a source.
// It is read once and never mutated by the pipeline.
type RawTable struct {
	Columns []Column `json:"columns"`
	// Rows holds data rows (the header row excluded). Rows may be shorter
	// than Columns; absent trailing cells are missing.
	Rows   [][]Cell   `json:"rows"`
	Source SourceInfo `json:"source"`
}

// NewRawTable builds a table from a header and data rows.
func NewRawTable(header []string, rows [][]Cell) *RawTable {
	columns := make([]Column, len(header))
	for i, name := range header {
		columns[i] = Column{Index: i, Name: name}
	}
	return &RawTable{Columns: columns, Rows: rows}
}

// NumColumns returns the number of columns.
func (t *RawTable) NumColumns() int {
	return len(t.Columns)
}

// NumRows returns the number of data rows.
func (t *RawTable) NumRows() int {
	return len(t.Rows)
}

// Cell returns the cell at (row, col), or Missing when out of range.
func (t *RawTable) Cell(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return Missing
	}
	r := t.Rows[row]
	if col >= len(r) {
		return Missing
	}
	return r[col]
}

// ColumnNames returns the header names in column order.
func (t *RawTable) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
