// Package models defines data structures shared by the import pipeline.
package models

import "strings"

// CellKind describes what a source cell holds.
type CellKind int

const (
	// CellMissing marks an absent or empty cell.
	CellMissing CellKind = iota
	// CellText is a string cell.
	CellText
	// CellNumber is a numeric cell. Text holds its shortest decimal form.
	CellNumber
	// CellBool is a boolean cell. Text is "TRUE" or "FALSE".
	CellBool
)

// Cell is a single value of a RawTable.
type Cell struct {
	// Kind reports whether the cell is missing and, if not, its source type.
	Kind CellKind `json:"kind"`
	// Text is the cell content coerced to text. Empty for missing cells.
	Text string `json:"text,omitempty"`
}

// Missing is the missing-value marker.
var Missing = Cell{Kind: CellMissing}

// TextCell builds a text cell. An empty string yields Missing.
func TextCell(s string) Cell {
	if s == "" {
		return Missing
	}
	return Cell{Kind: CellText, Text: s}
}

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool {
	return c.Kind == CellMissing
}

// String returns the cell text, or "" when missing.
func (c Cell) String() string {
	if c.IsMissing() {
		return ""
	}
	return c.Text
}

// Trimmed returns the cell text without surrounding whitespace.
func (c Cell) Trimmed() string {
	return strings.TrimSpace(c.String())
}
