// Package output writes record sets and summaries.
package output

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a record sink format.
type Format string

const (
	// FormatCSV is the canonical import format.
	FormatCSV Format = "csv"
	// FormatJSON writes a JSON array of records.
	FormatJSON Format = "json"
	// FormatYAML writes a YAML sequence of records.
	FormatYAML Format = "yaml"
	// FormatSQLite writes records into a SQLite table.
	FormatSQLite Format = "sqlite"
)

// ParseFormat converts s to a Format. Empty input yields "".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatCSV, FormatJSON, FormatYAML, FormatSQLite:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "db":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be csv, json, yaml, or sqlite)", s)
	}
}

// FormatFromPath picks a format from a file extension, defaulting to CSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}
