package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

// WriteCSV writes the header and one line per record.
// Only fields that need it are quoted.
func WriteCSV(w io.Writer, records []models.NormalizedRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.RecordHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ToJSON serializes records as a JSON array.
func ToJSON(records []models.NormalizedRecord, pretty bool) ([]byte, error) {
	if records == nil {
		records = []models.NormalizedRecord{}
	}
	if pretty {
		return json.MarshalIndent(records, "", "  ")
	}
	return json.Marshal(records)
}

// ToYAML serializes records as a YAML sequence.
func ToYAML(records []models.NormalizedRecord) ([]byte, error) {
	if records == nil {
		records = []models.NormalizedRecord{}
	}
	return yaml.MarshalWithOptions(records, yaml.Indent(2), yaml.IndentSequence(false))
}

// WriteFile writes records to path in the given format.
// An empty format is derived from the file extension.
func WriteFile(path string, format Format, records []models.NormalizedRecord) error {
	if format == "" {
		format = FormatFromPath(path)
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSQLite:
		return WriteSQLite(path, records)
	case FormatJSON:
		data, err = ToJSON(records, true)
	case FormatYAML:
		data, err = ToYAML(records)
	case FormatCSV:
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		if err := WriteCSV(f, records); err != nil {
			f.Close()
			return fmt.Errorf("failed to write csv: %w", err)
		}
		return f.Close()
	default:
		return fmt.Errorf("invalid format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// ReadCSV reads records previously written by WriteCSV.
// Columns are matched by header name; absent columns read as "".
func ReadCSV(r io.Reader) ([]models.NormalizedRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	get := func(row []string, name string) string {
		if i, ok := index[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	var records []models.NormalizedRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, models.NormalizedRecord{
			Email:      get(row, "email"),
			FullName:   get(row, "fullName"),
			PlotNumber: get(row, "plotNumber"),
			Phone:      get(row, "phone"),
		})
	}
	return records, nil
}
