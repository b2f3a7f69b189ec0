package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

// SummaryFormat is the rendering of a Summary.
type SummaryFormat string

const (
	SummaryTable SummaryFormat = "table"
	SummaryJSON  SummaryFormat = "json"
	SummaryYAML  SummaryFormat = "yaml"
)

// DetectSummaryFormat returns explicit when set, otherwise table on a
// terminal and JSON for pipes.
func DetectSummaryFormat(explicit string) (SummaryFormat, error) {
	switch f := SummaryFormat(strings.ToLower(explicit)); f {
	case SummaryTable, SummaryJSON, SummaryYAML:
		return f, nil
	case "yml":
		return SummaryYAML, nil
	case "":
	default:
		return "", fmt.Errorf("invalid summary format: %s (must be table, json, or yaml)", explicit)
	}

	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return SummaryTable, nil
	}
	return SummaryJSON, nil
}

// WriteSummary renders s to w.
func WriteSummary(w io.Writer, s models.Summary, format SummaryFormat) error {
	switch format {
	case SummaryJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case SummaryYAML:
		data, err := yaml.MarshalWithOptions(s, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return writeSummaryTables(w, s)
	}
}

func writeSummaryTables(w io.Writer, s models.Summary) error {
	counts := [][]string{
		{"Records", strconv.Itoa(s.TotalRecords)},
		{"Unique emails", strconv.Itoa(s.UniqueEmails)},
		{"With phone", strconv.Itoa(s.WithPhone)},
		{"Without phone", strconv.Itoa(s.WithoutPhone)},
		{"Owners with several plots", strconv.Itoa(s.MultiPlotOwners)},
		{"Plots per owner (mean/median/max)", fmt.Sprintf("%.2f / %g / %g",
			s.PlotsPerOwner.Mean, s.PlotsPerOwner.Median, s.PlotsPerOwner.Max)},
	}
	if err := renderTable(w, []string{"Metric", "Value"}, counts); err != nil {
		return err
	}

	if len(s.Examples) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(s.Examples))
		for _, ex := range s.Examples {
			rows = append(rows, []string{ex.Email, ex.FullName, strconv.Itoa(len(ex.Plots)), strings.Join(ex.Plots, ", ")})
		}
		if err := renderTable(w, []string{"Email", "Name", "Count", "Plots"}, rows); err != nil {
			return err
		}
	}

	previews := []struct {
		title   string
		records []models.NormalizedRecord
	}{
		{"Records", s.Preview},
		{"With phone", s.PreviewPhone},
		{"Without phone", s.PreviewNoPhone},
	}
	for _, p := range previews {
		if len(p.records) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", p.title)
		rows := make([][]string, len(p.records))
		for i, r := range p.records {
			rows[i] = r.Fields()
		}
		if err := renderTable(w, models.RecordHeader, rows); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewTable(w)

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	table.Header(header...)

	for _, row := range rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}

	return table.Render()
}
