package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/classify"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

// Inspection describes how a source was read and classified.
type Inspection struct {
	Source    models.SourceInfo     `json:"source" yaml:"source"`
	Columns   []string              `json:"columns" yaml:"columns"`
	Rows      int                   `json:"rows" yaml:"rows"`
	Roles     models.RoleAssignment `json:"roles" yaml:"roles"`
	Decisions []classify.Decision   `json:"decisions" yaml:"decisions"`
}

// NewInspection collects the inspection view of a loaded table.
func NewInspection(t *models.RawTable, res classify.Result) Inspection {
	return Inspection{
		Source:    t.Source,
		Columns:   t.ColumnNames(),
		Rows:      t.NumRows(),
		Roles:     res.Assignment,
		Decisions: res.Decisions,
	}
}

// WriteInspection renders in to w.
func WriteInspection(w io.Writer, in Inspection, format SummaryFormat) error {
	switch format {
	case SummaryJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(in)
	case SummaryYAML:
		data, err := yaml.MarshalWithOptions(in, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	fmt.Fprintf(w, "%s (%s", in.Source.Path, in.Source.Strategy)
	if in.Source.Sheet != "" {
		fmt.Fprintf(w, ", sheet %q", in.Source.Sheet)
	}
	fmt.Fprintf(w, "): %d rows, %d columns\n\n", in.Rows, len(in.Columns))

	rows := make([][]string, 0, len(in.Decisions))
	for _, d := range in.Decisions {
		rows = append(rows, []string{
			strconv.Itoa(d.Column),
			d.Name,
			string(d.Role),
			d.Source,
			joinRoles(in.Roles.RolesOf(d.Column)),
			strings.Join(d.Samples, " | "),
		})
	}
	return renderTable(w, []string{"Column", "Header", "Role", "Source", "Final roles", "Samples"}, rows)
}

func joinRoles(roles []models.ColumnRole) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
