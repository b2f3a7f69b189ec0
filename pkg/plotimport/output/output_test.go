package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/classify"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

var sample = []models.NormalizedRecord{
	{Email: "a@x.ru", FullName: "Иванов Иван", PlotNumber: "12", Phone: "8(999)111-22-33"},
	{Email: "", FullName: "Петров, Пётр", PlotNumber: "13", Phone: ""},
	{Email: "b@x.ru", FullName: `Сидоров "мл."`, PlotNumber: "14", Phone: "12345"},
}

func TestWriteCSVMinimalQuoting(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample))

	expected := "email,fullName,plotNumber,phone\n" +
		"a@x.ru,Иванов Иван,12,8(999)111-22-33\n" +
		",\"Петров, Пётр\",13,\n" +
		"b@x.ru,\"Сидоров \"\"мл.\"\"\",14,12345\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "email,fullName,plotNumber,phone\n", buf.String())
}

func TestReadCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample))

	records, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, sample, records)
}

func TestReadCSVReorderedColumns(t *testing.T) {
	records, err := ReadCSV(strings.NewReader("plotNumber,email\n7,a@x.ru\n"))
	require.NoError(t, err)
	assert.Equal(t, []models.NormalizedRecord{{Email: "a@x.ru", PlotNumber: "7"}}, records)
}

func TestToJSONEmptyIsArray(t *testing.T) {
	data, err := ToJSON(nil, false)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWriteFileFormats(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "out.json")
	require.NoError(t, WriteFile(jsonPath, "", sample))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded []models.NormalizedRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sample, decoded)

	yamlPath := filepath.Join(dir, "out.yml")
	require.NoError(t, WriteFile(yamlPath, "", sample))
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	var fromYAML []models.NormalizedRecord
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, sample, fromYAML)

	csvPath := filepath.Join(dir, "out.txt")
	require.NoError(t, WriteFile(csvPath, FormatCSV, sample))
	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	back, err := ReadCSV(f)
	require.NoError(t, err)
	assert.Equal(t, sample, back)
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owners.db")

	require.NoError(t, WriteFile(path, "", sample))
	// Writing again replaces the previous contents.
	require.NoError(t, WriteSQLite(path, sample[:2]))

	records, err := ReadSQLite(path)
	require.NoError(t, err)
	assert.Equal(t, sample[:2], records)
}

func TestSQLiteRejectsEmptyPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owners.db")
	err := WriteSQLite(path, []models.NormalizedRecord{{Email: "a@x.ru"}})
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"out.csv":    FormatCSV,
		"out":        FormatCSV,
		"OUT.JSON":   FormatJSON,
		"out.yaml":   FormatYAML,
		"out.yml":    FormatYAML,
		"out.db":     FormatSQLite,
		"out.sqlite": FormatSQLite,
	}
	for path, expected := range tests {
		assert.Equal(t, expected, FormatFromPath(path), path)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteSummary(t *testing.T) {
	s := models.Summary{
		TotalRecords:    3,
		UniqueEmails:    1,
		WithPhone:       2,
		WithoutPhone:    1,
		MultiPlotOwners: 1,
		Examples:        []models.OwnerExample{{Email: "a@x.ru", FullName: "Иванов", Plots: []string{"1", "2"}}},
		PlotsPerOwner:   models.PlotDistribution{Mean: 2, Median: 2, Max: 2},
		Preview:         sample[:1],
	}

	var table bytes.Buffer
	require.NoError(t, WriteSummary(&table, s, SummaryTable))
	out := table.String()
	assert.Contains(t, out, "a@x.ru")
	assert.Contains(t, out, "1, 2")
	assert.Contains(t, out, "8(999)111-22-33")

	var js bytes.Buffer
	require.NoError(t, WriteSummary(&js, s, SummaryJSON))
	var decoded models.Summary
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, s, decoded)

	var ym bytes.Buffer
	require.NoError(t, WriteSummary(&ym, s, SummaryYAML))
	assert.Contains(t, ym.String(), "totalRecords: 3")
}

func TestDetectSummaryFormat(t *testing.T) {
	f, err := DetectSummaryFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, SummaryYAML, f)

	_, err = DetectSummaryFormat("html")
	assert.Error(t, err)

	// Under go test stdout is not a terminal.
	f, err = DetectSummaryFormat("")
	require.NoError(t, err)
	assert.Contains(t, []SummaryFormat{SummaryTable, SummaryJSON}, f)
}

func TestWriteInspection(t *testing.T) {
	table := models.NewRawTable(
		[]string{"Участки", "ФИО", "Email"},
		[][]models.Cell{{models.TextCell("АП-1"), models.TextCell("Иванов Иван"), models.TextCell("a@x.ru")}},
	)
	table.Source = models.SourceInfo{Path: "users.xlsx", Strategy: "xlsx", Sheet: "Sheet1"}
	in := NewInspection(table, classify.Classify(table))

	assert.Equal(t, 1, in.Rows)
	assert.Equal(t, 2, in.Roles.Email)

	var text bytes.Buffer
	require.NoError(t, WriteInspection(&text, in, SummaryTable))
	assert.Contains(t, text.String(), `users.xlsx (xlsx, sheet "Sheet1"): 1 rows, 3 columns`)
	assert.Contains(t, text.String(), "contains-at")

	var js bytes.Buffer
	require.NoError(t, WriteInspection(&js, in, SummaryJSON))
	var decoded Inspection
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, in.Roles, decoded.Roles)
	assert.Equal(t, in.Decisions, decoded.Decisions)
}

func TestWriteInspectionListsDualRoles(t *testing.T) {
	table := models.NewRawTable(
		[]string{"a", "b", "c", "d", "e"},
		[][]models.Cell{{models.TextCell("1"), models.TextCell("x"), models.TextCell("y"), models.TextCell("z"), models.TextCell("w")}},
	)
	table.Source = models.SourceInfo{Path: "owners.csv", Strategy: "csv"}
	in := NewInspection(table, classify.Classify(table))

	var text bytes.Buffer
	require.NoError(t, WriteInspection(&text, in, SummaryTable))
	assert.Contains(t, text.String(), "email, name")
	assert.Contains(t, text.String(), "unknown")
}
