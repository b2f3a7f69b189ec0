package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/normalize"
)

var fullRoles = models.RoleAssignment{Plot: 0, Email: 1, Name: 2, Phone: 3}

func row(values ...string) []models.Cell {
	cells := make([]models.Cell, len(values))
	for i, v := range values {
		cells[i] = models.TextCell(v)
	}
	return cells
}

func newTable(rows ...[]models.Cell) *models.RawTable {
	return models.NewRawTable([]string{"plot", "email", "name", "phone"}, rows)
}

func TestExpandMultiplePlots(t *testing.T) {
	tbl := newTable(row("АП-12, АП-13", "a@x.ru", "Иванов Иван", "+7 999 111 22 33"))

	records, stats := New().Expand(tbl, fullRoles)

	require.Len(t, records, 2)
	assert.Equal(t, "12", records[0].PlotNumber)
	assert.Equal(t, "13", records[1].PlotNumber)
	for _, r := range records {
		assert.Equal(t, "8(999)111-22-33", r.Phone)
		assert.Equal(t, "a@x.ru", r.Email)
		assert.Equal(t, "Иванов Иван", r.FullName)
	}
	assert.Equal(t, Stats{RowsRead: 1, RecordsEmitted: 2}, stats)
}

func TestExpandTenDigitPhone(t *testing.T) {
	records := Expand(newTable(row("АП-5", "", "", "9991112233")), fullRoles)

	require.Len(t, records, 1)
	assert.Equal(t, "5", records[0].PlotNumber)
	assert.Equal(t, "8(999)111-22-33", records[0].Phone)
}

func TestExpandMissingPhone(t *testing.T) {
	records := Expand(newTable(row("1;2", "a@x.ru", "Имя Фамилия")), fullRoles)

	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "", r.Phone)
	}
}

func TestExpandSkipsRowsWithoutPlots(t *testing.T) {
	tbl := newTable(
		row("", "a@x.ru", "Имя Фамилия", "9991112233"),
		row("  ", "b@x.ru"),
		row("АП-", "c@x.ru"),
		row("7", "d@x.ru"),
	)

	records, stats := New().Expand(tbl, fullRoles)

	require.Len(t, records, 1)
	assert.Equal(t, "d@x.ru", records[0].Email)
	assert.Equal(t, 3, stats.RowsSkipped)
}

func TestExpandUnrecognizedPhonePassesThrough(t *testing.T) {
	records := Expand(newTable(row("1", "", "", "  12345 ")), fullRoles)

	require.Len(t, records, 1)
	assert.Equal(t, "12345", records[0].Phone)
}

func TestExpandKeepsRowsSeparate(t *testing.T) {
	tbl := newTable(
		row("1", "same@x.ru", "Имя Один"),
		row("2", "same@x.ru", "Имя Два"),
	)

	records := Expand(tbl, fullRoles)

	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].PlotNumber)
	assert.Equal(t, "2", records[1].PlotNumber)
	assert.Equal(t, "Имя Два", records[1].FullName)
}

func TestExpandUnresolvedRolesAreEmpty(t *testing.T) {
	roles := models.NewRoleAssignment()
	records := Expand(newTable(row("1", "a@x.ru", "Имя Фамилия", "9991112233")), roles)

	require.Len(t, records, 1)
	assert.Equal(t, models.NormalizedRecord{PlotNumber: "1"}, records[0])
}

func TestExpandTrimsContactFields(t *testing.T) {
	records := Expand(newTable(row("1", "  a@x.ru ", "\tИмя Фамилия\n")), fullRoles)

	require.Len(t, records, 1)
	assert.Equal(t, "a@x.ru", records[0].Email)
	assert.Equal(t, "Имя Фамилия", records[0].FullName)
}

func TestExpandIsDeterministic(t *testing.T) {
	tbl := newTable(
		row("АП-1 АП-2\nАП-3", "a@x.ru", "", "89991112233"),
		row("4;5", "b@x.ru"),
	)

	first := Expand(tbl, fullRoles)
	second := Expand(tbl, fullRoles)
	assert.Equal(t, first, second)
	for _, r := range first {
		assert.NotEmpty(t, r.PlotNumber)
	}
}

func TestSplitPlots(t *testing.T) {
	e := New()
	tests := []struct {
		raw      string
		expected []string
	}{
		{"", nil},
		{"АП-1", []string{"1"}},
		{"АП-1;АП-2", []string{"1", "2"}},
		{"АП-1\nАП-2", []string{"1", "2"}},
		{"АП-1,, ,АП-2", []string{"1", "2"}},
		// space always splits, even inside an identifier
		{"Участок 15", []string{"Участок", "15"}},
		{"АП- 7", []string{"7"}},
		{"АП-1\r\nАП-2", []string{"1", "2"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, e.SplitPlots(tt.raw), "SplitPlots(%q)", tt.raw)
	}
}

func TestExpandCustomCleaner(t *testing.T) {
	e := New(WithPlotCleaner(normalize.NewPlotCleaner("lot-")))
	assert.Equal(t, []string{"9", "АП-3"}, e.SplitPlots("LOT-9 АП-3"))
}
