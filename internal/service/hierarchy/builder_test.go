package hierarchy

import (
	"io"
	"log/slog"
	"testing"

	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/rowmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rosterRow(email, name, code, function, dept, company, supervisor, lmID string) rowmap.Row {
	return rowmap.Row{
		"Email (Official)":         email,
		"Employee Name":            name,
		"Employee Code":            code,
		"Function":                 function,
		"Department":               dept,
		"Company Name":             company,
		"Supervisor Name":          supervisor,
		"Line Manager Employee ID": lmID,
	}
}

func TestBuildMapSkipsRowsWithoutEmail(t *testing.T) {
	rows := []rowmap.Row{
		rosterRow("ceo@cg-bd.com", "Chief", "1", "Executive", "", "Confidence Batteries Limited", "", ""),
		rosterRow("", "Ghost", "2", "Sales", "", "", "", ""),
	}

	m := buildMapFromRows(rows, 1, "roster.xlsx", discardLogger())

	require.Len(t, m, 1)
	assert.Contains(t, m, "ceo@cg-bd.com")
}

func TestBuildMapParentByLineManagerID(t *testing.T) {
	rows := []rowmap.Row{
		rosterRow("ceo@cg-bd.com", "Chief", "100", "Executive", "", "CBL", "", ""),
		// Numeric cell exports the manager id as "100.0"; must still resolve.
		rosterRow("mgr@cg-bd.com", "Manager", "200", "Sales", "Retail", "CBL", "", "100.0"),
		rosterRow("staff@cg-bd.com", "Staff", "300", "Sales", "Retail", "CBL", "", "200"),
	}

	m := buildMapFromRows(rows, 1, "roster.xlsx", discardLogger())

	require.Len(t, m, 3)
	assert.Equal(t, "", m["ceo@cg-bd.com"].ParentEmail)
	assert.Equal(t, "ceo@cg-bd.com", m["mgr@cg-bd.com"].ParentEmail)
	assert.Equal(t, "mgr@cg-bd.com", m["staff@cg-bd.com"].ParentEmail)

	assert.Equal(t, "N", m["ceo@cg-bd.com"].Level)
	assert.Equal(t, "N-1", m["mgr@cg-bd.com"].Level)
	assert.Equal(t, "N-2", m["staff@cg-bd.com"].Level)
}

func TestBuildMapParentByEmailInManagerField(t *testing.T) {
	rows := []rowmap.Row{
		rosterRow("ceo@cg-bd.com", "Chief", "", "Executive", "", "CBL", "", ""),
		rosterRow("mgr@cg-bd.com", "Manager", "", "Sales", "", "CBL", "", "CEO@cg-bd.com"),
	}

	m := buildMapFromRows(rows, 1, "roster.xlsx", discardLogger())

	assert.Equal(t, "ceo@cg-bd.com", m["mgr@cg-bd.com"].ParentEmail)
	assert.Equal(t, "N-1", m["mgr@cg-bd.com"].Level)
}

func TestBuildMapParentBySupervisorName(t *testing.T) {
	rows := []rowmap.Row{
		rosterRow("ceo@cg-bd.com", "Chief Executive", "", "Executive", "", "CBL", "", ""),
		rosterRow("mgr@cg-bd.com", "Manager", "", "Sales", "", "CBL", "chief executive", ""),
	}

	m := buildMapFromRows(rows, 1, "roster.xlsx", discardLogger())

	assert.Equal(t, "ceo@cg-bd.com", m["mgr@cg-bd.com"].ParentEmail)
}

func TestBuildMapDanglingParentBecomesRoot(t *testing.T) {
	rows := []rowmap.Row{
		rosterRow("a@cg-bd.com", "A", "1", "Sales", "", "CBL", "", "999"),
	}

	m := buildMapFromRows(rows, 1, "roster.xlsx", discardLogger())

	assert.Equal(t, "N", m["a@cg-bd.com"].Level)
}

func TestBuildMapCycleFallbackAllRoots(t *testing.T) {
	// a reports to b, b reports to a: no roots exist.
	rows := []rowmap.Row{
		rosterRow("a@cg-bd.com", "A", "1", "Sales", "", "CBL", "", "2"),
		rosterRow("b@cg-bd.com", "B", "2", "Sales", "", "CBL", "", "1"),
	}

	m := buildMapFromRows(rows, 1, "roster.xlsx", discardLogger())

	assert.Equal(t, "N", m["a@cg-bd.com"].Level)
	assert.Equal(t, "N", m["b@cg-bd.com"].Level)
}

func TestBuildMapLevelsAreDeterministic(t *testing.T) {
	rows := []rowmap.Row{
		rosterRow("root@cg-bd.com", "Root", "1", "Executive", "", "CBL", "", ""),
		rosterRow("m1@cg-bd.com", "M One", "2", "Sales", "", "CBL", "", "1"),
		rosterRow("m2@cg-bd.com", "M Two", "3", "Ops", "", "CBL", "", "1"),
		rosterRow("s1@cg-bd.com", "S One", "4", "Sales", "", "CBL", "", "2"),
		rosterRow("s2@cg-bd.com", "S Two", "5", "Ops", "", "CBL", "", "3"),
	}

	first := buildMapFromRows(rows, 1, "roster.xlsx", discardLogger())
	for i := 0; i < 20; i++ {
		again := buildMapFromRows(rows, 1, "roster.xlsx", discardLogger())
		for email, emp := range first {
			require.Equal(t, emp.Level, again[email].Level, "level drifted for %s", email)
			require.Equal(t, emp.ParentEmail, again[email].ParentEmail)
		}
	}
}

func TestBuildMapLevelMonotonicity(t *testing.T) {
	rows := []rowmap.Row{
		rosterRow("root@cg-bd.com", "Root", "1", "Executive", "", "CBL", "", ""),
		rosterRow("m@cg-bd.com", "M", "2", "Sales", "", "CBL", "", "1"),
		rosterRow("s@cg-bd.com", "S", "3", "Sales", "", "CBL", "", "2"),
		rosterRow("d@cg-bd.com", "D", "4", "Sales", "", "CBL", "", "3"),
	}

	m := buildMapFromRows(rows, 1, "roster.xlsx", discardLogger())

	for email, emp := range m {
		if emp.ParentEmail == "" {
			continue
		}
		parentDepth := hierarchy.LevelDepth(m[emp.ParentEmail].Level)
		childDepth := hierarchy.LevelDepth(emp.Level)
		assert.Equal(t, parentDepth+1, childDepth, "child %s", email)
	}
}

func TestSubordinateEmailsRootSeesEveryone(t *testing.T) {
	rows := []rowmap.Row{
		rosterRow("root@cg-bd.com", "Root", "1", "Executive", "", "CBL", "", ""),
		rosterRow("m@cg-bd.com", "M", "2", "Sales", "", "CBL", "", "1"),
		rosterRow("other@cg-bd.com", "Other", "3", "Ops", "", "CBL", "", ""),
	}

	m := buildMapFromRows(rows, 1, "roster.xlsx", discardLogger())
	subs := m.SubordinateEmails(m.Children(), "root@cg-bd.com")

	assert.Len(t, subs, 3)
}

func TestSubordinateEmailsSubtreeOnly(t *testing.T) {
	rows := []rowmap.Row{
		rosterRow("root@cg-bd.com", "Root", "1", "Executive", "", "CBL", "", ""),
		rosterRow("m@cg-bd.com", "M", "2", "Sales", "", "CBL", "", "1"),
		rosterRow("s@cg-bd.com", "S", "3", "Sales", "", "CBL", "", "2"),
		rosterRow("other@cg-bd.com", "Other", "4", "Ops", "", "CBL", "", "1"),
	}

	m := buildMapFromRows(rows, 1, "roster.xlsx", discardLogger())
	subs := m.SubordinateEmails(m.Children(), "m@cg-bd.com")

	assert.Contains(t, subs, "m@cg-bd.com")
	assert.Contains(t, subs, "s@cg-bd.com")
	assert.NotContains(t, subs, "other@cg-bd.com")
	assert.NotContains(t, subs, "root@cg-bd.com")
}
