package analytics

import (
	"testing"

	"github.com/confidence-group/hr-analytics-go/internal/domain/analytics"
	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weeklyRows(groups ...string) []analytics.WeeklyRow {
	rows := make([]analytics.WeeklyRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, analytics.WeeklyRow{Week: "2025-01-W01", Group: g})
	}
	return rows
}

func groupsOf(rows []analytics.WeeklyRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Group)
	}
	return out
}

func TestFilterAllScopePassesThrough(t *testing.T) {
	rows := weeklyRows("CBL - Finance & Accounts", "CSEL - Operations")

	got := FilterWeeklyByScope(rows, analytics.GroupByFunction, hierarchy.Scope{All: true}, testShortNames)

	assert.Equal(t, rows, got)
}

func TestFilterEmptyScopePassesThrough(t *testing.T) {
	rows := weeklyRows("CBL - Finance & Accounts")

	got := FilterWeeklyByScope(rows, analytics.GroupByFunction, hierarchy.Scope{All: false}, testShortNames)

	assert.Equal(t, rows, got)
}

func TestFilterLocationNeverFiltered(t *testing.T) {
	rows := weeklyRows("Dhaka", "Chattogram")
	scope := hierarchy.Scope{AllowedCompanies: []string{"Confidence Batteries Limited"}}

	got := FilterWeeklyByScope(rows, analytics.GroupByLocation, scope, testShortNames)

	assert.Equal(t, rows, got)
}

func TestFilterFunctionExactAndLenient(t *testing.T) {
	rows := weeklyRows(
		"CBL - Finance & Accounts",
		"CBL - Finance and Accounts", // drifted spelling
		"CBL - Operations",
	)
	scope := hierarchy.Scope{
		AllowedFunctions: []string{"Finance & Accounts"},
		AllowedCompanies: []string{"Confidence Batteries Limited"},
	}

	got := FilterWeeklyByScope(rows, analytics.GroupByFunction, scope, testShortNames)

	assert.ElementsMatch(t,
		[]string{"CBL - Finance & Accounts", "CBL - Finance and Accounts"},
		groupsOf(got))
}

func TestFilterFunctionWithRosterSuffix(t *testing.T) {
	// Roster-side override carries a company suffix; aggregate labels don't.
	rows := weeklyRows("CIPLC - Finance & Accounts", "CBL - Finance & Accounts", "CBL - Operations")
	scope := hierarchy.Scope{
		AllowedFunctions: []string{"Finance & Accounts - CIPLC & CBL"},
		AllowedCompanies: []string{"Confidence Infrastructure PLC."},
	}

	got := FilterWeeklyByScope(rows, analytics.GroupByFunction, scope, testShortNames)

	assert.Equal(t, []string{"CIPLC - Finance & Accounts"}, groupsOf(got))
}

func TestFilterCompanyPrefixEnforced(t *testing.T) {
	rows := weeklyRows("CBL - Sales", "CSEL - Sales")
	scope := hierarchy.Scope{
		AllowedFunctions: []string{"Sales"},
		AllowedCompanies: []string{"Confidence Batteries Limited"},
	}

	got := FilterWeeklyByScope(rows, analytics.GroupByFunction, scope, testShortNames)

	assert.Equal(t, []string{"CBL - Sales"}, groupsOf(got))
}

func TestFilterCompanyDriftFallback(t *testing.T) {
	// The allowed company never resolved to a known short code, so company
	// checks are skipped and function matching alone decides.
	rows := weeklyRows("CBL - Sales", "CSEL - Sales", "CBL - Operations")
	scope := hierarchy.Scope{
		AllowedFunctions: []string{"Sales"},
		AllowedCompanies: []string{"Some Renamed Entity"},
	}

	got := FilterWeeklyByScope(rows, analytics.GroupByFunction, scope, testShortNames)

	assert.ElementsMatch(t, []string{"CBL - Sales", "CSEL - Sales"}, groupsOf(got))
}

func TestFilterCompanyGroupExact(t *testing.T) {
	rows := weeklyRows("CBL", "CSEL")
	scope := hierarchy.Scope{AllowedCompanies: []string{"Confidence Batteries Limited"}}

	got := FilterWeeklyByScope(rows, analytics.GroupByCompany, scope, testShortNames)

	assert.Equal(t, []string{"CBL"}, groupsOf(got))
}

func TestFilterDepartmentCommaSplit(t *testing.T) {
	rows := []analytics.WeeklyRow{
		{Group: "CBL - Finance & Accounts", Department: "Treasury, Accounts"},
		{Group: "CBL - Finance & Accounts", Department: "Internal Audit"},
		{Group: "CBL - Finance & Accounts"}, // no department data: kept
	}
	scope := hierarchy.Scope{
		AllowedFunctions:   []string{"Finance & Accounts"},
		AllowedDepartments: []string{"Accounts"},
		AllowedCompanies:   []string{"Confidence Batteries Limited"},
	}

	got := FilterWeeklyByScope(rows, analytics.GroupByFunction, scope, testShortNames)

	require.Len(t, got, 2)
	assert.Equal(t, "Treasury, Accounts", got[0].Department)
	assert.Equal(t, "", got[1].Department)
}
