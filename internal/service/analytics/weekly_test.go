package analytics

import (
	"testing"

	"github.com/confidence-group/hr-analytics-go/internal/domain/analytics"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/rowmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testShortNames = map[string]string{
	"Confidence Batteries Limited":    "CBL",
	"Confidence Infrastructure PLC.":  "CIPLC",
	"Confidence Steel Export Limited": "CSEL",
}

func attRow(overrides map[string]string) rowmap.Row {
	row := rowmap.Row{
		"Attendance Date": "2025-01-06",
		"Employee Code":   "100",
		"Name":            "Alice",
		"Company Name":    "Confidence Batteries Limited",
		"Function Name":   "Finance & Accounts",
		"Department":      "Accounts",
		"Job Location":    "Dhaka",
		"Flag":            "P",
		"Is Late":         "No",
		"Shift In Time":   "09:00",
		"Shift Out Time":  "18:00",
		"In Time":         "09:00",
		"Out Time":        "18:00",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func TestComputeWeeklyInvalidGroupBy(t *testing.T) {
	_, _, err := ComputeWeekly(nil, analytics.GroupBy("bogus"), "", testShortNames)
	assert.ErrorIs(t, err, analytics.ErrInvalidGroupBy)
}

func TestComputeWeeklyGroupLabelFunction(t *testing.T) {
	rows := []rowmap.Row{
		attRow(map[string]string{"Function Name": "Finance & Accounts - CIPLC & CBL"}),
	}

	result, _, err := ComputeWeekly(rows, analytics.GroupByFunction, "", testShortNames)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "CBL - Finance & Accounts", result[0].Group)
}

func TestComputeWeeklyGroupLabelFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		want      string
	}{
		{"function only", map[string]string{"Company Name": ""}, "Finance & Accounts"},
		{"company only", map[string]string{"Function Name": ""}, "CBL"},
		{"neither", map[string]string{"Company Name": "", "Function Name": ""}, "Unknown"},
		{"unknown company passes through", map[string]string{"Company Name": "Acme Ltd"}, "Acme Ltd - Finance & Accounts"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, _, err := ComputeWeekly([]rowmap.Row{attRow(tc.overrides)}, analytics.GroupByFunction, "", testShortNames)
			require.NoError(t, err)
			require.Len(t, result, 1)
			assert.Equal(t, tc.want, result[0].Group)
		})
	}
}

func TestComputeWeeklyMemberDedup(t *testing.T) {
	rows := []rowmap.Row{
		// Same code twice: one member. A third row identified only by name.
		attRow(nil),
		attRow(map[string]string{"Name": "Alice Renamed"}),
		attRow(map[string]string{"Employee Code": "", "Name": "Bob"}),
	}

	result, _, err := ComputeWeekly(rows, analytics.GroupByFunction, "", testShortNames)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 2, result[0].Members)
}

func TestComputeWeeklyOnTimeAndLate(t *testing.T) {
	rows := []rowmap.Row{
		attRow(nil),
		attRow(map[string]string{"Employee Code": "101", "Is Late": "Yes"}),
		attRow(map[string]string{"Employee Code": "102", "Is Late": "YES"}),
		attRow(map[string]string{"Employee Code": "103", "Flag": "A", "Shift In Time": "", "Shift Out Time": "", "In Time": "", "Out Time": ""}),
	}

	result, _, err := ComputeWeekly(rows, analytics.GroupByFunction, "", testShortNames)

	require.NoError(t, err)
	require.Len(t, result, 1)
	row := result[0]
	assert.Equal(t, 3, row.Present)
	assert.Equal(t, 2, row.Late)
	assert.Equal(t, 1, row.OnTime)
	assert.InDelta(t, 33.33, row.OnTimePct, 1e-9)
}

func TestComputeWeeklyWeekendsExcludedFromHours(t *testing.T) {
	rows := []rowmap.Row{
		attRow(map[string]string{"Flag": "W"}),
		attRow(map[string]string{"Flag": "H", "Employee Code": "101"}),
	}

	result, _, err := ComputeWeekly(rows, analytics.GroupByFunction, "", testShortNames)

	require.NoError(t, err)
	require.Len(t, result, 1)
	row := result[0]
	assert.Zero(t, row.ShiftHours)
	assert.Zero(t, row.WorkHours)
	assert.Zero(t, row.TotalWorkDays)
	assert.Zero(t, row.LostHours)
	// Still counted as members.
	assert.Equal(t, 2, row.Members)
}

func TestComputeWeeklyCompletionAndLost(t *testing.T) {
	rows := []rowmap.Row{
		// Full day worked.
		attRow(nil),
		// Left two hours early.
		attRow(map[string]string{"Employee Code": "101", "Out Time": "16:00"}),
		// Absent with a defined shift: all nine hours lost.
		attRow(map[string]string{"Employee Code": "102", "Flag": "A", "In Time": "", "Out Time": ""}),
		// On duty, overnight shift completed.
		attRow(map[string]string{
			"Employee Code": "103", "Flag": "OD",
			"Shift In Time": "22:00", "Shift Out Time": "06:00",
			"In Time": "22:00", "Out Time": "06:00",
		}),
	}

	result, _, err := ComputeWeekly(rows, analytics.GroupByFunction, "", testShortNames)

	require.NoError(t, err)
	require.Len(t, result, 1)
	row := result[0]
	assert.Equal(t, 4, row.TotalWorkDays)
	assert.InDelta(t, 35.0, row.ShiftHours, 1e-9) // 9+9+9+8
	assert.InDelta(t, 24.0, row.WorkHours, 1e-9)  // 9+7+0+8
	assert.Equal(t, 2, row.Completed)
	assert.InDelta(t, 11.0, row.LostHours, 1e-9) // 2 early + 9 absent
	assert.InDelta(t, 50.0, row.CompletionPct, 1e-9)
	assert.InDelta(t, 31.43, row.LostPct, 0.01)
}

func TestComputeWeeklyLeaveCounters(t *testing.T) {
	rows := []rowmap.Row{
		attRow(map[string]string{"Flag": "SL", "Shift In Time": "", "Shift Out Time": "", "In Time": "", "Out Time": ""}),
		attRow(map[string]string{"Employee Code": "101", "Flag": "CL", "Shift In Time": "", "Shift Out Time": "", "In Time": "", "Out Time": ""}),
		attRow(map[string]string{"Employee Code": "102", "Flag": "A", "Shift In Time": "", "Shift Out Time": "", "In Time": "", "Out Time": ""}),
		attRow(map[string]string{"Employee Code": "103", "Flag": "A", "Shift In Time": "", "Shift Out Time": "", "In Time": "", "Out Time": ""}),
	}

	result, _, err := ComputeWeekly(rows, analytics.GroupByFunction, "", testShortNames)

	require.NoError(t, err)
	require.Len(t, result, 1)
	row := result[0]
	assert.Equal(t, 1, row.SL)
	assert.Equal(t, 1, row.CL)
	assert.Equal(t, 2, row.A)
	assert.Equal(t, 4, row.LeaveMembers)
	assert.InDelta(t, 25.0, row.SLPct, 1e-9)
	assert.InDelta(t, 25.0, row.CLPct, 1e-9)
	assert.InDelta(t, 50.0, row.APct, 1e-9)
}

func TestComputeWeeklyZeroDenominators(t *testing.T) {
	rows := []rowmap.Row{
		attRow(map[string]string{"Flag": "W"}),
	}

	result, _, err := ComputeWeekly(rows, analytics.GroupByFunction, "", testShortNames)

	require.NoError(t, err)
	require.Len(t, result, 1)
	row := result[0]
	assert.Zero(t, row.OnTimePct)
	assert.Zero(t, row.CompletionPct)
	assert.Zero(t, row.LostPct)
	assert.Zero(t, row.SLPct)
}

func TestComputeWeeklySkipsBadRows(t *testing.T) {
	rows := []rowmap.Row{
		attRow(map[string]string{"Attendance Date": "not a date"}),
		attRow(map[string]string{"Employee Code": "", "Name": ""}),
		attRow(nil),
	}

	result, _, err := ComputeWeekly(rows, analytics.GroupByFunction, "", testShortNames)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 1, result[0].Members)
}

func TestComputeWeeklySortedAndDeterministic(t *testing.T) {
	rows := []rowmap.Row{
		attRow(map[string]string{"Attendance Date": "2025-02-10", "Function Name": "Operations"}),
		attRow(map[string]string{"Attendance Date": "2025-01-20"}),
		attRow(map[string]string{"Attendance Date": "2025-01-06", "Function Name": "Operations"}),
		attRow(map[string]string{"Attendance Date": "2025-01-06"}),
	}

	first, _, err := ComputeWeekly(rows, analytics.GroupByFunction, "", testShortNames)
	require.NoError(t, err)
	require.Len(t, first, 4)

	assert.Equal(t, "2025-01-W01", first[0].Week)
	assert.Equal(t, "CBL - Finance & Accounts", first[0].Group)
	assert.Equal(t, "CBL - Operations", first[1].Group)
	assert.Equal(t, "2025-01-W03", first[2].Week)
	assert.Equal(t, "2025-02-W02", first[3].Week)

	for i := 0; i < 10; i++ {
		again, _, err := ComputeWeekly(rows, analytics.GroupByFunction, "", testShortNames)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeWeeklyCompanyGrouping(t *testing.T) {
	rows := []rowmap.Row{
		attRow(nil),
		attRow(map[string]string{"Employee Code": "200", "Company Name": "Confidence Steel Export Limited"}),
		attRow(map[string]string{"Employee Code": "300", "Company Name": ""}),
	}

	result, _, err := ComputeWeekly(rows, analytics.GroupByCompany, "", testShortNames)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "CBL", result[0].Group)
	assert.Equal(t, "CSEL", result[1].Group)
}

func TestComputeWeeklyDepartmentBreakdown(t *testing.T) {
	rows := []rowmap.Row{
		attRow(map[string]string{"Department": "Accounts"}),
		attRow(map[string]string{"Employee Code": "101", "Department": "Treasury", "Out Time": "16:00"}),
	}

	result, rollups, err := ComputeWeekly(rows, analytics.GroupByFunction, analytics.BreakdownDepartment, testShortNames)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Accounts", result[0].Department)
	assert.Equal(t, "Treasury", result[1].Department)

	require.Len(t, rollups, 1)
	total := rollups[0]
	assert.Equal(t, "2025-01", total.Month)
	assert.Equal(t, "CBL", total.Company)
	assert.Equal(t, 2, total.Members)
	assert.InDelta(t, 18.0, total.ShiftHours, 1e-9)
	assert.InDelta(t, 16.0, total.WorkHours, 1e-9)
	assert.InDelta(t, 2.0, total.LostHours, 1e-9)
}

func TestComputeWeeklyNoRollupsWithoutBreakdown(t *testing.T) {
	_, rollups, err := ComputeWeekly([]rowmap.Row{attRow(nil)}, analytics.GroupByFunction, "", testShortNames)

	require.NoError(t, err)
	assert.Nil(t, rollups)
}
