package analytics

import (
	"testing"

	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
	"github.com/confidence-group/hr-analytics-go/internal/domain/upload"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/rowmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamsRow(overrides map[string]string) rowmap.Row {
	row := rowmap.Row{
		"User Principal Name":        "alice@cg-bd.com",
		"Assigned Products":          "MICROSOFT TEAMS ESSENTIALS+POWER AUTOMATE",
		"Is Licensed":                "Yes",
		"Team Chat Message Count":    "12",
		"Private Chat Message Count": "34",
		"Call Count":                 "5",
		"Meetings Organized Count":   "2",
		"Meetings Attended Count":    "7",
		"Post Messages":              "1",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func TestComputeTeamsActivityMetrics(t *testing.T) {
	file := upload.File{ID: 9, Filename: "teams.xlsx"}

	result := ComputeTeamsActivity(file, []rowmap.Row{teamsRow(nil)}, nil)

	require.Len(t, result, 1)
	assert.Equal(t, int64(9), result[0].FileID)
	assert.Equal(t, "alice@cg-bd.com", result[0].User)
	assert.Equal(t, 12, result[0].TeamChat)
	assert.Equal(t, 34, result[0].PrivateChat)
	assert.Equal(t, 5, result[0].Calls)
	assert.Equal(t, 7, result[0].MeetingsAttended)
	assert.Equal(t, "Unknown", result[0].Function)
}

func TestComputeTeamsActivityDropsOtherProducts(t *testing.T) {
	rows := []rowmap.Row{
		teamsRow(map[string]string{"Assigned Products": "POWER BI PRO"}),
		teamsRow(nil),
	}

	result := ComputeTeamsActivity(upload.File{}, rows, nil)

	require.Len(t, result, 1)
}

func TestComputeTeamsActivityDropsUnlicensed(t *testing.T) {
	rows := []rowmap.Row{
		teamsRow(map[string]string{"Is Licensed": "No"}),
	}

	result := ComputeTeamsActivity(upload.File{}, rows, nil)

	assert.Empty(t, result)
}

func TestComputeTeamsActivityMissingColumnsInclude(t *testing.T) {
	row := rowmap.Row{
		"User Principal Name": "bob@cg-bd.com",
		"Call Count":          "3",
	}

	result := ComputeTeamsActivity(upload.File{}, []rowmap.Row{row}, nil)

	require.Len(t, result, 1)
	assert.Equal(t, 3, result[0].Calls)
	assert.Equal(t, 0, result[0].TeamChat)
}

func TestComputeTeamsActivityRosterEnrichment(t *testing.T) {
	roster := hierarchy.Map{
		"alice@cg-bd.com": {
			Email:      "alice@cg-bd.com",
			Function:   "Finance & Accounts",
			Department: "Accounts",
		},
	}

	result := ComputeTeamsActivity(upload.File{}, []rowmap.Row{teamsRow(nil)}, roster)

	require.Len(t, result, 1)
	assert.Equal(t, "Finance & Accounts", result[0].Function)
	assert.Equal(t, "Accounts", result[0].Department)
}

func TestComputeTeamsActivityUnparseableCountIsZero(t *testing.T) {
	rows := []rowmap.Row{
		teamsRow(map[string]string{"Call Count": "n/a"}),
	}

	result := ComputeTeamsActivity(upload.File{}, rows, nil)

	require.Len(t, result, 1)
	assert.Equal(t, 0, result[0].Calls)
}
