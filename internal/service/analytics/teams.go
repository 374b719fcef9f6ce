package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/confidence-group/hr-analytics-go/internal/domain/analytics"
	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
	"github.com/confidence-group/hr-analytics-go/internal/domain/upload"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/rowmap"
)

// Only users whose assigned products include Teams Essentials count as
// active seats; other product bundles show up in the same export.
const teamsEssentials = "microsoft teams essentials"

// TeamsUserActivity implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) TeamsUserActivity(ctx context.Context, teamsFileID, employeeFileID *int64) ([]analytics.TeamsUserActivity, error) {
	var (
		file upload.File
		err  error
	)
	if teamsFileID != nil {
		file, err = s.UploadRepository.GetFile(ctx, upload.KindTeams, *teamsFileID)
	} else {
		file, err = s.UploadRepository.LatestFile(ctx, upload.KindTeams)
	}
	if err != nil {
		if errors.Is(err, upload.ErrFileNotFound) {
			return []analytics.TeamsUserActivity{}, nil
		}
		return nil, fmt.Errorf("failed to resolve teams file: %w", err)
	}

	rows, err := s.UploadRepository.GetFileRows(ctx, file.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams rows: %w", err)
	}

	roster, err := s.HierarchyService.BuildMap(ctx, employeeFileID)
	if err != nil {
		if !errors.Is(err, hierarchy.ErrNoRoster) {
			return nil, err
		}
		roster = nil
	}

	return ComputeTeamsActivity(file, rows, roster), nil
}

// ComputeTeamsActivity maps raw Teams activity rows to per-user metrics.
// Rows are dropped when their assigned products lack Teams Essentials or
// when Is Licensed is explicitly "No"; both columns are optional and an
// absent column includes the row. A nil roster leaves function and
// department as "Unknown".
func ComputeTeamsActivity(file upload.File, rows []rowmap.Row, roster hierarchy.Map) []analytics.TeamsUserActivity {
	out := make([]analytics.TeamsUserActivity, 0, len(rows))
	for _, row := range rows {
		if !hasTeamsEssentials(row) || !isLicensedYes(row) {
			continue
		}

		principal := row.Get("User Principal Name")
		if principal == "" {
			principal = "Unknown"
		}

		function, department := "Unknown", "Unknown"
		if emp, ok := roster[strings.ToLower(strings.TrimSpace(principal))]; ok {
			if emp.Function != "" {
				function = emp.Function
			}
			if emp.Department != "" {
				department = emp.Department
			}
		}

		out = append(out, analytics.TeamsUserActivity{
			FileID:             file.ID,
			Filename:           file.Filename,
			User:               principal,
			Function:           function,
			Department:         department,
			TeamChat:           countOf(row, "Team Chat Message Count"),
			PrivateChat:        countOf(row, "Private Chat Message Count"),
			Calls:              countOf(row, "Call Count"),
			MeetingsOrganized:  countOf(row, "Meetings Organized Count"),
			MeetingsAttended:   countOf(row, "Meetings Attended Count"),
			OneTimeOrganized:   countOf(row, "Scheduled One-time Meetings Organized Count"),
			OneTimeAttended:    countOf(row, "Scheduled One-time Meetings Attended Count"),
			RecurringOrganized: countOf(row, "Scheduled Recurring Meetings Organized Count"),
			RecurringAttended:  countOf(row, "Scheduled Recurring Meetings Attended Count"),
			PostMessages:       countOf(row, "Post Messages"),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].User < out[j].User })
	return out
}

// hasTeamsEssentials checks the assigned-products column, whatever its exact
// header. Keys are walked sorted so repeated calls agree on which column
// decides when several match.
func hasTeamsEssentials(r rowmap.Row) bool {
	for _, key := range sortedRowKeys(r) {
		k := strings.ToLower(strings.TrimSpace(key))
		if strings.Contains(k, "assigned") && strings.Contains(k, "product") {
			return strings.Contains(strings.ToLower(r[key]), teamsEssentials)
		}
	}
	return true
}

func isLicensedYes(r rowmap.Row) bool {
	for _, key := range sortedRowKeys(r) {
		k := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "")
		if k == "islicensed" {
			return strings.EqualFold(strings.TrimSpace(r[key]), "yes")
		}
	}
	return true
}

func sortedRowKeys(r rowmap.Row) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// countOf reads a metric cell as a non-negative count; anything unparseable
// is 0, never an error.
func countOf(r rowmap.Row, key string) int {
	v := strings.TrimSpace(r.Get(key))
	if v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return 0
}
