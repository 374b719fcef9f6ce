package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/confidence-group/hr-analytics-go/internal/domain/analytics"
	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
	"github.com/confidence-group/hr-analytics-go/internal/domain/upload"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/rowmap"
)

// OD implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) OD(ctx context.Context, userID int64, groupBy string) ([]analytics.ODRow, error) {
	if groupBy != analytics.ODGroupByFunction && groupBy != analytics.ODGroupByEmployee {
		return nil, analytics.ErrInvalidODGroupBy
	}

	caller, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requesting user: %w", err)
	}

	rows, err := s.UploadRepository.AllRows(ctx, upload.KindAttendance)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance rows: %w", err)
	}

	result := ComputeOD(rows, groupBy)

	if groupBy == analytics.ODGroupByFunction {
		scope, err := s.HierarchyService.EffectiveScope(ctx, caller.ScopeViewer())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve scope: %w", err)
		}
		result = filterODByScope(result, scope)
	}
	return result, nil
}

// ComputeOD tallies OD-flagged attendance days into per-month, per-group
// cells. Bad rows (unparseable date, no identity) are skipped, never fatal.
func ComputeOD(rows []rowmap.Row, groupBy string) []analytics.ODRow {
	type cellKey struct {
		month string
		group string
	}
	type odCell struct {
		members map[string]struct{}
		days    int
	}
	cells := make(map[cellKey]*odCell)

	for _, row := range rows {
		if row.Get(flagKeys...) != "OD" {
			continue
		}
		date, ok := ParseDate(row.Get(rowmap.DateKeys...))
		if !ok {
			continue
		}

		memberID := row.Get(rowmap.EmployeeCodeKeys...)
		if memberID == "" {
			memberID = row.Get(rowmap.NameKeys...)
		}
		if memberID == "" {
			continue
		}

		var group string
		switch groupBy {
		case analytics.ODGroupByFunction:
			group = row.Get(rowmap.FunctionKeys...)
			if group == "" {
				group = "Unknown"
			}
		case analytics.ODGroupByEmployee:
			group = row.Get(rowmap.NameKeys...)
			if group == "" {
				group = memberID
			}
		}

		key := cellKey{
			month: fmt.Sprintf("%d-%02d", date.Year(), int(date.Month())),
			group: group,
		}
		c, ok := cells[key]
		if !ok {
			c = &odCell{members: make(map[string]struct{})}
			cells[key] = c
		}
		c.members[memberID] = struct{}{}
		c.days++
	}

	out := make([]analytics.ODRow, 0, len(cells))
	for key, c := range cells {
		out = append(out, analytics.ODRow{
			Month:   key.month,
			Group:   key.group,
			Members: len(c.members),
			ODDays:  c.days,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Group < out[j].Group
	})
	return out
}

// filterODByScope keeps function groups the scope allows, with the same
// lenient name matching the weekly filter uses.
func filterODByScope(rows []analytics.ODRow, scope hierarchy.Scope) []analytics.ODRow {
	if scope.All || len(scope.AllowedFunctions) == 0 {
		return rows
	}
	allowed := make([]string, 0, len(scope.AllowedFunctions))
	for _, f := range scope.AllowedFunctions {
		if f = strings.TrimSpace(f); f != "" {
			allowed = append(allowed, f)
		}
	}
	if len(allowed) == 0 {
		return rows
	}

	out := make([]analytics.ODRow, 0, len(rows))
	for _, r := range rows {
		if matchesAnyFunction(r.Group, allowed) {
			out = append(out, r)
		}
	}
	return out
}
