package analytics

import "context"

// AnalyticsService recomputes weekly KPIs from raw attendance rows on every
// call. There is deliberately no precomputed KPI table: per-file
// precomputation double-counts members when a month spans uploads.
type AnalyticsService interface {
	// Weekly aggregates all attendance rows and filters the result by the
	// requesting user's effective scope. Company rollups (when breakdown is
	// "department") bypass that filter.
	Weekly(ctx context.Context, userID int64, groupBy GroupBy, breakdown string) (WeeklyResponse, error)

	// OD tallies on-duty days per month and group. Function results are
	// filtered by the requesting user's effective scope.
	OD(ctx context.Context, userID int64, groupBy string) ([]ODRow, error)

	// TeamsUserActivity lists per-user metrics from the given Teams activity
	// upload, or from the latest one when teamsFileID is nil.
	TeamsUserActivity(ctx context.Context, teamsFileID, employeeFileID *int64) ([]TeamsUserActivity, error)
}
