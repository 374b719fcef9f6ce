package analytics

import "errors"

var (
	// ErrInvalidGroupBy is the user-facing validation error in the
	// aggregation path; everything else degrades by silently skipping rows.
	ErrInvalidGroupBy = errors.New("invalid group_by: must be one of function, company, location")

	ErrInvalidODGroupBy = errors.New("invalid group_by: must be one of function, employee")
)
