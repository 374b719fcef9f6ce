package hierarchy

import "context"

// HierarchyService builds the org forest from the roster and derives
// visibility scopes from it. The map is rebuilt from the database on every
// call — freshness over performance, no cross-request caching.
type HierarchyService interface {
	// BuildMap constructs the employee map from the given roster upload, or
	// from the single latest upload when fileID is nil. A re-upload fully
	// replaces the hierarchy; files are never merged.
	BuildMap(ctx context.Context, fileID *int64) (Map, error)

	// ScopeOptions enumerates filter options, excluding configured
	// non-business functions.
	ScopeOptions(ctx context.Context, fileID *int64) (ScopeOptions, error)

	// ScopeOptionsForUser narrows ScopeOptions to what the viewer may see.
	ScopeOptionsForUser(ctx context.Context, v Viewer) (ScopeOptions, error)

	// EffectiveScope resolves the attribute-based scope used to filter
	// weekly/KPI aggregates. Fail-open: a viewer with no linkage sees all.
	EffectiveScope(ctx context.Context, v Viewer) (Scope, error)

	// AttendanceVisibility resolves the subtree-based scope used to filter
	// raw attendance rows. Distinct from EffectiveScope by design.
	AttendanceVisibility(ctx context.Context, v Viewer) (AttendanceVisibility, error)
}

// Pure queries over an already-built Map live on the Map itself (see
// builder.go in the service package) so they stay trivially testable.
