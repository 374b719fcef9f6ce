package hierarchy

// Scope is the attribute-based visibility a user gets over aggregated KPIs.
// When All is true the allow-sets are ignored. When All is false an EMPTY
// allow-set means "no constraint on that axis": only a non-empty set with no
// match excludes data. The distinction matters — a user whose roster row has
// no company still sees every company rather than none.
type Scope struct {
	All                bool     `json:"all"`
	AllowedCompanies   []string `json:"allowed_companies"`
	AllowedFunctions   []string `json:"allowed_functions"`
	AllowedDepartments []string `json:"allowed_departments"`
	DataScopeLevel     string   `json:"data_scope_level,omitempty"`
}

// PersistedScope is the materialized form written onto user records by the
// sync-roles pass. Root-level users get empty lists (they see all via
// hierarchy), so lists here are constraints only for N-1 and deeper.
type PersistedScope struct {
	AllowedCompanies   []string `json:"allowed_companies"`
	AllowedFunctions   []string `json:"allowed_functions"`
	AllowedDepartments []string `json:"allowed_departments"`
}

// AttendanceVisibility is the subtree-based visibility used for raw
// attendance rows (file detail), NOT for weekly aggregates. The two scope
// computations diverge on purpose: aggregates filter by attributes, raw rows
// filter by the manager's transitive reports.
type AttendanceVisibility struct {
	// Unrestricted short-circuits all filtering (admin or root level).
	Unrestricted bool
	// EmployeeCodes and Emails identify visible employees (normalized).
	EmployeeCodes map[string]struct{}
	// Emails holds lower-cased employee emails.
	Emails map[string]struct{}
	// Departments and Functions additionally constrain rows so a manager's
	// subtree never leaks an unrelated department sharing the same file.
	// Lower-cased; empty set = no constraint.
	Departments map[string]struct{}
	Functions   map[string]struct{}
}

// AllowsRow reports whether a raw attendance row identified by the given
// normalized code/email/department/function is visible.
func (v AttendanceVisibility) AllowsRow(code, email, department, function string) bool {
	if v.Unrestricted {
		return true
	}
	_, codeOK := v.EmployeeCodes[code]
	_, emailOK := v.Emails[email]
	if !(code != "" && codeOK) && !(email != "" && emailOK) {
		return false
	}
	if len(v.Departments) > 0 && department != "" {
		if _, ok := v.Departments[department]; !ok {
			return false
		}
	}
	if len(v.Functions) > 0 && function != "" {
		if _, ok := v.Functions[function]; !ok {
			return false
		}
	}
	return true
}
