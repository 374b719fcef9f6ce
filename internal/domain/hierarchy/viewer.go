package hierarchy

// Viewer is the scope-relevant projection of a user account: who is asking,
// where they sit in the hierarchy, and any explicit allow-lists. Defined
// here so this package never has to import the user package (whose DTOs
// embed Scope).
type Viewer struct {
	Admin          bool
	EmployeeEmail  string
	DataScopeLevel string

	AllowedFunctions   []string
	AllowedDepartments []string
	AllowedCompanies   []string
}

// HasScopeOverride reports whether any explicit allow-list is set.
func (v Viewer) HasScopeOverride() bool {
	return len(v.AllowedFunctions) > 0 || len(v.AllowedDepartments) > 0 || len(v.AllowedCompanies) > 0
}
