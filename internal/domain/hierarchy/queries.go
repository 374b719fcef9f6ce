package hierarchy

import (
	"sort"
	"strings"
)

// ChildIndex maps a parent's lower-cased email to its direct reports.
type ChildIndex map[string][]string

// Children derives the child index from resolved parent links. Only parents
// actually present in the map get entries; dangling references were already
// turned into roots by the builder.
func (m Map) Children() ChildIndex {
	children := make(ChildIndex)
	for email, emp := range m {
		if emp.ParentEmail == "" {
			continue
		}
		if _, ok := m[emp.ParentEmail]; !ok {
			continue
		}
		children[emp.ParentEmail] = append(children[emp.ParentEmail], email)
	}
	for _, c := range children {
		sort.Strings(c)
	}
	return children
}

// ScopeOptions enumerates distinct companies, functions and departments,
// skipping the configured non-business function names.
func (m Map) ScopeOptions(excludedFunctions []string) ScopeOptions {
	excluded := make(map[string]struct{}, len(excludedFunctions))
	for _, f := range excludedFunctions {
		excluded[f] = struct{}{}
	}

	companies := make(map[string]struct{})
	seenFunc := make(map[[2]string]struct{})
	seenDept := make(map[[2]string]struct{})
	var functions []FunctionOption
	var departments []DepartmentOption

	for _, emp := range m {
		c := strings.TrimSpace(emp.Company)
		f := strings.TrimSpace(emp.Function)
		d := strings.TrimSpace(emp.Department)
		if c != "" {
			companies[c] = struct{}{}
		}
		_, funcExcluded := excluded[f]
		if f != "" && c != "" && !funcExcluded {
			key := [2]string{c, f}
			if _, ok := seenFunc[key]; !ok {
				seenFunc[key] = struct{}{}
				functions = append(functions, FunctionOption{Name: f, Company: c})
			}
		}
		if d != "" && f != "" && !funcExcluded {
			key := [2]string{f, d}
			if _, ok := seenDept[key]; !ok {
				seenDept[key] = struct{}{}
				departments = append(departments, DepartmentOption{Name: d, Function: f, Company: c})
			}
		}
	}

	companyList := make([]string, 0, len(companies))
	for c := range companies {
		companyList = append(companyList, c)
	}
	sort.Strings(companyList)
	sort.Slice(functions, func(i, j int) bool {
		if functions[i].Company != functions[j].Company {
			return functions[i].Company < functions[j].Company
		}
		return functions[i].Name < functions[j].Name
	})
	sort.Slice(departments, func(i, j int) bool {
		if departments[i].Function != departments[j].Function {
			return departments[i].Function < departments[j].Function
		}
		return departments[i].Name < departments[j].Name
	})

	return ScopeOptions{
		Companies:   companyList,
		Functions:   functions,
		Departments: departments,
	}
}

// EmailsAndCodesInFunctions collects every employee whose function exactly
// matches (case-insensitive) one of the given names. Codes come back
// normalized by the builder.
func (m Map) EmailsAndCodesInFunctions(functions []string) (emails, codes map[string]struct{}) {
	want := make(map[string]struct{}, len(functions))
	for _, f := range functions {
		want[strings.ToLower(strings.TrimSpace(f))] = struct{}{}
	}
	emails = make(map[string]struct{})
	codes = make(map[string]struct{})
	for email, emp := range m {
		if _, ok := want[strings.ToLower(strings.TrimSpace(emp.Function))]; !ok {
			continue
		}
		emails[email] = struct{}{}
		if emp.EmployeeCode != "" {
			codes[emp.EmployeeCode] = struct{}{}
		}
	}
	return emails, codes
}

// SubordinateEmails returns the employee plus all transitive descendants.
// A root-level employee sees everyone, not just their own subtree.
func (m Map) SubordinateEmails(children ChildIndex, email string) map[string]struct{} {
	email = strings.ToLower(strings.TrimSpace(email))
	result := make(map[string]struct{})
	emp, ok := m[email]
	if !ok {
		return result
	}
	if emp.Level == RootLevel {
		for e := range m {
			result[e] = struct{}{}
		}
		return result
	}

	// Explicit queue with a visited set; org charts can be deep or cyclic.
	queue := []string{email}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if _, seen := result[current]; seen {
			continue
		}
		result[current] = struct{}{}
		queue = append(queue, children[current]...)
	}
	return result
}

// DeriveScope computes the attribute-based scope for a roster-linked user at
// the given level. Level N sees all; N-1 sees their whole function (every
// department under it and every company carrying it); N-2 and deeper see only
// their own function, department and company.
func (m Map) DeriveScope(employeeEmail, level string) Scope {
	email := strings.ToLower(strings.TrimSpace(employeeEmail))
	level = strings.TrimSpace(level)

	emp, ok := m[email]
	if !ok {
		// Fail-open: a user whose roster row disappeared sees everything
		// rather than nothing.
		return Scope{All: true, DataScopeLevel: level}
	}
	if level == RootLevel {
		return Scope{All: true, DataScopeLevel: RootLevel}
	}

	function := strings.TrimSpace(emp.Function)
	department := strings.TrimSpace(emp.Department)
	company := strings.TrimSpace(emp.Company)

	if level == "N-1" {
		departments := make(map[string]struct{})
		companies := make(map[string]struct{})
		for _, other := range m {
			if strings.TrimSpace(other.Function) != function {
				continue
			}
			if d := strings.TrimSpace(other.Department); d != "" {
				departments[d] = struct{}{}
			}
			if c := strings.TrimSpace(other.Company); c != "" {
				companies[c] = struct{}{}
			}
		}
		return Scope{
			All:                false,
			AllowedFunctions:   listOrEmpty(function),
			AllowedDepartments: sortedKeys(departments),
			AllowedCompanies:   sortedKeys(companies),
			DataScopeLevel:     "N-1",
		}
	}

	return Scope{
		All:                false,
		AllowedFunctions:   listOrEmpty(function),
		AllowedDepartments: listOrEmpty(department),
		AllowedCompanies:   listOrEmpty(company),
		DataScopeLevel:     level,
	}
}

// ScopeToPersist is the materialized variant written back by sync-roles.
// Root level persists empty lists: such users see all via hierarchy, so any
// stored list would only narrow them by accident.
func (m Map) ScopeToPersist(employeeEmail, level string) PersistedScope {
	email := strings.ToLower(strings.TrimSpace(employeeEmail))
	_, ok := m[email]
	if !ok || strings.TrimSpace(level) == RootLevel {
		return PersistedScope{
			AllowedCompanies:   []string{},
			AllowedFunctions:   []string{},
			AllowedDepartments: []string{},
		}
	}
	scope := m.DeriveScope(employeeEmail, level)
	return PersistedScope{
		AllowedCompanies:   scope.AllowedCompanies,
		AllowedFunctions:   scope.AllowedFunctions,
		AllowedDepartments: scope.AllowedDepartments,
	}
}

func listOrEmpty(v string) []string {
	if v == "" {
		return []string{}
	}
	return []string{v}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
