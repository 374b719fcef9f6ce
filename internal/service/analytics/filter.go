package analytics

import (
	"strings"

	"github.com/confidence-group/hr-analytics-go/internal/domain/analytics"
	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
)

// FilterWeeklyByScope drops aggregate rows the scope does not allow. The
// matching is deliberately lenient: roster exports and attendance exports
// spell the same function differently, so exact matching alone would blank
// out dashboards over a stray "&" or extra space.
func FilterWeeklyByScope(rows []analytics.WeeklyRow, groupBy analytics.GroupBy, scope hierarchy.Scope, companyShortNames map[string]string) []analytics.WeeklyRow {
	if scope.All {
		return rows
	}
	if len(scope.AllowedCompanies) == 0 && len(scope.AllowedFunctions) == 0 && len(scope.AllowedDepartments) == 0 {
		// No constraint configured: fail open, not deny all.
		return rows
	}
	if groupBy == analytics.GroupByLocation {
		return rows
	}

	knownShorts := make(map[string]struct{}, len(companyShortNames))
	for _, short := range companyShortNames {
		knownShorts[strings.ToUpper(short)] = struct{}{}
	}

	// Allowed functions, expanded with their suffix-stripped variants so
	// "Finance & Accounts - CIPLC & CBL" matches "CIPLC - Finance & Accounts".
	allowedFunctions := make([]string, 0, len(scope.AllowedFunctions)*2)
	for _, f := range scope.AllowedFunctions {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		allowedFunctions = append(allowedFunctions, f)
		if base := stripCompanySuffix(f, knownShorts); base != f {
			allowedFunctions = append(allowedFunctions, base)
		}
	}

	// Allowed companies resolved to short codes. If none of them resolve to
	// a known short, the roster's company names drifted: company checks are
	// skipped and function matching alone decides.
	allowedCompanies := make(map[string]struct{}, len(scope.AllowedCompanies))
	anyKnownShort := false
	for _, c := range scope.AllowedCompanies {
		short := strings.ToUpper(shortCompany(c, companyShortNames))
		if short == "" {
			continue
		}
		allowedCompanies[short] = struct{}{}
		if _, ok := knownShorts[short]; ok {
			anyKnownShort = true
		}
	}

	out := make([]analytics.WeeklyRow, 0, len(rows))
	for _, row := range rows {
		switch groupBy {
		case analytics.GroupByFunction:
			companyPrefix, functionPart := splitGroupLabel(row.Group)
			if len(allowedFunctions) > 0 && !matchesAnyFunction(functionPart, allowedFunctions) {
				continue
			}
			if len(allowedCompanies) > 0 && anyKnownShort && companyPrefix != "" {
				if _, ok := allowedCompanies[strings.ToUpper(companyPrefix)]; !ok {
					continue
				}
			}
		case analytics.GroupByCompany:
			if len(allowedCompanies) > 0 {
				if _, ok := allowedCompanies[strings.ToUpper(strings.TrimSpace(row.Group))]; !ok {
					continue
				}
			}
		}

		if len(scope.AllowedDepartments) > 0 && row.Department != "" {
			if !matchesAnyDepartment(row.Department, scope.AllowedDepartments) {
				continue
			}
		}

		out = append(out, row)
	}
	return out
}

// splitGroupLabel separates "CBL - Finance & Accounts" into its company
// prefix and function part. Labels without a separator are all function.
func splitGroupLabel(group string) (companyPrefix, functionPart string) {
	parts := strings.SplitN(group, " - ", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return "", strings.TrimSpace(group)
}

func matchesAnyFunction(value string, allowed []string) bool {
	for _, a := range allowed {
		if lenientMatch(value, a) {
			return true
		}
	}
	return false
}

// matchesAnyDepartment treats the row's department cell as a comma-separated
// list; one lenient hit admits the row.
func matchesAnyDepartment(departments string, allowed []string) bool {
	for _, d := range strings.Split(departments, ",") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		for _, a := range allowed {
			if lenientMatch(d, a) {
				return true
			}
		}
	}
	return false
}

// lenientMatch compares two names in three stages: exact (case-insensitive),
// substring either direction, then normalized with "&" and " and " unified
// and whitespace collapsed.
func lenientMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	na, nb := normalizeName(a), normalizeName(b)
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}

func normalizeName(s string) string {
	s = strings.ReplaceAll(s, "&", " and ")
	return strings.Join(strings.Fields(s), " ")
}
