// Package rowmap resolves semantic fields out of spreadsheet rows whose
// column names drift between exports (extra spaces, typos, renamed headers).
package rowmap

import (
	"sort"
	"strconv"
	"strings"
)

// Row is one spreadsheet row as stored at ingestion time: every cell is a
// string keyed by its original header.
type Row map[string]string

// Get returns the first non-empty value for any of the candidate keys.
// Exact key match is tried first; if nothing hits, a normalized
// (lower-cased, trimmed) index of the row's own keys is consulted.
// A missing field is "" — callers treat empty as skip, never as an error.
func (r Row) Get(candidates ...string) string {
	for _, k := range candidates {
		if v, ok := r[k]; ok {
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		}
	}

	// Normalized header -> value. Ingestion drops colliding headers, but a
	// Row built elsewhere may still carry two keys that collapse to the same
	// normalized form; walking the keys sorted keeps resolution deterministic
	// (lexicographically smallest header wins).
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	norm := make(map[string]string, len(r))
	for _, key := range keys {
		s := strings.TrimSpace(r[key])
		if s == "" {
			continue
		}
		n := normalize(key)
		if n == "" {
			continue
		}
		if _, ok := norm[n]; !ok {
			norm[n] = s
		}
	}

	for _, k := range candidates {
		if v, ok := norm[normalize(k)]; ok {
			return v
		}
	}
	return ""
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeCode canonicalizes an employee code so that values coming from a
// numeric spreadsheet cell ("11410.0") and from a text cell ("11410") compare
// equal. Non-numeric codes are lower-cased verbatim.
func NormalizeCode(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	compact := strings.ReplaceAll(strings.ReplaceAll(trimmed, ".", ""), " ", "")
	if compact != "" && isDigits(compact) {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, " ", ""), 64); err == nil {
			return strconv.FormatInt(int64(f), 10)
		}
	}
	return strings.ToLower(trimmed)
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Ordered alias lists per semantic field. Order is preference: the first
// candidate with a non-empty value wins.
var (
	EmailKeys         = []string{"Email (Official)", "Email (Offical)", "Email", "Official Email"}
	NameKeys          = []string{"Employee Name", "Name", "Employee name"}
	EmployeeCodeKeys  = []string{"Employee Code", "Employee ID", "Emp Code", "Code"}
	FunctionKeys      = []string{"Function", "Function Name", "Functions"}
	DepartmentKeys    = []string{"Department", "Department Name", "Departments"}
	CompanyKeys       = []string{"Company Name", "Company", "Comapny Name", "Legal Entity", "Company Name (Legal)", "Entity"}
	SupervisorKeys    = []string{"Supervisor Name", "Supervisor", "Line Manager Name", "Manager Name"}
	LineManagerIDKeys = []string{"Line Manager Employee ID", "Line Manager ID", "Line Manager Code", "Report To ID", "Manager ID"}
	DateKeys          = []string{"Attendance Date", "attendance date", "Date", "date", "AttendanceDate", "AttDate"}
	LocationKeys      = []string{"Job Location", "Location", "Work Location"}
)
