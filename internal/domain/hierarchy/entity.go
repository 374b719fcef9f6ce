package hierarchy

import (
	"strconv"
	"strings"
)

// Employee is one roster row resolved into canonical fields. Built fresh from
// the latest employee-list upload on every request that needs scope; never
// cached across requests.
type Employee struct {
	Email                 string
	Name                  string
	EmployeeCode          string
	Function              string
	Department            string
	Company               string
	SupervisorName        string
	LineManagerEmployeeID string
	Level                 string
	SourceFileID          int64
	SourceFilename        string

	// ParentEmail is the resolved supervisor's lower-cased email, or ""
	// for roots and dangling references.
	ParentEmail string
}

// Map indexes employees by lower-cased email.
type Map map[string]*Employee

// RootLevel is the organizational top; its holders see all data.
const RootLevel = "N"

// NextLevel increments a level tag one step down: N -> N-1 -> N-2 -> ...
func NextLevel(level string) string {
	if level == RootLevel {
		return "N-1"
	}
	parts := strings.SplitN(level, "-", 2)
	if len(parts) == 2 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			return "N-" + strconv.Itoa(n+1)
		}
	}
	return "N-1"
}

// LevelDepth returns the numeric suffix of a level tag: "N" -> 0, "N-2" -> 2.
// Unparseable tags report -1.
func LevelDepth(level string) int {
	level = strings.TrimSpace(level)
	if level == RootLevel {
		return 0
	}
	parts := strings.SplitN(level, "-", 2)
	if len(parts) == 2 && parts[0] == "N" {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			return n
		}
	}
	return -1
}

// ScopeOptions enumerates distinct companies, functions and departments from
// the roster for filter dropdowns. Functions carry their company and
// departments their function so dependent selects can cascade.
type ScopeOptions struct {
	Companies   []string           `json:"companies"`
	Functions   []FunctionOption   `json:"functions"`
	Departments []DepartmentOption `json:"departments"`
}

type FunctionOption struct {
	Name    string `json:"name"`
	Company string `json:"company"`
}

type DepartmentOption struct {
	Name     string `json:"name"`
	Function string `json:"function"`
	Company  string `json:"company"`
}
