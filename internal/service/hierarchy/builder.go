package hierarchy

import (
	"log/slog"
	"strings"

	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/rowmap"
)

// buildMapFromRows turns raw roster rows into the org forest. Rows without an
// email are skipped entirely: email is the node identity.
func buildMapFromRows(rows []rowmap.Row, fileID int64, filename string, logger *slog.Logger) hierarchy.Map {
	m := make(hierarchy.Map)

	for _, row := range rows {
		email := strings.ToLower(strings.TrimSpace(row.Get(rowmap.EmailKeys...)))
		if email == "" {
			continue
		}
		m[email] = &hierarchy.Employee{
			Email:                 email,
			Name:                  strings.TrimSpace(row.Get(rowmap.NameKeys...)),
			EmployeeCode:          rowmap.NormalizeCode(row.Get(rowmap.EmployeeCodeKeys...)),
			Function:              strings.TrimSpace(row.Get(rowmap.FunctionKeys...)),
			Department:            strings.TrimSpace(row.Get(rowmap.DepartmentKeys...)),
			Company:               strings.TrimSpace(row.Get(rowmap.CompanyKeys...)),
			SupervisorName:        strings.TrimSpace(row.Get(rowmap.SupervisorKeys...)),
			LineManagerEmployeeID: strings.TrimSpace(row.Get(rowmap.LineManagerIDKeys...)),
			SourceFileID:          fileID,
			SourceFilename:        filename,
		}
	}

	// Identity indexes for parent resolution. The code index also maps each
	// email to itself so a line-manager cell holding either works.
	codeToEmail := make(map[string]string, len(m)*2)
	nameToEmail := make(map[string]string, len(m))
	for email, emp := range m {
		if emp.EmployeeCode != "" {
			if _, ok := codeToEmail[emp.EmployeeCode]; !ok {
				codeToEmail[emp.EmployeeCode] = email
			}
		}
		codeToEmail[email] = email
		if name := strings.ToLower(emp.Name); name != "" {
			if _, ok := nameToEmail[name]; !ok {
				nameToEmail[name] = email
			}
		}
	}

	// Resolve each node's parent: line-manager id, then line-manager email,
	// then exact supervisor-name match.
	for email, emp := range m {
		parent := ""
		if lm := emp.LineManagerEmployeeID; lm != "" {
			if p, ok := codeToEmail[rowmap.NormalizeCode(lm)]; ok {
				parent = p
			} else if strings.Contains(lm, "@") {
				if _, ok := m[strings.ToLower(strings.TrimSpace(lm))]; ok {
					parent = strings.ToLower(strings.TrimSpace(lm))
				}
			}
		}
		if parent == "" && emp.SupervisorName != "" {
			if p, ok := nameToEmail[strings.ToLower(emp.SupervisorName)]; ok {
				parent = p
			}
		}
		if parent == email {
			parent = ""
		}
		emp.ParentEmail = parent
	}

	// Roots: no parent, or a parent the roster no longer contains.
	var roots []string
	for email, emp := range m {
		if emp.ParentEmail == "" {
			roots = append(roots, email)
			continue
		}
		if _, ok := m[emp.ParentEmail]; !ok {
			roots = append(roots, email)
		}
	}
	if len(roots) == 0 && len(m) > 0 {
		// Every node claims a parent: the chart is all cycles. Treat every
		// record as a root rather than dropping the whole roster.
		for email := range m {
			roots = append(roots, email)
		}
		logger.Warn("hierarchy has no roots, treating every employee as a root", "employees", len(m))
	}

	children := m.Children()

	// Multi-source BFS assigning levels top-down. Nodes are marked visited on
	// enqueue so the shallowest path wins when parents disagree.
	visited := make(map[string]struct{}, len(m))
	queue := make([]string, 0, len(m))
	for _, r := range roots {
		if _, seen := visited[r]; seen {
			continue
		}
		visited[r] = struct{}{}
		m[r].Level = hierarchy.RootLevel
		queue = append(queue, r)
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		next := hierarchy.NextLevel(m[current].Level)
		for _, child := range children[current] {
			if _, seen := visited[child]; seen {
				continue
			}
			visited[child] = struct{}{}
			m[child].Level = next
			queue = append(queue, child)
		}
	}

	for email, emp := range m {
		if _, seen := visited[email]; !seen {
			emp.Level = "N-2"
			logger.Warn("employee unreachable from any root, defaulting level", "email", email, "level", "N-2")
		}
	}

	return m
}
