package http

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/confidence-group/hr-analytics-go/internal/domain/cxo"
	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
	"github.com/confidence-group/hr-analytics-go/internal/domain/user"
	"github.com/confidence-group/hr-analytics-go/internal/handler/http/middleware"
	"github.com/confidence-group/hr-analytics-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Hierarchy(w http.ResponseWriter, r *http.Request)
	ScopeOptions(w http.ResponseWriter, r *http.Request)
	MyScopeOptions(w http.ResponseWriter, r *http.Request)
	ByEmail(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	hierarchyService hierarchy.HierarchyService
	userRepository   user.UserRepository
	cxoService       cxo.CXOService
}

func NewEmployeeHandler(hierarchyService hierarchy.HierarchyService, userRepository user.UserRepository, cxoService cxo.CXOService) EmployeeHandler {
	return &EmployeeHandlerImpl{
		hierarchyService: hierarchyService,
		userRepository:   userRepository,
		cxoService:       cxoService,
	}
}

// HierarchyNode is one employee in the rendered org forest.
type HierarchyNode struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code,omitempty"`
	Function     string `json:"function,omitempty"`
	Department   string `json:"department,omitempty"`
	Company      string `json:"company,omitempty"`
	Level        string `json:"level"`
	IsCXO        bool   `json:"is_cxo"`

	SupervisorName        string `json:"supervisor_name,omitempty"`
	LineManagerEmployeeID string `json:"line_manager_employee_id,omitempty"`
	SourceFilename        string `json:"source_filename,omitempty"`

	Children []*HierarchyNode `json:"children"`
}

// Hierarchy implements EmployeeHandler. Renders the org forest from the
// requested roster upload, or the latest one when employee_file_id is absent.
func (h *EmployeeHandlerImpl) Hierarchy(w http.ResponseWriter, r *http.Request) {
	fileID, err := optionalFileID(r, "employee_file_id")
	if err != nil {
		response.BadRequest(w, "Invalid employee_file_id", nil)
		return
	}

	m, err := h.hierarchyService.BuildMap(r.Context(), fileID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, buildForest(m, h.cxoEmails(r.Context())))
}

// cxoEmails is annotation only; a lookup failure renders the forest without
// CXO badges rather than failing the request.
func (h *EmployeeHandlerImpl) cxoEmails(ctx context.Context) map[string]struct{} {
	set, err := h.cxoService.EmailSet(ctx)
	if err != nil {
		slog.Error("CXO email lookup failed", "error", err)
		return map[string]struct{}{}
	}
	return set
}

// ScopeOptions implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ScopeOptions(w http.ResponseWriter, r *http.Request) {
	fileID, err := optionalFileID(r, "employee_file_id")
	if err != nil {
		response.BadRequest(w, "Invalid employee_file_id", nil)
		return
	}

	options, err := h.hierarchyService.ScopeOptions(r.Context(), fileID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, options)
}

// MyScopeOptions implements EmployeeHandler. Options narrowed to what the
// calling user's effective scope allows.
func (h *EmployeeHandlerImpl) MyScopeOptions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	caller, err := h.userRepository.GetByID(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	options, err := h.hierarchyService.ScopeOptionsForUser(r.Context(), caller.ScopeViewer())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, options)
}

// ByEmail implements EmployeeHandler. Looks up a single roster entry.
func (h *EmployeeHandlerImpl) ByEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
	if email == "" {
		response.BadRequest(w, "An email query parameter is required", nil)
		return
	}

	m, err := h.hierarchyService.BuildMap(r.Context(), nil)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	emp, ok := m[email]
	if !ok {
		response.NotFound(w, "Employee not found in roster")
		return
	}

	node := nodeOf(emp)
	_, node.IsCXO = h.cxoEmails(r.Context())[email]
	response.Success(w, node)
}

func optionalFileID(r *http.Request, param string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(param))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func nodeOf(emp *hierarchy.Employee) *HierarchyNode {
	return &HierarchyNode{
		Email:                 emp.Email,
		Name:                  emp.Name,
		EmployeeCode:          emp.EmployeeCode,
		Function:              emp.Function,
		Department:            emp.Department,
		Company:               emp.Company,
		Level:                 emp.Level,
		SupervisorName:        emp.SupervisorName,
		LineManagerEmployeeID: emp.LineManagerEmployeeID,
		SourceFilename:        emp.SourceFilename,
		Children:              []*HierarchyNode{},
	}
}

// buildForest nests employees under their resolved supervisors. Siblings are
// sorted by name (email as tiebreak) for stable output.
func buildForest(m hierarchy.Map, cxoEmails map[string]struct{}) []*HierarchyNode {
	children := m.Children()

	visited := make(map[string]struct{}, len(m))
	var build func(email string) *HierarchyNode
	build = func(email string) *HierarchyNode {
		visited[email] = struct{}{}
		node := nodeOf(m[email])
		_, node.IsCXO = cxoEmails[email]
		for _, child := range children[email] {
			if _, seen := visited[child]; seen {
				continue
			}
			node.Children = append(node.Children, build(child))
		}
		sortNodes(node.Children)
		return node
	}

	var rootEmails []string
	for email, emp := range m {
		if emp.ParentEmail == "" {
			rootEmails = append(rootEmails, email)
		}
	}
	sort.Strings(rootEmails)

	forest := make([]*HierarchyNode, 0, len(rootEmails))
	for _, email := range rootEmails {
		forest = append(forest, build(email))
	}

	// Supervisor cycles leave ParentEmail set on every member, so a roster can
	// have no parentless node at all. Promote whatever the root walk missed;
	// the visited guard above keeps the cycle from recursing forever.
	var leftovers []string
	for email := range m {
		if _, seen := visited[email]; !seen {
			leftovers = append(leftovers, email)
		}
	}
	sort.Strings(leftovers)
	for _, email := range leftovers {
		if _, seen := visited[email]; seen {
			continue
		}
		forest = append(forest, build(email))
	}

	sortNodes(forest)
	return forest
}

func sortNodes(nodes []*HierarchyNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Name != nodes[j].Name {
			return nodes[i].Name < nodes[j].Name
		}
		return nodes[i].Email < nodes[j].Email
	})
}
