package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/confidence-group/hr-analytics-go/internal/config"
	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
	"github.com/confidence-group/hr-analytics-go/internal/domain/upload"
)

type HierarchyServiceImpl struct {
	upload.UploadRepository
	cfg    config.AnalyticsConfig
	logger *slog.Logger
}

func NewHierarchyService(uploadRepository upload.UploadRepository, cfg config.AnalyticsConfig, logger *slog.Logger) hierarchy.HierarchyService {
	return &HierarchyServiceImpl{
		UploadRepository: uploadRepository,
		cfg:              cfg,
		logger:           logger,
	}
}

// BuildMap implements hierarchy.HierarchyService.
func (s *HierarchyServiceImpl) BuildMap(ctx context.Context, fileID *int64) (hierarchy.Map, error) {
	var (
		file upload.File
		err  error
	)
	if fileID != nil {
		file, err = s.UploadRepository.GetFile(ctx, upload.KindEmployee, *fileID)
	} else {
		file, err = s.UploadRepository.LatestFile(ctx, upload.KindEmployee)
	}
	if err != nil {
		if errors.Is(err, upload.ErrFileNotFound) {
			return nil, hierarchy.ErrNoRoster
		}
		return nil, fmt.Errorf("failed to resolve roster file: %w", err)
	}

	rows, err := s.UploadRepository.GetFileRows(ctx, file.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster rows: %w", err)
	}

	return buildMapFromRows(rows, file.ID, file.Filename, s.logger), nil
}

// ScopeOptions implements hierarchy.HierarchyService.
func (s *HierarchyServiceImpl) ScopeOptions(ctx context.Context, fileID *int64) (hierarchy.ScopeOptions, error) {
	m, err := s.BuildMap(ctx, fileID)
	if err != nil {
		return hierarchy.ScopeOptions{}, err
	}
	return m.ScopeOptions(s.cfg.ExcludedFunctions), nil
}

// ScopeOptionsForUser implements hierarchy.HierarchyService.
func (s *HierarchyServiceImpl) ScopeOptionsForUser(ctx context.Context, v hierarchy.Viewer) (hierarchy.ScopeOptions, error) {
	m, err := s.BuildMap(ctx, nil)
	if err != nil {
		return hierarchy.ScopeOptions{}, err
	}

	options := m.ScopeOptions(s.cfg.ExcludedFunctions)
	scope := s.effectiveScopeFromMap(m, v)
	if scope.All {
		return options, nil
	}
	return narrowOptions(options, scope), nil
}

// EffectiveScope implements hierarchy.HierarchyService.
func (s *HierarchyServiceImpl) EffectiveScope(ctx context.Context, v hierarchy.Viewer) (hierarchy.Scope, error) {
	if v.Admin || v.DataScopeLevel == hierarchy.RootLevel {
		return hierarchy.Scope{All: true, DataScopeLevel: v.DataScopeLevel}, nil
	}
	if v.HasScopeOverride() {
		return overrideScope(v), nil
	}

	m, err := s.BuildMap(ctx, nil)
	if err != nil {
		if errors.Is(err, hierarchy.ErrNoRoster) {
			// No roster uploaded yet: nothing to derive from, see all.
			return hierarchy.Scope{All: true, DataScopeLevel: v.DataScopeLevel}, nil
		}
		return hierarchy.Scope{}, err
	}
	return s.effectiveScopeFromMap(m, v), nil
}

// effectiveScopeFromMap is EffectiveScope against an already-built map.
func (s *HierarchyServiceImpl) effectiveScopeFromMap(m hierarchy.Map, v hierarchy.Viewer) hierarchy.Scope {
	if v.Admin || v.DataScopeLevel == hierarchy.RootLevel {
		return hierarchy.Scope{All: true, DataScopeLevel: v.DataScopeLevel}
	}
	if v.HasScopeOverride() {
		return overrideScope(v)
	}

	if v.EmployeeEmail == "" || v.DataScopeLevel == "" {
		// Not linked to the roster: fail open rather than blank dashboards.
		return hierarchy.Scope{All: true, DataScopeLevel: v.DataScopeLevel}
	}
	return m.DeriveScope(v.EmployeeEmail, v.DataScopeLevel)
}

// AttendanceVisibility implements hierarchy.HierarchyService.
func (s *HierarchyServiceImpl) AttendanceVisibility(ctx context.Context, v hierarchy.Viewer) (hierarchy.AttendanceVisibility, error) {
	if v.Admin || v.DataScopeLevel == hierarchy.RootLevel {
		return hierarchy.AttendanceVisibility{Unrestricted: true}, nil
	}

	m, err := s.BuildMap(ctx, nil)
	if err != nil {
		if errors.Is(err, hierarchy.ErrNoRoster) {
			return hierarchy.AttendanceVisibility{Unrestricted: true}, nil
		}
		return hierarchy.AttendanceVisibility{}, err
	}

	level := v.DataScopeLevel
	depth := hierarchy.LevelDepth(level)

	// An explicit function override grants the whole of those functions, but
	// a deep level caps it back to the subtree below.
	if len(v.AllowedFunctions) > 0 && (depth < 2) {
		emails, codes := m.EmailsAndCodesInFunctions(v.AllowedFunctions)
		return hierarchy.AttendanceVisibility{
			Emails:        emails,
			EmployeeCodes: codes,
			Departments:   map[string]struct{}{},
			Functions:     lowerSet(v.AllowedFunctions),
		}, nil
	}

	email := strings.ToLower(v.EmployeeEmail)
	emp, linked := m[email]
	if !linked {
		return hierarchy.AttendanceVisibility{Unrestricted: true}, nil
	}

	if level == "N-1" {
		emails, codes := m.EmailsAndCodesInFunctions([]string{emp.Function})
		return hierarchy.AttendanceVisibility{
			Emails:        emails,
			EmployeeCodes: codes,
			Departments:   map[string]struct{}{},
			Functions:     lowerSet([]string{emp.Function}),
		}, nil
	}

	// N-2 and deeper: self plus transitive reports, constrained to the
	// departments and functions actually present in that subtree.
	subs := m.SubordinateEmails(m.Children(), email)
	visibility := hierarchy.AttendanceVisibility{
		Emails:        make(map[string]struct{}, len(subs)),
		EmployeeCodes: make(map[string]struct{}, len(subs)),
		Departments:   make(map[string]struct{}),
		Functions:     make(map[string]struct{}),
	}
	for sub := range subs {
		visibility.Emails[sub] = struct{}{}
		member, ok := m[sub]
		if !ok {
			continue
		}
		if member.EmployeeCode != "" {
			visibility.EmployeeCodes[member.EmployeeCode] = struct{}{}
		}
		if d := strings.ToLower(strings.TrimSpace(member.Department)); d != "" {
			visibility.Departments[d] = struct{}{}
		}
		if f := strings.ToLower(strings.TrimSpace(member.Function)); f != "" {
			visibility.Functions[f] = struct{}{}
		}
	}
	return visibility, nil
}

func overrideScope(v hierarchy.Viewer) hierarchy.Scope {
	return hierarchy.Scope{
		All:                false,
		AllowedCompanies:   emptyIfNil(v.AllowedCompanies),
		AllowedFunctions:   emptyIfNil(v.AllowedFunctions),
		AllowedDepartments: emptyIfNil(v.AllowedDepartments),
		DataScopeLevel:     v.DataScopeLevel,
	}
}

// narrowOptions keeps only the companies, functions and departments a
// non-admin scope allows. Empty allow-sets leave their axis untouched.
func narrowOptions(options hierarchy.ScopeOptions, scope hierarchy.Scope) hierarchy.ScopeOptions {
	companies := lowerSet(scope.AllowedCompanies)
	functions := lowerSet(scope.AllowedFunctions)
	departments := lowerSet(scope.AllowedDepartments)

	out := hierarchy.ScopeOptions{
		Companies:   []string{},
		Functions:   []hierarchy.FunctionOption{},
		Departments: []hierarchy.DepartmentOption{},
	}
	for _, c := range options.Companies {
		if len(companies) == 0 || inSet(companies, c) {
			out.Companies = append(out.Companies, c)
		}
	}
	for _, f := range options.Functions {
		if len(functions) == 0 || inSet(functions, f.Name) {
			out.Functions = append(out.Functions, f)
		}
	}
	for _, d := range options.Departments {
		if len(departments) > 0 {
			if inSet(departments, d.Name) {
				out.Departments = append(out.Departments, d)
			}
			continue
		}
		if len(functions) == 0 || inSet(functions, d.Function) {
			out.Departments = append(out.Departments, d)
		}
	}
	return out
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func inSet(set map[string]struct{}, v string) bool {
	_, ok := set[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
