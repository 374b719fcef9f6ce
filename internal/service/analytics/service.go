package analytics

import (
	"context"
	"fmt"

	"github.com/confidence-group/hr-analytics-go/internal/config"
	"github.com/confidence-group/hr-analytics-go/internal/domain/analytics"
	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
	"github.com/confidence-group/hr-analytics-go/internal/domain/upload"
	"github.com/confidence-group/hr-analytics-go/internal/domain/user"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/rowmap"
	"golang.org/x/sync/errgroup"
)

type AnalyticsServiceImpl struct {
	upload.UploadRepository
	user.UserRepository
	hierarchy.HierarchyService
	cfg config.AnalyticsConfig
}

func NewAnalyticsService(uploadRepository upload.UploadRepository, userRepository user.UserRepository, hierarchyService hierarchy.HierarchyService, cfg config.AnalyticsConfig) analytics.AnalyticsService {
	return &AnalyticsServiceImpl{
		UploadRepository: uploadRepository,
		UserRepository:   userRepository,
		HierarchyService: hierarchyService,
		cfg:              cfg,
	}
}

// Weekly implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) Weekly(ctx context.Context, userID int64, groupBy analytics.GroupBy, breakdown string) (analytics.WeeklyResponse, error) {
	if !groupBy.Valid() {
		return analytics.WeeklyResponse{}, analytics.ErrInvalidGroupBy
	}

	caller, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return analytics.WeeklyResponse{}, fmt.Errorf("failed to load requesting user: %w", err)
	}

	// Attendance rows and the hierarchy-derived scope are independent reads.
	var (
		rows  []rowmap.Row
		scope hierarchy.Scope
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.UploadRepository.AllRows(gCtx, upload.KindAttendance)
		if err != nil {
			return fmt.Errorf("failed to load attendance rows: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		scope, err = s.HierarchyService.EffectiveScope(gCtx, caller.ScopeViewer())
		if err != nil {
			return fmt.Errorf("failed to resolve scope: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return analytics.WeeklyResponse{}, err
	}

	data, rollups, err := ComputeWeekly(rows, groupBy, breakdown, s.cfg.CompanyShortNames)
	if err != nil {
		return analytics.WeeklyResponse{}, err
	}

	filtered := FilterWeeklyByScope(data, groupBy, scope, s.cfg.CompanyShortNames)
	if filtered == nil {
		filtered = []analytics.WeeklyRow{}
	}

	return analytics.WeeklyResponse{
		Data:              filtered,
		CompanyTotalsFull: rollups,
	}, nil
}
