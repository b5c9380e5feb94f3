package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

const dashboardCountsCacheKey = "dashboard:counts"

type dashboardRepository interface {
	Counts(ctx context.Context) (*models.DashboardCounts, error)
}

// DashboardService composes the post-login dashboard.
type DashboardService struct {
	repo     dashboardRepository
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService constructs a DashboardService. cache may be nil.
func NewDashboardService(repo dashboardRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger, now: time.Now}
}

// Summary returns the dashboard for staff and reports whether the counts came
// from cache.
func (s *DashboardService) Summary(ctx context.Context, staff *models.Staff) (*models.DashboardSummary, bool, error) {
	if staff == nil {
		return nil, false, appErrors.ErrUnauthorized
	}

	var counts models.DashboardCounts
	hit := s.cache.Get(ctx, dashboardCountsCacheKey, &counts)
	if !hit {
		fresh, err := s.repo.Counts(ctx)
		if err != nil {
			return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dashboard")
		}
		counts = *fresh
		s.cache.Set(ctx, dashboardCountsCacheKey, counts, s.cacheTTL)
	}

	return &models.DashboardSummary{
		StaffName:       staff.DisplayName(),
		Role:            staff.Role,
		GeneratedAt:     s.now().UTC(),
		DashboardCounts: counts,
	}, hit, nil
}

// Invalidate drops the cached counts.
func (s *DashboardService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, dashboardCountsCacheKey)
}
