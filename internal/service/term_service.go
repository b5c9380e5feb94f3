package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/repository"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

const (
	dateLayout         = "2006-01-02"
	activeTermCacheKey = "terms:active"
	activeTermCacheTTL = 5 * time.Minute
)

type termRepository interface {
	List(ctx context.Context) ([]models.AcademicTerm, error)
	FindByID(ctx context.Context, id string) (*models.AcademicTerm, error)
	FindActive(ctx context.Context) (*models.AcademicTerm, error)
	Create(ctx context.Context, term *models.AcademicTerm) error
	Update(ctx context.Context, term *models.AcademicTerm) error
	SetActive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// TermRequest creates or updates an academic term. Dates use YYYY-MM-DD.
type TermRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
	IsActive  bool   `json:"isActive"`
}

// TermService orchestrates academic term workflows.
type TermService struct {
	repo      termRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTermService creates a new term service instance. cache may be nil.
func NewTermService(repo termRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TermService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TermService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns terms with the active one first, then newest first.
func (s *TermService) List(ctx context.Context) ([]models.AcademicTerm, error) {
	terms, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list terms")
	}
	return terms, nil
}

// Active returns the active term.
func (s *TermService) Active(ctx context.Context) (*models.AcademicTerm, error) {
	var cached models.AcademicTerm
	if s.cache.Get(ctx, activeTermCacheKey, &cached) {
		return &cached, nil
	}
	term, err := s.repo.FindActive(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no active academic term")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active term")
	}
	s.cache.Set(ctx, activeTermCacheKey, term, activeTermCacheTTL)
	return term, nil
}

// Get returns a term by id.
func (s *TermService) Get(ctx context.Context, id string) (*models.AcademicTerm, error) {
	term, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academic term not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load term")
	}
	return term, nil
}

// Create stores a term. Creating an active term deactivates the previous one.
func (s *TermService) Create(ctx context.Context, req TermRequest) (*models.AcademicTerm, error) {
	term, err := s.buildTerm(req)
	if err != nil {
		return nil, err
	}
	term.IsActive = req.IsActive
	if err := s.repo.Create(ctx, term); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "another term became active concurrently")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create term")
	}
	if term.IsActive {
		s.cache.Invalidate(ctx, activeTermCacheKey)
	}
	s.logger.Info("academic term created", zap.String("term_id", term.ID), zap.Bool("active", term.IsActive))
	return term, nil
}

// Update changes the name and dates of a term.
func (s *TermService) Update(ctx context.Context, id string, req TermRequest) (*models.AcademicTerm, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	term, err := s.buildTerm(req)
	if err != nil {
		return nil, err
	}
	term.ID = existing.ID
	term.IsActive = existing.IsActive
	if err := s.repo.Update(ctx, term); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academic term not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update term")
	}
	if req.IsActive && !existing.IsActive {
		return s.Activate(ctx, id)
	}
	if term.IsActive {
		s.cache.Invalidate(ctx, activeTermCacheKey)
	}
	return term, nil
}

// Activate makes id the single active term.
func (s *TermService) Activate(ctx context.Context, id string) (*models.AcademicTerm, error) {
	if err := s.repo.SetActive(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academic term not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Clone(appErrors.ErrConflict, "another term became active concurrently")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to activate term")
	}
	s.cache.Invalidate(ctx, activeTermCacheKey)
	s.logger.Info("academic term activated", zap.String("term_id", id))
	return s.Get(ctx, id)
}

// Delete removes an inactive term that nothing references.
func (s *TermService) Delete(ctx context.Context, id string) error {
	term, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if term.IsActive {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "the active term cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "academic term not found")
		case errors.Is(err, repository.ErrReferenced):
			return appErrors.Clone(appErrors.ErrConflict, "term is used by sections, schedules or grades")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete term")
	}
	return nil
}

func (s *TermService) buildTerm(req TermRequest) (*models.AcademicTerm, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid term payload")
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
	}
	return &models.AcademicTerm{Name: req.Name, StartDate: start, EndDate: end}, nil
}
