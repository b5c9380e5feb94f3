package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/repository"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type catalogRepository interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id string) error
	ListYearLevels(ctx context.Context) ([]models.YearLevel, error)
	CreateYearLevel(ctx context.Context, level *models.YearLevel) error
	ListSections(ctx context.Context, filter models.SectionFilter) ([]models.Section, error)
	CreateSection(ctx context.Context, section *models.Section) error
	DeleteSection(ctx context.Context, id string) error
}

// CourseRequest creates a course.
type CourseRequest struct {
	Code       string `json:"code" validate:"required,max=32"`
	Name       string `json:"name" validate:"required,max=200"`
	TotalUnits int    `json:"totalUnits" validate:"min=0"`
	IsActive   *bool  `json:"isActive"`
}

// YearLevelRequest creates a year level.
type YearLevelRequest struct {
	Level int    `json:"level" validate:"required,min=1,max=20"`
	Name  string `json:"name" validate:"required,max=100"`
}

// SectionRequest creates a section.
type SectionRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	CourseID       string `json:"courseId" validate:"required"`
	YearLevelID    string `json:"yearLevelId" validate:"required"`
	AcademicTermID string `json:"academicTermId" validate:"required"`
	MaxStudents    *int   `json:"maxStudents" validate:"omitempty,min=1,max=500"`
	IsActive       *bool  `json:"isActive"`
}

// CatalogService manages courses, year levels and sections.
type CatalogService struct {
	repo      catalogRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(repo catalogRepository, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, validator: validate, logger: logger}
}

// ListCourses returns all courses.
func (s *CatalogService) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// CreateCourse stores a course with a unique code.
func (s *CatalogService) CreateCourse(ctx context.Context, req CourseRequest) (*models.Course, error) {
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := &models.Course{Code: req.Code, Name: req.Name, TotalUnits: req.TotalUnits, IsActive: true}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		return nil, catalogWriteError(err, "course")
	}
	return course, nil
}

// DeleteCourse removes a course without sections.
func (s *CatalogService) DeleteCourse(ctx context.Context, id string) error {
	if err := s.repo.DeleteCourse(ctx, id); err != nil {
		return catalogWriteError(err, "course")
	}
	return nil
}

// ListYearLevels returns all year levels.
func (s *CatalogService) ListYearLevels(ctx context.Context) ([]models.YearLevel, error) {
	levels, err := s.repo.ListYearLevels(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list year levels")
	}
	return levels, nil
}

// CreateYearLevel stores a year level with a unique level number.
func (s *CatalogService) CreateYearLevel(ctx context.Context, req YearLevelRequest) (*models.YearLevel, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid year level payload")
	}
	level := &models.YearLevel{Level: req.Level, Name: req.Name}
	if err := s.repo.CreateYearLevel(ctx, level); err != nil {
		return nil, catalogWriteError(err, "year level")
	}
	return level, nil
}

// ListSections returns sections matching the filter.
func (s *CatalogService) ListSections(ctx context.Context, filter models.SectionFilter) ([]models.Section, error) {
	sections, err := s.repo.ListSections(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
	}
	return sections, nil
}

// CreateSection stores a section.
func (s *CatalogService) CreateSection(ctx context.Context, req SectionRequest) (*models.Section, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}
	section := &models.Section{
		Name:           req.Name,
		CourseID:       req.CourseID,
		YearLevelID:    req.YearLevelID,
		AcademicTermID: req.AcademicTermID,
		MaxStudents:    40,
		IsActive:       true,
	}
	if req.MaxStudents != nil {
		section.MaxStudents = *req.MaxStudents
	}
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}
	if err := s.repo.CreateSection(ctx, section); err != nil {
		return nil, catalogWriteError(err, "section")
	}
	return section, nil
}

// DeleteSection removes an unscheduled section.
func (s *CatalogService) DeleteSection(ctx context.Context, id string) error {
	if err := s.repo.DeleteSection(ctx, id); err != nil {
		return catalogWriteError(err, "section")
	}
	return nil
}

func catalogWriteError(err error, entity string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Clone(appErrors.ErrConflict, entity+" already exists")
	case errors.Is(err, repository.ErrReferenced):
		return appErrors.Clone(appErrors.ErrConflict, entity+" is still in use")
	case errors.Is(err, repository.ErrMissingReference):
		return appErrors.Clone(appErrors.ErrValidation, entity+" references an unknown record")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save "+entity)
}
