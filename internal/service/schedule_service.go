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

const clockLayout = "15:04"

var weekdays = map[string]string{
	"monday":    "Monday",
	"tuesday":   "Tuesday",
	"wednesday": "Wednesday",
	"thursday":  "Thursday",
	"friday":    "Friday",
	"saturday":  "Saturday",
	"sunday":    "Sunday",
}

type scheduleRepository interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleDetail, error)
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
	FindOverlapping(ctx context.Context, candidate *models.Schedule) ([]models.Schedule, error)
	Create(ctx context.Context, schedule *models.Schedule) error
	Update(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id string) error
}

type activeTermProvider interface {
	Active(ctx context.Context) (*models.AcademicTerm, error)
}

// ScheduleRequest creates or replaces a schedule. Times use 24 hour HH:MM.
// An omitted academicTermId targets the active term.
type ScheduleRequest struct {
	SubjectID      string  `json:"subjectId" validate:"required"`
	TeacherID      *string `json:"teacherId"`
	AcademicTermID string  `json:"academicTermId"`
	SectionID      *string `json:"sectionId"`
	Day            string  `json:"day" validate:"required"`
	StartTime      string  `json:"startTime" validate:"required"`
	EndTime        string  `json:"endTime" validate:"required"`
	IsActive       *bool   `json:"isActive"`
}

// ScheduleService manages weekly schedules and rejects overlapping slots.
type ScheduleService struct {
	repo      scheduleRepository
	terms     activeTermProvider
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(repo scheduleRepository, terms activeTermProvider, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, terms: terms, validator: validate, logger: logger}
}

// List returns schedules matching the filter.
func (s *ScheduleService) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleDetail, error) {
	if filter.Day != "" {
		day, ok := normalizeDay(filter.Day)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid day")
		}
		filter.Day = day
	}
	schedules, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return schedules, nil
}

// Create validates and stores a schedule.
func (s *ScheduleService) Create(ctx context.Context, req ScheduleRequest) (*models.Schedule, error) {
	schedule, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNoConflict(ctx, schedule); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, scheduleWriteError(err)
	}
	return schedule, nil
}

// Update replaces a schedule.
func (s *ScheduleService) Update(ctx context.Context, id string, req ScheduleRequest) (*models.Schedule, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	schedule, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	schedule.ID = id
	if err := s.ensureNoConflict(ctx, schedule); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, schedule); err != nil {
		return nil, scheduleWriteError(err)
	}
	return schedule, nil
}

// Delete removes a schedule.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}
	return nil
}

func (s *ScheduleService) build(ctx context.Context, req ScheduleRequest) (*models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	day, ok := normalizeDay(req.Day)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "day must be a weekday name")
	}
	start, err := normalizeClock(req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startTime must be HH:MM")
	}
	end, err := normalizeClock(req.EndTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endTime must be HH:MM")
	}
	if end <= start {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endTime must be after startTime")
	}

	termID := strings.TrimSpace(req.AcademicTermID)
	if termID == "" {
		if s.terms == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "academicTermId is required")
		}
		term, err := s.terms.Active(ctx)
		if err != nil {
			return nil, err
		}
		termID = term.ID
	}

	schedule := &models.Schedule{
		SubjectID:      req.SubjectID,
		TeacherID:      nonEmpty(req.TeacherID),
		AcademicTermID: termID,
		SectionID:      nonEmpty(req.SectionID),
		Day:            day,
		StartTime:      start,
		EndTime:        end,
		IsActive:       true,
	}
	if req.IsActive != nil {
		schedule.IsActive = *req.IsActive
	}
	return schedule, nil
}

// ensureNoConflict rejects an active schedule whose slot overlaps another
// active schedule of the same teacher or section in the same term and day.
func (s *ScheduleService) ensureNoConflict(ctx context.Context, schedule *models.Schedule) error {
	if !schedule.IsActive {
		return nil
	}
	overlapping, err := s.repo.FindOverlapping(ctx, schedule)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check schedule conflicts")
	}
	if len(overlapping) == 0 {
		return nil
	}

	conflicts := make([]models.ScheduleConflict, 0, len(overlapping))
	for _, existing := range overlapping {
		dimension := "SECTION"
		if schedule.TeacherID != nil && existing.TeacherID != nil && *schedule.TeacherID == *existing.TeacherID {
			dimension = "TEACHER"
		}
		conflicts = append(conflicts, models.ScheduleConflict{
			ScheduleID: existing.ID,
			Dimension:  dimension,
			Day:        existing.Day,
			StartTime:  existing.StartTime,
			EndTime:    existing.EndTime,
		})
	}
	domainErr := &models.ScheduleConflictError{
		Message:   "schedule overlaps an existing slot",
		Code:      appErrors.ErrConflict.Code,
		Conflicts: conflicts,
	}
	return appErrors.Wrap(domainErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, domainErr.Message)
}

func scheduleWriteError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
	case errors.Is(err, repository.ErrMissingReference):
		return appErrors.Clone(appErrors.ErrValidation, "subject, teacher, section or term does not exist")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save schedule")
}

func normalizeDay(day string) (string, bool) {
	name, ok := weekdays[strings.ToLower(strings.TrimSpace(day))]
	return name, ok
}

func normalizeClock(value string) (string, error) {
	parsed, err := time.Parse(clockLayout, strings.TrimSpace(value))
	if err != nil {
		return "", err
	}
	return parsed.Format(clockLayout), nil
}

func nonEmpty(value *string) *string {
	if value == nil {
		return nil
	}
	return optionalString(*value)
}
