package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

const (
	defaultTheme    = "system"
	defaultLanguage = "en"
)

type settingsRepository interface {
	FindByStaffID(ctx context.Context, staffID string) (*models.Settings, error)
	Upsert(ctx context.Context, settings *models.Settings) error
}

// SettingsRequest updates UI preferences. Omitted fields keep their value.
type SettingsRequest struct {
	Theme         *string `json:"theme" validate:"omitempty,oneof=light dark system"`
	Language      *string `json:"language" validate:"omitempty,min=2,max=10"`
	Notifications *bool   `json:"notifications"`
}

// SettingsService manages per staff UI preferences.
type SettingsService struct {
	repo      settingsRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(repo settingsRepository, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SettingsService{repo: repo, validator: validate, logger: logger}
}

// Get returns stored preferences or the defaults when none were saved.
func (s *SettingsService) Get(ctx context.Context, staffID string) (*models.Settings, error) {
	settings, err := s.repo.FindByStaffID(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.Settings{StaffID: staffID, Theme: defaultTheme, Language: defaultLanguage, Notifications: true}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}
	return settings, nil
}

// Save merges req into the current preferences and stores them.
func (s *SettingsService) Save(ctx context.Context, staffID string, req SettingsRequest) (*models.Settings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}
	settings, err := s.Get(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.Language != nil {
		settings.Language = *req.Language
	}
	if req.Notifications != nil {
		settings.Notifications = *req.Notifications
	}
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save settings")
	}
	return settings, nil
}
