package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/repository"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/password"
)

type setupRepository interface {
	Count(ctx context.Context) (int, error)
	CreateFirstAdmin(ctx context.Context, staff *models.Staff) (bool, error)
}

type pictureUploader interface {
	UploadProfilePicture(ctx context.Context, username string, upload MediaUpload) (*MediaObject, error)
	ScheduleDelete(publicID string)
}

// SetupRequest creates the first administrator.
type SetupRequest struct {
	Username  string `json:"username" form:"username" validate:"required,min=3,max=64"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" form:"firstName" validate:"omitempty,max=100"`
	LastName  string `json:"lastName" form:"lastName" validate:"omitempty,max=100"`
}

// SetupStatus reports whether the installation still needs its first admin.
type SetupStatus struct {
	NeedsSetup bool `json:"needsSetup"`
	StaffCount int  `json:"staffCount"`
}

// SetupService bootstraps a fresh installation.
type SetupService struct {
	repo      setupRepository
	media     pictureUploader
	hasher    *password.Hasher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSetupService constructs a SetupService. media may be nil.
func NewSetupService(repo setupRepository, media pictureUploader, hasher *password.Hasher, validate *validator.Validate, logger *zap.Logger) *SetupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if hasher == nil {
		hasher = password.NewHasher(password.DefaultParams)
	}
	return &SetupService{repo: repo, media: media, hasher: hasher, validator: validate, logger: logger}
}

// Status reports whether setup is still required.
func (s *SetupService) Status(ctx context.Context) (*SetupStatus, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check setup status")
	}
	return &SetupStatus{NeedsSetup: count == 0, StaffCount: count}, nil
}

// CreateAdmin creates the first admin account. It fails with a conflict once
// any staff account exists. picture is optional.
func (s *SetupService) CreateAdmin(ctx context.Context, req SetupRequest, picture *MediaUpload) (*StaffSummary, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid setup payload")
	}

	status, err := s.Status(ctx)
	if err != nil {
		return nil, err
	}
	if !status.NeedsSetup {
		return nil, appErrors.Clone(appErrors.ErrConflict, "setup has already been completed")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	admin := &models.Staff{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		Role:      models.RoleAdmin,
		FirstName: optionalString(req.FirstName),
		LastName:  optionalString(req.LastName),
	}

	if picture != nil && s.media != nil {
		obj, err := s.media.UploadProfilePicture(ctx, req.Username, *picture)
		if err != nil {
			return nil, err
		}
		admin.PictureID = &obj.PublicID
		admin.PictureURL = &obj.URL
	}

	created, err := s.repo.CreateFirstAdmin(ctx, admin)
	if err != nil || !created {
		if admin.PictureID != nil {
			s.media.ScheduleDelete(*admin.PictureID)
		}
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, appErrors.Clone(appErrors.ErrConflict, "username or email already exists")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create admin")
		}
		return nil, appErrors.Clone(appErrors.ErrConflict, "setup has already been completed")
	}

	s.logger.Info("initial admin created", zap.String("staff_id", admin.ID))
	summary := NewStaffSummary(admin)
	return &summary, nil
}
