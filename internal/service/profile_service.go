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
	"github.com/noah-isme/school-admin-api/pkg/password"
)

type profileRepository interface {
	FindByID(ctx context.Context, id string) (*models.Staff, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email, excludeID string) (bool, error)
	UpdateInfo(ctx context.Context, id, email, passwordHash string) error
	UpdatePicture(ctx context.Context, id string, pictureID, pictureURL *string) error
	FindPictureByMediaID(ctx context.Context, pictureID string) (string, error)
}

type sessionRevoker interface {
	GenerateToken() (string, error)
	CreateSession(ctx context.Context, token, userID string) (*models.Session, error)
	InvalidateUserSessions(ctx context.Context, userID string) error
}

type mediaResolver interface {
	URL(ctx context.Context, publicID string) (string, error)
	ScheduleDelete(publicID string)
}

// UpdateInfoRequest changes the email and/or password of the signed in account.
type UpdateInfoRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// ProfilePictureRequest sets the account picture.
type ProfilePictureRequest struct {
	PictureID  string `json:"pictureId" validate:"required"`
	PictureURL string `json:"pictureUrl" validate:"omitempty,url"`
}

// ReissuedSession replaces the caller's session after a password change.
type ReissuedSession struct {
	Token   string
	Session *models.Session
}

// ProfilePicture is the picture reference of an account.
type ProfilePicture struct {
	PictureID  *string `json:"pictureId"`
	PictureURL *string `json:"pictureUrl"`
}

// ProfileService serves the signed in staff member's own account.
type ProfileService struct {
	repo      profileRepository
	media     mediaResolver
	sessions  sessionRevoker
	hasher    *password.Hasher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfileService constructs a ProfileService. media and sessions may be nil.
func NewProfileService(repo profileRepository, media mediaResolver, sessions sessionRevoker, hasher *password.Hasher, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if hasher == nil {
		hasher = password.NewHasher(password.DefaultParams)
	}
	return &ProfileService{repo: repo, media: media, sessions: sessions, hasher: hasher, validator: validate, logger: logger}
}

// UpdateInfo updates email and/or password. Absent fields keep their value.
// A password change revokes every session of the account and opens a new one
// for the caller, returned so it can be handed back in the cookie.
func (s *ProfileService) UpdateInfo(ctx context.Context, staffID string, req UpdateInfoRequest) (*ReissuedSession, error) {
	if req.Email != nil {
		trimmed := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &trimmed
		if trimmed == "" {
			req.Email = nil
		}
	}
	if req.Password != nil && *req.Password == "" {
		req.Password = nil
	}
	if req.Email == nil && req.Password == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email or password is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	var email string
	if req.Email != nil {
		email = *req.Email
		taken, err := s.repo.ExistsByUsernameOrEmail(ctx, "", email, staffID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
		}
		if taken {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already in use")
		}
	}

	var hash string
	if req.Password != nil {
		var err error
		hash, err = s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
	}

	if err := s.repo.UpdateInfo(ctx, staffID, email, hash); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}
	s.logger.Info("profile updated", zap.String("staff_id", staffID), zap.Bool("email", req.Email != nil), zap.Bool("password", req.Password != nil))

	if req.Password == nil || s.sessions == nil {
		return nil, nil
	}
	return s.reissueSession(ctx, staffID)
}

func (s *ProfileService) reissueSession(ctx context.Context, staffID string) (*ReissuedSession, error) {
	if err := s.sessions.InvalidateUserSessions(ctx, staffID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke sessions")
	}
	token, err := s.sessions.GenerateToken()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}
	session, err := s.sessions.CreateSession(ctx, token, staffID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}
	return &ReissuedSession{Token: token, Session: session}, nil
}

// Picture returns the account picture with a freshly resolved URL when the
// media host still has the object.
func (s *ProfileService) Picture(ctx context.Context, staffID string) (*ProfilePicture, error) {
	staff, err := s.repo.FindByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	picture := &ProfilePicture{PictureID: staff.PictureID, PictureURL: staff.PictureURL}
	if staff.PictureID != nil && s.media != nil {
		if link, err := s.media.URL(ctx, *staff.PictureID); err == nil {
			picture.PictureURL = &link
		}
	}
	return picture, nil
}

// SetPicture points the account at an uploaded picture. The previous object
// is queued for deletion when it differs from the new one.
func (s *ProfileService) SetPicture(ctx context.Context, staffID string, req ProfilePictureRequest) (*ProfilePicture, error) {
	req.PictureID = strings.TrimSpace(req.PictureID)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "pictureId is required")
	}

	current, err := s.repo.FindByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}

	pictureURL := req.PictureURL
	if s.media != nil {
		link, err := s.media.URL(ctx, req.PictureID)
		if err != nil {
			return nil, err
		}
		pictureURL = link
	}
	if pictureURL == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "pictureUrl is required")
	}

	if err := s.repo.UpdatePicture(ctx, staffID, &req.PictureID, &pictureURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update picture")
	}

	if current.PictureID != nil && *current.PictureID != req.PictureID && s.media != nil {
		s.media.ScheduleDelete(*current.PictureID)
	}
	return &ProfilePicture{PictureID: &req.PictureID, PictureURL: &pictureURL}, nil
}

// PublicURL resolves a picture id to a URL, preferring a fresh link from the
// media host over the stored one.
func (s *ProfileService) PublicURL(ctx context.Context, pictureID string) (string, error) {
	pictureID = strings.TrimSpace(pictureID)
	if pictureID == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	if s.media != nil {
		if link, err := s.media.URL(ctx, pictureID); err == nil {
			return link, nil
		}
	}
	stored, err := s.repo.FindPictureByMediaID(ctx, pictureID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "picture not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve picture")
	}
	return stored, nil
}
