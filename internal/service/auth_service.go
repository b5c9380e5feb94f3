package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/password"
)

type authStaffRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Staff, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type sessionIssuer interface {
	GenerateToken() (string, error)
	CreateSession(ctx context.Context, token, userID string) (*models.Session, error)
	InvalidateSession(ctx context.Context, sessionID string) error
}

type activityRecorder interface {
	Record(ctx context.Context, staffID, action, status string, meta RequestMeta)
}

// RequestMeta carries client details recorded alongside account activity.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is returned on a successful login. Token must only ever be
// handed to the client cookie.
type LoginResult struct {
	Token   string
	Session *models.Session
	Staff   *models.Staff
}

// AuthService verifies credentials and opens sessions.
type AuthService struct {
	staff     authStaffRepository
	sessions  sessionIssuer
	hasher    *password.Hasher
	activity  activityRecorder
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(staff authStaffRepository, sessions sessionIssuer, hasher *password.Hasher, activity activityRecorder, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if hasher == nil {
		hasher = password.NewHasher(password.DefaultParams)
	}
	return &AuthService{staff: staff, sessions: sessions, hasher: hasher, activity: activity, metrics: metrics, validator: validate, logger: logger}
}

// Login checks the credentials and opens a session. Unknown usernames and
// wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, meta RequestMeta) (*LoginResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "username and password are required")
	}

	staff, err := s.staff.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.hasher.VerifyDummy(req.Password)
			s.metrics.ObserveLogin(LoginInvalidCredentials)
			return nil, appErrors.ErrInvalidCredentials
		}
		s.metrics.ObserveLogin(LoginFailed)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch account")
	}

	result, err := s.hasher.Verify(staff.Password, req.Password)
	if err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.logger.Warn("stored password hash unreadable", zap.String("staff_id", staff.ID), zap.Error(err))
		}
		s.metrics.ObserveLogin(LoginInvalidCredentials)
		return nil, appErrors.ErrInvalidCredentials
	}

	if !staff.IsActive {
		s.metrics.ObserveLogin(LoginInactive)
		return nil, appErrors.ErrInactiveAccount
	}

	if result.NeedsRehash {
		s.upgradeHash(ctx, staff, req.Password)
	}

	token, err := s.sessions.GenerateToken()
	if err != nil {
		s.metrics.ObserveLogin(LoginFailed)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}
	session, err := s.sessions.CreateSession(ctx, token, staff.ID)
	if err != nil {
		s.metrics.ObserveLogin(LoginFailed)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}

	s.metrics.ObserveLogin(LoginSucceeded)
	if s.activity != nil {
		s.activity.Record(ctx, staff.ID, models.StaffActionLogin, models.StaffLogSuccess, meta)
	}
	s.logger.Info("staff logged in", zap.String("staff_id", staff.ID), zap.String("role", string(staff.Role)))

	return &LoginResult{Token: token, Session: session, Staff: staff}, nil
}

// Logout invalidates the session. Missing sessions are not an error.
func (s *AuthService) Logout(ctx context.Context, session *models.Session, meta RequestMeta) error {
	if session == nil {
		return nil
	}
	if err := s.sessions.InvalidateSession(ctx, session.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to end session")
	}
	if s.activity != nil {
		s.activity.Record(ctx, session.UserID, models.StaffActionLogout, models.StaffLogSuccess, meta)
	}
	return nil
}

func (s *AuthService) upgradeHash(ctx context.Context, staff *models.Staff, plain string) {
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		s.logger.Warn("password rehash failed", zap.String("staff_id", staff.ID), zap.Error(err))
		return
	}
	if err := s.staff.UpdatePassword(ctx, staff.ID, hash); err != nil {
		s.logger.Warn("password rehash not persisted", zap.String("staff_id", staff.ID), zap.Error(err))
		return
	}
	staff.Password = hash
}
