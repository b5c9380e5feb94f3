package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/pkg/config"
)

const (
	sessionTokenBytes         = 20
	defaultSessionTTL         = 30 * 24 * time.Hour
	defaultSessionRenewWindow = 15 * 24 * time.Hour
)

type sessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindWithStaff(ctx context.Context, id string) (*models.SessionWithStaff, error)
	UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionService issues and validates opaque session tokens. Only the SHA-256
// of a token is stored; the token itself lives in the client cookie.
type SessionService struct {
	repo        sessionRepository
	metrics     *MetricsService
	logger      *zap.Logger
	ttl         time.Duration
	renewWindow time.Duration
	now         func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo sessionRepository, cfg config.SessionConfig, metrics *MetricsService, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	renew := cfg.RenewWindow
	if renew <= 0 || renew >= ttl {
		renew = ttl / 2
	}
	return &SessionService{
		repo:        repo,
		metrics:     metrics,
		logger:      logger,
		ttl:         ttl,
		renewWindow: renew,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// TTL returns the lifetime given to new and renewed sessions.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// GenerateToken returns a fresh 160-bit token encoded as unpadded base64url.
func (s *SessionService) GenerateToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// SessionID derives the stored session identifier from a token.
func SessionID(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CreateSession persists a session for userID keyed by the token hash.
func (s *SessionService) CreateSession(ctx context.Context, token, userID string) (*models.Session, error) {
	now := s.now()
	session := &models.Session{
		ID:        SessionID(token),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	s.metrics.ObserveSession(SessionCreated)
	return session, nil
}

// ValidateToken resolves a token to its session and owner. A missing or
// expired session yields (nil, nil, nil). Sessions inside the renewal window
// are extended to a full TTL and come back with Renewed set.
func (s *SessionService) ValidateToken(ctx context.Context, token string) (*models.Session, *models.Staff, error) {
	if token == "" {
		return nil, nil, nil
	}
	id := SessionID(token)
	row, err := s.repo.FindWithStaff(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	if row == nil {
		return nil, nil, nil
	}

	session := row.Session
	staff := row.Staff
	now := s.now()

	if !now.Before(session.ExpiresAt) {
		if err := s.repo.Delete(ctx, session.ID); err != nil {
			return nil, nil, err
		}
		s.metrics.ObserveSession(SessionExpired)
		return nil, nil, nil
	}

	if !now.Before(session.ExpiresAt.Add(-s.renewWindow)) {
		session.ExpiresAt = now.Add(s.ttl)
		session.Renewed = true
		if err := s.repo.UpdateExpiry(ctx, session.ID, session.ExpiresAt); err != nil {
			return nil, nil, err
		}
		s.metrics.ObserveSession(SessionRenewed)
	}

	return &session, &staff, nil
}

// InvalidateSession deletes a session. An empty id is a no-op.
func (s *SessionService) InvalidateSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.metrics.ObserveSession(SessionInvalidated)
	return nil
}

// InvalidateUserSessions deletes every session belonging to userID.
func (s *SessionService) InvalidateUserSessions(ctx context.Context, userID string) error {
	n, err := s.repo.DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}
	s.logger.Info("sessions revoked", zap.String("staff_id", userID), zap.Int64("count", n))
	return nil
}

// PurgeExpired removes sessions whose expiry has passed.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	s.metrics.ObserveSessionsPurged(n)
	return n, nil
}

// RunPurger calls PurgeExpired every interval until ctx is cancelled.
func (s *SessionService) RunPurger(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				s.logger.Warn("session purge failed", zap.Error(err))
				continue
			}
			if n > 0 {
				s.logger.Info("expired sessions purged", zap.Int64("count", n))
			}
		}
	}
}
