package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/logger"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// Context keys set by RequireSession.
const (
	ContextSessionKey = "currentSession"
	ContextStaffKey   = "currentStaff"
)

// SessionValidator resolves a session token.
type SessionValidator interface {
	ValidateToken(ctx context.Context, token string) (*models.Session, *models.Staff, error)
}

// CookieWriter re-issues the session cookie for token.
type CookieWriter func(c *gin.Context, token string, session *models.Session)

// RequireSession rejects requests without a valid session cookie and stores
// the session and its owner on the context. A renewed session gets its cookie
// re-issued through renew so the browser keeps the new expiry.
func RequireSession(sessions SessionValidator, cookieName string, renew CookieWriter, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}

		session, staff, err := sessions.ValidateToken(c.Request.Context(), token)
		if err != nil {
			log.Warn("session validation failed", zap.Error(err))
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}
		if session == nil || staff == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}
		if !staff.IsActive {
			response.Error(c, appErrors.ErrInactiveAccount)
			return
		}

		if session.Renewed && renew != nil {
			renew(c, token, session)
		}

		c.Set(ContextSessionKey, session)
		c.Set(ContextStaffKey, staff)
		c.Set(logger.StaffIDKey, staff.ID)
		c.Next()
	}
}

// CurrentStaff returns the authenticated staff member, if any.
func CurrentStaff(c *gin.Context) (*models.Staff, bool) {
	value, ok := c.Get(ContextStaffKey)
	if !ok {
		return nil, false
	}
	staff, ok := value.(*models.Staff)
	return staff, ok && staff != nil
}

// CurrentSession returns the session of the request, if any.
func CurrentSession(c *gin.Context) (*models.Session, bool) {
	value, ok := c.Get(ContextSessionKey)
	if !ok {
		return nil, false
	}
	session, ok := value.(*models.Session)
	return session, ok && session != nil
}
