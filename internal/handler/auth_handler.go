package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Success  bool             `json:"success"`
	Username string           `json:"username"`
	Role     models.StaffRole `json:"role"`
}

// SessionIdentity is the public identity of the signed in account.
type SessionIdentity struct {
	ID       string           `json:"id"`
	Username string           `json:"username"`
	Role     models.StaffRole `json:"role"`
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
	cookie  CookieSettings
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{service: svc, cookie: cookie}
}

// Login godoc
// @Summary Authenticate staff
// @Description Verifies credentials and sets the session cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body service.LoginRequest true "Login payload"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.service.Login(c.Request.Context(), req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	SetSessionCookie(c, h.cookie, res.Token, res.Session)
	response.OK(c, LoginResponse{Success: true, Username: res.Staff.Username, Role: res.Staff.Role})
}

// Logout godoc
// @Summary End the current session
// @Tags Authentication
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 401 {object} response.ErrorBody
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	session, _ := middleware.CurrentSession(c)
	if err := h.service.Logout(c.Request.Context(), session, requestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}
	DeleteSessionCookie(c, h.cookie)
	response.OK(c, gin.H{"success": true})
}

// Session godoc
// @Summary Current session identity
// @Tags Authentication
// @Produce json
// @Success 200 {object} SessionIdentity
// @Failure 401 {object} response.ErrorBody
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	staff, ok := currentStaff(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, SessionIdentity{ID: staff.ID, Username: staff.Username, Role: staff.Role}, nil)
}
