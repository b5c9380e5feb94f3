package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// ProfileHandler serves the signed in account's own profile.
type ProfileHandler struct {
	service *service.ProfileService
	cookie  CookieSettings
}

// NewProfileHandler constructs a profile handler.
func NewProfileHandler(svc *service.ProfileService, cookie CookieSettings) *ProfileHandler {
	return &ProfileHandler{service: svc, cookie: cookie}
}

// UpdateInfo godoc
// @Summary Update email or password
// @Description A password change signs out every other session and re-issues the session cookie.
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body service.UpdateInfoRequest true "Profile changes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /profile/update_info [post]
func (h *ProfileHandler) UpdateInfo(c *gin.Context) {
	staff, ok := currentStaff(c)
	if !ok {
		return
	}
	var req service.UpdateInfoRequest
	if !bindJSON(c, &req) {
		return
	}
	reissued, err := h.service.UpdateInfo(c.Request.Context(), staff.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if reissued != nil {
		SetSessionCookie(c, h.cookie, reissued.Token, reissued.Session)
	}
	response.OK(c, gin.H{"success": true, "message": "Profile updated"})
}

// Picture godoc
// @Summary Current profile picture
// @Tags Profile
// @Produce json
// @Success 200 {object} service.ProfilePicture
// @Router /update_profile_picture [get]
func (h *ProfileHandler) Picture(c *gin.Context) {
	staff, ok := currentStaff(c)
	if !ok {
		return
	}
	picture, err := h.service.Picture(c.Request.Context(), staff.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, picture)
}

// SetPicture godoc
// @Summary Set profile picture
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body service.ProfilePictureRequest true "Uploaded picture reference"
// @Success 200 {object} service.ProfilePicture
// @Failure 400 {object} response.ErrorBody
// @Router /update_profile_picture [post]
func (h *ProfileHandler) SetPicture(c *gin.Context) {
	staff, ok := currentStaff(c)
	if !ok {
		return
	}
	var req service.ProfilePictureRequest
	if !bindJSON(c, &req) {
		return
	}
	picture, err := h.service.SetPicture(c.Request.Context(), staff.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, picture)
}

// PublicURL godoc
// @Summary Resolve a picture id
// @Tags Profile
// @Produce json
// @Param id query string true "Picture id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} response.ErrorBody
// @Router /public_url [get]
func (h *ProfileHandler) PublicURL(c *gin.Context) {
	link, err := h.service.PublicURL(c.Request.Context(), c.Query("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"pictureUrl": link})
}
