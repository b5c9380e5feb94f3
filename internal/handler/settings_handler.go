package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// SettingsHandler manages per staff UI preferences.
type SettingsHandler struct {
	service *service.SettingsService
}

// NewSettingsHandler constructs a settings handler.
func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

// Get godoc
// @Summary Read settings
// @Tags Settings
// @Produce json
// @Success 200 {object} models.Settings
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	staff, ok := currentStaff(c)
	if !ok {
		return
	}
	settings, err := h.service.Get(c.Request.Context(), staff.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, settings)
}

// Save godoc
// @Summary Save settings
// @Description Creates or updates the caller's settings. Omitted fields keep their value.
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body service.SettingsRequest true "Settings"
// @Success 200 {object} models.Settings
// @Failure 400 {object} response.ErrorBody
// @Router /settings [post]
// @Router /settings [put]
func (h *SettingsHandler) Save(c *gin.Context) {
	staff, ok := currentStaff(c)
	if !ok {
		return
	}
	var req service.SettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.service.Save(c.Request.Context(), staff.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, settings)
}
