package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// ActivityHandler lists account activity.
type ActivityHandler struct {
	activity *service.ActivityService
}

// NewActivityHandler constructs an activity handler.
func NewActivityHandler(activity *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// Recent godoc
// @Summary Recent sign-in activity of the current account
// @Tags Profile
// @Produce json
// @Param limit query int false "Entries to return (max 100)"
// @Success 200 {array} models.StaffLog
// @Failure 401 {object} response.ErrorBody
// @Router /profile/activity [get]
func (h *ActivityHandler) Recent(c *gin.Context) {
	staff, ok := currentStaff(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := h.activity.Recent(c.Request.Context(), staff.ID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, logs)
}
