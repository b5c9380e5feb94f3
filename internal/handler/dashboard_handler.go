package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// DashboardHandler exposes dashboard statistics.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Summary godoc
// @Summary Dashboard counts
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardSummary
// @Failure 401 {object} response.ErrorBody
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	staff, ok := currentStaff(c)
	if !ok {
		return
	}
	summary, hit, err := h.service.Summary(c.Request.Context(), staff)
	if err != nil {
		response.Error(c, err)
		return
	}
	if hit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	response.OK(c, summary)
}
