package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// ReportHandler exposes report card downloads.
type ReportHandler struct {
	reports *service.ReportCardService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports *service.ReportCardService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// ReportCard godoc
// @Summary Download a report card
// @Tags Reports
// @Produce application/pdf,text/csv
// @Param studNo path string true "Student number"
// @Param academicTermId query string false "Term, defaults to the active term"
// @Param format query string false "pdf (default) or csv"
// @Success 200 {file} file
// @Failure 404 {object} response.ErrorBody
// @Router /students/{studNo}/report-card [get]
func (h *ReportHandler) ReportCard(c *gin.Context) {
	report, err := h.reports.Render(c.Request.Context(), c.Param("studNo"), c.Query("academicTermId"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, report.ContentType, report.Body)
}
