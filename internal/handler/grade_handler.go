package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// GradeHandler exposes enrollment and grade endpoints.
type GradeHandler struct {
	service *service.GradeService
}

// NewGradeHandler constructs grade handler.
func NewGradeHandler(svc *service.GradeService) *GradeHandler {
	return &GradeHandler{service: svc}
}

// List godoc
// @Summary List grade rows
// @Tags Grades
// @Produce json
// @Param academicTermId query string false "Academic term"
// @Param studNo query string false "Student number"
// @Param subjectId query string false "Subject"
// @Success 200 {array} models.EnrolledSubject
// @Router /grade [get]
func (h *GradeHandler) List(c *gin.Context) {
	filter := models.GradeFilter{
		StudNo:         c.Query("studNo"),
		AcademicTermID: c.Query("academicTermId"),
		SubjectID:      c.Query("subjectId"),
	}
	rows, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// Enrolled godoc
// @Summary Enrolled subjects of a student
// @Tags Grades
// @Produce json
// @Param studNo path string true "Student number"
// @Param academicTermId query string false "Term, defaults to the active term"
// @Success 200 {array} models.EnrolledSubject
// @Failure 404 {object} response.ErrorBody
// @Router /students/{studNo}/subjects [get]
func (h *GradeHandler) Enrolled(c *gin.Context) {
	rows, err := h.service.Enrolled(c.Request.Context(), c.Param("studNo"), c.Query("academicTermId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// Enroll godoc
// @Summary Enroll a student in a subject
// @Tags Grades
// @Accept json
// @Produce json
// @Param studNo path string true "Student number"
// @Param payload body service.EnrollRequest true "Enrollment"
// @Success 201 {object} models.EnrolledSubject
// @Failure 409 {object} response.ErrorBody
// @Router /students/{studNo}/subjects [post]
func (h *GradeHandler) Enroll(c *gin.Context) {
	var req service.EnrollRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.service.Enroll(c.Request.Context(), c.Param("studNo"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, row)
}

// Unenroll godoc
// @Summary Remove a subject from a student
// @Tags Grades
// @Param studNo path string true "Student number"
// @Param subjectId path string true "Subject"
// @Param academicTermId query string false "Term, defaults to the active term"
// @Success 204
// @Failure 404 {object} response.ErrorBody
// @Router /students/{studNo}/subjects/{subjectId} [delete]
func (h *GradeHandler) Unenroll(c *gin.Context) {
	err := h.service.Unenroll(c.Request.Context(), c.Param("studNo"), c.Param("subjectId"), c.Query("academicTermId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Record godoc
// @Summary Record grades for one subject
// @Tags Grades
// @Accept json
// @Produce json
// @Param studNo path string true "Student number"
// @Param payload body service.GradeRequest true "Scores"
// @Success 200 {object} models.EnrolledSubject
// @Failure 404 {object} response.ErrorBody
// @Router /students/{studNo}/grades [put]
func (h *GradeHandler) Record(c *gin.Context) {
	var req service.GradeRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.service.RecordGrades(c.Request.Context(), c.Param("studNo"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}
