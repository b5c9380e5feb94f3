package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// CatalogHandler serves courses, year levels and sections.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs a catalog handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// ListCourses godoc
// @Summary List courses
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.Course
// @Router /courses [get]
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses)
}

// CreateCourse godoc
// @Summary Create course
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body service.CourseRequest true "Course"
// @Success 201 {object} models.Course
// @Failure 409 {object} response.ErrorBody
// @Router /courses [post]
func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var req service.CourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.service.CreateCourse(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// DeleteCourse godoc
// @Summary Delete course
// @Tags Catalog
// @Param id path string true "Course ID"
// @Success 204
// @Failure 409 {object} response.ErrorBody
// @Router /courses/{id} [delete]
func (h *CatalogHandler) DeleteCourse(c *gin.Context) {
	if err := h.service.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListYearLevels godoc
// @Summary List year levels
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.YearLevel
// @Router /year-levels [get]
func (h *CatalogHandler) ListYearLevels(c *gin.Context) {
	levels, err := h.service.ListYearLevels(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, levels)
}

// CreateYearLevel godoc
// @Summary Create year level
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body service.YearLevelRequest true "Year level"
// @Success 201 {object} models.YearLevel
// @Router /year-levels [post]
func (h *CatalogHandler) CreateYearLevel(c *gin.Context) {
	var req service.YearLevelRequest
	if !bindJSON(c, &req) {
		return
	}
	level, err := h.service.CreateYearLevel(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, level)
}

// ListSections godoc
// @Summary List sections
// @Tags Catalog
// @Produce json
// @Param courseId query string false "Course"
// @Param yearLevelId query string false "Year level"
// @Param academicTermId query string false "Academic term"
// @Success 200 {array} models.Section
// @Router /sections [get]
func (h *CatalogHandler) ListSections(c *gin.Context) {
	filter := models.SectionFilter{
		CourseID:       c.Query("courseId"),
		YearLevelID:    c.Query("yearLevelId"),
		AcademicTermID: c.Query("academicTermId"),
	}
	sections, err := h.service.ListSections(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sections)
}

// CreateSection godoc
// @Summary Create section
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body service.SectionRequest true "Section"
// @Success 201 {object} models.Section
// @Failure 400 {object} response.ErrorBody
// @Router /sections [post]
func (h *CatalogHandler) CreateSection(c *gin.Context) {
	var req service.SectionRequest
	if !bindJSON(c, &req) {
		return
	}
	section, err := h.service.CreateSection(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, section)
}

// DeleteSection godoc
// @Summary Delete section
// @Tags Catalog
// @Param id path string true "Section ID"
// @Success 204
// @Router /sections/{id} [delete]
func (h *CatalogHandler) DeleteSection(c *gin.Context) {
	if err := h.service.DeleteSection(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
