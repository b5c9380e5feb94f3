package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// TermHandler exposes academic term endpoints.
type TermHandler struct {
	service *service.TermService
}

// NewTermHandler constructs a term handler.
func NewTermHandler(svc *service.TermService) *TermHandler {
	return &TermHandler{service: svc}
}

// List godoc
// @Summary List academic terms
// @Description Active term first, then newest first
// @Tags Terms
// @Produce json
// @Success 200 {array} models.AcademicTerm
// @Router /academic-terms [get]
func (h *TermHandler) List(c *gin.Context) {
	terms, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, terms)
}

// Active godoc
// @Summary Get active term
// @Tags Terms
// @Produce json
// @Success 200 {object} models.AcademicTerm
// @Failure 404 {object} response.ErrorBody
// @Router /academic-terms/active [get]
func (h *TermHandler) Active(c *gin.Context) {
	term, err := h.service.Active(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, term)
}

// Create godoc
// @Summary Create academic term
// @Description Creating an active term deactivates the previous one
// @Tags Terms
// @Accept json
// @Produce json
// @Param payload body service.TermRequest true "Term payload"
// @Success 201 {object} models.AcademicTerm
// @Failure 400 {object} response.ErrorBody
// @Router /academic-terms [post]
func (h *TermHandler) Create(c *gin.Context) {
	var req service.TermRequest
	if !bindJSON(c, &req) {
		return
	}
	term, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, term)
}

// Update godoc
// @Summary Update academic term
// @Tags Terms
// @Accept json
// @Produce json
// @Param id path string true "Term ID"
// @Param payload body service.TermRequest true "Term payload"
// @Success 200 {object} models.AcademicTerm
// @Failure 404 {object} response.ErrorBody
// @Router /academic-terms/{id} [put]
func (h *TermHandler) Update(c *gin.Context) {
	var req service.TermRequest
	if !bindJSON(c, &req) {
		return
	}
	term, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, term)
}

// Activate godoc
// @Summary Activate academic term
// @Tags Terms
// @Produce json
// @Param id path string true "Term ID"
// @Success 200 {object} models.AcademicTerm
// @Failure 404 {object} response.ErrorBody
// @Router /academic-terms/{id}/activate [post]
func (h *TermHandler) Activate(c *gin.Context) {
	term, err := h.service.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, term)
}

// Delete godoc
// @Summary Delete academic term
// @Tags Terms
// @Param id path string true "Term ID"
// @Success 204
// @Failure 409 {object} response.ErrorBody
// @Failure 412 {object} response.ErrorBody
// @Router /academic-terms/{id} [delete]
func (h *TermHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
