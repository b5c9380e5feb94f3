package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// EncryptedPayload wraps a cipher text produced by the payload cipher.
type EncryptedPayload struct {
	EncryptedData string `json:"encryptedData" binding:"required"`
}

// StaffHandler manages staff accounts.
type StaffHandler struct {
	service *service.StaffService
}

// NewStaffHandler constructs a staff handler.
func NewStaffHandler(svc *service.StaffService) *StaffHandler {
	return &StaffHandler{service: svc}
}

// List godoc
// @Summary List staff (encrypted)
// @Description Returns the staff list encrypted with the shared payload key
// @Tags Staff
// @Produce json
// @Param role query string false "Filter by role"
// @Param isActive query bool false "Filter by active flag"
// @Param search query string false "Search username, email or name"
// @Success 200 {object} EncryptedPayload
// @Router /staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	filter := models.StaffFilter{Role: models.StaffRole(c.Query("role")), Search: c.Query("search")}
	if raw := c.Query("isActive"); raw != "" {
		if val, err := strconv.ParseBool(raw); err == nil {
			filter.IsActive = &val
		}
	}
	encrypted, err := h.service.ListEncrypted(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, EncryptedPayload{EncryptedData: encrypted})
}

// CreateEncrypted godoc
// @Summary Create staff from an encrypted payload
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body EncryptedPayload true "Encrypted CreateStaffRequest"
// @Success 201 {object} service.StaffSummary
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /staff [post]
func (h *StaffHandler) CreateEncrypted(c *gin.Context) {
	var req EncryptedPayload
	if !bindJSON(c, &req) {
		return
	}
	staff, err := h.service.CreateEncrypted(c.Request.Context(), req.EncryptedData)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, staff)
}

// Create godoc
// @Summary Create staff
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body service.CreateStaffRequest true "Staff payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /staff/add_staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req service.CreateStaffRequest
	if !bindJSON(c, &req) {
		return
	}
	staff, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"success": true, "staff": staff, "message": "Staff account created"})
}
