package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/service"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// SetupHandler serves the first-run bootstrap.
type SetupHandler struct {
	service *service.SetupService
}

// NewSetupHandler constructs a setup handler.
func NewSetupHandler(svc *service.SetupService) *SetupHandler {
	return &SetupHandler{service: svc}
}

// Status godoc
// @Summary First-run status
// @Tags Setup
// @Produce json
// @Success 200 {object} service.SetupStatus
// @Router /setup [get]
func (h *SetupHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, status)
}

// Create godoc
// @Summary Create the first administrator
// @Description Accepts JSON or multipart form data with an optional picture file
// @Tags Setup
// @Accept json,mpfd
// @Produce json
// @Param payload body service.SetupRequest true "Administrator"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /setup [post]
func (h *SetupHandler) Create(c *gin.Context) {
	var req service.SetupRequest
	var picture *service.MediaUpload

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
		header, err := c.FormFile("picture")
		switch {
		case err == nil:
			file, openErr := header.Open()
			if openErr != nil {
				response.Error(c, appErrors.Wrap(openErr, appErrors.ErrValidation.Code, http.StatusBadRequest, "unable to read picture"))
				return
			}
			defer file.Close()
			picture = &service.MediaUpload{Body: file, Size: header.Size, ContentType: header.Header.Get("Content-Type")}
		case !errors.Is(err, http.ErrMissingFile):
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid picture upload"))
			return
		}
	} else if !bindJSON(c, &req) {
		return
	}

	staff, err := h.service.CreateAdmin(c.Request.Context(), req, picture)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"success": true, "staff": staff})
}
