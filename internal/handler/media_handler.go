package handler

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/service"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
	"github.com/noah-isme/school-admin-api/pkg/storage"
)

// multipart framing allowance on top of the file size limit
const uploadOverhead = 1 << 20

// SignedMediaOpener opens locally hosted media from a signed token.
type SignedMediaOpener interface {
	OpenSigned(token string) (*os.File, string, error)
}

// MediaHandler handles picture uploads and downloads.
type MediaHandler struct {
	service *service.MediaService
	local   SignedMediaOpener
	logger  *zap.Logger
}

// NewMediaHandler constructs a media handler. local is nil unless media is
// hosted on disk.
func NewMediaHandler(svc *service.MediaService, local SignedMediaOpener, logger *zap.Logger) *MediaHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MediaHandler{service: svc, local: local, logger: logger}
}

// Upload godoc
// @Summary Upload a profile picture
// @Tags Media
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 413 {object} response.ErrorBody
// @Failure 503 {object} response.ErrorBody
// @Router /pic_api [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	staff, ok := currentStaff(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.service.MaxBytes()+uploadOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, appErrors.Clone(appErrors.ErrPayloadTooLarge, "file too large"))
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "no file uploaded"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unable to read upload"))
		return
	}
	defer file.Close()

	obj, err := h.service.UploadProfilePicture(c.Request.Context(), staff.Username, service.MediaUpload{
		Body:        file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true, "data": obj})
}

// Lookup godoc
// @Summary Resolve an uploaded picture
// @Tags Media
// @Produce json
// @Param public_id query string true "Public id returned by the upload"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /pic_api [get]
func (h *MediaHandler) Lookup(c *gin.Context) {
	publicID := c.Query("public_id")
	link, err := h.service.URL(c.Request.Context(), publicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true, "data": gin.H{"url": link, "public_id": publicID}})
}

// Serve streams a locally hosted object referenced by a signed token.
func (h *MediaHandler) Serve(c *gin.Context) {
	if h.local == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	token := c.Param("token")
	if len(token) > 0 && token[0] == '/' {
		token = token[1:]
	}

	file, contentType, err := h.local.OpenSigned(token)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrTokenExpired), errors.Is(err, storage.ErrInvalidToken):
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired link"))
		case errors.Is(err, storage.ErrObjectNotFound):
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "image not found"))
		default:
			h.logger.Error("open media failed", zap.Error(err))
			response.Error(c, appErrors.ErrInternal)
		}
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read image"))
		return
	}
	if contentType != "" {
		c.Header("Content-Type", contentType)
	}
	c.Header("Cache-Control", "private, max-age=300")
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), file)
}
