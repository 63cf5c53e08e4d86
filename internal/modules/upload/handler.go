package upload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"museumguide/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterStaffRoutes mounts the media upload endpoints used by the room and
// object forms.
func (h *Handler) RegisterStaffRoutes(staff *gin.RouterGroup) {
	staff.POST("/rooms/upload-photo", h.upload(KindPhoto))
	staff.POST("/objects/upload-photo", h.upload(KindPhoto))
	staff.POST("/objects/upload-audio", h.upload(KindAudio))
}

func (h *Handler) RegisterSuperadminRoutes(superadmin *gin.RouterGroup) {
	superadmin.POST("/museums/upload-photo", h.upload(KindPhoto))
}

func (h *Handler) upload(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")

		fileHeader, err := c.FormFile("file")
		if err != nil {
			response.Error(c, http.StatusBadRequest, "NO_FILE", "No file provided")
			return
		}

		u, err := h.service.Upload(c.Request.Context(), userID, kind, fileHeader)
		if err != nil {
			h.handleError(c, err)
			return
		}

		response.Success(c, http.StatusCreated, gin.H{
			"id":        u.ID,
			"url":       u.FileURL,
			"name":      u.OriginalName,
			"mime_type": u.MimeType,
			"size":      u.Size,
		})
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyFile):
		response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "File is empty")
	case errors.Is(err, ErrInvalidMimeType):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "File type is not allowed")
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds maximum allowed size")
	default:
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to upload file")
	}
}
