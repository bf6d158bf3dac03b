package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/SoufianeJm/mooja/internal/errors"
	"github.com/SoufianeJm/mooja/internal/services"
)

// UploadHandler relays image uploads to object storage.
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// UploadImage accepts a multipart image, validates it, and stores it.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "No file uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.uploadService.UploadImage(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedFileType),
			errors.Is(err, services.ErrEmptyFile),
			errors.Is(err, services.ErrFileTooLarge):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUploadFailed):
			apierrors.BadRequest(c, "Upload failed")
		default:
			log.Printf("upload handler error: %v", err)
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Image uploaded successfully",
		"filename": result.Filename,
		"url":      result.URL,
		"size":     result.Size,
		"mimetype": result.MimeType,
	})
}
