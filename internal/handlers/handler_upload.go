package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
)

// Uploads above this size are rejected before touching object storage.
const maxUploadBytes = 10 << 20

// uploadHandler streams listing media into object storage. The stored
// pointer is opaque; listing payloads reference it as a plain string.
type uploadHandler struct {
	storage portssvc.FileStorage
}

func newUploadHandler(storage portssvc.FileStorage) *uploadHandler {
	return &uploadHandler{storage: storage}
}

func registerUploadRoutes(rg *gin.RouterGroup, storage portssvc.FileStorage) {
	h := newUploadHandler(storage)
	rg.POST("/uploads", h.upload)
	rg.DELETE("/uploads/:publicID", h.deleteUpload)
}

// upload godoc
// @Summary Upload a media file
// @Description Stores a multipart file and returns its opaque pointer for use in listing payloads.
// @Tags uploads
// @Accept mpfd
// @Produce json
// @Param file formData file true "File, at most 10 MiB"
// @Success 201 {object} services.StoredFile
// @Failure 400 {object} ErrorResponse "Missing or oversized file"
// @Failure 503 {object} ErrorResponse "File storage not configured"
// @Security BearerAuth
// @Router /uploads [post]
func (h *uploadHandler) upload(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "File storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A 'file' form field is required"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "File exceeds the 10 MiB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	stored, err := h.storage.Upload(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		respondError(c, err, "Failed to store file")
		return
	}
	c.JSON(http.StatusCreated, stored)
}

// deleteUpload godoc
// @Summary Delete an uploaded file
// @Tags uploads
// @Param publicID path string true "Public ID returned by the upload"
// @Success 204 "Deleted"
// @Failure 503 {object} ErrorResponse "File storage not configured"
// @Security BearerAuth
// @Router /uploads/{publicID} [delete]
func (h *uploadHandler) deleteUpload(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "File storage is not configured"})
		return
	}

	if err := h.storage.Delete(c.Request.Context(), c.Param("publicID")); err != nil {
		respondError(c, err, "Failed to delete file")
		return
	}
	c.Status(http.StatusNoContent)
}
