package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"

	"signage/internal/logger"
	"signage/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BlobServer is the token-authorized side of blob storage. The token in the
// query string is the only credential these endpoints accept.
type BlobServer interface {
	Put(ctx context.Context, token string, body io.Reader) (string, error)
	Open(ctx context.Context, token string) (*os.File, error)
}

type StorageHandler struct {
	blobs    BlobServer
	maxBytes int64
}

func NewStorageHandler(blobs BlobServer, maxBytes int64) *StorageHandler {
	return &StorageHandler{blobs: blobs, maxBytes: maxBytes}
}

// Upload godoc
// @Summary      Upload a blob to a signed upload URL
// @Tags         Storage
// @Accept       application/octet-stream
// @Produce      json
// @Param        token  query     string  true  "Upload token"
// @Success      201    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Failure      413    {object}  map[string]string
// @Router       /storage/upload [put]
func (h *StorageHandler) Upload(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)

	storageID, err := h.blobs.Put(c.Request.Context(), c.Query("token"), body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, storage.ErrInvalidTicket):
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired upload URL"})
		case errors.Is(err, storage.ErrBlobExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Upload URL already used"})
		case errors.As(err, &tooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		default:
			logger.FromContext(c.Request.Context()).Error("blob upload failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"storage_id": storageID})
}

// Download serves a blob named by a signed read URL.
func (h *StorageHandler) Download(c *gin.Context) {
	f, err := h.blobs.Open(c.Request.Context(), c.Query("token"))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidTicket):
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired URL"})
		case errors.Is(err, storage.ErrBlobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		default:
			logger.FromContext(c.Request.Context()).Error("blob read failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Read failed"})
		}
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Read failed"})
		return
	}
	c.Header("Cache-Control", "private, max-age=300")
	http.ServeContent(c.Writer, c.Request, "", info.ModTime(), f)
}
