package handler

import (
	"context"
	"net/http"
	"time"

	"signage/internal/model"
	"signage/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FileService interface {
	GenerateUploadURL(ctx context.Context, userID uuid.UUID) (*service.UploadTicket, error)
	SaveFile(ctx context.Context, userID uuid.UUID, storageID string, boardID uuid.UUID) (*model.File, error)
	GetURL(ctx context.Context, userID uuid.UUID, storageID string) (string, error)
	ListForBoard(ctx context.Context, userID, boardID uuid.UUID) ([]model.File, error)
	DeleteFile(ctx context.Context, userID, fileID uuid.UUID) error
}

type FileHandler struct {
	svc FileService
}

func NewFileHandler(svc FileService) *FileHandler {
	return &FileHandler{svc: svc}
}

type SaveFileRequest struct {
	StorageID string    `json:"storage_id" binding:"required"`
	BoardID   uuid.UUID `json:"board_id" binding:"required"`
}

type FileResponse struct {
	ID             string `json:"id"`
	StorageID      string `json:"storage_id"`
	OrganizationID string `json:"organization_id"`
	BoardID        string `json:"board_id"`
	UploadedBy     string `json:"uploaded_by"`
	UploadedAt     string `json:"uploaded_at"`
}

func toFileResponse(f *model.File) FileResponse {
	return FileResponse{
		ID:             f.ID.String(),
		StorageID:      f.StorageID,
		OrganizationID: f.OrganizationID.String(),
		BoardID:        f.BoardID.String(),
		UploadedBy:     f.UploadedBy.String(),
		UploadedAt:     f.UploadedAt.Format(time.RFC3339),
	}
}

// GenerateUploadURL godoc
// @Summary      Get a one-time upload URL
// @Tags         Files
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  service.UploadTicket
// @Router       /files/upload-url [post]
func (h *FileHandler) GenerateUploadURL(c *gin.Context) {
	ticket, err := h.svc.GenerateUploadURL(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// Save godoc
// @Summary      Register an uploaded blob against a board
// @Tags         Files
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      SaveFileRequest  true  "Uploaded blob"
// @Success      201      {object}  FileResponse
// @Failure      409      {object}  map[string]string
// @Router       /files [post]
func (h *FileHandler) Save(c *gin.Context) {
	var req SaveFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	file, err := h.svc.SaveFile(c.Request.Context(), currentUserID(c), req.StorageID, req.BoardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFileResponse(file))
}

func (h *FileHandler) GetURL(c *gin.Context) {
	url, err := h.svc.GetURL(c.Request.Context(), currentUserID(c), c.Param("storage_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *FileHandler) ListForBoard(c *gin.Context) {
	boardID, ok := paramID(c, "id", "board")
	if !ok {
		return
	}

	files, err := h.svc.ListForBoard(c.Request.Context(), currentUserID(c), boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]FileResponse, len(files))
	for i := range files {
		response[i] = toFileResponse(&files[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *FileHandler) Delete(c *gin.Context) {
	fileID, ok := paramID(c, "id", "file")
	if !ok {
		return
	}

	if err := h.svc.DeleteFile(c.Request.Context(), currentUserID(c), fileID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
