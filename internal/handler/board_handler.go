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

type BoardService interface {
	Create(ctx context.Context, userID uuid.UUID, name string, description *string) (*model.Board, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Board, error)
	Get(ctx context.Context, userID, boardID uuid.UUID) (*model.Board, error)
	GetForDisplay(ctx context.Context, displayID uuid.UUID) (*model.Board, error)
	Update(ctx context.Context, userID, boardID uuid.UUID, upd service.BoardUpdate) (*model.Board, error)
	Duplicate(ctx context.Context, userID, boardID uuid.UUID) (*model.Board, error)
	Delete(ctx context.Context, userID, boardID uuid.UUID) error
	ListVersions(ctx context.Context, userID, boardID uuid.UUID) ([]service.VersionSummary, error)
	GetVersion(ctx context.Context, userID, versionID uuid.UUID) (*service.VersionSummary, error)
	Restore(ctx context.Context, userID, versionID uuid.UUID) (*model.Board, error)
}

type BoardHandler struct {
	svc BoardService
}

func NewBoardHandler(svc BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

type CreateBoardRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// UpdateBoardRequest is a partial update. Omitted fields stay unchanged.
type UpdateBoardRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Content     *model.BoardContent `json:"content"`
}

type BoardResponse struct {
	ID             string             `json:"id"`
	OrganizationID string             `json:"organization_id"`
	Name           string             `json:"name"`
	Description    *string            `json:"description,omitempty"`
	Content        model.BoardContent `json:"content"`
	CreatedBy      string             `json:"created_by"`
	CreatedAt      string             `json:"created_at"`
	UpdatedAt      string             `json:"updated_at"`
}

func toBoardResponse(b *model.Board) BoardResponse {
	return BoardResponse{
		ID:             b.ID.String(),
		OrganizationID: b.OrganizationID.String(),
		Name:           b.Name,
		Description:    b.Description,
		Content:        b.Content.Data(),
		CreatedBy:      b.CreatedBy.String(),
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      b.UpdatedAt.Format(time.RFC3339),
	}
}

// Create godoc
// @Summary      Create a board in the active organization
// @Tags         Boards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBoardRequest  true  "Board"
// @Success      201      {object}  BoardResponse
// @Failure      403      {object}  map[string]string
// @Router       /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.svc.Create(c.Request.Context(), currentUserID(c), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBoardResponse(board))
}

// GetAll lists the boards of the active organization, newest first.
func (h *BoardHandler) GetAll(c *gin.Context) {
	boards, err := h.svc.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = toBoardResponse(&boards[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, ok := paramID(c, "id", "board")
	if !ok {
		return
	}

	board, err := h.svc.Get(c.Request.Context(), currentUserID(c), boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

// GetForDisplay is the kiosk endpoint: the board a display currently shows,
// or null when none is assigned.
func (h *BoardHandler) GetForDisplay(c *gin.Context) {
	displayID, ok := paramID(c, "id", "display")
	if !ok {
		return
	}

	board, err := h.svc.GetForDisplay(c.Request.Context(), displayID)
	if err != nil {
		respondError(c, err)
		return
	}
	if board == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

// Update godoc
// @Summary      Update a board
// @Description  Replacing content first stores the current content as a version.
// @Tags         Boards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Board ID"
// @Param        request  body      UpdateBoardRequest  true  "Fields to change"
// @Success      200      {object}  BoardResponse
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Router       /boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	boardID, ok := paramID(c, "id", "board")
	if !ok {
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.svc.Update(c.Request.Context(), currentUserID(c), boardID, service.BoardUpdate{
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

func (h *BoardHandler) Duplicate(c *gin.Context) {
	boardID, ok := paramID(c, "id", "board")
	if !ok {
		return
	}

	board, err := h.svc.Duplicate(c.Request.Context(), currentUserID(c), boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBoardResponse(board))
}

// Delete godoc
// @Summary      Delete a board
// @Tags         Boards
// @Security     BearerAuth
// @Param        id   path  string  true  "Board ID"
// @Success      204
// @Failure      409  {object}  map[string]string  "Board is assigned to a display"
// @Router       /boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	boardID, ok := paramID(c, "id", "board")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), currentUserID(c), boardID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BoardHandler) ListVersions(c *gin.Context) {
	boardID, ok := paramID(c, "id", "board")
	if !ok {
		return
	}

	versions, err := h.svc.ListVersions(c.Request.Context(), currentUserID(c), boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, versions)
}

func (h *BoardHandler) GetVersion(c *gin.Context) {
	versionID, ok := paramID(c, "id", "version")
	if !ok {
		return
	}

	version, err := h.svc.GetVersion(c.Request.Context(), currentUserID(c), versionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, version)
}

// Restore godoc
// @Summary      Restore a board to a stored version
// @Description  The board's current content is versioned before it is replaced.
// @Tags         Versions
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Version ID"
// @Success      200  {object}  BoardResponse
// @Router       /versions/{id}/restore [post]
func (h *BoardHandler) Restore(c *gin.Context) {
	versionID, ok := paramID(c, "id", "version")
	if !ok {
		return
	}

	board, err := h.svc.Restore(c.Request.Context(), currentUserID(c), versionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}
