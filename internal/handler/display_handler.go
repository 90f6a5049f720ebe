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

type DisplayService interface {
	Create(ctx context.Context, userID uuid.UUID, in service.DisplayInput) (*model.Display, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Display, error)
	Get(ctx context.Context, displayID uuid.UUID) (*model.Display, error)
	Update(ctx context.Context, userID, displayID uuid.UUID, in service.DisplayInput) (*model.Display, error)
	Remove(ctx context.Context, userID, displayID uuid.UUID) error
}

type DisplayHandler struct {
	svc DisplayService
}

func NewDisplayHandler(svc DisplayService) *DisplayHandler {
	return &DisplayHandler{svc: svc}
}

type CreateDisplayRequest struct {
	Name           string     `json:"name" binding:"required"`
	Location       *string    `json:"location"`
	CurrentBoardID *uuid.UUID `json:"current_board_id"`
}

// UpdateDisplayRequest is a partial update. Set clear_board to detach the
// current board.
type UpdateDisplayRequest struct {
	Name           *string    `json:"name"`
	Location       *string    `json:"location"`
	CurrentBoardID *uuid.UUID `json:"current_board_id"`
	ClearBoard     bool       `json:"clear_board"`
}

type DisplayResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	Name           string  `json:"name"`
	Location       *string `json:"location,omitempty"`
	CurrentBoardID *string `json:"current_board_id"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func toDisplayResponse(d *model.Display) DisplayResponse {
	resp := DisplayResponse{
		ID:             d.ID.String(),
		OrganizationID: d.OrganizationID.String(),
		Name:           d.Name,
		Location:       d.Location,
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      d.UpdatedAt.Format(time.RFC3339),
	}
	if d.CurrentBoardID != nil {
		id := d.CurrentBoardID.String()
		resp.CurrentBoardID = &id
	}
	return resp
}

// Create godoc
// @Summary      Register a display in the active organization
// @Tags         Displays
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateDisplayRequest  true  "Display"
// @Success      201      {object}  DisplayResponse
// @Router       /displays [post]
func (h *DisplayHandler) Create(c *gin.Context) {
	var req CreateDisplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	display, err := h.svc.Create(c.Request.Context(), currentUserID(c), service.DisplayInput{
		Name:           &req.Name,
		Location:       req.Location,
		CurrentBoardID: req.CurrentBoardID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDisplayResponse(display))
}

func (h *DisplayHandler) GetAll(c *gin.Context) {
	displays, err := h.svc.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DisplayResponse, len(displays))
	for i := range displays {
		response[i] = toDisplayResponse(&displays[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID is public so kiosks can poll their own display record.
func (h *DisplayHandler) GetByID(c *gin.Context) {
	displayID, ok := paramID(c, "id", "display")
	if !ok {
		return
	}

	display, err := h.svc.Get(c.Request.Context(), displayID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDisplayResponse(display))
}

func (h *DisplayHandler) Update(c *gin.Context) {
	displayID, ok := paramID(c, "id", "display")
	if !ok {
		return
	}

	var req UpdateDisplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	display, err := h.svc.Update(c.Request.Context(), currentUserID(c), displayID, service.DisplayInput{
		Name:           req.Name,
		Location:       req.Location,
		CurrentBoardID: req.CurrentBoardID,
		ClearBoard:     req.ClearBoard,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDisplayResponse(display))
}

func (h *DisplayHandler) Delete(c *gin.Context) {
	displayID, ok := paramID(c, "id", "display")
	if !ok {
		return
	}

	if err := h.svc.Remove(c.Request.Context(), currentUserID(c), displayID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
