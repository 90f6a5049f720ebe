package handler

import (
	"context"
	"net/http"
	"strconv"

	"signage/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PairingService interface {
	Create(ctx context.Context) (*service.PairingView, error)
	Get(ctx context.Context, pairingID uuid.UUID) (*service.PairingView, error)
	SetDisplay(ctx context.Context, userID, pairingID, displayID uuid.UUID) (*service.PairingView, error)
	QRCode(ctx context.Context, pairingID uuid.UUID, size int) ([]byte, error)
}

type PairingHandler struct {
	svc PairingService
}

func NewPairingHandler(svc PairingService) *PairingHandler {
	return &PairingHandler{svc: svc}
}

type SetDisplayRequest struct {
	DisplayID uuid.UUID `json:"display_id" binding:"required"`
}

// Create godoc
// @Summary      Start a display pairing
// @Description  Called by an unpaired kiosk. The pairing expires after ten minutes.
// @Tags         Pairings
// @Produce      json
// @Success      201  {object}  service.PairingView
// @Router       /pairings [post]
func (h *PairingHandler) Create(c *gin.Context) {
	view, err := h.svc.Create(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Get godoc
// @Summary      Poll a display pairing
// @Tags         Pairings
// @Produce      json
// @Param        id   path      string  true  "Pairing ID"
// @Success      200  {object}  service.PairingView
// @Failure      404  {object}  map[string]string
// @Router       /pairings/{id} [get]
func (h *PairingHandler) Get(c *gin.Context) {
	pairingID, ok := paramID(c, "id", "pairing")
	if !ok {
		return
	}

	view, err := h.svc.Get(c.Request.Context(), pairingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetDisplay godoc
// @Summary      Attach a display to a pending pairing
// @Tags         Pairings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "Pairing ID"
// @Param        request  body      SetDisplayRequest  true  "Display"
// @Success      200      {object}  service.PairingView
// @Failure      409      {object}  map[string]string  "Already completed"
// @Failure      410      {object}  map[string]string  "Expired"
// @Router       /pairings/{id}/display [post]
func (h *PairingHandler) SetDisplay(c *gin.Context) {
	pairingID, ok := paramID(c, "id", "pairing")
	if !ok {
		return
	}

	var req SetDisplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	view, err := h.svc.SetDisplay(c.Request.Context(), currentUserID(c), pairingID, req.DisplayID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// QRCode serves the pairing's setup link as a PNG. Size is clamped to
// 64..1024 pixels.
func (h *PairingHandler) QRCode(c *gin.Context) {
	pairingID, ok := paramID(c, "id", "pairing")
	if !ok {
		return
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "256"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid size"})
		return
	}
	size = min(max(size, 64), 1024)

	png, err := h.svc.QRCode(c.Request.Context(), pairingID, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
