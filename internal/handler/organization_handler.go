package handler

import (
	"context"
	"net/http"
	"time"

	"signage/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrganizationService interface {
	Create(ctx context.Context, userID uuid.UUID, name string) (*model.Organization, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.OrganizationWithRole, error)
	Activate(ctx context.Context, userID, organizationID uuid.UUID) (*model.OrganizationWithRole, error)
	Current(ctx context.Context, userID uuid.UUID) (*model.OrganizationWithRole, error)
	AddMember(ctx context.Context, userID, organizationID uuid.UUID, email string, role model.Role) (*model.Membership, error)
}

type OrganizationHandler struct {
	svc OrganizationService
}

func NewOrganizationHandler(svc OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{svc: svc}
}

type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=admin member"`
}

type OrganizationResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"created_at"`
}

type MemberResponse struct {
	OrganizationID string `json:"organization_id"`
	UserID         string `json:"user_id"`
	Role           string `json:"role"`
	JoinedAt       string `json:"joined_at"`
}

func toOrganizationResponse(org model.Organization, role model.Role) OrganizationResponse {
	return OrganizationResponse{
		ID:        org.ID.String(),
		Name:      org.Name,
		Role:      string(role),
		CreatedAt: org.CreatedAt.Format(time.RFC3339),
	}
}

// Create godoc
// @Summary      Create an organization owned by the caller
// @Tags         Organizations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateOrganizationRequest  true  "Organization"
// @Success      201      {object}  OrganizationResponse
// @Router       /organizations [post]
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	org, err := h.svc.Create(c.Request.Context(), currentUserID(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrganizationResponse(*org, model.RoleOwner))
}

func (h *OrganizationHandler) List(c *gin.Context) {
	orgs, err := h.svc.ListMine(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]OrganizationResponse, len(orgs))
	for i, o := range orgs {
		response[i] = toOrganizationResponse(o.Organization, o.Role)
	}
	c.JSON(http.StatusOK, response)
}

// Current returns the caller's active organization, or null.
func (h *OrganizationHandler) Current(c *gin.Context) {
	current, err := h.svc.Current(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if current == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, toOrganizationResponse(current.Organization, current.Role))
}

func (h *OrganizationHandler) Activate(c *gin.Context) {
	orgID, ok := paramID(c, "id", "organization")
	if !ok {
		return
	}

	current, err := h.svc.Activate(c.Request.Context(), currentUserID(c), orgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrganizationResponse(current.Organization, current.Role))
}

// AddMember godoc
// @Summary      Add a user to an organization
// @Tags         Organizations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string            true  "Organization ID"
// @Param        request  body      AddMemberRequest  true  "Member"
// @Success      201      {object}  MemberResponse
// @Failure      403      {object}  map[string]string
// @Router       /organizations/{id}/members [post]
func (h *OrganizationHandler) AddMember(c *gin.Context) {
	orgID, ok := paramID(c, "id", "organization")
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	m, err := h.svc.AddMember(c.Request.Context(), currentUserID(c), orgID, req.Email, model.Role(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MemberResponse{
		OrganizationID: m.OrganizationID.String(),
		UserID:         m.UserID.String(),
		Role:           string(m.Role),
		JoinedAt:       m.JoinedAt.Format(time.RFC3339),
	})
}
