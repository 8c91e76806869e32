package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cabs/internal/domain"
	"cabs/internal/service"
)

// ClaimHandler handles HTTP requests for claims.
type ClaimHandler struct {
	claimService *service.ClaimService
}

// NewClaimHandler creates a new ClaimHandler.
func NewClaimHandler(claimService *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// CreateClaimRequest is the HTTP request body for filing a claim.
type CreateClaimRequest struct {
	ClientID            string `json:"client_id"`
	TransitID           string `json:"transit_id"`
	Reason              string `json:"reason"`
	IncidentDescription string `json:"incident_description,omitempty"`
	Draft               bool   `json:"draft,omitempty"`
}

// ClaimResponse is the HTTP representation of a claim.
type ClaimResponse struct {
	ID             string `json:"id"`
	ClaimNo        string `json:"claim_no"`
	ClientID       string `json:"client_id"`
	TransitID      string `json:"transit_id"`
	Status         string `json:"status"`
	Reason         string `json:"reason"`
	CreationDate   string `json:"creation_date"`
	CompletionDate string `json:"completion_date,omitempty"`
	CompletionMode string `json:"completion_mode,omitempty"`
}

func toClaimResponse(claim *domain.Claim) ClaimResponse {
	resp := ClaimResponse{
		ID:             claim.ID,
		ClaimNo:        claim.ClaimNo,
		ClientID:       claim.ClientID,
		TransitID:      claim.TransitID,
		Status:         string(claim.Status),
		Reason:         claim.Reason,
		CreationDate:   claim.CreationDate.Format(time.RFC3339),
		CompletionMode: claim.CompletionMode,
	}
	if !claim.CompletionDate.IsZero() {
		resp.CompletionDate = claim.CompletionDate.Format(time.RFC3339)
	}
	return resp
}

// CreateClaim handles POST /v1/claims
func (h *ClaimHandler) CreateClaim(c *gin.Context) {
	var req CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	claim, err := h.claimService.CreateClaim(c.Request.Context(), req.ClientID, req.TransitID, req.Reason, req.IncidentDescription, req.Draft)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toClaimResponse(claim))
}

// MarkAsNew handles POST /v1/claims/:id/mark-as-new
func (h *ClaimHandler) MarkAsNew(c *gin.Context) {
	claim, err := h.claimService.MarkClaimAsNew(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toClaimResponse(claim))
}

// Resolve handles POST /v1/claims/:id/resolve
func (h *ClaimHandler) Resolve(c *gin.Context) {
	claim, err := h.claimService.TryToResolveAutomatically(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toClaimResponse(claim))
}
