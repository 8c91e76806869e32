package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cabs/internal/domain"
	"cabs/internal/repository"
	"cabs/internal/service"
)

// ClientHandler handles HTTP requests for client accounts.
type ClientHandler struct {
	clients repository.ClientRepository
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clients repository.ClientRepository) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// RegisterClientRequest is the HTTP request body for registering a client.
type RegisterClientRequest struct {
	Name        string `json:"name"`
	LastName    string `json:"last_name"`
	Type        string `json:"type,omitempty"`         // NORMAL or VIP
	PaymentType string `json:"payment_type,omitempty"` // PRE_PAID, POST_PAID, MONTHLY_INVOICE
}

// ClientResponse is the HTTP representation of a client.
type ClientResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LastName    string `json:"last_name"`
	Type        string `json:"type"`
	PaymentType string `json:"payment_type"`
}

func toClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:          client.ID,
		Name:        client.Name,
		LastName:    client.LastName,
		Type:        string(client.Type),
		PaymentType: string(client.PaymentType),
	}
}

// Register handles POST /v1/clients/register
func (h *ClientHandler) Register(c *gin.Context) {
	var req RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	clientType := domain.ClientType(req.Type)
	if clientType == "" {
		clientType = domain.ClientTypeNormal
	}
	paymentType := domain.PaymentType(req.PaymentType)
	if paymentType == "" {
		paymentType = domain.PaymentTypePostPaid
	}

	client := &domain.Client{
		ID:          uuid.New().String(),
		Type:        clientType,
		Name:        req.Name,
		LastName:    req.LastName,
		PaymentType: paymentType,
	}
	if err := h.clients.Create(c.Request.Context(), client); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toClientResponse(client))
}

// GetClient handles GET /v1/clients/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.clients.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, service.ErrClientNotFound)
			return
		}
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toClientResponse(client))
}
