package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cabs/internal/domain"
	"cabs/internal/service"
)

// TransitHandler handles HTTP requests for transits.
type TransitHandler struct {
	transitService *service.TransitService
}

// NewTransitHandler creates a new TransitHandler.
func NewTransitHandler(transitService *service.TransitService) *TransitHandler {
	return &TransitHandler{transitService: transitService}
}

// AddressRequest is an address in an HTTP request body.
type AddressRequest struct {
	Country        string `json:"country"`
	City           string `json:"city"`
	Street         string `json:"street"`
	BuildingNumber int    `json:"building_number"`
	PostalCode     string `json:"postal_code,omitempty"`
}

func (r AddressRequest) toDomain() domain.Address {
	return domain.Address{
		Country:        r.Country,
		City:           r.City,
		Street:         r.Street,
		BuildingNumber: r.BuildingNumber,
		PostalCode:     r.PostalCode,
	}
}

// CreateTransitRequest is the HTTP request body for creating a transit.
type CreateTransitRequest struct {
	ClientID string         `json:"client_id"`
	From     AddressRequest `json:"from"`
	To       AddressRequest `json:"to"`
	CarClass string         `json:"car_class,omitempty"` // ECO, REGULAR, VAN, PREMIUM
}

// ChangeAddressRequest is the HTTP request body for moving an address.
type ChangeAddressRequest struct {
	Address AddressRequest `json:"address"`
}

// DriverActionRequest is the HTTP request body for driver lifecycle actions.
type DriverActionRequest struct {
	DriverID string `json:"driver_id"`
}

// CompleteTransitRequest is the HTTP request body for completing a transit.
type CompleteTransitRequest struct {
	DriverID    string         `json:"driver_id"`
	Destination AddressRequest `json:"destination"`
}

// TransitResponse is the HTTP representation of a transit.
type TransitResponse struct {
	ID             string   `json:"id"`
	Status         string   `json:"status"`
	ClientID       string   `json:"client_id"`
	DriverID       string   `json:"driver_id,omitempty"`
	CarClass       string   `json:"car_class,omitempty"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	Km             float64  `json:"km"`
	Tariff         string   `json:"tariff"`
	KmRate         float64  `json:"km_rate"`
	EstimatedPrice string   `json:"estimated_price,omitempty"`
	Price          string   `json:"price,omitempty"`
	DriversFee     string   `json:"drivers_fee,omitempty"`
	DateTime       string   `json:"date_time"`
	ProposedTo     []string `json:"proposed_to,omitempty"`
}

func toTransitResponse(t *domain.Transit) TransitResponse {
	resp := TransitResponse{
		ID:       t.ID,
		Status:   string(t.Status),
		ClientID: t.ClientID,
		DriverID: t.DriverID,
		CarClass: string(t.CarClass),
		From:     t.From.String(),
		To:       t.To.String(),
		Km:       t.Km,
		Tariff:   t.Tariff.Name,
		KmRate:   t.Tariff.KmRate,
		DateTime: t.DateTime.Format(time.RFC3339),
	}
	if t.EstimatedPrice != nil {
		resp.EstimatedPrice = t.EstimatedPrice.String()
	}
	if t.Price != nil {
		resp.Price = t.Price.String()
	}
	if t.DriversFee != nil {
		resp.DriversFee = t.DriversFee.String()
	}
	resp.ProposedTo = t.ProposedDrivers
	return resp
}

// CreateTransit handles POST /v1/transits
func (h *TransitHandler) CreateTransit(c *gin.Context) {
	var req CreateTransitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	transit, err := h.transitService.CreateTransit(c.Request.Context(), req.ClientID, req.From.toDomain(), req.To.toDomain(), domain.CarClass(req.CarClass))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTransitResponse(transit))
}

// GetTransit handles GET /v1/transits/:id
func (h *TransitHandler) GetTransit(c *gin.Context) {
	transit, err := h.transitService.GetTransit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTransitResponse(transit))
}

// ChangeAddressFrom handles POST /v1/transits/:id/change-from
func (h *TransitHandler) ChangeAddressFrom(c *gin.Context) {
	var req ChangeAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	transit, err := h.transitService.ChangeTransitAddressFrom(c.Request.Context(), c.Param("id"), req.Address.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTransitResponse(transit))
}

// ChangeAddressTo handles POST /v1/transits/:id/change-to
func (h *TransitHandler) ChangeAddressTo(c *gin.Context) {
	var req ChangeAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	transit, err := h.transitService.ChangeTransitAddressTo(c.Request.Context(), c.Param("id"), req.Address.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTransitResponse(transit))
}

// CancelTransit handles POST /v1/transits/:id/cancel
func (h *TransitHandler) CancelTransit(c *gin.Context) {
	if err := h.transitService.CancelTransit(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "cancelled"})
}

// PublishTransit handles POST /v1/transits/:id/publish
func (h *TransitHandler) PublishTransit(c *gin.Context) {
	transit, err := h.transitService.PublishTransit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTransitResponse(transit))
}

// AcceptTransit handles POST /v1/transits/:id/accept
func (h *TransitHandler) AcceptTransit(c *gin.Context) {
	var req DriverActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.transitService.AcceptTransit(c.Request.Context(), req.DriverID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "accepted"})
}

// StartTransit handles POST /v1/transits/:id/start
func (h *TransitHandler) StartTransit(c *gin.Context) {
	var req DriverActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.transitService.StartTransit(c.Request.Context(), req.DriverID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "started"})
}

// RejectTransit handles POST /v1/transits/:id/reject
func (h *TransitHandler) RejectTransit(c *gin.Context) {
	var req DriverActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.transitService.RejectTransit(c.Request.Context(), req.DriverID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "rejected"})
}

// CompleteTransit handles POST /v1/transits/:id/complete
func (h *TransitHandler) CompleteTransit(c *gin.Context) {
	var req CompleteTransitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	transit, err := h.transitService.CompleteTransit(c.Request.Context(), req.DriverID, c.Param("id"), req.Destination.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTransitResponse(transit))
}
