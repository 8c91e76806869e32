package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabs/internal/domain"
	"cabs/internal/service"
)

// CarTypeHandler handles HTTP requests for car types.
type CarTypeHandler struct {
	carTypeService *service.CarTypeService
}

// NewCarTypeHandler creates a new CarTypeHandler.
func NewCarTypeHandler(carTypeService *service.CarTypeService) *CarTypeHandler {
	return &CarTypeHandler{carTypeService: carTypeService}
}

// CreateCarTypeRequest is the HTTP request body for creating a car type.
type CreateCarTypeRequest struct {
	CarClass    string `json:"car_class"` // ECO, REGULAR, VAN, PREMIUM
	Description string `json:"description,omitempty"`
}

// CarTypeResponse is the HTTP representation of a car type.
type CarTypeResponse struct {
	ID          string `json:"id"`
	CarClass    string `json:"car_class"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	CarsCounter int    `json:"cars_counter"`
}

func toCarTypeResponse(ct *domain.CarType) CarTypeResponse {
	return CarTypeResponse{
		ID:          ct.ID,
		CarClass:    string(ct.CarClass),
		Description: ct.Description,
		Status:      string(ct.Status),
		CarsCounter: ct.CarsCounter,
	}
}

// Create handles POST /v1/car-types
func (h *CarTypeHandler) Create(c *gin.Context) {
	var req CreateCarTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	carType, err := h.carTypeService.Create(c.Request.Context(), domain.CarClass(req.CarClass), req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toCarTypeResponse(carType))
}

// RegisterCar handles POST /v1/car-types/:class/register-car
func (h *CarTypeHandler) RegisterCar(c *gin.Context) {
	if err := h.carTypeService.RegisterCar(c.Request.Context(), domain.CarClass(c.Param("class"))); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "registered"})
}

// UnregisterCar handles POST /v1/car-types/:class/unregister-car
func (h *CarTypeHandler) UnregisterCar(c *gin.Context) {
	if err := h.carTypeService.UnregisterCar(c.Request.Context(), domain.CarClass(c.Param("class"))); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "unregistered"})
}

// Activate handles POST /v1/car-types/:class/activate
func (h *CarTypeHandler) Activate(c *gin.Context) {
	if err := h.carTypeService.Activate(c.Request.Context(), domain.CarClass(c.Param("class"))); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "active"})
}

// Deactivate handles POST /v1/car-types/:class/deactivate
func (h *CarTypeHandler) Deactivate(c *gin.Context) {
	if err := h.carTypeService.Deactivate(c.Request.Context(), domain.CarClass(c.Param("class"))); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "inactive"})
}

// GetActiveClasses handles GET /v1/car-types/active
func (h *CarTypeHandler) GetActiveClasses(c *gin.Context) {
	classes, err := h.carTypeService.FindActiveCarClasses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"active_classes": classes})
}
