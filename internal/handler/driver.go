package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cabs/internal/domain"
	"cabs/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
	feeService    *service.DriverFeeService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService, feeService *service.DriverFeeService) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
		feeService:    feeService,
	}
}

// RegisterDriverRequest is the HTTP request body for registering a driver.
type RegisterDriverRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	LicenseNumber string `json:"license_number"`
	Type          string `json:"type,omitempty"` // CANDIDATE or REGULAR
}

// DriverResponse is the HTTP representation of a driver.
type DriverResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	License   string `json:"license"`
	Status    string `json:"status"`
	Type      string `json:"type"`
	Occupied  bool   `json:"occupied"`
}

// ChangeStatusRequest is the HTTP request body for changing a driver's status.
type ChangeStatusRequest struct {
	Status string `json:"status"` // ACTIVE or INACTIVE
}

// ChangeLicenseRequest is the HTTP request body for changing a driver's licence.
type ChangeLicenseRequest struct {
	LicenseNumber string `json:"license_number"`
}

// UpdatePositionRequest is the HTTP request body for a GPS fix.
type UpdatePositionRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StartSessionRequest is the HTTP request body for logging into a car.
type StartSessionRequest struct {
	CarClass     string `json:"car_class"` // ECO, REGULAR, VAN, PREMIUM
	PlatesNumber string `json:"plates_number"`
	CarBrand     string `json:"car_brand,omitempty"`
}

// SetFeeRequest is the HTTP request body for a driver's fee arrangement.
type SetFeeRequest struct {
	FeeType string `json:"fee_type"` // FLAT or PERCENTAGE
	Amount  int    `json:"amount"`
	Min     int    `json:"min,omitempty"`
}

func toDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		License:   d.License.AsString(),
		Status:    string(d.Status),
		Type:      string(d.Type),
		Occupied:  d.Occupied,
	}
}

// Register handles POST /v1/drivers/register
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	driverType := domain.DriverType(req.Type)
	if driverType == "" {
		driverType = domain.DriverTypeCandidate
	}

	driver, err := h.driverService.CreateDriver(c.Request.Context(), req.FirstName, req.LastName, req.LicenseNumber, driverType)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toDriverResponse(driver))
}

// ChangeStatus handles POST /v1/drivers/:id/status
func (h *DriverHandler) ChangeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.driverService.ChangeDriverStatus(c.Request.Context(), c.Param("id"), domain.DriverStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": req.Status})
}

// ChangeLicense handles POST /v1/drivers/:id/license
func (h *DriverHandler) ChangeLicense(c *gin.Context) {
	var req ChangeLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.driverService.ChangeLicenseNumber(c.Request.Context(), c.Param("id"), req.LicenseNumber); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "updated"})
}

// UpdatePosition handles POST /v1/drivers/:id/position
func (h *DriverHandler) UpdatePosition(c *gin.Context) {
	var req UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.driverService.RegisterPosition(c.Request.Context(), c.Param("id"), req.Latitude, req.Longitude, time.Now()); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "recorded"})
}

// GetMonthlyPayment handles GET /v1/drivers/:id/payments/monthly
func (h *DriverHandler) GetMonthlyPayment(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	month, merr := strconv.Atoi(c.Query("month"))
	if err != nil || merr != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid year or month"})
		return
	}

	payment, err := h.feeService.CalculateDriverMonthlyPayment(c.Request.Context(), c.Param("id"), year, time.Month(month))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"driver_id": c.Param("id"),
		"year":      year,
		"month":     month,
		"payment":   payment.String(),
	})
}

// GetYearlyPayment handles GET /v1/drivers/:id/payments/yearly
func (h *DriverHandler) GetYearlyPayment(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid year"})
		return
	}

	payments, err := h.feeService.CalculateDriverYearlyPayment(c.Request.Context(), c.Param("id"), year)
	if err != nil {
		respondError(c, err)
		return
	}

	byMonth := make(map[string]string, len(payments))
	for month, payment := range payments {
		byMonth[strconv.Itoa(int(month))] = payment.String()
	}

	respondJSON(c, http.StatusOK, gin.H{
		"driver_id": c.Param("id"),
		"year":      year,
		"payments":  byMonth,
	})
}

// StartSession handles POST /v1/drivers/:id/session/start
func (h *DriverHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	session, err := h.driverService.StartSession(c.Request.Context(), c.Param("id"), domain.CarClass(req.CarClass), req.PlatesNumber, req.CarBrand)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{"session_id": session.ID})
}

// EndSession handles POST /v1/drivers/:id/session/end
func (h *DriverHandler) EndSession(c *gin.Context) {
	if err := h.driverService.EndSession(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "logged out"})
}

// SetFee handles PUT /v1/drivers/:id/fee
func (h *DriverHandler) SetFee(c *gin.Context) {
	var req SetFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	fee := &domain.DriverFee{
		DriverID: c.Param("id"),
		FeeType:  domain.FeeType(req.FeeType),
		Amount:   req.Amount,
		Min:      domain.NewMoney(req.Min),
	}
	if err := h.feeService.SetDriverFee(c.Request.Context(), fee); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "updated"})
}
