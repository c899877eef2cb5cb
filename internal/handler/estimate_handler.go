package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wayfare-travel/service-trip/internal/application"
	"github.com/wayfare-travel/service-trip/internal/common/response"
)

// EstimateHandler handles the stateless price and distance estimates.
type EstimateHandler struct {
	service *application.EstimateService
}

// NewEstimateHandler creates a new EstimateHandler.
func NewEstimateHandler(service *application.EstimateService) *EstimateHandler {
	return &EstimateHandler{service: service}
}

// RegisterRoutes registers the estimate routes on the given router group.
func (h *EstimateHandler) RegisterRoutes(r *gin.RouterGroup) {
	estimates := r.Group("/api/v1/estimates")
	{
		estimates.POST("/distance", h.EstimateDistance)
		estimates.POST("/trip", h.EstimateTrip)
		estimates.POST("/transfer", h.EstimateTransfer)
	}
}

// EstimateDistance handles POST /api/v1/estimates/distance.
func (h *EstimateHandler) EstimateDistance(c *gin.Context) {
	var req application.DistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.EstimateDistance(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// EstimateTrip handles POST /api/v1/estimates/trip.
func (h *EstimateHandler) EstimateTrip(c *gin.Context) {
	var req application.TripEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.EstimateTrip(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// EstimateTransfer handles POST /api/v1/estimates/transfer.
func (h *EstimateHandler) EstimateTransfer(c *gin.Context) {
	var req application.TransferEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.EstimateTransfer(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
