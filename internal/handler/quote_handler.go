package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wayfare-travel/service-trip/internal/application"
	"github.com/wayfare-travel/service-trip/internal/common/response"
)

// QuoteHandler handles traveller-facing quote requests.
type QuoteHandler struct {
	service *application.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(service *application.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// RegisterRoutes registers all quote routes on the given router group.
func (h *QuoteHandler) RegisterRoutes(r *gin.RouterGroup) {
	quotes := r.Group("/api/v1/quotes")
	{
		quotes.POST("/trip", h.SubmitTripQuote)
		quotes.POST("/transfer", h.SubmitTransferQuote)
		quotes.GET("/number/:number", h.GetQuoteByNumber)
		quotes.GET("/:id", h.GetQuote)
		quotes.POST("/:id/cancel", h.CancelQuote)
	}
}

// SubmitTripQuote handles POST /api/v1/quotes/trip.
func (h *QuoteHandler) SubmitTripQuote(c *gin.Context) {
	var req application.SubmitTripQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.SubmitTripQuote(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// SubmitTransferQuote handles POST /api/v1/quotes/transfer.
func (h *QuoteHandler) SubmitTransferQuote(c *gin.Context) {
	var req application.SubmitTransferQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.SubmitTransferQuote(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetQuote handles GET /api/v1/quotes/:id.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quote ID")
		return
	}

	result, err := h.service.GetQuote(c.Request.Context(), quoteID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetQuoteByNumber handles GET /api/v1/quotes/number/:number.
func (h *QuoteHandler) GetQuoteByNumber(c *gin.Context) {
	result, err := h.service.GetQuoteByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelQuote handles POST /api/v1/quotes/:id/cancel. The caller proves ownership with the contact email.
func (h *QuoteHandler) CancelQuote(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quote ID")
		return
	}

	var body struct {
		Email  string `json:"email" binding:"required,email"`
		Reason string `json:"reason" binding:"max=500"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.CancelQuoteByTraveler(c.Request.Context(), quoteID, body.Email, body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
