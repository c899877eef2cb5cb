package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wayfare-travel/service-trip/internal/application"
	"github.com/wayfare-travel/service-trip/internal/common/response"
)

// AdminQuoteHandler handles back-office quote management. Callers are authenticated upstream.
type AdminQuoteHandler struct {
	service *application.QuoteService
}

// NewAdminQuoteHandler creates a new AdminQuoteHandler.
func NewAdminQuoteHandler(service *application.QuoteService) *AdminQuoteHandler {
	return &AdminQuoteHandler{service: service}
}

// RegisterRoutes registers admin quote routes.
func (h *AdminQuoteHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/api/v1/admin")
	{
		admin.GET("/quotes", h.ListQuotes)
		admin.GET("/stats/quotes", h.QuoteStats)
		admin.POST("/quotes/:id/confirm", h.ConfirmQuote)
		admin.POST("/quotes/:id/complete", h.CompleteQuote)
		admin.POST("/quotes/:id/cancel", h.CancelQuote)
	}
}

// ListQuotes handles GET /api/v1/admin/quotes?status=&kind=.
func (h *AdminQuoteHandler) ListQuotes(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := application.ListQuotesFilter{
		Status: c.Query("status"),
		Kind:   c.Query("kind"),
	}

	result, err := h.service.ListQuotes(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// QuoteStats handles GET /api/v1/admin/stats/quotes.
func (h *AdminQuoteHandler) QuoteStats(c *gin.Context) {
	stats, err := h.service.GetQuoteStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

// ConfirmQuote handles POST /api/v1/admin/quotes/:id/confirm.
func (h *AdminQuoteHandler) ConfirmQuote(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quote ID")
		return
	}

	var body struct {
		ReservationRef string `json:"reservation_ref" binding:"max=100"`
	}
	// The body is optional.
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		response.BindError(c, err)
		return
	}

	result, err := h.service.ConfirmQuote(c.Request.Context(), quoteID, body.ReservationRef)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CompleteQuote handles POST /api/v1/admin/quotes/:id/complete.
func (h *AdminQuoteHandler) CompleteQuote(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quote ID")
		return
	}

	result, err := h.service.CompleteQuote(c.Request.Context(), quoteID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelQuote handles POST /api/v1/admin/quotes/:id/cancel.
func (h *AdminQuoteHandler) CancelQuote(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quote ID")
		return
	}

	var body struct {
		Reason string `json:"reason" binding:"max=500"`
	}
	// The body is optional.
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		response.BindError(c, err)
		return
	}

	result, err := h.service.CancelQuote(c.Request.Context(), quoteID, body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
