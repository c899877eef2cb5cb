package handler

import (
	"math"

	"github.com/gin-gonic/gin"

	"github.com/wayfare-travel/service-trip/internal/common/domain"
	"github.com/wayfare-travel/service-trip/internal/common/response"
	"github.com/wayfare-travel/service-trip/internal/domain/catalog"
	"github.com/wayfare-travel/service-trip/internal/domain/pricing"
)

// CatalogHandler serves the read-only tier, extras, destination and airport tables.
type CatalogHandler struct {
	rateCard pricing.RateCard
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(rateCard pricing.RateCard) *CatalogHandler {
	return &CatalogHandler{rateCard: rateCard}
}

// RegisterRoutes registers the catalog routes on the given router group.
func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	cat := r.Group("/api/v1/catalog")
	{
		cat.GET("/vehicles", h.ListVehicles)
		cat.GET("/hotels", h.ListHotels)
		cat.GET("/extras", h.ListExtras)
		cat.GET("/destinations", h.ListDestinations)
		cat.GET("/destinations/:id", h.GetDestination)
		cat.GET("/airports", h.ListAirports)
	}
}

type vehicleView struct {
	pricing.VehicleTier
	Default bool `json:"default"`
}

type hotelView struct {
	pricing.HotelTier
	NightlyRateCents int64 `json:"nightly_rate_cents"`
	Default          bool  `json:"default"`
}

// ListVehicles handles GET /api/v1/catalog/vehicles.
func (h *CatalogHandler) ListVehicles(c *gin.Context) {
	tiers := h.rateCard.VehicleList()
	views := make([]vehicleView, len(tiers))
	for i, t := range tiers {
		views[i] = vehicleView{VehicleTier: t, Default: t.ID == h.rateCard.DefaultVehicle}
	}
	response.Success(c, views)
}

// ListHotels handles GET /api/v1/catalog/hotels. The nightly rate is already scaled by the tier multiplier.
func (h *CatalogHandler) ListHotels(c *gin.Context) {
	tiers := h.rateCard.HotelList()
	views := make([]hotelView, len(tiers))
	for i, t := range tiers {
		views[i] = hotelView{
			HotelTier:        t,
			NightlyRateCents: int64(math.Round(float64(h.rateCard.NightlyRateCents) * t.Multiplier)),
			Default:          t.ID == h.rateCard.DefaultHotel,
		}
	}
	response.Success(c, views)
}

// ListExtras handles GET /api/v1/catalog/extras.
func (h *CatalogHandler) ListExtras(c *gin.Context) {
	response.Success(c, h.rateCard.ExtraList())
}

// ListDestinations handles GET /api/v1/catalog/destinations.
func (h *CatalogHandler) ListDestinations(c *gin.Context) {
	response.Success(c, catalog.Destinations())
}

// GetDestination handles GET /api/v1/catalog/destinations/:id.
func (h *CatalogHandler) GetDestination(c *gin.Context) {
	dest, ok := catalog.FindDestination(c.Param("id"))
	if !ok {
		response.Error(c, domain.NewNotFoundError("Destination", c.Param("id")))
		return
	}
	response.Success(c, dest)
}

// ListAirports handles GET /api/v1/catalog/airports.
func (h *CatalogHandler) ListAirports(c *gin.Context) {
	response.Success(c, catalog.Airports())
}
