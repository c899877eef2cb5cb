package pricing

import (
	"fmt"
	"math"

	"github.com/wayfare-travel/service-trip/internal/common/domain"
)

// Strategy prices a trip from its distance, tiers, nights and extras.
type Strategy interface {
	// Estimate returns the full breakdown for params.
	Estimate(params Params) (PriceBreakdown, error)
}

// Params holds the inputs for one estimate.
type Params struct {
	// DistanceKm is the road distance to charge for.
	DistanceKm  float64
	VehicleTier string
	HotelTier   string
	Nights      int
	Extras      []string
	RoundTrip   bool
}

// ExtraLine is one priced add-on in a breakdown.
type ExtraLine struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	PriceCents int64  `json:"price_cents"`
}

// PriceBreakdown is the result of an estimate. It is always built whole and never modified.
type PriceBreakdown struct {
	DistanceKm             float64     `json:"distance_km"`
	VehicleTier            string      `json:"vehicle_tier"`
	HotelTier              string      `json:"hotel_tier"`
	Nights                 int         `json:"nights"`
	RoundTrip              bool        `json:"round_trip"`
	BasePriceCents         int64       `json:"base_price_cents"`
	RoundTripDiscountCents int64       `json:"round_trip_discount_cents"`
	LodgingPriceCents      int64       `json:"lodging_price_cents"`
	ExtrasTotalCents       int64       `json:"extras_total_cents"`
	Extras                 []ExtraLine `json:"extras"`
	TotalPriceCents        int64       `json:"total_price_cents"`
	Currency               string      `json:"currency"`
}

// StandardStrategy prices with fixed linear formulas over a RateCard.
type StandardStrategy struct {
	card RateCard
}

// NewStandardStrategy creates a StandardStrategy over card.
func NewStandardStrategy(card RateCard) *StandardStrategy {
	return &StandardStrategy{card: card}
}

// Estimate computes the breakdown in cents.
//
// Pricing formula:
//   - Transport base: vehicle flat fee + distance * per-km rate
//   - Round trip: base reduced by the round-trip discount
//   - Lodging: nights * nightly rate * hotel multiplier
//   - Extras: one unit per listed id, unknown ids skipped
func (s *StandardStrategy) Estimate(params Params) (PriceBreakdown, error) {
	if params.DistanceKm < 0 || math.IsNaN(params.DistanceKm) || math.IsInf(params.DistanceKm, 0) {
		return PriceBreakdown{}, domain.NewValidationError(fmt.Sprintf("invalid distance: %v", params.DistanceKm))
	}
	if params.Nights < 0 {
		return PriceBreakdown{}, domain.NewValidationError("nights cannot be negative")
	}

	vehicle := s.card.Vehicle(params.VehicleTier)
	hotel := s.card.Hotel(params.HotelTier)

	base := vehicle.FlatFeeCents + int64(math.Round(params.DistanceKm*float64(vehicle.PerKmCents)))

	var discount int64
	if params.RoundTrip {
		discount = int64(math.Round(float64(base) * s.card.RoundTripDiscount))
	}

	lodging := int64(math.Round(float64(params.Nights) * float64(s.card.NightlyRateCents) * hotel.Multiplier))

	lines := make([]ExtraLine, 0, len(params.Extras))
	var extrasTotal int64
	for _, id := range params.Extras {
		extra, ok := s.card.Extras[id]
		if !ok {
			continue
		}
		lines = append(lines, ExtraLine{ID: extra.ID, Label: extra.Label, PriceCents: extra.PriceCents})
		extrasTotal += extra.PriceCents
	}

	return PriceBreakdown{
		DistanceKm:             params.DistanceKm,
		VehicleTier:            vehicle.ID,
		HotelTier:              hotel.ID,
		Nights:                 params.Nights,
		RoundTrip:              params.RoundTrip,
		BasePriceCents:         base,
		RoundTripDiscountCents: discount,
		LodgingPriceCents:      lodging,
		ExtrasTotalCents:       extrasTotal,
		Extras:                 lines,
		TotalPriceCents:        base - discount + lodging + extrasTotal,
		Currency:               s.card.Currency,
	}, nil
}
