package pricing

import (
	"sort"
)

// RateCard is the complete, read-only pricing configuration handed to a Strategy.
type RateCard struct {
	Vehicles          map[string]VehicleTier
	Hotels            map[string]HotelTier
	Extras            map[string]Extra
	DefaultVehicle    string
	DefaultHotel      string
	NightlyRateCents  int64
	RoundTripDiscount float64
	Currency          string
}

// NewDefaultRateCard returns the built-in tables with EUR pricing.
func NewDefaultRateCard() RateCard {
	return RateCard{
		Vehicles:          DefaultVehicleTiers,
		Hotels:            DefaultHotelTiers,
		Extras:            DefaultExtras,
		DefaultVehicle:    VehicleSedan,
		DefaultHotel:      HotelStandard,
		NightlyRateCents:  8000,
		RoundTripDiscount: 0.10,
		Currency:          "EUR",
	}
}

// Vehicle looks up id, falling back to the default tier for unknown ids.
func (rc RateCard) Vehicle(id string) VehicleTier {
	if v, ok := rc.Vehicles[id]; ok {
		return v
	}
	return rc.Vehicles[rc.DefaultVehicle]
}

// Hotel looks up id, falling back to the default tier for unknown ids.
func (rc RateCard) Hotel(id string) HotelTier {
	if h, ok := rc.Hotels[id]; ok {
		return h
	}
	return rc.Hotels[rc.DefaultHotel]
}

// VehicleList returns the vehicle tiers ordered by per-km rate.
func (rc RateCard) VehicleList() []VehicleTier {
	out := make([]VehicleTier, 0, len(rc.Vehicles))
	for _, v := range rc.Vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PerKmCents == out[j].PerKmCents {
			return out[i].ID < out[j].ID
		}
		return out[i].PerKmCents < out[j].PerKmCents
	})
	return out
}

// HotelList returns the hotel tiers ordered by multiplier.
func (rc RateCard) HotelList() []HotelTier {
	out := make([]HotelTier, 0, len(rc.Hotels))
	for _, h := range rc.Hotels {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Multiplier < out[j].Multiplier })
	return out
}

// ExtraList returns the extras ordered by id.
func (rc RateCard) ExtraList() []Extra {
	out := make([]Extra, 0, len(rc.Extras))
	for _, e := range rc.Extras {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
