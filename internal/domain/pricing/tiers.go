package pricing

// VehicleTier is a transport class with its own flat fee and per-km rate.
type VehicleTier struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Capacity     int    `json:"capacity"`
	FlatFeeCents int64  `json:"flat_fee_cents"`
	PerKmCents   int64  `json:"per_km_cents"`
}

// HotelTier is a lodging class priced as a multiplier of the nightly rate.
type HotelTier struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Stars      int     `json:"stars"`
	Capacity   int     `json:"capacity"`
	Multiplier float64 `json:"multiplier"`
}

// Extra is an optional add-on with a fixed per-unit price.
type Extra struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	PriceCents int64  `json:"price_cents"`
}

const (
	VehicleSedan   = "sedan"
	VehicleVan     = "van"
	VehicleMinibus = "minibus"
	VehicleLuxury  = "luxury"

	HotelBudget   = "budget"
	HotelStandard = "standard"
	HotelSuperior = "superior"
	HotelLuxury   = "luxury"
)

// DefaultVehicleTiers is the built-in vehicle table.
var DefaultVehicleTiers = map[string]VehicleTier{
	VehicleSedan:   {ID: VehicleSedan, Label: "Sedan", Capacity: 3, FlatFeeCents: 5000, PerKmCents: 60},
	VehicleVan:     {ID: VehicleVan, Label: "Van", Capacity: 7, FlatFeeCents: 6500, PerKmCents: 85},
	VehicleMinibus: {ID: VehicleMinibus, Label: "Minibus", Capacity: 16, FlatFeeCents: 9000, PerKmCents: 120},
	VehicleLuxury:  {ID: VehicleLuxury, Label: "Luxury sedan", Capacity: 3, FlatFeeCents: 12000, PerKmCents: 150},
}

// DefaultHotelTiers is the built-in hotel table.
var DefaultHotelTiers = map[string]HotelTier{
	HotelBudget:   {ID: HotelBudget, Label: "Budget riad", Stars: 2, Capacity: 2, Multiplier: 0.8},
	HotelStandard: {ID: HotelStandard, Label: "Standard hotel", Stars: 3, Capacity: 2, Multiplier: 1.0},
	HotelSuperior: {ID: HotelSuperior, Label: "Superior hotel", Stars: 4, Capacity: 2, Multiplier: 1.5},
	HotelLuxury:   {ID: HotelLuxury, Label: "Luxury palace", Stars: 5, Capacity: 2, Multiplier: 2.5},
}

// DefaultExtras is the built-in add-on table.
var DefaultExtras = map[string]Extra{
	"child_seat":    {ID: "child_seat", Label: "Child seat", PriceCents: 1000},
	"meet_greet":    {ID: "meet_greet", Label: "Airport meet and greet", PriceCents: 1500},
	"extra_luggage": {ID: "extra_luggage", Label: "Extra luggage", PriceCents: 800},
	"private_guide": {ID: "private_guide", Label: "Private guide (per day)", PriceCents: 6000},
	"sim_card":      {ID: "sim_card", Label: "Local SIM card", PriceCents: 500},
}
