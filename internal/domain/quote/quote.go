package quote

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wayfare-travel/service-trip/internal/common/domain"
	"github.com/wayfare-travel/service-trip/internal/domain/geo"
	"github.com/wayfare-travel/service-trip/internal/domain/pricing"
)

const quoteNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Contact is the traveller who submitted the quote.
type Contact struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Selection is what the traveller chose. Together with the stops it fully determines the price.
type Selection struct {
	VehicleTier string   `json:"vehicle_tier"`
	HotelTier   string   `json:"hotel_tier,omitempty"`
	Nights      int      `json:"nights"`
	Extras      []string `json:"extras"`
	RoundTrip   bool     `json:"round_trip"`
}

// Quote is the aggregate root for a submitted trip or transfer request.
type Quote struct {
	id          uuid.UUID
	quoteNumber string
	kind        Kind
	status      QuoteStatus
	contact     Contact
	travelers   int
	travelDate  *time.Time
	stops       []geo.RouteStop
	selection   Selection
	breakdown   pricing.PriceBreakdown
	notes       string

	reservationRef string
	confirmedAt    *time.Time
	completedAt    *time.Time
	cancelledAt    *time.Time
	cancelNote     string

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewQuoteParams groups the inputs of NewQuote.
type NewQuoteParams struct {
	Kind       Kind
	Contact    Contact
	Travelers  int
	TravelDate *time.Time
	Stops      []geo.RouteStop
	Selection  Selection
	Breakdown  pricing.PriceBreakdown
	Notes      string
}

func generateQuoteNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(quoteNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate quote number: %w", err)
		}
		result[i] = quoteNumberChars[n.Int64()]
	}
	return "TQ-" + string(result), nil
}

// NewQuote validates p and creates a Quote with status=submitted.
func NewQuote(p NewQuoteParams) (*Quote, error) {
	if _, err := ParseKind(string(p.Kind)); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	contact := Contact{
		FullName: strings.TrimSpace(p.Contact.FullName),
		Email:    strings.TrimSpace(p.Contact.Email),
		Phone:    strings.TrimSpace(p.Contact.Phone),
	}
	if contact.FullName == "" {
		return nil, domain.NewValidationError("full name is required")
	}
	if contact.Email == "" {
		return nil, domain.NewValidationError("email is required")
	}
	if _, err := mail.ParseAddress(contact.Email); err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid email: %s", contact.Email))
	}
	if contact.Phone == "" {
		return nil, domain.NewValidationError("phone is required")
	}
	if p.Travelers < 1 {
		return nil, domain.NewValidationError("at least one traveler is required")
	}
	switch p.Kind {
	case KindTransfer:
		if len(p.Stops) != 2 {
			return nil, domain.NewValidationError("a transfer needs a pickup and a dropoff")
		}
	case KindTrip:
		if len(p.Stops) == 0 {
			return nil, domain.NewValidationError("a trip needs at least one stop")
		}
	}
	for _, s := range p.Stops {
		if strings.TrimSpace(s.Name) == "" {
			return nil, domain.NewValidationError("every stop needs a name")
		}
	}
	if p.Breakdown.TotalPriceCents <= 0 {
		return nil, domain.NewValidationError("quoted price must be positive")
	}

	quoteNumber, err := generateQuoteNumber()
	if err != nil {
		return nil, err
	}

	stops := make([]geo.RouteStop, len(p.Stops))
	copy(stops, p.Stops)

	now := time.Now().UTC()
	return &Quote{
		id:          uuid.New(),
		quoteNumber: quoteNumber,
		kind:        p.Kind,
		status:      StatusSubmitted,
		contact:     contact,
		travelers:   p.Travelers,
		travelDate:  p.TravelDate,
		stops:       stops,
		selection:   p.Selection,
		breakdown:   p.Breakdown,
		notes:       strings.TrimSpace(p.Notes),
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructParams carries persisted state back into a Quote.
type ReconstructParams struct {
	ID             uuid.UUID
	QuoteNumber    string
	Kind           Kind
	Status         QuoteStatus
	Contact        Contact
	Travelers      int
	TravelDate     *time.Time
	Stops          []geo.RouteStop
	Selection      Selection
	Breakdown      pricing.PriceBreakdown
	Notes          string
	ReservationRef string
	ConfirmedAt    *time.Time
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	CancelNote     string
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReconstructQuote rebuilds a Quote from persistence data (no validation).
func ReconstructQuote(p ReconstructParams) *Quote {
	return &Quote{
		id:             p.ID,
		quoteNumber:    p.QuoteNumber,
		kind:           p.Kind,
		status:         p.Status,
		contact:        p.Contact,
		travelers:      p.Travelers,
		travelDate:     p.TravelDate,
		stops:          p.Stops,
		selection:      p.Selection,
		breakdown:      p.Breakdown,
		notes:          p.Notes,
		reservationRef: p.ReservationRef,
		confirmedAt:    p.ConfirmedAt,
		completedAt:    p.CompletedAt,
		cancelledAt:    p.CancelledAt,
		cancelNote:     p.CancelNote,
		version:        p.Version,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}
}

// --- Getters ---

func (q *Quote) ID() uuid.UUID                     { return q.id }
func (q *Quote) QuoteNumber() string               { return q.quoteNumber }
func (q *Quote) Kind() Kind                        { return q.kind }
func (q *Quote) Status() QuoteStatus               { return q.status }
func (q *Quote) Contact() Contact                  { return q.contact }
func (q *Quote) Travelers() int                    { return q.travelers }
func (q *Quote) TravelDate() *time.Time            { return q.travelDate }
func (q *Quote) Selection() Selection              { return q.selection }
func (q *Quote) Breakdown() pricing.PriceBreakdown { return q.breakdown }
func (q *Quote) Notes() string                     { return q.notes }
func (q *Quote) ReservationRef() string            { return q.reservationRef }
func (q *Quote) ConfirmedAt() *time.Time           { return q.confirmedAt }
func (q *Quote) CompletedAt() *time.Time           { return q.completedAt }
func (q *Quote) CancelledAt() *time.Time           { return q.cancelledAt }
func (q *Quote) CancelNote() string                { return q.cancelNote }
func (q *Quote) Version() int64                    { return q.version }
func (q *Quote) CreatedAt() time.Time              { return q.createdAt }
func (q *Quote) UpdatedAt() time.Time              { return q.updatedAt }

// Stops returns a copy of the quoted stops in itinerary order.
func (q *Quote) Stops() []geo.RouteStop {
	out := make([]geo.RouteStop, len(q.stops))
	copy(out, q.stops)
	return out
}

// --- Behavior ---

// Confirm moves a submitted quote to confirmed, recording the supplier reservation reference.
func (q *Quote) Confirm(reservationRef string) error {
	if !q.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewInvalidStateError(string(q.status), string(StatusConfirmed))
	}
	now := time.Now().UTC()
	q.status = StatusConfirmed
	q.reservationRef = strings.TrimSpace(reservationRef)
	q.confirmedAt = &now
	q.updatedAt = now
	return nil
}

// Complete moves a confirmed quote to completed once the trip has taken place.
func (q *Quote) Complete() error {
	if !q.status.CanTransitionTo(StatusCompleted) {
		return domain.NewInvalidStateError(string(q.status), string(StatusCompleted))
	}
	now := time.Now().UTC()
	q.status = StatusCompleted
	q.completedAt = &now
	q.updatedAt = now
	return nil
}

// Cancel cancels the quote unless it is already terminal.
func (q *Quote) Cancel(reason string) error {
	if !q.status.CanTransitionTo(StatusCancelled) {
		return domain.NewInvalidStateError(string(q.status), string(StatusCancelled))
	}
	now := time.Now().UTC()
	q.status = StatusCancelled
	q.cancelNote = strings.TrimSpace(reason)
	q.cancelledAt = &now
	q.updatedAt = now
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (q *Quote) IncrementVersion() {
	q.version++
	q.updatedAt = time.Now().UTC()
}
