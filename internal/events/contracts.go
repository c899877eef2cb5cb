package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicReservationEvents carries supplier reservation outcomes for submitted quotes.
const TopicReservationEvents = "reservation.events"

// Event types consumed from TopicReservationEvents.
const (
	ReservationConfirmed = "reservation.confirmed"
	ReservationFailed    = "reservation.failed"
)

// ReservationConfirmedEvent reports that the supplier booked every leg and night of a quote.
type ReservationConfirmedEvent struct {
	QuoteID        uuid.UUID `json:"quote_id"`
	ReservationRef string    `json:"reservation_ref"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// ReservationFailedEvent reports that the supplier could not honour a quote.
type ReservationFailedEvent struct {
	QuoteID    uuid.UUID `json:"quote_id"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}
