package quote

import (
	"time"

	"github.com/google/uuid"
)

// TopicQuoteEvents carries the quote lifecycle events published by this service.
const TopicQuoteEvents = "quote.events"

// Event types published on TopicQuoteEvents.
const (
	EventQuoteSubmitted = "quote.submitted"
	EventQuoteConfirmed = "quote.confirmed"
	EventQuoteCompleted = "quote.completed"
	EventQuoteCancelled = "quote.cancelled"
)

// SubmittedEvent is published when a traveller submits a quote.
type SubmittedEvent struct {
	QuoteID     uuid.UUID `json:"quote_id"`
	QuoteNumber string    `json:"quote_number"`
	Kind        string    `json:"kind"`
	Email       string    `json:"email"`
	Travelers   int       `json:"travelers"`
	StopNames   []string  `json:"stop_names"`
	DistanceKm  float64   `json:"distance_km"`
	TotalCents  int64     `json:"total_cents"`
	Currency    string    `json:"currency"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// StatusChangedEvent is published on confirm, complete and cancel.
type StatusChangedEvent struct {
	QuoteID        uuid.UUID `json:"quote_id"`
	QuoteNumber    string    `json:"quote_number"`
	Status         string    `json:"status"`
	ReservationRef string    `json:"reservation_ref,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
