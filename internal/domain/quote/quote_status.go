package quote

import "fmt"

// QuoteStatus is the lifecycle state of a submitted quote.
type QuoteStatus string

const (
	StatusSubmitted QuoteStatus = "submitted"
	StatusConfirmed QuoteStatus = "confirmed"
	StatusCompleted QuoteStatus = "completed"
	StatusCancelled QuoteStatus = "cancelled"
)

var validTransitions = map[QuoteStatus][]QuoteStatus{
	StatusSubmitted: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValid returns true if the status is a recognized quote status.
func (s QuoteStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if moving from s to target is allowed.
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s QuoteStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

func (s QuoteStatus) String() string {
	return string(s)
}

// ParseQuoteStatus converts s to a QuoteStatus.
func ParseQuoteStatus(s string) (QuoteStatus, error) {
	status := QuoteStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid quote status: %s", s)
	}
	return status, nil
}

// Kind distinguishes multi-stop trips from point-to-point airport transfers.
type Kind string

const (
	KindTrip     Kind = "trip"
	KindTransfer Kind = "transfer"
)

// ParseKind converts s to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTrip, KindTransfer:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("invalid quote kind: %s", s)
	}
}
