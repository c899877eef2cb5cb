package quote

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows ListAll. Zero values mean no filter.
type ListFilter struct {
	Status QuoteStatus
	Kind   Kind
}

// QuoteRepository defines the persistence contract for quote aggregates.
type QuoteRepository interface {
	// FindByID retrieves a quote by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Quote, error)

	// FindByNumber retrieves a quote by its human-readable number.
	FindByNumber(ctx context.Context, number string) (*Quote, error)

	// ListAll retrieves quotes newest first with pagination.
	ListAll(ctx context.Context, filter ListFilter, page, limit int) ([]*Quote, int64, error)

	// CountByStatus returns quote counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new quote.
	Save(ctx context.Context, q *Quote) error

	// Update persists changes to an existing quote with optimistic locking.
	Update(ctx context.Context, q *Quote) error
}
