package application

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/wayfare-travel/service-trip/internal/common/domain"
	"github.com/wayfare-travel/service-trip/internal/common/kafka"
	"github.com/wayfare-travel/service-trip/internal/domain/geo"
	quoteDomain "github.com/wayfare-travel/service-trip/internal/domain/quote"
)

// memQuoteRepo is an in-memory QuoteRepository that honours optimistic locking.
type memQuoteRepo struct {
	mu      sync.Mutex
	quotes  map[uuid.UUID]*quoteDomain.Quote
	saveErr error
}

var _ quoteDomain.QuoteRepository = (*memQuoteRepo)(nil)

func newMemQuoteRepo() *memQuoteRepo {
	return &memQuoteRepo{quotes: make(map[uuid.UUID]*quoteDomain.Quote)}
}

func (r *memQuoteRepo) FindByID(_ context.Context, id uuid.UUID) (*quoteDomain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok {
		return nil, domain.NewNotFoundError("Quote", id.String())
	}
	return clone(q), nil
}

func (r *memQuoteRepo) FindByNumber(_ context.Context, number string) (*quoteDomain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.quotes {
		if q.QuoteNumber() == number {
			return clone(q), nil
		}
	}
	return nil, domain.NewNotFoundError("Quote", number)
}

func (r *memQuoteRepo) ListAll(_ context.Context, filter quoteDomain.ListFilter, page, limit int) ([]*quoteDomain.Quote, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*quoteDomain.Quote
	for _, q := range r.quotes {
		if filter.Status != "" && q.Status() != filter.Status {
			continue
		}
		if filter.Kind != "" && q.Kind() != filter.Kind {
			continue
		}
		matched = append(matched, clone(q))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt().After(matched[j].CreatedAt()) })

	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *memQuoteRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, q := range r.quotes {
		counts[string(q.Status())]++
	}
	return counts, nil
}

func (r *memQuoteRepo) Save(_ context.Context, q *quoteDomain.Quote) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes[q.ID()] = clone(q)
	return nil
}

func (r *memQuoteRepo) Update(_ context.Context, q *quoteDomain.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.quotes[q.ID()]
	if !ok || current.Version() != q.Version()-1 {
		return domain.NewConflictError("quote was modified by another transaction")
	}
	r.quotes[q.ID()] = clone(q)
	return nil
}

func clone(q *quoteDomain.Quote) *quoteDomain.Quote {
	return quoteDomain.ReconstructQuote(quoteDomain.ReconstructParams{
		ID:             q.ID(),
		QuoteNumber:    q.QuoteNumber(),
		Kind:           q.Kind(),
		Status:         q.Status(),
		Contact:        q.Contact(),
		Travelers:      q.Travelers(),
		TravelDate:     q.TravelDate(),
		Stops:          q.Stops(),
		Selection:      q.Selection(),
		Breakdown:      q.Breakdown(),
		Notes:          q.Notes(),
		ReservationRef: q.ReservationRef(),
		ConfirmedAt:    q.ConfirmedAt(),
		CompletedAt:    q.CompletedAt(),
		CancelledAt:    q.CancelledAt(),
		CancelNote:     q.CancelNote(),
		Version:        q.Version(),
		CreatedAt:      q.CreatedAt(),
		UpdatedAt:      q.UpdatedAt(),
	})
}

// recordingPublisher captures published events; err makes every publish fail.
type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _ string, event kafka.CloudEvent) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// stubResolver answers from a fixed table.
type stubResolver struct {
	points map[string]geo.GeoPoint
	calls  int
}

func (s *stubResolver) Resolve(_ context.Context, query string) (geo.GeoPoint, error) {
	s.calls++
	p, ok := s.points[query]
	if !ok {
		return geo.GeoPoint{}, domain.NewNotFoundError("Place", query)
	}
	return p, nil
}
