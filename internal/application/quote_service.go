package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wayfare-travel/service-trip/internal/common/domain"
	"github.com/wayfare-travel/service-trip/internal/common/kafka"
	"github.com/wayfare-travel/service-trip/internal/domain/geo"
	"github.com/wayfare-travel/service-trip/internal/domain/pricing"
	quoteDomain "github.com/wayfare-travel/service-trip/internal/domain/quote"
)

// EventSource identifies this service on published CloudEvents.
const EventSource = "service-trip"

// EventPublisher sends CloudEvents to a topic.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// ContactInput is the traveller's contact details.
type ContactInput struct {
	FullName string `json:"full_name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,max=40"`
}

// SubmitTripQuoteRequest submits a priced trip on behalf of a traveller.
type SubmitTripQuoteRequest struct {
	Contact    ContactInput `json:"contact"`
	Travelers  int          `json:"travelers" binding:"required,min=1,max=60"`
	TravelDate *time.Time   `json:"travel_date"`
	Notes      string       `json:"notes" binding:"max=1000"`
	TripEstimateRequest
}

// SubmitTransferQuoteRequest submits a priced transfer on behalf of a traveller.
type SubmitTransferQuoteRequest struct {
	Contact    ContactInput `json:"contact"`
	Travelers  int          `json:"travelers" binding:"required,min=1,max=60"`
	TravelDate *time.Time   `json:"travel_date"`
	Notes      string       `json:"notes" binding:"max=1000"`
	TransferEstimateRequest
}

// ListQuotesFilter narrows ListQuotes. Empty strings mean no filter.
type ListQuotesFilter struct {
	Status string
	Kind   string
}

// QuoteDTO is the response representation of a quote.
type QuoteDTO struct {
	ID             uuid.UUID              `json:"id"`
	QuoteNumber    string                 `json:"quote_number"`
	Kind           string                 `json:"kind"`
	Status         string                 `json:"status"`
	Contact        quoteDomain.Contact    `json:"contact"`
	Travelers      int                    `json:"travelers"`
	TravelDate     *time.Time             `json:"travel_date,omitempty"`
	Stops          []geo.RouteStop        `json:"stops"`
	Selection      quoteDomain.Selection  `json:"selection"`
	Breakdown      pricing.PriceBreakdown `json:"breakdown"`
	Notes          string                 `json:"notes,omitempty"`
	ReservationRef string                 `json:"reservation_ref,omitempty"`
	ConfirmedAt    *time.Time             `json:"confirmed_at,omitempty"`
	CompletedAt    *time.Time             `json:"completed_at,omitempty"`
	CancelledAt    *time.Time             `json:"cancelled_at,omitempty"`
	CancelNote     string                 `json:"cancel_note,omitempty"`
	Version        int64                  `json:"version"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// QuoteStatsDTO holds quote counts for the admin dashboard.
type QuoteStatsDTO struct {
	TotalQuotes int64            `json:"total_quotes"`
	ByStatus    map[string]int64 `json:"by_status"`
}

// QuoteService is the application service orchestrating quote use cases.
type QuoteService struct {
	repo      quoteDomain.QuoteRepository
	estimates *EstimateService
	publisher EventPublisher
	logger    *zap.Logger
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(
	repo quoteDomain.QuoteRepository,
	estimates *EstimateService,
	publisher EventPublisher,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		repo:      repo,
		estimates: estimates,
		publisher: publisher,
		logger:    logger,
	}
}

// SubmitTripQuote prices the trip server-side and records it.
func (s *QuoteService) SubmitTripQuote(ctx context.Context, req SubmitTripQuoteRequest) (*QuoteDTO, error) {
	est, err := s.estimates.EstimateTrip(ctx, req.TripEstimateRequest)
	if err != nil {
		return nil, err
	}

	return s.submit(ctx, quoteDomain.NewQuoteParams{
		Kind:       quoteDomain.KindTrip,
		Contact:    toContact(req.Contact),
		Travelers:  req.Travelers,
		TravelDate: req.TravelDate,
		Stops:      est.Stops,
		Selection: quoteDomain.Selection{
			VehicleTier: est.Breakdown.VehicleTier,
			HotelTier:   est.Breakdown.HotelTier,
			Nights:      est.Breakdown.Nights,
			Extras:      req.Extras,
			RoundTrip:   req.RoundTrip,
		},
		Breakdown: est.Breakdown,
		Notes:     req.Notes,
	})
}

// SubmitTransferQuote prices the transfer server-side and records it.
func (s *QuoteService) SubmitTransferQuote(ctx context.Context, req SubmitTransferQuoteRequest) (*QuoteDTO, error) {
	est, err := s.estimates.EstimateTransfer(ctx, req.TransferEstimateRequest)
	if err != nil {
		return nil, err
	}

	return s.submit(ctx, quoteDomain.NewQuoteParams{
		Kind:       quoteDomain.KindTransfer,
		Contact:    toContact(req.Contact),
		Travelers:  req.Travelers,
		TravelDate: req.TravelDate,
		Stops:      est.Stops,
		Selection: quoteDomain.Selection{
			VehicleTier: est.Breakdown.VehicleTier,
			Extras:      req.Extras,
			RoundTrip:   req.RoundTrip,
		},
		Breakdown: est.Breakdown,
		Notes:     req.Notes,
	})
}

func (s *QuoteService) submit(ctx context.Context, params quoteDomain.NewQuoteParams) (*QuoteDTO, error) {
	q, err := quoteDomain.NewQuote(params)
	if err != nil {
		return nil, err
	}

	// Persist the quote
	if err := s.repo.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	stopNames := make([]string, 0, len(params.Stops))
	for _, st := range q.Stops() {
		stopNames = append(stopNames, st.Name)
	}
	evt := quoteDomain.SubmittedEvent{
		QuoteID:     q.ID(),
		QuoteNumber: q.QuoteNumber(),
		Kind:        string(q.Kind()),
		Email:       q.Contact().Email,
		Travelers:   q.Travelers(),
		StopNames:   stopNames,
		DistanceKm:  q.Breakdown().DistanceKm,
		TotalCents:  q.Breakdown().TotalPriceCents,
		Currency:    q.Breakdown().Currency,
		OccurredAt:  time.Now().UTC(),
	}
	s.publishEvent(ctx, quoteDomain.EventQuoteSubmitted, q.ID().String(), evt)

	s.logger.Info("quote submitted",
		zap.String("quote_number", q.QuoteNumber()),
		zap.String("kind", string(q.Kind())),
		zap.Int64("total_cents", q.Breakdown().TotalPriceCents),
	)

	result := toQuoteDTO(q)
	return &result, nil
}

// GetQuote retrieves a single quote by ID.
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*QuoteDTO, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toQuoteDTO(q)
	return &result, nil
}

// GetQuoteByNumber retrieves a single quote by its TQ- number.
func (s *QuoteService) GetQuoteByNumber(ctx context.Context, number string) (*QuoteDTO, error) {
	q, err := s.repo.FindByNumber(ctx, strings.ToUpper(strings.TrimSpace(number)))
	if err != nil {
		return nil, err
	}
	result := toQuoteDTO(q)
	return &result, nil
}

// ListQuotes returns quotes newest first.
func (s *QuoteService) ListQuotes(ctx context.Context, filter ListQuotesFilter, page, limit int) (*domain.PaginatedResult[QuoteDTO], error) {
	var repoFilter quoteDomain.ListFilter
	if filter.Status != "" {
		status, err := quoteDomain.ParseQuoteStatus(filter.Status)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		repoFilter.Status = status
	}
	if filter.Kind != "" {
		kind, err := quoteDomain.ParseKind(filter.Kind)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		repoFilter.Kind = kind
	}

	quotes, total, err := s.repo.ListAll(ctx, repoFilter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	dtos := make([]QuoteDTO, len(quotes))
	for i, q := range quotes {
		dtos[i] = toQuoteDTO(q)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// ConfirmQuote marks a quote as reserved with the supplier.
func (s *QuoteService) ConfirmQuote(ctx context.Context, id uuid.UUID, reservationRef string) (*QuoteDTO, error) {
	return s.transition(ctx, id, quoteDomain.EventQuoteConfirmed, func(q *quoteDomain.Quote) error {
		return q.Confirm(reservationRef)
	})
}

// CompleteQuote marks a confirmed quote as travelled.
func (s *QuoteService) CompleteQuote(ctx context.Context, id uuid.UUID) (*QuoteDTO, error) {
	return s.transition(ctx, id, quoteDomain.EventQuoteCompleted, func(q *quoteDomain.Quote) error {
		return q.Complete()
	})
}

// CancelQuote cancels a quote that is not yet completed or cancelled.
func (s *QuoteService) CancelQuote(ctx context.Context, id uuid.UUID, reason string) (*QuoteDTO, error) {
	return s.transition(ctx, id, quoteDomain.EventQuoteCancelled, func(q *quoteDomain.Quote) error {
		return q.Cancel(reason)
	})
}

// CancelQuoteByTraveler cancels a quote after checking the caller knows the contact email.
func (s *QuoteService) CancelQuoteByTraveler(ctx context.Context, id uuid.UUID, email, reason string) (*QuoteDTO, error) {
	return s.transition(ctx, id, quoteDomain.EventQuoteCancelled, func(q *quoteDomain.Quote) error {
		if !strings.EqualFold(strings.TrimSpace(email), q.Contact().Email) {
			return domain.NewForbiddenError("quote does not belong to this email")
		}
		return q.Cancel(reason)
	})
}

// GetQuoteStats returns aggregate quote counts.
func (s *QuoteService) GetQuoteStats(ctx context.Context) (*QuoteStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &QuoteStatsDTO{
		TotalQuotes: total,
		ByStatus:    counts,
	}, nil
}

// transition loads the quote, applies change, persists it with optimistic locking and publishes eventType.
func (s *QuoteService) transition(ctx context.Context, id uuid.UUID, eventType string, change func(q *quoteDomain.Quote) error) (*QuoteDTO, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := change(q); err != nil {
		return nil, err
	}

	q.IncrementVersion()
	if err := s.repo.Update(ctx, q); err != nil {
		return nil, err
	}

	evt := quoteDomain.StatusChangedEvent{
		QuoteID:        q.ID(),
		QuoteNumber:    q.QuoteNumber(),
		Status:         string(q.Status()),
		ReservationRef: q.ReservationRef(),
		Reason:         q.CancelNote(),
		OccurredAt:     time.Now().UTC(),
	}
	s.publishEvent(ctx, eventType, q.ID().String(), evt)

	result := toQuoteDTO(q)
	return &result, nil
}

// --- Helpers ---

func toContact(in ContactInput) quoteDomain.Contact {
	return quoteDomain.Contact{
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
	}
}

func toQuoteDTO(q *quoteDomain.Quote) QuoteDTO {
	return QuoteDTO{
		ID:             q.ID(),
		QuoteNumber:    q.QuoteNumber(),
		Kind:           string(q.Kind()),
		Status:         string(q.Status()),
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
	}
}

func (s *QuoteService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(EventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.PublishEvent(ctx, quoteDomain.TopicQuoteEvents, cloudEvent.WithSubject(key)); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", quoteDomain.TopicQuoteEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
