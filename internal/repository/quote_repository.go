package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfare-travel/service-trip/internal/common/domain"
	"github.com/wayfare-travel/service-trip/internal/domain/geo"
	"github.com/wayfare-travel/service-trip/internal/domain/pricing"
	quoteDomain "github.com/wayfare-travel/service-trip/internal/domain/quote"
)

// QuoteModel is the GORM model for the quotes table.
type QuoteModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	QuoteNumber    string          `gorm:"uniqueIndex;not null;size:20"`
	Kind           string          `gorm:"not null;size:20;index"`
	Status         string          `gorm:"not null;size:30;index"`
	Contact        json.RawMessage `gorm:"type:jsonb;not null"`
	ContactEmail   string          `gorm:"not null;size:320;index"`
	Travelers      int             `gorm:"not null"`
	TravelDate     *time.Time      `gorm:""`
	Stops          json.RawMessage `gorm:"type:jsonb;not null"`
	Selection      json.RawMessage `gorm:"type:jsonb;not null"`
	Breakdown      json.RawMessage `gorm:"type:jsonb;not null"`
	TotalCents     int64           `gorm:"not null"`
	Currency       string          `gorm:"not null;size:3;default:'EUR'"`
	Notes          string          `gorm:"size:1000"`
	ReservationRef string          `gorm:"size:100"`
	ConfirmedAt    *time.Time      `gorm:""`
	CompletedAt    *time.Time      `gorm:""`
	CancelledAt    *time.Time      `gorm:""`
	CancelNote     string          `gorm:"size:500"`
	Version        int64           `gorm:"not null;default:1"`
	CreatedAt      time.Time       `gorm:"not null;index"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (QuoteModel) TableName() string {
	return "quotes"
}

// GormQuoteRepository is the GORM-based implementation of QuoteRepository.
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository.
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// FindByID retrieves a quote by its unique identifier.
func (r *GormQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*quoteDomain.Quote, error) {
	var model QuoteModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Quote", id.String())
		}
		return nil, fmt.Errorf("failed to find quote by ID: %w", err)
	}
	return toDomainQuote(&model)
}

// FindByNumber retrieves a quote by its quote number.
func (r *GormQuoteRepository) FindByNumber(ctx context.Context, number string) (*quoteDomain.Quote, error) {
	var model QuoteModel
	if err := r.db.WithContext(ctx).Where("quote_number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Quote", number)
		}
		return nil, fmt.Errorf("failed to find quote by number: %w", err)
	}
	return toDomainQuote(&model)
}

// ListAll retrieves quotes newest first with optional status and kind filters.
func (r *GormQuoteRepository) ListAll(ctx context.Context, filter quoteDomain.ListFilter, page, limit int) ([]*quoteDomain.Quote, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			db = db.Where("status = ?", string(filter.Status))
		}
		if filter.Kind != "" {
			db = db.Where("kind = ?", string(filter.Kind))
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&QuoteModel{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count quotes: %w", err)
	}

	var models []QuoteModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list quotes: %w", err)
	}

	quotes := make([]*quoteDomain.Quote, len(models))
	for i := range models {
		q, err := toDomainQuote(&models[i])
		if err != nil {
			return nil, 0, err
		}
		quotes[i] = q
	}

	return quotes, total, nil
}

// CountByStatus returns quote counts grouped by status.
func (r *GormQuoteRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&QuoteModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new quote.
func (r *GormQuoteRepository) Save(ctx context.Context, q *quoteDomain.Quote) error {
	model, err := toQuoteModel(q)
	if err != nil {
		return fmt.Errorf("failed to convert quote to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save quote: %w", err)
	}
	return nil
}

// Update persists lifecycle changes with optimistic locking against the previous version.
func (r *GormQuoteRepository) Update(ctx context.Context, q *quoteDomain.Quote) error {
	model, err := toQuoteModel(q)
	if err != nil {
		return fmt.Errorf("failed to convert quote to model: %w", err)
	}

	// IncrementVersion has already run, so the stored row holds version-1.
	expectedVersion := q.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&QuoteModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":          model.Status,
			"reservation_ref": model.ReservationRef,
			"confirmed_at":    model.ConfirmedAt,
			"completed_at":    model.CompletedAt,
			"cancelled_at":    model.CancelledAt,
			"cancel_note":     model.CancelNote,
			"notes":           model.Notes,
			"version":         model.Version,
			"updated_at":      model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update quote: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("quote was modified by another transaction")
	}

	return nil
}

// --- Conversion Helpers ---

func toQuoteModel(q *quoteDomain.Quote) (*QuoteModel, error) {
	contactJSON, err := json.Marshal(q.Contact())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contact: %w", err)
	}

	stopsJSON, err := json.Marshal(q.Stops())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stops: %w", err)
	}

	selectionJSON, err := json.Marshal(q.Selection())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal selection: %w", err)
	}

	breakdownJSON, err := json.Marshal(q.Breakdown())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	return &QuoteModel{
		ID:             q.ID(),
		QuoteNumber:    q.QuoteNumber(),
		Kind:           string(q.Kind()),
		Status:         string(q.Status()),
		Contact:        contactJSON,
		ContactEmail:   q.Contact().Email,
		Travelers:      q.Travelers(),
		TravelDate:     q.TravelDate(),
		Stops:          stopsJSON,
		Selection:      selectionJSON,
		Breakdown:      breakdownJSON,
		TotalCents:     q.Breakdown().TotalPriceCents,
		Currency:       q.Breakdown().Currency,
		Notes:          q.Notes(),
		ReservationRef: q.ReservationRef(),
		ConfirmedAt:    q.ConfirmedAt(),
		CompletedAt:    q.CompletedAt(),
		CancelledAt:    q.CancelledAt(),
		CancelNote:     q.CancelNote(),
		Version:        q.Version(),
		CreatedAt:      q.CreatedAt(),
		UpdatedAt:      q.UpdatedAt(),
	}, nil
}

func toDomainQuote(m *QuoteModel) (*quoteDomain.Quote, error) {
	var contact quoteDomain.Contact
	if err := json.Unmarshal(m.Contact, &contact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contact: %w", err)
	}

	var stops []geo.RouteStop
	if err := json.Unmarshal(m.Stops, &stops); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stops: %w", err)
	}

	var selection quoteDomain.Selection
	if err := json.Unmarshal(m.Selection, &selection); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selection: %w", err)
	}

	var breakdown pricing.PriceBreakdown
	if err := json.Unmarshal(m.Breakdown, &breakdown); err != nil {
		return nil, fmt.Errorf("failed to unmarshal breakdown: %w", err)
	}

	status, err := quoteDomain.ParseQuoteStatus(m.Status)
	if err != nil {
		return nil, err
	}

	kind, err := quoteDomain.ParseKind(m.Kind)
	if err != nil {
		return nil, err
	}

	return quoteDomain.ReconstructQuote(quoteDomain.ReconstructParams{
		ID:             m.ID,
		QuoteNumber:    m.QuoteNumber,
		Kind:           kind,
		Status:         status,
		Contact:        contact,
		Travelers:      m.Travelers,
		TravelDate:     m.TravelDate,
		Stops:          stops,
		Selection:      selection,
		Breakdown:      breakdown,
		Notes:          m.Notes,
		ReservationRef: m.ReservationRef,
		ConfirmedAt:    m.ConfirmedAt,
		CompletedAt:    m.CompletedAt,
		CancelledAt:    m.CancelledAt,
		CancelNote:     m.CancelNote,
		Version:        m.Version,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}), nil
}
