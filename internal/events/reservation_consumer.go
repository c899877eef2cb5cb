package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/wayfare-travel/service-trip/internal/application"
	"github.com/wayfare-travel/service-trip/internal/common/domain"
	"github.com/wayfare-travel/service-trip/internal/common/kafka"
)

// QuoteLifecycle is the part of the quote service driven by reservation outcomes.
type QuoteLifecycle interface {
	ConfirmQuote(ctx context.Context, id uuid.UUID, reservationRef string) (*application.QuoteDTO, error)
	CancelQuote(ctx context.Context, id uuid.UUID, reason string) (*application.QuoteDTO, error)
}

// ReservationEventConsumer listens to reservation events and confirms or cancels quotes.
type ReservationEventConsumer struct {
	consumer *kafka.Consumer
	quotes   QuoteLifecycle
	logger   *zap.Logger
}

// NewReservationEventConsumer creates a new ReservationEventConsumer.
func NewReservationEventConsumer(
	brokers []string,
	groupID string,
	quotes QuoteLifecycle,
	logger *zap.Logger,
) *ReservationEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicReservationEvents, logger)
	return &ReservationEventConsumer{
		consumer: consumer,
		quotes:   quotes,
		logger:   logger,
	}
}

// Start begins consuming reservation events. This blocks until the context is cancelled.
func (c *ReservationEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *ReservationEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *ReservationEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from reservation topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case ReservationConfirmed:
		return c.handleConfirmed(ctx, cloudEvent)
	case ReservationFailed:
		return c.handleFailed(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled reservation event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *ReservationEventConsumer) handleConfirmed(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt ReservationConfirmedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse ReservationConfirmedEvent data", zap.Error(err))
		return nil
	}

	c.logger.Info("processing reservation confirmed event",
		zap.String("quote_id", evt.QuoteID.String()),
		zap.String("reservation_ref", evt.ReservationRef),
	)

	_, err := c.quotes.ConfirmQuote(ctx, evt.QuoteID, evt.ReservationRef)
	return c.settle(err, evt.QuoteID, "confirm")
}

func (c *ReservationEventConsumer) handleFailed(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt ReservationFailedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse ReservationFailedEvent data", zap.Error(err))
		return nil
	}

	c.logger.Info("processing reservation failed event",
		zap.String("quote_id", evt.QuoteID.String()),
		zap.String("reason", evt.Reason),
	)

	reason := evt.Reason
	if reason == "" {
		reason = "reservation failed"
	}
	_, err := c.quotes.CancelQuote(ctx, evt.QuoteID, reason)
	return c.settle(err, evt.QuoteID, "cancel")
}

// settle decides whether a failed transition is worth a retry. Unknown quotes and
// redelivered events for quotes that already moved on are dropped. Anything else is
// returned so the consumer retries the message; each retry reloads the quote.
func (c *ReservationEventConsumer) settle(err error, quoteID uuid.UUID, action string) error {
	if err == nil {
		c.logger.Info("quote updated from reservation event",
			zap.String("quote_id", quoteID.String()),
			zap.String("action", action),
		)
		return nil
	}

	switch domain.KindOf(err) {
	case domain.KindNotFound, domain.KindInvalidState:
		c.logger.Warn("dropping reservation event",
			zap.String("quote_id", quoteID.String()),
			zap.String("action", action),
			zap.Error(err),
		)
		return nil
	}

	c.logger.Error("failed to apply reservation event",
		zap.String("quote_id", quoteID.String()),
		zap.String("action", action),
		zap.Error(err),
	)
	return err
}
