package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"closet-rental/internal/domain/rental"
	"closet-rental/internal/usecase/shared"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	maxRetries     = 3
	retryBaseDelay = 200 * time.Millisecond
)

// Bus publishes rental notices on an in-process watermill channel. Subscribers
// receive every notice published after they subscribed.
type Bus struct {
	pubsub *gochannel.GoChannel
	topic  string
	log    *slog.Logger
	wg     sync.WaitGroup
}

func NewBus(topic string, log *slog.Logger) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, &slogAdapter{log: log}),
		topic:  topic,
		log:    log,
	}
}

// payload is the wire form of shared.Notice.
type payload struct {
	Kind           string    `json:"kind"`
	RentalID       uuid.UUID `json:"rental_id"`
	ItemID         uuid.UUID `json:"item_id"`
	Event          string    `json:"event,omitempty"`
	From           string    `json:"from,omitempty"`
	To             string    `json:"to"`
	ActorID        uuid.UUID `json:"actor_id"`
	CounterpartyID uuid.UUID `json:"counterparty_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func Encode(n shared.Notice) (*message.Message, error) {
	body, err := json.Marshal(payload{
		Kind:           string(n.Kind),
		RentalID:       n.RentalID,
		ItemID:         n.ItemID,
		Event:          string(n.Event),
		From:           string(n.From),
		To:             string(n.To),
		ActorID:        n.ActorID,
		CounterpartyID: n.CounterpartyID,
		OccurredAt:     n.OccurredAt,
	})
	if err != nil {
		return nil, fmt.Errorf("notify: encode notice: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set("kind", string(n.Kind))
	msg.Metadata.Set("rental_id", n.RentalID.String())
	return msg, nil
}

func Decode(msg *message.Message) (shared.Notice, error) {
	var p payload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return shared.Notice{}, fmt.Errorf("notify: decode notice %s: %w", msg.UUID, err)
	}
	return shared.Notice{
		Kind:           shared.NoticeKind(p.Kind),
		RentalID:       p.RentalID,
		ItemID:         p.ItemID,
		Event:          rental.Event(p.Event),
		From:           rental.Status(p.From),
		To:             rental.Status(p.To),
		ActorID:        p.ActorID,
		CounterpartyID: p.CounterpartyID,
		OccurredAt:     p.OccurredAt,
	}, nil
}

// Notify implements shared.Notifier.
func (b *Bus) Notify(ctx context.Context, n shared.Notice) error {
	msg, err := Encode(n)
	if err != nil {
		return err
	}
	msg.SetContext(ctx)
	if err := b.pubsub.Publish(b.topic, msg); err != nil {
		return fmt.Errorf("notify: publish to %s: %w", b.topic, err)
	}
	return nil
}

// Subscribe delivers notices to handler until ctx is canceled or the bus is closed.
// A handler error is retried with backoff, then the message is nacked and dropped.
func (b *Bus) Subscribe(ctx context.Context, handler func(context.Context, shared.Notice) error) error {
	ch, err := b.pubsub.Subscribe(ctx, b.topic)
	if err != nil {
		return fmt.Errorf("notify: subscribe to %s: %w", b.topic, err)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for msg := range ch {
			n, err := Decode(msg)
			if err != nil {
				b.log.ErrorContext(ctx, "notify: dropping undecodable message", "error", err.Error())
				msg.Ack()
				continue
			}
			if err := retryWithBackoff(ctx, n, handler, maxRetries, retryBaseDelay, b.log); err != nil {
				b.log.ErrorContext(ctx, "notify: handler gave up",
					"rental_id", n.RentalID.String(),
					"error", err.Error())
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}()
	return nil
}

func retryWithBackoff(
	ctx context.Context,
	n shared.Notice,
	handler func(context.Context, shared.Notice) error,
	maxRetries int,
	baseDelay time.Duration,
	log *slog.Logger,
) error {
	delay := baseDelay
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = handler(ctx, n); err == nil {
			return nil
		}
		if attempt < maxRetries {
			log.WarnContext(ctx, "notify: handler failed, retrying",
				"attempt", attempt,
				"next_delay", delay,
				"error", err.Error())
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}
	return fmt.Errorf("notify: handler failed after %d attempts: %w", maxRetries, err)
}

// Close stops delivery and waits for running handlers.
func (b *Bus) Close() error {
	err := b.pubsub.Close()
	b.wg.Wait()
	return err
}

// slogAdapter bridges slog to watermill.LoggerAdapter.
type slogAdapter struct{ log *slog.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}
func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
