// Package push maintains the per-account update subscription. The channel is
// best-effort: at-least-once, unordered, no replay after a gap. Convergence
// under loss is the history fetch's job, so the listener only has to deliver
// what arrives and say when it had to reconnect.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerview/internal/domain"
	"github.com/iho/ledgerview/internal/infrastructure/metrics"
	"github.com/iho/ledgerview/internal/reconcile"
	"github.com/iho/ledgerview/internal/usecase"
)

// DefaultTopicPrefix scopes update channels per account:
// <prefix>.<accountID>.
const DefaultTopicPrefix = "ledger.updates"

// Listener subscribes to one account's update topic and forwards decoded
// events to an EventSink.
type Listener struct {
	client      *redis.Client
	topicPrefix string
	logger      *slog.Logger
	metrics     *metrics.Metrics

	initialInterval time.Duration
	maxInterval     time.Duration
}

// Config for Listener.
type Config struct {
	Client      *redis.Client
	TopicPrefix string
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
}

// NewListener creates a new Listener.
func NewListener(cfg Config) *Listener {
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = DefaultTopicPrefix
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Listener{
		client:          cfg.Client,
		topicPrefix:     cfg.TopicPrefix,
		logger:          cfg.Logger,
		metrics:         cfg.Metrics,
		initialInterval: 250 * time.Millisecond,
		maxInterval:     30 * time.Second,
	}
}

// Topic returns the channel name for an account.
func (l *Listener) Topic(accountID string) string {
	return fmt.Sprintf("%s.%s", l.topicPrefix, accountID)
}

// Run opens the subscription and pumps messages into sink until ctx is
// cancelled. Connection loss triggers a re-subscribe with backoff and a
// HandleReconnect notification; missed messages are not replayed.
func (l *Listener) Run(ctx context.Context, accountID string, sink usecase.EventSink) error {
	topic := l.Topic(accountID)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.initialInterval
	b.MaxInterval = l.maxInterval
	b.MaxElapsedTime = 0 // keep trying until cancelled

	connected := false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		pubsub := l.client.Subscribe(ctx, topic)

		if _, err := pubsub.Receive(ctx); err != nil {
			_ = pubsub.Close()

			if ctx.Err() != nil {
				return ctx.Err()
			}

			l.logger.WarnContext(ctx, "subscribe failed",
				slog.String("topic", topic),
				slog.String("error", err.Error()))

			if !sleep(ctx, b.NextBackOff()) {
				return ctx.Err()
			}
			continue
		}

		b.Reset()

		if connected {
			if l.metrics != nil {
				l.metrics.PushReconnects.Inc()
			}
			l.logger.InfoContext(ctx, "subscription re-established", slog.String("topic", topic))
			sink.HandleReconnect()
		} else {
			connected = true
			l.logger.InfoContext(ctx, "subscribed", slog.String("topic", topic))
		}

		err := l.pump(ctx, pubsub, sink)
		_ = pubsub.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}

		l.logger.WarnContext(ctx, "subscription lost",
			slog.String("topic", topic),
			slog.String("error", err.Error()))

		if !sleep(ctx, b.NextBackOff()) {
			return ctx.Err()
		}
	}
}

// pump receives until the subscription errors or ctx is cancelled.
func (l *Listener) pump(ctx context.Context, pubsub *redis.PubSub, sink usecase.EventSink) error {
	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			return err
		}

		ev, err := decodeEvent([]byte(msg.Payload))
		if err != nil {
			if l.metrics != nil {
				l.metrics.PushMessages.WithLabelValues("malformed").Inc()
			}
			l.logger.WarnContext(ctx, "malformed update event dropped",
				slog.String("error", err.Error()))
			continue
		}

		outcome := sink.HandleUpdate(ev)

		if l.metrics != nil {
			l.metrics.PushMessages.WithLabelValues(outcomeLabel(outcome)).Inc()
		}
	}
}

// wireEvent mirrors the JSON emitted on the update topic.
type wireEvent struct {
	Type       string           `json:"type"`
	ID         string           `json:"id"`
	Status     *string          `json:"status"`
	Amount     *decimal.Decimal `json:"amount"`
	FromID     *string          `json:"fromId"`
	ToID       *string          `json:"toId"`
	NewBalance *decimal.Decimal `json:"newBalance"`
	Timestamp  int64            `json:"timestamp"`
}

// decodeEvent decodes a push payload into a partial update event.
func decodeEvent(payload []byte) (domain.UpdateEvent, error) {
	var wire wireEvent
	if err := json.Unmarshal(payload, &wire); err != nil {
		return domain.UpdateEvent{}, err
	}

	ev := domain.UpdateEvent{
		Type:       wire.Type,
		ID:         wire.ID,
		Amount:     wire.Amount,
		FromID:     wire.FromID,
		ToID:       wire.ToID,
		NewBalance: wire.NewBalance,
	}

	if wire.Status != nil {
		status := domain.Status(*wire.Status)
		ev.Status = &status
	}

	return ev, nil
}

func outcomeLabel(outcome reconcile.MergeOutcome) string {
	switch outcome {
	case reconcile.MergeInserted:
		return metrics.OutcomeInserted
	case reconcile.MergeUpdated:
		return metrics.OutcomeUpdated
	case reconcile.MergeStaleDropped:
		return metrics.OutcomeStaleDropped
	default:
		return metrics.OutcomeNoop
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
