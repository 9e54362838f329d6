package outbox

import (
	"context"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/hairsol/booking-engine/internal/metrics"
	"github.com/hairsol/booking-engine/internal/models"
)

// Store hands out unpublished events. publish runs while the batch is
// claimed; the batch is marked published only if publish returns nil.
type Store interface {
	ClaimBatch(
		ctx context.Context,
		limit int,
		publish func(events []models.OutboxEvent) error,
	) error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type PublisherConfig struct {
	Brokers   string
	PollEvery time.Duration
	BatchSize int

	// DiscardWhenDisabled drains the outbox without a broker instead of
	// leaving rows to accumulate. Used by the in-memory backend.
	DiscardWhenDisabled bool
}

type Publisher struct {
	store     Store
	logger    *zap.Logger
	brokers   []string
	pollEvery time.Duration
	batchSize int
	discard   bool

	newWriter func(brokers []string) MessageWriter
}

func NewPublisher(store Store, logger *zap.Logger, cfg PublisherConfig) *Publisher {
	if cfg.PollEvery <= 0 {
		cfg.PollEvery = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Publisher{
		store:     store,
		logger:    logger,
		brokers:   SplitBrokers(cfg.Brokers),
		pollEvery: cfg.PollEvery,
		batchSize: cfg.BatchSize,
		discard:   cfg.DiscardWhenDisabled,
		newWriter: func(brokers []string) MessageWriter {
			return &kafka.Writer{
				Addr:                   kafka.TCP(brokers...),
				Balancer:               &kafka.Hash{},
				AllowAutoTopicCreation: true,
			}
		},
	}
}

func (p *Publisher) Run(ctx context.Context) {
	var writer MessageWriter
	switch {
	case len(p.brokers) > 0:
		writer = p.newWriter(p.brokers)
	case p.discard:
		p.logger.Info("no kafka brokers configured, outbox events are discarded")
		writer = DiscardWriter{}
	default:
		p.logger.Warn("outbox publisher disabled (no kafka brokers configured)")
		return
	}
	defer writer.Close()

	ticker := time.NewTicker(p.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.PublishBatch(ctx, writer); err != nil {
				p.logger.Error("outbox publish failed", zap.Error(err))
			}
		}
	}
}

func (p *Publisher) PublishBatch(ctx context.Context, writer MessageWriter) error {
	return p.store.ClaimBatch(ctx, p.batchSize, func(events []models.OutboxEvent) error {
		if len(events) == 0 {
			return nil
		}

		msgs := make([]kafka.Message, 0, len(events))
		for _, ev := range events {
			msgs = append(msgs, Message(ev))
		}
		if err := writer.WriteMessages(ctx, msgs...); err != nil {
			return err
		}

		if _, ok := writer.(DiscardWriter); ok {
			return nil
		}
		for _, ev := range events {
			metrics.RecordOutboxPublished(ev.EventType, 1)
		}
		return nil
	})
}

// DiscardWriter accepts every message and drops it.
type DiscardWriter struct{}

func (DiscardWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		metrics.RecordOutboxDiscarded(m.Topic, 1)
	}
	return nil
}

func (DiscardWriter) Close() error { return nil }

// Message maps an outbox row onto a kafka message keyed by aggregate so all
// events of one appointment land on the same partition.
func Message(ev models.OutboxEvent) kafka.Message {
	return kafka.Message{
		Topic: ev.EventType,
		Key:   []byte(ev.AggregateID),
		Value: []byte(ev.Payload),
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(ev.EventID)},
			{Key: "event_type", Value: []byte(ev.EventType)},
		},
	}
}

func SplitBrokers(raw string) []string {
	var out []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
