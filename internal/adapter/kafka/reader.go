package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/aviation-hazard-etl/internal/bulletin"
	"github.com/couchcryptid/aviation-hazard-etl/internal/config"
	kafkago "github.com/segmentio/kafka-go"
)

// Reader consumes raw bulletins from the source topic as part of a consumer
// group. It implements pipeline.BatchExtractor.
type Reader struct {
	reader        *kafkago.Reader
	logger        *slog.Logger
	flushInterval time.Duration
}

// NewReader creates a Kafka consumer for the configured source topic.
// Offsets are committed explicitly through each RawBulletin's Commit func.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		GroupID:  cfg.KafkaGroupID,
		Topic:    cfg.KafkaSourceTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  cfg.BatchFlushInterval,
	})
	return &Reader{reader: r, logger: logger, flushInterval: cfg.BatchFlushInterval}
}

// ExtractBatch blocks for the first available message, then drains whatever
// else arrives within the flush interval, up to batchSize messages. A short
// partial batch is normal during quiet periods.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]bulletin.RawBulletin, error) {
	first, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return nil, err
	}

	batch := make([]bulletin.RawBulletin, 0, batchSize)
	batch = append(batch, r.mapMessage(first))

	drainCtx, cancel := context.WithTimeout(ctx, r.flushInterval)
	defer cancel()

	for len(batch) < batchSize {
		msg, err := r.reader.FetchMessage(drainCtx)
		if err != nil {
			// Deadline exhaustion just means the batch is full enough.
			break
		}
		batch = append(batch, r.mapMessage(msg))
	}
	return batch, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

func (r *Reader) mapMessage(msg kafkago.Message) bulletin.RawBulletin {
	raw := mapMessageToRawBulletin(msg)
	raw.Commit = func(ctx context.Context) error {
		return r.reader.CommitMessages(ctx, msg)
	}
	return raw
}

// mapMessageToRawBulletin converts a Kafka message into the transport-neutral
// RawBulletin the pipeline operates on.
func mapMessageToRawBulletin(msg kafkago.Message) bulletin.RawBulletin {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return bulletin.RawBulletin{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
}
