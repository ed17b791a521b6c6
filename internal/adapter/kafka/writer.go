package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/aviation-hazard-etl/internal/bulletin"
	"github.com/couchcryptid/aviation-hazard-etl/internal/config"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes decoded bulletins to the sink topic. It implements
// pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic. Writes
// require acknowledgement from all in-sync replicas.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch writes the batch in a single produce call so the whole batch
// shares one round trip to the brokers.
func (w *Writer) LoadBatch(ctx context.Context, batch []bulletin.OutputBulletin) error {
	if len(batch) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, len(batch))
	for _, out := range batch {
		headers := make([]kafkago.Header, 0, len(out.Headers))
		for k, v := range out.Headers {
			headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
		}
		msgs = append(msgs, kafkago.Message{
			Key:     out.Key,
			Value:   out.Value,
			Headers: headers,
		})
	}

	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("writing %d decoded bulletins: %w", len(msgs), err)
	}
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}
