package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/aviation-hazard-etl/internal/bulletin"
	"github.com/couchcryptid/aviation-hazard-etl/internal/observability"
)

// ErrDuplicateBulletin signals that a bulletin's content ID was already
// processed recently. The pipeline commits and skips it without producing output.
var ErrDuplicateBulletin = errors.New("duplicate bulletin")

// productHeader overrides an empty envelope product field, letting collectors
// that publish plain text route by header alone.
const productHeader = "product"

// BulletinTransformer implements Transformer: it parses the source envelope,
// runs the decoder selected by product kind, and serializes the decoded
// bulletin for the sink topic. Pass a zero dedupeSize to disable the
// seen-bulletin cache.
type BulletinTransformer struct {
	seen    *seenCache
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a BulletinTransformer.
func NewTransformer(dedupeSize int, logger *slog.Logger, metrics *observability.Metrics) *BulletinTransformer {
	return &BulletinTransformer{
		seen:    newSeenCache(dedupeSize),
		logger:  logger,
		metrics: metrics,
	}
}

// MarkSeen records a content ID in the dedupe cache. The pipeline calls this
// once the bulletin's batch has been written to the sink; marking any earlier
// would drop a redelivered bulletin whose load failed.
func (t *BulletinTransformer) MarkSeen(id string) {
	t.seen.mark(id)
}

func (t *BulletinTransformer) Transform(_ context.Context, raw bulletin.RawBulletin) (bulletin.OutputBulletin, error) {
	var env bulletin.Envelope
	if err := json.Unmarshal(raw.Value, &env); err != nil {
		return bulletin.OutputBulletin{}, fmt.Errorf("parse envelope: %w", err)
	}
	if env.Product == "" {
		env.Product = raw.Headers[productHeader]
	}

	product, err := bulletin.ParseProductKind(env.Product)
	if err != nil {
		return bulletin.OutputBulletin{}, err
	}
	if env.Text == "" {
		return bulletin.OutputBulletin{}, errors.New("envelope has empty bulletin text")
	}

	if t.seen.contains(bulletin.ContentID(product, env.Text)) {
		return bulletin.OutputBulletin{}, ErrDuplicateBulletin
	}

	start := time.Now()
	decoded, err := bulletin.Decode(product, env.Text)
	if err != nil {
		return bulletin.OutputBulletin{}, err
	}
	t.metrics.DecodeDuration.Observe(time.Since(start).Seconds())
	t.metrics.BulletinsDecoded.WithLabelValues(string(product)).Inc()

	if decoded.Hazard != nil && len(decoded.Hazard.Notes) > 0 {
		t.metrics.DecodeWarnings.Add(float64(len(decoded.Hazard.Notes)))
		t.logger.Warn("bulletin decoded with data-quality notes",
			"id", decoded.ID,
			"product", decoded.Product,
			"notes", decoded.Hazard.Notes,
		)
	}

	return serializeToOutput(decoded)
}

// serializeToOutput marshals a decoded bulletin into a sink message.
func serializeToOutput(decoded bulletin.DecodedBulletin) (bulletin.OutputBulletin, error) {
	data, err := json.Marshal(decoded)
	if err != nil {
		return bulletin.OutputBulletin{}, fmt.Errorf("serialize decoded bulletin: %w", err)
	}
	return bulletin.OutputBulletin{
		Key:   []byte(decoded.ID),
		Value: data,
		Headers: map[string]string{
			productHeader: string(decoded.Product),
			"decoded_at":  decoded.DecodedAt.Format(time.RFC3339),
		},
	}, nil
}
