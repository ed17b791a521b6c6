package bulletin

import (
	"context"
	"time"
)

// Envelope is the JSON payload the collector publishes to the source topic.
type Envelope struct {
	Product string `json:"product"`
	Text    string `json:"text"`
}

// RawBulletin represents an unprocessed message from the source topic.
type RawBulletin struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputBulletin is the serialized form destined for the sink topic.
type OutputBulletin struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
