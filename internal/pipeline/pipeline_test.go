package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/aviation-hazard-etl/internal/bulletin"
	"github.com/couchcryptid/aviation-hazard-etl/internal/observability"
	"github.com/couchcryptid/aviation-hazard-etl/internal/pipeline"
)

// --- mocks ---

type mockExtractor struct {
	batches [][]bulletin.RawBulletin
	index   atomic.Int64
}

func (m *mockExtractor) ExtractBatch(ctx context.Context, _ int) ([]bulletin.RawBulletin, error) {
	i := int(m.index.Add(1) - 1)
	if i >= len(m.batches) {
		// block until context cancelled to simulate waiting for messages
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.batches[i], nil
}

type mockTransformer struct {
	err error
}

func (m *mockTransformer) Transform(_ context.Context, raw bulletin.RawBulletin) (bulletin.OutputBulletin, error) {
	if m.err != nil {
		return bulletin.OutputBulletin{}, m.err
	}
	return bulletin.OutputBulletin{Key: raw.Key, Value: raw.Value}, nil
}

type mockLoader struct {
	loaded    []bulletin.OutputBulletin
	loadErr   error
	failFirst int
	calls     atomic.Int64
}

func (m *mockLoader) LoadBatch(_ context.Context, batch []bulletin.OutputBulletin) error {
	if m.calls.Add(1) <= int64(m.failFirst) {
		return errors.New("broker unavailable")
	}
	if m.loadErr != nil {
		return m.loadErr
	}
	m.loaded = append(m.loaded, batch...)
	return nil
}

func newTestMetrics() *observability.Metrics {
	// Use a fresh registry to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

func makeEnvelope(t *testing.T, product, text string) bulletin.RawBulletin {
	t.Helper()
	value, err := json.Marshal(bulletin.Envelope{Product: product, Text: text})
	require.NoError(t, err)
	return bulletin.RawBulletin{Key: []byte(product), Value: value, Topic: "raw-hazard-bulletins"}
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	raw := makeEnvelope(t, "pirep", "UIN UA /OV UIN134015/TM 1505")

	ext := &mockExtractor{batches: [][]bulletin.RawBulletin{{raw}}}
	tfm := &mockTransformer{}
	ldr := &mockLoader{}

	p := pipeline.New(ext, tfm, ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Len(t, ldr.loaded, 1)
	assert.Equal(t, raw.Value, ldr.loaded[0].Value)
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ext := &mockExtractor{} // no batches, will block
	p := pipeline.New(ext, &mockTransformer{}, &mockLoader{}, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	err := p.Run(ctx)
	require.NoError(t, err)
}

func TestPipeline_Run_TransformErrorSkipsAndCommits(t *testing.T) {
	commitCalled := false
	raw := makeEnvelope(t, "pirep", "UIN UA /OV UIN134015")
	raw.Commit = func(_ context.Context) error {
		commitCalled = true
		return nil
	}

	ext := &mockExtractor{batches: [][]bulletin.RawBulletin{{raw}}}
	tfm := &mockTransformer{err: errors.New("bad data")}
	ldr := &mockLoader{}

	p := pipeline.New(ext, tfm, ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.loaded)
	assert.True(t, commitCalled, "failed message should still be committed")
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_DuplicateSkippedWithoutOutput(t *testing.T) {
	var commits atomic.Int64
	commit := func(_ context.Context) error {
		commits.Add(1)
		return nil
	}

	first := makeEnvelope(t, "airmet", "AIRMET TANGO FOR TURB VALID 121445/122100")
	first.Commit = commit
	second := first
	second.Commit = commit

	// The collector re-publishes the same bulletin in a later fetch cycle.
	ext := &mockExtractor{batches: [][]bulletin.RawBulletin{{first}, {second}}}
	tfm := pipeline.NewTransformer(16, slog.Default(), newTestMetrics())
	ldr := &mockLoader{}

	p := pipeline.New(ext, tfm, ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Len(t, ldr.loaded, 1, "duplicate must not reach the sink")
	assert.Equal(t, int64(2), commits.Load(), "both offsets must be committed")
}

func TestPipeline_Run_CommitsAfterLoad(t *testing.T) {
	commitCalled := false
	raw := makeEnvelope(t, "sigmet", "KZNY- NEW YORK FIR SEV TURB")
	raw.Commit = func(_ context.Context) error {
		commitCalled = true
		return nil
	}

	ext := &mockExtractor{batches: [][]bulletin.RawBulletin{{raw}}}
	ldr := &mockLoader{}

	p := pipeline.New(ext, &mockTransformer{}, ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Len(t, ldr.loaded, 1)
	assert.True(t, commitCalled)
}

func TestPipeline_Run_RedeliveryAfterLoadFailureIsNotADuplicate(t *testing.T) {
	var commits atomic.Int64
	commit := func(_ context.Context) error {
		commits.Add(1)
		return nil
	}

	first := makeEnvelope(t, "airmet", "AIRMET TANGO FOR TURB VALID 121445/122100")
	first.Commit = commit
	redelivered := first
	redelivered.Commit = commit

	// The first load fails with the offset uncommitted; Kafka redelivers the
	// same bulletin in the next batch. It must still reach the sink.
	ext := &mockExtractor{batches: [][]bulletin.RawBulletin{{first}, {redelivered}}}
	tfm := pipeline.NewTransformer(16, slog.Default(), newTestMetrics())
	ldr := &mockLoader{failFirst: 1}

	p := pipeline.New(ext, tfm, ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	require.Len(t, ldr.loaded, 1, "redelivered bulletin must reach the sink")
	assert.Equal(t, int64(1), commits.Load(), "only the loaded delivery is committed")
}

func TestPipeline_Run_LoadErrorRetriesWithBackoff(t *testing.T) {
	raw := makeEnvelope(t, "pirep", "UIN UA /OV UIN134015")

	ext := &mockExtractor{batches: [][]bulletin.RawBulletin{{raw}, {raw}}}
	ldr := &mockLoader{loadErr: errors.New("broker unavailable")}

	p := pipeline.New(ext, &mockTransformer{}, ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 600*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.loaded)
	assert.Error(t, p.CheckReadiness(context.Background()))
}
