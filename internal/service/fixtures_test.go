package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/MKhiriev/go-page-builder/internal/config"
	"github.com/MKhiriev/go-page-builder/internal/guard"
	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/internal/store"
	"github.com/MKhiriev/go-page-builder/models"
	"github.com/stretchr/testify/require"
)

const (
	testOptionKey = "page-builder"
	testFeature   = "fw-page-builder"
)

func testAppConfig() config.App {
	return config.App{
		BuilderOptionKey: testOptionKey,
		FeatureName:      testFeature,
		WrapperClass:     "fw-page-builder-content",
		EscapeFactor:     5,
		DedupWindow:      3,
		ImportOptionsKey: "page_options",
		Version:          "1.0.0",
	}
}

// countingHost counts body writes on top of a real host.
type countingHost struct {
	store.Host

	mu     sync.Mutex
	writes []int64
}

func (c *countingHost) UpdateEntityBody(ctx context.Context, id int64, body string) error {
	c.mu.Lock()
	c.writes = append(c.writes, id)
	c.mu.Unlock()

	return c.Host.UpdateEntityBody(ctx, id, body)
}

func (c *countingHost) writeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.writes)
}

// recordingDedup stands in for the deduplicator.
type recordingDedup struct {
	calls   []int64
	deleted []int64
	err     error
}

func (r *recordingDedup) Dedupe(_ context.Context, canonicalID int64) ([]int64, error) {
	r.calls = append(r.calls, canonicalID)
	return r.deleted, r.err
}

type syncFixture struct {
	host  *countingHost
	sync  SyncService
	guard *guard.Guard
}

// newSyncFixture builds a synchronizer over an in-memory host that strips
// rounds levels of backslashes. When subscribe is true the synchronizer
// listens to the host's events the way the server wires it.
func newSyncFixture(t *testing.T, rounds int, subscribe bool) *syncFixture {
	t.Helper()

	host := &countingHost{Host: store.NewMemoryHost(rounds)}
	cfg := testAppConfig()
	g := guard.New()

	dedup := NewDedupService(host, cfg, logger.Nop())
	s := NewSyncService(host, dedup, g, cfg, logger.Nop())
	if subscribe {
		host.Subscribe(s.OnOptionUpdated)
	}

	require.NoError(t, host.DeclareSupport(context.Background(), "page", testFeature))

	return &syncFixture{host: host, sync: s, guard: g}
}

func (f *syncFixture) createPage(t *testing.T, body string) int64 {
	t.Helper()

	entity, err := f.host.CreateEntity(context.Background(), "page", body)
	require.NoError(t, err)
	return entity.ID
}

func (f *syncFixture) setBuilderOption(t *testing.T, id int64, active bool, notation string) {
	t.Helper()

	setBuilderOption(t, f.host, id, active, notation)
}

func (f *syncFixture) body(t *testing.T, id int64) string {
	t.Helper()

	entity, err := f.host.GetEntity(context.Background(), id)
	require.NoError(t, err)
	return entity.Body
}

func setBuilderOption(t *testing.T, host store.HostAdmin, id int64, active bool, notation string) {
	t.Helper()

	raw, err := json.Marshal(models.BuilderOption{Active: active, Notation: notation})
	require.NoError(t, err)
	require.NoError(t, host.SetOption(context.Background(), id, testOptionKey, raw, "builder_active", "shortcode_notation"))
}

func builderEvent(id int64) models.OptionUpdatedEvent {
	return models.OptionUpdatedEvent{EntityID: id, OptionKey: testOptionKey}
}
