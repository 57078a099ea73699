// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-page-builder/internal/codec"
	"github.com/MKhiriev/go-page-builder/internal/guard"
	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/internal/mock"
	"github.com/MKhiriev/go-page-builder/internal/store"
	"github.com/MKhiriev/go-page-builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────────────────────────────────────
// PlanSync - decision matrix (table-driven)
// ─────────────────────────────────────────────────────────────────────────────

func TestSyncPlanner_PlanSync_DecisionMatrix(t *testing.T) {
	planner := SyncPlanner{OptionKey: testOptionKey, EscapeFactor: 5}

	active := func(notation string) *models.BuilderOption {
		return &models.BuilderOption{Active: true, Notation: notation}
	}
	canonical := models.Canonical(1)

	tests := []struct {
		name      string
		event     models.OptionUpdatedEvent
		view      models.HostView
		wantSkip  models.SkipReason
		wantBody  string
		wantWrite bool
	}{
		{
			name:     "other option key → irrelevant",
			event:    models.OptionUpdatedEvent{EntityID: 1, OptionKey: "seo"},
			view:     models.HostView{Ref: canonical, Found: true, Supported: true, Option: active("x")},
			wantSkip: models.SkipIrrelevantOption,
		},
		{
			name:     "canonical entity missing → unavailable",
			event:    builderEvent(1),
			view:     models.HostView{Ref: canonical},
			wantSkip: models.SkipEntityUnavailable,
		},
		{
			name:     "type without feature → unsupported",
			event:    builderEvent(1),
			view:     models.HostView{Ref: canonical, Found: true, Option: active("x")},
			wantSkip: models.SkipUnsupportedType,
		},
		{
			name:     "no builder option → missing",
			event:    builderEvent(1),
			view:     models.HostView{Ref: canonical, Found: true, Supported: true},
			wantSkip: models.SkipMissingOption,
		},
		{
			name:     "builder inactive → inactive",
			event:    builderEvent(1),
			view:     models.HostView{Ref: canonical, Found: true, Supported: true, Option: &models.BuilderOption{Notation: "x"}},
			wantSkip: models.SkipInactive,
		},
		{
			name:     "body equals notation → already synced",
			event:    builderEvent(1),
			view:     models.HostView{Ref: canonical, Found: true, Supported: true, Option: active(`a\b`), Body: `a\b`},
			wantSkip: models.SkipAlreadySynced,
		},
		{
			name:     "body equals escaped notation → already synced",
			event:    builderEvent(1),
			view:     models.HostView{Ref: canonical, Found: true, Supported: true, Option: active(`a\b`), Body: `a\\\\\b`},
			wantSkip: models.SkipAlreadySynced,
		},
		{
			name:      "out of sync → escaped write",
			event:     builderEvent(1),
			view:      models.HostView{Ref: canonical, Found: true, Supported: true, Option: active(`a\b`), Body: "old"},
			wantBody:  `a\\\\\b`,
			wantWrite: true,
		},
		{
			name:      "empty option key means every option changed",
			event:     models.OptionUpdatedEvent{EntityID: 1},
			view:      models.HostView{Ref: canonical, Found: true, Supported: true, Option: active("[x]"), Body: "old"},
			wantBody:  "[x]",
			wantWrite: true,
		},
		{
			name:      "empty notation overwrites a non-empty body",
			event:     builderEvent(1),
			view:      models.HostView{Ref: canonical, Found: true, Supported: true, Option: active(""), Body: "old"},
			wantBody:  "",
			wantWrite: true,
		},
		{
			name:     "snapshot ref plans no write",
			event:    builderEvent(7),
			view:     models.HostView{Ref: models.Snapshot(7, 1), Found: true, Supported: true, Option: active("[x]"), Body: "old"},
			wantBody: "[x]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := planner.PlanSync(tt.event, tt.view)

			assert.Equal(t, tt.wantSkip, plan.Skip)
			assert.Equal(t, tt.wantWrite, plan.Writes())
			if tt.wantSkip == models.SkipNone {
				assert.Equal(t, tt.wantBody, plan.Body)
				assert.Equal(t, tt.view.Ref.CanonicalID, plan.TargetID)
			}
		})
	}
}

func TestSyncPlanner_AutosaveTargetsCanonical(t *testing.T) {
	planner := SyncPlanner{OptionKey: testOptionKey, EscapeFactor: 5}

	plan := planner.PlanSync(builderEvent(9), models.HostView{
		Ref:       models.Autosave(9, 3),
		Found:     true,
		Supported: true,
		Option:    &models.BuilderOption{Active: true, Notation: "[x]"},
		Body:      "old",
	})

	assert.True(t, plan.Writes())
	assert.Equal(t, int64(3), plan.TargetID)
	assert.Equal(t, models.KindAutosave, plan.Ref.Kind)
}

// ─────────────────────────────────────────────────────────────────────────────
// Synchronizer over the in-memory host
// ─────────────────────────────────────────────────────────────────────────────

func TestSynchronizer_MaterializesOnOptionSave(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, 0, true)
	notation := "[section][text]Hello[/text][/section]"

	id := f.createPage(t, "old")
	f.setBuilderOption(t, id, true, notation)

	assert.Equal(t, notation, f.body(t, id))
	assert.Equal(t, 1, f.host.writeCount())
	assert.Zero(t, f.guard.Len())

	snapshots, err := f.host.RecentSnapshots(ctx, id, 10)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	snapshot, err := f.host.GetEntity(ctx, snapshots[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "old", snapshot.Body)

	// a second delivery of the same event changes nothing
	result, err := f.sync.Sync(ctx, builderEvent(id))
	require.NoError(t, err)
	assert.Equal(t, models.SkipAlreadySynced, result.Plan.Skip)
	assert.False(t, result.Written)
	assert.Equal(t, 1, f.host.writeCount())
}

func TestSynchronizer_NestedEventIsBlockedByGuard(t *testing.T) {
	// one unslash round leaves the body different from the notation, so the
	// event fired from inside the write passes the idempotence check
	f := newSyncFixture(t, 1, true)

	id := f.createPage(t, "old")
	f.setBuilderOption(t, id, true, `[text]a\b[/text]`)

	assert.Equal(t, 1, f.host.writeCount())
	assert.Equal(t, `[text]a\\b[/text]`, f.body(t, id))
	assert.Zero(t, f.guard.Len())
}

func TestSynchronizer_HeldGuardSkips(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, 0, false)

	id := f.createPage(t, "old")
	other := f.createPage(t, "old")
	f.setBuilderOption(t, id, true, "[x]")
	f.setBuilderOption(t, other, true, "[y]")

	release, ok := f.guard.Acquire(id)
	require.True(t, ok)

	result, err := f.sync.Sync(ctx, builderEvent(id))
	require.NoError(t, err)
	assert.Equal(t, models.SkipReentrant, result.Plan.Skip)
	assert.Equal(t, "old", f.body(t, id))

	// holding one id never blocks another
	result, err = f.sync.Sync(ctx, builderEvent(other))
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Equal(t, "[y]", f.body(t, other))

	release()
	result, err = f.sync.Sync(ctx, builderEvent(id))
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Equal(t, "[x]", f.body(t, id))
}

func TestSynchronizer_EscapedNotationSurvivesHostNormalization(t *testing.T) {
	f := newSyncFixture(t, 2, true)

	want := map[string]any{"path": `C:\dir`, "title": `say "hi"`}
	atts, err := codec.Encode(want)
	require.NoError(t, err)
	notation := fmt.Sprintf(`[section data="%s"][/section]`, atts)

	id := f.createPage(t, "old")
	f.setBuilderOption(t, id, true, notation)

	body := f.body(t, id)
	assert.Equal(t, notation, body)
	assert.Equal(t, 1, f.host.writeCount())

	shortcodes := codec.ParseShortcodes(body)
	require.Len(t, shortcodes, 1)
	got, err := codec.Decode(shortcodes[0].Atts["data"])
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSynchronizer_Skips(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, 0, true)

	unsupported, err := f.host.CreateEntity(ctx, "post", "old post")
	require.NoError(t, err)
	f.setBuilderOption(t, unsupported.ID, true, "[x]")

	inactive := f.createPage(t, "old page")
	f.setBuilderOption(t, inactive, false, "[x]")

	bare := f.createPage(t, "bare page")

	tests := []struct {
		name     string
		event    models.OptionUpdatedEvent
		wantSkip models.SkipReason
		wantBody string
	}{
		{"unsupported type", builderEvent(unsupported.ID), models.SkipUnsupportedType, "old post"},
		{"inactive builder", builderEvent(inactive), models.SkipInactive, "old page"},
		{"no builder option", builderEvent(bare), models.SkipMissingOption, "bare page"},
		{"other option", models.OptionUpdatedEvent{EntityID: inactive, OptionKey: "seo"}, models.SkipIrrelevantOption, "old page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.sync.Sync(ctx, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSkip, result.Plan.Skip)
			assert.False(t, result.Written)
			assert.Equal(t, tt.wantBody, f.body(t, tt.event.EntityID))
		})
	}

	assert.Zero(t, f.host.writeCount())
}

func TestSynchronizer_UnknownEntity(t *testing.T) {
	f := newSyncFixture(t, 0, false)

	result, err := f.sync.Sync(context.Background(), builderEvent(999))
	require.NoError(t, err)
	assert.Equal(t, models.SkipEntityUnavailable, result.Plan.Skip)
}

func TestSynchronizer_AutosaveWritesCanonical(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, 0, true)

	page := f.createPage(t, "old")
	autosave, err := f.host.CreateAutosave(ctx, page, "draft")
	require.NoError(t, err)

	f.setBuilderOption(t, autosave.ID, true, "[draft-layout]")

	assert.Equal(t, "[draft-layout]", f.body(t, page))
	assert.Equal(t, "draft", f.body(t, autosave.ID))
	assert.Equal(t, []int64{page}, f.host.writes)

	result, err := f.sync.Sync(ctx, builderEvent(autosave.ID))
	require.NoError(t, err)
	assert.Equal(t, models.SkipAlreadySynced, result.Plan.Skip)
	assert.Equal(t, models.Autosave(autosave.ID, page), result.Plan.Ref)
}

func TestSynchronizer_SnapshotTargetIsNeverWritten(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, 0, true)

	page := f.createPage(t, "old")
	f.setBuilderOption(t, page, true, "[first]")
	f.setBuilderOption(t, page, true, "[second]")
	require.Equal(t, "[second]", f.body(t, page))

	snapshots, err := f.host.RecentSnapshots(ctx, page, 10)
	require.NoError(t, err)
	require.Len(t, snapshots, 2, "different notations are not duplicates")
	oldest := snapshots[1].ID

	writes := f.host.writeCount()
	result, err := f.sync.Sync(ctx, builderEvent(oldest))
	require.NoError(t, err)

	assert.Equal(t, models.SkipSnapshotTarget, result.Plan.Skip)
	assert.True(t, result.Plan.Ref.IsSnapshot())
	assert.False(t, result.Written)
	assert.Equal(t, writes, f.host.writeCount())
	assert.Equal(t, "[second]", f.body(t, page))
	assert.Zero(t, f.guard.Len())
}

func TestSynchronizer_DedupesAfterWrite(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, 0, false)

	page := f.createPage(t, "old")
	f.setBuilderOption(t, page, true, "[layout]")
	require.NoError(t, f.host.UpdateEntityBody(ctx, page, "v1"))
	require.NoError(t, f.host.UpdateEntityBody(ctx, page, "v2"))

	before, err := f.host.RecentSnapshots(ctx, page, 10)
	require.NoError(t, err)
	require.Len(t, before, 2)

	result, err := f.sync.Sync(ctx, builderEvent(page))
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Equal(t, []int64{before[0].ID, before[1].ID}, result.Deleted)

	after, err := f.host.RecentSnapshots(ctx, page, 10)
	require.NoError(t, err)
	require.Len(t, after, 1)
	snapshot, err := f.host.GetEntity(ctx, after[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", snapshot.Body)
}

func TestSynchronizer_HandEditIsOverwrittenAndHistoryCollapsed(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, 0, true)

	page := f.createPage(t, "old")
	f.setBuilderOption(t, page, true, "[layout]")
	require.NoError(t, f.host.UpdateEntityBody(ctx, page, "hand edit"))

	assert.Equal(t, "[layout]", f.body(t, page))

	snapshots, err := f.host.RecentSnapshots(ctx, page, 10)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	snapshot, err := f.host.GetEntity(ctx, snapshots[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "hand edit", snapshot.Body)
}

// ─────────────────────────────────────────────────────────────────────────────
// Failure semantics
// ─────────────────────────────────────────────────────────────────────────────

type failingWriteHost struct {
	store.Host
	err error
}

func (h *failingWriteHost) UpdateEntityBody(context.Context, int64, string) error {
	return h.err
}

func TestSynchronizer_WriteFailure(t *testing.T) {
	ctx := context.Background()
	errDiskFull := errors.New("disk full")

	host := store.NewMemoryHost(0)
	require.NoError(t, host.DeclareSupport(ctx, "page", testFeature))
	page, err := host.CreateEntity(ctx, "page", "old")
	require.NoError(t, err)
	setBuilderOption(t, host, page.ID, true, "[x]")

	dedup := &recordingDedup{}
	g := guard.New()
	s := NewSyncService(&failingWriteHost{Host: host, err: errDiskFull}, dedup, g, testAppConfig(), logger.Nop())

	result, err := s.Sync(ctx, builderEvent(page.ID))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaterializing)
	assert.ErrorIs(t, err, errDiskFull)
	assert.False(t, result.Written)
	assert.Empty(t, dedup.calls, "dedup must not run after a failed write")
	assert.False(t, g.Held(page.ID), "guard must be released on error")
}

func TestSynchronizer_DedupFailureSurfaces(t *testing.T) {
	ctx := context.Background()

	host := store.NewMemoryHost(0)
	require.NoError(t, host.DeclareSupport(ctx, "page", testFeature))
	page, err := host.CreateEntity(ctx, "page", "old")
	require.NoError(t, err)
	setBuilderOption(t, host, page.ID, true, "[x]")

	dedup := &recordingDedup{
		deleted: []int64{7},
		err:     fmt.Errorf("%w: snapshot 8: %w", ErrDeletingSnapshot, errors.New("locked")),
	}
	s := NewSyncService(host, dedup, guard.New(), testAppConfig(), logger.Nop())

	result, err := s.Sync(ctx, builderEvent(page.ID))
	assert.ErrorIs(t, err, ErrDeletingSnapshot)
	assert.True(t, result.Written)
	assert.Equal(t, []int64{7}, result.Deleted)
	assert.Equal(t, []int64{page.ID}, dedup.calls)
}

func TestSynchronizer_ListenerFailureAfterWriteStillDedupes(t *testing.T) {
	ctx := context.Background()

	host := store.NewMemoryHost(0)
	require.NoError(t, host.DeclareSupport(ctx, "page", testFeature))
	page, err := host.CreateEntity(ctx, "page", "old")
	require.NoError(t, err)
	setBuilderOption(t, host, page.ID, true, "[x]")

	errNested := errors.New("nested load failed")
	host.Subscribe(func(context.Context, models.OptionUpdatedEvent) error { return errNested })

	dedup := &recordingDedup{deleted: []int64{3}}
	g := guard.New()
	s := NewSyncService(host, dedup, g, testAppConfig(), logger.Nop())

	result, err := s.Sync(ctx, builderEvent(page.ID))
	require.ErrorIs(t, err, store.ErrOptionListener)
	require.ErrorIs(t, err, errNested)
	assert.NotErrorIs(t, err, ErrMaterializing)
	assert.True(t, result.Written, "the body was committed before the listener failed")
	assert.Equal(t, []int64{3}, result.Deleted)
	assert.Equal(t, []int64{page.ID}, dedup.calls)
	assert.False(t, g.Held(page.ID))

	got, err := host.GetEntity(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, "[x]", got.Body)
}

func TestSynchronizer_OnOptionUpdatedReportsErrorsOnly(t *testing.T) {
	ctx := context.Background()

	host := store.NewMemoryHost(0)
	require.NoError(t, host.DeclareSupport(ctx, "page", testFeature))
	page, err := host.CreateEntity(ctx, "page", "old")
	require.NoError(t, err)
	setBuilderOption(t, host, page.ID, true, "[x]")

	s := NewSyncService(&failingWriteHost{Host: host, err: errors.New("boom")}, &recordingDedup{}, guard.New(), testAppConfig(), logger.Nop())

	assert.ErrorIs(t, s.OnOptionUpdated(ctx, builderEvent(page.ID)), ErrMaterializing)
	assert.NoError(t, s.OnOptionUpdated(ctx, builderEvent(999)))
}

// ─────────────────────────────────────────────────────────────────────────────
// Synchronizer against a mocked host store
// ─────────────────────────────────────────────────────────────────────────────

func TestSynchronizer_Mock_SnapshotTargetMakesNoWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := mock.NewMockHostStore(ctrl)
	dedup := &recordingDedup{}

	gomock.InOrder(
		host.EXPECT().AutosaveOf(gomock.Any(), int64(5)).Return(int64(0), false, nil),
		host.EXPECT().SnapshotOf(gomock.Any(), int64(5)).Return(int64(1), true, nil),
		host.EXPECT().GetEntity(gomock.Any(), int64(1)).
			Return(models.Entity{ID: 1, Kind: models.KindCanonical, Type: "page", Body: "old"}, nil),
		host.EXPECT().TypeSupports(gomock.Any(), "page", testFeature).Return(true, nil),
		host.EXPECT().GetOption(gomock.Any(), int64(5), testOptionKey).
			Return([]byte(`{"builder_active":true,"shortcode_notation":"[x]"}`), true, nil),
	)

	s := NewSyncService(host, dedup, guard.New(), testAppConfig(), logger.Nop())

	result, err := s.Sync(context.Background(), builderEvent(5))
	require.NoError(t, err)
	assert.Equal(t, models.SkipSnapshotTarget, result.Plan.Skip)
	assert.Empty(t, dedup.calls)
}

func TestSynchronizer_Mock_LoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := mock.NewMockHostStore(ctrl)
	errConn := errors.New("connection reset")

	host.EXPECT().AutosaveOf(gomock.Any(), int64(1)).Return(int64(0), false, nil)
	host.EXPECT().SnapshotOf(gomock.Any(), int64(1)).Return(int64(0), false, nil)
	host.EXPECT().GetEntity(gomock.Any(), int64(1)).Return(models.Entity{}, errConn)

	s := NewSyncService(host, &recordingDedup{}, guard.New(), testAppConfig(), logger.Nop())

	_, err := s.Sync(context.Background(), builderEvent(1))
	assert.ErrorIs(t, err, ErrLoadingHostState)
	assert.ErrorIs(t, err, errConn)
}

func TestSynchronizer_Mock_OptionReadFromEventID(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := mock.NewMockHostStore(ctrl)
	dedup := &recordingDedup{}

	host.EXPECT().AutosaveOf(gomock.Any(), int64(4)).Return(int64(2), true, nil)
	host.EXPECT().GetEntity(gomock.Any(), int64(2)).
		Return(models.Entity{ID: 2, Kind: models.KindCanonical, Type: "page", Body: "old"}, nil)
	host.EXPECT().TypeSupports(gomock.Any(), "page", testFeature).Return(true, nil)
	host.EXPECT().GetOption(gomock.Any(), int64(4), testOptionKey).
		Return([]byte(`{"builder_active":true,"shortcode_notation":"[autosaved]"}`), true, nil)
	host.EXPECT().UpdateEntityBody(gomock.Any(), int64(2), "[autosaved]").Return(nil)

	s := NewSyncService(host, dedup, guard.New(), testAppConfig(), logger.Nop())

	result, err := s.Sync(context.Background(), builderEvent(4))
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Equal(t, []int64{2}, dedup.calls)
}

func TestSynchronizer_Mock_MalformedOptionIsMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := mock.NewMockHostStore(ctrl)

	host.EXPECT().AutosaveOf(gomock.Any(), int64(1)).Return(int64(0), false, nil)
	host.EXPECT().SnapshotOf(gomock.Any(), int64(1)).Return(int64(0), false, nil)
	host.EXPECT().GetEntity(gomock.Any(), int64(1)).
		Return(models.Entity{ID: 1, Kind: models.KindCanonical, Type: "page", Body: "old"}, nil)
	host.EXPECT().TypeSupports(gomock.Any(), "page", testFeature).Return(true, nil)
	host.EXPECT().GetOption(gomock.Any(), int64(1), testOptionKey).Return([]byte(`"not an object"`), true, nil)

	s := NewSyncService(host, &recordingDedup{}, guard.New(), testAppConfig(), logger.Nop())

	result, err := s.Sync(context.Background(), builderEvent(1))
	require.NoError(t, err)
	assert.Equal(t, models.SkipMissingOption, result.Plan.Skip)
}
