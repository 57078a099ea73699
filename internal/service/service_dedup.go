package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-page-builder/internal/config"
	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/internal/store"
	"github.com/MKhiriev/go-page-builder/models"
)

// PlanDedup returns the snapshots to delete, given the most recent snapshots
// of one entity newest first.
//
// Older snapshots whose builder notation equals the newest one's are
// selected while they stay contiguous with it; the walk stops at the first
// one that differs. The newest snapshot is never selected. A snapshot
// without a stored notation never equals anything.
func PlanDedup(snapshots []models.SnapshotView) []int64 {
	if len(snapshots) < 2 {
		return nil
	}

	latest := snapshots[0]
	if !latest.HasNotation {
		return nil
	}

	var doomed []int64
	for _, candidate := range snapshots[1:] {
		if !candidate.HasNotation || candidate.Notation != latest.Notation {
			break
		}
		doomed = append(doomed, candidate.ID)
	}

	return doomed
}

type deduplicator struct {
	host      store.HostStore
	optionKey string
	window    int

	logger *logger.Logger
}

// NewDedupService returns a [DedupService] inspecting cfg.DedupWindow snapshots.
func NewDedupService(host store.HostStore, cfg config.App, logger *logger.Logger) DedupService {
	return &deduplicator{
		host:      host,
		optionKey: cfg.BuilderOptionKey,
		window:    cfg.DedupWindow,
		logger:    logger,
	}
}

// Dedupe implements [DedupService]. Deletions run one by one; the first
// failed deletion stops the walk and is returned together with the ids
// deleted before it.
func (d *deduplicator) Dedupe(ctx context.Context, canonicalID int64) ([]int64, error) {
	log := logger.FromContext(ctx)

	refs, err := d.host.RecentSnapshots(ctx, canonicalID, d.window)
	if err != nil {
		log.Err(err).
			Str("func", "deduplicator.Dedupe").
			Int64("canonical_id", canonicalID).
			Msg("failed to list recent snapshots")
		return nil, fmt.Errorf("%w: %w", ErrLoadingHostState, err)
	}
	if len(refs) < 2 {
		return nil, nil
	}

	views := make([]models.SnapshotView, 0, len(refs))
	for _, ref := range refs {
		option, err := readBuilderOption(ctx, d.host, ref.ID, d.optionKey)
		if err != nil {
			return nil, err
		}

		view := models.SnapshotView{ID: ref.ID}
		if option != nil {
			view.Notation = option.Notation
			view.HasNotation = true
		}
		views = append(views, view)
	}

	var deleted []int64
	for _, id := range PlanDedup(views) {
		if err = d.host.DeleteSnapshot(ctx, id); err != nil {
			log.Err(err).
				Str("func", "deduplicator.Dedupe").
				Int64("canonical_id", canonicalID).
				Int64("snapshot_id", id).
				Msg("failed to delete duplicate snapshot, stopping")
			return deleted, fmt.Errorf("%w: snapshot %d: %w", ErrDeletingSnapshot, id, err)
		}
		deleted = append(deleted, id)
	}

	if len(deleted) > 0 {
		log.Debug().
			Str("func", "deduplicator.Dedupe").
			Int64("canonical_id", canonicalID).
			Ints64("deleted", deleted).
			Msg("removed duplicate snapshots")
	}

	return deleted, nil
}
