package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-page-builder/internal/capability"
	"github.com/MKhiriev/go-page-builder/internal/codec"
	"github.com/MKhiriev/go-page-builder/internal/config"
	"github.com/MKhiriev/go-page-builder/internal/guard"
	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/internal/resolver"
	"github.com/MKhiriev/go-page-builder/internal/store"
	"github.com/MKhiriev/go-page-builder/models"
)

// SyncPlanner turns an option-updated event and the host state it depends on
// into a [models.SyncPlan]. It performs no I/O.
type SyncPlanner struct {
	// OptionKey is the builder option key; events for other keys are ignored.
	OptionKey string

	// EscapeFactor is passed to [codec.Escape] when materializing a notation.
	EscapeFactor int
}

// Relevant reports whether event may concern the builder option: either
// every option of the entity changed (empty key) or the builder option did.
func (p SyncPlanner) Relevant(event models.OptionUpdatedEvent) bool {
	return event.OptionKey == "" || event.OptionKey == p.OptionKey
}

// PlanSync applies the decision steps in order and stops at the first one
// that rules a write out. The reentrancy check is left to the executor.
//
// A plan for a snapshot ref has no skip reason but does not write; see
// [models.SyncPlan.Writes].
func (p SyncPlanner) PlanSync(event models.OptionUpdatedEvent, view models.HostView) models.SyncPlan {
	plan := models.SyncPlan{Ref: view.Ref, TargetID: view.Ref.CanonicalID}

	switch {
	case !p.Relevant(event):
		plan.Skip = models.SkipIrrelevantOption
	case !view.Found:
		plan.Skip = models.SkipEntityUnavailable
	case !view.Supported:
		plan.Skip = models.SkipUnsupportedType
	case view.Option == nil:
		plan.Skip = models.SkipMissingOption
	case !view.Option.Active:
		plan.Skip = models.SkipInactive
	case p.InSync(view.Body, view.Option.Notation):
		plan.Skip = models.SkipAlreadySynced
	default:
		plan.Body = codec.Escape(view.Option.Notation, p.EscapeFactor)
	}

	return plan
}

// InSync reports whether body already holds notation, either verbatim (the
// host normalized the escaped text back) or still escaped (it did not).
func (p SyncPlanner) InSync(body, notation string) bool {
	return body == notation || body == codec.Escape(notation, p.EscapeFactor)
}

// synchronizer is the executor behind [SyncService]. It loads a
// [models.HostView], asks the planner, and applies the plan under the guard.
type synchronizer struct {
	host     store.HostStore
	resolver *resolver.Resolver
	gate     *capability.Gate
	guard    *guard.Guard
	dedup    DedupService
	planner  SyncPlanner

	logger *logger.Logger
}

// NewSyncService builds the synchronizer. g is shared by every sync run of the
// process; it must not be shared between hosts.
func NewSyncService(host store.HostStore, dedup DedupService, g *guard.Guard, cfg config.App, logger *logger.Logger) SyncService {
	return &synchronizer{
		host:     host,
		resolver: resolver.New(host),
		gate:     capability.NewGate(host, cfg.FeatureName),
		guard:    g,
		dedup:    dedup,
		planner: SyncPlanner{
			OptionKey:    cfg.BuilderOptionKey,
			EscapeFactor: cfg.EscapeFactor,
		},
		logger: logger,
	}
}

// OnOptionUpdated implements [SyncService].
func (s *synchronizer) OnOptionUpdated(ctx context.Context, event models.OptionUpdatedEvent) error {
	_, err := s.Sync(ctx, event)
	return err
}

// Sync implements [SyncService].
func (s *synchronizer) Sync(ctx context.Context, event models.OptionUpdatedEvent) (models.SyncResult, error) {
	log := logger.FromContext(ctx)

	if !s.planner.Relevant(event) {
		return s.skipped(ctx, event, models.SyncPlan{Skip: models.SkipIrrelevantOption}), nil
	}

	view, err := s.loadView(ctx, event)
	if err != nil {
		log.Err(err).
			Str("func", "synchronizer.Sync").
			Int64("entity_id", event.EntityID).
			Msg("failed to load host state")
		return models.SyncResult{}, err
	}

	plan := s.planner.PlanSync(event, view)
	if plan.Skip != models.SkipNone {
		return s.skipped(ctx, event, plan), nil
	}

	release, ok := s.guard.Acquire(plan.Ref.CanonicalID)
	if !ok {
		plan.Skip = models.SkipReentrant
		return s.skipped(ctx, event, plan), nil
	}
	defer release()

	if !plan.Writes() {
		plan.Skip = models.SkipSnapshotTarget
		return s.skipped(ctx, event, plan), nil
	}

	result := models.SyncResult{Plan: plan}

	// a listener error arrives after the body was committed
	var listenerErr error
	if err = s.host.UpdateEntityBody(ctx, plan.TargetID, plan.Body); err != nil {
		if !errors.Is(err, store.ErrOptionListener) {
			log.Err(err).
				Str("func", "synchronizer.Sync").
				Int64("entity_id", event.EntityID).
				Int64("canonical_id", plan.TargetID).
				Msg("failed to write builder notation")
			return result, fmt.Errorf("%w: entity %d: %w", ErrMaterializing, plan.TargetID, err)
		}

		log.Warn().Err(err).
			Str("func", "synchronizer.Sync").
			Int64("canonical_id", plan.TargetID).
			Msg("option listener failed after materialization")
		listenerErr = err
	}
	result.Written = true

	log.Info().
		Str("func", "synchronizer.Sync").
		Int64("entity_id", event.EntityID).
		Int64("canonical_id", plan.TargetID).
		Str("ref_kind", string(plan.Ref.Kind)).
		Msg("builder notation materialized")

	result.Deleted, err = s.dedup.Dedupe(ctx, plan.TargetID)

	return result, errors.Join(listenerErr, err)
}

// loadView reads the host state in decision order and stops early once a
// later field can no longer matter.
func (s *synchronizer) loadView(ctx context.Context, event models.OptionUpdatedEvent) (models.HostView, error) {
	ref, err := s.resolver.Resolve(ctx, event.EntityID)
	if err != nil {
		return models.HostView{}, fmt.Errorf("%w: %w", ErrLoadingHostState, err)
	}
	view := models.HostView{Ref: ref}

	canonical, err := s.host.GetEntity(ctx, ref.CanonicalID)
	if errors.Is(err, store.ErrEntityNotFound) {
		return view, nil
	}
	if err != nil {
		return view, fmt.Errorf("%w: %w", ErrLoadingHostState, err)
	}
	view.Found = true
	view.Body = canonical.Body

	view.Supported, err = s.gate.Supports(ctx, canonical.Type)
	if err != nil {
		return view, fmt.Errorf("%w: %w", ErrLoadingHostState, err)
	}
	if !view.Supported {
		return view, nil
	}

	// the option belongs to the id the event named, not to the canonical entity
	view.Option, err = readBuilderOption(ctx, s.host, event.EntityID, s.planner.OptionKey)
	if err != nil {
		return view, err
	}

	return view, nil
}

func (s *synchronizer) skipped(ctx context.Context, event models.OptionUpdatedEvent, plan models.SyncPlan) models.SyncResult {
	logger.FromContext(ctx).Debug().
		Str("func", "synchronizer.Sync").
		Int64("entity_id", event.EntityID).
		Str("option_key", event.OptionKey).
		Str("skip", string(plan.Skip)).
		Msg("synchronization skipped")

	return models.SyncResult{Plan: plan}
}
