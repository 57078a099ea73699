package models

// SkipReason explains why a synchronization did not write the entity body.
type SkipReason string

const (
	SkipNone              SkipReason = ""
	SkipIrrelevantOption  SkipReason = "irrelevant_option"
	SkipUnsupportedType   SkipReason = "unsupported_type"
	SkipMissingOption     SkipReason = "missing_option"
	SkipInactive          SkipReason = "inactive"
	SkipAlreadySynced     SkipReason = "already_synced"
	SkipReentrant         SkipReason = "reentrant"
	SkipSnapshotTarget    SkipReason = "snapshot_target"
	SkipEntityUnavailable SkipReason = "entity_unavailable"
)

// HostView is the slice of host state a synchronization decision depends on.
//
// Fields are loaded in decision order; a field is only meaningful when every
// check before it passed, so loaders may leave later fields zero. Found is
// false when the canonical entity does not exist.
type HostView struct {
	Ref       EntityRef
	Found     bool
	Supported bool
	Option    *BuilderOption
	Body      string
}

// SyncPlan is the outcome of planning one option-updated event.
//
// When Skip is empty the plan asks for Body to be written to TargetID, unless
// Ref is a snapshot: snapshots are immutable, so only the guard is taken.
type SyncPlan struct {
	Skip     SkipReason
	Ref      EntityRef
	TargetID int64
	Body     string
}

// Writes reports whether executing the plan mutates an entity body.
func (p SyncPlan) Writes() bool {
	return p.Skip == SkipNone && !p.Ref.IsSnapshot()
}

// SnapshotView is a backup snapshot together with its stored builder notation.
// HasNotation is false when the snapshot carries no builder option at all.
type SnapshotView struct {
	ID          int64
	Notation    string
	HasNotation bool
}

// SyncResult reports what a synchronization did.
type SyncResult struct {
	Plan    SyncPlan
	Written bool
	Deleted []int64
}
