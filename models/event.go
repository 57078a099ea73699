package models

import "encoding/json"

// OptionUpdatedEvent is emitted by the host whenever options of an entity change.
//
// An empty OptionKey means every option of the entity was updated. The event
// may be emitted synchronously from inside a body update.
type OptionUpdatedEvent struct {
	EntityID       int64    `json:"entity_id"`
	OptionKey      string   `json:"option_key"`
	ChangedSubkeys []string `json:"changed_subkeys,omitempty"`
}

// OptionUpdatedRequest is the body of the raw host event endpoint.
type OptionUpdatedRequest struct {
	OptionKey      string   `json:"option_key"`
	ChangedSubkeys []string `json:"changed_subkeys,omitempty"`
}

// BodyUpdateRequest is a host-side body save.
type BodyUpdateRequest struct {
	Body string `json:"body"`
}

// BuilderStatusResponse answers whether an entity is governed by the builder.
type BuilderStatusResponse struct {
	EntityID int64 `json:"entity_id"`
	Builder  bool  `json:"builder"`
}

// ResyncResponse reports the outcome of a bulk resynchronization.
type ResyncResponse struct {
	Processed int     `json:"processed"`
	Written   int     `json:"written"`
	Failed    []int64 `json:"failed,omitempty"`
}

// VersionResponse carries the running application version.
type VersionResponse struct {
	Version     string `json:"version"`
	BuildDate   string `json:"build_date,omitempty"`
	BuildCommit string `json:"build_commit,omitempty"`
}

// ImportRequest is an option bundle written by an importer for one entity.
type ImportRequest struct {
	EntityID int64                      `json:"-"`
	Key      string                     `json:"key"`
	Values   map[string]json.RawMessage `json:"values"`
}

// ImportResponse tells whether the bundle carried builder state that was re-applied.
type ImportResponse struct {
	Applied bool `json:"applied"`
}

// SyncResponse is the outcome of a raw option-updated event.
type SyncResponse struct {
	EntityID int64      `json:"entity_id"`
	Skip     SkipReason `json:"skip,omitempty"`
	Written  bool       `json:"written"`
	Deleted  []int64    `json:"deleted_snapshots,omitempty"`
}

// NewSyncResponse flattens a [SyncResult] for the wire.
func NewSyncResponse(entityID int64, result SyncResult) SyncResponse {
	return SyncResponse{
		EntityID: entityID,
		Skip:     result.Plan.Skip,
		Written:  result.Written,
		Deleted:  result.Deleted,
	}
}

// RenderRequest carries content to be displayed for an entity.
type RenderRequest struct {
	Content string `json:"content"`
}

// RenderResponse is content ready for display.
type RenderResponse struct {
	EntityID int64  `json:"entity_id"`
	HTML     string `json:"html"`
}

// CreateEntityRequest creates a canonical entity, or an autosave when ParentID is set.
type CreateEntityRequest struct {
	Type     string `json:"type"`
	Body     string `json:"body"`
	ParentID int64  `json:"parent_id,omitempty"`
}
