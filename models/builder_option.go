package models

import "encoding/json"

// BuilderOption is the per-entity state persisted by the page builder editor.
//
// Only Active and Notation are interpreted by the synchronization core. Every
// other field the editor stores is kept verbatim in Extra so that a decode and
// re-encode never loses builder-internal data.
type BuilderOption struct {
	// Active reports whether the builder currently governs the entity body.
	Active bool `json:"builder_active"`

	// Notation is the fully rendered document body the builder wants the
	// entity to have: markup tags with encoded structured attributes.
	Notation string `json:"shortcode_notation"`

	// Extra holds the builder-internal fields (panels, widgets, ...).
	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler, collecting unknown fields into Extra.
func (o *BuilderOption) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*o = BuilderOption{}
	if v, ok := raw["builder_active"]; ok {
		if err := json.Unmarshal(v, &o.Active); err != nil {
			return err
		}
		delete(raw, "builder_active")
	}
	if v, ok := raw["shortcode_notation"]; ok {
		if err := json.Unmarshal(v, &o.Notation); err != nil {
			return err
		}
		delete(raw, "shortcode_notation")
	}
	if len(raw) > 0 {
		o.Extra = raw
	}

	return nil
}

// MarshalJSON implements json.Marshaler, merging Extra back into the object.
func (o BuilderOption) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(o.Extra)+2)
	for k, v := range o.Extra {
		out[k] = v
	}
	out["builder_active"] = o.Active
	out["shortcode_notation"] = o.Notation

	return json.Marshal(out)
}

// OptionsDescriptor describes the editor box the host renders for a builder-enabled entity type.
type OptionsDescriptor struct {
	Key               string `json:"key"`
	Type              string `json:"type"`
	Priority          string `json:"priority"`
	EditorIntegration bool   `json:"editor_integration"`
	Fullscreen        bool   `json:"fullscreen"`
	TemplateSaving    bool   `json:"template_saving"`
	History           bool   `json:"history"`
}
