package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TaskSpec is one node of a generated task tree. It mirrors the record
// shape the execution engine accepts: name selects the executor, parent_id
// is organizational containment, dependencies control execution order.
type TaskSpec struct {
	// Name identifies the executor to run. Required.
	Name string `json:"name"`
	// ID is the explicit task identifier. When any task in a tree carries
	// an ID, every task must (uniform identifier mode).
	ID string `json:"id,omitempty"`
	// ParentID references the effective identifier of the containing task.
	// The single task without a parent is the tree root.
	ParentID string `json:"parent_id,omitempty"`
	// Dependencies lists tasks that must complete before this one runs.
	Dependencies []Dependency `json:"dependencies,omitempty"`
	// Inputs holds executor parameters. Opaque to the generation pipeline.
	Inputs map[string]any `json:"inputs,omitempty"`
	// Priority is passed through to the execution engine (0=urgent..3=low).
	Priority *int `json:"priority,omitempty"`
	// UserID is the owner of the task, injected after validation when absent.
	UserID string `json:"user_id,omitempty"`
}

// HasID reports whether the task carries an explicit identifier.
func (t *TaskSpec) HasID() bool {
	return t.ID != ""
}

// EffectiveID returns the identifier other tasks use to reference this one:
// the explicit ID when present, the name otherwise.
func (t *TaskSpec) EffectiveID() string {
	if t.ID != "" {
		return t.ID
	}
	return t.Name
}

// DisplayName returns the best human-readable label for diagnostics.
func (t *TaskSpec) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// Dependency is a reference to another task that must complete first.
// On the wire it is either a bare identifier string or an object with
// id/name and required fields; both forms decode into this struct.
type Dependency struct {
	// ID is the effective identifier of the referenced task.
	ID string
	// Required indicates the dependency must succeed, not merely finish.
	Required bool
}

// dependencyRecord is the object form of a dependency reference.
type dependencyRecord struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Required *bool  `json:"required,omitempty"`
}

// UnmarshalJSON accepts both the bare-string and the object form.
// Required defaults to true when unspecified.
func (d *Dependency) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		d.ID = s
		d.Required = true
		return nil
	}

	var rec dependencyRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return fmt.Errorf("dependency must be a string or an object: %w", err)
	}

	d.ID = rec.ID
	if d.ID == "" {
		d.ID = rec.Name
	}
	d.Required = true
	if rec.Required != nil {
		d.Required = *rec.Required
	}
	return nil
}

// MarshalJSON always emits the object form for round-trip stability.
func (d Dependency) MarshalJSON() ([]byte, error) {
	required := d.Required
	return json.Marshal(dependencyRecord{ID: d.ID, Required: &required})
}
