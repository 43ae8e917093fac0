// Package tasktree validates candidate task trees before they reach the
// execution engine. A candidate is the parsed-but-untrusted output of one
// generation call; nothing here mutates it except the single permitted
// user_id injection after validation succeeds.
package tasktree

import (
	"fmt"
	"strings"

	"github.com/flowgenhq/flowgen/pkg/models"
)

// ValidationError describes the first structural violation found in a
// candidate. Task names the offending record where one can be identified.
type ValidationError struct {
	Task   string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Task != "" {
		return fmt.Sprintf("task %q: %s", e.Task, e.Reason)
	}
	return e.Reason
}

// Validate enforces the structural invariants of a task tree candidate.
// Checks run in a fixed order and the first failure wins:
//  1. non-empty sequence
//  2. every task has a non-empty name
//  3. uniform identifier mode (all tasks have an id, or none do)
//  4. no duplicate effective identifiers
//  5. every parent_id resolves within the candidate
//  6. every dependency resolves within the candidate
//  7. exactly one root (task without parent_id)
//  8. id mode only: every task reachable from the root via parent_id
//
// Returns nil when the candidate is valid, otherwise a *ValidationError.
func Validate(tasks []models.TaskSpec) error {
	if len(tasks) == 0 {
		return &ValidationError{Reason: "tasks array is empty"}
	}

	for i := range tasks {
		if tasks[i].Name == "" {
			return &ValidationError{
				Reason: fmt.Sprintf("task at index %d is missing a non-empty 'name' field", i),
			}
		}
	}

	withID := 0
	for i := range tasks {
		if tasks[i].HasID() {
			withID++
		}
	}
	idMode := withID > 0
	if idMode && withID < len(tasks) {
		return &ValidationError{
			Reason: "mixed identifier mode: either all tasks must have 'id', or none may",
		}
	}

	identifiers := make(map[string]*models.TaskSpec, len(tasks))
	for i := range tasks {
		id := tasks[i].EffectiveID()
		if _, dup := identifiers[id]; dup {
			return &ValidationError{
				Task:   tasks[i].DisplayName(),
				Reason: fmt.Sprintf("duplicate task identifier %q", id),
			}
		}
		identifiers[id] = &tasks[i]
	}

	for i := range tasks {
		parent := tasks[i].ParentID
		if parent == "" {
			continue
		}
		if _, ok := identifiers[parent]; !ok {
			return &ValidationError{
				Task:   tasks[i].DisplayName(),
				Reason: fmt.Sprintf("parent_id %q does not reference a task in the array", parent),
			}
		}
	}

	for i := range tasks {
		for _, dep := range tasks[i].Dependencies {
			if dep.ID == "" {
				continue
			}
			if _, ok := identifiers[dep.ID]; !ok {
				return &ValidationError{
					Task:   tasks[i].DisplayName(),
					Reason: fmt.Sprintf("dependency %q does not reference a task in the array", dep.ID),
				}
			}
		}
	}

	var roots []*models.TaskSpec
	for i := range tasks {
		if tasks[i].ParentID == "" {
			roots = append(roots, &tasks[i])
		}
	}
	if len(roots) == 0 {
		return &ValidationError{Reason: "no root task found (every task has a parent_id)"}
	}
	if len(roots) > 1 {
		names := make([]string, len(roots))
		for i, r := range roots {
			names[i] = r.DisplayName()
		}
		return &ValidationError{
			Reason: fmt.Sprintf("multiple root tasks found: %s; exactly one task may omit parent_id",
				strings.Join(names, ", ")),
		}
	}

	// Reachability is only checked in id mode. In name mode the parent
	// relation is keyed by names that already passed uniqueness, and the
	// original pipeline never walked it; see the documented asymmetry.
	if idMode {
		if err := checkReachability(tasks, roots[0].ID, identifiers); err != nil {
			return err
		}
	}

	return nil
}

// checkReachability walks the parent_id-as-child relation depth-first from
// the root and reports any task the walk never visits.
func checkReachability(tasks []models.TaskSpec, rootID string, identifiers map[string]*models.TaskSpec) error {
	children := make(map[string][]string, len(tasks))
	for i := range tasks {
		if tasks[i].ParentID != "" {
			children[tasks[i].ParentID] = append(children[tasks[i].ParentID], tasks[i].ID)
		}
	}

	visited := make(map[string]bool, len(tasks))
	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, child := range children[id] {
			visit(child)
		}
	}
	visit(rootID)

	var unreachable []string
	for i := range tasks {
		if !visited[tasks[i].ID] {
			unreachable = append(unreachable, tasks[i].DisplayName())
		}
	}
	if len(unreachable) > 0 {
		return &ValidationError{
			Reason: fmt.Sprintf("tasks not reachable from root: %s", strings.Join(unreachable, ", ")),
		}
	}
	return nil
}

// InjectUserID sets userID on every task that does not already carry one.
// This is the single permitted post-validation mutation and must only be
// called on a candidate that passed Validate.
func InjectUserID(tasks []models.TaskSpec, userID string) {
	if userID == "" {
		return
	}
	for i := range tasks {
		if tasks[i].UserID == "" {
			tasks[i].UserID = userID
		}
	}
}
