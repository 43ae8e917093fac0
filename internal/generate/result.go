package generate

import "github.com/flowgenhq/flowgen/pkg/models"

// Status is the terminal state of one generation run.
type Status string

const (
	// StatusCompleted indicates the candidate passed validation.
	StatusCompleted Status = "completed"
	// StatusFailed indicates the run failed at some stage.
	StatusFailed Status = "failed"
)

// Stage names the pipeline step where a failure occurred.
type Stage string

const (
	// StageInput covers request parsing and validation.
	StageInput Stage = "input"
	// StageClient covers generation client creation.
	StageClient Stage = "client"
	// StageGeneration covers the provider call.
	StageGeneration Stage = "generation"
	// StageParse covers JSON extraction from the response.
	StageParse Stage = "parse"
	// StageValidation covers task tree structural validation.
	StageValidation Stage = "validation"
	// StageInternal covers unexpected failures the boundary recovered from.
	StageInternal Stage = "internal"
)

// Result is the outcome of one generation run. On failure, Tasks may hold
// the best-effort partially-parsed candidate for diagnostics; such tasks
// did NOT pass validation and must never be executed.
type Result struct {
	// ID uniquely identifies the generation run, for log correlation.
	ID string
	// Status is completed or failed.
	Status Status
	// Stage is set on failure to the step that failed.
	Stage Stage
	// Tasks holds validated tasks on success, diagnostics on failure.
	Tasks []models.TaskSpec
	// Count is the number of validated tasks (0 on failure).
	Count int
	// Err describes the failure. Nil on success.
	Err error
}

// failure builds a failed Result, optionally carrying a partial candidate.
func failure(id string, stage Stage, err error, partial []models.TaskSpec) *Result {
	return &Result{
		ID:     id,
		Status: StatusFailed,
		Stage:  stage,
		Tasks:  partial,
		Err:    err,
	}
}

// ErrorMessage returns the failure description, or "" on success.
func (r *Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
