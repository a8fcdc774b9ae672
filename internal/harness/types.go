package harness

import "github.com/roach88/purgeshift/internal/purge"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	Pass bool

	// Errors contains assertion and expectation failures.
	// Empty if Pass is true.
	Errors []string

	// Input is the stream the scenario was run on.
	Input []string

	// Shift is the pipeline result. It is nil when the mask was rejected, and
	// has a nil Rewrite when the analysis failed.
	Shift *purge.Result

	// Err is the error the pipeline returned, if any.
	Err error
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Output returns the rewritten stream, or nil if the pipeline failed.
func (r *Result) Output() []string {
	return r.Shift.Lines()
}
