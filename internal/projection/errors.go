package projection

import (
	"fmt"
	"strings"
)

// ValidationError reports an assumption or line item outside its range.
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// ValidationErrors collects every ValidationError found in one input.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, err := range v {
		errs[i] = err
	}
	return errs
}

// ComputationError reports an arithmetic edge case the engine could not
// normalize. The guarded divisions (useful life, loan term, social charges
// divisor) normalize instead, so Compute does not return it today.
type ComputationError struct {
	Op     string
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
