package answer

import "fmt"

// NormalizationError is returned when raw learner input cannot be turned
// into an expression.
type NormalizationError struct {
	Input  string
	Reason string
	Pos    int
	Err    error
}

func (e *NormalizationError) Error() string {
	if e.Pos >= 0 && e.Err != nil {
		return fmt.Sprintf("cannot read %q: %s (position %d)", e.Input, e.Reason, e.Pos)
	}
	return fmt.Sprintf("cannot read %q: %s", e.Input, e.Reason)
}

func (e *NormalizationError) Unwrap() error { return e.Err }

// EquivalenceEvaluationError wraps a failure inside the simplifier. The
// checker treats it as "not equivalent".
type EquivalenceEvaluationError struct {
	Mode string
	Err  error
}

func (e *EquivalenceEvaluationError) Error() string {
	if e.Mode == "" {
		return fmt.Sprintf("equivalence check failed: %v", e.Err)
	}
	return fmt.Sprintf("equivalence check failed (%s): %v", e.Mode, e.Err)
}

func (e *EquivalenceEvaluationError) Unwrap() error { return e.Err }
