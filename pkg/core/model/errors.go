package model

import "fmt"

// CalculationError wraps an unexpected failure inside the build pipeline so
// callers see one error kind carrying the original cause.
type CalculationError struct {
	Stage string
	Err   error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("calculation failed during %s: %v", e.Stage, e.Err)
}

func (e *CalculationError) Unwrap() error { return e.Err }
