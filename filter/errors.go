package filter

import (
	"errors"
	"fmt"
)

// ErrNotCollection is returned when entries are selected from a scalar
var ErrNotCollection = errors.New("data is neither a list nor an object")

type (
	// CompilationError indicates an expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Err        error
	}

	// EvaluationError indicates an expression failed at runtime
	EvaluationError struct {
		Expression string
		Key        string // entry key or index, empty for whole-response expressions
		Reason     string
		Err        error
	}
)

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("evaluation error for '%s' on entry %s: %s", e.Expression, e.Key, e.Reason)
	}
	return fmt.Sprintf("evaluation error for '%s': %s", e.Expression, e.Reason)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
