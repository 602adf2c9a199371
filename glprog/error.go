package glprog

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by Compile and Link.
var (
	ErrAllocation    = errors.New("gl object allocation failed")
	ErrCompile       = errors.New("shader compilation failed")
	ErrLink          = errors.New("program link failed")
	ErrInvalidStage  = errors.New("invalid shader stage")
	ErrEmptySource   = errors.New("empty shader source")
	ErrInvalidShader = errors.New("invalid shader handle")
)

// Error carries the driver diagnostic for a failed compile or link.  Kind is
// ErrCompile or ErrLink.
type Error struct {
	Kind  error
	Stage Stage // zero for link failures
	Log   string
}

func (e *Error) Error() string {
	if e.Stage.Valid() {
		return fmt.Sprintf("%s shader: %v: %s", e.Stage, e.Kind, e.Log)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Log)
}

func (e *Error) Unwrap() error {
	return e.Kind
}
