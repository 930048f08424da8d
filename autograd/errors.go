package autograd

import (
	"errors"
	"fmt"
)

// Graph construction errors. Operations panic with a *ConstructionError
// wrapping one of these.
var (
	ErrInvalidValue = errors.New("zero Value used as operand")
	ErrForeignGraph = errors.New("operands belong to different graphs")
	ErrStaleValue   = errors.New("value was released by Graph.Rewind")
	ErrNotLeaf      = errors.New("data of a derived value is immutable")
	ErrNoOperands   = errors.New("no operands")
	ErrLength       = errors.New("operand lengths differ")
)

// ConstructionError reports a violated graph invariant.
type ConstructionError struct {
	Op  string
	Err error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("autograd: %s: %v", e.Op, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}
