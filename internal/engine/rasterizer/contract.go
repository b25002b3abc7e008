package rasterizer

import (
	"fmt"

	"github.com/pkg/errors"
)

// ContractError reports a caller contract violation, such as adding a
// polygon for a bucket that was never added as a material or indexing past
// the end of a polygon list. Violations panic with a *ContractError wrapped
// in a stack trace.
type ContractError struct {
	Op  string
	Msg string
}

func (e *ContractError) Error() string {
	return "rasterizer: " + e.Op + ": " + e.Msg
}

// contractf panics with a stack-annotated *ContractError.
func contractf(op, format string, args ...any) {
	panic(errors.WithStack(&ContractError{Op: op, Msg: fmt.Sprintf(format, args...)}))
}

// checkIndex panics unless 0 <= i < n.
func checkIndex(op string, i, n int) {
	if i < 0 || i >= n {
		contractf(op, "index %d out of range [0,%d)", i, n)
	}
}
