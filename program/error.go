package program

import (
	"errors"
	"fmt"
)

// Compilation errors. All errors are reported eagerly at compile time;
// matching a successfully compiled program never fails.
var (
	// ErrSizeLimit indicates the compiled program would exceed the
	// configured instruction limit. Nothing partial is returned.
	ErrSizeLimit = errors.New("compiled program exceeds size limit")

	// ErrInvalidCapture indicates the syntax tree references a capture
	// group with an invalid index.
	ErrInvalidCapture = errors.New("invalid capture group reference")

	// ErrUnsupported indicates a syntax tree node the compiler cannot
	// lower.
	ErrUnsupported = errors.New("unsupported syntax construct")
)

// CompileError wraps a compilation failure with the offending pattern,
// when known.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("program compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("program compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
