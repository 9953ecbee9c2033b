package level

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. A *ParseError matches its kind with errors.Is.
var (
	ErrMalformedGrid   = errors.New("malformed grid")
	ErrMissingPlayer   = errors.New("missing player start")
	ErrDuplicatePlayer = errors.New("duplicate player start")
	ErrUnknownSymbol   = errors.New("unknown symbol")
)

// ParseError describes why a single level was rejected.
type ParseError struct {
	Level  string // level name
	Kind   error  // one of the Err* kinds above
	X, Y   int    // offending cell, -1 when the error is not tied to a cell
	Symbol rune   // offending symbol, 0 when not applicable
	Msg    string
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "level %q: %s", e.Level, e.Kind)
	if e.X >= 0 && e.Y >= 0 {
		fmt.Fprintf(&sb, " at (%d,%d)", e.X, e.Y)
	} else if e.Y >= 0 {
		fmt.Fprintf(&sb, " at row %d", e.Y)
	}
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Failure records one level rejected by a batch load.
type Failure struct {
	Index int // position in the input batch
	Name  string
	Err   error
}

// BatchError lists every level a batch load excluded from its result.
type BatchError struct {
	Failures []Failure
}

func (e *BatchError) Error() string {
	if len(e.Failures) == 1 {
		return fmt.Sprintf("1 level failed: %v", e.Failures[0].Err)
	}
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Err.Error()
	}
	return fmt.Sprintf("%d levels failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

// Unwrap exposes the individual level errors to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}
