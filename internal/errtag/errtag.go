// Package errtag defines the core's flat error taxonomy and the
// breadcrumb propagation policy of spec §7.
package errtag

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind is one of the flat error kinds the core raises. It never grows a
// hierarchy of its own: the breadcrumb list carries the context instead.
type Kind string

const (
	// Array engine (§4.1)
	KindIndexOutOfRange      Kind = "IndexOutOfRange"
	KindInvalidIndex         Kind = "InvalidIndex"
	KindShapeMismatch        Kind = "ShapeMismatch"
	KindSingularMatrix       Kind = "SingularMatrix"
	KindKindConversionRefused Kind = "KindConversionRefused"

	// Evaluator (§4.2)
	KindUnknownSymbol       Kind = "UnknownSymbol"
	KindUnassignedReturn    Kind = "UnassignedReturn"
	KindInsufficientReturns Kind = "InsufficientReturns"
	KindTooManyInputs       Kind = "TooManyInputs"
	KindTooManyOutputs      Kind = "TooManyOutputs"
	KindNotCallable         Kind = "NotCallable"
	KindNotIndexable        Kind = "NotIndexable"

	KindUnboundEnd          Kind = "UnboundEnd"
	KindParseError          Kind = "ParseError"
	KindTypeValidationFailed Kind = "TypeValidationFailed"

	// External surface (§6)
	KindIoError   Kind = "IoError"
	KindHostError Kind = "HostError"
)

// Breadcrumb is one link in the propagation trail: a human-readable note
// plus the (optional) IR node whose reconstructed source is appended
// when printed, per §7.
type Breadcrumb struct {
	Text string
	Node fmt.Stringer // nil when no IR node is associated
}

// RuntimeError is the core's error type. It wraps an underlying cause
// (via github.com/pkg/errors, which supplies Cause()/Unwrap()) and
// accumulates breadcrumbs from innermost to outermost as it bubbles up
// the call stack.
type RuntimeError struct {
	kind        Kind
	cause       error
	breadcrumbs []Breadcrumb
}

// New creates a fresh RuntimeError of the given kind with a message.
func New(kind Kind, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		kind:  kind,
		cause: errors.Errorf(format, args...),
	}
}

// Wrap attaches kind to an existing error, preserving it as the cause so
// errors.Cause / errors.As still reach the original failure. An err that
// is already a *RuntimeError is returned as is, keeping its own kind.
func Wrap(kind Kind, err error) *RuntimeError {
	if re, ok := err.(*RuntimeError); ok {
		return re
	}
	return &RuntimeError{kind: kind, cause: errors.WithStack(err)}
}

// Kind reports the error's flat kind tag.
func (e *RuntimeError) Kind() Kind { return e.kind }

// Cause exposes the wrapped error for errors.Cause callers.
func (e *RuntimeError) Cause() error { return e.cause }

func (e *RuntimeError) Unwrap() error { return e.cause }

// Note appends a breadcrumb. Call-boundary wrapping (§7: "at each
// function-call boundary the core appends 'error during call to
// <name>'") uses this to build the trail without losing the original
// cause.
func (e *RuntimeError) Note(text string, node fmt.Stringer) *RuntimeError {
	e.breadcrumbs = append(e.breadcrumbs, Breadcrumb{Text: text, Node: node})
	return e
}

// DuringCall records the standard call-boundary breadcrumb.
func (e *RuntimeError) DuringCall(name string) *RuntimeError {
	return e.Note(fmt.Sprintf("error during call to %s", name), nil)
}

// Error renders breadcrumbs outermost to innermost (the reverse of the
// order they were appended, since each wrapping happens further out the
// stack), one per
// line, with the node's reconstructed source appended when present.
func (e *RuntimeError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %v", e.kind, e.cause))
	for i := len(e.breadcrumbs) - 1; i >= 0; i-- {
		b := e.breadcrumbs[i]
		sb.WriteString("\n  ")
		sb.WriteString(b.Text)
		if b.Node != nil {
			sb.WriteString(": ")
			sb.WriteString(b.Node.String())
		}
	}
	return sb.String()
}

// Is supports errors.Is comparison by kind for sentinel-style checks,
// e.g. errtag.Is(err, errtag.KindIndexOutOfRange).
func Is(err error, kind Kind) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.kind == kind
	}
	return false
}
