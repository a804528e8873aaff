// Package errors defines the failure taxonomy of the documentation pipeline.
// Every stage reports failures as *Error values tagged with a Kind so callers
// can branch on the category while keeping the original cause attached.
package errors

import (
	"errors"
	"fmt"
)

// Kind defines the category of a pipeline failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindMissingInput reports an absent metadata file when the run is
	// configured to fail on missing input.
	KindMissingInput
	// KindInputRead reports an existing metadata file that could not be read.
	KindInputRead
	// KindMetadataParse reports malformed or incomplete metadata.
	KindMetadataParse
	// KindTemplate reports template resolution, compilation or execution
	// failures.
	KindTemplate
	// KindOutputWrite reports a failure persisting the rendered document.
	KindOutputWrite
	// KindOutputStale reports that the document on disk differs from the
	// freshly rendered one (check mode only).
	KindOutputStale
)

func (k Kind) String() string {
	switch k {
	case KindMissingInput:
		return "missing_input"
	case KindInputRead:
		return "input_read"
	case KindMetadataParse:
		return "metadata_parse"
	case KindTemplate:
		return "template"
	case KindOutputWrite:
		return "output_write"
	case KindOutputStale:
		return "output_stale"
	default:
		return "unknown"
	}
}

// Sentinels usable with errors.Is; matching is by Kind only.
var (
	ErrMissingInput  = &Error{Kind: KindMissingInput, Message: "metadata file not found"}
	ErrInputRead     = &Error{Kind: KindInputRead, Message: "metadata file could not be read"}
	ErrMetadataParse = &Error{Kind: KindMetadataParse, Message: "metadata could not be parsed"}
	ErrTemplate      = &Error{Kind: KindTemplate, Message: "template failed"}
	ErrOutputWrite   = &Error{Kind: KindOutputWrite, Message: "output could not be written"}
	ErrOutputStale   = &Error{Kind: KindOutputStale, Message: "output is out of date"}
)

// Error is a categorised pipeline failure.
type Error struct {
	Kind    Kind
	Message string
	// Path names the file or field the failure relates to, when known.
	Path string
	// Detail carries supplementary text such as a unified diff.
	Detail     string
	Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", msg, e.Underlying)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an Error of the given kind.
func New(kind Kind, path, msg string) error {
	return &Error{Kind: kind, Path: path, Message: msg}
}

// Wrap wraps err as an Error of the given kind. A nil err yields nil.
func Wrap(err error, kind Kind, path, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Path: path, Message: msg, Underlying: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, kind Kind, path, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...), Underlying: err}
}

// KindOf returns the Kind of the first *Error in the chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// DetailOf returns the Detail of the first *Error in the chain.
func DetailOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return ""
}
