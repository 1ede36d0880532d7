// Package apperr defines the error taxonomy shared by the generator, the
// composers and the I/O layer. Every kind is fatal to the current run; callers
// match them with errors.Is against the sentinel values below.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInput
	KindCapacity
	KindAssetCount
	KindComposition
	KindIO
)

var (
	// ErrInput reports non-positive or non-numeric configuration values.
	ErrInput = errors.New("invalid input")
	// ErrCapacity reports a request that no batch of distinct sets can satisfy.
	ErrCapacity = errors.New("capacity exceeded")
	// ErrAssetCountMismatch reports a catalog or template count that does not
	// match the configuration.
	ErrAssetCountMismatch = errors.New("asset count mismatch")
	// ErrComposition reports source images that cannot be tiled together.
	ErrComposition = errors.New("composition failed")
	// ErrIO reports filesystem failures, including a non-empty output directory.
	ErrIO = errors.New("i/o failure")
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "InputError"
	case KindCapacity:
		return "CapacityError"
	case KindAssetCount:
		return "AssetCountMismatch"
	case KindComposition:
		return "CompositionError"
	case KindIO:
		return "IOError"
	default:
		return "UnknownError"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInput:
		return ErrInput
	case KindCapacity:
		return ErrCapacity
	case KindAssetCount:
		return ErrAssetCountMismatch
	case KindComposition:
		return ErrComposition
	case KindIO:
		return ErrIO
	default:
		return nil
	}
}

// Error is a classified failure. Expected and Actual are set when the failure
// is a count comparison, so the caller can correct its input.
type Error struct {
	Kind     Kind
	Op       string
	Msg      string
	Expected int
	Actual   int
	Counted  bool
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Counted {
		fmt.Fprintf(&b, " (expected %d, got %d)", e.Expected, e.Actual)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Input builds an InputError.
func Input(op, format string, args ...any) error {
	return &Error{Kind: KindInput, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Capacity builds a CapacityError comparing the available capacity with the
// requested amount.
func Capacity(op, msg string, available, requested int) error {
	return &Error{Kind: KindCapacity, Op: op, Msg: msg, Expected: available, Actual: requested, Counted: true}
}

// AssetCount builds an AssetCountMismatch.
func AssetCount(op, msg string, expected, actual int) error {
	return &Error{Kind: KindAssetCount, Op: op, Msg: msg, Expected: expected, Actual: actual, Counted: true}
}

// Composition builds a CompositionError.
func Composition(op, format string, args ...any) error {
	return &Error{Kind: KindComposition, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// IO wraps a filesystem failure.
func IO(op string, err error) error {
	return &Error{Kind: KindIO, Op: op, Err: err}
}

// IOf builds an IOError without an underlying cause.
func IOf(op, format string, args ...any) error {
	return &Error{Kind: KindIO, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
