package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks. The typed errors below carry details
// and match their sentinel.
var (
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrUnsupportedRootShape = errors.New("unsupported root shape")
	ErrShapeMismatch        = errors.New("shape mismatch")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrIO                   = errors.New("storage error")
	ErrDecode               = errors.New("decode error")
)

type IndexOutOfRangeError struct {
	Path   []string
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for length %d at %s", e.Index, e.Length, FormatPath(e.Path))
}

func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

type UnsupportedRootShapeError struct {
	Format Format
	Kind   Kind
}

func (e *UnsupportedRootShapeError) Error() string {
	return fmt.Sprintf("%s documents cannot have a %s root", e.Format, e.Kind)
}

func (e *UnsupportedRootShapeError) Is(target error) bool {
	return target == ErrUnsupportedRootShape
}

type ShapeMismatchError struct {
	Path      []string
	Operation string
	Kind      Kind
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("cannot apply %s to %s at %s", e.Operation, e.Kind, FormatPath(e.Path))
}

func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// UnsupportedOperationError reports an operation the target document cannot
// take. Format is only meaningful when Reason is empty.
type UnsupportedOperationError struct {
	Operation string
	Format    Format
	Reason    string
}

func (e *UnsupportedOperationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s is not supported: %s", e.Operation, e.Reason)
	}
	return fmt.Sprintf("%s is not supported for %s documents", e.Operation, e.Format)
}

func (e *UnsupportedOperationError) Is(target error) bool {
	return target == ErrUnsupportedOperation
}

// IOError wraps a failure of the underlying storage.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// DecodeFallback records that a document could not be decoded in its
// requested format and was read as text instead. It is not an error.
type DecodeFallback struct {
	Requested Format
	Err       error
}

func (f *DecodeFallback) String() string {
	return fmt.Sprintf("decoded as text instead of %s: %v", f.Requested, f.Err)
}

// FormatPath renders a key path for messages.
func FormatPath(path []string) string {
	if len(path) == 0 {
		return "(root)"
	}
	return strings.Join(path, ".")
}
