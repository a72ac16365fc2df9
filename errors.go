package retrolz

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a CodecError the way spec.md §6 enumerates operation
// failures: callers can switch on Kind without parsing the message.
type Kind int

const (
	// OutOfRangeWrite means a write extended past a fixed-length destination
	// (a substream.View constructed with a capped length, a fixed-size
	// header field, and so on).
	OutOfRangeWrite Kind = iota
	// InvalidRange means a constructor's offset/length arguments don't fit
	// inside the backing source.
	InvalidRange
	// TruncatedInput means the reader ran out of bytes before a complete
	// header, token, or tree could be read.
	TruncatedInput
	// MalformedToken means a token's encoded shape violates its format's
	// contract (an impossible length/displacement, a bad tree index, ...).
	MalformedToken
	// HuffmanCapExceeded means the length-limiting pass could not fit a
	// Huffman code under the requested bit-width cap (the alphabet is too
	// large for it).
	HuffmanCapExceeded
	// UnsupportedOperation means Encode was called on a decode-only format.
	UnsupportedOperation
)

func (k Kind) String() string {
	switch k {
	case OutOfRangeWrite:
		return "out of range write"
	case InvalidRange:
		return "invalid range"
	case TruncatedInput:
		return "truncated input"
	case MalformedToken:
		return "malformed token"
	case HuffmanCapExceeded:
		return "huffman cap exceeded"
	case UnsupportedOperation:
		return "unsupported operation"
	default:
		return "unknown error"
	}
}

// CodecError is the error type every decode/encode operation in this module
// returns on failure. Pos is the byte or unit offset at which the error was
// detected, or -1 if it isn't meaningful (construction-time errors).
type CodecError struct {
	Kind Kind
	Pos  int
	Err  error
}

func (e *CodecError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s at %d: %v", e.Kind, e.Pos, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrSomeKind) work: it matches any CodecError of the
// same Kind, whatever its Pos and cause.
func (e *CodecError) Is(target error) bool {
	if k, ok := target.(*CodecError); ok {
		return e.Kind == k.Kind
	}
	return false
}

// Newf builds a CodecError with a formatted message and no deeper cause.
func Newf(kind Kind, pos int, format string, args ...interface{}) *CodecError {
	return &CodecError{Kind: kind, Pos: pos, Err: errors.Errorf(format, args...)}
}

// Wrap builds a CodecError that keeps err as its stack-annotated cause.
func Wrap(kind Kind, pos int, err error, message string) *CodecError {
	return &CodecError{Kind: kind, Pos: pos, Err: errors.Wrap(err, message)}
}

// sentinel returns a CodecError suitable for use with errors.Is(err, X)
// where X is one of the package-level Err* values below.
func sentinel(kind Kind, message string) *CodecError {
	return &CodecError{Kind: kind, Pos: -1, Err: errors.New(message)}
}

var (
	ErrOutOfRangeWrite     = sentinel(OutOfRangeWrite, "write exceeds fixed length")
	ErrInvalidRange        = sentinel(InvalidRange, "offset/length out of range")
	ErrTruncatedInput      = sentinel(TruncatedInput, "input truncated")
	ErrMalformedToken      = sentinel(MalformedToken, "malformed token")
	ErrHuffmanCapExceeded  = sentinel(HuffmanCapExceeded, "huffman code length exceeds cap")
	ErrUnsupportedOperation = sentinel(UnsupportedOperation, "operation not supported by this format")
)
