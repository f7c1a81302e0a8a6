// Package vaulterr defines the enumerated error taxonomy shared by every
// layer of the vault engine, from the secure allocator up to the CLI.
//
// The core never recovers silently: a failure deep in the allocator or
// the crypto layer surfaces as one of these kinds all the way to the
// command that triggered it.
package vaulterr

import "fmt"

// Kind is one of the enumerated error kinds from the vault's error
// taxonomy. Callers that need to branch on failure mode should compare
// against these constants rather than matching error strings.
type Kind int

const (
	OK Kind = iota
	IO
	OutOfMemory
	Overflow
	BadKeySize
	BadIVSize
	BadWorkFactor
	Unaligned
	CryptoPrimitiveFailure
	HeaderMismatch
	IVMismatch
	Truncated
	BadPadding
	BadSchema
	BadMAC
	NotFound
	AlreadyExists
)

var names = map[Kind]string{
	OK:                     "no error",
	IO:                     "I/O error",
	OutOfMemory:            "out of memory",
	Overflow:               "integer overflow",
	BadKeySize:             "incorrect key length",
	BadIVSize:              "incorrect initialisation vector length",
	BadWorkFactor:          "incorrect work factor",
	Unaligned:              "unaligned data",
	CryptoPrimitiveFailure: "failure in underlying crypto primitive",
	HeaderMismatch:         "mismatched header value",
	IVMismatch:             "mismatched initialisation vector",
	Truncated:              "data was too short",
	BadPadding:             "data was incorrectly padded",
	BadSchema:              "imported data did not conform to expected schema",
	BadMAC:                 "message failed authentication",
	NotFound:               "no matching entry",
	AlreadyExists:          "an entry for that space/key already exists",
}

// String renders the textual form of a Kind, used verbatim in
// CLI-visible error messages.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown error"
}

// Error is the typed error carried across the vault engine. It wraps
// an optional underlying cause without losing the enumerated Kind a
// caller needs to branch on.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error of the given kind with no wrapped cause.
func New(k Kind) *Error { return &Error{Kind: k} }

// Wrap builds an *Error of the given kind, carrying cause as context.
// Wrapping OK is a programming error and panics, since OK is never a
// failure to propagate.
func Wrap(k Kind, cause error) *Error {
	if k == OK {
		panic("vaulterr: Wrap called with OK")
	}
	return &Error{Kind: k, Cause: cause}
}

// KindOf extracts the Kind from err if it (or something it wraps) is a
// *Error, otherwise it reports IO as a conservative default for an
// unrecognised failure.
func KindOf(err error) Kind {
	var e *Error
	if asError(err, &e) {
		return e.Kind
	}
	return IO
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
