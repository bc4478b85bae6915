// Package script implements the instruction codec (C1) and the structured
// control-flow tree (C2) that the compiler passes in pkg/compiler rewrite.
package script

import "fmt"

// ErrorCode identifies a class of failure produced by the codec or the
// structured parser. It mirrors the shape of btcd/txscript's own ErrorCode:
// a small closed enum paired with a human-readable description, rather than
// ad-hoc errors.New calls scattered through the codebase.
type ErrorCode int

const (
	// ErrMalformedScript indicates the raw byte stream could not be
	// decoded into instructions: a push opcode ran past the end of the
	// script, or the script otherwise isn't well-formed.
	ErrMalformedScript ErrorCode = iota

	// ErrUnbalancedControl indicates an OP_IF/OP_NOTIF without a
	// matching OP_ENDIF, a dangling OP_ELSE, or a trailing OP_ENDIF with
	// no opener.
	ErrUnbalancedControl

	// ErrPushTooLarge indicates a data push exceeds the configured
	// structural ceiling (CompileOptions.MaxPushSize).
	ErrPushTooLarge
)

// String returns the human-readable name of the error code.
func (e ErrorCode) String() string {
	switch e {
	case ErrMalformedScript:
		return "ErrMalformedScript"
	case ErrUnbalancedControl:
		return "ErrUnbalancedControl"
	case ErrPushTooLarge:
		return "ErrPushTooLarge"
	default:
		return "ErrUnknown"
	}
}

// CompileError is the concrete error type returned by Decode, Encode, and
// Parse. Code distinguishes the failure class programmatically; Description
// carries the human-readable detail.
type CompileError struct {
	Code        ErrorCode
	Description string
}

// Error implements the error interface.
func (e CompileError) Error() string {
	return fmt.Sprintf("script: %s: %s", e.Code, e.Description)
}

// scriptError constructs a CompileError.
func scriptError(c ErrorCode, desc string) CompileError {
	return CompileError{Code: c, Description: desc}
}
