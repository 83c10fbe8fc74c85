// Package fault defines the closed error taxonomy for the reference storage
// pipeline and the retry policy for transient failures.
package fault

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/Code rather than matching error strings.
//
// Error() strings may change between versions; use errors.As to extract
// *Error for structured handling.
type Kind string

const (
	KindStructure           Kind = "Structure"
	KindValidation          Kind = "Validation"
	KindInsufficientBalance Kind = "InsufficientBalance"
	KindArithmetic          Kind = "Arithmetic"
	KindUpload              Kind = "Upload"
	KindRetrieve            Kind = "Retrieve"
	KindWallet              Kind = "Wallet"
	KindNetwork             Kind = "Network"
	KindTimeout             Kind = "Timeout"
	KindUnknown             Kind = "Unknown"
)

// Machine codes. Each Kind has a default code; Wallet failures are further
// distinguished by what the wallet reported.
const (
	CodeMissingSection      = "STRUCTURE_MISSING_SECTION"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeInvalidAmount       = "ARITHMETIC_INVALID_AMOUNT"
	CodeUploadFailed        = "UPLOAD_FAILED"
	CodeRetrieveFailed      = "RETRIEVE_FAILED"
	CodeWalletNotConnected  = "WALLET_NOT_CONNECTED"
	CodeWalletMismatch      = "WALLET_NETWORK_MISMATCH"
	CodeWalletRejected      = "WALLET_TRANSACTION_REJECTED"
	CodeNetwork             = "NETWORK_ERROR"
	CodeTimeout             = "TIMEOUT_ERROR"
	CodeUnknown             = "UNKNOWN_ERROR"
)

// Error is the library's structured error type.
//
// Message is intended for humans; do not match on it. Shortfall is set only
// for KindInsufficientBalance and carries the exact deficit in atomic units.
// Fields carries the individual rule violations for KindValidation.
type Error struct {
	Kind      Kind
	Code      string
	Message   string
	Shortfall string
	Fields    []string
	Cause     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// New constructs a structured error with the given kind, code, and message.
func New(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// Wrap attaches a cause to a structured error.
func Wrap(kind Kind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// Code returns the machine code for a structured error, or "" if unknown.
func Code(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// Shortfall returns the atomic-unit deficit carried by an insufficient-balance
// error, or "" for any other error.
func Shortfall(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Shortfall
}
