// Package derrors defines coded domain errors. Services attach a Code to every
// failure so transports can translate it without string matching and tests can
// assert on the failure kind rather than the message.
package derrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure. Codes double as the wire-level error
// identifiers in JSON envelopes.
type Code string

const (
	// Registry engine failure kinds. Each maps to exactly one of the
	// attributable failures of the ledger operations.
	CodeAlreadyRegistered     Code = "already_registered"
	CodeNotRegistered         Code = "not_registered"
	CodeEmptyField            Code = "empty_field"
	CodeProductNotFound       Code = "product_not_found"
	CodeCertificateNotFound   Code = "certificate_not_found"
	CodeNotAuthorized         Code = "not_authorized"
	CodeAlreadyFinalized      Code = "already_finalized"
	CodeCannotRefundCompleted Code = "cannot_refund_completed"
	CodeTransferFailed        Code = "transfer_failed"

	// Ambient codes shared by transport and infrastructure layers.
	CodeValidation   Code = "validation"
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeTimeout      Code = "timeout"
	CodeInternal     Code = "internal_error"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error with no underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap annotates err with a code and message, preserving the cause for
// errors.Is/errors.As chains.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Err
		if err == nil {
			break
		}
	}
	return false
}

// CodeOf returns the outermost code in err's chain, or CodeInternal when err
// carries no code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
