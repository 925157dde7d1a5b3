// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-echo.

package api

import (
	"errors"
	"fmt"
)

// Sentinel errors used across the library.
var (
	ErrWouldBlock   = fmt.Errorf("operation would block")
	ErrPeerClosed   = fmt.Errorf("peer closed connection")
	ErrNotSupported = fmt.Errorf("operation not supported on this platform")
	ErrLoopClosed   = fmt.Errorf("event loop is closed")
)

// ErrorCode identifies the startup or runtime stage an error belongs to,
// so the process can map failures to distinct exit statuses.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeResolve
	ErrCodeSocket
	ErrCodeBind
	ErrCodeListen
	ErrCodeConnect
	ErrCodeReactor
	ErrCodeRegister
	ErrCodeInternal
)

// Error is a structured error carrying the failure stage and context.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Cause }

// NewError creates a new structured error wrapping cause.
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the ErrorCode from err, or ErrCodeInternal when err
// carries no structured stage information.
func CodeOf(err error) ErrorCode {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}
