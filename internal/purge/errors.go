package purge

import (
	"errors"
	"fmt"
)

// Error represents a failure detected while planning or rewriting a purge.
//
// Errors include:
//   - Invalid mask: inclusion mask is not five binary digits with a '1'
//   - Object start not found: no "G1 X.. Y>0" line in the stream
//   - Malformed coordinate: a matched line carries an unparseable X value
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Line is the 1-based line number the error refers to, or 0.
	Line int
}

// ErrorCode categorizes purge errors.
type ErrorCode string

const (
	// ErrCodeInvalidMask indicates the inclusion mask failed validation.
	ErrCodeInvalidMask ErrorCode = "INVALID_MASK"

	// ErrCodeObjectStartNotFound indicates the first object could not be located.
	ErrCodeObjectStartNotFound ErrorCode = "OBJECT_START_NOT_FOUND"

	// ErrCodeMalformedCoordinate indicates a coordinate token could not be parsed.
	ErrCodeMalformedCoordinate ErrorCode = "MALFORMED_COORDINATE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", e.Code, e.Message, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsMaskError returns true if err is an invalid mask error.
// Uses errors.As to handle wrapped errors.
func IsMaskError(err error) bool {
	return hasCode(err, ErrCodeInvalidMask)
}

// IsObjectStartNotFound returns true if err reports a missing object start.
// Uses errors.As to handle wrapped errors.
func IsObjectStartNotFound(err error) bool {
	return hasCode(err, ErrCodeObjectStartNotFound)
}

// IsMalformedCoordinate returns true if err reports an unparseable coordinate.
func IsMalformedCoordinate(err error) bool {
	return hasCode(err, ErrCodeMalformedCoordinate)
}

func hasCode(err error, code ErrorCode) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

// NewMaskError creates an Error for a rejected inclusion mask.
func NewMaskError(mask string) *Error {
	return &Error{
		Code:    ErrCodeInvalidMask,
		Message: fmt.Sprintf("The inclusion mask must be five binary digits and have at least one 1.  You specified '%s'.", mask),
	}
}

// NewObjectStartNotFoundError creates an Error for a stream with no object start.
func NewObjectStartNotFoundError() *Error {
	return &Error{
		Code:    ErrCodeObjectStartNotFound,
		Message: "Failed to locate start coordinates of first object.  Syntax may have changed, please raise an issue.",
	}
}

// NewMalformedCoordinateError creates an Error for an unparseable token on line.
func NewMalformedCoordinateError(line int, token string) *Error {
	return &Error{
		Code:    ErrCodeMalformedCoordinate,
		Message: fmt.Sprintf("cannot parse X coordinate from %q", token),
		Line:    line,
	}
}
