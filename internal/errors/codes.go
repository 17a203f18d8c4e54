package errors

import "net/http"

// Code represents an error code
type Code string

// Generic error codes used by repositories, orchestrators and the CLI
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	// CodeDataLoss marks a stored record that can no longer be decoded or
	// fails validation on load
	CodeDataLoss Code = "DATA_LOSS"
)

// Combat math error codes
const (
	// CodeInvalidBounds is returned when min would end up greater than max
	CodeInvalidBounds Code = "INVALID_BOUNDS"
	// CodeDivisionByZero is returned when dividing a bounded value by zero
	// or taking the ratio of a gauge whose bounds are equal
	CodeDivisionByZero Code = "DIVISION_BY_ZERO"
	// CodeInvalidDelta is returned for a negative delta where only
	// non-negative deltas are accepted
	CodeInvalidDelta Code = "INVALID_DELTA"
	// CodeAtMaxLevel is returned when asking for the next level threshold
	// at the terminal level
	CodeAtMaxLevel Code = "AT_MAX_LEVEL"
	// CodeUnsupportedElement is returned for an element outside the known set
	CodeUnsupportedElement Code = "UNSUPPORTED_ELEMENT"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the corresponding HTTP status code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidArgument, CodeInvalidBounds, CodeInvalidDelta,
		CodeDivisionByZero, CodeUnsupportedElement:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeFailedPrecondition, CodeAtMaxLevel:
		return http.StatusPreconditionFailed
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
