package constants

import "net/http"

// CodedError carries an HTTP status code alongside the message so the
// central error handler can map it without string matching.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound       = NewCodedError(http.StatusNotFound, "not found")
	ErrUnauthorized     = NewCodedError(http.StatusUnauthorized, "unauthorized")
	ErrInvalidParams    = NewCodedError(http.StatusBadRequest, "invalid request parameters")
	ErrDataNotLoaded    = NewCodedError(http.StatusServiceUnavailable, "source data not loaded")
	ErrUnknownRep       = NewCodedError(http.StatusNotFound, "unknown representative")
	ErrNoSourceData     = NewCodedError(http.StatusServiceUnavailable, "no source available for required tables")
	ErrMissingAuthToken = NewCodedError(http.StatusUnauthorized, "missing admin token")
)
