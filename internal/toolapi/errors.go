package toolapi

import (
	"errors"
	"fmt"
)

// Error is returned for every failed call. StatusCode is zero when the
// request never got a response; Err then holds the transport failure.
type Error struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Code       string
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("HTTP %d: %s: %v", e.StatusCode, e.Status, e.Err)
	case e.Code != "":
		return fmt.Sprintf("HTTP %d: %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// Detail is the text a form shows: the server's message when it sent one.
func (e *Error) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error()
}

// Detail extracts a display message from any error a Client returned.
func Detail(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail()
	}
	return err.Error()
}
