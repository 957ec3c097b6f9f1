// Package api is the HTTP adapter for the job-tracking backend. It owns URL
// building, timeouts, the error shape, and normalization of wire payloads
// into canonical records.
package api

import "fmt"

// RequestError is a rejected request: an HTTP non-2xx response, or a 2xx
// response whose payload carries status:false. The message is taken from the
// server's error field when present.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// TimeoutError is the client-side deadline firing. It is distinct from a
// backend rejection: the operation may or may not have happened.
type TimeoutError struct{}

func (e *TimeoutError) Error() string {
	return "request timeout - operation took too long, please try again"
}
