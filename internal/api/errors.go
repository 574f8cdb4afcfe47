package api

import "fmt"

// TransportError is returned when the request could not be sent or the body
// could not be read.
type TransportError struct {
	Op  Operation
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: GET %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError is returned when the response body is not valid JSON.
type ParseError struct {
	Op         Operation
	URL        string
	StatusCode int
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: GET %s (status %d): body is not JSON: %v", e.Op, e.URL, e.StatusCode, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
