package paginator

import (
	"errors"
	"fmt"
)

// errUnexpectedDocument is wrapped by DecodeError when a page is valid JSON
// but holds no record sequence.
var errUnexpectedDocument = errors.New("document holds neither a results list nor records")

// Detail is one key/value pair taken from a JSON error body.
type Detail struct {
	Key   string
	Value string
}

// TransportError reports a request that did not come back with 200 OK,
// or that never got a response at all (Err is set).
type TransportError struct {
	URL        string
	StatusCode int
	Details    []Detail
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a 200 response whose body could not be used.
type DecodeError struct {
	URL  string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
