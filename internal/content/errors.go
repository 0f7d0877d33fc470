package content

import (
	"errors"
	"fmt"
)

// Kind says which part of a Content API call failed.
type Kind string

const (
	// KindTransport means the request never got a response: DNS, dial,
	// timeout, cancelled context.
	KindTransport Kind = "transport"

	// KindStatus means the API answered with a non-2xx status code.
	KindStatus Kind = "status"

	// KindRejected means the API answered {"success": false}.
	KindRejected Kind = "rejected"

	// KindDecode means the response body wasn't the JSON envelope we
	// expected.
	KindDecode Kind = "decode"
)

var (
	// ErrRejected matches any *Error of KindRejected with errors.Is.
	ErrRejected = errors.New("content API reported failure")

	// ErrUnavailable matches, with errors.Is, any *Error of KindTransport
	// and any *Error of KindStatus with a 5xx status.
	ErrUnavailable = errors.New("content API unavailable")
)

// Error is returned by every Content API call that doesn't succeed.
type Error struct {
	Kind     Kind
	Method   string
	Endpoint string

	// Status is the HTTP status code, when there was a response.
	Status int

	// Message is the human-readable failure text the API sent, if any.
	Message string

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Endpoint, e.Status)
	case KindRejected:
		if e.Message != "" {
			return fmt.Sprintf("%s %s: rejected: %s", e.Method, e.Endpoint, e.Message)
		}
		return fmt.Sprintf("%s %s: rejected", e.Method, e.Endpoint)
	default:
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Endpoint, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets callers match on ErrRejected and ErrUnavailable.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrRejected:
		return e.Kind == KindRejected
	case ErrUnavailable:
		return e.Kind == KindTransport || (e.Kind == KindStatus && e.Status >= 500)
	}
	return false
}

// Message returns the text to show a visitor for err: the message the
// Content API sent when there is one, fallback otherwise.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
