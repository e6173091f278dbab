package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable wraps transport-level failures: connection refused,
	// DNS errors, client-side timeouts. Retrying is the caller's decision.
	ErrUnavailable = errors.New("server unavailable")

	// ErrMalformedResponse marks responses missing the fields this client
	// depends on.
	ErrMalformedResponse = errors.New("malformed response")
)

// Error is the normalized form of a non-2xx response.
type Error struct {
	Status    int
	Message   string
	RequestID string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// errorBody matches the two message conventions observed in backend error
// responses.
type errorBody struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

func newError(status int, body []byte, reqID string) *Error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	msg := eb.Message
	if msg == "" {
		msg = eb.Err
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = "request failed"
	}
	return &Error{Status: status, Message: msg, RequestID: reqID}
}

func statusIs(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsUnauthorized reports a 401: the credentials were rejected.
func IsUnauthorized(err error) bool { return statusIs(err, http.StatusUnauthorized) }

// IsForbidden reports a 403: authenticated but not allowed. Distinct from 401.
func IsForbidden(err error) bool { return statusIs(err, http.StatusForbidden) }

// IsNotFound reports a 404.
func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }
