package taskclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindForbidden
	KindNotFound
	KindUnauthorized
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindUnauthorized:
		return "unauthorized"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// ErrProvisionalTask is wrapped when a mutation targets a task the server has
// not confirmed yet.
var ErrProvisionalTask = errors.New("task is not saved yet")

// Error is returned by every Client, Session and Board call. Fields is only set
// for KindValidation and maps JSON field names to messages.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

type errorEnvelope struct {
	Error struct {
		Code    int                 `json:"code"`
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	} `json:"error"`
}

func errorFromResponse(status int, body []byte) *Error {
	apiErr := &Error{Kind: kindForStatus(status), Status: status}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Message = envelope.Error.Message
		if apiErr.Kind == KindValidation {
			apiErr.Fields = envelope.Error.Errors
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindUnknown
	}
}
