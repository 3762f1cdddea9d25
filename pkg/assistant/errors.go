package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
)

// GenericFailureMessage is the user-facing fallback when the backend
// gives us nothing better to show.
const GenericFailureMessage = "Error contacting the server."

// ValidationError is a locally detected bad input. It never reaches
// the network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RequestError is a failed round-trip: transport failure or non-2xx
// response. Detail is extracted from the response body when possible.
type RequestError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("assistant request failed: status %d", e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err was raised before any network
// call was made.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// extractDetail best-effort parses an error body for the backend's
// "detail" field. A non-JSON or empty body must never raise a
// secondary error, so every failure path falls back to the generic
// message.
func extractDetail(body []byte) string {
	if len(body) == 0 {
		return GenericFailureMessage
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Detail == "" {
		return GenericFailureMessage
	}
	return payload.Detail
}
