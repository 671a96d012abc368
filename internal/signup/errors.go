package signup

import (
	"errors"
	"strings"
)

// DefaultSubmitError is shown when a failure carries no usable text.
const DefaultSubmitError = "Failed to create account"

// ErrSubmitInFlight is returned when a register call is already pending.
var ErrSubmitInFlight = errors.New("account creation already in progress")

// ServerError is implemented by transport errors that carry a decoded error
// body. Either method may return "" when the body lacked that field.
type ServerError interface {
	error
	ServerMessage() string
	ServerError() string
}

// ErrorMessage extracts the text to show for a failed submit: the server's
// message, then the server's error field, then the error's own text, then
// DefaultSubmitError.
func ErrorMessage(err error) string {
	if err == nil {
		return DefaultSubmitError
	}

	var se ServerError
	if errors.As(err, &se) {
		if m := strings.TrimSpace(se.ServerMessage()); m != "" {
			return m
		}
		if e := strings.TrimSpace(se.ServerError()); e != "" {
			return e
		}
	}

	if m := strings.TrimSpace(err.Error()); m != "" {
		return m
	}
	return DefaultSubmitError
}
