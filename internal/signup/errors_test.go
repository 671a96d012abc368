package signup

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubServerError struct {
	message string
	code    string
}

func (e stubServerError) Error() string         { return "request failed with status 409" }
func (e stubServerError) ServerMessage() string { return e.message }
func (e stubServerError) ServerError() string   { return e.code }

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message wins", stubServerError{message: "Email already exists", code: "conflict"}, "Email already exists"},
		{"server error field next", stubServerError{code: "conflict"}, "conflict"},
		{"wrapped server error", fmt.Errorf("register: %w", stubServerError{message: "Email already exists"}), "Email already exists"},
		{"falls back to error text", stubServerError{}, "request failed with status 409"},
		{"plain error", errors.New("Network down"), "Network down"},
		{"blank error", errors.New("  "), DefaultSubmitError},
		{"nil", nil, DefaultSubmitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}
