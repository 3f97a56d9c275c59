package validator

import (
	"strings"
	"testing"

	domainerrors "taskmanager/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUpRequest struct {
	FirstName string `json:"firstName" validate:"required,notblank,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,maxbytes=72"`
}

func TestCustomValidator_Validate(t *testing.T) {
	cv := New()

	tests := []struct {
		name     string
		input    signUpRequest
		expected map[string]string
	}{
		{
			name:  "valid",
			input: signUpRequest{FirstName: "Ada", Email: "ada@example.com", Password: "password123"},
		},
		{
			name:  "every field invalid",
			input: signUpRequest{FirstName: "   ", Email: "not-an-email", Password: "short"},
			expected: map[string]string{
				"firstName": "is required",
				"email":     "must be a valid email address",
				"password":  "must be at least 8 characters",
			},
		},
		{
			name:     "missing email",
			input:    signUpRequest{FirstName: "Ada", Password: "password123"},
			expected: map[string]string{"email": "is required"},
		},
		{
			name:     "password over 72 bytes",
			input:    signUpRequest{FirstName: "Ada", Email: "ada@example.com", Password: strings.Repeat("é", 40)},
			expected: map[string]string{"password": "must be at most 72 bytes"},
		},
		{
			name:     "name too long",
			input:    signUpRequest{FirstName: strings.Repeat("a", 101), Email: "ada@example.com", Password: "password123"},
			expected: map[string]string{"firstName": "must be at most 100 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.Validate(&tt.input)
			if tt.expected == nil {
				require.NoError(t, err)

				return
			}

			var validationErr *domainerrors.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.expected, validationErr.Fields())
			assert.Equal(t, 400, validationErr.HTTPCode())
			assert.Equal(t, "VALIDATION_FAILED", validationErr.ErrorCode())
		})
	}
}
