package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Abcdef1!", true},
		{"too short", "Ab1!", false},
		{"no uppercase", "abcdef1!", false},
		{"no lowercase", "ABCDEF1!", false},
		{"no digit", "Abcdefg!", false},
		{"no special", "Abcdefg1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StrongPassword(tt.password))
		})
	}
}

func TestStructValidation(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	type registerPayload struct {
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required,strongpassword"`
	}

	fields := v.Struct(registerPayload{Email: "a@b.com", Password: "Abcdef1!"})
	assert.Nil(t, fields)

	fields = v.Struct(registerPayload{Email: "not-an-email", Password: "weak"})
	require.NotNil(t, fields)
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Password")
}
