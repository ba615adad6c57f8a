package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/seriestrack/internal/apperr"
	"github.com/user/seriestrack/internal/model"
)

func TestValidateRegistration(t *testing.T) {
	in, err := ValidateRegistration(model.RegisterInput{
		Name:     "  Ana  ",
		Email:    " Ana@Example.COM ",
		Password: "Passw0rd!",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", in.Name)
	assert.Equal(t, "ana@example.com", in.Email)
	assert.Equal(t, "Passw0rd!", in.Password)
}

func TestValidateRegistration_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		in    model.RegisterInput
		field string
	}{
		{"short name", model.RegisterInput{Name: "A", Email: "a@b.io", Password: "Passw0rd!"}, "name"},
		{"bad email", model.RegisterInput{Name: "Ana", Email: "not-an-email", Password: "Passw0rd!"}, "email"},
		{"weak password", model.RegisterInput{Name: "Ana", Email: "a@b.io", Password: "password"}, "password"},
		{"missing password", model.RegisterInput{Name: "Ana", Email: "a@b.io"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRegistration(tt.in)
			require.ErrorIs(t, err, apperr.ErrInvalidField)
			assert.Equal(t, tt.field, fieldOf(t, err))
		})
	}
}

func TestValidateCredentials(t *testing.T) {
	in, err := ValidateCredentials(model.LoginInput{Email: "ANA@example.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", in.Email)

	_, err = ValidateCredentials(model.LoginInput{Email: "ana@example.com"})
	require.ErrorIs(t, err, apperr.ErrInvalidField)
	assert.Equal(t, "password", fieldOf(t, err))
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("Passw0rd!"))
	assert.True(t, IsStrongPassword("Zz9 zzzzz"))
	assert.False(t, IsStrongPassword("Pa0!"))
	assert.False(t, IsStrongPassword("passw0rd!"))
	assert.False(t, IsStrongPassword("PASSW0RD!"))
	assert.False(t, IsStrongPassword("Password!"))
	assert.False(t, IsStrongPassword("Passw0rdd"))
}

func TestIsStrongPasswordByteLimit(t *testing.T) {
	long := "Aa1!" + strings.Repeat("x", 69)
	assert.False(t, IsStrongPassword(long))
	assert.True(t, IsStrongPassword(long[:72]))
}
