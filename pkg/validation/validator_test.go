package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "usuarios-api/pkg/errors"
)

func TestValidator_Check(t *testing.T) {
	v := New()
	rules := []Rule{
		Required("nombre"),
		Required("email"),
		Email("email"),
		MaxLength("nombre", 5),
	}

	tests := []struct {
		name     string
		fields   map[string]string
		expected []string
	}{
		{
			name:   "all rules hold",
			fields: map[string]string{"nombre": "Ana", "email": "ana@example.com"},
		},
		{
			name:   "empty email violates required and email",
			fields: map[string]string{"nombre": "Ana", "email": ""},
			expected: []string{
				"El campo email es requerido",
				"El campo email debe ser una dirección de correo electrónico válida",
			},
		},
		{
			name:   "missing fields are empty",
			fields: map[string]string{},
			expected: []string{
				"El campo nombre es requerido",
				"El campo email es requerido",
				"El campo email debe ser una dirección de correo electrónico válida",
			},
		},
		{
			name:     "malformed email",
			fields:   map[string]string{"nombre": "Ana", "email": "not-an-email"},
			expected: []string{"El campo email debe ser una dirección de correo electrónico válida"},
		},
		{
			name:     "too long",
			fields:   map[string]string{"nombre": "Anastasia", "email": "ana@example.com"},
			expected: []string{"El campo nombre no puede superar los 5 caracteres"},
		},
		{
			name:   "multibyte characters count once",
			fields: map[string]string{"nombre": "Núñez", "email": "ana@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Check(tt.fields, rules)
			require.Len(t, errs, len(tt.expected))
			for i, msg := range tt.expected {
				assert.Equal(t, msg, errs[i].Msg)
				assert.Equal(t, "field", errs[i].Type)
				assert.Equal(t, apperrors.LocationBody, errs[i].Location)
			}
		})
	}
}

func TestValidator_Check_PreservesRuleOrder(t *testing.T) {
	v := New()
	rules := []Rule{Email("b"), Required("a"), Required("b")}

	errs := v.Check(map[string]string{}, rules)

	require.Len(t, errs, 3)
	assert.Equal(t, "b", errs[0].Path)
	assert.Equal(t, "a", errs[1].Path)
	assert.Equal(t, "b", errs[2].Path)
}

func TestValidator_Check_ReportsValue(t *testing.T) {
	v := New()

	errs := v.Check(map[string]string{"email": "bad"}, []Rule{Email("email")})

	require.Len(t, errs, 1)
	assert.Equal(t, "bad", errs[0].Value)
	assert.Equal(t, "email", errs[0].Path)
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	t.Run("valid", func(t *testing.T) {
		err := v.Validate(map[string]string{"email": "ana@example.com"}, []Rule{Required("email"), Email("email")})
		assert.NoError(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		err := v.Validate(map[string]string{"email": strings.Repeat("a", 3)}, []Rule{Required("email"), Email("email")})
		require.Error(t, err)

		var vErr *apperrors.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Len(t, vErr.Fields, 1)
	})
}
