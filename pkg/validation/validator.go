package validation

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	apperrors "usuarios-api/pkg/errors"
)

// Rule binds a validator tag to a named input field together with the message
// reported when the tag does not hold.
type Rule struct {
	Field   string
	Tag     string
	Message string
}

// Required reports an empty value.
func Required(field string) Rule {
	return Rule{
		Field:   field,
		Tag:     "required",
		Message: fmt.Sprintf("El campo %s es requerido", field),
	}
}

// Email reports a value that is not an email address.
func Email(field string) Rule {
	return Rule{
		Field:   field,
		Tag:     "email",
		Message: fmt.Sprintf("El campo %s debe ser una dirección de correo electrónico válida", field),
	}
}

// MaxLength reports a value longer than n characters.
func MaxLength(field string, n int) Rule {
	return Rule{
		Field:   field,
		Tag:     "max=" + strconv.Itoa(n),
		Message: fmt.Sprintf("El campo %s no puede superar los %d caracteres", field, n),
	}
}

// Validator evaluates rule lists against string fields.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

// Check evaluates every rule in order and returns one FieldError per violated
// rule. Rules on the same field do not short-circuit each other. A field missing
// from fields is treated as the empty string.
func (v *Validator) Check(fields map[string]string, rules []Rule) []apperrors.FieldError {
	var errs []apperrors.FieldError
	for _, r := range rules {
		value := fields[r.Field]
		if err := v.validate.Var(value, r.Tag); err != nil {
			errs = append(errs, apperrors.NewFieldError(r.Field, value, r.Message))
		}
	}
	return errs
}

// Validate is Check wrapped into a *errors.ValidationError, or nil when every
// rule holds.
func (v *Validator) Validate(fields map[string]string, rules []Rule) error {
	if errs := v.Check(fields, rules); len(errs) > 0 {
		return apperrors.NewValidationError(errs...)
	}
	return nil
}
