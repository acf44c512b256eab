// Copyright (c) 2026 EasyBuy. All rights reserved.

/*
Package validate accumulates field rule failures so a single 400 can report
all of them at once.

Services build a [Validator], chain rules, and return [Validator.Err]:

	var v validate.Validator
	v.Required("name", in.Name).MaxLen("name", in.Name, 200)
	if err := v.Err(); err != nil {
		return nil, err
	}

Lengths are counted in runes, except [Validator.MaxBytes].
*/
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/easybuy/api/internal/platform/apperr"
)

// ErrInvalidJSON answers a body that is not decodable JSON.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator is single-use and not safe for concurrent use.
type Validator struct {
	failures []apperr.FieldError
}

func (v *Validator) check(failed bool, field, message string) *Validator {
	if failed {
		v.failures = append(v.failures, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// Required rejects blank or whitespace-only values.
func (v *Validator) Required(field, value string) *Validator {
	return v.check(strings.TrimSpace(value) == "", field, "This field is required")
}

func (v *Validator) MaxLen(field, value string, limit int) *Validator {
	return v.check(utf8.RuneCountInString(value) > limit, field, fmt.Sprintf("Maximum %d characters", limit))
}

func (v *Validator) MinLen(field, value string, limit int) *Validator {
	return v.check(utf8.RuneCountInString(value) < limit, field, fmt.Sprintf("Minimum %d characters", limit))
}

// MaxBytes guards passwords; bcrypt ignores everything past 72 bytes.
func (v *Validator) MaxBytes(field, value string, limit int) *Validator {
	return v.check(len(value) > limit, field, fmt.Sprintf("Maximum %d bytes", limit))
}

func (v *Validator) MinFloat(field string, value, floor float64) *Validator {
	return v.check(value < floor, field, fmt.Sprintf("Must be at least %g", floor))
}

// Email accepts anything [net/mail.ParseAddress] accepts.
func (v *Validator) Email(field, value string) *Validator {
	_, err := mail.ParseAddress(value)
	return v.check(err != nil, field, "Must be a valid email address")
}

// Custom records message against field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	return v.check(failed, field, message)
}

// HasErrors lets callers skip expensive rules once a cheap one has failed.
func (v *Validator) HasErrors() bool {
	return len(v.failures) > 0
}

// Err is nil when every rule passed, else a VALIDATION_ERROR listing each failure.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.failures...)
}

// FieldError builds a one-field validation error whose message doubles as
// the top-level "error" string.
func FieldError(field, message string) *apperr.AppError {
	return apperr.ValidationError(message, apperr.FieldError{Field: field, Message: message})
}
