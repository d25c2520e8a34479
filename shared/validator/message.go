package validator

import (
	"errors"
	"fmt"
	"hotelier/shared/constant"
	"strings"

	val "github.com/go-playground/validator/v10"
)

type describe func(field, param string) string

var messages = map[string]describe{
	"required":    func(f, _ string) string { return f + " is required" },
	"email":       func(f, _ string) string { return f + " must be a valid email address" },
	"gt":          func(f, p string) string { return fmt.Sprintf("%s must be greater than %s", f, p) },
	"gte":         func(f, p string) string { return fmt.Sprintf("%s must be greater than or equal to %s", f, p) },
	"lte":         func(f, p string) string { return fmt.Sprintf("%s must be less than or equal to %s", f, p) },
	"min":         func(f, p string) string { return fmt.Sprintf("%s must be at least %s long", f, p) },
	"max":         func(f, p string) string { return fmt.Sprintf("%s must be at most %s long", f, p) },
	"len":         func(f, p string) string { return fmt.Sprintf("%s must have length %s", f, p) },
	"oneof":       func(f, p string) string { return fmt.Sprintf("%s must be one of [%s]", f, p) },
	"nefield":     func(f, p string) string { return fmt.Sprintf("%s must differ from %s", f, p) },
	"gtfield":     func(f, p string) string { return fmt.Sprintf("%s must be after %s", f, p) },
	"day":         func(f, _ string) string { return f + " must be a date formatted as " + constant.DayFormat },
	"stamp":       func(f, _ string) string { return f + " must be an RFC3339 timestamp or YYYY-MM-DDTHH:MM" },
	"mimetypes":   func(f, p string) string { return f + " must be one of " + strings.ReplaceAll(p, " ", ", ") },
	"maxfilesize": func(f, p string) string { return fmt.Sprintf("%s must not exceed %s MB", f, p) },
}

// message renders every failed rule, in field order, as one sentence list.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(valErrors))
	for _, fieldErr := range valErrors {
		if render, ok := messages[fieldErr.Tag()]; ok {
			parts = append(parts, render(fieldErr.Field(), fieldErr.Param()))

			continue
		}

		parts = append(parts, fmt.Sprintf("%s failed on %s", fieldErr.Field(), fieldErr.Tag()))
	}

	return strings.Join(parts, "; ")
}
