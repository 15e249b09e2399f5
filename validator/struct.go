// Package validator checks tagged structs with go-playground/validator and
// turns failures into per-field messages.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldName)
}

// Errors maps field names to messages
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = e[field]
	}
	return strings.Join(parts, " ")
}

// errorMessages is a nested map of languages to validation tags to custom error messages.
var errorMessages = map[string]map[string]string{
	"en": {
		"required":   "The field '%s' is required.",
		"startswith": "The field '%s' must start with '%s'.",
		"min":        "The field '%s' must be at least %s characters long.",
		"max":        "The field '%s' must be no longer than %s characters.",
		"oneof":      "The field '%s' must be one of %s.",
		"dive":       "The field '%s' contains an invalid item.",
	},
	"de": {
		"required":   "Das Feld '%s' ist erforderlich.",
		"startswith": "Das Feld '%s' muss mit '%s' beginnen.",
		"max":        "Das Feld '%s' darf höchstens %s Zeichen lang sein.",
	},
}

// fieldName reports fields by their json, yaml or form name
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "yaml", "form"} {
		name := strings.Split(f.Tag.Get(key), ",")[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// parseMessage constructs a friendly error message based on the validation tag and custom messages.
func parseMessage(e validator.FieldError, lang ...string) string {
	msgLang := "en"
	if len(lang) > 0 && lang[0] != "" {
		msgLang = lang[0]
	}
	for _, l := range []string{msgLang, "en"} {
		msg, ok := errorMessages[l][e.Tag()]
		if !ok {
			continue
		}
		if strings.Count(msg, "%s") == 2 {
			return fmt.Sprintf(msg, e.Field(), e.Param())
		}
		return fmt.Sprintf(msg, e.Field())
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", e.Field(), e.Tag())
}

func toErrors(err error, lang ...string) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	out := make(Errors, len(validationErrs))
	for _, e := range validationErrs {
		out[e.Field()] = parseMessage(e, lang...)
	}
	return out
}

// Struct validates s and returns Errors when a field fails its tags.
func Struct(s any, lang ...string) error {
	return toErrors(validate.Struct(s), lang...)
}

// Var validates a single value against tag
func Var(field any, tag string) error {
	return validate.Var(field, tag)
}

// ValidateStruct validates a struct and returns a map of field names to friendly error messages.
func ValidateStruct(s any, lang ...string) map[string]string {
	var errs Errors
	if errors.As(Struct(s, lang...), &errs) {
		return errs
	}
	return map[string]string{}
}
