package validators

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// HourLayout is the wire format of an hour-resolution instant (YYYY-MM-DDThh).
const HourLayout = "2006-01-02T15"

// TagHourStamp validates that a string field is a real calendar hour in HourLayout.
const TagHourStamp = "hourstamp"

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New creates a new validator instance with the service's custom tags registered.
func New() *Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation(TagHourStamp, validateHourStamp)
	v.RegisterTagNameFunc(jsonTagName)
	return v
}

// FormatFieldErrors renders errs as "workspaceId is required; count must be greater than 0".
// Field names come from json tags.
func FormatFieldErrors(errs ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return strings.Join(msgs, "; ")
}

func formatFieldError(fe FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not be empty", field)
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case TagHourStamp:
		return fmt.Sprintf("%s must be YYYY-MM-DDThh", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// jsonTagName names fields after their json tag; untagged fields keep the Go name.
func jsonTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// ParseHourStamp parses s in HourLayout as a UTC instant.
func ParseHourStamp(s string) (time.Time, error) {
	return time.ParseInLocation(HourLayout, s, time.UTC)
}

func validateHourStamp(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != len(HourLayout) {
		return false
	}
	_, err := ParseHourStamp(s)
	return err == nil
}
