package httpserver

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cloudnative-labs/microservices/internal/core/apperrors"
)

// personNamePattern accepts Latin letters including accented ones, spaces,
// apostrophes and hyphens.
var personNamePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s'-]+$`)

// CustomValidator adapts validator/v10 to echo.Validator and reports failures
// as apperrors validation errors with one detail per field.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := registerRules(v, customRules); err != nil {
		panic(err)
	}
	return &CustomValidator{validator: v}
}

var customRules = map[string]validator.Func{
	"personname": func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	},
}

func registerRules(v *validator.Validate, rules map[string]validator.Func) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register validation %q: %w", tag, err)
		}
	}
	return nil
}

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Validation("invalid request")
	}
	details := make([]apperrors.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, apperrors.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
			Value:   fe.Value(),
		})
	}
	return apperrors.Validation("validation failed", details...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "personname":
		return "may only contain letters, spaces, apostrophes and hyphens"
	default:
		return "failed on " + fe.Tag()
	}
}
