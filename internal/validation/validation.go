package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/heavyrent/rental-service/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Field errors are reported under their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "personname", func(fl validator.FieldLevel) bool {
		return domain.ValidPersonName(fl.Field().String())
	})
	mustRegister(v, "runes", func(fl validator.FieldLevel) bool {
		var min, max int
		if _, err := fmt.Sscanf(fl.Param(), "%d-%d", &min, &max); err != nil {
			return false
		}
		n := utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
		return n >= min && n <= max
	})
	return v
}

// mustRegister panics when tag cannot be registered, so a broken tag fails at startup.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Struct validates s by its `validate` tags and returns the failures as a ValidationError,
// or nil when s is valid.
func Struct(s interface{}) *domain.ValidationError {
	verr := domain.NewValidationError()
	Into(verr, s)
	if !verr.HasErrors() {
		return nil
	}
	return verr
}

// Into adds the tag failures of s to verr.
func Into(verr *domain.ValidationError, s interface{}) {
	err := validate.Struct(s)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("_", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + lengthUnit(fe)
	case "max":
		return "must be at most " + fe.Param() + lengthUnit(fe)
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "must be a valid email address"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "personname":
		return "must contain only letters and spaces"
	case "runes":
		return "must be " + strings.Replace(fe.Param(), "-", " to ", 1) + " characters"
	case "latitude":
		return "must be a valid latitude"
	case "longitude":
		return "must be a valid longitude"
	case "url":
		return "must be a valid URL"
	}
	return "is invalid"
}

func lengthUnit(fe validator.FieldError) string {
	if fe.Kind() == reflect.String {
		return " characters"
	}
	return ""
}
