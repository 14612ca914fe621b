package validator

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	cardNumberRe = regexp.MustCompile(`^[0-9]{16}$`)
	expDateRe    = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	contactRe    = regexp.MustCompile(`^\+?[0-9]{10,12}$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		return cardNumberRe.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("expdate", func(fl validator.FieldLevel) bool {
		return expDateRe.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
		return contactRe.MatchString(fl.Field().String())
	})
}

// Validate struct fields. Returns nil when v is valid, otherwise a map of
// field name to the failing tag.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		out[e.Field()] = e.Tag()
	}
	return out
}

// Var validates a single value against tag.
func Var(value any, tag string) bool {
	return validate.Var(value, tag) == nil
}
