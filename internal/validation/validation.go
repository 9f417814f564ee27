// Package validation holds the field and file rules applied to every form
// before anything is persisted.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"lead-intake/internal/apperr"

	"github.com/go-playground/validator/v10"
)

var (
	emailRe       = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	loosePhoneRe  = regexp.MustCompile(`^[\d\s+\-()]{10,20}$`)
	strictPhoneRe = regexp.MustCompile(`^[+]?[1-9]\d{0,15}$`)
	phoneStripRe  = regexp.MustCompile(`[^\d+]`)
)

// IsEmail matches local@domain.tld with a 2+ letter TLD.
func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsLoosePhone is the job/project/contact rule: 10-20 characters of digits,
// spaces, '+', '-' and parentheses.
func IsLoosePhone(s string) bool {
	return loosePhoneRe.MatchString(s)
}

// IsStrictPhone is the inquiry/trial rule: after dropping everything except
// digits and '+', an optional '+' then 1-16 digits not starting with 0.
func IsStrictPhone(s string) bool {
	return strictPhoneRe.MatchString(phoneStripRe.ReplaceAllString(s, ""))
}

// Validator wraps a validator.Validate with the form-specific tags
// registered: leademail, loosephone, strictphone.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	mustRegister(v, "leademail", func(fl validator.FieldLevel) bool { return IsEmail(fl.Field().String()) })
	mustRegister(v, "loosephone", func(fl validator.FieldLevel) bool { return IsLoosePhone(fl.Field().String()) })
	mustRegister(v, "strictphone", func(fl validator.FieldLevel) bool { return IsStrictPhone(fl.Field().String()) })

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// Struct validates s and reports the first violated rule as a validation
// error.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Internal("validation failed", err)
	}
	return apperr.Validation("%s", describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "leademail":
		return fmt.Sprintf("%s is not a valid email address", field)
	case "loosephone", "strictphone":
		return fmt.Sprintf("%s is not a valid phone number", field)
	default:
		return fmt.Sprintf("%s failed the %s rule", field, fe.Tag())
	}
}
