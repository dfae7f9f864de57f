// Package validate holds the stateless rule sets applied to submitted
// forms before any store mutation.  Each rule set inspects a bound form
// and produces an ordered list of per-field failures; an empty list means
// the submission is accepted.  Rules that need the database (email
// uniqueness, classification existence) are not evaluated here — handlers
// run them explicitly and append to the same failure list, so a rejected
// request always causes zero mutation.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldError is one rejected field with its user-facing message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var classNamePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// v is the shared validator instance.  Field names in failures come from
// the `form` struct tag so they match the submitted field names.
var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// strongpassword mirrors the registration requirement: at least 12
	// characters with one lowercase, one uppercase, one digit and one
	// symbol.
	_ = val.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	// classname restricts classification names to bare alphanumerics.
	_ = val.RegisterValidation("classname", func(fl validator.FieldLevel) bool {
		return classNamePattern.MatchString(fl.Field().String())
	})
	// The numeric vehicle fields arrive as raw form strings and are only
	// coerced after validation, so their range rules parse here.
	_ = val.RegisterValidation("vehicleprice", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && f > 0
	})
	_ = val.RegisterValidation("vehicleyear", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Field().String())
		return err == nil && n >= 1900 && n <= 2099
	})
	_ = val.RegisterValidation("vehiclemiles", func(fl validator.FieldLevel) bool {
		n, err := strconv.ParseInt(fl.Field().String(), 10, 64)
		return err == nil && n >= 0
	})
	return val
}

// StrongPassword reports whether plain satisfies the password composition
// rule: length >= 12 with at least one lowercase letter, one uppercase
// letter, one digit and one symbol.
func StrongPassword(plain string) bool {
	if len(plain) < 12 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range plain {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsSpace(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// run evaluates a form against its validate tags and translates failures
// into ordered FieldErrors.  Each field carries one canonical message no
// matter which of its rules tripped, matching how the site reports form
// problems.
func run(form any, messages map[string]string) []FieldError {
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: "invalid submission"}}
	}
	seen := make(map[string]bool, len(verrs))
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if seen[field] {
			continue
		}
		seen[field] = true
		msg := messages[field]
		if msg == "" {
			msg = "Invalid value."
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}
