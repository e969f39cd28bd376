// Package validation checks the shape of decoded request bodies.
//
// Rules are declared with `validate` struct tags (go-playground/validator).
// The client-facing text for each rule lives next to it in a `messages` tag:
//
//	Name string `json:"name" validate:"min=2,max=50" messages:"min=Name is too short;max=Name is too long"`
//
// A failed rule without a message falls back to "<field> is invalid".
//
// validator stops at the first failing rule of a field. The remaining rules
// are still checked and the last one that fails names the field's message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/user/minilinkedin-go/apperror"
)

var personNameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// Validator wraps a configured *validator.Validate. It is safe for
// concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the application's custom rules registered:
//   - personname: letters and whitespace only
//   - hasletter: at least one ASCII letter
//   - maxbytes=N: at most N bytes of UTF-8, where max counts runes
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("hasletter", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if r < unicode.MaxASCII && unicode.IsLetter(r) {
				return true
			}
		}
		return false
	})
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})

	return &Validator{validate: v}
}

// Struct validates s, which must be a struct or a pointer to one.
// On failure it returns an *apperror.AppError of type ValidationError whose
// Message is the first failing field's message and whose Fields maps every
// failing JSON field name to its message.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.NewInternalError("validation failed", err)
	}

	typ := reflect.TypeOf(s)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	fields := make(map[string]string, len(fieldErrs))
	first := ""
	for _, fe := range fieldErrs {
		msg := v.messageFor(typ, fe)
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = msg
		if first == "" {
			first = msg
		}
	}

	return apperror.NewValidationError(first, fields)
}

func (v *Validator) messageFor(typ reflect.Type, fe validator.FieldError) string {
	sf, ok := typ.FieldByName(fe.StructField())
	if !ok {
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
	if msg, found := parseMessages(sf.Tag.Get("messages"))[v.lastFailedRule(sf, fe)]; found {
		return msg
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// lastFailedRule re-runs the rules declared after fe's rule against the
// field value and returns the name of the last one that fails.
func (v *Validator) lastFailedRule(sf reflect.StructField, fe validator.FieldError) string {
	failed := fe.Tag()
	after := false
	for _, rule := range strings.Split(sf.Tag.Get("validate"), ",") {
		name, _, _ := strings.Cut(rule, "=")
		if !after {
			after = name == fe.Tag()
			continue
		}
		if name == "omitempty" || name == "required" {
			continue
		}
		if v.validate.Var(fe.Value(), rule) != nil {
			failed = name
		}
	}
	return failed
}

// parseMessages reads "rule=text;rule=text". Text may not contain ';'.
func parseMessages(tag string) map[string]string {
	out := make(map[string]string)
	if tag == "" {
		return out
	}
	for _, part := range strings.Split(tag, ";") {
		rule, text, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(rule)] = strings.TrimSpace(text)
	}
	return out
}
