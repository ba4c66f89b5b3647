package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to its messages, in the order the checks ran.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether field has at least one message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// First returns the first message for field or "".
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Rule binds one input field to its checks.
// Formats are validator/v10 tags run through Validate.Var, e.g. "email" or "max=50".
type Rule struct {
	Field    string
	Label    string
	Required bool
	Formats  []string
}

// Form evaluates an ordered list of rules against submitted values.
type Form struct {
	v     *validator.Validate
	rules []Rule
}

func NewForm(v *validator.Validate, rules ...Rule) *Form {
	if v == nil {
		v = validator.New()
	}
	return &Form{v: v, rules: rules}
}

func (f *Form) Rules() []Rule {
	out := make([]Rule, len(f.rules))
	copy(out, f.rules)
	return out
}

// Validate runs every rule in order. A blank value fails a required rule and
// skips that field's format checks; a blank optional value is accepted.
// The returned map is empty when everything passed.
func (f *Form) Validate(values map[string]string) Errors {
	errs := Errors{}
	for _, r := range f.rules {
		value := values[r.Field]
		if strings.TrimSpace(value) == "" {
			if r.Required {
				errs.Add(r.Field, messageFor("required", ""))
			}
			continue
		}
		for _, tag := range r.Formats {
			err := f.v.Var(value, tag)
			if err == nil {
				continue
			}
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				errs.Add(r.Field, fmt.Sprintf("validation failed for '%s'", tag))
				continue
			}
			for _, fe := range verrs {
				errs.Add(r.Field, messageFor(fe.Tag(), fe.Param()))
			}
		}
	}
	return errs
}

func messageFor(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "url":
		return "Invalid URL."
	case "min":
		return "Field must be at least " + param + " characters long."
	case "max":
		return "Field cannot be longer than " + param + " characters."
	case "len":
		return "Field must be exactly " + param + " characters long."
	case "alphanum":
		return "Field must contain letters and digits only."
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}
