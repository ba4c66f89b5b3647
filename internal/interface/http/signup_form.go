package handlers

import (
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/car-collection/pkg/validation"
)

// SignupForm is the submitted signup payload.
type SignupForm struct {
	Email     string `form:"email"`
	Password  string `form:"password"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
}

const (
	fieldEmail     = "email"
	fieldPassword  = "password"
	fieldFirstName = "first_name"
	fieldLastName  = "last_name"
)

// NewSignupValidator builds the ordered field rules for the signup form.
func NewSignupValidator(v *validator.Validate) *validation.Form {
	return validation.NewForm(v,
		validation.Rule{Field: fieldEmail, Label: "Email", Required: true, Formats: []string{"email"}},
		validation.Rule{Field: fieldPassword, Label: "Password", Required: true},
		validation.Rule{Field: fieldFirstName, Label: "First Name", Required: true},
		validation.Rule{Field: fieldLastName, Label: "Last Name", Required: true},
	)
}

func (f SignupForm) values() map[string]string {
	return map[string]string{
		fieldEmail:     f.Email,
		fieldPassword:  f.Password,
		fieldFirstName: f.FirstName,
		fieldLastName:  f.LastName,
	}
}

// formField is one input as the template renders it.
type formField struct {
	Name   string
	Label  string
	Type   string
	Value  string
	Errors []string
}

// fields lays the rules out for rendering. The password value is never echoed back.
func (f SignupForm) fields(form *validation.Form, errs validation.Errors) []formField {
	values := f.values()
	out := make([]formField, 0, len(values))
	for _, r := range form.Rules() {
		ff := formField{Name: r.Field, Label: r.Label, Type: "text", Value: values[r.Field], Errors: errs[r.Field]}
		if r.Field == fieldPassword {
			ff.Type = "password"
			ff.Value = ""
		}
		out = append(out, ff)
	}
	return out
}
