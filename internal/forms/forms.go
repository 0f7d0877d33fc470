// Package forms parses, validates and submits the site's two forms: the
// contact form and the login form.
//
// A form that fails validation is never sent anywhere. A form that passes is
// posted to the Content API exactly once.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AccountType says which kind of account a login is for.
type AccountType string

const (
	AccountAdmin AccountType = "admin"
	AccountDonor AccountType = "donor"
)

// ContactForm is the form on the contact page.
type ContactForm struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required,email"`
	Phone   string `form:"phone"`
	Subject string `form:"subject"`
	Message string `form:"message" validate:"required"`
}

// ParseContactForm reads a ContactForm from posted values. Leading and
// trailing whitespace is dropped.
func ParseContactForm(values url.Values) ContactForm {
	return ContactForm{
		Name:    strings.TrimSpace(values.Get("name")),
		Email:   strings.TrimSpace(values.Get("email")),
		Phone:   strings.TrimSpace(values.Get("phone")),
		Subject: strings.TrimSpace(values.Get("subject")),
		Message: strings.TrimSpace(values.Get("message")),
	}
}

// LoginForm is the form on the login page.
type LoginForm struct {
	Email       string      `form:"email" validate:"required,email"`
	Password    string      `form:"password" validate:"required,min=6"`
	AccountType AccountType `form:"accountType" validate:"required,oneof=admin donor"`
}

// ParseLoginForm reads a LoginForm from posted values. The password is kept
// as typed; an absent account type means donor.
func ParseLoginForm(values url.Values) LoginForm {
	form := LoginForm{
		Email:       strings.TrimSpace(values.Get("email")),
		Password:    values.Get("password"),
		AccountType: AccountType(strings.TrimSpace(values.Get("accountType"))),
	}
	if form.AccountType == "" {
		form.AccountType = AccountDonor
	}
	return form
}

// DashboardPath is where an account of type t lands after logging in.
func DashboardPath(t AccountType) string {
	if t == AccountAdmin {
		return "/admin/dashboard"
	}
	return "/donor/dashboard"
}

// ValidationError describes the first field of a form that failed
// validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var labels = map[string]string{
	"name":        "Name",
	"email":       "Email",
	"message":     "Message",
	"password":    "Password",
	"accountType": "Account type",
}

// Validate checks form, which must be a ContactForm or a LoginForm, and
// returns a *ValidationError for the first field that fails, in the order
// the fields are declared.
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("error validating form: %w", err)
	}
	return fieldError(fieldErrs[0])
}

func fieldError(fe validator.FieldError) *ValidationError {
	field := fe.Field()
	label, ok := labels[field]
	if !ok {
		label = field
	}
	var msg string
	switch fe.Tag() {
	case "required":
		msg = label + " is required"
	case "email":
		msg = "Please enter a valid email address"
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		msg = label + " is invalid"
	}
	return &ValidationError{Field: field, Message: msg}
}
