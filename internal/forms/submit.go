package forms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"impractical.co/lantern"
	"impractical.co/lantern/internal/content"
)

// Status is the state of a form submission.
type Status string

const (
	// StatusIdle is the zero Status: nothing has been submitted yet.
	StatusIdle    Status = ""
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the outcome of a submission, ready to be shown as a toast. The
// zero Result is idle.
type Result struct {
	Status  Status
	Message string

	// Field names the form field that failed validation. It's only set
	// when the form never left the server.
	Field string
}

// Idle reports whether nothing has been submitted yet.
func (r Result) Idle() bool {
	return r.Status == StatusIdle
}

// OK reports whether the submission succeeded. Only then should the form's
// fields be cleared.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

const (
	contactSuccessMessage = "Thank you for your message! We'll get back to you soon."
	contactFailureMessage = "Failed to send message. Please try again."
	loginFailureMessage   = "Login failed. Please check your credentials and try again."
)

// ContactSubmitter sends contact forms to the Content API.
type ContactSubmitter struct {
	Client   *content.Client
	Endpoint string
}

// Submit validates form and, when it is valid, posts it once. It never
// returns an error; every failure is described by the Result.
func (s ContactSubmitter) Submit(ctx context.Context, form ContactForm) Result {
	if err := Validate(form); err != nil {
		res := Result{Status: StatusError, Message: message(err, contactFailureMessage)}
		var invalid *ValidationError
		if errors.As(err, &invalid) {
			res.Field = invalid.Field
		}
		return res
	}
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = content.EndpointContactMessages
	}
	msg := content.ContactMessage(form)
	if _, err := content.Post[content.ContactMessage, json.RawMessage](ctx, s.Client, endpoint, msg); err != nil {
		lantern.Logger(ctx).WarnContext(ctx, "error submitting contact form", "endpoint", endpoint, "error", err)
		return Result{Status: StatusError, Message: content.Message(err, contactFailureMessage)}
	}
	return Result{Status: StatusSuccess, Message: contactSuccessMessage}
}

// Authenticator logs users in against the Content API's auth endpoints.
type Authenticator struct {
	Client *content.Client
}

// Endpoint returns the auth endpoint for accounts of type t.
func (Authenticator) Endpoint(t AccountType) string {
	if t == AccountAdmin {
		return content.EndpointAdminLogin
	}
	return content.EndpointDonorLogin
}

// Login validates form and, when it is valid, posts the credentials once.
// A *ValidationError is returned without contacting the API.
func (a Authenticator) Login(ctx context.Context, form LoginForm) (content.LoginResult, error) {
	if err := Validate(form); err != nil {
		return content.LoginResult{}, err
	}
	endpoint := a.Endpoint(form.AccountType)
	res, err := content.Login(ctx, a.Client, endpoint, content.Credentials{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return content.LoginResult{}, fmt.Errorf("error logging in as %s: %w", form.AccountType, err)
	}
	return res, nil
}

// LoginMessage is the toast text for a failed login.
func LoginMessage(err error) string {
	return message(err, loginFailureMessage)
}

func message(err error, fallback string) string {
	var invalid *ValidationError
	if errors.As(err, &invalid) {
		return invalid.Message
	}
	return content.Message(err, fallback)
}
