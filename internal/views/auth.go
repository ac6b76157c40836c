package views

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/store"
)

// LoginForm is the login page's input state.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// RegisterForm is the register page's input state. The password
// confirmation is checked here, before the auth slice is ever invoked; the
// slice does not re-check it.
type RegisterForm struct {
	FirstName       string `validate:"required"`
	LastName        string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// SubmitLogin validates the form and dispatches the login. On success the
// client navigates home; on failure the form keeps its values and the
// slice error is rendered inline.
func (p *Pages) SubmitLogin(ctx context.Context, form LoginForm) (map[string]string, error) {
	if err := p.validate.Struct(form); err != nil {
		return fieldErrors(err), nil
	}
	if err := p.store.Auth.Login(ctx, form.Email, form.Password); err != nil {
		return nil, err
	}
	p.Navigate("/")
	return nil, nil
}

// SubmitRegister validates the form, including the password confirmation,
// then dispatches the registration. Success auto-authenticates and
// navigates home.
func (p *Pages) SubmitRegister(ctx context.Context, form RegisterForm) (map[string]string, error) {
	if err := p.validate.Struct(form); err != nil {
		return fieldErrors(err), nil
	}
	err := p.store.Auth.Register(ctx, models.RegisterRequest{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		return nil, err
	}
	p.Navigate("/")
	return nil, nil
}

// Logout clears the session and returns to the login entry point.
func (p *Pages) Logout() {
	p.store.Auth.Logout()
	p.Navigate(p.loginPath)
}

// RenderLogin renders the login page for the given form state.
func (p *Pages) RenderLogin(form LoginForm) string {
	state := p.store.Auth.Snapshot()

	var b strings.Builder
	b.WriteString("== Login ==\n")
	if state.Err != "" {
		fmt.Fprintf(&b, "error: %s\n", state.Err)
	}
	fmt.Fprintf(&b, "Email: %s\n", form.Email)
	if state.Status == store.StatusPending {
		b.WriteString("[Logging in...]\n")
	} else {
		b.WriteString("[Login]\n")
	}
	b.WriteString("Don't have an account? Register here\n")
	return b.String()
}

// RenderProfile renders the profile page for the authenticated user.
func (p *Pages) RenderProfile() string {
	sess, ok := p.store.Auth.Session()
	if !ok {
		return "== Profile ==\nNot logged in\n"
	}

	var b strings.Builder
	b.WriteString("== Profile ==\n")
	fmt.Fprintf(&b, "Name: %s %s\n", sess.FirstName, sess.LastName)
	fmt.Fprintf(&b, "Email: %s\n", sess.Email)
	return b.String()
}
