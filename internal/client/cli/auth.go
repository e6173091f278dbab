package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkuzmenko/classmate/internal/client/api"
	"github.com/vkuzmenko/classmate/internal/client/forms"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, authenticates, and installs the session.
// A credential failure and an unreachable server render distinct messages;
// both leave the client logged out.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	user, token, err := a.auth.Login(ctx, forms.LoginForm{Email: email, Password: password})
	if err != nil {
		switch {
		case api.IsUnauthorized(err):
			fmt.Fprintln(a.out, "Login failed: invalid email or password.")
		case errors.Is(err, api.ErrUnavailable):
			fmt.Fprintln(a.out, "Server unavailable, try again later.")
		default:
			fmt.Fprintf(a.out, "Login failed: %s\n", err)
		}
		return err
	}

	if err := a.session.Login(ctx, user, token); err != nil {
		fmt.Fprintf(a.out, "Login failed: %s\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s! You are logged in as a %s.\n", user.Name, user.Role)
	return nil
}

// Logout clears the session unconditionally.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// ForgotPassword requests a reset code for an email address. On success the
// backend emails a 6-digit code used by ResetPassword.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.ForgotPassword(ctx, forms.ForgotForm{Email: email}); err != nil {
		fmt.Fprintf(a.out, "Could not request a reset code: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Check your email for a reset code, then run 'reset'.")
	return nil
}

// ResetPassword completes the reset flow with the emailed code.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Enter the 6-digit reset code", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.out, "Repeat new password")
	if err != nil {
		return err
	}

	form := forms.ResetForm{Email: email, Code: code, NewPassword: password, Confirm: confirm}
	if err := a.auth.ResetPassword(ctx, form); err != nil {
		fmt.Fprintf(a.out, "Password reset failed: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Password changed. You can log in now.")
	return nil
}

// WhoAmI shows the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.allow("") {
		return nil
	}
	user, _, _ := a.session.Current()
	fmt.Fprintf(a.out, "%s <%s>, role %s\n", user.Name, user.Email, user.Role)
	if user.StudentID != "" {
		fmt.Fprintf(a.out, "Student ID: %s\n", user.StudentID)
	}
	return nil
}
