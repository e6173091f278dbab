package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/vkuzmenko/classmate/internal/client/controller"
	"github.com/vkuzmenko/classmate/internal/client/forms"
	"github.com/vkuzmenko/classmate/internal/client/models"
)

// Users lists every account. Admin only.
func (a *App) Users(ctx context.Context) error {
	if !a.allow(models.RoleAdmin) {
		return nil
	}

	ctl := controller.NewList(func(ctx context.Context) ([]models.User, error) {
		return a.users.List(ctx)
	}, a.log)
	defer ctl.Close()

	ctl.Load(ctx)
	renderList(a.out, ctl.State(), "No users yet.", func(w io.Writer, u models.User) {
		fmt.Fprintf(w, "%s  %s  %s  %s\n", u.ID, u.Name, u.Email, u.Role)
	})
	return nil
}

// NewUser creates an account. Lecturer only; students register through the
// backend's own flows.
func (a *App) NewUser(ctx context.Context) error {
	if !a.allow(models.RoleLecturer) {
		return nil
	}

	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Role (student, lecturer, admin)", a.out)
	if err != nil {
		return err
	}
	form := forms.UserForm{Name: name, Email: email, Password: password, Role: role}
	if role == string(models.RoleStudent) {
		form.StudentID, err = getSimpleText(a.reader, "Student id", a.out)
		if err != nil {
			return err
		}
	}

	if err := a.users.Create(ctx, form); err != nil {
		fmt.Fprintf(a.out, "Could not create user: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "User created.")
	return nil
}

// Profile updates the current user's display name and optionally the
// password. A successful rename is reflected in the session immediately.
func (a *App) Profile(ctx context.Context) error {
	if !a.allow("") {
		return nil
	}
	user, token, _ := a.session.Current()

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", user.Name), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = user.Name
	}
	password, err := getPassword(a.out, "New password (empty to keep)")
	if err != nil {
		return err
	}

	form := forms.ProfileForm{Name: name, NewPassword: password}
	if err := a.users.UpdateProfile(ctx, user.ID, form); err != nil {
		fmt.Fprintf(a.out, "Could not update profile: %s\n", err)
		return err
	}

	user.Name = name
	if err := a.session.Login(ctx, user, token); err != nil {
		a.log.Warn(ctx, "session refresh after profile update", "error", err)
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}
