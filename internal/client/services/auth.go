// Package services contains the application services of the classroom client:
// thin, per-aggregate wrappers over the API client that validate input
// locally before anything touches the network.
package services

import (
	"context"

	"github.com/vkuzmenko/classmate/internal/client/api"
	"github.com/vkuzmenko/classmate/internal/client/forms"
	"github.com/vkuzmenko/classmate/internal/client/models"
	"github.com/vkuzmenko/classmate/internal/logging"
)

// AuthService handles credentials: login and the two-step password reset.
//
// Contract:
//   - Login: authenticate and return the canonical (user, token) pair.
//   - ForgotPassword: request a reset code for an email address.
//   - ResetPassword: exchange email+code+new password for a reset.
//
// All methods honor context cancellation. None of them retries.
type AuthService interface {
	Login(ctx context.Context, form forms.LoginForm) (models.User, string, error)
	ForgotPassword(ctx context.Context, form forms.ForgotForm) error
	ResetPassword(ctx context.Context, form forms.ResetForm) error
}

type authService struct {
	api *api.Client
	log logging.Logger
}

func NewAuthService(client *api.Client, log logging.Logger) AuthService {
	return &authService{api: client, log: log}
}

func (s *authService) Login(ctx context.Context, form forms.LoginForm) (models.User, string, error) {
	if err := forms.Validate(form); err != nil {
		return models.User{}, "", err
	}

	body, err := s.api.PostRaw(ctx, "/auth/login", map[string]string{
		"email":    form.Email,
		"password": form.Password,
	})
	if err != nil {
		return models.User{}, "", err
	}
	return api.NormalizeLogin(ctx, body, s.log)
}

func (s *authService) ForgotPassword(ctx context.Context, form forms.ForgotForm) error {
	if err := forms.Validate(form); err != nil {
		return err
	}
	return s.api.Post(ctx, "/auth/forgot-password", map[string]string{"email": form.Email}, nil)
}

func (s *authService) ResetPassword(ctx context.Context, form forms.ResetForm) error {
	if err := forms.Validate(form); err != nil {
		return err
	}
	return s.api.Post(ctx, "/auth/reset-password", map[string]string{
		"email":       form.Email,
		"code":        form.Code,
		"newPassword": form.NewPassword,
	}, nil)
}
