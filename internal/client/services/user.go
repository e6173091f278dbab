package services

import (
	"context"

	"github.com/vkuzmenko/classmate/internal/client/api"
	"github.com/vkuzmenko/classmate/internal/client/forms"
	"github.com/vkuzmenko/classmate/internal/client/models"
)

// UserService manages accounts: listing (lecturer/admin screens), creation,
// and profile updates for the current user.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	ListStudents(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, form forms.UserForm) error
	UpdateProfile(ctx context.Context, userID string, form forms.ProfileForm) error
}

type userService struct {
	api *api.Client
}

func NewUserService(client *api.Client) UserService {
	return &userService{api: client}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return api.GetList[models.User](ctx, s.api, "/users", "users")
}

func (s *userService) ListStudents(ctx context.Context) ([]models.User, error) {
	return api.GetList[models.User](ctx, s.api, "/users/students", "students", "users")
}

func (s *userService) Create(ctx context.Context, form forms.UserForm) error {
	if err := forms.Validate(form); err != nil {
		return err
	}
	body := map[string]string{
		"name":     form.Name,
		"email":    form.Email,
		"password": form.Password,
		"role":     form.Role,
	}
	if form.Role == string(models.RoleStudent) {
		body["studentId"] = form.StudentID
	}
	return s.api.Post(ctx, "/users", body, nil)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, form forms.ProfileForm) error {
	if err := forms.Validate(form); err != nil {
		return err
	}
	body := map[string]string{"name": form.Name}
	if form.NewPassword != "" {
		body["password"] = form.NewPassword
	}
	return s.api.Put(ctx, "/users/"+userID, body, nil)
}
