package services

import (
	"context"

	"github.com/vkuzmenko/classmate/internal/client/api"
	"github.com/vkuzmenko/classmate/internal/client/forms"
	"github.com/vkuzmenko/classmate/internal/client/models"
)

// ClassroomService manages classrooms and their rosters. Classrooms are
// never deleted from this client.
type ClassroomService interface {
	List(ctx context.Context) ([]models.Classroom, error)
	Get(ctx context.Context, id string) (models.Classroom, error)
	Create(ctx context.Context, form forms.ClassroomForm) error
	AddStudents(ctx context.Context, form forms.StudentsForm) error
	RemoveStudents(ctx context.Context, form forms.StudentsForm) error
}

type classroomService struct {
	api *api.Client
}

func NewClassroomService(client *api.Client) ClassroomService {
	return &classroomService{api: client}
}

func (s *classroomService) List(ctx context.Context) ([]models.Classroom, error) {
	return api.GetList[models.Classroom](ctx, s.api, "/classrooms", "classrooms")
}

func (s *classroomService) Get(ctx context.Context, id string) (models.Classroom, error) {
	var c models.Classroom
	err := s.api.Get(ctx, "/classrooms/"+id, &c)
	return c, err
}

func (s *classroomService) Create(ctx context.Context, form forms.ClassroomForm) error {
	if err := forms.Validate(form); err != nil {
		return err
	}
	body := map[string]string{
		"name":        form.Name,
		"code":        form.Code,
		"description": form.Description,
	}
	return s.api.Post(ctx, "/classrooms", body, nil)
}

type studentsRequest struct {
	StudentIDs []string `json:"studentIds"`
}

func (s *classroomService) AddStudents(ctx context.Context, form forms.StudentsForm) error {
	if err := forms.Validate(form); err != nil {
		return err
	}
	body := studentsRequest{StudentIDs: form.StudentIDs}
	return s.api.Post(ctx, "/classrooms/"+form.ClassroomID+"/add-students", body, nil)
}

func (s *classroomService) RemoveStudents(ctx context.Context, form forms.StudentsForm) error {
	if err := forms.Validate(form); err != nil {
		return err
	}
	body := studentsRequest{StudentIDs: form.StudentIDs}
	return s.api.Put(ctx, "/classrooms/"+form.ClassroomID+"/remove-students", body, nil)
}
