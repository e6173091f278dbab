package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vkuzmenko/classmate/internal/client/api"
	"github.com/vkuzmenko/classmate/internal/client/forms"
	"github.com/vkuzmenko/classmate/internal/client/models"
)

// AssignmentService reads and (for lecturers) creates assignments.
type AssignmentService interface {
	List(ctx context.Context) ([]models.Assignment, error)
	ListForClassroom(ctx context.Context, classroomID string) ([]models.Assignment, error)
	Get(ctx context.Context, id string) (models.Assignment, error)
	Create(ctx context.Context, form forms.AssignmentForm) error
	// DownloadAttachment fetches the attachment at the given index into
	// destDir and returns the written path.
	DownloadAttachment(ctx context.Context, assignment models.Assignment, index int, destDir string) (string, error)
}

type assignmentService struct {
	api *api.Client
}

func NewAssignmentService(client *api.Client) AssignmentService {
	return &assignmentService{api: client}
}

func (s *assignmentService) List(ctx context.Context) ([]models.Assignment, error) {
	return api.GetList[models.Assignment](ctx, s.api, "/assignments", "assignments")
}

func (s *assignmentService) ListForClassroom(ctx context.Context, classroomID string) ([]models.Assignment, error) {
	path := fmt.Sprintf("/classrooms/%s/assignments", classroomID)
	return api.GetList[models.Assignment](ctx, s.api, path, "assignments")
}

func (s *assignmentService) Get(ctx context.Context, id string) (models.Assignment, error) {
	var a models.Assignment
	err := s.api.Get(ctx, "/assignments/"+id, &a)
	return a, err
}

func (s *assignmentService) Create(ctx context.Context, form forms.AssignmentForm) error {
	if err := forms.Validate(form); err != nil {
		return err
	}

	files, closeAll, err := openFileParts("files", form.Attachments)
	if err != nil {
		return err
	}
	defer closeAll()

	fields := map[string]string{
		"title":       form.Title,
		"description": form.Description,
		"deadline":    form.DueDate,
		"classroomId": form.ClassroomID,
	}
	return s.api.PostMultipart(ctx, "/assignments", fields, files, nil)
}

func (s *assignmentService) DownloadAttachment(ctx context.Context, assignment models.Assignment, index int, destDir string) (string, error) {
	if index < 0 || index >= len(assignment.Attachments) {
		return "", fmt.Errorf("assignment %s has no attachment %d", assignment.ID, index)
	}
	fallback := assignment.Attachments[index].Filename
	path := fmt.Sprintf("/assignments/%s/download/%d", assignment.ID, index)
	return s.api.Download(ctx, path, fallback, destDir)
}

// openFileParts opens each local path for streaming into a multipart body.
// The returned closer releases every opened handle; it is safe to call even
// after a partial failure.
func openFileParts(field string, paths []string) ([]api.FilePart, func(), error) {
	parts := make([]api.FilePart, 0, len(paths))
	handles := make([]*os.File, 0, len(paths))
	closeAll := func() {
		for _, h := range handles {
			h.Close()
		}
	}

	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		handles = append(handles, f)
		parts = append(parts, api.FilePart{Field: field, Filename: filepath.Base(p), Reader: f})
	}
	return parts, closeAll, nil
}
