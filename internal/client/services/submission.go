package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/vkuzmenko/classmate/internal/client/api"
	"github.com/vkuzmenko/classmate/internal/client/forms"
	"github.com/vkuzmenko/classmate/internal/client/models"
)

// SubmissionFilter narrows a submission listing. Zero value lists everything
// visible to the caller.
type SubmissionFilter struct {
	AssignmentID string
	Graded       *bool
}

func (f SubmissionFilter) query() string {
	q := url.Values{}
	if f.AssignmentID != "" {
		q.Set("assignment", f.AssignmentID)
	}
	if f.Graded != nil {
		q.Set("graded", strconv.FormatBool(*f.Graded))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// SubmissionService submits work and, for lecturers, grades it.
type SubmissionService interface {
	List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error)
	// Submit uploads a new submission: one multipart POST with one part per
	// file plus the assignment identifier. Validation failures never reach
	// the network.
	Submit(ctx context.Context, form forms.SubmissionForm) error
	// Grade records grade and feedback for one submission with a single PUT.
	Grade(ctx context.Context, form forms.GradeForm) error
	DownloadFile(ctx context.Context, file models.FileRef, destDir string) (string, error)
}

type submissionService struct {
	api *api.Client
}

func NewSubmissionService(client *api.Client) SubmissionService {
	return &submissionService{api: client}
}

func (s *submissionService) List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error) {
	return api.GetList[models.Submission](ctx, s.api, "/submissions"+filter.query(), "submissions")
}

func (s *submissionService) Submit(ctx context.Context, form forms.SubmissionForm) error {
	if err := forms.Validate(form); err != nil {
		return err
	}

	files, closeAll, err := openFileParts("files", form.Files)
	if err != nil {
		return err
	}
	defer closeAll()

	fields := map[string]string{
		"assignmentId": form.AssignmentID,
		"comments":     form.Comments,
	}
	return s.api.PostMultipart(ctx, "/submissions", fields, files, nil)
}

type gradeRequest struct {
	Grade    int    `json:"grade"`
	Feedback string `json:"feedback"`
}

func (s *submissionService) Grade(ctx context.Context, form forms.GradeForm) error {
	if err := forms.Validate(form); err != nil {
		return err
	}
	body := gradeRequest{Grade: form.Grade, Feedback: form.Feedback}
	return s.api.Put(ctx, "/submissions/"+form.SubmissionID+"/grade", body, nil)
}

func (s *submissionService) DownloadFile(ctx context.Context, file models.FileRef, destDir string) (string, error) {
	return s.api.Download(ctx, "/submissions/download/"+url.PathEscape(file.Filename), file.Filename, destDir)
}
