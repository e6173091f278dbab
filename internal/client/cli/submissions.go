package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/vkuzmenko/classmate/internal/client/controller"
	"github.com/vkuzmenko/classmate/internal/client/forms"
	"github.com/vkuzmenko/classmate/internal/client/models"
	"github.com/vkuzmenko/classmate/internal/client/services"
)

// Submit uploads work for an assignment. Student only.
func (a *App) Submit(ctx context.Context, assignmentID string) error {
	if !a.allow(models.RoleStudent) {
		return nil
	}

	comments, err := GetMultiline(a.reader, "Comments", a.out)
	if err != nil {
		return err
	}
	paths, err := GetPaths(a.reader, fmt.Sprintf("File paths (1 to %d)", forms.MaxSubmissionFiles), a.out)
	if err != nil {
		return err
	}

	form := forms.SubmissionForm{AssignmentID: assignmentID, Comments: comments, Files: paths}
	if err := a.submissions.Submit(ctx, form); err != nil {
		fmt.Fprintf(a.out, "Could not submit: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Submission uploaded.")
	return nil
}

// Submissions lists submissions, optionally filtered by assignment id and a
// "graded"/"ungraded" keyword, in either order.
func (a *App) Submissions(ctx context.Context, args []string) error {
	if !a.allow("") {
		return nil
	}

	var filter services.SubmissionFilter
	for _, arg := range args {
		switch arg {
		case "graded":
			graded := true
			filter.Graded = &graded
		case "ungraded":
			graded := false
			filter.Graded = &graded
		default:
			filter.AssignmentID = arg
		}
	}

	ctl := a.submissionList(filter)
	defer ctl.Close()

	ctl.Load(ctx)
	renderList(a.out, ctl.State(), "No submissions yet.", renderSubmission)
	return nil
}

// DownloadSubmissionFile saves one submitted file into the configured
// download directory.
func (a *App) DownloadSubmissionFile(ctx context.Context, filename string) error {
	if !a.allow("") {
		return nil
	}

	file := models.FileRef{Filename: filename}
	path, err := a.submissions.DownloadFile(ctx, file, a.config.DownloadDir)
	if err != nil {
		fmt.Fprintf(a.out, "Download failed: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Saved %s\n", path)
	return nil
}

// Grading walks ungraded submissions for an assignment and records grades
// interactively. Lecturer only. A recorded grade is patched into the local
// listing without a refetch.
func (a *App) Grading(ctx context.Context, assignmentID string) error {
	if !a.allow(models.RoleLecturer) {
		return nil
	}

	ungraded := false
	filter := services.SubmissionFilter{AssignmentID: assignmentID, Graded: &ungraded}
	ctl := a.submissionList(filter)
	defer ctl.Close()

	ctl.Load(ctx)
	st := ctl.State()
	if st.Phase == controller.Errored {
		fmt.Fprintf(a.out, "Error: %s\n", st.Message)
		return nil
	}
	if len(st.Items) == 0 {
		fmt.Fprintln(a.out, "Nothing to grade.")
		return nil
	}

	for _, sub := range st.Items {
		fmt.Fprintf(a.out, "\nSubmission %s by %s", sub.ID, sub.Student.Name)
		if sub.IsLate {
			fmt.Fprint(a.out, " (late)")
		}
		fmt.Fprintln(a.out)
		if sub.Comments != "" {
			fmt.Fprintf(a.out, "Comments: %s\n", sub.Comments)
		}
		for _, f := range sub.Files {
			fmt.Fprintf(a.out, "  %s (%d bytes)\n", f.Filename, f.Size)
		}

		raw, err := getSimpleText(a.reader, "Grade 0-100 (empty to skip)", a.out)
		if err != nil {
			return err
		}
		if raw == "" {
			continue
		}
		grade, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintf(a.out, "%q is not a grade\n", raw)
			continue
		}
		feedback, err := GetMultiline(a.reader, "Feedback", a.out)
		if err != nil {
			return err
		}

		form := forms.GradeForm{SubmissionID: sub.ID, Grade: grade, Feedback: feedback}
		err = ctl.Submit(ctx, func(ctx context.Context) error {
			return a.submissions.Grade(ctx, form)
		})
		if err != nil {
			fmt.Fprintf(a.out, "Could not record grade: %s\n", err)
			continue
		}

		id := sub.ID
		ctl.Patch(func(s *models.Submission) bool { return s.ID == id }, func(s *models.Submission) {
			s.Grade = &grade
			s.Feedback = feedback
		})
		fmt.Fprintln(a.out, "Grade recorded.")
	}
	return nil
}

// Grades lists the current user's graded submissions. Student only.
func (a *App) Grades(ctx context.Context) error {
	if !a.allow(models.RoleStudent) {
		return nil
	}

	graded := true
	ctl := a.submissionList(services.SubmissionFilter{Graded: &graded})
	defer ctl.Close()

	ctl.Load(ctx)
	renderList(a.out, ctl.State(), "No grades yet.", func(w io.Writer, s models.Submission) {
		if !s.Graded() {
			return
		}
		fmt.Fprintf(w, "%s  %d/100", s.Assignment.Title, *s.Grade)
		if s.Feedback != "" {
			fmt.Fprintf(w, "  %s", s.Feedback)
		}
		fmt.Fprintln(w)
	})
	return nil
}

func (a *App) submissionList(filter services.SubmissionFilter) *controller.List[models.Submission] {
	return controller.NewList(func(ctx context.Context) ([]models.Submission, error) {
		return a.submissions.List(ctx, filter)
	}, a.log)
}

func renderSubmission(w io.Writer, s models.Submission) {
	status := "ungraded"
	if s.Graded() {
		status = fmt.Sprintf("%d/100", *s.Grade)
	}
	late := ""
	if s.IsLate {
		late = " late"
	}
	fmt.Fprintf(w, "%s  %s  %s  %s%s\n", s.ID, s.Student.Name, s.SubmittedAt.Format("2006-01-02 15:04"), status, late)
}
