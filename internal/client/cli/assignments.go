package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/vkuzmenko/classmate/internal/client/controller"
	"github.com/vkuzmenko/classmate/internal/client/forms"
	"github.com/vkuzmenko/classmate/internal/client/models"
)

// Assignments lists assignments, optionally scoped to one classroom.
func (a *App) Assignments(ctx context.Context, classroomID string) error {
	if !a.allow("") {
		return nil
	}

	ctl := controller.NewList(func(ctx context.Context) ([]models.Assignment, error) {
		if classroomID != "" {
			return a.assignments.ListForClassroom(ctx, classroomID)
		}
		return a.assignments.List(ctx)
	}, a.log)
	defer ctl.Close()

	ctl.Load(ctx)
	renderList(a.out, ctl.State(), "No assignments yet.", func(w io.Writer, as models.Assignment) {
		fmt.Fprintf(w, "%s  %s (due %s)\n", as.ID, as.Title, as.DueDate.Format("2006-01-02"))
	})
	return nil
}

// AssignmentDetails shows one assignment with its attachments.
func (a *App) AssignmentDetails(ctx context.Context, id string) error {
	if !a.allow("") {
		return nil
	}

	ctl := controller.NewList(func(ctx context.Context) ([]models.Assignment, error) {
		as, err := a.assignments.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return []models.Assignment{as}, nil
	}, a.log)
	defer ctl.Close()

	ctl.Load(ctx)
	renderList(a.out, ctl.State(), "Assignment not found.", func(w io.Writer, as models.Assignment) {
		fmt.Fprintf(w, "%s\n", as.Title)
		fmt.Fprintf(w, "Due: %s\n", as.DueDate.Format("2006-01-02"))
		if as.Description != "" {
			fmt.Fprintln(w, as.Description)
		}
		if len(as.Attachments) == 0 {
			return
		}
		fmt.Fprintln(w, "Attachments:")
		for i, f := range as.Attachments {
			fmt.Fprintf(w, "  [%d] %s (%d bytes)\n", i, f.Filename, f.Size)
		}
	})
	return nil
}

// NewAssignment creates an assignment with optional attachments. Lecturer
// only.
func (a *App) NewAssignment(ctx context.Context) error {
	if !a.allow(models.RoleLecturer) {
		return nil
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	due, err := getSimpleText(a.reader, "Due date (2024-12-31)", a.out)
	if err != nil {
		return err
	}
	classroomID, err := getSimpleText(a.reader, "Classroom id", a.out)
	if err != nil {
		return err
	}
	paths, err := GetPaths(a.reader, "Attachment paths", a.out)
	if err != nil {
		return err
	}

	form := forms.AssignmentForm{
		Title:       title,
		Description: description,
		DueDate:     due,
		ClassroomID: classroomID,
		Attachments: paths,
	}
	if err := a.assignments.Create(ctx, form); err != nil {
		fmt.Fprintf(a.out, "Could not create assignment: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Assignment created.")
	return nil
}

// DownloadAttachment saves attachment number 'index' of an assignment into
// the configured download directory.
func (a *App) DownloadAttachment(ctx context.Context, assignmentID, index string) error {
	if !a.allow("") {
		return nil
	}

	n, err := strconv.Atoi(index)
	if err != nil {
		fmt.Fprintf(a.out, "%q is not an attachment number\n", index)
		return err
	}

	as, err := a.assignments.Get(ctx, assignmentID)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load assignment: %s\n", err)
		return err
	}

	path, err := a.assignments.DownloadAttachment(ctx, as, n, a.config.DownloadDir)
	if err != nil {
		fmt.Fprintf(a.out, "Download failed: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Saved %s\n", path)
	return nil
}
