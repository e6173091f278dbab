package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vkuzmenko/classmate/internal/client/controller"
	"github.com/vkuzmenko/classmate/internal/client/forms"
	"github.com/vkuzmenko/classmate/internal/client/models"
)

// Classrooms lists the classrooms visible to the current user.
func (a *App) Classrooms(ctx context.Context) error {
	if !a.allow("") {
		return nil
	}

	ctl := controller.NewList(func(ctx context.Context) ([]models.Classroom, error) {
		return a.classrooms.List(ctx)
	}, a.log)
	defer ctl.Close()

	ctl.Load(ctx)
	renderList(a.out, ctl.State(), "No classrooms yet.", func(w io.Writer, c models.Classroom) {
		fmt.Fprintf(w, "%s  %s (%s), %d students\n", c.ID, c.Name, c.Code, len(c.Students))
	})
	return nil
}

// ClassroomDetails shows one classroom with its roster.
func (a *App) ClassroomDetails(ctx context.Context, id string) error {
	if !a.allow("") {
		return nil
	}

	ctl := controller.NewList(func(ctx context.Context) ([]models.Classroom, error) {
		c, err := a.classrooms.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return []models.Classroom{c}, nil
	}, a.log)
	defer ctl.Close()

	ctl.Load(ctx)
	renderList(a.out, ctl.State(), "Classroom not found.", func(w io.Writer, c models.Classroom) {
		fmt.Fprintf(w, "%s (%s)\n", c.Name, c.Code)
		if c.Description != "" {
			fmt.Fprintln(w, c.Description)
		}
		if c.Lecturer.Name != "" {
			fmt.Fprintf(w, "Lecturer: %s\n", c.Lecturer.Name)
		}
		if len(c.Students) == 0 {
			fmt.Fprintln(w, "No students in this classroom.")
			return
		}
		fmt.Fprintln(w, "Students:")
		for _, s := range c.Students {
			fmt.Fprintf(w, "  %s  %s (%s)\n", s.ID, s.Name, s.Email)
		}
	})
	return nil
}

// NewClassroom creates a classroom. Lecturer only.
func (a *App) NewClassroom(ctx context.Context) error {
	if !a.allow(models.RoleLecturer) {
		return nil
	}

	name, err := getSimpleText(a.reader, "Classroom name", a.out)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Classroom code", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	form := forms.ClassroomForm{Name: name, Code: code, Description: description}
	if err := a.classrooms.Create(ctx, form); err != nil {
		fmt.Fprintf(a.out, "Could not create classroom: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Classroom created.")
	return nil
}

// AddStudents adds students to a classroom roster. Lecturer only.
func (a *App) AddStudents(ctx context.Context, classroomID string) error {
	return a.editRoster(ctx, classroomID, "add")
}

// RemoveStudents removes students from a classroom roster. Lecturer only.
func (a *App) RemoveStudents(ctx context.Context, classroomID string) error {
	return a.editRoster(ctx, classroomID, "remove")
}

func (a *App) editRoster(ctx context.Context, classroomID, action string) error {
	if !a.allow(models.RoleLecturer) {
		return nil
	}

	ids, err := getSimpleText(a.reader, "Student ids (space separated)", a.out)
	if err != nil {
		return err
	}
	form := forms.StudentsForm{ClassroomID: classroomID, StudentIDs: strings.Fields(ids)}

	if action == "add" {
		err = a.classrooms.AddStudents(ctx, form)
	} else {
		err = a.classrooms.RemoveStudents(ctx, form)
	}
	if err != nil {
		fmt.Fprintf(a.out, "Could not %s students: %s\n", action, err)
		return err
	}
	fmt.Fprintf(a.out, "Students %sed.\n", strings.TrimSuffix(action, "e"))
	return nil
}
