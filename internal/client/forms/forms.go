// Package forms performs client-side validation of user input. A form that
// fails validation never reaches the network; the resulting message is shown
// inline by the caller.
package forms

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report the json field name, not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return v
}

// LoginForm covers the credentials screen.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotForm starts the password-reset flow.
type ForgotForm struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetForm completes the password-reset flow with the emailed code.
type ResetForm struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
	Confirm     string `json:"confirm" validate:"required,eqfield=NewPassword"`
}

// AssignmentForm creates an assignment inside a classroom. Attachments are
// optional local file paths; each must exist.
type AssignmentForm struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	DueDate     string   `json:"dueDate" validate:"required,datetime=2006-01-02"`
	ClassroomID string   `json:"classroomId" validate:"required"`
	Attachments []string `json:"attachments" validate:"max=5,dive,file"`
}

// MaxSubmissionFiles is the local ceiling on files per submission.
const MaxSubmissionFiles = 5

// SubmissionForm submits work for an assignment: at least one file, at most
// MaxSubmissionFiles, every path must point at an existing file.
type SubmissionForm struct {
	AssignmentID string   `json:"assignmentId" validate:"required"`
	Comments     string   `json:"comments"`
	Files        []string `json:"files" validate:"min=1,max=5,dive,file"`
}

// GradeForm records a grade in the closed range 0..100 with verbatim
// free-text feedback.
type GradeForm struct {
	SubmissionID string `json:"submissionId" validate:"required"`
	Grade        int    `json:"grade" validate:"min=0,max=100"`
	Feedback     string `json:"feedback"`
}

// ClassroomForm creates a classroom.
type ClassroomForm struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
}

// StudentsForm adds or removes classroom students by id.
type StudentsForm struct {
	ClassroomID string   `json:"classroomId" validate:"required"`
	StudentIDs  []string `json:"studentIds" validate:"min=1,dive,required"`
}

// UserForm creates a user account. StudentID is mandatory for students only.
type UserForm struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,oneof=student lecturer admin"`
	StudentID string `json:"studentId" validate:"required_if=Role student"`
}

// ProfileForm updates the current user's display name and optionally the
// password.
type ProfileForm struct {
	Name        string `json:"name" validate:"required"`
	NewPassword string `json:"newPassword" validate:"omitempty,min=8"`
}

// Error is a validation failure suitable for inline display.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validate checks a form and returns the first violation as a *Error.
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !ok(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &Error{Field: fe.Field(), Message: message(fe)}
}

func ok(err error, target *validator.ValidationErrors) bool {
	v, is := err.(validator.ValidationErrors)
	if is {
		*target = v
	}
	return is
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "email":
		return "a valid email address is required"
	case "len", "numeric":
		if field == "code" {
			return "reset code should be 6 digits"
		}
		return fmt.Sprintf("%s must be %s characters", field, fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "datetime":
		return fmt.Sprintf("%s must be a date like 2024-12-31", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "file":
		return fmt.Sprintf("%v: no such file", fe.Value())
	case "min":
		if fe.Kind() == reflect.Slice {
			if field == "studentIds" {
				return "at least one student id is required"
			}
			return "at least one file is required"
		}
		if fe.Kind() == reflect.Int {
			return fmt.Sprintf("%s must be between %s and 100", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("no more than %s files are allowed", fe.Param())
		}
		return fmt.Sprintf("%s must be between 0 and %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}
