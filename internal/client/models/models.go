// Package models defines the shapes this client assumes for the classroom
// backend's JSON API. The backend is the single source of truth; everything
// here is a disposable, per-view copy.
package models

import "time"

// Role is the access level attached to a user account.
type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a server-provided role string onto a known Role.
// Unrecognized values degrade to the least-privileged role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleLecturer, RoleAdmin:
		return Role(s), true
	}
	return RoleStudent, false
}

type User struct {
	ID        string `json:"id" mapstructure:"id"`
	Name      string `json:"name" mapstructure:"name"`
	Email     string `json:"email" mapstructure:"email"`
	Role      Role   `json:"role" mapstructure:"role"`
	StudentID string `json:"studentId,omitempty" mapstructure:"studentId"`
}

type Classroom struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Lecturer    User   `json:"lecturer"`
	Students    []User `json:"students"`
}

// FileRef is an opaque handle to a server-held file. The client never
// inspects file bytes; it only requests a download stream by filename,
// path, or positional index.
type FileRef struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Path     string `json:"path,omitempty"`
}

type Assignment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	ClassroomID string    `json:"classroomId"`
	Attachments []FileRef `json:"attachments"`
}

// Submission is created once per student per assignment. Grade and Feedback
// are set only by the grading action. IsLate is server-computed and taken
// as authoritative; the client never recomputes it from the due date.
type Submission struct {
	ID          string     `json:"id"`
	Student     User       `json:"student"`
	Assignment  Assignment `json:"assignment"`
	Files       []FileRef  `json:"files"`
	Comments    string     `json:"comments"`
	SubmittedAt time.Time  `json:"submittedAt"`
	IsLate      bool       `json:"isLate"`
	Grade       *int       `json:"grade,omitempty"`
	Feedback    string     `json:"feedback,omitempty"`
	GradedBy    *User      `json:"gradedBy,omitempty"`
}

// Graded reports whether a grade has been recorded for the submission.
func (s *Submission) Graded() bool {
	return s.Grade != nil
}
