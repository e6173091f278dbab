package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Classrooms(ctx context.Context) error
	ClassroomDetails(ctx context.Context, id string) error
	NewClassroom(ctx context.Context) error
	AddStudents(ctx context.Context, classroomID string) error
	RemoveStudents(ctx context.Context, classroomID string) error

	Assignments(ctx context.Context, classroomID string) error
	AssignmentDetails(ctx context.Context, id string) error
	NewAssignment(ctx context.Context) error
	DownloadAttachment(ctx context.Context, assignmentID, index string) error
	Calendar(ctx context.Context, classroomID string) error

	Submit(ctx context.Context, assignmentID string) error
	Submissions(ctx context.Context, args []string) error
	DownloadSubmissionFile(ctx context.Context, filename string) error
	Grading(ctx context.Context, assignmentID string) error
	Grades(ctx context.Context) error

	Users(ctx context.Context) error
	NewUser(ctx context.Context) error
	Profile(ctx context.Context) error
}

const helpLoggedOut = "Available commands: login, forgot, reset, help, exit"

const helpLoggedIn = `Available commands:
  whoami                         show the current session
  classrooms                     list classrooms
  classroom <id>                 classroom details and roster
  newclass                       create a classroom (lecturer)
  addstudents <classroom-id>     add students to a roster (lecturer)
  rmstudents <classroom-id>      remove students from a roster (lecturer)
  assignments [classroom-id]     list assignments
  assignment <id>                assignment details
  newassignment                  create an assignment (lecturer)
  calendar [classroom-id]        assignments grouped by due date
  getfile <assignment-id> <n>    download attachment n of an assignment
  submit <assignment-id>         submit work (student)
  submissions [assignment-id] [graded|ungraded]
  getsub <filename>              download a submitted file
  grading [assignment-id]        grade submissions (lecturer)
  grades                         my grades (student)
  users                          list accounts (admin)
  newuser                        create an account (lecturer)
  profile                        update name or password
  logout, exit`

// runREPL starts a read–eval–print loop for the classmate CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, context cancellation, or
// when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers render
// their own failure states. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, w io.Writer) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fmt.Fprintf(w, "classmate %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		arg := func(i int) string {
			if i < len(args) {
				return args[i]
			}
			return ""
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}

		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "forgot":
			_ = a.ForgotPassword(ctx)
		case "reset":
			_ = a.ResetPassword(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)

		case "classrooms":
			_ = a.Classrooms(ctx)
		case "classroom":
			if arg(0) == "" {
				fmt.Fprintln(w, "Usage: classroom <id>")
				continue
			}
			_ = a.ClassroomDetails(ctx, arg(0))
		case "newclass":
			_ = a.NewClassroom(ctx)
		case "addstudents":
			if arg(0) == "" {
				fmt.Fprintln(w, "Usage: addstudents <classroom-id>")
				continue
			}
			_ = a.AddStudents(ctx, arg(0))
		case "rmstudents":
			if arg(0) == "" {
				fmt.Fprintln(w, "Usage: rmstudents <classroom-id>")
				continue
			}
			_ = a.RemoveStudents(ctx, arg(0))

		case "assignments":
			_ = a.Assignments(ctx, arg(0))
		case "assignment":
			if arg(0) == "" {
				fmt.Fprintln(w, "Usage: assignment <id>")
				continue
			}
			_ = a.AssignmentDetails(ctx, arg(0))
		case "newassignment":
			_ = a.NewAssignment(ctx)
		case "calendar", "agenda":
			_ = a.Calendar(ctx, arg(0))
		case "getfile", "download":
			if arg(0) == "" || arg(1) == "" {
				fmt.Fprintln(w, "Usage: getfile <assignment-id> <index>")
				continue
			}
			_ = a.DownloadAttachment(ctx, arg(0), arg(1))

		case "submit":
			if arg(0) == "" {
				fmt.Fprintln(w, "Usage: submit <assignment-id>")
				continue
			}
			_ = a.Submit(ctx, arg(0))
		case "submissions":
			_ = a.Submissions(ctx, args)
		case "getsub":
			if arg(0) == "" {
				fmt.Fprintln(w, "Usage: getsub <filename>")
				continue
			}
			_ = a.DownloadSubmissionFile(ctx, arg(0))
		case "grading", "grade":
			_ = a.Grading(ctx, arg(0))
		case "grades":
			_ = a.Grades(ctx)

		case "users":
			_ = a.Users(ctx)
		case "newuser", "register":
			_ = a.NewUser(ctx)
		case "profile":
			_ = a.Profile(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
