package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeExec records every dispatched command so the REPL's routing can be
// checked without a real App behind it.
type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Login(ctx context.Context) error          { return f.record("login") }
func (f *fakeExec) Logout(ctx context.Context) error         { return f.record("logout") }
func (f *fakeExec) ForgotPassword(ctx context.Context) error { return f.record("forgot") }
func (f *fakeExec) ResetPassword(ctx context.Context) error  { return f.record("reset") }
func (f *fakeExec) WhoAmI(ctx context.Context) error         { return f.record("whoami") }

func (f *fakeExec) Classrooms(ctx context.Context) error { return f.record("classrooms") }
func (f *fakeExec) ClassroomDetails(ctx context.Context, id string) error {
	return f.record("classroom " + id)
}
func (f *fakeExec) NewClassroom(ctx context.Context) error { return f.record("newclass") }
func (f *fakeExec) AddStudents(ctx context.Context, classroomID string) error {
	return f.record("addstudents " + classroomID)
}
func (f *fakeExec) RemoveStudents(ctx context.Context, classroomID string) error {
	return f.record("rmstudents " + classroomID)
}

func (f *fakeExec) Assignments(ctx context.Context, classroomID string) error {
	return f.record(strings.TrimSpace("assignments " + classroomID))
}
func (f *fakeExec) AssignmentDetails(ctx context.Context, id string) error {
	return f.record("assignment " + id)
}
func (f *fakeExec) NewAssignment(ctx context.Context) error { return f.record("newassignment") }
func (f *fakeExec) Calendar(ctx context.Context, classroomID string) error {
	return f.record(strings.TrimSpace("calendar " + classroomID))
}
func (f *fakeExec) DownloadAttachment(ctx context.Context, assignmentID, index string) error {
	return f.record("getfile " + assignmentID + " " + index)
}

func (f *fakeExec) Submit(ctx context.Context, assignmentID string) error {
	return f.record("submit " + assignmentID)
}
func (f *fakeExec) Submissions(ctx context.Context, args []string) error {
	return f.record(strings.TrimSpace("submissions " + strings.Join(args, " ")))
}
func (f *fakeExec) DownloadSubmissionFile(ctx context.Context, filename string) error {
	return f.record("getsub " + filename)
}
func (f *fakeExec) Grading(ctx context.Context, assignmentID string) error {
	return f.record(strings.TrimSpace("grading " + assignmentID))
}
func (f *fakeExec) Grades(ctx context.Context) error { return f.record("grades") }

func (f *fakeExec) Users(ctx context.Context) error   { return f.record("users") }
func (f *fakeExec) NewUser(ctx context.Context) error { return f.record("newuser") }
func (f *fakeExec) Profile(ctx context.Context) error { return f.record("profile") }

func runScript(t *testing.T, f *fakeExec, script string) string {
	t.Helper()
	var out bytes.Buffer
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), f, func() string { return "" }, scanner, &out)
	return out.String()
}

func TestREPLDispatch(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	out := runScript(t, f, strings.Join([]string{
		"login",
		"whoami",
		"classrooms",
		"classroom c1",
		"assignments c1",
		"assignment a1",
		"getfile a1 0",
		"calendar c1",
		"agenda",
		"submit a1",
		"submissions a1 ungraded",
		"grading a1",
		"grades",
		"users",
		"profile",
		"logout",
		"exit",
	}, "\n"))

	assert.Equal(t, []string{
		"login",
		"whoami",
		"classrooms",
		"classroom c1",
		"assignments c1",
		"assignment a1",
		"getfile a1 0",
		"calendar c1",
		"calendar",
		"submit a1",
		"submissions a1 ungraded",
		"grading a1",
		"grades",
		"users",
		"profile",
		"logout",
	}, f.calls)
	assert.Contains(t, out, "Bye!")
}

func TestREPLUnknownCommand(t *testing.T) {
	f := &fakeExec{}
	out := runScript(t, f, "frobnicate\nexit\n")

	assert.Empty(t, f.calls)
	assert.Contains(t, out, "Unknown command: frobnicate")
}

func TestREPLUsageForMissingArgs(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	out := runScript(t, f, "classroom\ngetfile a1\nsubmit\ngetsub\nexit\n")

	assert.Empty(t, f.calls)
	assert.Contains(t, out, "Usage: classroom <id>")
	assert.Contains(t, out, "Usage: getfile <assignment-id> <index>")
	assert.Contains(t, out, "Usage: submit <assignment-id>")
	assert.Contains(t, out, "Usage: getsub <filename>")
}

func TestREPLHelpFollowsSession(t *testing.T) {
	out := runScript(t, &fakeExec{loggedIn: false}, "help\nexit\n")
	assert.Contains(t, out, helpLoggedOut)

	out = runScript(t, &fakeExec{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, out, "grading [assignment-id]")
}

func TestREPLBlankLinesIgnored(t *testing.T) {
	f := &fakeExec{}
	out := runScript(t, f, "\n\n   \nexit\n")

	assert.Empty(t, f.calls)
	assert.Contains(t, out, "Bye!")
}

func TestREPLStopsOnEOF(t *testing.T) {
	f := &fakeExec{}
	runScript(t, f, "classrooms\n")

	assert.Equal(t, []string{"classrooms"}, f.calls)
}

func TestREPLStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	scanner := bufio.NewScanner(strings.NewReader("classrooms\nexit\n"))
	f := &fakeExec{}
	runREPL(ctx, f, func() string { return "" }, scanner, &out)

	assert.Empty(t, f.calls)
}
