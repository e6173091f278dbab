package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vkuzmenko/classmate/internal/client/api"
	"github.com/vkuzmenko/classmate/internal/client/config"
	"github.com/vkuzmenko/classmate/internal/client/guard"
	"github.com/vkuzmenko/classmate/internal/client/models"
	"github.com/vkuzmenko/classmate/internal/client/services"
	"github.com/vkuzmenko/classmate/internal/client/session"
	"github.com/vkuzmenko/classmate/internal/logging"
)

type App struct {
	config      *config.Config
	log         logging.Logger
	session     *session.Store
	auth        services.AuthService
	assignments services.AssignmentService
	submissions services.SubmissionService
	classrooms  services.ClassroomService
	users       services.UserService
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(cfg *config.Config, log logging.Logger) *App {
	store := session.NewStore(cfg.StateDir, log)
	apiClient := api.New(cfg.BaseURL, cfg.RequestTimeout, store, log)

	return &App{
		config:      cfg,
		log:         log,
		session:     store,
		auth:        services.NewAuthService(apiClient, log),
		assignments: services.NewAssignmentService(apiClient),
		submissions: services.NewSubmissionService(apiClient),
		classrooms:  services.NewClassroomService(apiClient),
		users:       services.NewUserService(apiClient),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
}

// Run restores the persisted session, starts the background session watcher,
// and blocks in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	a.session.Restore(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.session.StartWatcher(ctx, a.config.WatchInterval)

	fmt.Fprintln(a.out, "classmate CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin), a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) getStatus() string {
	user, _, ok := a.session.Current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s %s)", user.Name, user.Role)
}

// allow resolves the route guard for a command. The failure paths render
// here so that commands receive a plain pass/fail and never re-derive roles
// themselves.
func (a *App) allow(required models.Role) bool {
	user, _, ok := a.session.Current()
	res := guard.Check(guard.Session{Authenticated: ok, Role: user.Role}, required)

	switch res.Decision {
	case guard.Redirect:
		fmt.Fprintln(a.out, "Please log in first.")
		return false
	case guard.Denied:
		fmt.Fprintln(a.out, "Access denied.")
		fmt.Fprintf(a.out, "Required role: %s\n", res.Required)
		fmt.Fprintf(a.out, "Your role: %s\n", res.Actual)
		return false
	}
	return true
}
