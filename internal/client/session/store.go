// Package session owns the client's authenticated identity: the current user
// and the bearer token. State is persisted as exactly two durable keys in a
// state directory (a serialized user object and the raw token string) and is
// loaded once at startup. An external change to either key is adopted or
// collapses the session, see Store.StartWatcher.
package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/vkuzmenko/classmate/internal/client/models"
	"github.com/vkuzmenko/classmate/internal/common"
	"github.com/vkuzmenko/classmate/internal/logging"
)

const (
	userFile  = "user.json"
	tokenFile = "token"
)

// Store holds the current session. All methods are safe for concurrent use.
//
// Invariant: a user is present if and only if a token is present. Any
// operation that would install an expired token logs the session out
// instead, so no half-authenticated state survives.
type Store struct {
	mu    sync.RWMutex
	dir   string
	log   logging.Logger
	user  *models.User
	token string
}

func NewStore(dir string, log logging.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// Restore loads persisted session state from the state directory. Partial,
// unreadable, or expired state is discarded and removed. Restore never
// fails: the worst outcome is starting logged out.
func (s *Store) Restore(ctx context.Context) {
	user, token, ok := s.readState(ctx)
	if !ok {
		s.Logout(ctx)
		return
	}
	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
}

// Login validates and installs a new session, persisting it to the state
// directory. An empty token or a user with neither name nor email is
// rejected. Installing an already-expired token immediately logs out and
// returns common.ErrTokenExpired.
func (s *Store) Login(ctx context.Context, user models.User, token string) error {
	if token == "" || (user.Name == "" && user.Email == "") {
		return common.ErrEmptySession
	}
	if TokenExpired(token) {
		s.Logout(ctx)
		return common.ErrTokenExpired
	}

	if err := s.writeState(user, token); err != nil {
		// The in-memory session is still usable; it just will not survive
		// a restart.
		s.log.Warn(ctx, "session state not persisted", "error", err)
	}

	s.mu.Lock()
	u := user
	s.user = &u
	s.token = token
	s.mu.Unlock()
	return nil
}

// Logout clears durable and in-memory state. Storage errors are logged and
// ignored: the in-memory clear always succeeds.
func (s *Store) Logout(ctx context.Context) {
	for _, name := range []string{userFile, tokenFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			s.log.Warn(ctx, "session key not removed", "key", name, "error", err)
		}
	}
	s.clear()
}

// Authenticated reports whether a user and a non-expired token are present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	user, token := s.user, s.token
	s.mu.RUnlock()

	if user == nil || token == "" {
		return false
	}
	if TokenExpired(token) {
		// passive invariant enforcement
		s.Logout(context.Background())
		return false
	}
	return true
}

// Current returns a snapshot of the session. ok is false when logged out.
func (s *Store) Current() (user models.User, token string, ok bool) {
	if !s.Authenticated() {
		return models.User{}, "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, "", false
	}
	return *s.user, s.token, true
}

// Token implements the api.TokenSource contract. It returns an empty string
// when logged out or expired.
func (s *Store) Token() string {
	_, token, _ := s.Current()
	return token
}

func (s *Store) clear() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
}

func (s *Store) writeState(user models.User, token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), data, 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600)
}

// readState reads both durable keys. ok is true only when both are present,
// the user parses, and the token has not expired.
func (s *Store) readState(ctx context.Context) (*models.User, string, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil, "", false
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.log.Warn(ctx, "stored user unreadable", "error", err)
		return nil, "", false
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return nil, "", false
	}
	token := string(raw)
	if TokenExpired(token) {
		return nil, "", false
	}
	return &user, token, true
}
