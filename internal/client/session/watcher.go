package session

import (
	"context"
	"time"
)

// StartWatcher polls the state directory and reconciles the in-memory session
// with what is on disk, so that an external actor (another process sharing
// the state dir, or the user deleting it) is observed:
//
//   - both keys removed or invalid -> collapse to logged-out
//   - both keys present and valid  -> adopt that session
//
// It blocks until ctx is cancelled; run it in a goroutine.
func (s *Store) StartWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.syncFromDisk(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Store) syncFromDisk(ctx context.Context) {
	user, token, ok := s.readState(ctx)

	s.mu.RLock()
	haveUser, haveToken := s.user, s.token
	s.mu.RUnlock()

	if !ok {
		if haveUser != nil || haveToken != "" {
			s.log.Info(ctx, "session state changed externally, logging out")
			s.clear()
		}
		return
	}

	if haveToken == token && haveUser != nil && *haveUser == *user {
		return
	}

	s.log.Info(ctx, "adopting external session state", "user", user.Email)
	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
}
