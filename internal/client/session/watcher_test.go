package session

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuzmenko/classmate/internal/client/models"
	"github.com/vkuzmenko/classmate/internal/logging"
)

func TestSyncFromDisk_ExternalRemovalCollapsesSession(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(dir, logging.NewTextLogger(io.Discard, slog.LevelError))

	require.NoError(t, s.Login(ctx, testUser(), futureToken(t)))

	// another process clears the state dir
	require.NoError(t, os.Remove(filepath.Join(dir, userFile)))
	require.NoError(t, os.Remove(filepath.Join(dir, tokenFile)))

	s.syncFromDisk(ctx)
	assert.False(t, s.Authenticated())
}

func TestSyncFromDisk_PartialExternalStateCollapsesSession(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(dir, logging.NewTextLogger(io.Discard, slog.LevelError))

	require.NoError(t, s.Login(ctx, testUser(), futureToken(t)))
	require.NoError(t, os.Remove(filepath.Join(dir, userFile)))

	s.syncFromDisk(ctx)
	assert.False(t, s.Authenticated())
}

func TestSyncFromDisk_AdoptsValidExternalSession(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(dir, logging.NewTextLogger(io.Discard, slog.LevelError))

	require.NoError(t, s.Login(ctx, testUser(), futureToken(t)))

	other := models.User{ID: "u2", Name: "Bob", Email: "bob@example.org", Role: models.RoleLecturer}
	data, err := json.Marshal(other)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, userFile), data, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, tokenFile), []byte(futureToken(t)), 0o600))

	s.syncFromDisk(ctx)

	user, _, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "Bob", user.Name)
	assert.Equal(t, models.RoleLecturer, user.Role)
}

func TestSyncFromDisk_NoChangeIsNoOp(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(dir, logging.NewTextLogger(io.Discard, slog.LevelError))

	require.NoError(t, s.Login(ctx, testUser(), futureToken(t)))
	before, _, _ := s.Current()

	s.syncFromDisk(ctx)

	after, _, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, before, after)
}
