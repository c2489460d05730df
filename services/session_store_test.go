package services

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"match-tracker/models"
	"match-tracker/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*SessionStore, *utils.FileStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storage.json")
	storage, err := utils.NewFileStorage(path)
	require.NoError(t, err)
	return NewSessionStore(storage), storage, path
}

var demoAuth = models.AuthResponse{
	Token: "tok-1",
	User:  models.User{ID: "u1", Username: "demo", Email: "demo@example.com", IsActive: true},
}

func TestSessionStore_startsAnonymous(t *testing.T) {
	s, _, _ := newStore(t)
	require.NoError(t, s.Load(context.Background()))

	sess := s.Session()
	assert.False(t, sess.IsAuthenticated)
	assert.Nil(t, sess.User)
	assert.Empty(t, sess.Token)
}

func TestSessionStore_setAuthPersists(t *testing.T) {
	ctx := context.Background()
	s, storage, path := newStore(t)

	require.NoError(t, s.SetAuth(ctx, demoAuth))
	assert.True(t, s.IsAuthenticated())

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	raw, ok, err := storage.Get(ctx, SessionKey)
	require.NoError(t, err)
	require.True(t, ok)
	var snap models.AuthSession
	require.NoError(t, json.Unmarshal([]byte(raw), &snap))
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, "demo", snap.User.Username)

	// a restart restores the same session
	reopened, err := utils.NewFileStorage(path)
	require.NoError(t, err)
	restored := NewSessionStore(reopened)
	require.NoError(t, restored.Load(ctx))
	assert.Equal(t, s.Session(), restored.Session())
}

func TestSessionStore_setAuthRejectsEmptyToken(t *testing.T) {
	s, _, _ := newStore(t)
	err := s.SetAuth(context.Background(), models.AuthResponse{User: demoAuth.User})
	assert.Error(t, err)
	assert.False(t, s.IsAuthenticated())
}

func TestSessionStore_updateUser(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)

	name := "New Name"
	err := s.UpdateUser(ctx, models.UserPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, s.SetAuth(ctx, demoAuth))
	require.NoError(t, s.UpdateUser(ctx, models.UserPatch{Name: &name}))

	sess := s.Session()
	assert.Equal(t, "New Name", sess.User.Name)
	assert.Equal(t, "demo", sess.User.Username)
	assert.Equal(t, "tok-1", sess.Token)
}

func TestSessionStore_sessionIsACopy(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)
	require.NoError(t, s.SetAuth(ctx, demoAuth))

	sess := s.Session()
	sess.User.Username = "mutated"
	assert.Equal(t, "demo", s.Session().User.Username)
}

func TestSessionStore_logout(t *testing.T) {
	ctx := context.Background()
	s, storage, _ := newStore(t)
	require.NoError(t, s.SetAuth(ctx, demoAuth))

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.Session().User)

	_, ok, err := storage.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	// logging out twice is harmless
	require.NoError(t, s.Logout(ctx))
}

func TestSessionStore_loadDiscardsBadSnapshot(t *testing.T) {
	ctx := context.Background()
	s, storage, _ := newStore(t)

	require.NoError(t, storage.Set(ctx, SessionKey, "{not json"))
	require.NoError(t, s.Load(ctx))
	assert.False(t, s.IsAuthenticated())

	require.NoError(t, storage.Set(ctx, SessionKey, `{"user":null,"token":"x","isAuthenticated":true}`))
	require.NoError(t, s.Load(ctx))
	assert.False(t, s.IsAuthenticated())
}

// snapshotFailingStorage accepts the token but refuses to save the session snapshot.
type snapshotFailingStorage struct {
	*utils.FileStorage
}

func (s snapshotFailingStorage) Set(ctx context.Context, key, value string) error {
	if key == SessionKey {
		return errors.New("disk full")
	}
	return s.FileStorage.Set(ctx, key, value)
}

func TestSessionStore_setAuthRollsBackTokenWhenSnapshotFails(t *testing.T) {
	ctx := context.Background()
	_, storage, _ := newStore(t)
	s := NewSessionStore(snapshotFailingStorage{storage})

	err := s.SetAuth(ctx, demoAuth)
	assert.ErrorContains(t, err, "disk full")
	assert.False(t, s.IsAuthenticated())

	_, ok, err := storage.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}
