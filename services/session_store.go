// services/session_store.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"match-tracker/models"
	"match-tracker/utils"
)

const (
	// SessionKey holds the serialized {user, token, isAuthenticated} snapshot.
	SessionKey = "auth-storage"
	// TokenKey holds the raw bearer token read by the API transport.
	TokenKey = "auth_token"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// SessionStore is the process-wide auth session. It is written only by the
// login, register, logout and profile flows and read by every view.
type SessionStore struct {
	storage utils.Storage

	mu      sync.RWMutex
	session models.AuthSession
}

func NewSessionStore(storage utils.Storage) *SessionStore {
	return &SessionStore{storage: storage, session: models.AnonymousSession()}
}

// Load restores the persisted snapshot. A missing snapshot leaves the store anonymous.
func (s *SessionStore) Load(ctx context.Context) error {
	raw, ok, err := s.storage.Get(ctx, SessionKey)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return nil
	}

	var snap models.AuthSession
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		log.Printf("[SESSION] discarding unreadable snapshot: %v", err)
		return nil
	}
	if !snap.IsAuthenticated || snap.User == nil || snap.Token == "" {
		snap = models.AnonymousSession()
	}

	s.mu.Lock()
	s.session = snap
	s.mu.Unlock()
	return nil
}

// SetAuth stores the token for the transport and marks the session authenticated.
func (s *SessionStore) SetAuth(ctx context.Context, resp models.AuthResponse) error {
	if resp.Token == "" {
		return errors.New("auth response carries no token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, TokenKey, resp.Token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	next := models.AuthenticatedSession(resp.User, resp.Token)
	if err := s.persist(ctx, next); err != nil {
		if delErr := s.storage.Delete(ctx, TokenKey); delErr != nil {
			log.Printf("[SESSION] failed to roll back token: %v", delErr)
		}
		return err
	}
	s.session = next
	log.Printf("[SESSION] authenticated as %s", resp.User.Username)
	return nil
}

// UpdateUser shallow-merges patch into the current user. The token is untouched.
func (s *SessionStore) UpdateUser(ctx context.Context, patch models.UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.IsAuthenticated || s.session.User == nil {
		return ErrNotAuthenticated
	}

	user := *s.session.User
	patch.Apply(&user)
	next := s.session
	next.User = &user

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.session = next
	return nil
}

// Logout removes the persisted token and resets the session to anonymous.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(ctx, TokenKey); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	next := models.AnonymousSession()
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.session = next
	log.Println("[SESSION] logged out")
	return nil
}

// Session returns a copy of the current session.
func (s *SessionStore) Session() models.AuthSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.session
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAuthenticated
}

// Token reads the raw token from durable storage, the way the transport always has.
func (s *SessionStore) Token(ctx context.Context) (string, error) {
	token, _, err := s.storage.Get(ctx, TokenKey)
	return token, err
}

func (s *SessionStore) persist(ctx context.Context, snap models.AuthSession) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, SessionKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}
