// workers/profile_sync_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"match-tracker/models"
	"match-tracker/services"
)

// ProfileFetcher is implemented by services.AuthService.
type ProfileFetcher interface {
	GetProfile(ctx context.Context) (*models.User, error)
}

// ProfileSyncWorker keeps the session's user in step with /auth/profile. A
// rejected token surfaces here as a 401, which the transport turns into a logout.
type ProfileSyncWorker struct {
	profiles ProfileFetcher
	session  *services.SessionStore
	interval time.Duration
}

func NewProfileSyncWorker(profiles ProfileFetcher, session *services.SessionStore, interval time.Duration) *ProfileSyncWorker {
	return &ProfileSyncWorker{
		profiles: profiles,
		session:  session,
		interval: interval,
	}
}

func (w *ProfileSyncWorker) Start(ctx context.Context) {
	log.Printf("🔁 Starting profile sync worker (every %s)", w.interval)
	go w.run(ctx)
}

func (w *ProfileSyncWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.SyncOnce(ctx); err != nil {
				log.Printf("[SYNC] profile sync failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Profile sync worker stopped")
			return
		}
	}
}

// SyncOnce is a no-op while anonymous.
func (w *ProfileSyncWorker) SyncOnce(ctx context.Context) error {
	if !w.session.IsAuthenticated() {
		return nil
	}

	current := w.session.Session().User
	if current == nil {
		return nil
	}

	u, err := w.profiles.GetProfile(ctx)
	if err != nil {
		return err
	}
	// the session may have switched users while the request was in flight
	if u.ID != current.ID {
		log.Printf("[SYNC] profile %s does not belong to session user %s, skipping", u.ID, current.ID)
		return nil
	}

	patch := models.UserPatch{
		Username: &u.Username,
		Email:    &u.Email,
		Name:     &u.Name,
		IsActive: &u.IsActive,
	}
	if err := w.session.UpdateUser(ctx, patch); err != nil {
		return err
	}
	log.Printf("[SYNC] profile refreshed for %s", u.Username)
	return nil
}
