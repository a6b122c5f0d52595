// Package services contains application services for the miniclub client:
// profile editing, the activity schedule, and the achievement catalogue.
// Each service reads the current credential from the session store and
// treats an Unauthorized reply as an implicit sign-out.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/avolkov/miniclub/internal/client/backend"
	"github.com/avolkov/miniclub/internal/client/models"
	"github.com/avolkov/miniclub/internal/client/session"
)

// defaultTimeout bounds service calls the same way the coordinator bounds
// auth calls.
const defaultTimeout = 15 * time.Second

// ProfileService applies profile edits.
//
// Edits are collected into a models.ProfileDraft by the screens; the draft
// never merges into the cached profile locally. Only the server's response
// replaces the cached profile, wholesale.
type ProfileService interface {
	Update(ctx context.Context, draft models.ProfileDraft) (*models.UserProfile, error)
}

type profileService struct {
	client  backend.Client
	store   *session.Store
	timeout time.Duration
}

func NewProfileService(client backend.Client, store *session.Store) ProfileService {
	return &profileService{client: client, store: store, timeout: defaultTimeout}
}

func (s *profileService) Update(ctx context.Context, draft models.ProfileDraft) (*models.UserProfile, error) {
	if draft.Empty() {
		return s.store.Get().Profile, nil
	}

	credential, err := currentCredential(s.store)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	profile, err := s.client.UpdateProfile(callCtx, credential, draft)
	if err != nil {
		return nil, signOutOnUnauthorized(ctx, s.store, err)
	}

	s.store.SetProfile(credential, profile)
	return profile, nil
}

// currentCredential returns the stored credential or ErrUnauthorized when
// the user is signed out.
func currentCredential(store *session.Store) (string, error) {
	snap := store.Get()
	if snap.Credential == "" {
		return "", backend.ErrUnauthorized
	}
	return snap.Credential, nil
}

// signOutOnUnauthorized clears the session when the server rejected the
// credential, then passes the error through unchanged.
func signOutOnUnauthorized(ctx context.Context, store *session.Store, err error) error {
	if errors.Is(err, backend.ErrUnauthorized) {
		_ = store.Clear(ctx)
	}
	return err
}
