// Package session holds the single current session of the client: the bearer
// credential, the cached user profile, and the pending host identity, plus
// the state derived from them.
//
// All mutation goes through one mutex, so no interleaving of coordinator
// operations can pair a credential of one identity with a profile of another.
package session

import (
	"context"
	"sync"

	"github.com/avolkov/miniclub/internal/client/models"
	sessionrepo "github.com/avolkov/miniclub/internal/client/repositories/session"
)

// credentialKey is the fixed durable-storage key the bearer token lives under.
const credentialKey = "credential"

// Snapshot is a point-in-time copy of the session visible to callers.
type Snapshot struct {
	Credential string
	Profile    *models.UserProfile
}

// Store owns the session. The credential is persisted through repo on every
// change so it survives process restarts; profile and pending identity are
// memory-only.
type Store struct {
	mu   sync.Mutex
	repo sessionrepo.Repository

	credential string
	profile    *models.UserProfile
	pending    *models.PendingIdentity

	// profileErr is the last profile-fetch failure observed while holding
	// the current credential. Cleared whenever a profile loads or the
	// credential changes.
	profileErr error
}

func NewStore(repo sessionrepo.Repository) *Store {
	return &Store{repo: repo}
}

// Restore loads the persisted credential, if any. Called once at boot.
func (s *Store) Restore(ctx context.Context) error {
	value, err := s.repo.Get(ctx, credentialKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = string(value)
	return nil
}

// Get returns the current snapshot. Never fails.
func (s *Store) Get() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Credential: s.credential, Profile: s.profile}
}

// HasCredential is the cheap gate used to skip refreshes while signed out.
func (s *Store) HasCredential() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential != ""
}

// SetCredential unconditionally replaces the credential and persists it.
func (s *Store) SetCredential(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyCredential(token)
	return s.repo.Set(ctx, credentialKey, []byte(token))
}

// CommitCredential replaces the credential only if no concurrent flow has
// stored a different one since the caller observed prev. Returns true when
// the write was applied. This is the tie-break between racing sign-in flows:
// the first successful backend response wins, later commits are skipped
// because the two flows can represent different identities.
func (s *Store) CommitCredential(ctx context.Context, prev, next string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.credential != prev && s.credential != next {
		return false, nil
	}

	s.applyCredential(next)
	return true, s.repo.Set(ctx, credentialKey, []byte(next))
}

// applyCredential sets the token and, when the identity may have changed,
// drops the cached profile so a profile of the old identity can never sit
// next to the new credential. Caller holds s.mu.
func (s *Store) applyCredential(token string) {
	if s.credential != token {
		s.profile = nil
		s.profileErr = nil
	}
	s.credential = token
}

// SetProfile replaces the profile wholesale, but only when credential still
// matches the one the profile was fetched with. Returns true when applied.
func (s *Store) SetProfile(credential string, profile *models.UserProfile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.credential != credential {
		return false
	}

	s.profile = profile
	s.profileErr = nil
	return true
}

// SetProfileError records a profile-fetch failure for the given credential.
// The credential itself stays valid; the derived state reports Failed until
// a later fetch succeeds.
func (s *Store) SetProfileError(credential string, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.credential != credential {
		return false
	}

	s.profileErr = err
	return true
}

// SetPending stores the host identity awaiting registration.
func (s *Store) SetPending(p *models.PendingIdentity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = p
}

// Pending returns the stored pending identity, or nil.
func (s *Store) Pending() *models.PendingIdentity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// ClearPending discards the pending identity (registration done, or the user
// navigated away).
func (s *Store) ClearPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// Clear wipes the whole session, durable storage included. Idempotent.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credential = ""
	s.profile = nil
	s.pending = nil
	s.profileErr = nil

	return s.repo.Clear(ctx)
}

// Status derives the current SessionState.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.credential != "" && s.profile != nil:
		return Status{State: Authenticated}
	case s.credential != "":
		return Status{State: Failed, Reason: s.profileErr}
	case s.pending != nil:
		return Status{State: PendingRegistration}
	default:
		return Status{State: Anonymous}
	}
}
