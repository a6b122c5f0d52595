// Package backend defines the contract with the miniclub API server and its
// HTTP implementation. The rest of the client only ever sees the Client
// interface and the error taxonomy from errors.go.
package backend

import (
	"context"

	"github.com/avolkov/miniclub/internal/client/models"
)

// ExchangeResult is the outcome of presenting a host identity payload to the
// server. Exactly one of the two branches is populated: either the identity
// is known and a credential is issued, or the server asks for registration
// and returns candidate identity data.
type ExchangeResult struct {
	Credential        string
	NeedsRegistration bool
	Pending           *models.PendingIdentity
}

// RegistrationForm is the payload of a registration request. HostPayload is
// the opaque host identity payload, set when registration follows a silent
// sign-in that resolved to "needs registration", empty otherwise.
type RegistrationForm struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	HostPayload     string `json:"initData,omitempty"`
}

// Client is the network boundary of the client application.
//
// All methods honor context cancellation. Failures are reported through the
// taxonomy in errors.go: ErrNetwork, ErrUnauthorized, ErrInvalidCredentials,
// ErrConflict, *ServerError, *ValidationError.
type Client interface {
	// ExchangeHostIdentity trades a host identity payload for a credential,
	// or reports that the identity has no server account yet.
	ExchangeHostIdentity(ctx context.Context, payload string) (*ExchangeResult, error)

	// PasswordLogin exchanges email/password for a credential.
	PasswordLogin(ctx context.Context, email, password string) (string, error)

	// Register creates an account and returns the issued credential.
	Register(ctx context.Context, form RegistrationForm) (string, error)

	// DevLogin obtains a credential without any identity proof. Only ever
	// called when the client runs in dev mode against a dev server.
	DevLogin(ctx context.Context) (string, error)

	// FetchProfile loads the profile the credential belongs to.
	FetchProfile(ctx context.Context, credential string) (*models.UserProfile, error)

	// UpdateProfile applies a draft and returns the resulting full profile.
	UpdateProfile(ctx context.Context, credential string, draft models.ProfileDraft) (*models.UserProfile, error)

	// ListActivities returns the schedule with the user's enrollment flags.
	ListActivities(ctx context.Context, credential string) ([]models.Activity, error)

	// EnrollActivity signs the user up for an activity.
	EnrollActivity(ctx context.Context, credential string, activityID int64) error

	// CancelActivity cancels an enrollment.
	CancelActivity(ctx context.Context, credential string, activityID int64) error

	// MyAchievements returns the achievements the user has unlocked.
	MyAchievements(ctx context.Context, credential string) ([]models.Achievement, error)

	// AllAchievements returns the full catalogue, unlocked entries first.
	AllAchievements(ctx context.Context, credential string) ([]models.Achievement, error)
}
