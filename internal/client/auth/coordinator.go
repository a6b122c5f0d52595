// Package auth implements the authentication state machine of the client.
//
// The Coordinator decides, from the host identity payload, server responses,
// and the locally persisted credential, what the user's authentication state
// is. Every operation resolves to exactly one Result; expected failures are
// reported as values, and the session store is kept consistent with whichever
// outcome was reached.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avolkov/miniclub/internal/client/backend"
	"github.com/avolkov/miniclub/internal/client/host"
	"github.com/avolkov/miniclub/internal/client/models"
	"github.com/avolkov/miniclub/internal/client/session"
	"github.com/avolkov/miniclub/internal/logging"
)

// DefaultTimeout bounds every backend call made by the coordinator. Expiry
// surfaces as a network-class failure, never as a hang.
const DefaultTimeout = 15 * time.Second

// opKind identifies one of the coordinator's operations for the in-flight
// gate. Overlapping calls of the same kind are rejected, not queued, so a
// double-submitted form can never trigger two credential exchanges.
type opKind int

const (
	opSilent opKind = iota
	opPassword
	opRegister
	opRefresh
	opDev
)

type Coordinator struct {
	store   *session.Store
	client  backend.Client
	host    host.Probe
	log     logging.Logger
	timeout time.Duration

	mu       sync.Mutex
	inFlight map[opKind]bool
}

func NewCoordinator(store *session.Store, client backend.Client, probe host.Probe, log logging.Logger, timeout time.Duration) *Coordinator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Coordinator{
		store:    store,
		client:   client,
		host:     probe,
		log:      log,
		timeout:  timeout,
		inFlight: make(map[opKind]bool),
	}
}

// begin marks kind as in flight. Returns false when a call of the same kind
// is already running.
func (c *Coordinator) begin(kind opKind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[kind] {
		return false
	}
	c.inFlight[kind] = true
	return true
}

func (c *Coordinator) end(kind opKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, kind)
}

func (c *Coordinator) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// RestoreSession loads the persisted credential into the store. A credential
// that is provably expired (a JWT with a past exp) is discarded right away;
// anything else is kept and left to the Unauthorized path on first use.
// Called once at boot, before any other operation.
func (c *Coordinator) RestoreSession(ctx context.Context) error {
	if err := c.store.Restore(ctx); err != nil {
		return err
	}

	snap := c.store.Get()
	if snap.Credential != "" && credentialExpired(snap.Credential) {
		c.log.Info(ctx, "persisted credential expired, discarding")
		return c.store.Clear(ctx)
	}
	return nil
}

// AttemptSilentAuth establishes a session from the host-supplied identity
// payload. Outcomes: KindNoHostIdentity (not inside the host), KindOK
// (signed in, profile loaded), KindNeedsRegistration (identity unknown to
// the server), KindFailed, KindBusy.
func (c *Coordinator) AttemptSilentAuth(ctx context.Context) Result {
	if !c.begin(opSilent) {
		return busy()
	}
	defer c.end(opSilent)

	payload, present := c.host.IdentityPayload()
	if !present {
		return Result{Kind: KindNoHostIdentity}
	}

	prev := c.store.Get().Credential

	callCtx, cancel := c.callCtx(ctx)
	defer cancel()

	exchange, err := c.client.ExchangeHostIdentity(callCtx, payload)
	if err != nil {
		c.log.Warn(ctx, "host identity exchange failed", "err", err)
		return failed(err)
	}

	if exchange.NeedsRegistration {
		pending := exchange.Pending
		if pending == nil {
			pending = &models.PendingIdentity{}
		}
		pending.Payload = payload
		c.store.SetPending(pending)
		return needsRegistration(pending)
	}

	return c.completeSignIn(ctx, prev, exchange.Credential)
}

// SignInWithPassword exchanges email/password for a session. Fields are
// assumed syntactically valid; that check belongs to the screens. On any
// backend failure the store is left untouched.
func (c *Coordinator) SignInWithPassword(ctx context.Context, email, password string) Result {
	if !c.begin(opPassword) {
		return busy()
	}
	defer c.end(opPassword)

	prev := c.store.Get().Credential

	callCtx, cancel := c.callCtx(ctx)
	defer cancel()

	credential, err := c.client.PasswordLogin(callCtx, email, password)
	if err != nil {
		c.log.Warn(ctx, "password sign-in failed", "err", err)
		return failed(err)
	}

	return c.completeSignIn(ctx, prev, credential)
}

// Register creates an account. When a pending host identity is held, its
// opaque payload rides along so the server links the new account to it.
// On failure nothing is mutated and the pending identity survives for retry.
func (c *Coordinator) Register(ctx context.Context, form backend.RegistrationForm) Result {
	if !c.begin(opRegister) {
		return busy()
	}
	defer c.end(opRegister)

	if pending := c.store.Pending(); pending != nil {
		form.HostPayload = pending.Payload
	}

	prev := c.store.Get().Credential

	callCtx, cancel := c.callCtx(ctx)
	defer cancel()

	credential, err := c.client.Register(callCtx, form)
	if err != nil {
		c.log.Warn(ctx, "registration failed", "err", err)
		return failed(err)
	}

	return c.completeSignIn(ctx, prev, credential)
}

// DevSignIn obtains a session from the dev endpoint. Only reachable when the
// client is configured for dev mode.
func (c *Coordinator) DevSignIn(ctx context.Context) Result {
	if !c.begin(opDev) {
		return busy()
	}
	defer c.end(opDev)

	prev := c.store.Get().Credential

	callCtx, cancel := c.callCtx(ctx)
	defer cancel()

	credential, err := c.client.DevLogin(callCtx)
	if err != nil {
		c.log.Warn(ctx, "dev sign-in failed", "err", err)
		return failed(err)
	}

	return c.completeSignIn(ctx, prev, credential)
}

// RefreshProfile re-fetches the profile under the current credential.
// KindSkipped while signed out. A failure keeps the previous profile: stale
// data beats none. Unauthorized means the credential went stale and signs
// the session out.
func (c *Coordinator) RefreshProfile(ctx context.Context) Result {
	if !c.begin(opRefresh) {
		return busy()
	}
	defer c.end(opRefresh)

	snap := c.store.Get()
	if snap.Credential == "" {
		return Result{Kind: KindSkipped}
	}

	callCtx, cancel := c.callCtx(ctx)
	defer cancel()

	profile, err := c.client.FetchProfile(callCtx, snap.Credential)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			c.log.Info(ctx, "credential rejected by server, signing out")
			if clearErr := c.store.Clear(ctx); clearErr != nil {
				c.log.Error(ctx, "session clear failed", "err", clearErr)
			}
			return failed(err)
		}
		if snap.Profile == nil {
			c.store.SetProfileError(snap.Credential, err)
		}
		return failed(err)
	}

	c.store.SetProfile(snap.Credential, profile)
	return ok()
}

// SignOut wipes the session. Unconditional, synchronous, no backend call,
// idempotent.
func (c *Coordinator) SignOut(ctx context.Context) Result {
	if err := c.store.Clear(ctx); err != nil {
		return failed(err)
	}
	return ok()
}

// completeSignIn commits a freshly issued credential and loads its profile.
//
// The commit is skipped when a racing flow already stored a different
// credential (first successful response wins); the caller still gets its
// result. After a successful commit, a profile-fetch failure leaves the
// credential in place — it is valid — and the derived state stays Failed
// until a later RefreshProfile succeeds, without a second exchange.
func (c *Coordinator) completeSignIn(ctx context.Context, prev, credential string) Result {
	won, err := c.store.CommitCredential(ctx, prev, credential)
	if err != nil {
		// The in-memory session is consistent; only durability suffered.
		c.log.Error(ctx, "credential persist failed", "err", err)
	}
	if !won {
		c.log.Info(ctx, "concurrent sign-in already stored a credential, skipping commit")
		return ok()
	}

	c.store.ClearPending()

	callCtx, cancel := c.callCtx(ctx)
	defer cancel()

	profile, err := c.client.FetchProfile(callCtx, credential)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			if clearErr := c.store.Clear(ctx); clearErr != nil {
				c.log.Error(ctx, "session clear failed", "err", clearErr)
			}
			return failed(err)
		}
		c.store.SetProfileError(credential, err)
		c.log.Warn(ctx, "profile fetch after sign-in failed", "err", err)
		return failed(err)
	}

	c.store.SetProfile(credential, profile)
	return ok()
}
