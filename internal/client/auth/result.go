package auth

import "github.com/avolkov/miniclub/internal/client/models"

// ResultKind enumerates every outcome a coordinator operation can resolve to.
// The set is closed so screens can switch over it exhaustively.
type ResultKind int

const (
	// KindOK: the operation did what it was asked to do.
	KindOK ResultKind = iota

	// KindNeedsRegistration: the host identity has no server account yet;
	// Result.Pending carries the candidate identity.
	KindNeedsRegistration

	// KindNoHostIdentity: the client is not running inside the host runtime.
	// Expected on plain platforms, not an error.
	KindNoHostIdentity

	// KindSkipped: the operation had nothing to do (refresh while signed out).
	KindSkipped

	// KindBusy: an operation of the same kind is already in flight.
	KindBusy

	// KindFailed: the backend (or its transport) failed; Result.Err carries
	// the typed reason.
	KindFailed
)

func (k ResultKind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNeedsRegistration:
		return "needs-registration"
	case KindNoHostIdentity:
		return "no-host-identity"
	case KindSkipped:
		return "skipped"
	case KindBusy:
		return "busy"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the discriminated outcome of one coordinator operation.
// Expected conditions are values here, never panics or naked errors.
type Result struct {
	Kind ResultKind

	// Pending is set when Kind is KindNeedsRegistration.
	Pending *models.PendingIdentity

	// Err is set when Kind is KindFailed.
	Err error
}

func ok() Result                 { return Result{Kind: KindOK} }
func busy() Result               { return Result{Kind: KindBusy} }
func failed(err error) Result    { return Result{Kind: KindFailed, Err: err} }
func needsRegistration(p *models.PendingIdentity) Result {
	return Result{Kind: KindNeedsRegistration, Pending: p}
}
