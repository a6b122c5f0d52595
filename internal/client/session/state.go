package session

// State is the derived, UI-facing authentication status. It is never stored:
// the store recomputes it from its fields on every query.
type State int

const (
	// Anonymous: no credential, no pending host identity.
	Anonymous State = iota

	// PendingRegistration: a host identity was presented but has no server
	// account yet; the registration screen should be shown.
	PendingRegistration

	// Authenticated: a credential is held and the profile has loaded
	// successfully at least once since the credential was set.
	Authenticated

	// Failed: a credential is held but no profile has loaded under it yet.
	// Recoverable by a later successful profile refresh.
	Failed
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case PendingRegistration:
		return "pending-registration"
	case Authenticated:
		return "authenticated"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status pairs the derived state with the failure reason, which is only
// meaningful when State is Failed.
type Status struct {
	State  State
	Reason error
}
