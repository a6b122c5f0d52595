package models

// PendingIdentity describes a host-supplied identity that has no matching
// server account yet. It exists only between a silent sign-in attempt that
// resolved to "needs registration" and the registration call that follows.
type PendingIdentity struct {
	// FirstName and LastName are candidate values prefilled into the
	// registration form.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Payload is the opaque signed payload the host runtime supplied. It is
	// forwarded with the registration request so the server can link the new
	// account to the host identity.
	Payload string `json:"-"`
}
