// Package models defines client-side data models for the miniclub app.
package models

// UserProfile is the server-authoritative user record. It is only ever
// replaced wholesale with a server response, never patched field by field;
// local edits live in ProfileDraft until the server accepts them.
type UserProfile struct {
	// ID is the server-assigned user identifier.
	ID int64 `json:"id"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`

	// Experience is the progression counter; the level shown on screens is
	// derived from it.
	Experience int `json:"experience"`

	// Enrollments is the number of activities the user is signed up for.
	Enrollments int `json:"enrollments"`
}

// ProfileDraft holds pending local edits to the profile. Empty fields are
// omitted from the update request and left unchanged server-side.
type ProfileDraft struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Empty reports whether the draft carries no changes.
func (d ProfileDraft) Empty() bool {
	return d == ProfileDraft{}
}
