// Package cli implements the interactive miniclub client.
//
// The entry point is App: NewApp wires the local session database, the
// backend client, and the authentication coordinator; Run restores the
// persisted session, attempts a silent sign-in, and drops into a REPL.
//
// Screens live in their own files (auth.go, profile.go, activities.go,
// achievements.go) and read input through the helpers in input.go, which
// are swappable in tests.
package cli
