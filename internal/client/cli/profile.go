package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/avolkov/miniclub/internal/client/backend"
	"github.com/avolkov/miniclub/internal/client/models"
)

// Whoami prints the cached profile. When the profile has not loaded yet the
// derived session status is shown instead.
func (a *App) Whoami(ctx context.Context) error {
	snap := a.store.Get()
	if snap.Profile == nil {
		status := a.store.Status()
		printlnFn("Session:", status.State.String())
		if status.Reason != nil {
			printlnFn("Last error:", status.Reason)
		}
		return nil
	}
	printProfile(snap.Profile)
	return nil
}

// EditProfile collects profile edits and submits them. Pressing Enter on a
// field keeps its current value; when nothing changed, no request is made.
func (a *App) EditProfile(ctx context.Context) error {
	current := a.store.Get().Profile
	var curFirst, curLast string
	if current != nil {
		curFirst, curLast = current.FirstName, current.LastName
	}

	firstName, err := promptWithDefault(a.reader, "First name", curFirst, os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := promptWithDefault(a.reader, "Last name", curLast, os.Stdout)
	if err != nil {
		return err
	}

	draft := models.ProfileDraft{}
	if firstName != curFirst {
		draft.FirstName = firstName
	}
	if lastName != curLast {
		draft.LastName = lastName
	}
	if draft.Empty() {
		printlnFn("Nothing to update.")
		return nil
	}

	profile, err := a.profiles.Update(ctx, draft)
	if err != nil {
		reportServiceError(err)
		return err
	}

	printlnFn("Profile updated.")
	printProfile(profile)
	return nil
}

func printProfile(p *models.UserProfile) {
	printlnFn(fmt.Sprintf("%s %s <%s>", p.FirstName, p.LastName, p.Email))
	printlnFn(fmt.Sprintf("Experience: %d", p.Experience))
	printlnFn(fmt.Sprintf("Enrollments: %d", p.Enrollments))
}

// reportServiceError translates common backend errors into user-facing
// messages.
func reportServiceError(err error) {
	var verr *backend.ValidationError
	switch {
	case errors.As(err, &verr):
		printlnFn(verr.Error())
	case errors.Is(err, backend.ErrUnauthorized):
		printlnFn("Session expired, please sign in again.")
	case backend.Retryable(err):
		printlnFn("Temporary failure, try again:", err)
	default:
		printlnFn("Request failed:", err)
	}
}
