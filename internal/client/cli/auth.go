package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/avolkov/miniclub/internal/client/auth"
	"github.com/avolkov/miniclub/internal/client/backend"
	"github.com/avolkov/miniclub/internal/client/validate"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for email and password and attempts a password sign-in.
//
// Both fields are checked locally before any network call: an invalid email
// or an empty password is reported on the spot and no request is made.
// The coordinator's result is reported to the user; a Busy result means a
// sign-in is already running.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if msg := validate.Field("email", email); msg != "" {
		printlnFn(msg)
		return nil
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	if msg := validate.Field("password", password); msg != "" {
		printlnFn(msg)
		return nil
	}

	res := a.coordinator.SignInWithPassword(ctx, email, password)
	a.reportAuthResult(res)
	return nil
}

// Register collects the registration form and submits it.
//
// When a pending host identity is held, its first and last name prefill the
// form; pressing Enter keeps the prefilled value. Server-side field errors
// come back as a backend.ValidationError and are listed per field.
func (a *App) Register(ctx context.Context) error {
	var defFirst, defLast string
	if pending := a.store.Pending(); pending != nil {
		defFirst, defLast = pending.FirstName, pending.LastName
	}

	firstName, err := promptWithDefault(a.reader, "First name", defFirst, os.Stdout)
	if err != nil {
		return err
	}
	if msg := validate.Field("firstName", firstName); msg != "" {
		printlnFn(msg)
		return nil
	}

	lastName, err := promptWithDefault(a.reader, "Last name", defLast, os.Stdout)
	if err != nil {
		return err
	}
	if msg := validate.Field("lastName", lastName); msg != "" {
		printlnFn(msg)
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if msg := validate.Field("email", email); msg != "" {
		printlnFn(msg)
		return nil
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	if msg := validate.Field("password", password); msg != "" {
		printlnFn(msg)
		return nil
	}

	confirmation, err := getPassword("Repeat password", os.Stdout)
	if err != nil {
		return err
	}
	if msg := validate.Confirmation(password, confirmation); msg != "" {
		printlnFn(msg)
		return nil
	}

	res := a.coordinator.Register(ctx, backend.RegistrationForm{
		FirstName:       firstName,
		LastName:        lastName,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirmation,
	})
	a.reportAuthResult(res)
	return nil
}

// Dev signs in through the development endpoint.
func (a *App) Dev(ctx context.Context) error {
	a.reportAuthResult(a.coordinator.DevSignIn(ctx))
	return nil
}

// Refresh re-fetches the profile under the current credential.
func (a *App) Refresh(ctx context.Context) error {
	res := a.coordinator.RefreshProfile(ctx)
	switch res.Kind {
	case auth.KindOK:
		printlnFn("Profile refreshed.")
	case auth.KindSkipped:
		printlnFn("Not signed in.")
	default:
		a.reportAuthResult(res)
	}
	return nil
}

// Logout wipes the session. Safe to repeat.
func (a *App) Logout(ctx context.Context) error {
	res := a.coordinator.SignOut(ctx)
	if res.Kind == auth.KindFailed {
		printlnFn("Sign-out failed:", res.Err)
		return res.Err
	}
	printlnFn("Signed out.")
	return nil
}

func (a *App) reportAuthResult(res auth.Result) {
	switch res.Kind {
	case auth.KindOK:
		a.greet()
	case auth.KindNeedsRegistration:
		printlnFn("No account for this identity yet. Type 'register' to create one.")
	case auth.KindBusy:
		printlnFn("Another sign-in attempt is already running.")
	case auth.KindFailed:
		var verr *backend.ValidationError
		switch {
		case errors.As(res.Err, &verr):
			printlnFn(verr.Error())
		case errors.Is(res.Err, backend.ErrInvalidCredentials):
			printlnFn("Invalid email or password.")
		case errors.Is(res.Err, backend.ErrConflict):
			printlnFn("An account with this email already exists.")
		default:
			printlnFn("Sign-in failed:", res.Err)
		}
	}
}

// promptWithDefault reads a line, substituting def when the user enters
// nothing.
func promptWithDefault(reader *bufio.Reader, prompt, def string, w io.Writer) (string, error) {
	if def != "" {
		prompt = prompt + " [" + def + "]"
	}
	value, err := getSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if value == "" {
		return def, nil
	}
	return value, nil
}
