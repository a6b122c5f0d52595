package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	dev      bool

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) devEnabled() bool { return f.dev }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Dev(ctx context.Context) error {
	f.calls = append(f.calls, "dev")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) EditProfile(ctx context.Context) error {
	f.calls = append(f.calls, "edit")
	return nil
}
func (f *fakeExec) Schedule(ctx context.Context) error {
	f.calls = append(f.calls, "schedule")
	return nil
}
func (f *fakeExec) Enroll(ctx context.Context) error {
	f.calls = append(f.calls, "enroll")
	return nil
}
func (f *fakeExec) CancelEnrollment(ctx context.Context) error {
	f.calls = append(f.calls, "cancel")
	return nil
}
func (f *fakeExec) Achievements(ctx context.Context) error {
	f.calls = append(f.calls, "achievements")
	return nil
}
func (f *fakeExec) Refresh(ctx context.Context) error {
	f.calls = append(f.calls, "refresh")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func TestRunREPL_SignInFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"whoami",
		"schedule",
		"enroll",
		"achievements",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "whoami", "schedule", "enroll", "achievements", "logout"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_DevCommandGated(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	t.Run("disabled", func(t *testing.T) {
		exec := &fakeExec{dev: false}
		sc := bufio.NewScanner(strings.NewReader("dev\nquit\n"))

		runREPL(context.Background(), exec, func() string { return "s" }, sc)

		if len(exec.calls) != 0 {
			t.Fatalf("unexpected calls: %v", exec.calls)
		}
	})

	t.Run("enabled", func(t *testing.T) {
		exec := &fakeExec{dev: true}
		sc := bufio.NewScanner(strings.NewReader("dev\nquit\n"))

		runREPL(context.Background(), exec, func() string { return "s" }, sc)

		if len(exec.calls) != 1 || exec.calls[0] != "dev" {
			t.Fatalf("unexpected calls: %v", exec.calls)
		}
	})
}

func TestRunREPL_EmptyLineAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("\n\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
