package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/avolkov/miniclub/internal/client/auth"
	"github.com/avolkov/miniclub/internal/client/backend"
	"github.com/avolkov/miniclub/internal/client/config"
	"github.com/avolkov/miniclub/internal/client/host"
	sessionrepo "github.com/avolkov/miniclub/internal/client/repositories/session"
	"github.com/avolkov/miniclub/internal/client/services"
	"github.com/avolkov/miniclub/internal/client/session"
	"github.com/avolkov/miniclub/internal/client/storage"
	"github.com/avolkov/miniclub/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config       *config.Config
	store        *session.Store
	coordinator  *auth.Coordinator
	profiles     services.ProfileService
	activities   services.ActivityService
	achievements services.AchievementService
	log          logging.Logger
	reader       *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	log := logging.NewDefault()

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	repo := sessionrepo.NewSQLiteRepository(db)
	store := session.NewStore(repo)

	apiClient := backend.NewHTTPClient(c.APIBaseURL)

	coordinator := auth.NewCoordinator(store, apiClient, host.FromEnv(), log.With("component", "auth"), c.RequestTimeout)

	return &App{
		config:       c,
		store:        store,
		coordinator:  coordinator,
		profiles:     services.NewProfileService(apiClient, store),
		activities:   services.NewActivityService(apiClient, store),
		achievements: services.NewAchievementService(apiClient, store),
		log:          log,
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.store.HasCredential()
}

func (a *App) devEnabled() bool {
	return a.config.DevMode
}

// getStatus renders the prompt fragment, e.g. "(authenticated Alice)".
func (a *App) getStatus() string {
	snap := a.store.Get()
	status := a.store.Status()

	s := status.State.String()
	if snap.Profile != nil && snap.Profile.FirstName != "" {
		s = s + " " + snap.Profile.FirstName
	}
	return fmt.Sprintf("(%s)", s)
}

// Run restores the persisted session, performs the boot-time sign-in
// attempt, and starts the REPL. It returns when the user exits.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to the miniclub CLI (type 'help' for commands)")

	if err := a.coordinator.RestoreSession(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "err", err)
	}

	a.bootSignIn(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// bootSignIn re-validates a restored credential, or falls back to the
// silent host-identity sign-in when none is stored.
func (a *App) bootSignIn(ctx context.Context) {
	if a.isLoggedIn() {
		res := a.coordinator.RefreshProfile(ctx)
		if res.Kind == auth.KindOK {
			a.greet()
		} else {
			printlnFn("Stored session could not be refreshed; try 'refresh' or 'login'.")
		}
		return
	}

	res := a.coordinator.AttemptSilentAuth(ctx)
	switch res.Kind {
	case auth.KindOK:
		a.greet()
	case auth.KindNeedsRegistration:
		printlnFn("Almost there! Type 'register' to finish creating your account.")
	case auth.KindNoHostIdentity:
		printlnFn("Type 'login' to sign in or 'register' to create an account.")
	case auth.KindFailed:
		printlnFn("Sign-in failed:", res.Err)
	}
}

func (a *App) greet() {
	if p := a.store.Get().Profile; p != nil {
		printlnFn(fmt.Sprintf("Signed in as %s %s.", p.FirstName, p.LastName))
	}
}
