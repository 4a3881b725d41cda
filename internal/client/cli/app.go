package cli

import (
	"bufio"
	"context"
	"net/http"
	"os"

	"github.com/rosterhq/roster/internal/client/config"
	"github.com/rosterhq/roster/internal/client/session"
	"github.com/rosterhq/roster/internal/client/store"
	"github.com/rosterhq/roster/internal/client/transport"
	"github.com/rosterhq/roster/internal/schema"
)

// sessionAPI is the slice of the session manager the CLI drives.
// The real *session.Manager satisfies it; tests provide a stub.
type sessionAPI interface {
	Register(ctx context.Context, in schema.CreateUserInput) (schema.User, error)
	Login(ctx context.Context, email, password string) error
	Logout()
	LoggedIn() bool
}

// storeAPI is the slice of the user store the CLI drives.
type storeAPI interface {
	Snapshot() store.Snapshot
	FetchAll(ctx context.Context) error
	FetchByID(ctx context.Context, id string) error
	Create(ctx context.Context, in schema.CreateUserInput) error
	Update(ctx context.Context, id string, in schema.UpdateUserInput) error
	Delete(ctx context.Context, id string) error
	SelectUser(u *schema.User)
}

type App struct {
	config    *config.Config
	session   sessionAPI
	store     storeAPI
	userEmail string
	reader    *bufio.Reader
}

// NewApp builds the client stack: one HTTP client shared by the session
// manager and the transport, a store on top of the transport, and stdin as
// the command source.
func NewApp(c *config.Config) *App {
	httpClient := &http.Client{Timeout: c.RequestTimeout}

	sess := session.NewManager(c.ServerBaseURL, httpClient)
	tr := transport.NewHTTPTransport(c.ServerBaseURL, httpClient, sess.TokenFunc())
	st := store.New(tr)

	return &App{
		config:  c,
		session: sess,
		store:   st,
		reader:  bufio.NewReader(os.Stdin),
	}
}

// Run starts the REPL and blocks until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to Roster CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.LoggedIn()
}

func (a *App) status() string {
	if a.userEmail != "" {
		return "(" + a.userEmail + ")"
	}
	return ""
}
