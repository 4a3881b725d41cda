// Package server initializes and runs the Roster API server. It selects the
// storage backend from the configured DSN, applies schema migrations, and
// serves the HTTP API until the context is cancelled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rosterhq/roster/internal/logging"
	"github.com/rosterhq/roster/internal/server/config"
	"github.com/rosterhq/roster/internal/server/httpapi"
	"github.com/rosterhq/roster/internal/server/repositories/repomanager"
	"github.com/rosterhq/roster/internal/server/services"
)

// shutdownTimeout caps how long in-flight requests may run once a stop
// signal arrives.
const shutdownTimeout = 5 * time.Second

// App bundles the configured dependencies of one server process.
type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
}

// NewApp opens the database the DSN points at, applies migrations, and wires
// the user service.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	l := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(l)

	m, driver, err := repomanager.ForDSN(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db, err := sql.Open(driver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Info(ctx, "database ready", "driver", driver)

	us := services.NewUserService(db, m, c)

	return &App{config: c, logger: logger, db: db, userService: us}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	f := fiber.New(fiber.Config{DisableStartupMessage: true})
	httpapi.Router(f, httpapi.RouterDeps{
		Users:     app.userService,
		Logger:    app.logger,
		JWTSecret: []byte(app.config.SecretKey),
	})

	go func() {
		<-ctx.Done()
		if err := f.ShutdownWithTimeout(shutdownTimeout); err != nil {
			app.logger.Error(ctx, "server shutdown error", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "listening", "addr", app.config.EndpointAddr)
	if err := f.Listen(app.config.EndpointAddr); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until the context is cancelled or a termination signal
// arrives, then shuts down and closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err.Error())
	}
}
