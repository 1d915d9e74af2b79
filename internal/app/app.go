package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/sessioncal/config"
	"github.com/guttosm/sessioncal/internal/api"
	"github.com/guttosm/sessioncal/internal/calendar"
	"github.com/guttosm/sessioncal/internal/service"
	"github.com/guttosm/sessioncal/internal/storage"
)

// Services bundles the dependencies shared by the HTTP server and the CLI modes.
type Services struct {
	Sessions service.SessionService
	Registry *calendar.Registry
	DB       *sql.DB // nil unless calendars are read from Postgres
}

// Close releases the resources held by s.
func (s *Services) Close() {
	if s.DB != nil {
		_ = s.DB.Close()
	}
}

// NewServices wires the calendar registry and the session service from cfg.
//
// Behavior:
//   - CALENDAR_SOURCE=rules: calendars are generated from the built-in holiday rules; no database is opened.
//   - CALENDAR_SOURCE=postgres: connects through postgresOpener and loads the sessions stored by the seed mode.
func NewServices(cfg config.Config) (*Services, error) {
	var (
		loader calendar.Loader = calendar.Generator{FirstYear: cfg.Calendar.FirstYear, LastYear: cfg.Calendar.LastYear}
		db     *sql.DB
	)

	if cfg.UsesPostgres() {
		var err error
		// indirection for unit testing
		db, err = postgresOpener(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		loader = calendar.StoredLoader{Source: storage.NewSessionsRepository(db)}
	}

	registry := calendar.NewRegistry(loader, cfg.Calendar.Markets...)
	svc := service.NewSessionService(registry, service.Options{
		DefaultChunkSize: cfg.Calendar.DefaultChunkSize,
		MaxChunks:        cfg.Calendar.MaxChunks,
	})

	return &Services{Sessions: svc, Registry: registry, DB: db}, nil
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the calendar registry and session service via NewServices().
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	svcs, err := NewServices(cfg)
	if err != nil {
		return nil, nil, err
	}

	handler := api.NewHandler(svcs.Sessions)
	router := api.NewRouter(handler, api.RouterOptions{
		RateLimitRequests: cfg.Server.RateLimitRequests,
		RateLimitWindow:   cfg.Server.RateLimitWindow,
	})

	var ping func(ctx context.Context) error
	if svcs.DB != nil {
		ping = svcs.DB.PingContext
	}
	api.NewHealthHandler(ping).Register(router)

	return router, svcs.Close, nil
}
