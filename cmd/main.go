package main

//
//  @title           sessioncal API
//  @version         1.0
//  @description     Trading session calendars: roll dates to sessions and split session ranges into chunks.
//  @termsOfService  https://github.com/guttosm/sessioncal
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/sessioncal
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        sessions
//  @tag.description Rolling dates and chunking session ranges
//
//  @tag.name        calendars
//  @tag.description Served market calendars
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/sessioncal/config"
	_ "github.com/guttosm/sessioncal/docs" // swagger docs
	"github.com/guttosm/sessioncal/internal/app"
	"github.com/guttosm/sessioncal/internal/domain/dto"
	"github.com/guttosm/sessioncal/internal/logger"
	"github.com/guttosm/sessioncal/internal/seed"
	"github.com/guttosm/sessioncal/internal/service"
	"github.com/guttosm/sessioncal/internal/sessions"
	"github.com/guttosm/sessioncal/internal/storage"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// parseDates parses a comma separated list of YYYY-MM-DD dates.
func parseDates(s string) ([]time.Time, error) {
	var out []time.Time
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.Parse(sessions.DateLayout, part)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", part, err)
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, errors.New("at least one date is required")
	}
	return out, nil
}

// runRoll writes one JSON line per rolled date to w.
func runRoll(ctx context.Context, svc service.SessionService, market, dates string, w io.Writer) error {
	ds, err := parseDates(dates)
	if err != nil {
		return err
	}
	rolled, err := svc.Roll(ctx, market, ds...)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	for _, r := range dto.NewRollResponse(market, rolled).Results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// runChunks writes one JSON line per chunk of [start, end] to w.
func runChunks(ctx context.Context, svc service.SessionService, market, start, end string, chunkSize int, w io.Writer) error {
	s, err := time.Parse(sessions.DateLayout, start)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	e, err := time.Parse(sessions.DateLayout, end)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}
	chunks, err := svc.Chunks(ctx, market, s, e, chunkSize)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	for _, c := range dto.NewChunks(chunks) {
		if err := enc.Encode(c); err != nil {
			return err
		}
	}
	return nil
}

// main is the entry point of the sessioncal application.
//
// Modes (selected via --mode flag):
//   - api:    Starts the REST API serving roll, chunks and calendar endpoints.
//   - seed:   Generates the configured market calendars and stores them in Postgres.
//   - roll:   Prints the session each --date rolls to, as JSON lines.
//   - chunks: Prints the chunks of [--start, --end], as JSON lines.
//
// Flags:
//   - --mode: Execution mode. Default: "api".
//   - --market: Market for roll/chunks. Default: first of CALENDAR_MARKETS.
//   - --date: Comma separated dates for roll.
//   - --start / --end / --chunksize: Range and chunk size for chunks.
//   - --parallel / --force: Seeding concurrency and reseeding of stored markets.
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Configure(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	defaultMarket := ""
	if len(cfg.Calendar.Markets) > 0 {
		defaultMarket = cfg.Calendar.Markets[0]
	}

	mode := flag.String("mode", "api", "Mode: api, seed, roll or chunks")
	market := flag.String("market", defaultMarket, "Market for roll and chunks modes")
	dates := flag.String("date", "", "Comma separated YYYY-MM-DD dates for roll mode")
	start := flag.String("start", "", "First session (YYYY-MM-DD) for chunks mode")
	end := flag.String("end", "", "Last session (YYYY-MM-DD) for chunks mode")
	chunkSize := flag.Int("chunksize", sessions.WholeRange, "Sessions per chunk for chunks mode (0 = configured default)")
	parallel := flag.Int("parallel", 0, "How many markets to seed concurrently (0=auto up to CPU)")
	force := flag.Bool("force", false, "Reseed markets even if already stored (deletes existing sessions)")
	port := flag.String("port", cfg.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "seed":
		logger.L().Info().Msg("running seed")

		// Direct DB connection for seeding
		db, err := app.InitPostgres(cfg)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		opts := seed.Options{
			Markets:   cfg.Calendar.Markets,
			FirstYear: cfg.Calendar.FirstYear,
			LastYear:  cfg.Calendar.LastYear,
			Parallel:  *parallel,
			Force:     *force,
		}
		if err := seed.Markets(ctx, storage.NewSessionsRepository(db), opts); err != nil {
			logger.L().Fatal().Err(err).Msg("seed failed")
		}
		logger.L().Info().Msg("seed completed successfully")

	case "roll", "chunks":
		svcs, err := app.NewServices(cfg)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}
		defer svcs.Close()

		m := strings.ToUpper(strings.TrimSpace(*market))
		if *mode == "roll" {
			err = runRoll(ctx, svcs.Sessions, m, *dates, os.Stdout)
		} else {
			err = runChunks(ctx, svcs.Sessions, m, *start, *end, *chunkSize, os.Stdout)
		}
		if err != nil {
			logger.L().Error().Err(err).Str("mode", *mode).Str("market", m).Msg("command failed")
			svcs.Close()
			os.Exit(1)
		}

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
