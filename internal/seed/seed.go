package seed

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/sessioncal/internal/calendar"
	"github.com/guttosm/sessioncal/internal/domain/models"
	"github.com/guttosm/sessioncal/internal/logger"
	"github.com/guttosm/sessioncal/internal/storage"
)

const defaultBatchSize = 5000

// Options controls a seeding run.
//
// Fields:
//   - Markets: market names with built-in rules (e.g., "NYSE", "B3").
//   - FirstYear / LastYear: inclusive span of generated sessions.
//   - Parallel: how many markets to seed concurrently (0 = auto, up to CPU count).
//   - Force: reseed markets that already have a load log entry.
//   - BatchSize: sessions per COPY transaction (0 = 5000).
type Options struct {
	Markets   []string
	FirstYear int
	LastYear  int
	Parallel  int
	Force     bool
	BatchSize int
}

// generate is an indirection for building calendars; tests can override this.
var generate = calendar.Generate

// Markets generates the calendar of every market in opts and persists it
// through repo.
//
// Behavior:
//   - Markets with a load log entry are skipped unless opts.Force is set.
//   - Stored sessions of a market are deleted before it is (re)written, so an
//     interrupted earlier run leaves no duplicates behind.
//   - Sessions are copied in batches, then the load log is upserted.
//   - If any market fails, the rest are cancelled and that error is returned.
func Markets(ctx context.Context, repo storage.SessionsRepository, opts Options) error {
	if len(opts.Markets) == 0 {
		return fmt.Errorf("no markets to seed")
	}
	batch := opts.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}

	maxParallel := len(opts.Markets)
	if opts.Parallel > 0 && opts.Parallel < maxParallel {
		maxParallel = opts.Parallel
	} else if opts.Parallel <= 0 {
		if c := runtime.NumCPU(); c < maxParallel {
			maxParallel = c
		}
	}

	log := logger.With("seed")
	log.Info().
		Strs("markets", opts.Markets).
		Int("first_year", opts.FirstYear).
		Int("last_year", opts.LastYear).
		Int("max_parallel", maxParallel).
		Msg("seed start")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxParallel)

	for _, market := range opts.Markets {
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()

			exists, err := repo.HasSessions(gctx, market)
			if err != nil {
				return fmt.Errorf("market %s: check load log: %w", market, err)
			}
			if exists && !opts.Force {
				log.Info().Str("market", market).Bool("skipped", true).Msg("already seeded")
				return nil
			}

			cal, err := generate(market, opts.FirstYear, opts.LastYear)
			if err != nil {
				return fmt.Errorf("market %s: generate: %w", market, err)
			}
			if err := repo.DeleteSessionsByMarket(gctx, market); err != nil {
				return fmt.Errorf("market %s: delete existing: %w", market, err)
			}

			dates := cal.Sessions()
			for lo := 0; lo < len(dates); lo += batch {
				if err := gctx.Err(); err != nil {
					return err
				}
				hi := min(lo+batch, len(dates))
				if err := repo.InsertSessionsBatch(gctx, cal.Market(), dates[lo:hi]); err != nil {
					return fmt.Errorf("market %s: insert batch ending %d: %w", market, hi, err)
				}
			}

			entry := models.LoadLog{
				Market:       cal.Market(),
				FirstSession: cal.First(),
				LastSession:  cal.Last(),
				SessionCount: cal.Len(),
			}
			if err := repo.UpsertLoadLog(gctx, entry); err != nil {
				return fmt.Errorf("market %s: upsert load log: %w", market, err)
			}

			log.Info().
				Str("market", market).
				Int("sessions", cal.Len()).
				Dur("elapsed", time.Since(start)).
				Bool("force", opts.Force).
				Msg("market seeded")
			return nil
		})
	}

	return g.Wait()
}
