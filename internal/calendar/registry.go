package calendar

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/guttosm/sessioncal/internal/apperror"
	"github.com/guttosm/sessioncal/internal/logger"
)

// Loader produces the calendar of a market.
type Loader interface {
	Load(ctx context.Context, market string) (*Calendar, error)
}

// Generator loads calendars from the built-in holiday rules.
type Generator struct {
	FirstYear int
	LastYear  int
}

func (g Generator) Load(_ context.Context, market string) (*Calendar, error) {
	return Generate(market, g.FirstYear, g.LastYear)
}

// SessionSource lists the stored sessions of a market in ascending order.
// It is satisfied by storage.SessionsRepository.
type SessionSource interface {
	ListSessions(ctx context.Context, market string) ([]time.Time, error)
}

// StoredLoader loads calendars previously persisted by the seed command.
type StoredLoader struct {
	Source SessionSource
}

func (s StoredLoader) Load(ctx context.Context, market string) (*Calendar, error) {
	dates, err := s.Source.ListSessions(ctx, market)
	if err != nil {
		return nil, fmt.Errorf("list sessions for %s: %w", market, err)
	}
	if len(dates) == 0 {
		return nil, apperror.Newf(apperror.UnknownMarket, "Market %s has no stored sessions.", market)
	}
	return New(market, dates)
}

// Registry hands out one calendar per configured market, loading each one on
// first use. It is safe for concurrent use.
type Registry struct {
	loader  Loader
	markets []string

	mu   sync.Mutex
	cals map[string]*Calendar
}

// NewRegistry returns a Registry serving the given markets through loader.
// Market names are matched case insensitively.
func NewRegistry(loader Loader, markets ...string) *Registry {
	ms := make([]string, 0, len(markets))
	for _, m := range markets {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m != "" && !slices.Contains(ms, m) {
			ms = append(ms, m)
		}
	}
	return &Registry{loader: loader, markets: ms, cals: make(map[string]*Calendar)}
}

// Markets returns the configured market names, in configuration order.
func (r *Registry) Markets() []string {
	return slices.Clone(r.markets)
}

// Get returns the calendar of market, loading it if needed. Failed loads are
// not cached.
func (r *Registry) Get(ctx context.Context, market string) (*Calendar, error) {
	m := strings.ToUpper(strings.TrimSpace(market))
	if !slices.Contains(r.markets, m) {
		return nil, apperror.Newf(apperror.UnknownMarket, "Market %s is not supported.", market)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cals[m]; ok {
		return c, nil
	}

	start := time.Now()
	c, err := r.loader.Load(ctx, m)
	if err != nil {
		return nil, err
	}
	r.cals[m] = c
	logger.With("calendar").Info().
		Str("market", m).
		Int("sessions", c.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("calendar loaded")
	return c, nil
}
