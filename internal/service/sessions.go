package service

import (
	"context"
	"slices"
	"time"

	"github.com/guttosm/sessioncal/internal/apperror"
	"github.com/guttosm/sessioncal/internal/calendar"
	"github.com/guttosm/sessioncal/internal/domain/models"
	"github.com/guttosm/sessioncal/internal/sessions"
)

// CalendarProvider resolves market calendars. It is satisfied by
// *calendar.Registry.
type CalendarProvider interface {
	Get(ctx context.Context, market string) (*calendar.Calendar, error)
	Markets() []string
}

// SessionService defines the business operations over market calendars.
// It decouples HTTP handlers and the CLI from how calendars are loaded.
type SessionService interface {
	Roll(ctx context.Context, market string, dates ...time.Time) ([]models.RolledDate, error)
	Chunks(ctx context.Context, market string, start, end time.Time, chunkSize int) ([]sessions.DateRange, error)
	Calendars(ctx context.Context) ([]models.CalendarSummary, error)
}

// Options tunes a SessionService.
//
// Fields:
//   - DefaultChunkSize: used when a caller passes sessions.WholeRange (0 keeps a single chunk).
//   - MaxChunks: upper bound on chunks returned by one call (0 = unlimited).
type Options struct {
	DefaultChunkSize int
	MaxChunks        int
}

type sessionService struct {
	calendars CalendarProvider
	opts      Options
}

func NewSessionService(calendars CalendarProvider, opts Options) SessionService {
	return &sessionService{calendars: calendars, opts: opts}
}

// Roll rolls every date to the closest session on or before it.
// It fails as a whole on the first date that cannot be rolled.
func (s *sessionService) Roll(ctx context.Context, market string, dates ...time.Time) ([]models.RolledDate, error) {
	if len(dates) == 0 {
		return nil, apperror.New(apperror.InvalidArgument, "At least one date is required.")
	}
	cal, err := s.calendars.Get(ctx, market)
	if err != nil {
		return nil, err
	}

	out := make([]models.RolledDate, 0, len(dates))
	for _, d := range dates {
		session, idx, err := sessions.RollToPreviousSession(cal, d)
		if err != nil {
			return nil, err
		}
		out = append(out, models.RolledDate{Date: sessions.Day(d), Session: session, Index: idx})
	}
	return out, nil
}

// Chunks materializes the chunks of [start, end] for market.
//
// Behavior:
//   - chunkSize == sessions.WholeRange falls back to Options.DefaultChunkSize.
//   - Validation errors come from sessions.ComputeDateRangeChunks unchanged.
//   - More chunks than Options.MaxChunks is an apperror.InvalidArgument.
func (s *sessionService) Chunks(ctx context.Context, market string, start, end time.Time, chunkSize int) ([]sessions.DateRange, error) {
	cal, err := s.calendars.Get(ctx, market)
	if err != nil {
		return nil, err
	}
	if chunkSize == sessions.WholeRange {
		chunkSize = s.opts.DefaultChunkSize
	}

	seq, err := sessions.ComputeDateRangeChunks(cal, start, end, chunkSize)
	if err != nil {
		return nil, err
	}
	if s.opts.MaxChunks > 0 {
		n, err := sessions.CountChunks(cal, start, end, chunkSize)
		if err != nil {
			return nil, err
		}
		if n > s.opts.MaxChunks {
			return nil, apperror.Newf(apperror.InvalidArgument,
				"Range yields %d chunks, more than the limit of %d.", n, s.opts.MaxChunks)
		}
	}
	return slices.Collect(seq), nil
}

// Calendars summarizes every configured market. A market that fails to load
// aborts the call.
func (s *sessionService) Calendars(ctx context.Context) ([]models.CalendarSummary, error) {
	markets := s.calendars.Markets()
	out := make([]models.CalendarSummary, 0, len(markets))
	for _, m := range markets {
		cal, err := s.calendars.Get(ctx, m)
		if err != nil {
			return nil, err
		}
		out = append(out, models.CalendarSummary{
			Market:       cal.Market(),
			FirstSession: cal.First(),
			LastSession:  cal.Last(),
			SessionCount: cal.Len(),
		})
	}
	return out, nil
}
