package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/sessioncal/internal/apperror"
	"github.com/guttosm/sessioncal/internal/calendar"
	"github.com/guttosm/sessioncal/internal/sessions"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(opts Options) SessionService {
	reg := calendar.NewRegistry(calendar.Generator{FirstYear: 2015, LastYear: 2017}, calendar.NYSE, calendar.B3)
	return NewSessionService(reg, opts)
}

type failingProvider struct{ err error }

func (f failingProvider) Get(context.Context, string) (*calendar.Calendar, error) { return nil, f.err }
func (f failingProvider) Markets() []string                                       { return []string{calendar.NYSE} }

func TestSessionService_Roll(t *testing.T) {
	svc := newTestService(Options{})
	ctx := context.Background()

	cases := []struct {
		name     string
		market   string
		dates    []time.Time
		want     []time.Time
		wantCode apperror.Code
	}{
		{
			name:   "weekend and holiday",
			market: "nyse",
			dates:  []time.Time{day(2015, 7, 4), day(2015, 7, 6)},
			want:   []time.Time{day(2015, 7, 2), day(2015, 7, 6)},
		},
		{name: "no dates", market: calendar.NYSE, wantCode: apperror.InvalidArgument},
		{name: "unknown market", market: "LSE", dates: []time.Time{day(2015, 7, 4)}, wantCode: apperror.UnknownMarket},
		{name: "before first session", market: calendar.NYSE, dates: []time.Time{day(2014, 12, 31)}, wantCode: apperror.OutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := svc.Roll(ctx, tc.market, tc.dates...)
			if tc.wantCode != "" {
				if got := apperror.CodeOf(err); got != tc.wantCode {
					t.Fatalf("want code %s got %s (err=%v)", tc.wantCode, got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(out) != len(tc.want) {
				t.Fatalf("want %d results got %d", len(tc.want), len(out))
			}
			for i, r := range out {
				if !r.Session.Equal(tc.want[i]) || !r.Date.Equal(tc.dates[i]) {
					t.Fatalf("result %d: %+v", i, r)
				}
			}
		})
	}
}

func TestSessionService_RollIndexMatchesCalendar(t *testing.T) {
	svc := newTestService(Options{})
	out, err := svc.Roll(context.Background(), calendar.NYSE, day(2015, 1, 2), day(2015, 1, 3))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// 2015-01-02 is the first NYSE session of the generated range.
	if out[0].Index != 0 || out[1].Index != 0 {
		t.Fatalf("unexpected indexes: %+v", out)
	}
}

func TestSessionService_Chunks(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name      string
		opts      Options
		start     time.Time
		end       time.Time
		chunkSize int
		wantLen   int
		wantCode  apperror.Code
	}{
		{name: "whole range", start: day(2017, 1, 3), end: day(2017, 1, 31), wantLen: 1},
		{name: "size 10", start: day(2017, 1, 3), end: day(2017, 1, 31), chunkSize: 10, wantLen: 2},
		{name: "default size applies", opts: Options{DefaultChunkSize: 5}, start: day(2017, 1, 3), end: day(2017, 1, 31), wantLen: 4},
		{name: "over the limit", opts: Options{MaxChunks: 3}, start: day(2017, 1, 3), end: day(2017, 12, 29), chunkSize: 1, wantCode: apperror.InvalidArgument},
		{name: "at the limit", opts: Options{MaxChunks: 2}, start: day(2017, 1, 3), end: day(2017, 1, 31), chunkSize: 10, wantLen: 2},
		{name: "start not a session", start: day(2017, 1, 1), end: day(2017, 1, 31), wantCode: apperror.NotFound},
		{name: "reversed", start: day(2017, 1, 31), end: day(2017, 1, 3), wantCode: apperror.InvalidRange},
		{name: "negative size", start: day(2017, 1, 3), end: day(2017, 1, 31), chunkSize: -1, wantCode: apperror.InvalidArgument},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(tc.opts)
			out, err := svc.Chunks(ctx, calendar.NYSE, tc.start, tc.end, tc.chunkSize)
			if tc.wantCode != "" {
				if got := apperror.CodeOf(err); got != tc.wantCode {
					t.Fatalf("want code %s got %s (err=%v)", tc.wantCode, got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(out) != tc.wantLen {
				t.Fatalf("want %d chunks got %d: %+v", tc.wantLen, len(out), out)
			}
			if !out[0].Start.Equal(tc.start) || !out[len(out)-1].End.Equal(tc.end) {
				t.Fatalf("chunks do not cover range: %+v", out)
			}
		})
	}
}

func TestSessionService_ChunksSplitsOnSessions(t *testing.T) {
	svc := newTestService(Options{})
	out, err := svc.Chunks(context.Background(), calendar.NYSE, day(2017, 1, 3), day(2017, 1, 31), 15)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := []sessions.DateRange{
		{Start: day(2017, 1, 3), End: day(2017, 1, 24)},
		{Start: day(2017, 1, 25), End: day(2017, 1, 31)},
	}
	if len(out) != len(want) {
		t.Fatalf("want %v got %v", want, out)
	}
	for i := range want {
		if !out[i].Start.Equal(want[i].Start) || !out[i].End.Equal(want[i].End) {
			t.Fatalf("chunk %d: want %v got %v", i, want[i], out[i])
		}
	}
}

func TestSessionService_Calendars(t *testing.T) {
	svc := newTestService(Options{})
	out, err := svc.Calendars(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 || out[0].Market != calendar.NYSE || out[1].Market != calendar.B3 {
		t.Fatalf("unexpected summaries: %+v", out)
	}
	if !out[0].FirstSession.Equal(day(2015, 1, 2)) || !out[0].LastSession.Equal(day(2017, 12, 29)) {
		t.Fatalf("unexpected NYSE bounds: %+v", out[0])
	}
	if out[0].SessionCount <= 0 {
		t.Fatalf("NYSE has no sessions")
	}
}

func TestSessionService_ProviderErrors(t *testing.T) {
	boom := errors.New("db down")
	svc := NewSessionService(failingProvider{err: boom}, Options{})
	ctx := context.Background()

	if _, err := svc.Roll(ctx, calendar.NYSE, day(2017, 1, 3)); !errors.Is(err, boom) {
		t.Fatalf("Roll: want %v got %v", boom, err)
	}
	if _, err := svc.Chunks(ctx, calendar.NYSE, day(2017, 1, 3), day(2017, 1, 4), 0); !errors.Is(err, boom) {
		t.Fatalf("Chunks: want %v got %v", boom, err)
	}
	if _, err := svc.Calendars(ctx); !errors.Is(err, boom) {
		t.Fatalf("Calendars: want %v got %v", boom, err)
	}
}
