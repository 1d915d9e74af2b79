// Package calendar provides trading calendars: the ordered sessions of a
// named market, generated from holiday rules or loaded from storage.
//
// A Calendar is immutable once built and satisfies sessions.Calendar, so it
// can be passed straight to the rolling and chunking functions.
package calendar

import (
	"slices"
	"time"

	"github.com/guttosm/sessioncal/internal/apperror"
	"github.com/guttosm/sessioncal/internal/sessions"
)

// Calendar is the strictly ascending list of session dates of one market.
// Dates are stored as midnight UTC.
type Calendar struct {
	market   string
	sessions []time.Time
}

var _ sessions.Calendar = (*Calendar)(nil)

// New builds a Calendar from dates, normalizing each one with sessions.Day.
//
// Returns an apperror.InvalidArgument error if dates are not strictly
// ascending once normalized (unsorted input or duplicate days).
func New(market string, dates []time.Time) (*Calendar, error) {
	out := make([]time.Time, len(dates))
	for i, d := range dates {
		out[i] = sessions.Day(d)
		if i > 0 && !out[i].After(out[i-1]) {
			return nil, apperror.Newf(apperror.InvalidArgument,
				"calendar %s: session %s is not after %s",
				market, out[i].Format(sessions.DateLayout), out[i-1].Format(sessions.DateLayout))
		}
	}
	return &Calendar{market: market, sessions: out}, nil
}

func (c *Calendar) Market() string     { return c.market }
func (c *Calendar) Len() int           { return len(c.sessions) }
func (c *Calendar) At(i int) time.Time { return c.sessions[i] }

// Search returns the insertion point of date's day and whether that day is a
// session.
func (c *Calendar) Search(date time.Time) (int, bool) {
	return slices.BinarySearchFunc(c.sessions, sessions.Day(date), func(a, b time.Time) int { return a.Compare(b) })
}

// Contains reports whether date falls on a session.
func (c *Calendar) Contains(date time.Time) bool {
	_, ok := c.Search(date)
	return ok
}

// First returns the first session, or the zero time for an empty calendar.
func (c *Calendar) First() time.Time {
	if len(c.sessions) == 0 {
		return time.Time{}
	}
	return c.sessions[0]
}

// Last returns the last session, or the zero time for an empty calendar.
func (c *Calendar) Last() time.Time {
	if len(c.sessions) == 0 {
		return time.Time{}
	}
	return c.sessions[len(c.sessions)-1]
}

// Sessions returns a copy of all session dates.
func (c *Calendar) Sessions() []time.Time {
	return slices.Clone(c.sessions)
}

// Between returns the sessions falling on or after start and on or before
// end. Neither bound has to be a session.
func (c *Calendar) Between(start, end time.Time) []time.Time {
	lo, _ := c.Search(start)
	hi, found := c.Search(end)
	if found {
		hi++
	}
	if lo >= hi {
		return nil
	}
	return slices.Clone(c.sessions[lo:hi])
}
