package sessions

import (
	"time"

	"github.com/guttosm/sessioncal/internal/apperror"
)

// RollToPreviousSession returns date itself when it is a session, otherwise
// the closest session before it, together with the session's index in cal.
//
// Returns an apperror.OutOfRange error when no session exists on or before
// date (date precedes the first session, or cal is empty).
func RollToPreviousSession(cal Calendar, date time.Time) (time.Time, int, error) {
	d := Day(date)
	if cal.Len() == 0 {
		return time.Time{}, -1, apperror.Newf(apperror.OutOfRange,
			"Date %s cannot be rolled: calendar has no sessions.", iso(d))
	}

	pos, found := cal.Search(d)
	if found {
		return cal.At(pos), pos, nil
	}
	if pos == 0 {
		return time.Time{}, -1, apperror.Newf(apperror.OutOfRange,
			"Date %s precedes the first session %s in calendar.", iso(d), iso(cal.At(0)))
	}
	return cal.At(pos - 1), pos - 1, nil
}

// RollDatesToPreviousSession rolls every date in order and returns the
// resulting sessions. It stops at the first date that cannot be rolled.
func RollDatesToPreviousSession(cal Calendar, dates ...time.Time) ([]time.Time, error) {
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		s, _, err := RollToPreviousSession(cal, d)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
