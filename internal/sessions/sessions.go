// Package sessions rolls calendar dates onto trading sessions and splits
// session ranges into bounded chunks.
//
// Both operations are pure functions over a read-only, strictly ascending
// sequence of session dates. They hold no state and are safe to call
// concurrently as long as the calendar is not mutated.
package sessions

import (
	"slices"
	"time"
)

// DateLayout is the ISO format used for dates in error messages.
const DateLayout = "2006-01-02"

// Calendar is an ascending, duplicate free sequence of session dates.
//
// Search returns the position where date would be inserted to keep the
// sequence sorted, and whether the date is already present at that position.
type Calendar interface {
	Len() int
	At(i int) time.Time
	Search(date time.Time) (int, bool)
}

// Dates adapts a plain slice of session dates to Calendar. The slice must be
// ascending and hold values already normalized with Day.
type Dates []time.Time

func (d Dates) Len() int           { return len(d) }
func (d Dates) At(i int) time.Time { return d[i] }

func (d Dates) Search(date time.Time) (int, bool) {
	return slices.BinarySearchFunc(d, Day(date), func(a, b time.Time) int { return a.Compare(b) })
}

// Day truncates t to its calendar day, expressed as midnight UTC. The day is
// taken from t's own location, so 2017-05-19 22:00 in New York is 2017-05-19.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func iso(t time.Time) string { return t.Format(DateLayout) }
