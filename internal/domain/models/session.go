package models

import "time"

// RolledDate is the outcome of rolling one requested date.
//
// Fields:
//   - Date: the requested date, normalized to its calendar day.
//   - Session: the session on or before Date.
//   - Index: position of Session in the market calendar.
type RolledDate struct {
	Date    time.Time
	Session time.Time
	Index   int
}

// CalendarSummary describes the calendar served for one market.
type CalendarSummary struct {
	Market       string
	FirstSession time.Time
	LastSession  time.Time
	SessionCount int
}
