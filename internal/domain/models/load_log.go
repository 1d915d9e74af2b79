package models

import "time"

// LoadLog records one persisted market calendar.
//
// Fields:
//   - Market: market name (e.g., "NYSE").
//   - FirstSession / LastSession: bounds of the stored sessions.
//   - SessionCount: number of stored session dates.
type LoadLog struct {
	Market       string
	FirstSession time.Time
	LastSession  time.Time
	SessionCount int
}
