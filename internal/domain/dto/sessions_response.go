package dto

import (
	"github.com/guttosm/sessioncal/internal/domain/models"
	"github.com/guttosm/sessioncal/internal/sessions"
)

// RolledDate is one entry of RollResponse. Dates use YYYY-MM-DD.
type RolledDate struct {
	Date    string `json:"date" example:"2015-07-04"`
	Session string `json:"session" example:"2015-07-02"`
	Index   int    `json:"index" example:"127"`
}

// RollResponse represents the payload of GET /api/v1/sessions/roll.
type RollResponse struct {
	Market  string       `json:"market" example:"NYSE"`
	Results []RolledDate `json:"results"`
}

// Chunk is an inclusive pair of session dates.
type Chunk struct {
	Start string `json:"start" example:"2017-01-03"`
	End   string `json:"end" example:"2017-01-17"`
}

// ChunksResponse represents the payload of GET /api/v1/sessions/chunks.
type ChunksResponse struct {
	Market    string  `json:"market" example:"NYSE"`
	Start     string  `json:"start" example:"2017-01-03"`
	End       string  `json:"end" example:"2017-01-31"`
	ChunkSize int     `json:"chunksize" example:"10"`
	Chunks    []Chunk `json:"chunks"`
}

// CalendarSummary describes one served market calendar.
type CalendarSummary struct {
	Market       string `json:"market" example:"NYSE"`
	FirstSession string `json:"first_session" example:"1990-01-02"`
	LastSession  string `json:"last_session" example:"2030-12-31"`
	SessionCount int    `json:"session_count" example:"10345"`
}

// CalendarsResponse represents the payload of GET /api/v1/calendars.
type CalendarsResponse struct {
	Calendars []CalendarSummary `json:"calendars"`
}

func NewRollResponse(market string, rolled []models.RolledDate) RollResponse {
	out := RollResponse{Market: market, Results: make([]RolledDate, 0, len(rolled))}
	for _, r := range rolled {
		out.Results = append(out.Results, RolledDate{
			Date:    r.Date.Format(sessions.DateLayout),
			Session: r.Session.Format(sessions.DateLayout),
			Index:   r.Index,
		})
	}
	return out
}

func NewChunks(ranges []sessions.DateRange) []Chunk {
	out := make([]Chunk, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, Chunk{Start: r.Start.Format(sessions.DateLayout), End: r.End.Format(sessions.DateLayout)})
	}
	return out
}

func NewCalendarsResponse(summaries []models.CalendarSummary) CalendarsResponse {
	out := CalendarsResponse{Calendars: make([]CalendarSummary, 0, len(summaries))}
	for _, s := range summaries {
		out.Calendars = append(out.Calendars, CalendarSummary{
			Market:       s.Market,
			FirstSession: s.FirstSession.Format(sessions.DateLayout),
			LastSession:  s.LastSession.Format(sessions.DateLayout),
			SessionCount: s.SessionCount,
		})
	}
	return out
}
