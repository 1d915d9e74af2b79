package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/guttosm/sessioncal/internal/domain/models"
	pq "github.com/lib/pq"
)

// SessionsRepository defines contract for DB operations on stored calendars.
type SessionsRepository interface {
	InsertSessionsBatch(ctx context.Context, market string, dates []time.Time) error
	ListSessions(ctx context.Context, market string) ([]time.Time, error)
	HasSessions(ctx context.Context, market string) (bool, error)
	DeleteSessionsByMarket(ctx context.Context, market string) error
	UpsertLoadLog(ctx context.Context, entry models.LoadLog) error
}

type sessionsRepository struct {
	db *sql.DB
}

func NewSessionsRepository(db *sql.DB) SessionsRepository {
	return &sessionsRepository{db: db}
}

// InsertSessionsBatch copies the session dates of one market in a single transaction.
func (r *sessionsRepository) InsertSessionsBatch(ctx context.Context, market string, dates []time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("market_sessions", "market", "session_date"))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, d := range dates {
		if _, err := stmt.ExecContext(ctx, market, d); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// ListSessions returns the stored sessions of a market in ascending order.
func (r *sessionsRepository) ListSessions(ctx context.Context, market string) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_date FROM market_sessions WHERE market = $1 ORDER BY session_date`, market)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// HasSessions checks if a calendar was already recorded for a market.
func (r *sessionsRepository) HasSessions(ctx context.Context, market string) (bool, error) {
	var exists bool
	// calendar_load_log is the canonical per-market record
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM calendar_load_log WHERE market = $1)`, market).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// DeleteSessionsByMarket removes all stored sessions for a market.
func (r *sessionsRepository) DeleteSessionsByMarket(ctx context.Context, market string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM market_sessions WHERE market = $1`, market)
	return err
}

// UpsertLoadLog records (or updates) the load entry of a market.
func (r *sessionsRepository) UpsertLoadLog(ctx context.Context, entry models.LoadLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO calendar_load_log (market, first_session, last_session, session_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (market)
		DO UPDATE SET first_session = EXCLUDED.first_session,
					  last_session = EXCLUDED.last_session,
					  session_count = EXCLUDED.session_count,
					  loaded_at = NOW()
	`, entry.Market, entry.FirstSession, entry.LastSession, entry.SessionCount)
	return err
}
