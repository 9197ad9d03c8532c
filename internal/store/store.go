// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/verte-zerg/zencounter/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Store wraps SQLite access for session history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			decks INTEGER NOT NULL,
			card_speed REAL NOT NULL,
			mode TEXT NOT NULL,
			cards_dealt INTEGER NOT NULL,
			actual_count INTEGER NOT NULL,
			user_count INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			elapsed_sec INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_decks ON sessions(decks);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a finished session.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord) (int64, error) {
	query, args, err := builder.Insert("sessions").
		Columns("started_at", "ended_at", "decks", "card_speed", "mode", "cards_dealt",
			"actual_count", "user_count", "correct", "elapsed_sec").
		Values(
			rec.StartedAt.Format(time.RFC3339Nano),
			rec.EndedAt.Format(time.RFC3339Nano),
			rec.Result.DecksUsed,
			rec.CardSpeed,
			string(rec.Mode),
			rec.Result.CardsDealt,
			rec.Result.ActualCount,
			rec.Result.UserCount,
			rec.Result.IsCorrect,
			rec.Result.TimeElapsed,
		).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func applyFilters(q sq.SelectBuilder, cfg model.StatsConfig) sq.SelectBuilder {
	if cfg.Since != nil {
		q = q.Where(sq.GtOrEq{"ended_at": cfg.Since.Format(time.RFC3339Nano)})
	}
	if cfg.Decks > 0 {
		q = q.Where(sq.Eq{"decks": cfg.Decks})
	}
	if cfg.Mode != "" {
		q = q.Where(sq.Eq{"mode": string(cfg.Mode)})
	}
	return q
}

// ListSessions returns session aggregates filtered by stats config, oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	q := builder.Select("id", "ended_at", "decks", "card_speed", "mode", "cards_dealt",
		"actual_count", "user_count", "correct", "elapsed_sec").
		From("sessions")
	q = applyFilters(q, cfg).OrderBy("ended_at ASC", "id ASC")
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt, mode string
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.Decks, &agg.CardSpeed, &mode, &agg.CardsDealt,
			&agg.ActualCount, &agg.UserCount, &agg.Correct, &agg.ElapsedSec); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		agg.Mode = model.Mode(mode)
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListDeckAggregates groups the given sessions by deck count.
func (s *Store) ListDeckAggregates(ctx context.Context, sessionIDs []int64) ([]model.DeckAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	query, args, err := builder.Select("decks", "COUNT(*)", "SUM(correct)", "SUM(cards_dealt)", "SUM(elapsed_sec)").
		From("sessions").
		Where(sq.Eq{"id": sessionIDs}).
		GroupBy("decks").
		OrderBy("decks ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.DeckAggregate
	for rows.Next() {
		var agg model.DeckAggregate
		if err := rows.Scan(&agg.Decks, &agg.Sessions, &agg.Correct, &agg.CardsDealt, &agg.ElapsedSec); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
