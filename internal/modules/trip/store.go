// README: Trip store backed by PostgreSQL; preferences and itinerary are JSONB columns.
package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const tripColumns = `id, user_id, session_id, destination, total_days, preferences, itinerary, created_at`

func (s *Store) Insert(ctx context.Context, t *Trip) error {
	prefs, err := json.Marshal(t.Preferences)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	it, err := json.Marshal(t.Itinerary)
	if err != nil {
		return fmt.Errorf("encode itinerary: %w", err)
	}
	return s.db.QueryRow(ctx, `
		INSERT INTO trips (id, user_id, session_id, destination, total_days, preferences, itinerary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, t.ID, t.UserID, t.SessionID, t.Destination, t.TotalDays, prefs, it).Scan(&t.CreatedAt)
}

func (s *Store) Get(ctx context.Context, userID, id string) (*Trip, error) {
	row := s.db.QueryRow(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = $1 AND user_id = $2`, id, userID)
	t, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

// ListByUser returns the newest trips first.
func (s *Store) ListByUser(ctx context.Context, userID string, limit int) ([]*Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+tripColumns+` FROM trips WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTrip(row pgx.Row) (*Trip, error) {
	var (
		t     Trip
		prefs []byte
		it    []byte
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.SessionID, &t.Destination, &t.TotalDays, &prefs, &it, &t.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(prefs, &t.Preferences); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	if err := json.Unmarshal(it, &t.Itinerary); err != nil {
		return nil, fmt.Errorf("decode itinerary: %w", err)
	}
	return &t, nil
}
