// README: User store backed by PostgreSQL.
package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Upsert inserts the record or refreshes name and image for an existing email.
// The stored row is returned, so a known email keeps its original id.
func (s *Store) Upsert(ctx context.Context, rec *Record) (*Record, error) {
	var out Record
	err := s.db.QueryRow(ctx, `
		INSERT INTO users (id, email, name, image_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			image_url = EXCLUDED.image_url,
			updated_at = NOW()
		RETURNING id, email, name, image_url, created_at, updated_at
	`, rec.ID, rec.Email, rec.Name, rec.ImageURL).Scan(
		&out.ID, &out.Email, &out.Name, &out.ImageURL, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	var out Record
	err := s.db.QueryRow(ctx, `
		SELECT id, email, name, image_url, created_at, updated_at FROM users WHERE id = $1
	`, id).Scan(&out.ID, &out.Email, &out.Name, &out.ImageURL, &out.CreatedAt, &out.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
