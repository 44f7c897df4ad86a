// README: Quota store backed by PostgreSQL (ai_usage table, lazy monthly reset).
package quota

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles ai_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func currentMonth() string {
	return time.Now().Format("2006-01")
}

// UseTokens atomically checks the monthly quota and deducts cost tokens.
// The counter is reset to allowance when last_reset_month is not the current month.
// A cost above the allowance never succeeds, so the balance cannot go negative.
// Returns ErrInsufficientTokens when 0 rows are updated (quota exhausted or user absent).
func (s *Store) UseTokens(ctx context.Context, uid string, cost, allowance int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - $4 ELSE tokens_remaining - $4 END,
			last_reset_month = $1
		WHERE uid = $3 AND (
			(last_reset_month != $1 AND $2 >= $4) OR
			(last_reset_month = $1 AND tokens_remaining >= $4)
		)
	`, currentMonth(), allowance, uid, cost)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// Refund gives back tokens charged for work that did not complete, never
// exceeding the monthly allowance.
func (s *Store) Refund(ctx context.Context, uid string, cost, allowance int) error {
	_, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET tokens_remaining = LEAST(tokens_remaining + $1, $2)
		WHERE uid = $3 AND last_reset_month = $4
	`, cost, allowance, uid, currentMonth())
	return err
}

// EnsureUser inserts a new ai_usage row for uid with the given allowance.
// If the row already exists the insert is silently skipped (ON CONFLICT DO NOTHING).
func (s *Store) EnsureUser(ctx context.Context, uid string, allowance int) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (uid, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, allowance, currentMonth())
	return err
}

// Get returns the stored row, or a full allowance for users without one.
func (s *Store) Get(ctx context.Context, uid string, allowance int) (*Usage, error) {
	u := Usage{UID: uid}
	err := s.db.QueryRow(ctx, `
		SELECT tokens_remaining, last_reset_month FROM ai_usage WHERE uid = $1
	`, uid).Scan(&u.Remaining, &u.Month)
	if errors.Is(err, pgx.ErrNoRows) {
		return &Usage{UID: uid, Remaining: allowance, Month: currentMonth()}, nil
	}
	if err != nil {
		return nil, err
	}
	if u.Month < currentMonth() {
		u.Remaining, u.Month = allowance, currentMonth()
	}
	return &u, nil
}
