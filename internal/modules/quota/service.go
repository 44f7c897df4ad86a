package quota

import (
	"context"
	"errors"
)

type usageStore interface {
	UseTokens(ctx context.Context, uid string, cost, allowance int) error
	Refund(ctx context.Context, uid string, cost, allowance int) error
	EnsureUser(ctx context.Context, uid string, allowance int) error
	Get(ctx context.Context, uid string, allowance int) (*Usage, error)
}

// Service orchestrates generation quota logic.
type Service struct {
	store     usageStore
	allowance int
}

// NewService creates a Service; allowance <= 0 means DefaultTokens.
func NewService(store usageStore, allowance int) *Service {
	if allowance <= 0 {
		allowance = DefaultTokens
	}
	return &Service{store: store, allowance: allowance}
}

// Charge deducts cost tokens from the user's monthly allowance.
// If the user row does not exist yet it is initialised and the charge is retried once.
// Returns ErrInsufficientTokens when the quota for the current month is exhausted.
func (s *Service) Charge(ctx context.Context, uid string, cost int) error {
	if cost <= 0 {
		return nil
	}
	err := s.store.UseTokens(ctx, uid, cost, s.allowance)
	if !errors.Is(err, ErrInsufficientTokens) {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, uid, s.allowance); initErr != nil {
		return initErr
	}
	return s.store.UseTokens(ctx, uid, cost, s.allowance)
}

func (s *Service) Refund(ctx context.Context, uid string, cost int) error {
	if cost <= 0 {
		return nil
	}
	return s.store.Refund(ctx, uid, cost, s.allowance)
}

func (s *Service) Usage(ctx context.Context, uid string) (*Usage, error) {
	return s.store.Get(ctx, uid, s.allowance)
}
