package user

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

type recordStore interface {
	Upsert(ctx context.Context, rec *Record) (*Record, error)
	Get(ctx context.Context, id string) (*Record, error)
}

type Service struct {
	store recordStore
}

func NewService(store recordStore) *Service {
	return &Service{store: store}
}

// Upsert validates the sign-in payload and stores it under the caller's uid.
func (s *Service) Upsert(ctx context.Context, uid string, in UpsertInput) (*Record, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if uid == "" || email == "" {
		return nil, ErrBadRequest
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email: %v", ErrBadRequest, err)
	}
	return s.store.Upsert(ctx, &Record{
		ID:       uid,
		Email:    email,
		Name:     strings.TrimSpace(in.Name),
		ImageURL: strings.TrimSpace(in.ImageURL),
	})
}

func (s *Service) Get(ctx context.Context, uid string) (*Record, error) {
	return s.store.Get(ctx, uid)
}
