package trip

import (
	"context"

	"github.com/google/uuid"

	"voyage/internal/modules/dialogue"
	"voyage/internal/modules/itinerary"
)

type tripStore interface {
	Insert(ctx context.Context, t *Trip) error
	Get(ctx context.Context, userID, id string) (*Trip, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*Trip, error)
}

type Service struct {
	store tripStore
}

func NewService(store tripStore) *Service {
	return &Service{store: store}
}

// Save stores a completed itinerary and returns the new trip.
func (s *Service) Save(ctx context.Context, userID, sessionID string, prefs dialogue.Preferences, it *itinerary.Itinerary) (*Trip, error) {
	t := &Trip{
		ID:          uuid.NewString(),
		UserID:      userID,
		SessionID:   sessionID,
		Preferences: prefs,
		Itinerary:   it,
	}
	if it != nil {
		t.Destination = it.TripPlan.Destination
		t.TotalDays = int(it.TripPlan.TotalDays)
	}
	if t.Destination == "" {
		t.Destination = prefs.Destination
	}
	if err := s.store.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Trip, error) {
	return s.store.Get(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string, limit int) ([]*Trip, error) {
	if limit <= 0 || limit > 100 {
		limit = DefaultListLimit
	}
	return s.store.ListByUser(ctx, userID, limit)
}
