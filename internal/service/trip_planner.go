// README: Trip planner service; runs dialogue turns against stored sessions with locking, quota and trip saving.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"voyage/internal/ai"
	"voyage/internal/modules/dialogue"
	"voyage/internal/modules/itinerary"
	"voyage/internal/modules/quota"
	"voyage/internal/modules/session"
	"voyage/internal/modules/trip"
	"voyage/internal/types"
)

// lockSlack keeps the turn lock alive a little past the slowest generation
// plus enrichment.
const lockSlack = 15 * time.Second

// QuotaCharger debits and credits generation tokens.
type QuotaCharger interface {
	Charge(ctx context.Context, uid string, cost int) error
	Refund(ctx context.Context, uid string, cost int) error
}

// TripSaver stores completed itineraries.
type TripSaver interface {
	Save(ctx context.Context, userID, sessionID string, prefs dialogue.Preferences, it *itinerary.Itinerary) (*trip.Trip, error)
}

type PlannerConfig struct {
	Dialogue dialogue.Config
	PlanCost int
}

// TripPlanner owns the session lifecycle for HTTP and CLI callers.
type TripPlanner struct {
	provider dialogue.Generator
	enricher dialogue.ItineraryEnricher
	sessions session.Store
	quota    QuotaCharger
	trips    TripSaver
	cfg      PlannerConfig
	lockTTL  time.Duration
}

// NewTripPlanner wires the planner. quota and trips may be nil, which
// disables charging and trip saving respectively.
func NewTripPlanner(provider dialogue.Generator, enricher dialogue.ItineraryEnricher, sessions session.Store, q QuotaCharger, trips TripSaver, cfg PlannerConfig) *TripPlanner {
	if cfg.PlanCost <= 0 {
		cfg.PlanCost = quota.DefaultPlanCost
	}
	if cfg.Dialogue.ChatTimeout <= 0 {
		cfg.Dialogue.ChatTimeout = dialogue.DefaultChatTimeout
	}
	if cfg.Dialogue.PlanTimeout <= 0 {
		cfg.Dialogue.PlanTimeout = dialogue.DefaultPlanTimeout
	}
	if cfg.Dialogue.EnrichTimeout <= 0 {
		cfg.Dialogue.EnrichTimeout = dialogue.DefaultEnrichTimeout
	}
	return &TripPlanner{
		provider: provider,
		enricher: enricher,
		sessions: sessions,
		quota:    q,
		trips:    trips,
		cfg:      cfg,
		lockTTL:  cfg.Dialogue.PlanTimeout + cfg.Dialogue.EnrichTimeout + lockSlack,
	}
}

// TurnResult is the render-ready response for one posted message.
type TurnResult struct {
	SessionID   string                `json:"session_id"`
	Message     string                `json:"message"`
	UI          types.UITag           `json:"ui"`
	Widget      *dialogue.Widget      `json:"widget,omitempty"`
	Failure     dialogue.Failure      `json:"failure,omitempty"`
	Itinerary   *itinerary.Itinerary  `json:"itinerary,omitempty"`
	Preferences *dialogue.Preferences `json:"preferences,omitempty"`
	TripID      string                `json:"trip_id,omitempty"`
}

func (p *TripPlanner) CreateSession(ctx context.Context, uid string) (*session.Data, error) {
	data := &session.Data{ID: uuid.NewString(), UserID: uid, Messages: []types.Message{}}
	if err := p.sessions.Create(ctx, data); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return data, nil
}

func (p *TripPlanner) GetSession(ctx context.Context, uid, id string) (*session.Data, error) {
	data, err := p.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if data.UserID != uid {
		return nil, session.ErrForbidden
	}
	return data, nil
}

func (p *TripPlanner) DeleteSession(ctx context.Context, uid, id string) error {
	if _, err := p.GetSession(ctx, uid, id); err != nil {
		return err
	}
	return p.sessions.Delete(ctx, id)
}

// SendMessage runs one turn for a stored session. Only one turn per session
// runs at a time across all instances; a concurrent call gets session.ErrLocked.
func (p *TripPlanner) SendMessage(ctx context.Context, uid, sessionID, content string) (*TurnResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, dialogue.ErrEmptyInput
	}
	if _, err := p.GetSession(ctx, uid, sessionID); err != nil {
		return nil, err
	}

	token, err := p.sessions.TryLock(ctx, sessionID, p.lockTTL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := p.sessions.Unlock(context.WithoutCancel(ctx), sessionID, token); err != nil {
			log.Printf("planner: unlock session %s: %v", sessionID, err)
		}
	}()

	// Re-read under the lock so the update below carries the latest version.
	data, err := p.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	driver := dialogue.NewDriver(p.provider, p.enricher, p.cfg.Dialogue, data.Messages)
	cost := quota.TurnCost
	if driver.IsFinal() {
		cost = p.cfg.PlanCost
	}
	if err := p.charge(ctx, uid, cost); err != nil {
		return nil, err
	}

	out, err := driver.Send(ctx, content)
	if err != nil {
		p.refund(ctx, uid, cost)
		return nil, err
	}
	if out.Failure != dialogue.FailureNone {
		p.refund(ctx, uid, cost)
	}

	data.Messages = driver.Messages()
	data.Preferences = dialogue.Extract(data.Messages)

	result := &TurnResult{SessionID: sessionID}
	if out.Final {
		data.Itinerary = out.Itinerary
		data.Preferences = out.Preferences
		if p.trips != nil {
			saved, err := p.trips.Save(ctx, uid, sessionID, out.Preferences, out.Itinerary)
			if err != nil {
				log.Printf("planner: save trip for session %s: %v", sessionID, err)
			} else {
				data.TripID = saved.ID
			}
		}
		result.Message = readyMessage(out.Itinerary, out.Preferences)
		result.UI = types.UIFinal
		result.Itinerary = out.Itinerary
		result.TripID = data.TripID
	} else {
		result.Message = out.Message.Content
		result.UI = out.Message.UI
		result.Failure = out.Failure
		if w, ok := dialogue.WidgetFor(out.Message.UI, data.Preferences); ok {
			result.Widget = w
		}
	}
	prefs := data.Preferences
	result.Preferences = &prefs

	if err := p.sessions.Update(ctx, data); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return result, nil
}

// Generate is the stateless form of a turn: the caller supplies the whole
// log and whether to request the itinerary. An unparseable conversational
// reply becomes the apology turn tagged error; every other failure, and any
// final-mode failure, is returned.
func (p *TripPlanner) Generate(ctx context.Context, uid string, messages []types.Message, final bool) (any, error) {
	if len(messages) == 0 {
		return nil, dialogue.ErrEmptyInput
	}
	cost := quota.TurnCost
	if final {
		cost = p.cfg.PlanCost
	}
	if err := p.charge(ctx, uid, cost); err != nil {
		return nil, err
	}

	if !final {
		callCtx, cancel := context.WithTimeout(ctx, p.cfg.Dialogue.ChatTimeout)
		defer cancel()
		res, err := p.provider.Converse(callCtx, messages)
		if err != nil {
			p.refund(ctx, uid, cost)
			if errors.Is(err, ai.ErrMalformedResponse) || errors.Is(err, ai.ErrEmptyResponse) {
				log.Printf("planner: unusable model reply: %v", err)
				return &ai.TurnResult{Resp: dialogue.MalformedReply, UI: string(types.UIError)}, nil
			}
			return nil, err
		}
		return &ai.TurnResult{Resp: res.Resp, UI: string(res.Tag())}, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, p.cfg.Dialogue.PlanTimeout)
	defer cancel()
	it, err := p.provider.PlanItinerary(callCtx, messages)
	if err != nil {
		p.refund(ctx, uid, cost)
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", dialogue.ErrGenerationTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", dialogue.ErrItineraryFailed, err)
	}
	return dialogue.EnrichWithin(ctx, p.enricher, itinerary.Validate(it), p.cfg.Dialogue.EnrichTimeout), nil
}

func (p *TripPlanner) charge(ctx context.Context, uid string, cost int) error {
	if p.quota == nil {
		return nil
	}
	return p.quota.Charge(ctx, uid, cost)
}

func (p *TripPlanner) refund(ctx context.Context, uid string, cost int) {
	if p.quota == nil {
		return
	}
	if err := p.quota.Refund(context.WithoutCancel(ctx), uid, cost); err != nil {
		log.Printf("planner: refund %d tokens for %s: %v", cost, uid, err)
	}
}

func readyMessage(it *itinerary.Itinerary, prefs dialogue.Preferences) string {
	dest := prefs.Destination
	if it != nil && it.TripPlan.Destination != "" {
		dest = it.TripPlan.Destination
	}
	if dest == "" {
		return "Your trip is ready!"
	}
	return fmt.Sprintf("Your trip to %s is ready!", dest)
}
