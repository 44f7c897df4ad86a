// README: End-to-end router tests over the in-memory session store with a scripted provider.
package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httptransport "voyage/internal/http"
	"voyage/internal/ai"
	"voyage/internal/infra"
	"voyage/internal/modules/dialogue"
	"voyage/internal/modules/itinerary"
	"voyage/internal/modules/session"
	"voyage/internal/service"
	"voyage/internal/types"
)

type fakeProvider struct {
	mu    sync.Mutex
	turns []ai.TurnResult
	fail  error
}

func (p *fakeProvider) Converse(_ context.Context, _ []types.Message) (*ai.TurnResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return nil, p.fail
	}
	if len(p.turns) == 0 {
		return &ai.TurnResult{Resp: "Tell me more", UI: "interests"}, nil
	}
	next := p.turns[0]
	p.turns = p.turns[1:]
	return &next, nil
}

func (p *fakeProvider) PlanItinerary(_ context.Context, _ []types.Message) (*itinerary.Itinerary, error) {
	return &itinerary.Itinerary{TripPlan: itinerary.TripPlan{Destination: "Lisbon", TotalDays: 1}}, nil
}

type fakePhotos struct{}

func (fakePhotos) Photo(_ context.Context, ref string) (string, io.ReadCloser, error) {
	if ref == "broken" {
		return "", nil, errors.New("upstream down")
	}
	return "image/png", io.NopCloser(strings.NewReader("png-bytes")), nil
}

func newTestServer(t *testing.T, provider *fakeProvider) (*gin.Engine, *session.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := session.NewMemoryStore(time.Minute)
	planner := service.NewTripPlanner(provider, itinerary.NewEnricher(nil, 0), store, nil, nil, service.PlannerConfig{})
	r := httptransport.NewRouter(httptransport.RouterDeps{
		Planner:  planner,
		Photos:   fakePhotos{},
		Verifier: infra.DevVerifier{},
	})
	return r, store
}

func call(r *gin.Engine, method, path, uid string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if uid != "" {
		req.Header.Set("Authorization", "Bearer dev:"+uid)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, r *gin.Engine, uid string) string {
	t.Helper()
	w := call(r, http.MethodPost, "/api/sessions", uid, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.SessionID)
	return out.SessionID
}

func TestHealthIsPublic(t *testing.T) {
	r, _ := newTestServer(t, &fakeProvider{})
	w := call(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIRequiresAuth(t *testing.T) {
	r, _ := newTestServer(t, &fakeProvider{})
	w := call(r, http.MethodPost, "/api/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionTurnsOverHTTP(t *testing.T) {
	provider := &fakeProvider{turns: []ai.TurnResult{
		{Resp: "What is your budget?", UI: "budget"},
		{Resp: "Ready when you are", UI: "final"},
	}}
	r, _ := newTestServer(t, provider)
	id := createSession(t, r, "ada")

	w := call(r, http.MethodPost, "/api/sessions/"+id+"/messages", "ada", map[string]string{"content": "Lisbon please"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var turn service.TurnResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turn))
	assert.Equal(t, types.UIBudget, turn.UI)
	require.NotNil(t, turn.Widget)
	assert.Len(t, turn.Widget.Options, 3)

	w = call(r, http.MethodPost, "/api/sessions/"+id+"/messages", "ada", map[string]string{"content": "Moderate:Keep cost on the average side"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turn))
	assert.Equal(t, types.UIFinal, turn.UI)

	w = call(r, http.MethodPost, "/api/sessions/"+id+"/messages", "ada", map[string]string{"content": turn.Widget.Options[0].Value})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turn))
	require.NotNil(t, turn.Itinerary)
	assert.Equal(t, "Lisbon", turn.Itinerary.TripPlan.Destination)
	assert.Len(t, turn.Itinerary.Days, 1)

	w = call(r, http.MethodGet, "/api/sessions/"+id, "ada", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data session.Data
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	assert.Len(t, data.Messages, 5)
	assert.NotNil(t, data.Itinerary)
}

func TestSessionErrorsOverHTTP(t *testing.T) {
	r, store := newTestServer(t, &fakeProvider{})
	id := createSession(t, r, "ada")

	w := call(r, http.MethodPost, "/api/sessions/"+id+"/messages", "ada", map[string]string{"content": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, http.MethodGet, "/api/sessions/"+id, "mallory", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "other users cannot see the session")

	token, err := store.TryLock(context.Background(), id, time.Minute)
	require.NoError(t, err)
	w = call(r, http.MethodPost, "/api/sessions/"+id+"/messages", "ada", map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NoError(t, store.Unlock(context.Background(), id, token))

	w = call(r, http.MethodDelete, "/api/sessions/"+id, "ada", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = call(r, http.MethodGet, "/api/sessions/"+id, "ada", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLegacyAIModelEndpoint(t *testing.T) {
	r, _ := newTestServer(t, &fakeProvider{turns: []ai.TurnResult{{Resp: "Where to?", UI: "destination"}}})
	messages := []types.Message{types.UserMessage("Plan a trip")}

	w := call(r, http.MethodPost, "/api/aimodel", "ada", map[string]any{"messages": messages, "isfinal": false})
	require.Equal(t, http.StatusOK, w.Code)
	var turn ai.TurnResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turn))
	assert.Equal(t, "destination", turn.UI)

	w = call(r, http.MethodPost, "/api/aimodel", "ada", map[string]any{"messages": messages, "isfinal": true})
	require.Equal(t, http.StatusOK, w.Code)
	var it itinerary.Itinerary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &it))
	assert.Equal(t, "Lisbon", it.TripPlan.Destination)

	w = call(r, http.MethodPost, "/api/aimodel", "ada", map[string]any{"messages": []types.Message{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLegacyAIModelEndpoint_UnusableReplyIsApology(t *testing.T) {
	r, _ := newTestServer(t, &fakeProvider{fail: ai.ErrMalformedResponse})

	w := call(r, http.MethodPost, "/api/aimodel", "ada", map[string]any{
		"messages": []types.Message{types.UserMessage("hi")},
		"isfinal":  false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var turn ai.TurnResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turn))
	assert.Equal(t, dialogue.MalformedReply, turn.Resp)
	assert.Equal(t, "error", turn.UI)
}

func TestPhotoProxyIsPublic(t *testing.T) {
	r, _ := newTestServer(t, &fakeProvider{})

	w := call(r, http.MethodGet, "/api/photos/abc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", w.Body.String())

	w = call(r, http.MethodGet, "/api/photos/broken", "", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestOptionalRoutesAbsentWithoutDatabase(t *testing.T) {
	r, _ := newTestServer(t, &fakeProvider{})
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodGet, "/api/trips", "ada", nil).Code)
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodGet, "/api/usage", "ada", nil).Code)
}
