package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/dialogue"
	"voyage/internal/modules/quota"
	"voyage/internal/modules/session"
	"voyage/internal/modules/trip"
	"voyage/internal/modules/user"
)

func TestWriteServiceError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err  error
		want int
	}{
		{dialogue.ErrEmptyInput, http.StatusBadRequest},
		{user.ErrBadRequest, http.StatusBadRequest},
		{session.ErrNotFound, http.StatusNotFound},
		{session.ErrForbidden, http.StatusNotFound},
		{trip.ErrNotFound, http.StatusNotFound},
		{session.ErrLocked, http.StatusConflict},
		{dialogue.ErrTurnInFlight, http.StatusConflict},
		{fmt.Errorf("persist session: %w", session.ErrVersionConflict), http.StatusConflict},
		{quota.ErrInsufficientTokens, http.StatusTooManyRequests},
		{fmt.Errorf("%w: bad json", dialogue.ErrItineraryFailed), http.StatusBadGateway},
		{dialogue.ErrGenerationTimeout, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		writeServiceError(c, tc.err)
		if w.Code != tc.want {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.want, w.Code)
		}
		var body errorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Error == "" {
			t.Errorf("%v: expected error body, got %q", tc.err, w.Body.String())
		}
	}
}

func TestGetWidget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/widgets/:ui", GetWidget)

	cases := map[string]int{
		"start":    http.StatusOK,
		"budget":   http.StatusOK,
		"duration": http.StatusOK,
		"weather":  http.StatusNotFound,
	}
	for ui, want := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets/"+ui, nil))
		if w.Code != want {
			t.Errorf("%s: expected %d, got %d", ui, want, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets/budget", nil))
	var widget dialogue.Widget
	if err := json.Unmarshal(w.Body.Bytes(), &widget); err != nil {
		t.Fatalf("decode widget: %v", err)
	}
	if widget.Kind != dialogue.WidgetOptions || len(widget.Options) != 3 {
		t.Errorf("unexpected budget widget %+v", widget)
	}
}
