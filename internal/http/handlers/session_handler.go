// README: Session handlers (create/get/delete and the per-turn message endpoint).
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"voyage/internal/http/middleware"
	"voyage/internal/service"
)

type SessionHandler struct {
	planner *service.TripPlanner
}

func NewSessionHandler(planner *service.TripPlanner) *SessionHandler {
	return &SessionHandler{planner: planner}
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	data, err := h.planner.CreateSession(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"session_id": data.ID, "messages": data.Messages})
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	data, err := h.planner.GetSession(c.Request.Context(), middleware.CallerUID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, data)
}

// Delete handles DELETE /api/sessions/:id.
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.planner.DeleteSession(c.Request.Context(), middleware.CallerUID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type postMessageReq struct {
	Content string `json:"content"`
}

// PostMessage handles POST /api/sessions/:id/messages.
func (h *SessionHandler) PostMessage(c *gin.Context) {
	var req postMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(c, http.StatusBadRequest, "missing content")
		return
	}

	res, err := h.planner.SendMessage(c.Request.Context(), middleware.CallerUID(c), c.Param("id"), req.Content)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}
