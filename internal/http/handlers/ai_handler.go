// README: Stateless generation endpoint taking the whole {messages, isfinal} log per call.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/http/middleware"
	"voyage/internal/service"
	"voyage/internal/types"
)

type AIHandler struct {
	planner *service.TripPlanner
}

func NewAIHandler(planner *service.TripPlanner) *AIHandler {
	return &AIHandler{planner: planner}
}

type aiModelReq struct {
	Messages []types.Message `json:"messages"`
	IsFinal  bool            `json:"isfinal"`
}

// Generate handles POST /api/aimodel. The response is {resp, ui} in
// conversational mode, the itinerary in final mode, or {error}.
func (h *AIHandler) Generate(c *gin.Context) {
	var req aiModelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Messages) == 0 {
		writeError(c, http.StatusBadRequest, "missing messages")
		return
	}

	out, err := h.planner.Generate(c.Request.Context(), middleware.CallerUID(c), req.Messages, req.IsFinal)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}
