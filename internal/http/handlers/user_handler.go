// README: User-record handler, called once per sign-in.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/http/middleware"
	"voyage/internal/modules/quota"
	"voyage/internal/modules/user"
)

type UserHandler struct {
	users *user.Service
	quota *quota.Service
}

func NewUserHandler(users *user.Service, q *quota.Service) *UserHandler {
	return &UserHandler{users: users, quota: q}
}

// Upsert handles POST /api/users with {email, imageUrl, name}. The email
// falls back to the token's email claim.
func (h *UserHandler) Upsert(c *gin.Context) {
	var req user.UpsertInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Email == "" {
		req.Email = middleware.CallerEmail(c)
	}

	rec, err := h.users.Upsert(c.Request.Context(), middleware.CallerUID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rec)
}

// Usage handles GET /api/usage.
func (h *UserHandler) Usage(c *gin.Context) {
	u, err := h.quota.Usage(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, u)
}
