// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/http/handlers"
	"voyage/internal/http/middleware"
	"voyage/internal/infra"
	"voyage/internal/modules/quota"
	"voyage/internal/modules/trip"
	"voyage/internal/modules/user"
	"voyage/internal/service"
)

// RouterDeps carries the services behind the API. Users, Quota, Trips and
// Photos may be nil, in which case their routes are not registered.
type RouterDeps struct {
	Planner  *service.TripPlanner
	Users    *user.Service
	Quota    *quota.Service
	Trips    *trip.Service
	Photos   handlers.PhotoSource
	Verifier infra.TokenVerifier
	Limiter  *middleware.RateLimiter
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(), middleware.SecurityHeaders())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(0, 0)
	}

	public := r.Group("/api", limiter.Limit())
	if deps.Photos != nil {
		photoHandler := handlers.NewPhotoHandler(deps.Photos)
		public.GET("/photos/:ref", photoHandler.Get)
	}

	api := r.Group("/api", middleware.Auth(deps.Verifier), limiter.Limit())

	sessionHandler := handlers.NewSessionHandler(deps.Planner)
	api.POST("/sessions", sessionHandler.Create)
	api.GET("/sessions/:id", sessionHandler.Get)
	api.DELETE("/sessions/:id", sessionHandler.Delete)
	api.POST("/sessions/:id/messages", sessionHandler.PostMessage)

	aiHandler := handlers.NewAIHandler(deps.Planner)
	api.POST("/aimodel", aiHandler.Generate)

	api.GET("/widgets/:ui", handlers.GetWidget)

	userHandler := handlers.NewUserHandler(deps.Users, deps.Quota)
	if deps.Users != nil {
		api.POST("/users", userHandler.Upsert)
	}
	if deps.Quota != nil {
		api.GET("/usage", userHandler.Usage)
	}

	if deps.Trips != nil {
		tripHandler := handlers.NewTripHandler(deps.Trips)
		api.GET("/trips", tripHandler.List)
		api.GET("/trips/:id", tripHandler.Get)
	}

	return r
}
