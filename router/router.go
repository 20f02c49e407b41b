package router

import (
	"net/http"

	"github.com/formgate/contact-backend/config"
	"github.com/formgate/contact-backend/handlers"
	"github.com/formgate/contact-backend/middleware"
	"github.com/formgate/contact-backend/services"
	"github.com/formgate/contact-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies holds everything required for setting up routes.
type Dependencies struct {
	Config         *config.Config
	ContactHandler *handlers.ContactHandler
	HealthHandler  *handlers.HealthHandler
	RateLimiter    services.RateLimiterInterface
}

// SetupRouter configures and returns the main Gin engine with all routes
// defined. The general rate-limit scope covers the whole /api group; the
// stricter contact scope guards only the submission endpoint and runs
// before validation.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Global middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Metrics and API docs live outside the rate-limited API group.
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	rl := deps.Config.RateLimit

	api := r.Group("/api")
	api.Use(middleware.RateLimiter(
		deps.RateLimiter,
		middleware.ScopeAPI,
		rl.APIRequestLimit,
		rl.APIWindow(),
	))
	{
		api.GET("/health", deps.HealthHandler.Health)
		api.GET("/health/readiness", deps.HealthHandler.Readiness)

		api.POST("/contact",
			middleware.RateLimiter(
				deps.RateLimiter,
				middleware.ScopeContact,
				rl.ContactRequestLimit,
				rl.ContactWindow(),
			),
			deps.ContactHandler.SubmitContact,
		)

		// Admin surface. No authentication is enforced; any caller reaching
		// these endpoints can read, mutate or destroy every record.
		api.GET("/contacts", deps.ContactHandler.ListContacts)
		api.PATCH("/contacts/:id", deps.ContactHandler.UpdateContactStatus)
		api.DELETE("/contacts/:id", deps.ContactHandler.DeleteContact)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, types.Response{
			Success: false,
			Message: "Route not found",
		})
	})

	return r
}
