package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jetset/handlers"
)

// RegisterBookingRoutes registers the per-domain booking tool surface.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api/bookings/:domain/:userID")
	{
		api.GET("", handlers.GetBookingHandler)
		api.PATCH("", handlers.UpdateBookingHandler)
		api.POST("/price", handlers.ComputePriceHandler)
		api.POST("/confirm", handlers.ConfirmBookingHandler)
		api.GET("/active", handlers.HasActiveBookingHandler)
	}
}

// RegisterAssistantRoutes registers the conversational routing endpoint.
func RegisterAssistantRoutes(r *gin.Engine) {
	api := r.Group("/api/assistant")
	{
		api.POST("/route", handlers.RouteHandler)
	}
}

// RegisterUtilityRoutes registers time and health endpoints.
func RegisterUtilityRoutes(r *gin.Engine) {
	r.GET("/api/time/now", handlers.TimeNowHandler)
	r.GET("/api/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAssistantRoutes(r)
	RegisterBookingRoutes(r)
	RegisterUtilityRoutes(r)
}
