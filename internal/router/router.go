package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/voteboard-dev/voteboard/internal/handlers"
	"github.com/voteboard-dev/voteboard/internal/middleware"
	"github.com/voteboard-dev/voteboard/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		features := api.Group("/features")
		{
			// Listing works anonymously; signed-in users get vote annotations.
			features.GET("", middleware.OptionalAuthMiddleware(), handlers.ListFeatures)

			features.POST("", middleware.AuthMiddleware(), handlers.CreateFeature)
			features.PATCH("/:feature_id", middleware.AuthMiddleware(), handlers.UpdateFeature)
			features.DELETE("/:feature_id", middleware.AuthMiddleware(), handlers.DeleteFeature)
			features.POST("/:feature_id/vote", middleware.AuthMiddleware(), handlers.ToggleVote)
			features.POST("/:feature_id/reconcile", middleware.AuthMiddleware(), handlers.ReconcileFeature)
		}
	}

	return r
}
