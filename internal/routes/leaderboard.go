package routes

import (
	"github.com/gin-gonic/gin"

	"walletroast/internal/handlers"
)

// SetupLeaderboardRoutes sets up all routes related to the leaderboard
func SetupLeaderboardRoutes(r *gin.Engine) {
	v1 := r.Group("/api/leaderboard")
	{
		v1.GET("", handlers.GetLeaderboard)
		v1.GET("/stats", handlers.GetLeaderboardStats)
	}
}
