package routes

import (
	"github.com/gin-gonic/gin"

	"walletroast/internal/handlers"
)

// SetupWalletRoutes sets up all routes related to wallet analysis
func SetupWalletRoutes(r *gin.Engine) {
	v1 := r.Group("/api/wallet")
	{
		v1.GET("/:address", handlers.AnalyzeWallet)
		v1.POST("/:address", handlers.AnalyzeWalletWithOptions)
		v1.POST("/:address/roast", handlers.RoastWallet)
		v1.POST("/:address/leaderboard", handlers.UpsertLeaderboard)
	}
}
