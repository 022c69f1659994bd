package routes

import (
	"github.com/gin-gonic/gin"

	"walletroast/internal/handlers"
)

// SetupVisitorRoutes sets up all routes related to the visitor counter
func SetupVisitorRoutes(r *gin.Engine) {
	v1 := r.Group("/api/visitors")
	{
		v1.GET("", handlers.GetVisitors)
		v1.POST("/increment", handlers.IncrementVisitors)
	}
}
