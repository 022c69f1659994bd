package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"walletroast/internal/models"
	dbconfig "walletroast/pkg/config"
)

// GetVisitors returns the visitor counter
func GetVisitors(c *gin.Context) {
	var counter models.VisitorCount
	if err := dbconfig.DB.First(&counter, 1).Error; err != nil {
		// No row yet means nobody was counted.
		c.JSON(http.StatusOK, gin.H{"count": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": counter.Count})
}

// IncrementVisitors bumps and returns the visitor counter
func IncrementVisitors(c *gin.Context) {
	count, err := models.IncrementVisitorCount(dbconfig.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
