package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"walletroast/internal/analyzer"
	"walletroast/internal/models"
	dbconfig "walletroast/pkg/config"
)

// Analysis is the shared pipeline instance, set once from main.
var Analysis *analyzer.Analyzer

// Roaster is the shared roast generator, set once from main.
var Roaster analyzer.Roaster

// AnalyzeWallet analyzes a wallet with default options
func AnalyzeWallet(c *gin.Context) {
	address := c.Param("address")

	result := Analysis.AnalyzeWallet(c.Request.Context(), address, analyzer.Options{
		IncludeHistogram: true,
	})
	c.JSON(http.StatusOK, result)
}

// AnalyzeWalletWithOptions analyzes a wallet with an options body
func AnalyzeWalletWithOptions(c *gin.Context) {
	address := c.Param("address")

	var opts analyzer.Options
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := Analysis.AnalyzeWallet(c.Request.Context(), address, opts)
	c.JSON(http.StatusOK, result)
}

// RoastRequest optionally carries a precomputed statistics record. When
// absent the wallet is re-analyzed first.
type RoastRequest struct {
	Stats *analyzer.WalletStatistics `json:"stats"`
}

// RoastWallet returns a roast for the wallet, without the full payload
func RoastWallet(c *gin.Context) {
	address := c.Param("address")
	if !analyzer.ValidAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": analyzer.ErrKindInvalidAddress})
		return
	}

	var req RoastRequest
	// Body is optional; a bad body just means a fresh analysis.
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithError(err).Debug("Roast request without usable body")
	}

	if req.Stats != nil {
		req.Stats.Address = address
		c.JSON(http.StatusOK, gin.H{"roast": Roaster.Roast(c.Request.Context(), req.Stats)})
		return
	}

	result := Analysis.AnalyzeWallet(c.Request.Context(), address, analyzer.Options{})
	c.JSON(http.StatusOK, gin.H{"roast": result.Roast, "error": result.Stats.Error})
}

// UpsertLeaderboard explicitly writes a snapshot for the address
func UpsertLeaderboard(c *gin.Context) {
	address := c.Param("address")
	if !analyzer.ValidAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": analyzer.ErrKindInvalidAddress})
		return
	}

	var snap models.WalletSnapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap.Address = address

	if err := models.UpsertWalletSnapshot(dbconfig.DB, snap); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var record models.WalletRecord
	if err := dbconfig.DB.Where("address = ?", address).First(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}
