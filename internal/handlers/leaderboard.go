package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"walletroast/internal/models"
	dbconfig "walletroast/pkg/config"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// sortColumns maps API sort keys to table columns. Anything else falls
// back to score.
var sortColumns = map[string]string{
	"score":       "score",
	"totalTrades": "total_trades",
	"gasSpent":    "gas_spent_sol",
	"walletValue": "wallet_value_usd",
}

// LeaderboardResponse is the paginated leaderboard payload
type LeaderboardResponse struct {
	Entries []models.WalletRecord `json:"entries"`
	Total   int64                 `json:"total"`
	Page    int                   `json:"page"`
	Limit   int                   `json:"limit"`
}

// GetLeaderboard returns a sorted, paginated page of wallet records
func GetLeaderboard(c *gin.Context) {
	column, ok := sortColumns[c.Query("sort")]
	if !ok {
		column = "score"
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	query := dbconfig.DB.Model(&models.WalletRecord{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("address LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var entries []models.WalletRecord
	if err := query.
		Order(column + " DESC").
		Order("last_seen_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, LeaderboardResponse{
		Entries: entries,
		Total:   total,
		Page:    page,
		Limit:   limit,
	})
}

// LeaderboardStats is the aggregate summary of the leaderboard
type LeaderboardStats struct {
	TotalWallets   int64   `json:"totalWallets"`
	AvgScore       float64 `json:"avgScore"`
	TopScore       int     `json:"topScore"`
	TotalGasBurned float64 `json:"totalGasBurned"`
}

// GetLeaderboardStats returns aggregate statistics over all records
func GetLeaderboardStats(c *gin.Context) {
	var stats LeaderboardStats

	row := dbconfig.DB.Model(&models.WalletRecord{}).
		Select("COUNT(*) AS total_wallets, COALESCE(AVG(score), 0) AS avg_score, COALESCE(MAX(score), 0) AS top_score, COALESCE(SUM(gas_spent_sol), 0) AS total_gas_burned")
	if err := row.Scan(&stats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
