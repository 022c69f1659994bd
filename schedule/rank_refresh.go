package schedule

import (
	log "github.com/sirupsen/logrus"

	"walletroast/internal/models"
	dbconfig "walletroast/pkg/config"
)

// RefreshRanks recomputes the dense rank column for every leaderboard row.
func RefreshRanks() error {
	if err := models.RefreshLeaderboardRanks(dbconfig.DB); err != nil {
		log.Errorf("Failed to refresh leaderboard ranks: %v", err)
		return err
	}
	log.Info("Leaderboard ranks refreshed")
	return nil
}
