package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// WalletSnapshot is the latest-state payload written to the leaderboard
// after an analysis. It is also the message body on the analysis queue.
type WalletSnapshot struct {
	Address          string   `json:"address"`
	Score            int      `json:"score"`
	TotalTrades      int      `json:"total_trades"`
	GasSpentSol      float64  `json:"gas_spent_sol"`
	Pnl              *float64 `json:"pnl,omitempty"`
	WalletValueUsd   float64  `json:"wallet_value_usd"`
	NativeBalanceSol float64  `json:"native_balance_sol"`
	SolPriceUsd      float64  `json:"sol_price_usd"`
	Roast            string   `json:"roast"`
}

// UpsertWalletSnapshot writes the latest snapshot for an address, creating
// the row on first sight. Score and value columns are always overwritten;
// Pnl is only touched when the snapshot carries one.
func UpsertWalletSnapshot(db *gorm.DB, snap WalletSnapshot) error {
	if snap.Address == "" {
		return fmt.Errorf("snapshot missing address")
	}

	var record WalletRecord
	err := db.Where("address = ?", snap.Address).First(&record).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to load wallet record: %w", err)
	}

	record.Address = snap.Address
	record.Score = snap.Score
	record.TotalTrades = snap.TotalTrades
	record.GasSpentSol = snap.GasSpentSol
	record.WalletValueUsd = snap.WalletValueUsd
	record.NativeBalanceSol = snap.NativeBalanceSol
	record.SolPriceUsd = snap.SolPriceUsd
	record.LastSeenAt = time.Now().UTC()
	if snap.Pnl != nil {
		record.Pnl = *snap.Pnl
	}
	if snap.Roast != "" {
		record.LastRoast = snap.Roast
	}

	if err := db.Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save wallet record: %w", err)
	}
	return nil
}

// RefreshLeaderboardRanks recomputes dense ranks by score. Called from
// the worker's cron schedule.
func RefreshLeaderboardRanks(db *gorm.DB) error {
	return db.Exec(`
		UPDATE wallet_records w
		SET rank = r.rank
		FROM (
			SELECT id, DENSE_RANK() OVER (ORDER BY score DESC) AS rank
			FROM wallet_records
		) r
		WHERE w.id = r.id
	`).Error
}

// IncrementVisitorCount bumps the singleton visitor counter, creating it
// on first use.
func IncrementVisitorCount(db *gorm.DB) (int64, error) {
	var counter VisitorCount
	err := db.First(&counter, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = VisitorCount{ID: 1, Count: 0}
	} else if err != nil {
		return 0, fmt.Errorf("failed to load visitor count: %w", err)
	}

	counter.Count++
	if err := db.Save(&counter).Error; err != nil {
		return 0, fmt.Errorf("failed to save visitor count: %w", err)
	}
	return counter.Count, nil
}
