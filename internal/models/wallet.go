package models

import (
	"time"
)

// WalletRecord is the persisted leaderboard snapshot for a single wallet.
// One row per address; every analysis overwrites the score/value columns
// with the latest computed state. Rows are never deleted.
type WalletRecord struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Address          string    `json:"address" gorm:"size:64;not null;uniqueIndex"`
	Score            int       `json:"score" gorm:"not null;index"`
	TotalTrades      int       `json:"total_trades"`
	GasSpentSol      float64   `json:"gas_spent_sol"`
	Pnl              float64   `json:"pnl"`
	WalletValueUsd   float64   `json:"wallet_value_usd" gorm:"index"`
	NativeBalanceSol float64   `json:"native_balance_sol"`
	SolPriceUsd      float64   `json:"sol_price_usd"`
	LastRoast        string    `json:"last_roast" gorm:"type:text"`
	Rank             int       `json:"rank" gorm:"index"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	LastSeenAt       time.Time `json:"last_seen_at" gorm:"autoUpdateTime"`
}

// VisitorCount is a singleton counter row (id is always 1).
type VisitorCount struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Count     int64     `json:"count" gorm:"not null;default:0"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
