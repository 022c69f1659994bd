package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateScoreBands(t *testing.T) {
	cases := []struct {
		name  string
		stats WalletStatistics
		want  int
	}{
		{"empty wallet eats the success penalty", WalletStatistics{}, 35},
		{"heavy volume and clean record", WalletStatistics{TotalTrades: 150, SuccessRate: 96, AvgGasPerTxSol: 0.0005, NativeBalanceSol: 15}, 95},
		{"mid volume", WalletStatistics{TotalTrades: 60, SuccessRate: 92}, 70},
		{"light volume", WalletStatistics{TotalTrades: 11, SuccessRate: 85}, 60},
		{"failing wallet", WalletStatistics{TotalTrades: 5, SuccessRate: 40}, 35},
		{"mediocre success", WalletStatistics{TotalTrades: 5, SuccessRate: 65}, 40},
		{"gas waster", WalletStatistics{TotalTrades: 20, SuccessRate: 85, AvgGasPerTxSol: 0.02}, 55},
		{"balance only", WalletStatistics{NativeBalanceSol: 2}, 40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CalculateScore(&tc.stats))
		})
	}
}

func TestCalculateScoreClamped(t *testing.T) {
	// Every penalty band at once still cannot go below zero.
	low := &WalletStatistics{TotalTrades: 5, SuccessRate: 10, AvgGasPerTxSol: 0.5}
	score := CalculateScore(low)
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)

	high := &WalletStatistics{TotalTrades: 1000, SuccessRate: 100, AvgGasPerTxSol: 0.0001, NativeBalanceSol: 500}
	score = CalculateScore(high)
	assert.LessOrEqual(t, score, 100)
}

func TestCalculateScoreGasNeedsActivity(t *testing.T) {
	// Zero trades means the gas bands never apply, in either direction.
	idle := &WalletStatistics{SuccessRate: 85, AvgGasPerTxSol: 0.0005}
	assert.Equal(t, 55, CalculateScore(idle))
}

func TestCalculateScoreDeterministic(t *testing.T) {
	stats := &WalletStatistics{TotalTrades: 75, SuccessRate: 88, AvgGasPerTxSol: 0.002, NativeBalanceSol: 3.2}
	first := CalculateScore(stats)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CalculateScore(stats))
	}
}
