package analyzer

// CalculateScore maps a statistics record to a 0-100 reputation score.
// Deterministic and stateless: additive band bonuses and penalties
// against a base of 50, clamped at the end. This is the canonical rule
// set; the mock-data generator feeds its synthetic stats through the
// same function.
func CalculateScore(stats *WalletStatistics) int {
	score := 50

	// Activity volume
	switch {
	case stats.TotalTrades > 100:
		score += 15
	case stats.TotalTrades > 50:
		score += 10
	case stats.TotalTrades > 10:
		score += 5
	}

	// Success rate, bonus bands first, then penalties
	switch {
	case stats.SuccessRate > 95:
		score += 15
	case stats.SuccessRate > 90:
		score += 10
	case stats.SuccessRate > 80:
		score += 5
	case stats.SuccessRate < 50:
		score -= 15
	case stats.SuccessRate < 70:
		score -= 10
	}

	// Gas discipline only counts once there is activity to judge
	if stats.TotalTrades > 0 {
		if stats.AvgGasPerTxSol > 0.01 {
			score -= 5
		} else if stats.AvgGasPerTxSol > 0 && stats.AvgGasPerTxSol < 0.001 {
			score += 5
		}
	}

	// Balance bands
	switch {
	case stats.NativeBalanceSol > 10:
		score += 10
	case stats.NativeBalanceSol > 1:
		score += 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
