package analyzer

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"walletroast/pkg/helius"
)

const histogramDays = 30

// Per-event weight in the activity histogram.
const (
	activitySuccessWeight = 0.5
	activityFailureWeight = -0.5
	activityDayClamp      = 3.0
)

// CalculateStats derives WalletStatistics from raw wallet data and the
// current SOL price. Pure: identical inputs (including now) yield an
// identical record.
func CalculateStats(address string, data *helius.WalletData, solPriceUsd float64, now time.Time, includeHistogram bool) *WalletStatistics {
	stats := &WalletStatistics{
		Address:      address,
		SolPriceUsd:  solPriceUsd,
		Tokens:       data.Tokens,
		Achievements: []Achievement{},
	}
	if stats.Tokens == nil {
		stats.Tokens = []helius.TokenHolding{}
	}

	// Trade count prefers signature records; transaction details cover a
	// bounded prefix only.
	stats.TotalTrades = len(data.Signatures)
	if stats.TotalTrades == 0 {
		stats.TotalTrades = len(data.Transactions)
	}

	var gasLamports int64
	for _, tx := range data.Transactions {
		gasLamports += tx.Fee
		switch classifyTransaction(tx) {
		case "swap":
			stats.SwapCount++
		case "transfer":
			stats.TransferCount++
		case "mint":
			stats.MintCount++
		}
	}
	stats.GasSpentSol = roundTo(float64(gasLamports)/helius.LamportsPerSol, 6)
	if txCount := len(data.Transactions); txCount > 0 {
		stats.AvgGasPerTxSol = roundTo(stats.GasSpentSol/float64(txCount), 6)
	}

	stats.SuccessRate = successRate(data)

	events := eventTimes(data)
	stats.eventTimes = events
	if len(events) > 0 {
		first, last := events[0], events[len(events)-1]
		stats.FirstActivityAt = &first
		stats.LastActivityAt = &last

		age := now.Sub(first)
		if age > 0 {
			stats.AccountAgeDays = int(math.Ceil(age.Hours() / 24))
		}
		if stats.AccountAgeDays > 0 {
			stats.TxPerDay = roundTo(float64(stats.TotalTrades)/float64(stats.AccountAgeDays), 2)
		}
	}

	stats.NativeBalanceSol = roundTo(data.BalanceSol, 4)
	// Wallet value is always recomputed from its two operands.
	stats.WalletValueUsd = roundTo(stats.NativeBalanceSol*solPriceUsd, 2)

	stats.NativeBalance = fmt.Sprintf("%.4f", stats.NativeBalanceSol)
	stats.GasSpent = fmt.Sprintf("%.6f", stats.GasSpentSol)
	stats.AvgGasPerTx = fmt.Sprintf("%.6f", stats.AvgGasPerTxSol)
	stats.WalletValue = fmt.Sprintf("%.2f", stats.WalletValueUsd)

	if includeHistogram {
		stats.ActivityDays = activityHistogram(data, now)
	}

	stats.Score = CalculateScore(stats)
	stats.Achievements = GenerateAchievements(stats, events, now)

	return stats
}

// successRate computes the rounded success percentage over all available
// evidence, signatures first.
func successRate(data *helius.WalletData) int {
	total := len(data.Signatures)
	failed := 0
	if total > 0 {
		for _, sig := range data.Signatures {
			if sig.Failed {
				failed++
			}
		}
	} else {
		total = len(data.Transactions)
		for _, tx := range data.Transactions {
			if tx.Failed {
				failed++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(total-failed) / float64(total)))
}

// eventTimes collects every available timestamp, sorted oldest first.
// Signatures take precedence; they are typically ordered newest-first by
// the provider.
func eventTimes(data *helius.WalletData) []time.Time {
	var times []time.Time
	if len(data.Signatures) > 0 {
		for _, sig := range data.Signatures {
			if sig.BlockTime != nil && *sig.BlockTime > 0 {
				times = append(times, time.Unix(*sig.BlockTime, 0).UTC())
			}
		}
	} else {
		for _, tx := range data.Transactions {
			if tx.Timestamp > 0 {
				times = append(times, time.Unix(tx.Timestamp, 0).UTC())
			}
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

// swapPrograms are DEX program IDs treated as swap evidence when the
// description is silent.
var swapPrograms = map[string]bool{
	"JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4":  true, // Jupiter v6
	"675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8": true, // Raydium AMM
	"whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc":  true, // Orca Whirlpool
}

// classifyTransaction buckets a transaction as swap, transfer or mint.
// The free-text description is checked first, in priority order, then
// the parsed instruction program/type pairs.
func classifyTransaction(tx helius.EnhancedTransaction) string {
	desc := strings.ToLower(tx.Description + " " + tx.Type)
	switch {
	case strings.Contains(desc, "swap"):
		return "swap"
	case strings.Contains(desc, "transfer"), strings.Contains(desc, "sent"), strings.Contains(desc, "received"):
		return "transfer"
	case strings.Contains(desc, "mint"):
		return "mint"
	}

	for _, ins := range tx.Instructions {
		if swapPrograms[ins.ProgramID] {
			return "swap"
		}
		insType := strings.ToLower(ins.Type)
		switch {
		case insType == "transfer" || insType == "transferchecked":
			return "transfer"
		case strings.HasPrefix(insType, "mint"):
			return "mint"
		}
	}

	return ""
}

// activityHistogram buckets events into UTC calendar days over the
// trailing 30 days. Successes add +0.5, failures -0.5, per-day value is
// clamped to [-3, +3], and an active day that nets exactly zero is nudged
// to +0.5 so it still registers on the chart.
func activityHistogram(data *helius.WalletData, now time.Time) []ActivityDay {
	type bucket struct {
		transactions int
		value        float64
	}
	buckets := make(map[string]*bucket, histogramDays)

	start := now.UTC().AddDate(0, 0, -(histogramDays - 1))
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	record := func(ts time.Time, failed bool) {
		ts = ts.UTC()
		if ts.Before(startDay) || ts.After(now.UTC().AddDate(0, 0, 1)) {
			return
		}
		key := ts.Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.transactions++
		if failed {
			b.value += activityFailureWeight
		} else {
			b.value += activitySuccessWeight
		}
	}

	if len(data.Signatures) > 0 {
		for _, sig := range data.Signatures {
			if sig.BlockTime != nil && *sig.BlockTime > 0 {
				record(time.Unix(*sig.BlockTime, 0), sig.Failed)
			}
		}
	} else {
		for _, tx := range data.Transactions {
			if tx.Timestamp > 0 {
				record(time.Unix(tx.Timestamp, 0), tx.Failed)
			}
		}
	}

	days := make([]ActivityDay, 0, histogramDays)
	for i := 0; i < histogramDays; i++ {
		day := startDay.AddDate(0, 0, i)
		key := day.Format("2006-01-02")
		entry := ActivityDay{Date: key}
		if b, ok := buckets[key]; ok {
			entry.Transactions = b.transactions
			entry.Value = clamp(b.value, -activityDayClamp, activityDayClamp)
			if entry.Transactions > 0 && entry.Value == 0 {
				entry.Value = activitySuccessWeight
			}
		}
		days = append(days, entry)
	}

	return days
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
