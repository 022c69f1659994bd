package analyzer

import (
	"fmt"
	"sort"
	"time"
)

// Meme and stable symbols checked by the token rules.
var (
	memeSymbols   = map[string]bool{"BONK": true, "WIF": true, "POPCAT": true, "MEW": true, "BOME": true}
	stableSymbols = map[string]bool{"USDC": true, "USDT": true}
)

// GenerateAchievements evaluates the fixed, ordered rule set against a
// statistics record. Rules are independent and may co-fire; a later rule
// may append a title an earlier rule already added, and the output is not
// de-duplicated. eventTimes must be sorted oldest first.
func GenerateAchievements(stats *WalletStatistics, eventTimes []time.Time, now time.Time) []Achievement {
	badges := []Achievement{}
	award := func(title, description string) {
		badges = append(badges, Achievement{Title: title, Description: description})
	}

	// 1. Account age
	switch {
	case stats.AccountAgeDays >= 365:
		award("💎 Diamond Hands OG", "Wallet has been active for over a year")
	case stats.AccountAgeDays >= 180:
		award("🗿 Ancient Wallet", "Over six months of on-chain history")
	case stats.AccountAgeDays < 7 && stats.TotalTrades > 0:
		award("🐣 Fresh Wallet", "Less than a week old and already trading")
	}

	// 2. Activity gap
	if gap := maxGap(eventTimes); gap >= 30*24*time.Hour {
		award("😴 Hibernator", fmt.Sprintf("Went %d days without a single transaction", int(gap.Hours()/24)))
	}

	// 3. Consecutive-day streak
	if streak := longestDayStreak(eventTimes); streak >= 7 {
		award("🔥 On Fire", fmt.Sprintf("Active %d days in a row", streak))
	} else if streak >= 3 {
		award("📅 Regular", fmt.Sprintf("A %d-day activity streak", streak))
	}

	// 4. Volume
	if stats.TotalTrades > 500 {
		award("🤖 Bot Behavior?", "Over 500 transactions. A human did this?")
	} else if stats.TotalTrades > 100 {
		award("⚡ Degen Trader", "Over 100 transactions on record")
	}

	// 5. Total gas burn
	if stats.GasSpentSol > 1 {
		award("⛽ Gas Guzzler", fmt.Sprintf("Burned %.4f SOL on fees alone", stats.GasSpentSol))
	}

	// 6. Per-transaction burn. May re-award the gas badge; output keeps
	// duplicates.
	if stats.AvgGasPerTxSol > 0.01 && stats.TotalTrades > 10 {
		award("⛽ Gas Guzzler", "Paying premium fees on every single transaction")
	}

	// 7. Balance, USD value computed fresh from its operands
	balanceUsd := stats.NativeBalanceSol * stats.SolPriceUsd
	switch {
	case balanceUsd > 10000:
		award("🐋 Whale Alert", fmt.Sprintf("Holding $%.0f of SOL", balanceUsd))
	case balanceUsd > 1000:
		award("💰 Solid Stack", fmt.Sprintf("Holding $%.0f of SOL", balanceUsd))
	}
	if stats.NativeBalanceSol > 10 {
		award("🏦 SOL Rich", fmt.Sprintf("%.2f SOL in the tank", stats.NativeBalanceSol))
	}

	// 8. Token holdings
	if len(stats.Tokens) > 10 {
		award("🧺 Token Collector", fmt.Sprintf("Holding %d different tokens", len(stats.Tokens)))
	}
	hasMeme, hasStable := false, false
	for _, token := range stats.Tokens {
		if memeSymbols[token.Symbol] {
			hasMeme = true
		}
		if stableSymbols[token.Symbol] {
			hasStable = true
		}
	}
	if hasMeme {
		award("🐕 Meme Coin Connoisseur", "A refined palate for dog coins")
	}
	if hasStable {
		award("🧊 Stable And Sensible", "At least some of it is in stables")
	}

	// 9. Mandatory trading personality by score band
	switch {
	case stats.Score >= 80:
		award("🧠 Galaxy Brain", "Top-tier wallet score")
	case stats.Score >= 60:
		award("📈 Calculated", "A respectable wallet score")
	case stats.Score >= 40:
		award("🎲 Coin Flipper", "Trading on vibes and coin flips")
	default:
		award("🤡 Exit Liquidity", "Someone has to buy the top")
	}

	return badges
}

// maxGap returns the largest delta between consecutive events.
func maxGap(times []time.Time) time.Duration {
	var gap time.Duration
	for i := 1; i < len(times); i++ {
		if d := times[i].Sub(times[i-1]); d > gap {
			gap = d
		}
	}
	return gap
}

// longestDayStreak counts the longest run of consecutive active UTC
// calendar days, after de-duplicating dates.
func longestDayStreak(times []time.Time) int {
	if len(times) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(times))
	days := make([]time.Time, 0, len(times))
	for _, t := range times {
		t = t.UTC()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		key := day.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}
	return best
}
