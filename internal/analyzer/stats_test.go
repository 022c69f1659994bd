package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletroast/pkg/helius"
)

const testAddress = "DRiP2Pn2K6fuMLKQmt5rZWyHiUZ6WK3GChEySUpHSS4x"

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

// walletFixture builds ten signatures, one failed, each backed by a
// transaction carrying a 0.001 SOL fee.
func walletFixture(now time.Time) *helius.WalletData {
	data := &helius.WalletData{BalanceSol: 12.5}
	for i := 0; i < 10; i++ {
		blockTime := now.AddDate(0, 0, -i).Unix()
		data.Signatures = append(data.Signatures, helius.SignatureRecord{
			Signature: "sig" + string(rune('a'+i)),
			BlockTime: &blockTime,
			Failed:    i == 9,
		})
		data.Transactions = append(data.Transactions, helius.EnhancedTransaction{
			Signature: data.Signatures[i].Signature,
			Type:      "TRANSFER",
			Fee:       1_000_000, // 0.001 SOL
			Timestamp: blockTime,
			Failed:    i == 9,
		})
	}
	return data
}

func TestCalculateStatsGasAndSuccess(t *testing.T) {
	now := fixedNow()
	stats := CalculateStats(testAddress, walletFixture(now), 150.0, now, false)

	assert.Equal(t, 10, stats.TotalTrades)
	assert.Equal(t, 90, stats.SuccessRate)
	assert.Equal(t, 0.01, stats.GasSpentSol)
	assert.Equal(t, "0.010000", stats.GasSpent)
	assert.Equal(t, 0.001, stats.AvgGasPerTxSol)
	assert.Equal(t, "0.001000", stats.AvgGasPerTx)
}

func TestCalculateStatsWalletValue(t *testing.T) {
	now := fixedNow()
	stats := CalculateStats(testAddress, walletFixture(now), 20.0, now, false)

	assert.Equal(t, 12.5, stats.NativeBalanceSol)
	assert.Equal(t, "12.5000", stats.NativeBalance)
	assert.Equal(t, 250.0, stats.WalletValueUsd)
	assert.Equal(t, "250.00", stats.WalletValue)
}

func TestCalculateStatsActivityWindow(t *testing.T) {
	now := fixedNow()
	stats := CalculateStats(testAddress, walletFixture(now), 150.0, now, false)

	require.NotNil(t, stats.FirstActivityAt)
	require.NotNil(t, stats.LastActivityAt)
	assert.Equal(t, now.AddDate(0, 0, -9).Unix(), stats.FirstActivityAt.Unix())
	assert.Equal(t, now.Unix(), stats.LastActivityAt.Unix())
	assert.Equal(t, 9, stats.AccountAgeDays)
	assert.InDelta(t, 1.11, stats.TxPerDay, 0.001)
}

func TestCalculateStatsEmptyWallet(t *testing.T) {
	now := fixedNow()
	stats := CalculateStats(testAddress, &helius.WalletData{}, 150.0, now, false)

	assert.Equal(t, 0, stats.TotalTrades)
	assert.Equal(t, 0, stats.SuccessRate)
	assert.Equal(t, "0.000000", stats.GasSpent)
	assert.Equal(t, "0.000000", stats.AvgGasPerTx)
	assert.Equal(t, 0, stats.AccountAgeDays)
	assert.Nil(t, stats.FirstActivityAt)
	assert.NotNil(t, stats.Tokens)
	assert.Empty(t, stats.Tokens)
}

func TestCalculateStatsDeterministic(t *testing.T) {
	now := fixedNow()
	a := CalculateStats(testAddress, walletFixture(now), 150.0, now, true)
	b := CalculateStats(testAddress, walletFixture(now), 150.0, now, true)
	assert.Equal(t, a, b)
}

func TestClassifyTransaction(t *testing.T) {
	cases := []struct {
		name string
		tx   helius.EnhancedTransaction
		want string
	}{
		{"description swap wins", helius.EnhancedTransaction{Description: "swapped 1 SOL for USDC", Type: "TRANSFER"}, "swap"},
		{"sent counts as transfer", helius.EnhancedTransaction{Description: "sent 2 SOL"}, "transfer"},
		{"mint from type", helius.EnhancedTransaction{Type: "NFT_MINT"}, "mint"},
		{"jupiter program id", helius.EnhancedTransaction{Instructions: []helius.ParsedInstruction{{ProgramID: "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4"}}}, "swap"},
		{"transferChecked instruction", helius.EnhancedTransaction{Instructions: []helius.ParsedInstruction{{Type: "transferChecked"}}}, "transfer"},
		{"unknown", helius.EnhancedTransaction{Description: "something else"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyTransaction(tc.tx))
		})
	}
}

func TestActivityHistogram(t *testing.T) {
	now := fixedNow()
	data := &helius.WalletData{}

	// Three events today: two successes and one failure net +0.5.
	for i := 0; i < 3; i++ {
		blockTime := now.Add(-time.Duration(i) * time.Hour).Unix()
		data.Signatures = append(data.Signatures, helius.SignatureRecord{
			Signature: "today",
			BlockTime: &blockTime,
			Failed:    i == 2,
		})
	}
	// One success and one failure five days ago net zero, nudged to +0.5.
	old := now.AddDate(0, 0, -5)
	for i := 0; i < 2; i++ {
		blockTime := old.Unix()
		data.Signatures = append(data.Signatures, helius.SignatureRecord{
			Signature: "old",
			BlockTime: &blockTime,
			Failed:    i == 1,
		})
	}
	// An event outside the window is dropped.
	ancient := now.AddDate(0, 0, -60).Unix()
	data.Signatures = append(data.Signatures, helius.SignatureRecord{
		Signature: "ancient",
		BlockTime: &ancient,
	})

	days := activityHistogram(data, now)
	require.Len(t, days, 30)

	byDate := make(map[string]ActivityDay, len(days))
	total := 0
	for _, d := range days {
		byDate[d.Date] = d
		total += d.Transactions
	}

	today := byDate[now.Format("2006-01-02")]
	assert.Equal(t, 3, today.Transactions)
	assert.Equal(t, 0.5, today.Value)

	fiveAgo := byDate[old.Format("2006-01-02")]
	assert.Equal(t, 2, fiveAgo.Transactions)
	assert.Equal(t, 0.5, fiveAgo.Value)

	assert.Equal(t, 5, total, "out-of-window events must not be bucketed")
}

func TestActivityHistogramClamp(t *testing.T) {
	now := fixedNow()
	data := &helius.WalletData{}
	for i := 0; i < 20; i++ {
		blockTime := now.Unix()
		data.Signatures = append(data.Signatures, helius.SignatureRecord{
			Signature: "burst",
			BlockTime: &blockTime,
		})
	}

	days := activityHistogram(data, now)
	today := days[len(days)-1]
	assert.Equal(t, now.Format("2006-01-02"), today.Date)
	assert.Equal(t, 20, today.Transactions)
	assert.Equal(t, 3.0, today.Value)
}
