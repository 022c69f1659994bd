package analyzer

import (
	"context"
	"regexp"
	"time"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"walletroast/internal/metrics"
	"walletroast/internal/models"
	dbconfig "walletroast/pkg/config"
	"walletroast/pkg/helius"
)

var addressPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// Fetcher supplies raw on-chain data for an address.
type Fetcher interface {
	HasKey() bool
	GetWalletData(ctx context.Context, address string, maxTransactions int) (*helius.WalletData, error)
}

// PriceSource supplies the current USD price for SOL.
type PriceSource interface {
	GetSolPriceUSD(ctx context.Context) float64
}

// Roaster produces a short roast string for a statistics record.
type Roaster interface {
	Roast(ctx context.Context, stats *WalletStatistics) string
}

// Publisher pushes snapshot messages onto the analysis queue.
type Publisher interface {
	Publish(queueName string, message interface{}) error
}

// Analyzer sequences fetch, stats, score, achievements, roast and
// best-effort persistence for one wallet per call.
type Analyzer struct {
	fetcher   Fetcher
	prices    PriceSource
	roaster   Roaster
	db        *gorm.DB
	publisher Publisher
	now       func() time.Time
}

// New creates an Analyzer. db and publisher may be nil; persistence is
// best-effort and skipped when absent.
func New(fetcher Fetcher, prices PriceSource, roaster Roaster, db *gorm.DB, publisher Publisher) *Analyzer {
	return &Analyzer{
		fetcher:   fetcher,
		prices:    prices,
		roaster:   roaster,
		db:        db,
		publisher: publisher,
		now:       time.Now,
	}
}

// WithClock injects a clock for tests.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// ValidAddress reports whether address looks like a base58 Solana pubkey.
func ValidAddress(address string) bool {
	if !addressPattern.MatchString(address) {
		return false
	}
	_, err := solana.PublicKeyFromBase58(address)
	return err == nil
}

// AnalyzeWallet runs the full pipeline for one address. It always
// returns a populated result; failures surface as the stats.Error
// discriminant, never as a raised error.
func (a *Analyzer) AnalyzeWallet(ctx context.Context, address string, opts Options) *AnalysisResult {
	started := a.now()
	defer func() {
		metrics.RecordAnalysisDuration(a.now().Sub(started).Seconds())
	}()

	if !ValidAddress(address) {
		metrics.RecordAnalysis("invalid_address")
		return errorResult(address, ErrKindInvalidAddress)
	}

	// Without a provider credential no network call is made at all.
	if !a.fetcher.HasKey() {
		metrics.RecordAnalysis("api_key_missing")
		return errorResult(address, ErrKindAPIKeyMissing)
	}

	now := a.now()
	isMock := false

	data, err := a.fetcher.GetWalletData(ctx, address, opts.MaxTransactions)
	if err != nil {
		// Degrade gracefully: synthetic data keeps the response shape
		// populated. Deterministic per address.
		log.WithError(err).WithField("address", address).Warn("Falling back to synthetic wallet data")
		data = GenerateMockData(address, now)
		isMock = true
	}

	solPriceUsd := a.prices.GetSolPriceUSD(ctx)

	if !isMock && len(data.Signatures) == 0 && len(data.Transactions) == 0 {
		stats := CalculateStats(address, data, solPriceUsd, now, false)
		stats.Error = ErrKindNoTransactions
		metrics.RecordAnalysis("no_transactions")
		return &AnalysisResult{
			Stats:        stats,
			Roast:        a.roaster.Roast(ctx, stats),
			Achievements: stats.Achievements,
		}
	}

	stats := a.computeStats(address, data, solPriceUsd, now, opts)
	if stats == nil {
		metrics.RecordAnalysis("error")
		return errorResult(address, ErrKindAnalysisError)
	}
	stats.IsMockData = isMock

	roast := a.roaster.Roast(ctx, stats)

	a.persistSnapshot(stats, roast)

	if isMock {
		metrics.RecordAnalysis("mock")
	} else {
		metrics.RecordAnalysis("ok")
	}

	return &AnalysisResult{
		Stats:        stats,
		Roast:        roast,
		Achievements: stats.Achievements,
	}
}

// computeStats wraps the pure calculator so a malformed payload can never
// take down the request.
func (a *Analyzer) computeStats(address string, data *helius.WalletData, solPriceUsd float64, now time.Time, opts Options) (stats *WalletStatistics) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("address", address).Errorf("Stats calculation panicked: %v", r)
			stats = nil
		}
	}()
	return CalculateStats(address, data, solPriceUsd, now, opts.IncludeHistogram)
}

// persistSnapshot writes the leaderboard row and publishes the queue
// event. Both are best-effort; failures are logged and swallowed and
// never change the response.
func (a *Analyzer) persistSnapshot(stats *WalletStatistics, roast string) {
	snap := models.WalletSnapshot{
		Address:          stats.Address,
		Score:            stats.Score,
		TotalTrades:      stats.TotalTrades,
		GasSpentSol:      stats.GasSpentSol,
		WalletValueUsd:   stats.WalletValueUsd,
		NativeBalanceSol: stats.NativeBalanceSol,
		SolPriceUsd:      stats.SolPriceUsd,
		Roast:            roast,
	}
	if stats.IsMockData {
		pnl := MockPnl(stats.Address)
		snap.Pnl = &pnl
	}

	if a.db != nil {
		if err := models.UpsertWalletSnapshot(a.db, snap); err != nil {
			metrics.RecordDatabaseOperation("upsert", "failed")
			log.WithError(err).WithField("address", stats.Address).Error("Leaderboard upsert failed")
		} else {
			metrics.RecordDatabaseOperation("upsert", "success")
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Publish(dbconfig.AnalysisQueue, snap); err != nil {
			log.WithError(err).WithField("address", stats.Address).Warn("Analysis event publish failed")
		}
	}
}

func errorResult(address, kind string) *AnalysisResult {
	return &AnalysisResult{
		Stats: &WalletStatistics{
			Address:       address,
			Error:         kind,
			Achievements:  []Achievement{},
			NativeBalance: "0.0000",
			GasSpent:      "0.000000",
			AvgGasPerTx:   "0.000000",
			WalletValue:   "0.00",
		},
	}
}
