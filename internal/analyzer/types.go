package analyzer

import (
	"time"

	"walletroast/pkg/helius"
)

// Error discriminants carried in the stats payload. The HTTP layer keeps
// answering 200 with one of these set; availability over accuracy.
const (
	ErrKindInvalidAddress   = "INVALID_ADDRESS"
	ErrKindAPIKeyMissing    = "API_KEY_MISSING"
	ErrKindNoTransactions   = "NO_TRANSACTIONS"
	ErrKindInsufficientData = "INSUFFICIENT_DATA"
	ErrKindAnalysisError    = "ANALYSIS_ERROR"
	ErrKindServerError      = "SERVER_ERROR"
)

// Achievement is a badge-like tag awarded by a rule match. Titles may
// repeat in one pass; the engine does not de-duplicate.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ActivityDay is one bucket of the trailing 30-day activity histogram.
type ActivityDay struct {
	Date         string  `json:"date"`
	Transactions int     `json:"transactions"`
	Value        float64 `json:"value"`
}

// WalletStatistics is the derived, address-keyed statistics record.
// Score, SuccessRate and WalletValueUsd are always computed from the
// other fields, never set independently. Formatted string twins of the
// numeric fields carry fixed precision for display.
type WalletStatistics struct {
	Address          string                `json:"address"`
	TotalTrades      int                   `json:"totalTrades"`
	GasSpentSol      float64               `json:"gasSpentSol"`
	GasSpent         string                `json:"gasSpent"`
	AvgGasPerTxSol   float64               `json:"avgGasPerTxSol"`
	AvgGasPerTx      string                `json:"avgGasPerTx"`
	SuccessRate      int                   `json:"successRate"`
	FirstActivityAt  *time.Time            `json:"firstActivityAt,omitempty"`
	LastActivityAt   *time.Time            `json:"lastActivityAt,omitempty"`
	AccountAgeDays   int                   `json:"accountAgeDays"`
	TxPerDay         float64               `json:"txPerDay"`
	NativeBalanceSol float64               `json:"nativeBalanceSol"`
	NativeBalance    string                `json:"nativeBalance"`
	SolPriceUsd      float64               `json:"solPriceUsd"`
	WalletValueUsd   float64               `json:"walletValueUsd"`
	WalletValue      string                `json:"walletValue"`
	SwapCount        int                   `json:"swapCount"`
	TransferCount    int                   `json:"transferCount"`
	MintCount        int                   `json:"mintCount"`
	Score            int                   `json:"score"`
	Achievements     []Achievement         `json:"achievements"`
	Tokens           []helius.TokenHolding `json:"tokens"`
	ActivityDays     []ActivityDay         `json:"activityDays,omitempty"`
	IsMockData       bool                  `json:"isMockData,omitempty"`
	Error            string                `json:"error,omitempty"`

	// eventTimes holds the raw timestamps the stats were derived from,
	// for the achievement rules. Not serialized.
	eventTimes []time.Time
}

// AnalysisResult is the terminal response payload of one analysis.
type AnalysisResult struct {
	Stats        *WalletStatistics `json:"stats"`
	Roast        string            `json:"roast,omitempty"`
	Achievements []Achievement     `json:"achievements,omitempty"`
}

// Options tunes a single analysis request.
type Options struct {
	IncludeHistogram bool `json:"includeHistogram"`
	MaxTransactions  int  `json:"maxTransactions"`
}
