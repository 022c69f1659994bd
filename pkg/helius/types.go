package helius

// LamportsPerSol is the native unit conversion divisor.
const LamportsPerSol = 1e9

// SignatureRecord is a provider-returned reference to a historical
// transaction, without full detail.
type SignatureRecord struct {
	Signature string `json:"signature"`
	BlockTime *int64 `json:"blockTime"`
	Failed    bool   `json:"failed"`
}

// ParsedInstruction is the program/type pair extracted from a parsed
// transaction instruction.
type ParsedInstruction struct {
	Program   string `json:"program"`
	ProgramID string `json:"programId"`
	Type      string `json:"type"`
}

// EnhancedTransaction is the normalized per-transaction record. Both the
// enhanced REST endpoint and raw getTransaction results are mapped into
// this shape; fields absent from a source stay at their zero value.
type EnhancedTransaction struct {
	Signature    string              `json:"signature"`
	Description  string              `json:"description"`
	Type         string              `json:"type"`
	Source       string              `json:"source"`
	Fee          int64               `json:"fee"`
	Timestamp    int64               `json:"timestamp"`
	Failed       bool                `json:"failed"`
	Instructions []ParsedInstruction `json:"instructions"`
}

// TokenHolding is one SPL token position.
type TokenHolding struct {
	Mint   string  `json:"mint"`
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
}

// BalancePoint is one point of optional balance history.
type BalancePoint struct {
	Timestamp int64   `json:"timestamp"`
	Balance   float64 `json:"balance"`
}

// WalletData is the per-request aggregate of everything fetched for one
// address. Owned by a single analysis request and discarded afterwards.
type WalletData struct {
	BalanceSol     float64               `json:"balanceSol"`
	Signatures     []SignatureRecord     `json:"signatures"`
	Transactions   []EnhancedTransaction `json:"transactions"`
	Tokens         []TokenHolding        `json:"tokens"`
	BalanceHistory []BalancePoint        `json:"balanceHistory,omitempty"`
}

// knownMints maps well-known mint addresses to display symbols. Anything
// outside this set renders as an elided mint.
var knownMints = map[string]string{
	"So11111111111111111111111111111111111111112":  "SOL",
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": "USDC",
	"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB": "USDT",
	"DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263": "BONK",
	"EKpQGSJtjMFqKZ9KQanSqYXRcF8fBopzLHYxdM65zcjm": "WIF",
	"7GCihgDB8fe6KNjn2MYtkzZcRjQy3t9GHdC8uHYmW2hr": "POPCAT",
	"MEW1gQWJ3nEXg2qgERiKu7FAFj79PHvQVREQUzScPP5":  "MEW",
	"ukHH6c7mMyiWCf1b9pnWe25TSpkDDt3H5pQZgZ74J82":  "BOME",
}

// SymbolForMint returns a display symbol for a mint, or a shortened mint
// string when the token is unknown.
func SymbolForMint(mint string) string {
	if symbol, ok := knownMints[mint]; ok {
		return symbol
	}
	if len(mint) > 8 {
		return mint[:4] + ".." + mint[len(mint)-4:]
	}
	return mint
}
