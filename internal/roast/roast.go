package roast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"walletroast/internal/analyzer"
	"walletroast/internal/metrics"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	model          = "gpt-4o-mini"
	temperature    = 0.9
	maxTokens      = 120
)

// Canned roasts, keyed by the stat that triggers them. Selection is
// deterministic so degraded responses stay reproducible.
const (
	gasRoast        = "You've burned more SOL on fees than most people hold. The validators thank you for your service."
	successRoast    = "That success rate is impressive. Impressively bad. Even a coin flip is embarrassed for you."
	volumeRoast     = "Hundreds of transactions and nothing to show for it. Quantity over quality, always."
	inactivityRoast = "This wallet is so quiet that archaeologists are interested in it. Absolutely nothing happening here."
)

var genericRoasts = []string{
	"This wallet has the energy of someone who buys high, sells low, and calls it a strategy.",
	"Your portfolio looks like a museum of bad decisions, and admission is free.",
	"Somewhere out there is a trading guru who would use this wallet as a cautionary tale.",
	"The blockchain is forever, which is unfortunate for whoever owns this wallet.",
}

// Generator produces roasts, preferring the LLM provider and degrading
// to the canned set on any failure.
type Generator struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Generator.
type Option func(*Generator)

// WithBaseURL overrides the provider base URL, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(g *Generator) {
		g.baseURL = baseURL
	}
}

// NewGenerator creates a roast generator. An empty apiKey means every
// roast comes from the canned fallback set.
func NewGenerator(apiKey string, opts ...Option) *Generator {
	g := &Generator{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Roast returns a short humorous text about the wallet. Never fails:
// provider errors and missing credentials both land on the canned path.
func (g *Generator) Roast(ctx context.Context, stats *analyzer.WalletStatistics) string {
	if g.apiKey == "" {
		return g.fallback(stats)
	}

	text, err := g.complete(ctx, stats)
	if err != nil {
		log.WithError(err).WithField("address", stats.Address).Warn("Roast completion failed")
		return g.fallback(stats)
	}
	return text
}

// fallback picks a canned roast by fixed priority: gas burn, then poor
// success rate, then volume, then inactivity, then an address-keyed pick
// from the generic set.
func (g *Generator) fallback(stats *analyzer.WalletStatistics) string {
	metrics.RecordRoastFallback()

	switch {
	case stats.GasSpentSol > 1:
		return gasRoast
	case stats.TotalTrades > 0 && stats.SuccessRate < 80:
		return successRoast
	case stats.TotalTrades > 50:
		return volumeRoast
	case stats.TotalTrades == 0:
		return inactivityRoast
	}

	h := fnv.New32a()
	h.Write([]byte(stats.Address))
	return genericRoasts[int(h.Sum32())%len(genericRoasts)]
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *Generator) complete(ctx context.Context, stats *analyzer.WalletStatistics) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a savage but playful comedian roasting crypto wallets. Two or three sentences, no hashtags."},
			{Role: "user", Content: buildPrompt(stats)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion request failed with status code: %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("provider error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("completion returned empty text")
	}
	return text, nil
}

// buildPrompt embeds the headline stats. The address is elided to its
// first six and last four characters.
func buildPrompt(stats *analyzer.WalletStatistics) string {
	return fmt.Sprintf(
		"Roast the Solana wallet %s. Balance: %s SOL (worth $%s). "+
			"Transactions: %d. Gas burned: %s SOL. Success rate: %d%%.",
		ElideAddress(stats.Address),
		stats.NativeBalance,
		stats.WalletValue,
		stats.TotalTrades,
		stats.GasSpent,
		stats.SuccessRate,
	)
}

// ElideAddress shortens an address to first-6...last-4 form.
func ElideAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
