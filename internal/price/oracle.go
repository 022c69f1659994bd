package price

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultSolPriceUSD is served when no fetch has ever succeeded.
	DefaultSolPriceUSD = 150.0

	// cacheTTL is how long a fetched price stays fresh.
	cacheTTL = time.Hour

	freeBaseURL = "https://api.coingecko.com/api/v3"
	proBaseURL  = "https://pro-api.coingecko.com/api/v3"
)

// Oracle returns a time-cached USD price for SOL. Failed refreshes fall
// back to the last-known value; the oracle never returns an error.
type Oracle struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time

	mu        sync.RWMutex
	priceUsd  float64
	fetchedAt time.Time
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithClock injects a clock, used by tests to control TTL expiry.
func WithClock(now func() time.Time) Option {
	return func(o *Oracle) {
		o.now = now
	}
}

// WithBaseURL overrides the upstream base URL.
func WithBaseURL(baseURL string) Option {
	return func(o *Oracle) {
		o.baseURL = baseURL
	}
}

// NewOracle creates a price oracle. A non-empty apiKey selects the paid
// tier endpoint; otherwise the free tier is used.
func NewOracle(apiKey string, opts ...Option) *Oracle {
	o := &Oracle{
		apiKey:     apiKey,
		baseURL:    freeBaseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		now:        time.Now,
	}
	if apiKey != "" {
		o.baseURL = proBaseURL
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetSolPriceUSD returns the current USD price for SOL. Serves the cached
// value while fresh; on refresh failure serves stale, then the default.
func (o *Oracle) GetSolPriceUSD(ctx context.Context) float64 {
	o.mu.RLock()
	priceUsd, fetchedAt := o.priceUsd, o.fetchedAt
	o.mu.RUnlock()

	if !fetchedAt.IsZero() && o.now().Sub(fetchedAt) < cacheTTL {
		return priceUsd
	}

	fresh, err := o.fetch(ctx)
	if err != nil {
		log.WithError(err).Warn("SOL price refresh failed")
		if !fetchedAt.IsZero() {
			return priceUsd
		}
		return DefaultSolPriceUSD
	}

	o.mu.Lock()
	o.priceUsd = fresh
	o.fetchedAt = o.now()
	o.mu.Unlock()

	return fresh
}

func (o *Oracle) fetch(ctx context.Context) (float64, error) {
	url := fmt.Sprintf("%s/simple/price?ids=solana&vs_currencies=usd", o.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if o.apiKey != "" {
		req.Header.Set("x-cg-pro-api-key", o.apiKey)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("price request failed with status code: %d", resp.StatusCode)
	}

	var result map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	priceUsd, ok := result["solana"]["usd"]
	if !ok || priceUsd <= 0 {
		return 0, fmt.Errorf("price missing from response")
	}

	return priceUsd, nil
}
