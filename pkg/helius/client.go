package helius

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"

	"walletroast/internal/metrics"
)

const (
	// maxRetries bounds retry attempts per individual call.
	maxRetries = 3

	// Base delays for retryable statuses. Rate limits back off harder.
	rateLimitBaseDelay = 2 * time.Second
	serverErrBaseDelay = 1 * time.Second

	// signaturePageLimit is the page size for signature lookups.
	signaturePageLimit = 50

	// detailPrefix is how many signatures get full transaction lookups.
	detailPrefix = 20

	// detailBatchSize and interBatchDelay keep detail lookups under the
	// provider's requests-per-second budget.
	detailBatchSize = 5
	interBatchDelay = 500 * time.Millisecond
)

// Client represents a Helius API client
type Client struct {
	apiKey     string
	baseURL    string
	rpcURL     string
	httpClient *http.Client
}

// NewClient creates a new Helius API client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.helius.xyz/v0",
		rpcURL:  "https://mainnet.helius-rpc.com",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				IdleConnTimeout:       10 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

// HasKey reports whether the client was configured with an API key.
func (c *Client) HasKey() bool {
	return c.apiKey != ""
}

// rpcRequest represents a JSON RPC request
type rpcRequest struct {
	Jsonrpc string        `json:"jsonrpc"`
	ID      string        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// rpcResponse represents a JSON RPC response
type rpcResponse struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

// rpcError represents an RPC error
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// doWithRetry POSTs payload to url, retrying on 429 and 5xx with
// exponentially increasing delay. Other errors propagate immediately.
func (c *Client) doWithRetry(ctx context.Context, method, callURL string, payload []byte) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, callURL, body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.RecordRPCRequest("error")
			return nil, fmt.Errorf("failed to send request: %w", err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			if readErr != nil {
				metrics.RecordRPCRequest("error")
				return nil, fmt.Errorf("failed to read response body: %w", readErr)
			}
			metrics.RecordRPCRequest("success")
			return respBody, nil
		}

		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		if !retryable {
			metrics.RecordRPCRequest("failed")
			return nil, fmt.Errorf("API request failed with status code: %d", resp.StatusCode)
		}

		if attempt == maxRetries {
			metrics.RecordRPCRequest("failed")
			return nil, fmt.Errorf("API request failed with status code %d after %d attempts", resp.StatusCode, attempt+1)
		}

		base := serverErrBaseDelay
		status := "server_error"
		if resp.StatusCode == http.StatusTooManyRequests {
			base = rateLimitBaseDelay
			status = "rate_limited"
		}
		metrics.RecordRPCRequest(status)

		delay := base * time.Duration(1<<attempt)
		log.WithFields(log.Fields{
			"status":  resp.StatusCode,
			"attempt": attempt + 1,
			"delay":   delay.String(),
		}).Warn("Helius request throttled, retrying")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			metrics.RecordRPCRequest("cancelled")
			return nil, ctx.Err()
		}
	}
}

// rpcCall issues a JSON-RPC request against the Helius RPC endpoint.
func (c *Client) rpcCall(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	request := rpcRequest{
		Jsonrpc: "2.0",
		ID:      "1",
		Method:  method,
		Params:  params,
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	rpcURLWithKey := fmt.Sprintf("%s/?api-key=%s", c.rpcURL, c.apiKey)
	body, err := c.doWithRetry(ctx, http.MethodPost, rpcURLWithKey, payload)
	if err != nil {
		return nil, err
	}

	var response rpcResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if response.Error != nil {
		return nil, response.Error
	}

	return response.Result, nil
}

// GetBalance returns the native balance for address in SOL.
func (c *Client) GetBalance(ctx context.Context, address string) (float64, error) {
	result, err := c.rpcCall(ctx, "getBalance", []interface{}{address})
	if err != nil {
		return 0, fmt.Errorf("getBalance failed: %w", err)
	}

	var balance struct {
		Value uint64 `json:"value"`
	}
	if err := json.Unmarshal(result, &balance); err != nil {
		return 0, fmt.Errorf("failed to decode balance: %w", err)
	}

	return float64(balance.Value) / LamportsPerSol, nil
}

// GetSignatures returns recent transaction signatures for address,
// newest first.
func (c *Client) GetSignatures(ctx context.Context, address string, limit int) ([]SignatureRecord, error) {
	if limit <= 0 || limit > signaturePageLimit {
		limit = signaturePageLimit
	}
	return c.signatureCall(ctx, "getSignaturesForAddress", address, limit)
}

// GetLegacySignatures queries the deprecated signature-list method, kept as
// a fallback for providers that still serve it.
func (c *Client) GetLegacySignatures(ctx context.Context, address string, limit int) ([]SignatureRecord, error) {
	if limit <= 0 || limit > signaturePageLimit {
		limit = signaturePageLimit
	}
	return c.signatureCall(ctx, "getConfirmedSignaturesForAddress2", address, limit)
}

func (c *Client) signatureCall(ctx context.Context, method, address string, limit int) ([]SignatureRecord, error) {
	params := []interface{}{
		address,
		map[string]interface{}{
			"limit":      limit,
			"commitment": "confirmed",
		},
	}

	result, err := c.rpcCall(ctx, method, params)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", method, err)
	}

	var raw []struct {
		Signature string          `json:"signature"`
		BlockTime *int64          `json:"blockTime"`
		Err       json.RawMessage `json:"err"`
	}
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode signatures: %w", err)
	}

	signatures := make([]SignatureRecord, 0, len(raw))
	for _, r := range raw {
		signatures = append(signatures, SignatureRecord{
			Signature: r.Signature,
			BlockTime: r.BlockTime,
			Failed:    len(r.Err) > 0 && string(r.Err) != "null",
		})
	}

	return signatures, nil
}

// GetTokenAccounts returns SPL token holdings for address via
// getTokenAccountsByOwner with jsonParsed encoding.
func (c *Client) GetTokenAccounts(ctx context.Context, address string) ([]TokenHolding, error) {
	params := []interface{}{
		address,
		map[string]interface{}{
			"programId": "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA",
		},
		map[string]interface{}{
			"encoding": "jsonParsed",
		},
	}

	result, err := c.rpcCall(ctx, "getTokenAccountsByOwner", params)
	if err != nil {
		return nil, fmt.Errorf("getTokenAccountsByOwner failed: %w", err)
	}

	var parsed struct {
		Value []struct {
			Account struct {
				Data struct {
					Parsed struct {
						Info struct {
							Mint        string `json:"mint"`
							TokenAmount struct {
								UiAmount float64 `json:"uiAmount"`
							} `json:"tokenAmount"`
						} `json:"info"`
					} `json:"parsed"`
				} `json:"data"`
			} `json:"account"`
		} `json:"value"`
	}
	if err := json.Unmarshal(result, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode token accounts: %w", err)
	}

	holdings := make([]TokenHolding, 0, len(parsed.Value))
	for _, v := range parsed.Value {
		info := v.Account.Data.Parsed.Info
		if info.Mint == "" || info.TokenAmount.UiAmount <= 0 {
			continue
		}
		holdings = append(holdings, TokenHolding{
			Mint:   info.Mint,
			Symbol: SymbolForMint(info.Mint),
			Amount: info.TokenAmount.UiAmount,
		})
	}

	return holdings, nil
}

// GetTransaction fetches full transaction detail for one signature and
// normalizes it into an EnhancedTransaction. Missing fields fail closed
// (zero values), never by raising.
func (c *Client) GetTransaction(ctx context.Context, signature string) (*EnhancedTransaction, error) {
	params := []interface{}{
		signature,
		map[string]interface{}{
			"encoding":                       "jsonParsed",
			"commitment":                     "confirmed",
			"maxSupportedTransactionVersion": 0,
		},
	}

	result, err := c.rpcCall(ctx, "getTransaction", params)
	if err != nil {
		return nil, fmt.Errorf("getTransaction failed: %w", err)
	}
	if len(result) == 0 || string(result) == "null" {
		return nil, fmt.Errorf("transaction not found: %s", signature)
	}

	var raw struct {
		BlockTime *int64 `json:"blockTime"`
		Meta      struct {
			Fee uint64          `json:"fee"`
			Err json.RawMessage `json:"err"`
		} `json:"meta"`
		Transaction struct {
			Message struct {
				Instructions []struct {
					Program   string `json:"program"`
					ProgramID string `json:"programId"`
					Parsed    *struct {
						Type string `json:"type"`
					} `json:"parsed"`
				} `json:"instructions"`
			} `json:"message"`
		} `json:"transaction"`
	}
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}

	tx := &EnhancedTransaction{
		Signature: signature,
		Fee:       int64(raw.Meta.Fee),
		Failed:    len(raw.Meta.Err) > 0 && string(raw.Meta.Err) != "null",
	}
	if raw.BlockTime != nil {
		tx.Timestamp = *raw.BlockTime
	}
	for _, ins := range raw.Transaction.Message.Instructions {
		parsed := ParsedInstruction{
			Program:   ins.Program,
			ProgramID: ins.ProgramID,
		}
		if ins.Parsed != nil {
			parsed.Type = ins.Parsed.Type
		}
		tx.Instructions = append(tx.Instructions, parsed)
	}

	return tx, nil
}

// GetEnhancedTransactionsByAddress retrieves enhanced transactions for an
// address from the REST endpoint. Used as the final fallback when both
// signature-list methods come back empty.
func (c *Client) GetEnhancedTransactionsByAddress(ctx context.Context, address string, limit int) ([]EnhancedTransaction, error) {
	baseURL := fmt.Sprintf("%s/addresses/%s/transactions", c.baseURL, address)
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	q := u.Query()
	q.Add("api-key", c.apiKey)
	if limit > 0 {
		q.Add("limit", fmt.Sprintf("%d", limit))
	}
	u.RawQuery = q.Encode()

	body, err := c.doWithRetry(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	var raw []struct {
		Description      string          `json:"description"`
		Type             string          `json:"type"`
		Source           string          `json:"source"`
		Fee              int64           `json:"fee"`
		Signature        string          `json:"signature"`
		Timestamp        int64           `json:"timestamp"`
		TransactionError json.RawMessage `json:"transactionError"`
		Instructions     []struct {
			ProgramID string `json:"programId"`
		} `json:"instructions"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	transactions := make([]EnhancedTransaction, 0, len(raw))
	for _, r := range raw {
		tx := EnhancedTransaction{
			Signature:   r.Signature,
			Description: r.Description,
			Type:        r.Type,
			Source:      r.Source,
			Fee:         r.Fee,
			Timestamp:   r.Timestamp,
			Failed:      len(r.TransactionError) > 0 && string(r.TransactionError) != "null",
		}
		for _, ins := range r.Instructions {
			tx.Instructions = append(tx.Instructions, ParsedInstruction{ProgramID: ins.ProgramID})
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}
