package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	knownAddress = "DRiP2Pn2K6fuMLKQmt5rZWyHiUZ6WK3GChEySUpHSS4x"
	emptyAddress = "11111111111111111111111111111111"
)

type StatsPayload struct {
	Address       string  `json:"address"`
	TotalTrades   int     `json:"totalTrades"`
	SuccessRate   int     `json:"successRate"`
	NativeBalance string  `json:"nativeBalance"`
	GasSpent      string  `json:"gasSpent"`
	WalletValue   string  `json:"walletValue"`
	Score         int     `json:"score"`
	SolPriceUsd   float64 `json:"solPriceUsd"`
	Error         string  `json:"error"`
	ActivityDays  []struct {
		Date         string  `json:"date"`
		Transactions int     `json:"transactions"`
		Value        float64 `json:"value"`
	} `json:"activityDays"`
}

type AnalyzeResponse struct {
	Stats        *StatsPayload `json:"stats"`
	Roast        string        `json:"roast"`
	Achievements []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"achievements"`
}

func TestWalletAPI(t *testing.T) {
	// Test Case 1: Analyze a wallet
	t.Run("Analyze Wallet", func(t *testing.T) {
		resp, err := http.Get(BaseURL + "/api/wallet/" + knownAddress)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var response AnalyzeResponse
		err = json.NewDecoder(resp.Body).Decode(&response)
		require.NoError(t, err)
		require.NotNil(t, response.Stats)
		assert.Equal(t, knownAddress, response.Stats.Address)
		assert.GreaterOrEqual(t, response.Stats.Score, 0)
		assert.LessOrEqual(t, response.Stats.Score, 100)
		assert.NotEmpty(t, response.Roast)
		assert.NotEmpty(t, response.Achievements)
		assert.Len(t, response.Stats.ActivityDays, 30)
	})

	// Test Case 2: Invalid address comes back with the discriminant
	t.Run("Invalid Address", func(t *testing.T) {
		resp, err := http.Get(BaseURL + "/api/wallet/not-a-wallet")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var response AnalyzeResponse
		err = json.NewDecoder(resp.Body).Decode(&response)
		require.NoError(t, err)
		require.NotNil(t, response.Stats)
		assert.Equal(t, "INVALID_ADDRESS", response.Stats.Error)
		assert.Equal(t, "0.0000", response.Stats.NativeBalance)
	})

	// Test Case 3: Empty wallet
	t.Run("Empty Wallet", func(t *testing.T) {
		resp, err := http.Get(BaseURL + "/api/wallet/" + emptyAddress)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var response AnalyzeResponse
		err = json.NewDecoder(resp.Body).Decode(&response)
		require.NoError(t, err)
		require.NotNil(t, response.Stats)
		// The system address either has no history or rate-limits; both
		// are degraded-but-populated responses.
		assert.NotEmpty(t, response.Roast)
	})

	// Test Case 4: Analyze with options
	t.Run("Analyze With Options", func(t *testing.T) {
		payload, err := json.Marshal(map[string]interface{}{
			"includeHistogram": false,
			"maxTransactions":  5,
		})
		require.NoError(t, err)

		resp, err := http.Post(BaseURL+"/api/wallet/"+knownAddress, "application/json", bytes.NewBuffer(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var response AnalyzeResponse
		err = json.NewDecoder(resp.Body).Decode(&response)
		require.NoError(t, err)
		require.NotNil(t, response.Stats)
		assert.Empty(t, response.Stats.ActivityDays)
	})

	// Test Case 5: Roast with a precomputed stats body
	t.Run("Roast From Stats", func(t *testing.T) {
		payload, err := json.Marshal(map[string]interface{}{
			"stats": map[string]interface{}{
				"totalTrades": 200,
				"successRate": 40,
				"gasSpentSol": 2.5,
			},
		})
		require.NoError(t, err)

		resp, err := http.Post(BaseURL+"/api/wallet/"+knownAddress+"/roast", "application/json", bytes.NewBuffer(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var response struct {
			Roast string `json:"roast"`
		}
		err = json.NewDecoder(resp.Body).Decode(&response)
		require.NoError(t, err)
		assert.NotEmpty(t, response.Roast)
	})

	// Test Case 6: Roast rejects an invalid address
	t.Run("Roast Invalid Address", func(t *testing.T) {
		resp, err := http.Post(BaseURL+"/api/wallet/garbage/roast", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
