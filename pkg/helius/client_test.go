package helius

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "DRiP2Pn2K6fuMLKQmt5rZWyHiUZ6WK3GChEySUpHSS4x"

// testClient routes both the RPC and REST endpoints at server.
func testClient(server *httptest.Server) *Client {
	c := NewClient("test-key")
	c.rpcURL = server.URL
	c.baseURL = server.URL
	return c
}

func rpcResult(t *testing.T, result string) []byte {
	t.Helper()
	return []byte(`{"jsonrpc":"2.0","id":"1","result":` + result + `}`)
}

func TestHasKey(t *testing.T) {
	assert.True(t, NewClient("k").HasKey())
	assert.False(t, NewClient("").HasKey())
}

func TestGetBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "getBalance", req.Method)
		assert.Equal(t, testAddress, req.Params[0])
		assert.Equal(t, "test-key", r.URL.Query().Get("api-key"))

		w.Write(rpcResult(t, `{"context":{"slot":1},"value":2500000000}`))
	}))
	defer server.Close()

	balance, err := testClient(server).GetBalance(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Equal(t, 2.5, balance)
}

func TestGetSignaturesMarksFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "getSignaturesForAddress", req.Method)

		opts := req.Params[1].(map[string]interface{})
		assert.Equal(t, float64(50), opts["limit"])
		assert.Equal(t, "confirmed", opts["commitment"])

		w.Write(rpcResult(t, `[
			{"signature":"ok","blockTime":1700000000,"err":null},
			{"signature":"boom","blockTime":1700000100,"err":{"InstructionError":[0,"Custom"]}},
			{"signature":"pending","blockTime":null,"err":null}
		]`))
	}))
	defer server.Close()

	signatures, err := testClient(server).GetSignatures(context.Background(), testAddress, 0)
	require.NoError(t, err)
	require.Len(t, signatures, 3)

	assert.False(t, signatures[0].Failed)
	assert.True(t, signatures[1].Failed)
	assert.Nil(t, signatures[2].BlockTime)
	require.NotNil(t, signatures[0].BlockTime)
	assert.Equal(t, int64(1700000000), *signatures[0].BlockTime)
}

func TestGetTokenAccountsSkipsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(rpcResult(t, `{"value":[
			{"account":{"data":{"parsed":{"info":{"mint":"DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263","tokenAmount":{"uiAmount":1234.5}}}}}},
			{"account":{"data":{"parsed":{"info":{"mint":"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v","tokenAmount":{"uiAmount":0}}}}}}
		]}`))
	}))
	defer server.Close()

	holdings, err := testClient(server).GetTokenAccounts(context.Background(), testAddress)
	require.NoError(t, err)
	require.Len(t, holdings, 1, "zero-amount accounts are skipped")
	assert.Equal(t, "BONK", holdings[0].Symbol)
	assert.Equal(t, 1234.5, holdings[0].Amount)
}

func TestGetTransactionNormalizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(rpcResult(t, `{
			"blockTime":1700000000,
			"meta":{"fee":5000,"err":null},
			"transaction":{"message":{"instructions":[
				{"program":"spl-token","programId":"TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA","parsed":{"type":"transferChecked"}},
				{"programId":"JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4"}
			]}}
		}`))
	}))
	defer server.Close()

	tx, err := testClient(server).GetTransaction(context.Background(), "sig1")
	require.NoError(t, err)
	assert.Equal(t, "sig1", tx.Signature)
	assert.Equal(t, int64(5000), tx.Fee)
	assert.Equal(t, int64(1700000000), tx.Timestamp)
	assert.False(t, tx.Failed)
	require.Len(t, tx.Instructions, 2)
	assert.Equal(t, "transferChecked", tx.Instructions[0].Type)
	assert.Equal(t, "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4", tx.Instructions[1].ProgramID)
}

func TestGetTransactionNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(rpcResult(t, `null`))
	}))
	defer server.Close()

	_, err := testClient(server).GetTransaction(context.Background(), "missing")
	assert.Error(t, err)
}

func TestDoWithRetryRecoversFromServerError(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write(rpcResult(t, `{"value":1000000000}`))
	}))
	defer server.Close()

	balance, err := testClient(server).GetBalance(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Equal(t, 1.0, balance)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestDoWithRetryGivesUpOnClientError(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := testClient(server).GetBalance(context.Background(), testAddress)
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "4xx other than 429 must not retry")
}

func TestDoWithRetryHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := testClient(server).GetBalance(ctx, testAddress)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "cancellation must cut the backoff sleep short")
}

func TestRPCErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":"1","error":{"code":-32602,"message":"Invalid params"}}`))
	}))
	defer server.Close()

	_, err := testClient(server).GetBalance(context.Background(), testAddress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid params")
}

func TestSymbolForMint(t *testing.T) {
	assert.Equal(t, "USDC", SymbolForMint("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"))
	assert.Equal(t, "Some..1111", SymbolForMint("SomeUnknownMint1111111111111111111111111111"))
}
