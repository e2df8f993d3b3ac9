package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jup-pnl-sol/internal/consts"
)

// 主网交易签名
const testSignature = "26N7CkAScr2msSTHNoEGtfwWkHwrsqRhwUPjh366SyYG5oY4CojjDQFZR8ZPN7nt5JEqqYBBvWndHxNQcf1mkBzz"

type testRpcRequest struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// newRpcServer 启动一个模拟 JSON-RPC 节点，handler 返回 result 字段内容
func newRpcServer(t *testing.T, handler func(req testRpcRequest) (result any, rpcErr map[string]any)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req testRpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		result, rpcErr := handler(req)
		resp := map[string]any{"jsonrpc": "2.0", "id": 1}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRpcClient_GetParsedTransaction(t *testing.T) {
	server := newRpcServer(t, func(req testRpcRequest) (any, map[string]any) {
		assert.Equal(t, "getTransaction", req.Method)
		require.Len(t, req.Params, 2)

		var sig string
		require.NoError(t, json.Unmarshal(req.Params[0], &sig))
		assert.Equal(t, testSignature, sig)

		var cfg map[string]any
		require.NoError(t, json.Unmarshal(req.Params[1], &cfg))
		assert.Equal(t, "jsonParsed", cfg["encoding"])
		assert.Equal(t, "finalized", cfg["commitment"])
		assert.EqualValues(t, 1, cfg["maxSupportedTransactionVersion"])

		return map[string]any{
			"slot":      123456,
			"blockTime": 1700000000,
			"version":   0,
			"meta": map[string]any{
				"err": nil,
				"innerInstructions": []any{
					map[string]any{
						"index": 2,
						"instructions": []any{
							map[string]any{"programId": consts.JupiterV6ProgramStr, "accounts": []string{"a"}, "data": "3Bxs"},
							map[string]any{"programId": consts.TokenProgramStr, "program": "spl-token", "parsed": map[string]any{"type": "transfer"}},
						},
					},
				},
				"postTokenBalances": []any{
					map[string]any{
						"accountIndex": 1,
						"mint":         consts.USDCMintStr,
						"owner":        "owner1",
						"uiTokenAmount": map[string]any{
							"amount":   "1500000",
							"decimals": 6,
						},
					},
				},
			},
		}, nil
	})

	c := NewRpcClient(server.URL)
	tx, err := c.GetParsedTransaction(context.Background(), testSignature)
	require.NoError(t, err)

	assert.Equal(t, uint64(123456), tx.Slot)
	assert.Equal(t, int64(1700000000), tx.BlockTimeOrZero())
	require.NotNil(t, tx.Meta)
	require.Len(t, tx.Meta.InnerInstructions, 1)

	ixs := tx.Meta.InnerInstructions[0].Instructions
	require.Len(t, ixs, 2)
	assert.False(t, ixs[0].IsParsed())
	assert.Equal(t, "3Bxs", ixs[0].Data)
	assert.True(t, ixs[1].IsParsed())
	assert.Equal(t, "spl-token", ixs[1].Program)

	require.Len(t, tx.Meta.PostTokenBalances, 1)
	assert.Equal(t, uint8(6), tx.Meta.PostTokenBalances[0].UiTokenAmount.Decimals)
	assert.Equal(t, "1500000", tx.Meta.PostTokenBalances[0].UiTokenAmount.Amount)
}

func TestRpcClient_GetParsedTransaction_NullResult(t *testing.T) {
	server := newRpcServer(t, func(req testRpcRequest) (any, map[string]any) {
		return nil, nil
	})

	_, err := NewRpcClient(server.URL).GetParsedTransaction(context.Background(), testSignature)
	assert.ErrorIs(t, err, ErrTxNotFound)
}

func TestRpcClient_GetParsedTransaction_InvalidSignature(t *testing.T) {
	var called bool
	server := newRpcServer(t, func(req testRpcRequest) (any, map[string]any) {
		called = true
		return nil, nil
	})

	_, err := NewRpcClient(server.URL).GetParsedTransaction(context.Background(), "not-a-signature")
	assert.Error(t, err)
	assert.False(t, called)
}

func TestRpcClient_RpcError(t *testing.T) {
	server := newRpcServer(t, func(req testRpcRequest) (any, map[string]any) {
		return nil, map[string]any{"code": -32602, "message": "Invalid param"}
	})

	_, err := NewRpcClient(server.URL).GetSignaturesForAddress(context.Background(), consts.USDCMint, 25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid param")
}

func TestRpcClient_GetSignaturesForAddress(t *testing.T) {
	server := newRpcServer(t, func(req testRpcRequest) (any, map[string]any) {
		assert.Equal(t, "getSignaturesForAddress", req.Method)

		var addr string
		require.NoError(t, json.Unmarshal(req.Params[0], &addr))
		assert.Equal(t, consts.USDCMintStr, addr)

		var cfg map[string]any
		require.NoError(t, json.Unmarshal(req.Params[1], &cfg))
		assert.EqualValues(t, 25, cfg["limit"])
		assert.Equal(t, "finalized", cfg["commitment"])

		return []any{
			map[string]any{"signature": "s1", "slot": 10, "blockTime": 1700000001},
			map[string]any{"signature": "s2", "slot": 9, "err": map[string]any{"InstructionError": []any{0, "x"}}},
		}, nil
	})

	infos, err := NewRpcClient(server.URL).GetSignaturesForAddress(context.Background(), consts.USDCMint, 25)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "s1", infos[0].Signature)
	assert.NotNil(t, infos[1].Err)
}

func TestRpcClient_GetTokenAccountsByOwner(t *testing.T) {
	server := newRpcServer(t, func(req testRpcRequest) (any, map[string]any) {
		assert.Equal(t, "getTokenAccountsByOwner", req.Method)

		var filter map[string]string
		require.NoError(t, json.Unmarshal(req.Params[1], &filter))
		assert.Equal(t, consts.WSOLMintStr, filter["mint"])

		return map[string]any{
			"context": map[string]any{"slot": 1},
			"value": []any{
				map[string]any{"pubkey": consts.USDTMintStr, "account": map[string]any{}},
			},
		}, nil
	})

	c := NewRpcClient(server.URL)
	accounts, err := c.GetTokenAccountsByOwner(context.Background(), consts.USDCMint, consts.WSOLMint)
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	ata, err := FindTokenAccount(context.Background(), c, consts.USDCMint, consts.WSOLMint)
	require.NoError(t, err)
	assert.Equal(t, consts.USDTMint, ata)
}
