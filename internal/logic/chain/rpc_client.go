package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"

	"jup-pnl-sol/internal/consts"
	"jup-pnl-sol/internal/types"
)

const encodingJsonParsed = "jsonParsed"

var ErrTxNotFound = errors.New("transaction not found")

// RpcClient 基于 blocto client 的 JSON-RPC 传输层，统一使用 finalized 确认级别。
// jsonParsed 形态的交易结构由本包自行定义（见 rpc_types.go）。
type RpcClient struct {
	cli *client.Client
}

func NewRpcClient(endpoint string) *RpcClient {
	return &RpcClient{cli: client.NewClient(endpoint)}
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcResponse[T any] struct {
	Result T         `json:"result"`
	Error  *rpcError `json:"error"`
}

func call[T any](ctx context.Context, c *RpcClient, method string, params ...any) (T, error) {
	var zero T
	body, err := c.cli.RpcClient.Call(ctx, append([]any{method}, params...)...)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", method, err)
	}
	var resp rpcResponse[T]
	if err := json.Unmarshal(body, &resp); err != nil {
		return zero, fmt.Errorf("%s: decode response: %w", method, err)
	}
	if resp.Error != nil {
		return zero, fmt.Errorf("%s: %w", method, resp.Error)
	}
	return resp.Result, nil
}

// GetTokenAccountsByOwner 查询 owner 名下指定 mint 的 token 账户
func (c *RpcClient) GetTokenAccountsByOwner(ctx context.Context, owner, mint types.Pubkey) ([]TokenAccount, error) {
	res, err := call[tokenAccountsResult](ctx, c, "getTokenAccountsByOwner",
		owner.String(),
		map[string]any{"mint": mint.String()},
		map[string]any{
			"encoding":   encodingJsonParsed,
			"commitment": rpc.CommitmentFinalized,
		},
	)
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

// GetSignaturesForAddress 返回地址最近的交易签名（新 → 旧）
func (c *RpcClient) GetSignaturesForAddress(ctx context.Context, addr types.Pubkey, limit int) ([]SignatureInfo, error) {
	return call[[]SignatureInfo](ctx, c, "getSignaturesForAddress",
		addr.String(),
		map[string]any{
			"limit":      limit,
			"commitment": rpc.CommitmentFinalized,
		},
	)
}

// GetParsedTransaction 以 jsonParsed 编码拉取完整交易，result 为 null 时返回 ErrTxNotFound
func (c *RpcClient) GetParsedTransaction(ctx context.Context, signature string) (*ParsedTransaction, error) {
	// 非法签名不发起请求
	if _, err := types.SignatureFromBase58(signature); err != nil {
		return nil, err
	}

	tx, err := call[*ParsedTransaction](ctx, c, "getTransaction",
		signature,
		map[string]any{
			"encoding":                       encodingJsonParsed,
			"commitment":                     rpc.CommitmentFinalized,
			"maxSupportedTransactionVersion": consts.MaxSupportedTxVersion,
		},
	)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("getTransaction %s: %w", signature, ErrTxNotFound)
	}
	return tx, nil
}
