package chain

import "encoding/json"

// 以下结构对应 getTransaction(encoding=jsonParsed) 的返回格式，只保留本服务用到的字段。

type ParsedTransaction struct {
	Slot      uint64           `json:"slot"`
	BlockTime *int64           `json:"blockTime"`
	Version   any              `json:"version"` // "legacy" 或 0
	Meta      *TransactionMeta `json:"meta"`
}

// BlockTimeOrZero 返回区块时间，缺失时为 0
func (tx *ParsedTransaction) BlockTimeOrZero() int64 {
	if tx == nil || tx.BlockTime == nil {
		return 0
	}
	return *tx.BlockTime
}

type TransactionMeta struct {
	Err               any                 `json:"err"`
	Fee               uint64              `json:"fee"`
	InnerInstructions []InnerInstructions `json:"innerInstructions"`
	PreTokenBalances  []TokenBalance      `json:"preTokenBalances"`
	PostTokenBalances []TokenBalance      `json:"postTokenBalances"`
	LogMessages       []string            `json:"logMessages"`
}

// InnerInstructions 某条主指令（Index）触发的全部 inner 指令
type InnerInstructions struct {
	Index        int             `json:"index"`
	Instructions []UiInstruction `json:"instructions"`
}

// UiInstruction 兼容两种形态：
//   - parsed:            RPC 节点已解析（program / parsed 字段）
//   - partially decoded: 节点无法解析，仅给出 accounts 与 base58 编码的原始 data
type UiInstruction struct {
	ProgramID   string          `json:"programId"`
	Program     string          `json:"program,omitempty"`
	Parsed      json.RawMessage `json:"parsed,omitempty"`
	Accounts    []string        `json:"accounts,omitempty"`
	Data        string          `json:"data,omitempty"`
	StackHeight *int            `json:"stackHeight,omitempty"`
}

func (ix *UiInstruction) IsParsed() bool {
	return len(ix.Parsed) > 0
}

type TokenBalance struct {
	AccountIndex  int           `json:"accountIndex"`
	Mint          string        `json:"mint"`
	Owner         string        `json:"owner"`
	ProgramID     string        `json:"programId"`
	UiTokenAmount UiTokenAmount `json:"uiTokenAmount"`
}

type UiTokenAmount struct {
	Amount         string `json:"amount"`
	Decimals       uint8  `json:"decimals"`
	UiAmountString string `json:"uiAmountString"`
}

// SignatureInfo getSignaturesForAddress 的单条结果
type SignatureInfo struct {
	Signature          string  `json:"signature"`
	Slot               uint64  `json:"slot"`
	BlockTime          *int64  `json:"blockTime"`
	Err                any     `json:"err"`
	ConfirmationStatus *string `json:"confirmationStatus"`
}

// TokenAccount getTokenAccountsByOwner 的单条结果
type TokenAccount struct {
	Pubkey string `json:"pubkey"`
}

type tokenAccountsResult struct {
	Value []TokenAccount `json:"value"`
}
