package consts

const (
	// MaxSignatures 每次请求最多分析的最近交易数（不翻页）
	MaxSignatures = 25
	// MaxWorkers 拉取交易 / 构建 SwapRecord 两个阶段各自的并发上限
	MaxWorkers = 25

	TxFetchAttempts         = 5
	HistoricalPriceAttempts = 3
	CurrentPriceAttempts    = 5

	// MaxSupportedTxVersion 同时支持 legacy 与 v0 交易
	MaxSupportedTxVersion = 1
)
