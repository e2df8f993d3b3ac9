package domain

import "jup-pnl-sol/internal/types"

// SwapEvent 聚合器 inner 指令中解码出的一条 swap 腿（不可变）
type SwapEvent struct {
	Amm          types.Pubkey // 池子 / 市场地址
	InputMint    types.Pubkey
	InputAmount  uint64
	OutputMint   types.Pubkey
	OutputAmount uint64
}

// TokenBalanceFact 交易后余额中属于目标钱包的一条记录，仅用于获取 mint 精度
type TokenBalanceFact struct {
	Owner    types.Pubkey
	Mint     types.Pubkey
	Balance  uint64
	Decimals uint8
}

// TxBundle 单笔交易提取出的事实集合，由 SwapItemBuilder 消费一次
type TxBundle struct {
	Signature string
	BlockTime int64 // Unix 秒，缺失时为 0
	Swaps     []SwapEvent
	Balances  []TokenBalanceFact
}

// DecimalsByMint 构建本交易内 mint → decimals 映射
func (b *TxBundle) DecimalsByMint() map[types.Pubkey]uint8 {
	m := make(map[types.Pubkey]uint8, len(b.Balances))
	for _, bal := range b.Balances {
		m[bal.Mint] = bal.Decimals
	}
	return m
}

// SwapRecord 单笔交易针对目标 token 的买卖汇总
type SwapRecord struct {
	Signature string
	BlockTime int64
	Mint      types.Pubkey

	Amount   float64 // 目标 token 净变动
	UsdValue float64 // 净 USD 变动

	BuyAmount    float64
	SellAmount   float64
	BuyUsdValue  float64
	SellUsdValue float64
}
