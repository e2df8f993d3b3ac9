package swapitem

import (
	"context"

	"jup-pnl-sol/internal/logic/domain"
	"jup-pnl-sol/internal/types"
	"jup-pnl-sol/pkg/logger"
)

type PriceResolver interface {
	Resolve(ctx context.Context, mint types.Pubkey, ts int64) (domain.ScaledAmount, bool)
}

// Builder 把单笔交易的 SwapEvent 汇总为目标 token 的 SwapRecord
type Builder struct {
	prices PriceResolver
}

func NewBuilder(prices PriceResolver) *Builder {
	return &Builder{prices: prices}
}

// priceMemo 单笔交易内的价格缓存，未命中（none）同样缓存，交易处理完即丢弃
type priceMemo struct {
	ctx    context.Context
	ts     int64
	prices PriceResolver
	cache  map[types.Pubkey]*domain.ScaledAmount
}

func (m *priceMemo) get(mint types.Pubkey) (domain.ScaledAmount, bool) {
	if p, ok := m.cache[mint]; ok {
		if p == nil {
			return domain.ScaledAmount{}, false
		}
		return *p, true
	}

	p, ok := m.prices.Resolve(m.ctx, mint, m.ts)
	if !ok {
		m.cache[mint] = nil
		return domain.ScaledAmount{}, false
	}
	m.cache[mint] = &p
	return p, true
}

// Build 卖出腿（input == target）按 output token 的价格估值，买入腿（output == target）按 input token 的价格估值。
// 任一侧 decimals 未知或价格不可用时跳过该腿。
func (b *Builder) Build(ctx context.Context, target types.Pubkey, bundle *domain.TxBundle) domain.SwapRecord {
	record := domain.SwapRecord{
		Signature: bundle.Signature,
		BlockTime: bundle.BlockTime,
		Mint:      target,
	}
	if len(bundle.Swaps) == 0 {
		return record
	}

	decimals := bundle.DecimalsByMint()
	memo := &priceMemo{
		ctx:    ctx,
		ts:     bundle.BlockTime,
		prices: b.prices,
		cache:  make(map[types.Pubkey]*domain.ScaledAmount, 2),
	}

	for i := range bundle.Swaps {
		ev := &bundle.Swaps[i]

		inDec, inOk := decimals[ev.InputMint]
		outDec, outOk := decimals[ev.OutputMint]
		if !inOk || !outOk {
			if ev.InputMint == target || ev.OutputMint == target {
				logger.Debugf("[SwapItemBuilder] 缺少 decimals，跳过: tx=%s, in=%s, out=%s",
					bundle.Signature, ev.InputMint, ev.OutputMint)
			}
			continue
		}
		input := domain.NewScaledAmount(ev.InputAmount, inDec)
		output := domain.NewScaledAmount(ev.OutputAmount, outDec)

		// 卖出
		if ev.InputMint == target {
			if price, ok := memo.get(ev.OutputMint); ok {
				qty := input.Float()
				usd := output.MulFloat(price)
				record.Amount -= qty
				record.SellAmount += qty
				record.UsdValue -= usd
				record.SellUsdValue += usd
			}
		}

		// 买入
		if ev.OutputMint == target {
			if price, ok := memo.get(ev.InputMint); ok {
				qty := output.Float()
				usd := input.MulFloat(price)
				record.Amount += qty
				record.BuyAmount += qty
				record.UsdValue += usd
				record.BuyUsdValue += usd
			}
		}
	}
	return record
}
