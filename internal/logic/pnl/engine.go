package pnl

import (
	"context"

	"jup-pnl-sol/internal/consts"
	"jup-pnl-sol/internal/logic/domain"
	"jup-pnl-sol/internal/types"
	"jup-pnl-sol/pkg/utils"
)

type CurrentPricer interface {
	ResolveCurrent(ctx context.Context, mint types.Pubkey, attempts int) (float64, bool)
}

// Engine 根据按时间升序排列的 SwapRecord 计算盈亏汇总
type Engine struct {
	prices          CurrentPricer
	currentAttempts int
}

func NewEngine(prices CurrentPricer, currentAttempts int) *Engine {
	if currentAttempts <= 0 {
		currentAttempts = consts.CurrentPriceAttempts
	}
	return &Engine{prices: prices, currentAttempts: currentAttempts}
}

// Summarize records 必须已按 BlockTime 升序排列
func (e *Engine) Summarize(ctx context.Context, mint types.Pubkey, records []domain.SwapRecord) domain.PnlSummary {
	var acc Accumulator
	for _, r := range records {
		acc.Apply(r)
	}

	var s domain.PnlSummary
	if acc.boughtAmount <= 0 {
		return s
	}

	avgCost := acc.boughtUsd / acc.boughtAmount
	s.AverageCost = ptr(utils.RoundTwo(avgCost))

	if acc.soldAmount <= 0 {
		return s
	}

	realized := (acc.soldUsd/acc.soldAmount - avgCost) * acc.soldAmount
	s.ProfitLossValue = ptr(utils.RoundTwo(realized))

	if acc.boughtUsd > 0 {
		s.ProfitLossPercentage = ptr(utils.ToPercentage(realized / acc.boughtUsd * 100))
	}

	if price, ok := e.prices.ResolveCurrent(ctx, mint, e.currentAttempts); ok {
		s.UnrealizedProfitLossValue = ptr(utils.RoundTwo(acc.position * (price - avgCost)))
	}
	return s
}

func ptr[T any](v T) *T { return &v }
