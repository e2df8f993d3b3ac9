package pnl

import "jup-pnl-sol/internal/logic/domain"

// Accumulator 按时间顺序累计买卖数据。
// 查询窗口可能从持仓中途开始，卖出量超过当前持仓时只按持仓量计入（截断），持仓不会为负。
type Accumulator struct {
	position     float64
	boughtAmount float64
	boughtUsd    float64
	soldAmount   float64
	soldUsd      float64
}

func (a *Accumulator) Apply(r domain.SwapRecord) {
	a.position += r.BuyAmount
	a.boughtAmount += r.BuyAmount
	a.boughtUsd += r.BuyUsdValue

	if r.SellAmount <= 0 {
		return
	}

	if r.SellAmount > a.position {
		a.soldAmount += a.position
		a.soldUsd += a.position * (r.SellUsdValue / r.SellAmount)
		a.position = 0
		return
	}

	a.soldAmount += r.SellAmount
	a.soldUsd += r.SellUsdValue
	a.position -= r.SellAmount
}

func (a *Accumulator) Position() float64     { return a.position }
func (a *Accumulator) BoughtAmount() float64 { return a.boughtAmount }
func (a *Accumulator) BoughtUsd() float64    { return a.boughtUsd }
func (a *Accumulator) SoldAmount() float64   { return a.soldAmount }
func (a *Accumulator) SoldUsd() float64      { return a.soldUsd }
