package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// ScaledAmount 定点数量：整数原始值 + 小数位数。
// Decimals 是 Raw 唯一的解释尺度，不同 ScaledAmount 之间不能混用尺度。
type ScaledAmount struct {
	Raw      uint64
	Decimals uint8
}

func NewScaledAmount(raw uint64, decimals uint8) ScaledAmount {
	return ScaledAmount{Raw: raw, Decimals: decimals}
}

// Decimal 返回精确的十进制表示
func (a ScaledAmount) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(a.Raw), -int32(a.Decimals))
}

// Float 仅用于 USD 估值计算
func (a ScaledAmount) Float() float64 {
	return a.Decimal().InexactFloat64()
}

// MulFloat 两个定点数相乘（例如 数量 × 单价），结果为浮点
func (a ScaledAmount) MulFloat(b ScaledAmount) float64 {
	return a.Float() * b.Float()
}
