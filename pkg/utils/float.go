package utils

import "github.com/shopspring/decimal"

// RoundTwo 保留两位小数（.5 远离零方向进位）
func RoundTwo(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// ToPercentage 格式化为两位小数的百分比字符串，例如 12.3456 → "12.35%"
func ToPercentage(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2) + "%"
}
