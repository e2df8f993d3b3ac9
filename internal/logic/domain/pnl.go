package domain

// PnlSummary 对外输出的盈亏汇总，未满足前置条件的字段保持 nil（序列化为 null），不默认为 0
type PnlSummary struct {
	AverageCost               *float64 `json:"averageCost"`
	ProfitLossPercentage      *string  `json:"profitLossPercentage"`
	ProfitLossValue           *float64 `json:"profitLossValue"`
	UnrealizedProfitLossValue *float64 `json:"unrealizedProfitLossValue"`
}

func (s PnlSummary) IsEmpty() bool {
	return s.AverageCost == nil && s.ProfitLossPercentage == nil &&
		s.ProfitLossValue == nil && s.UnrealizedProfitLossValue == nil
}
