package price

import (
	"context"
	"errors"

	"jup-pnl-sol/internal/consts"
	"jup-pnl-sol/internal/logic/domain"
	"jup-pnl-sol/internal/types"
	"jup-pnl-sol/pkg/logger"
)

// ErrNoHistoricalSource 该 token 没有历史价格来源
var ErrNoHistoricalSource = errors.New("no historical price source")

// SourceKind 按 token 身份划分的价格来源
type SourceKind int

const (
	SourceOther SourceKind = iota
	SourceStable
	SourceWrappedNative
)

func (k SourceKind) String() string {
	switch k {
	case SourceStable:
		return "stable"
	case SourceWrappedNative:
		return "wrapped-native"
	default:
		return "other"
	}
}

// SourceOf USDC / USDT 为稳定币，WSOL 走 Pyth，其余只有现价
func SourceOf(mint types.Pubkey) SourceKind {
	switch mint {
	case consts.USDCMint, consts.USDTMint:
		return SourceStable
	case consts.WSOLMint:
		return SourceWrappedNative
	default:
		return SourceOther
	}
}

type HistoricalPricer interface {
	PriceAt(ctx context.Context, ts int64, attempts int) (domain.ScaledAmount, error)
}

type SpotPricer interface {
	CurrentPrice(ctx context.Context, mint types.Pubkey, attempts int) (float64, error)
}

// Oracle 统一的价格解析入口，所有来源分派都集中在这里
type Oracle struct {
	historical         HistoricalPricer
	spot               SpotPricer
	historicalAttempts int
}

func NewOracle(historical HistoricalPricer, spot SpotPricer, historicalAttempts int) *Oracle {
	if historicalAttempts <= 0 {
		historicalAttempts = consts.HistoricalPriceAttempts
	}
	return &Oracle{
		historical:         historical,
		spot:               spot,
		historicalAttempts: historicalAttempts,
	}
}

var stablePrice = domain.NewScaledAmount(consts.StablePriceRaw, consts.StablePriceDecimals)

// Resolve 返回 mint 在 ts 时刻的 USD 单价
func (o *Oracle) Resolve(ctx context.Context, mint types.Pubkey, ts int64) (domain.ScaledAmount, bool) {
	p, err := o.resolveHistorical(ctx, mint, ts)
	if err != nil {
		if !errors.Is(err, ErrNoHistoricalSource) {
			logger.Warnf("[PriceOracle] 历史价格获取失败: mint=%s, ts=%d, err=%v", mint, ts, err)
		}
		return domain.ScaledAmount{}, false
	}
	return p, true
}

func (o *Oracle) resolveHistorical(ctx context.Context, mint types.Pubkey, ts int64) (domain.ScaledAmount, error) {
	switch SourceOf(mint) {
	case SourceStable:
		return stablePrice, nil
	case SourceWrappedNative:
		return o.historical.PriceAt(ctx, ts, o.historicalAttempts)
	default:
		return domain.ScaledAmount{}, ErrNoHistoricalSource
	}
}

// ResolveCurrent 返回 mint 的 USD 现价，attempts 为现价接口的最大尝试次数
func (o *Oracle) ResolveCurrent(ctx context.Context, mint types.Pubkey, attempts int) (float64, bool) {
	if SourceOf(mint) == SourceStable {
		return stablePrice.Float(), true
	}

	p, err := o.spot.CurrentPrice(ctx, mint, attempts)
	if err != nil {
		logger.Warnf("[PriceOracle] 现价获取失败: mint=%s, err=%v", mint, err)
		return 0, false
	}
	return p, true
}
