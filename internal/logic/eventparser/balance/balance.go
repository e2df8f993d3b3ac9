package balance

import (
	"strconv"

	"jup-pnl-sol/internal/logic/chain"
	"jup-pnl-sol/internal/logic/domain"
	"jup-pnl-sol/internal/types"
	"jup-pnl-sol/pkg/logger"
)

// ExtractBalances 返回交易后余额中 owner 为 wallet 的记录，仅用于确定 mint 精度
func ExtractBalances(signature string, wallet types.Pubkey, meta *chain.TransactionMeta) []domain.TokenBalanceFact {
	if meta == nil || len(meta.PostTokenBalances) == 0 {
		logger.Debugf("[BalanceExtractor] 交易无 postTokenBalances: tx=%s, wallet=%s", signature, wallet)
		return nil
	}

	walletStr := wallet.String()
	facts := make([]domain.TokenBalanceFact, 0, 2)
	for _, b := range meta.PostTokenBalances {
		if b.Owner != walletStr {
			continue
		}

		mint, err := types.TryPubkeyFromBase58(b.Mint)
		if err != nil {
			logger.Warnf("[BalanceExtractor] mint 地址非法，跳过: tx=%s, mint=%s, err=%v", signature, b.Mint, err)
			continue
		}

		// 余额只作参考，解析失败按 0 处理
		amount, err := strconv.ParseUint(b.UiTokenAmount.Amount, 10, 64)
		if err != nil {
			amount = 0
		}

		facts = append(facts, domain.TokenBalanceFact{
			Owner:    wallet,
			Mint:     mint,
			Balance:  amount,
			Decimals: b.UiTokenAmount.Decimals,
		})
	}
	return facts
}
