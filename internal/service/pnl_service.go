package service

import (
	"context"
	"time"

	"jup-pnl-sol/internal/logic/domain"
	"jup-pnl-sol/internal/logic/indexer"
	"jup-pnl-sol/internal/mq"
	"jup-pnl-sol/internal/types"
)

type PnlCalculator interface {
	Pnl(ctx context.Context, wallet, token types.Pubkey) indexer.Result
}

type SummaryPublisher interface {
	Publish(ctx context.Context, msg mq.SummaryMessage)
}

// PnlService 对外的 PnL 查询入口：计算后（可选）发布到 Kafka
type PnlService struct {
	calc      PnlCalculator
	publisher SummaryPublisher // 可为 nil
}

func NewPnlService(calc PnlCalculator, publisher SummaryPublisher) *PnlService {
	return &PnlService{calc: calc, publisher: publisher}
}

func (s *PnlService) Query(ctx context.Context, wallet, token types.Pubkey) domain.PnlSummary {
	res := s.calc.Pnl(ctx, wallet, token)

	if s.publisher != nil && res.Transactions > 0 {
		// 客户端断开不影响发布
		msg := mq.NewSummaryMessage(wallet, token, res.Summary, res.Transactions, time.Now())
		s.publisher.Publish(context.WithoutCancel(ctx), msg)
	}
	return res.Summary
}
