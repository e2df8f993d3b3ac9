package indexer

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"jup-pnl-sol/internal/consts"
	"jup-pnl-sol/internal/logic/chain"
	"jup-pnl-sol/internal/logic/domain"
	"jup-pnl-sol/internal/logic/eventparser/balance"
	"jup-pnl-sol/internal/logic/eventparser/jupiter"
	"jup-pnl-sol/internal/types"
	"jup-pnl-sol/pkg/logger"
	"jup-pnl-sol/pkg/utils"
)

// RpcProvider Solana JSON-RPC 的三个只读接口
type RpcProvider interface {
	chain.TokenAccountLister
	chain.SignatureLister
	chain.TransactionGetter
}

type RecordBuilder interface {
	Build(ctx context.Context, target types.Pubkey, bundle *domain.TxBundle) domain.SwapRecord
}

type Summarizer interface {
	Summarize(ctx context.Context, mint types.Pubkey, records []domain.SwapRecord) domain.PnlSummary
}

// Result 一次 PnL 计算的结果
type Result struct {
	Summary      domain.PnlSummary
	Transactions int // 成功拉取并参与计算的交易数
}

// Indexer 串联一次完整的 PnL 计算：
// ATA → 最近签名 → 并发拉取交易 → 解码 swap / 余额 → 并发构建 SwapRecord → 按时间排序 → 汇总
type Indexer struct {
	rpc        RpcProvider
	signatures *chain.SignatureSource
	fetcher    *chain.TxFetcher
	builder    RecordBuilder
	engine     Summarizer
	workers    int
	timeout    time.Duration
}

type Options struct {
	MaxSignatures  int
	FetchAttempts  int
	Workers        int
	RequestTimeout time.Duration // 0 表示不额外设置超时
}

func New(rpc RpcProvider, builder RecordBuilder, engine Summarizer, opt Options) *Indexer {
	workers := opt.Workers
	if workers <= 0 {
		workers = consts.MaxWorkers
	}
	return &Indexer{
		rpc:        rpc,
		signatures: chain.NewSignatureSource(rpc, opt.MaxSignatures),
		fetcher:    chain.NewTxFetcher(rpc, opt.FetchAttempts, workers),
		builder:    builder,
		engine:     engine,
		workers:    workers,
		timeout:    opt.RequestTimeout,
	}
}

// Pnl 计算 wallet 持有 token 的盈亏。任何失败都只会让结果变少或为空，不返回错误。
func (ix *Indexer) Pnl(ctx context.Context, wallet, token types.Pubkey) Result {
	if ix.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ix.timeout)
		defer cancel()
	}
	start := time.Now()

	ata, err := chain.FindTokenAccount(ctx, ix.rpc, wallet, token)
	if err != nil {
		if errors.Is(err, chain.ErrNoTokenAccount) {
			logger.Infof("[Indexer] 钱包未持有该 token 账户: wallet=%s, token=%s", wallet, token)
		} else {
			logger.Errorf("[Indexer] 查询 token 账户失败: wallet=%s, token=%s, err=%v", wallet, token, err)
		}
		return Result{}
	}

	sigs := ix.signatures.Recent(ctx, ata)
	if len(sigs) == 0 {
		logger.Infof("[Indexer] 未找到交易签名: wallet=%s, ata=%s", wallet, ata)
		return Result{}
	}

	txs := ix.fetcher.FetchAll(ctx, sigs)
	bundles := make([]*domain.TxBundle, 0, len(txs))
	for sig, tx := range txs {
		bundles = append(bundles, &domain.TxBundle{
			Signature: sig,
			BlockTime: tx.BlockTimeOrZero(),
			Swaps:     jupiter.ExtractSwapEvents(sig, tx.Meta),
			Balances:  balance.ExtractBalances(sig, wallet, tx.Meta),
		})
	}

	records := ix.buildRecords(ctx, token, bundles)
	SortRecords(records)

	summary := ix.engine.Summarize(ctx, token, records)
	logger.Infof("[Indexer] PnL 计算完成: wallet=%s, token=%s, 签名=%d, 交易=%d, 耗时=%v",
		wallet, token, len(sigs), len(bundles), time.Since(start))

	return Result{Summary: summary, Transactions: len(bundles)}
}

func (ix *Indexer) buildRecords(ctx context.Context, token types.Pubkey, bundles []*domain.TxBundle) []domain.SwapRecord {
	var mu sync.Mutex
	records := make([]domain.SwapRecord, 0, len(bundles))

	utils.ParallelChunks(bundles, ix.workers, func(b *domain.TxBundle) {
		r := ix.builder.Build(ctx, token, b)
		mu.Lock()
		records = append(records, r)
		mu.Unlock()
	})
	return records
}

// SortRecords 按 BlockTime 升序稳定排序，BlockTime 相同时按签名排序保证结果确定
func SortRecords(records []domain.SwapRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].BlockTime != records[j].BlockTime {
			return records[i].BlockTime < records[j].BlockTime
		}
		return records[i].Signature < records[j].Signature
	})
}
