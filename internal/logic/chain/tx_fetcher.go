package chain

import (
	"context"
	"sync"
	"time"

	"jup-pnl-sol/internal/consts"
	"jup-pnl-sol/pkg/logger"
	"jup-pnl-sol/pkg/utils"
)

type TransactionGetter interface {
	GetParsedTransaction(ctx context.Context, signature string) (*ParsedTransaction, error)
}

// TxFetcher 并发拉取交易详情：签名列表静态切分给至多 workers 个 goroutine，
// 每个签名失败后立即重试，最多 attempts 次；重试耗尽的签名直接丢弃。
type TxFetcher struct {
	rpc      TransactionGetter
	attempts int
	workers  int
}

func NewTxFetcher(rpc TransactionGetter, attempts, workers int) *TxFetcher {
	if attempts <= 0 {
		attempts = consts.TxFetchAttempts
	}
	if workers <= 0 {
		workers = consts.MaxWorkers
	}
	return &TxFetcher{rpc: rpc, attempts: attempts, workers: workers}
}

// FetchAll 返回 signature → 交易 的映射，只包含成功拉取且带 meta 的交易
func (f *TxFetcher) FetchAll(ctx context.Context, signatures []string) map[string]*ParsedTransaction {
	start := time.Now()

	var mu sync.Mutex
	txs := make(map[string]*ParsedTransaction, len(signatures))

	utils.ParallelChunks(signatures, f.workers, func(sig string) {
		tx := f.fetchOne(ctx, sig)
		if tx == nil {
			return
		}
		if tx.Meta == nil {
			logger.Warnf("[TxFetcher] 交易缺少 meta，已丢弃: sig=%s", sig)
			return
		}
		mu.Lock()
		txs[sig] = tx
		mu.Unlock()
	})

	logger.Infof("[TxFetcher] 拉取完成: 请求=%d, 成功=%d, 耗时=%v", len(signatures), len(txs), time.Since(start))
	return txs
}

func (f *TxFetcher) fetchOne(ctx context.Context, sig string) *ParsedTransaction {
	var lastErr error
	for i := 0; i < f.attempts; i++ {
		if ctx.Err() != nil {
			logger.Warnf("[TxFetcher] 请求已取消，停止拉取: sig=%s, err=%v", sig, ctx.Err())
			return nil
		}
		tx, err := f.rpc.GetParsedTransaction(ctx, sig)
		if err == nil {
			return tx
		}
		lastErr = err
		logger.Debugf("[TxFetcher] 第 %d 次拉取失败: sig=%s, err=%v", i+1, sig, err)
	}
	logger.Errorf("[TxFetcher] 重试 %d 次仍失败，丢弃该交易: sig=%s, err=%v", f.attempts, sig, lastErr)
	return nil
}
