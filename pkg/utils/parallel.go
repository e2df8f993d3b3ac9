package utils

import (
	"runtime/debug"
	"sync"

	"jup-pnl-sol/pkg/logger"
)

// ChunkSize 计算静态分块大小：保证分块数不超过 maxWorkers，且每块至少 1 个元素。
func ChunkSize(total, maxWorkers int) int {
	if total <= 0 {
		return 1
	}
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	size := (total + maxWorkers - 1) / maxWorkers
	return max(size, 1)
}

// ParallelChunks 将 items 切分为连续分块，每个分块由一个 goroutine 顺序处理，
// 所有 goroutine 结束后才返回（屏障）。分块之间不做任务窃取。
// fn 内部 panic 会被捕获并记录，只影响当前元素。
func ParallelChunks[T any](items []T, maxWorkers int, fn func(item T)) {
	if len(items) == 0 {
		return
	}
	size := ChunkSize(len(items), maxWorkers)

	var wg sync.WaitGroup
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunk := items[start:end]

		wg.Add(1)
		go func(chunk []T) {
			defer wg.Done()
			for _, item := range chunk {
				runSafe(fn, item)
			}
		}(chunk)
	}
	wg.Wait()
}

func runSafe[T any](fn func(item T), item T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[ParallelChunks] worker panic: %v\nstack: %s", r, debug.Stack())
		}
	}()
	fn(item)
}
