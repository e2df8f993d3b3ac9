package price

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zeromicro/go-zero/rest/httpc"
)

const defaultTimeout = 10 * time.Second

// errRetryable 传输错误或非 2xx 状态，可立即重试
var errRetryable = errors.New("retryable price request failure")

func newHTTPService(name string, timeout time.Duration) httpc.Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return httpc.NewServiceWithClient(name, &http.Client{Timeout: timeout})
}

// getJSON 发送 GET 请求并解码 JSON 响应体
func getJSON(ctx context.Context, svc httpc.Service, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := svc.DoRequest(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errRetryable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", errRetryable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// withRetry 立即重试 fn，最多 attempts 次；仅 errRetryable 会触发重试，ctx 结束时提前返回
func withRetry(ctx context.Context, attempts int, fn func() error) error {
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil || !errors.Is(lastErr, errRetryable) {
			return lastErr
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
