package price

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/rest/httpc"

	"jup-pnl-sol/internal/consts"
	"jup-pnl-sol/internal/logic/domain"
)

// HermesClient Pyth Hermes 历史价格接口
type HermesClient struct {
	endpoint string
	feedID   string
	svc      httpc.Service
}

type hermesResponse struct {
	Parsed []struct {
		Price struct {
			Price string `json:"price"`
		} `json:"price"`
	} `json:"parsed"`
}

func NewHermesClient(endpoint string, timeout time.Duration) *HermesClient {
	if endpoint == "" {
		endpoint = consts.DefaultHermesEndpoint
	}
	return &HermesClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		feedID:   consts.PythSOLFeedIDStr,
		svc:      newHTTPService("hermes", timeout),
	}
}

// PriceAt 查询 ts 时刻的 SOL/USD 价格，price.price 为整数字符串，固定 8 位小数
func (c *HermesClient) PriceAt(ctx context.Context, ts int64, attempts int) (domain.ScaledAmount, error) {
	url := fmt.Sprintf("%s/v2/updates/price/%d?ids[]=%s", c.endpoint, ts, c.feedID)

	var resp hermesResponse
	err := withRetry(ctx, attempts, func() error {
		resp = hermesResponse{}
		return getJSON(ctx, c.svc, url, &resp)
	})
	if err != nil {
		return domain.ScaledAmount{}, err
	}

	if len(resp.Parsed) == 0 {
		return domain.ScaledAmount{}, fmt.Errorf("hermes: empty parsed list, ts=%d", ts)
	}
	raw, err := strconv.ParseUint(resp.Parsed[0].Price.Price, 10, 64)
	if err != nil {
		return domain.ScaledAmount{}, fmt.Errorf("hermes: invalid price %q: %w", resp.Parsed[0].Price.Price, err)
	}
	return domain.NewScaledAmount(raw, consts.PythPriceDecimals), nil
}
