package price

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/rest/httpc"

	"jup-pnl-sol/internal/consts"
	"jup-pnl-sol/internal/types"
)

// JupiterClient Jupiter Price API v3，只提供当前价格
type JupiterClient struct {
	endpoint string
	svc      httpc.Service
}

type jupiterPrice struct {
	UsdPrice float64 `json:"usdPrice"`
}

func NewJupiterClient(endpoint string, timeout time.Duration) *JupiterClient {
	if endpoint == "" {
		endpoint = consts.DefaultJupiterEndpoint
	}
	return &JupiterClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		svc:      newHTTPService("jupiter-price", timeout),
	}
}

// CurrentPrice 返回 mint 的 USD 现价，响应中缺少该 mint 时返回错误
func (c *JupiterClient) CurrentPrice(ctx context.Context, mint types.Pubkey, attempts int) (float64, error) {
	id := mint.String()
	u := fmt.Sprintf("%s/price/v3?ids=%s", c.endpoint, url.QueryEscape(id))

	var resp map[string]*jupiterPrice
	err := withRetry(ctx, attempts, func() error {
		resp = nil
		return getJSON(ctx, c.svc, u, &resp)
	})
	if err != nil {
		return 0, err
	}

	p, ok := resp[id]
	if !ok || p == nil {
		return 0, fmt.Errorf("jupiter: no price for %s", id)
	}
	return p.UsdPrice, nil
}
