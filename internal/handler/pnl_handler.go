package handler

import (
	"context"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"jup-pnl-sol/internal/logic/domain"
	"jup-pnl-sol/internal/types"
)

type PnlRequest struct {
	UserAddress string `form:"userAddress,optional"`
	TokenMint   string `form:"tokenMint,optional"`
}

type PnlQuerier interface {
	Query(ctx context.Context, wallet, token types.Pubkey) domain.PnlSummary
}

func HelloHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Hello, Jupiter!"))
	}
}

// PnlHandler GET /pnl?userAddress=&tokenMint=
// 地址非法返回 400 + 全 null 的结果；其余情况一律 200，计算失败时结果为全 null
func PnlHandler(q PnlQuerier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PnlRequest
		if err := httpx.ParseForm(r, &req); err != nil {
			httpx.WriteJsonCtx(r.Context(), w, http.StatusBadRequest, domain.PnlSummary{})
			return
		}

		wallet, err := types.TryPubkeyFromBase58(req.UserAddress)
		if err != nil {
			logx.WithContext(r.Context()).Infof("[PnlHandler] invalid userAddress %q: %v", req.UserAddress, err)
			httpx.WriteJsonCtx(r.Context(), w, http.StatusBadRequest, domain.PnlSummary{})
			return
		}
		token, err := types.TryPubkeyFromBase58(req.TokenMint)
		if err != nil {
			logx.WithContext(r.Context()).Infof("[PnlHandler] invalid tokenMint %q: %v", req.TokenMint, err)
			httpx.WriteJsonCtx(r.Context(), w, http.StatusBadRequest, domain.PnlSummary{})
			return
		}

		summary := q.Query(r.Context(), wallet, token)
		httpx.OkJsonCtx(r.Context(), w, summary)
	}
}
