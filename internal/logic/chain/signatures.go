package chain

import (
	"context"
	"errors"

	"jup-pnl-sol/internal/consts"
	"jup-pnl-sol/internal/types"
	"jup-pnl-sol/pkg/logger"
)

var ErrNoTokenAccount = errors.New("no token account found")

type SignatureLister interface {
	GetSignaturesForAddress(ctx context.Context, addr types.Pubkey, limit int) ([]SignatureInfo, error)
}

type TokenAccountLister interface {
	GetTokenAccountsByOwner(ctx context.Context, owner, mint types.Pubkey) ([]TokenAccount, error)
}

// SignatureSource 获取地址最近的 finalized 交易签名，最多 limit 条，不翻页。
type SignatureSource struct {
	rpc   SignatureLister
	limit int
}

func NewSignatureSource(rpc SignatureLister, limit int) *SignatureSource {
	if limit <= 0 {
		limit = consts.MaxSignatures
	}
	return &SignatureSource{rpc: rpc, limit: limit}
}

// Recent 返回最近的签名列表（新 → 旧）。RPC 失败只记录日志并返回 nil，不重试。
func (s *SignatureSource) Recent(ctx context.Context, addr types.Pubkey) []string {
	infos, err := s.rpc.GetSignaturesForAddress(ctx, addr, s.limit)
	if err != nil {
		logger.Errorf("[SignatureSource] 获取签名失败: addr=%s, err=%v", addr, err)
		return nil
	}

	sigs := make([]string, 0, min(len(infos), s.limit))
	for _, info := range infos {
		if len(sigs) >= s.limit {
			break
		}
		if info.Signature == "" {
			continue
		}
		sigs = append(sigs, info.Signature)
	}
	return sigs
}

// FindTokenAccount 返回 owner 持有 mint 的第一个 token 账户
func FindTokenAccount(ctx context.Context, rpc TokenAccountLister, owner, mint types.Pubkey) (types.Pubkey, error) {
	accounts, err := rpc.GetTokenAccountsByOwner(ctx, owner, mint)
	if err != nil {
		return types.Pubkey{}, err
	}
	if len(accounts) == 0 {
		return types.Pubkey{}, ErrNoTokenAccount
	}
	return types.TryPubkeyFromBase58(accounts[0].Pubkey)
}
