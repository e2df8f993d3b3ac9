package indexer

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jup-pnl-sol/internal/consts"
	"jup-pnl-sol/internal/logic/chain"
	"jup-pnl-sol/internal/logic/domain"
	"jup-pnl-sol/internal/logic/pnl"
	"jup-pnl-sol/internal/logic/swapitem"
	"jup-pnl-sol/internal/types"
)

var (
	wallet = types.PubkeyFromBase58("CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK")
	token  = types.PubkeyFromBase58("2zMMhcVQEXDtdE6vsFS7S7D5oUodfJHE8vd1gnBouauv")
	ata    = types.PubkeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
)

type fakeRpc struct {
	accounts    []chain.TokenAccount
	accountsErr error
	sigs        []chain.SignatureInfo
	sigsErr     error
	sigsAddr    types.Pubkey
	txs         map[string]*chain.ParsedTransaction
}

func (f *fakeRpc) GetTokenAccountsByOwner(context.Context, types.Pubkey, types.Pubkey) ([]chain.TokenAccount, error) {
	return f.accounts, f.accountsErr
}

func (f *fakeRpc) GetSignaturesForAddress(_ context.Context, addr types.Pubkey, _ int) ([]chain.SignatureInfo, error) {
	f.sigsAddr = addr
	return f.sigs, f.sigsErr
}

func (f *fakeRpc) GetParsedTransaction(_ context.Context, sig string) (*chain.ParsedTransaction, error) {
	tx, ok := f.txs[sig]
	if !ok {
		return nil, chain.ErrTxNotFound
	}
	return tx, nil
}

type fakePrices struct{}

func (fakePrices) Resolve(_ context.Context, mint types.Pubkey, _ int64) (domain.ScaledAmount, bool) {
	if mint == consts.USDCMint {
		return domain.NewScaledAmount(1_000_000, 6), true
	}
	return domain.ScaledAmount{}, false
}

func (fakePrices) ResolveCurrent(context.Context, types.Pubkey, int) (float64, bool) {
	return 3, true
}

func swapData(in types.Pubkey, inAmount uint64, out types.Pubkey, outAmount uint64) string {
	buf := make([]byte, 16, 128)
	buf = append(buf, consts.JupiterV6Program[:]...)
	buf = append(buf, in[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, inAmount)
	buf = append(buf, out[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, outAmount)
	return base58.Encode(buf)
}

func swapTx(blockTime int64, data string) *chain.ParsedTransaction {
	return &chain.ParsedTransaction{
		BlockTime: &blockTime,
		Meta: &chain.TransactionMeta{
			InnerInstructions: []chain.InnerInstructions{{
				Index:        0,
				Instructions: []chain.UiInstruction{{ProgramID: consts.JupiterV6ProgramStr, Data: data}},
			}},
			PostTokenBalances: []chain.TokenBalance{
				{Owner: wallet.String(), Mint: token.String(), UiTokenAmount: chain.UiTokenAmount{Amount: "1", Decimals: 6}},
				{Owner: wallet.String(), Mint: consts.USDCMintStr, UiTokenAmount: chain.UiTokenAmount{Amount: "1", Decimals: 6}},
			},
		},
	}
}

func newTestIndexer(rpc *fakeRpc) *Indexer {
	return New(rpc, swapitem.NewBuilder(fakePrices{}), pnl.NewEngine(fakePrices{}, 5), Options{})
}

func TestIndexer_Pnl(t *testing.T) {
	rpc := &fakeRpc{
		accounts: []chain.TokenAccount{{Pubkey: ata.String()}},
		// 最新在前
		sigs: []chain.SignatureInfo{{Signature: "sell"}, {Signature: "buy"}, {Signature: "missing"}},
		txs: map[string]*chain.ParsedTransaction{
			// 先买入 100 token，花费 200 USDC
			"buy": swapTx(100, swapData(consts.USDCMint, 200_000_000, token, 100_000_000)),
			// 后卖出 40 token，得到 100 USDC
			"sell": swapTx(200, swapData(token, 40_000_000, consts.USDCMint, 100_000_000)),
		},
	}

	res := newTestIndexer(rpc).Pnl(context.Background(), wallet, token)

	assert.Equal(t, ata, rpc.sigsAddr)
	assert.Equal(t, 2, res.Transactions)

	s := res.Summary
	require.NotNil(t, s.AverageCost)
	assert.Equal(t, 2.0, *s.AverageCost)
	// (2.5 - 2) × 40 = 20
	require.NotNil(t, s.ProfitLossValue)
	assert.Equal(t, 20.0, *s.ProfitLossValue)
	assert.Equal(t, "10.00%", *s.ProfitLossPercentage)
	// 60 × (3 - 2) = 60
	assert.Equal(t, 60.0, *s.UnrealizedProfitLossValue)
}

func TestIndexer_ShortCircuits(t *testing.T) {
	cases := map[string]*fakeRpc{
		"no token account":  {},
		"account rpc error": {accountsErr: errors.New("boom")},
		"no signatures":     {accounts: []chain.TokenAccount{{Pubkey: ata.String()}}},
		"signature error":   {accounts: []chain.TokenAccount{{Pubkey: ata.String()}}, sigsErr: errors.New("boom")},
		"all fetches fail": {
			accounts: []chain.TokenAccount{{Pubkey: ata.String()}},
			sigs:     []chain.SignatureInfo{{Signature: "a"}},
		},
	}
	for name, rpc := range cases {
		t.Run(name, func(t *testing.T) {
			res := newTestIndexer(rpc).Pnl(context.Background(), wallet, token)
			assert.True(t, res.Summary.IsEmpty())
			assert.Zero(t, res.Transactions)
		})
	}
}

func TestSortRecords(t *testing.T) {
	records := []domain.SwapRecord{
		{Signature: "c", BlockTime: 3},
		{Signature: "b", BlockTime: 1},
		{Signature: "a", BlockTime: 1},
		{Signature: "z", BlockTime: 0},
	}
	SortRecords(records)

	var got []string
	for _, r := range records {
		got = append(got, r.Signature)
	}
	assert.Equal(t, []string{"z", "a", "b", "c"}, got)
}
