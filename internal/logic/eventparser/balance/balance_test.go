package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jup-pnl-sol/internal/consts"
	"jup-pnl-sol/internal/logic/chain"
	"jup-pnl-sol/internal/types"
)

func tokenBalance(owner, mint, amount string, decimals uint8) chain.TokenBalance {
	return chain.TokenBalance{
		Owner: owner,
		Mint:  mint,
		UiTokenAmount: chain.UiTokenAmount{
			Amount:   amount,
			Decimals: decimals,
		},
	}
}

func TestExtractBalances(t *testing.T) {
	wallet := types.PubkeyFromBase58("CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK")
	other := consts.USDTMintStr

	meta := &chain.TransactionMeta{
		PostTokenBalances: []chain.TokenBalance{
			tokenBalance(wallet.String(), consts.USDCMintStr, "2500000", 6),
			tokenBalance(other, consts.WSOLMintStr, "1", 9),
			tokenBalance(wallet.String(), consts.WSOLMintStr, "not-a-number", 9),
			tokenBalance(wallet.String(), "bad-mint", "1", 3),
		},
	}

	facts := ExtractBalances("sig", wallet, meta)
	require.Len(t, facts, 2)

	assert.Equal(t, wallet, facts[0].Owner)
	assert.Equal(t, consts.USDCMint, facts[0].Mint)
	assert.Equal(t, uint64(2500000), facts[0].Balance)
	assert.Equal(t, uint8(6), facts[0].Decimals)

	assert.Equal(t, consts.WSOLMint, facts[1].Mint)
	assert.Equal(t, uint64(0), facts[1].Balance)
	assert.Equal(t, uint8(9), facts[1].Decimals)
}

func TestExtractBalances_Empty(t *testing.T) {
	wallet := consts.USDCMint
	assert.Empty(t, ExtractBalances("sig", wallet, nil))
	assert.Empty(t, ExtractBalances("sig", wallet, &chain.TransactionMeta{}))
}
