package jupiter

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/near/borsh-go"

	"jup-pnl-sol/internal/consts"
	"jup-pnl-sol/internal/logic/chain"
	"jup-pnl-sol/internal/logic/domain"
	"jup-pnl-sol/internal/types"
	"jup-pnl-sol/pkg/logger"
)

const (
	// Anchor event CPI 前缀（8 字节）+ SwapEvent discriminator（8 字节）
	discriminatorSize = 8
	eventTagSize      = 8
	headerSize        = discriminatorSize + eventTagSize

	// amm(32) + inputMint(32) + inputAmount(8) + outputMint(32) + outputAmount(8)
	swapEventSize = 112
)

var ErrPayloadTooShort = errors.New("jupiter swap event payload too short")

// swapEventLayout SwapEvent 的链上布局（小端），字段顺序不可调整
type swapEventLayout struct {
	Amm          types.Pubkey
	InputMint    types.Pubkey
	InputAmount  uint64
	OutputMint   types.Pubkey
	OutputAmount uint64
}

// DecodeSwapEvent 解码 base58 解码后的 inner 指令数据
func DecodeSwapEvent(data []byte) (ev domain.SwapEvent, err error) {
	if len(data) < headerSize+swapEventSize {
		return ev, fmt.Errorf("%w: got=%d, expect>=%d", ErrPayloadTooShort, len(data), headerSize+swapEventSize)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("borsh.Deserialize panic: %v", r)
		}
	}()

	var layout swapEventLayout
	if err := borsh.Deserialize(&layout, data[headerSize:headerSize+swapEventSize]); err != nil {
		return ev, fmt.Errorf("deserialize swap event: %w", err)
	}

	return domain.SwapEvent{
		Amm:          layout.Amm,
		InputMint:    layout.InputMint,
		InputAmount:  layout.InputAmount,
		OutputMint:   layout.OutputMint,
		OutputAmount: layout.OutputAmount,
	}, nil
}

// ExtractSwapEvents 扫描交易全部 inner 指令，解码 Jupiter V6 的 SwapEvent。
// 单条指令解码失败只记录日志并跳过，不影响同一交易内的其他指令。
func ExtractSwapEvents(signature string, meta *chain.TransactionMeta) []domain.SwapEvent {
	if meta == nil || len(meta.InnerInstructions) == 0 {
		return nil
	}

	var events []domain.SwapEvent
	for _, inner := range meta.InnerInstructions {
		for i := range inner.Instructions {
			ix := &inner.Instructions[i]

			if ix.IsParsed() {
				handleParsed(ix)
				continue
			}
			if ix.ProgramID != consts.JupiterV6ProgramStr {
				continue
			}

			raw, err := base58.Decode(ix.Data)
			if err != nil {
				logger.Warnf("[JupiterV6] base58 解码失败，跳过: tx=%s, ixIndex=%d, innerIndex=%d, err=%v",
					signature, inner.Index, i, err)
				continue
			}

			ev, err := DecodeSwapEvent(raw)
			if err != nil {
				logger.Warnf("[JupiterV6] SwapEvent 解码失败，跳过: tx=%s, ixIndex=%d, innerIndex=%d, err=%v",
					signature, inner.Index, i, err)
				continue
			}
			events = append(events, ev)
		}
	}
	return events
}

// handleParsed RPC 已解析的 spl-token / ATA / Jupiter 指令。
// 预留给后续的余额变动对账，目前不产生任何事件。
func handleParsed(ix *chain.UiInstruction) {
	switch {
	case ix.Program == consts.TokenProgramName,
		ix.Program == consts.AssociatedTokenProgramName,
		ix.ProgramID == consts.JupiterV6ProgramStr:
	}
}
