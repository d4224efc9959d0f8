package dex

import "github.com/ethereum/go-ethereum/common/hexutil"

const (
	MethodAddLiquidity    = "addLiquidity"
	MethodRemoveLiquidity = "removeLiquidity"
)

// Selectors of the bin position manager liquidity entry points. They are
// fixed by the contract interface and never derived from a record.
var (
	AddLiquiditySelector    = [4]byte{0x88, 0x56, 0x80, 0x9d}
	RemoveLiquiditySelector = [4]byte{0x92, 0x64, 0xcb, 0x86}
)

const (
	// word is the ABI slot size.
	word = 32
	// addLiquidityHeadSize covers the selector, the tuple offset and the
	// seventeen head slots of the add tuple.
	addLiquidityHeadSize = 4 + word*(1+17)
	// removeLiquidityHeadSize covers the selector, the tuple offset and the
	// thirteen head slots of the remove tuple.
	removeLiquidityHeadSize = 4 + word*(1+13)
)

// SelectorHex renders a selector as 0x-prefixed lowercase hex.
func SelectorHex(selector [4]byte) string {
	return hexutil.Encode(selector[:])
}

func withSelector(selector [4]byte, body []byte) []byte {
	out := make([]byte, 0, len(selector)+len(body))
	out = append(out, selector[:]...)
	return append(out, body...)
}
