package params

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// ParseAddress converts a hex string into common.Address. Empty input is the
// zero address.
func ParseAddress(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid address: %s", input)
	}
	return common.HexToAddress(input), nil
}

// ParseAmount parses a non-negative decimal or 0x-prefixed hex integer of at
// most 256 bits. Empty input is zero.
func ParseAmount(input string) (*big.Int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return new(big.Int), nil
	}
	v, ok := math.ParseBig256(input)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", input)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative amount: %s", input)
	}
	return v, nil
}

// ParseAmounts converts string amounts. Entries are positional, so a blank
// entry is an error.
func ParseAmounts(inputs []string) ([]*big.Int, error) {
	amounts := make([]*big.Int, 0, len(inputs))
	for i, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			return nil, fmt.Errorf("amount %d is blank", i)
		}
		v, err := ParseAmount(input)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, v)
	}
	return amounts, nil
}
