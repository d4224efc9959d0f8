package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// AddBinLiquidityParams is the argument tuple of addLiquidity on the bin
// position manager. DeltaIDs are offsets from ActiveIDDesired; the two
// distributions are 1e18 fixed-point weights, one per delta.
type AddBinLiquidityParams struct {
	PoolKey         PoolKey        `json:"pool_key"`
	Amount0         *big.Int       `json:"amount0"`
	Amount1         *big.Int       `json:"amount1"`
	Amount0Min      *big.Int       `json:"amount0_min"`
	Amount1Min      *big.Int       `json:"amount1_min"`
	ActiveIDDesired *big.Int       `json:"active_id_desired"`
	IDSlippage      *big.Int       `json:"id_slippage"`
	DeltaIDs        []*big.Int     `json:"delta_ids"`
	DistributionX   []*big.Int     `json:"distribution_x"`
	DistributionY   []*big.Int     `json:"distribution_y"`
	To              common.Address `json:"to"`
	Deadline        *big.Int       `json:"deadline"`
}

// Validate checks the structural invariants of the record. Width checks
// belong to the encoder.
func (p AddBinLiquidityParams) Validate() error {
	if err := validateBinPoolKey(p.PoolKey); err != nil {
		return err
	}
	if len(p.DistributionX) != len(p.DeltaIDs) {
		return NewValidationError("distribution_x", "length %d does not match %d delta ids", len(p.DistributionX), len(p.DeltaIDs))
	}
	if len(p.DistributionY) != len(p.DeltaIDs) {
		return NewValidationError("distribution_y", "length %d does not match %d delta ids", len(p.DistributionY), len(p.DeltaIDs))
	}
	return nil
}

// RemoveBinLiquidityParams is the argument tuple of removeLiquidity on the
// bin position manager. IDs are absolute bin ids.
type RemoveBinLiquidityParams struct {
	PoolKey    PoolKey        `json:"pool_key"`
	Amount0Min *big.Int       `json:"amount0_min"`
	Amount1Min *big.Int       `json:"amount1_min"`
	IDs        []*big.Int     `json:"ids"`
	Amounts    []*big.Int     `json:"amounts"`
	From       common.Address `json:"from"`
	To         common.Address `json:"to"`
	Deadline   *big.Int       `json:"deadline"`
}

func (p RemoveBinLiquidityParams) Validate() error {
	if err := validateBinPoolKey(p.PoolKey); err != nil {
		return err
	}
	if len(p.Amounts) != len(p.IDs) {
		return NewValidationError("amounts", "length %d does not match %d ids", len(p.Amounts), len(p.IDs))
	}
	return nil
}

func validateBinPoolKey(key PoolKey) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if key.PoolType() != PoolTypeBin {
		return NewValidationError("pool_key.parameters", "expected %s pool, got %s", PoolTypeBin, key.PoolType())
	}
	return nil
}
