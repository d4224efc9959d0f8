// Package params turns liquidity intents into validated position manager
// records.
package params

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"binLiquidity/internal/binmath"
	"binLiquidity/internal/model"
)

// AddIntent is a caller's request to spread liquidity around an active bin.
type AddIntent struct {
	PoolKey    model.PoolKey
	ActiveID   uint32
	NumBins    int
	IDSlippage *big.Int
	Amount0    *big.Int
	Amount1    *big.Int
	Amount0Min *big.Int
	Amount1Min *big.Int
	To         common.Address
	Deadline   *big.Int
}

// RemoveIntent is a caller's request to burn shares from the bins around an
// active bin. Amounts line up with the ascending bin ids.
type RemoveIntent struct {
	PoolKey    model.PoolKey
	ActiveID   uint32
	NumBins    int
	Amounts    []*big.Int
	Amount0Min *big.Int
	Amount1Min *big.Int
	From       common.Address
	// To defaults to From when zero.
	To       common.Address
	Deadline *big.Int
}

// BuildAddParams derives the delta ids and per-bin distributions for an add
// intent and assembles the addLiquidity record.
func BuildAddParams(in AddIntent) (model.AddBinLiquidityParams, error) {
	deltas, err := binmath.GetBinIDs(in.ActiveID, in.NumBins, true)
	if err != nil {
		return model.AddBinLiquidityParams{}, err
	}
	nbBinX, nbBinY := binmath.SideCounts(deltas)
	configs, err := binmath.GetBinLiquidityConfigs(binmath.ConfigInput{
		BinID:  in.ActiveID,
		NbBinX: nbBinX,
		NbBinY: nbBinY,
	})
	if err != nil {
		return model.AddBinLiquidityParams{}, err
	}
	if len(configs) != len(deltas) {
		return model.AddBinLiquidityParams{}, fmt.Errorf("distribution covers %d bins, expected %d", len(configs), len(deltas))
	}

	deltaIDs := make([]*big.Int, len(deltas))
	distributionX := make([]*big.Int, len(configs))
	distributionY := make([]*big.Int, len(configs))
	for i, delta := range deltas {
		deltaIDs[i] = big.NewInt(delta)
		distributionX[i] = configs[i].DistributionX.ToBig()
		distributionY[i] = configs[i].DistributionY.ToBig()
	}

	p := model.AddBinLiquidityParams{
		PoolKey:         in.PoolKey,
		Amount0:         orZero(in.Amount0),
		Amount1:         orZero(in.Amount1),
		Amount0Min:      orZero(in.Amount0Min),
		Amount1Min:      orZero(in.Amount1Min),
		ActiveIDDesired: new(big.Int).SetUint64(uint64(in.ActiveID)),
		IDSlippage:      orZero(in.IDSlippage),
		DeltaIDs:        deltaIDs,
		DistributionX:   distributionX,
		DistributionY:   distributionY,
		To:              in.To,
		Deadline:        orZero(in.Deadline),
	}
	if err := p.Validate(); err != nil {
		return model.AddBinLiquidityParams{}, err
	}
	return p, nil
}

// BuildRemoveParams derives the absolute bin ids for a remove intent and
// assembles the removeLiquidity record.
func BuildRemoveParams(in RemoveIntent) (model.RemoveBinLiquidityParams, error) {
	ids, err := binmath.GetBinIDs(in.ActiveID, in.NumBins, false)
	if err != nil {
		return model.RemoveBinLiquidityParams{}, err
	}
	if len(in.Amounts) != len(ids) {
		return model.RemoveBinLiquidityParams{}, model.NewValidationError("amounts", "got %d amounts for %d bins", len(in.Amounts), len(ids))
	}

	binIDs := make([]*big.Int, len(ids))
	amounts := make([]*big.Int, len(ids))
	for i, id := range ids {
		binIDs[i] = big.NewInt(id)
		amounts[i] = orZero(in.Amounts[i])
	}

	to := in.To
	if to == (common.Address{}) {
		to = in.From
	}

	p := model.RemoveBinLiquidityParams{
		PoolKey:    in.PoolKey,
		Amount0Min: orZero(in.Amount0Min),
		Amount1Min: orZero(in.Amount1Min),
		IDs:        binIDs,
		Amounts:    amounts,
		From:       in.From,
		To:         to,
		Deadline:   orZero(in.Deadline),
	}
	if err := p.Validate(); err != nil {
		return model.RemoveBinLiquidityParams{}, err
	}
	return p, nil
}

// CheckDeadline rejects a deadline that is not after now.
func CheckDeadline(deadline *big.Int, now time.Time) error {
	if deadline == nil || deadline.Sign() <= 0 {
		return model.NewValidationError("deadline", "missing")
	}
	if deadline.Cmp(big.NewInt(now.Unix())) <= 0 {
		return model.NewValidationError("deadline", "%s is not after %d", deadline, now.Unix())
	}
	return nil
}

// DeadlineAfter returns the unix deadline ttl from now.
func DeadlineAfter(now time.Time, ttl time.Duration) *big.Int {
	return big.NewInt(now.Add(ttl).Unix())
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
