package binmath

import (
	"github.com/holiman/uint256"

	"binLiquidity/internal/model"
)

const precision = 1e18

// Precision returns the fixed-point unit a full side distribution sums to.
// Each call returns a fresh value.
func Precision() *uint256.Int {
	return uint256.NewInt(precision)
}

// ConfigInput selects the bins that receive liquidity around BinID.
type ConfigInput struct {
	BinID  uint32
	NbBinX int
	NbBinY int
}

// BinLiquidityConfig is the weight pair assigned to one bin.
type BinLiquidityConfig struct {
	BinID         uint32
	DistributionX *uint256.Int
	DistributionY *uint256.Int
}

// GetBinLiquidityConfigs spreads Precision of each token evenly over its
// bins. Y goes to the NbBinY bins ending at BinID, X to the NbBinX bins
// starting at BinID. When the unit does not divide evenly the remainder is
// handed out one wei per bin, nearest the active bin first, so each side
// sums to exactly Precision.
func GetBinLiquidityConfigs(in ConfigInput) ([]BinLiquidityConfig, error) {
	if in.NbBinX < 0 || in.NbBinY < 0 {
		return nil, model.NewValidationError("nb_bins", "negative bin count x=%d y=%d", in.NbBinX, in.NbBinY)
	}
	if in.BinID > MaxBinID {
		return nil, model.NewValidationError("bin_id", "%d exceeds uint24", in.BinID)
	}
	if in.NbBinX == 0 && in.NbBinY == 0 {
		return []BinLiquidityConfig{}, nil
	}

	active := int64(in.BinID)
	lo, hi := active, active
	if in.NbBinY > 0 {
		lo = active - int64(in.NbBinY-1)
	}
	if in.NbBinX > 0 {
		hi = active + int64(in.NbBinX-1)
	}
	if lo < 0 || hi > MaxBinID {
		return nil, model.NewValidationError("nb_bins", "bins [%d, %d] leave the uint24 range", lo, hi)
	}

	xBase, xRem := split(in.NbBinX)
	yBase, yRem := split(in.NbBinY)

	configs := make([]BinLiquidityConfig, 0, hi-lo+1)
	for id := lo; id <= hi; id++ {
		cfg := BinLiquidityConfig{
			BinID:         uint32(id),
			DistributionX: new(uint256.Int),
			DistributionY: new(uint256.Int),
		}
		if in.NbBinX > 0 && id >= active {
			cfg.DistributionX.Set(share(xBase, xRem, id-active))
		}
		if in.NbBinY > 0 && id <= active {
			cfg.DistributionY.Set(share(yBase, yRem, active-id))
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func split(n int) (*uint256.Int, uint64) {
	if n == 0 {
		return new(uint256.Int), 0
	}
	count := uint256.NewInt(uint64(n))
	unit := Precision()
	base := new(uint256.Int).Div(unit, count)
	rem := new(uint256.Int).Mod(unit, count)
	return base, rem.Uint64()
}

func share(base *uint256.Int, rem uint64, distance int64) *uint256.Int {
	out := new(uint256.Int).Set(base)
	if uint64(distance) < rem {
		out.AddUint64(out, 1)
	}
	return out
}
