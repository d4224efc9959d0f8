// Package binmath derives bin ids and liquidity distributions for bin pools.
package binmath

import (
	"binLiquidity/internal/model"
)

const (
	// MaxBinID is the largest id a uint24 bin slot can hold.
	MaxBinID = 1<<24 - 1
	// MaxBins bounds how many bins a single call may span.
	MaxBins = MaxBinID + 1
)

// GetBinIDs returns numBins ids centred on activeID in ascending order.
// Add mode yields offsets from the active bin, remove mode absolute ids.
// An odd count is symmetric; an even count places the extra bin below the
// active one. Zero bins yield an empty, non-nil slice.
func GetBinIDs(activeID uint32, numBins int, isAdd bool) ([]int64, error) {
	if activeID > MaxBinID {
		return nil, model.NewValidationError("active_id", "%d exceeds uint24", activeID)
	}
	if numBins < 0 {
		return nil, model.NewValidationError("num_bins", "must not be negative, got %d", numBins)
	}
	if numBins > MaxBins {
		return nil, model.NewValidationError("num_bins", "%d exceeds %d", numBins, MaxBins)
	}

	below := numBins / 2
	above := numBins - 1 - below

	ids := make([]int64, 0, numBins)
	for offset := -int64(below); offset <= int64(above); offset++ {
		if isAdd {
			ids = append(ids, offset)
			continue
		}
		id := int64(activeID) + offset
		if id < 0 || id > MaxBinID {
			return nil, model.NewValidationError("num_bins", "bin %d out of range around active id %d", id, activeID)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SideCounts reports how many offsets feed each token: X bins are at or
// above the active bin, Y bins at or below it.
func SideCounts(deltaIDs []int64) (nbBinX, nbBinY int) {
	for _, id := range deltaIDs {
		if id >= 0 {
			nbBinX++
		}
		if id <= 0 {
			nbBinY++
		}
	}
	return nbBinX, nbBinY
}
