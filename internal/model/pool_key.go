package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// PoolType identifies the curve family a pool key belongs to.
type PoolType string

const (
	PoolTypeBin PoolType = "Bin"
	PoolTypeCL  PoolType = "CL"
)

// PoolParameters is the pool-type specific part of a PoolKey. Each variant
// owns its bytes32 layout.
type PoolParameters interface {
	PoolType() PoolType
	Encode() ([32]byte, error)
}

// BinParameters are the parameters of a bin pool.
// Layout: bits 0-15 hook registration bitmap, bits 16-31 bin step.
type BinParameters struct {
	BinStep           uint16 `json:"bin_step"`
	HooksRegistration uint16 `json:"hooks_registration,omitempty"`
}

func (BinParameters) PoolType() PoolType { return PoolTypeBin }

// Encode packs the parameters into their bytes32 slot.
func (p BinParameters) Encode() ([32]byte, error) {
	var out [32]byte
	if p.BinStep == 0 {
		return out, NewValidationError("bin_step", "must be positive")
	}
	out[28] = byte(p.BinStep >> 8)
	out[29] = byte(p.BinStep)
	out[30] = byte(p.HooksRegistration >> 8)
	out[31] = byte(p.HooksRegistration)
	return out, nil
}

// DecodeBinParameters parses a bytes32 parameters slot of a bin pool.
func DecodeBinParameters(raw [32]byte) (BinParameters, error) {
	if !isZero(raw[:28]) {
		return BinParameters{}, fmt.Errorf("bin parameters use reserved bits: 0x%x", raw)
	}
	p := BinParameters{
		BinStep:           uint16(raw[28])<<8 | uint16(raw[29]),
		HooksRegistration: uint16(raw[30])<<8 | uint16(raw[31]),
	}
	if p.BinStep == 0 {
		return BinParameters{}, fmt.Errorf("bin step is zero")
	}
	return p, nil
}

const (
	minTickSpacing = 1
	maxTickSpacing = 1<<23 - 1
)

// CLParameters are the parameters of a concentrated-liquidity pool.
// Layout: bits 0-15 hook registration bitmap, bits 16-39 tick spacing (int24).
type CLParameters struct {
	TickSpacing       int32  `json:"tick_spacing"`
	HooksRegistration uint16 `json:"hooks_registration,omitempty"`
}

func (CLParameters) PoolType() PoolType { return PoolTypeCL }

// Encode packs the parameters into their bytes32 slot.
func (p CLParameters) Encode() ([32]byte, error) {
	var out [32]byte
	if p.TickSpacing > maxTickSpacing {
		return out, &EncodingError{Field: "tick_spacing", Err: fmt.Errorf("%d overflows int24", p.TickSpacing)}
	}
	if p.TickSpacing < minTickSpacing {
		return out, NewValidationError("tick_spacing", "must be positive, got %d", p.TickSpacing)
	}
	ts := uint32(p.TickSpacing)
	out[27] = byte(ts >> 16)
	out[28] = byte(ts >> 8)
	out[29] = byte(ts)
	out[30] = byte(p.HooksRegistration >> 8)
	out[31] = byte(p.HooksRegistration)
	return out, nil
}

// DecodeCLParameters parses a bytes32 parameters slot of a CL pool.
func DecodeCLParameters(raw [32]byte) (CLParameters, error) {
	if !isZero(raw[:27]) {
		return CLParameters{}, fmt.Errorf("cl parameters use reserved bits: 0x%x", raw)
	}
	ts := int32(raw[27])<<16 | int32(raw[28])<<8 | int32(raw[29])
	if ts&(1<<23) != 0 {
		ts -= 1 << 24
	}
	if ts < minTickSpacing {
		return CLParameters{}, fmt.Errorf("tick spacing %d is not positive", ts)
	}
	return CLParameters{
		TickSpacing:       ts,
		HooksRegistration: uint16(raw[30])<<8 | uint16(raw[31]),
	}, nil
}

// PoolKey is the canonical identity of a pool.
type PoolKey struct {
	Currency0   common.Address
	Currency1   common.Address
	Hooks       common.Address
	PoolManager common.Address
	Fee         uint32
	Parameters  PoolParameters
}

// PoolType reports the variant of the key's parameters.
func (k PoolKey) PoolType() PoolType {
	if k.Parameters == nil {
		return ""
	}
	return k.Parameters.PoolType()
}

// Validate checks the ordering and completeness invariants of the key.
// Currencies are never reordered here: an unsorted pair is an error.
func (k PoolKey) Validate() error {
	if k.Parameters == nil {
		return NewValidationError("pool_key.parameters", "missing")
	}
	if bytes.Compare(k.Currency0.Bytes(), k.Currency1.Bytes()) >= 0 {
		return NewValidationError("pool_key.currency0", "%s must sort before currency1 %s", k.Currency0.Hex(), k.Currency1.Hex())
	}
	if k.PoolManager == (common.Address{}) {
		return NewValidationError("pool_key.pool_manager", "zero address")
	}
	return nil
}

type poolKeyJSON struct {
	PoolType    PoolType       `json:"pool_type"`
	Currency0   common.Address `json:"currency0"`
	Currency1   common.Address `json:"currency1"`
	Hooks       common.Address `json:"hooks"`
	PoolManager common.Address `json:"pool_manager"`
	Fee         uint32         `json:"fee"`
	Parameters  PoolParameters `json:"parameters"`
}

// MarshalJSON tags the parameters with their pool type.
func (k PoolKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(poolKeyJSON{
		PoolType:    k.PoolType(),
		Currency0:   k.Currency0,
		Currency1:   k.Currency1,
		Hooks:       k.Hooks,
		PoolManager: k.PoolManager,
		Fee:         k.Fee,
		Parameters:  k.Parameters,
	})
}

// UnmarshalJSON restores the parameters variant named by pool_type.
func (k *PoolKey) UnmarshalJSON(data []byte) error {
	var raw struct {
		poolKeyJSON
		Parameters json.RawMessage `json:"parameters"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var params PoolParameters
	switch raw.PoolType {
	case PoolTypeBin:
		var p BinParameters
		if err := json.Unmarshal(raw.Parameters, &p); err != nil {
			return fmt.Errorf("bin parameters: %w", err)
		}
		params = p
	case PoolTypeCL:
		var p CLParameters
		if err := json.Unmarshal(raw.Parameters, &p); err != nil {
			return fmt.Errorf("cl parameters: %w", err)
		}
		params = p
	default:
		return fmt.Errorf("unsupported pool type: %q", raw.PoolType)
	}

	*k = PoolKey{
		Currency0:   raw.Currency0,
		Currency1:   raw.Currency1,
		Hooks:       raw.Hooks,
		PoolManager: raw.PoolManager,
		Fee:         raw.Fee,
		Parameters:  params,
	}
	return nil
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
