package dex

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"binLiquidity/internal/model"
)

// Wire shapes handed to the ABI packer. Field names follow the camel-cased
// component names of the contract tuples.
type poolKeyArg struct {
	Currency0   common.Address
	Currency1   common.Address
	Hooks       common.Address
	PoolManager common.Address
	Fee         *big.Int
	Parameters  [32]byte
}

type addLiquidityArg struct {
	PoolKey         poolKeyArg
	Amount0         *big.Int
	Amount1         *big.Int
	Amount0Min      *big.Int
	Amount1Min      *big.Int
	ActiveIdDesired *big.Int
	IdSlippage      *big.Int
	DeltaIds        []*big.Int
	DistributionX   []*big.Int
	DistributionY   []*big.Int
	To              common.Address
	Deadline        *big.Int
}

type removeLiquidityArg struct {
	PoolKey    poolKeyArg
	Amount0Min *big.Int
	Amount1Min *big.Int
	Ids        []*big.Int
	Amounts    []*big.Int
	From       common.Address
	To         common.Address
	Deadline   *big.Int
}

func newPoolKeyArg(key model.PoolKey, c *argChecker) poolKeyArg {
	if c.err != nil {
		return poolKeyArg{}
	}
	params, err := key.EncodeParameters()
	if err != nil {
		c.err = err
		return poolKeyArg{}
	}
	return poolKeyArg{
		Currency0:   key.Currency0,
		Currency1:   key.Currency1,
		Hooks:       key.Hooks,
		PoolManager: key.PoolManager,
		Fee:         c.unsigned("pool_key.fee", new(big.Int).SetUint64(uint64(key.Fee)), bitsUint24),
		Parameters:  params,
	}
}

// EncodeAddLiquidity returns the addLiquidity calldata for p: the selector
// followed by the ABI encoding of the params tuple.
func EncodeAddLiquidity(p model.AddBinLiquidityParams) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c := &argChecker{}
	arg := addLiquidityArg{
		PoolKey:         newPoolKeyArg(p.PoolKey, c),
		Amount0:         c.unsigned("amount0", p.Amount0, bitsUint128),
		Amount1:         c.unsigned("amount1", p.Amount1, bitsUint128),
		Amount0Min:      c.unsigned("amount0_min", p.Amount0Min, bitsUint128),
		Amount1Min:      c.unsigned("amount1_min", p.Amount1Min, bitsUint128),
		ActiveIdDesired: c.unsigned("active_id_desired", p.ActiveIDDesired, bitsUint24),
		IdSlippage:      c.unsigned("id_slippage", p.IDSlippage, bitsUint256),
		DeltaIds:        c.signedSlice("delta_ids", p.DeltaIDs),
		DistributionX:   c.unsignedSlice("distribution_x", p.DistributionX, bitsUint256),
		DistributionY:   c.unsignedSlice("distribution_y", p.DistributionY, bitsUint256),
		To:              p.To,
		Deadline:        c.unsigned("deadline", p.Deadline, bitsUint256),
	}
	if c.err != nil {
		return nil, c.err
	}

	method, err := liquidityMethod(MethodAddLiquidity)
	if err != nil {
		return nil, err
	}
	packed, err := method.Inputs.Pack(arg)
	if err != nil {
		return nil, &model.EncodingError{Field: "params", Err: err}
	}
	return withSelector(AddLiquiditySelector, packed), nil
}

// EncodeRemoveLiquidity returns the removeLiquidity calldata for p.
func EncodeRemoveLiquidity(p model.RemoveBinLiquidityParams) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c := &argChecker{}
	arg := removeLiquidityArg{
		PoolKey:    newPoolKeyArg(p.PoolKey, c),
		Amount0Min: c.unsigned("amount0_min", p.Amount0Min, bitsUint128),
		Amount1Min: c.unsigned("amount1_min", p.Amount1Min, bitsUint128),
		Ids:        c.unsignedSlice("ids", p.IDs, bitsUint24),
		Amounts:    c.unsignedSlice("amounts", p.Amounts, bitsUint256),
		From:       p.From,
		To:         p.To,
		Deadline:   c.unsigned("deadline", p.Deadline, bitsUint256),
	}
	if c.err != nil {
		return nil, c.err
	}

	method, err := liquidityMethod(MethodRemoveLiquidity)
	if err != nil {
		return nil, err
	}
	packed, err := method.Inputs.Pack(arg)
	if err != nil {
		return nil, &model.EncodingError{Field: "params", Err: err}
	}
	return withSelector(RemoveLiquiditySelector, packed), nil
}

// BinPoolAddLiquidityCalldata returns EncodeAddLiquidity as 0x-prefixed hex.
func BinPoolAddLiquidityCalldata(p model.AddBinLiquidityParams) (string, error) {
	data, err := EncodeAddLiquidity(p)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(data), nil
}

// BinPoolRemoveLiquidityCalldata returns EncodeRemoveLiquidity as 0x-prefixed hex.
func BinPoolRemoveLiquidityCalldata(p model.RemoveBinLiquidityParams) (string, error) {
	data, err := EncodeRemoveLiquidity(p)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(data), nil
}

// ParseCalldata decodes 0x-prefixed hex calldata into bytes.
func ParseCalldata(calldata string) ([]byte, error) {
	data, err := hexutil.Decode(calldata)
	if err != nil {
		return nil, &model.DecodingError{Err: fmt.Errorf("invalid hex: %w", err)}
	}
	return data, nil
}
