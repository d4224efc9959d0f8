package dex

import (
	"bytes"
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common"

	"binLiquidity/internal/model"
)

// DecodeAddLiquidity parses addLiquidity calldata back into its record.
func DecodeAddLiquidity(data []byte) (model.AddBinLiquidityParams, error) {
	if err := checkHead(data, AddLiquiditySelector, addLiquidityHeadSize); err != nil {
		return model.AddBinLiquidityParams{}, &model.DecodingError{Method: MethodAddLiquidity, Err: err}
	}
	params, err := decodeAddLiquidityBody(data[4:])
	if err != nil {
		return model.AddBinLiquidityParams{}, &model.DecodingError{Method: MethodAddLiquidity, Err: err}
	}
	return params, nil
}

// DecodeRemoveLiquidity parses removeLiquidity calldata back into its record.
func DecodeRemoveLiquidity(data []byte) (model.RemoveBinLiquidityParams, error) {
	if err := checkHead(data, RemoveLiquiditySelector, removeLiquidityHeadSize); err != nil {
		return model.RemoveBinLiquidityParams{}, &model.DecodingError{Method: MethodRemoveLiquidity, Err: err}
	}
	params, err := decodeRemoveLiquidityBody(data[4:])
	if err != nil {
		return model.RemoveBinLiquidityParams{}, &model.DecodingError{Method: MethodRemoveLiquidity, Err: err}
	}
	return params, nil
}

func checkHead(data []byte, selector [4]byte, minSize int) error {
	if len(data) < 4 {
		return fmt.Errorf("payload of %d bytes has no selector", len(data))
	}
	if !bytes.Equal(data[:4], selector[:]) {
		return fmt.Errorf("selector %x does not match %x", data[:4], selector)
	}
	if len(data) < minSize {
		return fmt.Errorf("payload of %d bytes is shorter than the %d byte head", len(data), minSize)
	}
	return nil
}

func decodeAddLiquidityBody(body []byte) (model.AddBinLiquidityParams, error) {
	tuple, err := unpackTuple(MethodAddLiquidity, body)
	if err != nil {
		return model.AddBinLiquidityParams{}, err
	}

	r := tupleReader{tuple: tuple}
	p := model.AddBinLiquidityParams{
		PoolKey:         r.poolKey("PoolKey"),
		Amount0:         r.unsigned("Amount0", bitsUint128),
		Amount1:         r.unsigned("Amount1", bitsUint128),
		Amount0Min:      r.unsigned("Amount0Min", bitsUint128),
		Amount1Min:      r.unsigned("Amount1Min", bitsUint128),
		ActiveIDDesired: r.unsigned("ActiveIdDesired", bitsUint24),
		IDSlippage:      r.unsigned("IdSlippage", bitsUint256),
		DeltaIDs:        r.signedSlice("DeltaIds"),
		DistributionX:   r.unsignedSlice("DistributionX", bitsUint256),
		DistributionY:   r.unsignedSlice("DistributionY", bitsUint256),
		To:              r.address("To"),
		Deadline:        r.unsigned("Deadline", bitsUint256),
	}
	if r.err != nil {
		return model.AddBinLiquidityParams{}, r.err
	}
	if err := p.Validate(); err != nil {
		return model.AddBinLiquidityParams{}, err
	}
	encoded, err := EncodeAddLiquidity(p)
	if err != nil {
		return model.AddBinLiquidityParams{}, err
	}
	if err := checkCanonical(encoded[4:], body); err != nil {
		return model.AddBinLiquidityParams{}, err
	}
	return p, nil
}

func decodeRemoveLiquidityBody(body []byte) (model.RemoveBinLiquidityParams, error) {
	tuple, err := unpackTuple(MethodRemoveLiquidity, body)
	if err != nil {
		return model.RemoveBinLiquidityParams{}, err
	}

	r := tupleReader{tuple: tuple}
	p := model.RemoveBinLiquidityParams{
		PoolKey:    r.poolKey("PoolKey"),
		Amount0Min: r.unsigned("Amount0Min", bitsUint128),
		Amount1Min: r.unsigned("Amount1Min", bitsUint128),
		IDs:        r.unsignedSlice("Ids", bitsUint24),
		Amounts:    r.unsignedSlice("Amounts", bitsUint256),
		From:       r.address("From"),
		To:         r.address("To"),
		Deadline:   r.unsigned("Deadline", bitsUint256),
	}
	if r.err != nil {
		return model.RemoveBinLiquidityParams{}, r.err
	}
	if err := p.Validate(); err != nil {
		return model.RemoveBinLiquidityParams{}, err
	}
	encoded, err := EncodeRemoveLiquidity(p)
	if err != nil {
		return model.RemoveBinLiquidityParams{}, err
	}
	if err := checkCanonical(encoded[4:], body); err != nil {
		return model.RemoveBinLiquidityParams{}, err
	}
	return p, nil
}

// checkCanonical rejects bodies the ABI decoder tolerates but the encoder
// would never produce, such as dirty padding or trailing bytes.
func checkCanonical(canonical, body []byte) error {
	if len(body) != len(canonical) {
		return fmt.Errorf("payload body is %d bytes, canonical encoding is %d", len(body), len(canonical))
	}
	if !bytes.Equal(body, canonical) {
		for i := range body {
			if body[i] != canonical[i] {
				return fmt.Errorf("payload is not canonically encoded at byte %d", 4+i)
			}
		}
	}
	return nil
}

// unpackTuple runs the ABI decoder over the argument bytes of a method. The
// decoder bounds-checks offsets and lengths; a panic on hostile input is
// reported as an error as well.
func unpackTuple(name string, body []byte) (tuple reflect.Value, err error) {
	method, err := liquidityMethod(name)
	if err != nil {
		return reflect.Value{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			tuple = reflect.Value{}
			err = fmt.Errorf("malformed payload: %v", r)
		}
	}()

	values, err := method.Inputs.Unpack(body)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("unpack: %w", err)
	}
	if len(values) != 1 {
		return reflect.Value{}, fmt.Errorf("unexpected %s values: %d", name, len(values))
	}
	return reflect.ValueOf(values[0]), nil
}

// tupleReader pulls typed fields out of an unpacked tuple and keeps the first
// failure.
type tupleReader struct {
	tuple reflect.Value
	err   error
}

func (r *tupleReader) field(name string) interface{} {
	if r.err != nil {
		return nil
	}
	value, err := tupleField(r.tuple, name)
	if err != nil {
		r.err = err
		return nil
	}
	return value
}

func (r *tupleReader) fail(name string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%s: %w", name, err)
	}
}

func (r *tupleReader) unsigned(name string, bits int) *big.Int {
	value := r.field(name)
	if r.err != nil {
		return nil
	}
	v, err := asBigInt(value)
	if err == nil {
		err = uintWithin(v, bits)
	}
	if err != nil {
		r.fail(name, err)
		return nil
	}
	return v
}

func (r *tupleReader) unsignedSlice(name string, bits int) []*big.Int {
	value := r.field(name)
	if r.err != nil {
		return nil
	}
	values, err := asBigInts(value)
	if err != nil {
		r.fail(name, err)
		return nil
	}
	for i, v := range values {
		if err := uintWithin(v, bits); err != nil {
			r.fail(fmt.Sprintf("%s[%d]", name, i), err)
			return nil
		}
	}
	return values
}

func (r *tupleReader) signedSlice(name string) []*big.Int {
	value := r.field(name)
	if r.err != nil {
		return nil
	}
	values, err := asBigInts(value)
	if err != nil {
		r.fail(name, err)
		return nil
	}
	return values
}

func (r *tupleReader) address(name string) common.Address {
	value := r.field(name)
	if r.err != nil {
		return common.Address{}
	}
	addr, err := asAddress(value)
	if err != nil {
		r.fail(name, err)
		return common.Address{}
	}
	return addr
}

func (r *tupleReader) poolKey(name string) model.PoolKey {
	value := r.field(name)
	if r.err != nil {
		return model.PoolKey{}
	}

	inner := tupleReader{tuple: reflect.ValueOf(value)}
	key := model.PoolKey{
		Currency0:   inner.address("Currency0"),
		Currency1:   inner.address("Currency1"),
		Hooks:       inner.address("Hooks"),
		PoolManager: inner.address("PoolManager"),
	}
	fee := inner.unsigned("Fee", bitsUint24)
	raw := inner.field("Parameters")
	if inner.err != nil {
		r.fail(name, inner.err)
		return model.PoolKey{}
	}
	key.Fee = uint32(fee.Uint64())

	params, err := asBytes32(raw)
	if err != nil {
		r.fail(name, err)
		return model.PoolKey{}
	}
	binParams, err := model.DecodeBinParameters(params)
	if err != nil {
		r.fail(name, err)
		return model.PoolKey{}
	}
	key.Parameters = binParams
	return key
}
