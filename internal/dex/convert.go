package dex

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"binLiquidity/internal/model"
)

// Bit widths of the integer slots.
const (
	bitsUint24  = 24
	bitsUint128 = 128
	bitsUint256 = 256
)

var (
	minInt256 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
	maxInt256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
)

// argChecker range-checks values on their way into the packer and keeps the
// first failure. Nil values encode as zero.
type argChecker struct {
	err error
}

func (c *argChecker) unsigned(field string, v *big.Int, bits int) *big.Int {
	if c.err != nil {
		return nil
	}
	out, err := checkUint(v, bits)
	if err != nil {
		c.err = &model.EncodingError{Field: field, Err: err}
		return nil
	}
	return out
}

func (c *argChecker) unsignedSlice(field string, values []*big.Int, bits int) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = c.unsigned(fmt.Sprintf("%s[%d]", field, i), v, bits)
	}
	return out
}

func (c *argChecker) signedSlice(field string, values []*big.Int) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		if c.err != nil {
			return nil
		}
		checked, err := checkInt256(v)
		if err != nil {
			c.err = &model.EncodingError{Field: fmt.Sprintf("%s[%d]", field, i), Err: err}
			return nil
		}
		out[i] = checked
	}
	return out
}

func checkUint(v *big.Int, bits int) (*big.Int, error) {
	if v == nil {
		return new(big.Int), nil
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative value %s for uint%d", v, bits)
	}
	u, overflow := uint256.FromBig(v)
	if overflow || u.BitLen() > bits {
		return nil, fmt.Errorf("%s overflows uint%d", v, bits)
	}
	return u.ToBig(), nil
}

func checkInt256(v *big.Int) (*big.Int, error) {
	if v == nil {
		return new(big.Int), nil
	}
	if v.Cmp(minInt256) < 0 || v.Cmp(maxInt256) > 0 {
		return nil, fmt.Errorf("%s overflows int256", v)
	}
	return new(big.Int).Set(v), nil
}

// tupleField reads a named field of an unpacked ABI tuple.
func tupleField(tuple reflect.Value, name string) (interface{}, error) {
	if tuple.Kind() == reflect.Ptr {
		tuple = tuple.Elem()
	}
	if tuple.Kind() != reflect.Struct {
		return nil, fmt.Errorf("unexpected tuple type %s", tuple.Type())
	}
	field := tuple.FieldByName(name)
	if !field.IsValid() {
		return nil, fmt.Errorf("tuple has no field %s", name)
	}
	return field.Interface(), nil
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

func asBigInts(value interface{}) ([]*big.Int, error) {
	values, ok := value.([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("unsupported int slice type %T", value)
	}
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = new(big.Int).Set(v)
	}
	return out, nil
}

func asBytes32(value interface{}) ([32]byte, error) {
	switch v := value.(type) {
	case [32]byte:
		return v, nil
	case common.Hash:
		return v, nil
	default:
		return [32]byte{}, fmt.Errorf("unsupported bytes32 type %T", value)
	}
}

// uintWithin reports an error when a decoded word exceeds its declared width.
func uintWithin(v *big.Int, bits int) error {
	_, err := checkUint(v, bits)
	return err
}
