package model

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// MaxFee is the largest fee that fits the uint24 wire slot.
const MaxFee = 1<<24 - 1

var (
	poolKeyArgsOnce sync.Once
	poolKeyArgs     abi.Arguments
	poolKeyArgsErr  error
)

func poolKeyArguments() (abi.Arguments, error) {
	poolKeyArgsOnce.Do(func() {
		var args abi.Arguments
		for _, name := range []string{"address", "address", "address", "address", "uint24", "bytes32"} {
			typ, err := abi.NewType(name, "", nil)
			if err != nil {
				poolKeyArgsErr = err
				return
			}
			args = append(args, abi.Argument{Type: typ})
		}
		poolKeyArgs = args
	})
	return poolKeyArgs, poolKeyArgsErr
}

// EncodeParameters returns the bytes32 parameters slot of the key.
func (k PoolKey) EncodeParameters() ([32]byte, error) {
	if k.Parameters == nil {
		return [32]byte{}, NewValidationError("pool_key.parameters", "missing")
	}
	return k.Parameters.Encode()
}

// ID returns keccak256 over the ABI encoding of the key, the identifier the
// pool manager stores the pool under.
func (k PoolKey) ID() (common.Hash, error) {
	if err := k.Validate(); err != nil {
		return common.Hash{}, err
	}
	if k.Fee > MaxFee {
		return common.Hash{}, &EncodingError{Field: "pool_key.fee", Err: fmt.Errorf("%d overflows uint24", k.Fee)}
	}
	params, err := k.EncodeParameters()
	if err != nil {
		return common.Hash{}, err
	}
	args, err := poolKeyArguments()
	if err != nil {
		return common.Hash{}, err
	}
	packed, err := args.Pack(k.Currency0, k.Currency1, k.Hooks, k.PoolManager, new(big.Int).SetUint64(uint64(k.Fee)), params)
	if err != nil {
		return common.Hash{}, &EncodingError{Field: "pool_key", Err: err}
	}
	return crypto.Keccak256Hash(packed), nil
}
