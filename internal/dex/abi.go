package dex

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const binPositionManagerABIJSON = `[
  {
    "inputs": [
      {
        "components": [
          {
            "components": [
              {"internalType": "Currency", "name": "currency0", "type": "address"},
              {"internalType": "Currency", "name": "currency1", "type": "address"},
              {"internalType": "contract IHooks", "name": "hooks", "type": "address"},
              {"internalType": "contract IPoolManager", "name": "poolManager", "type": "address"},
              {"internalType": "uint24", "name": "fee", "type": "uint24"},
              {"internalType": "bytes32", "name": "parameters", "type": "bytes32"}
            ],
            "internalType": "struct PoolKey",
            "name": "poolKey",
            "type": "tuple"
          },
          {"internalType": "uint128", "name": "amount0", "type": "uint128"},
          {"internalType": "uint128", "name": "amount1", "type": "uint128"},
          {"internalType": "uint128", "name": "amount0Min", "type": "uint128"},
          {"internalType": "uint128", "name": "amount1Min", "type": "uint128"},
          {"internalType": "uint256", "name": "activeIdDesired", "type": "uint256"},
          {"internalType": "uint256", "name": "idSlippage", "type": "uint256"},
          {"internalType": "int256[]", "name": "deltaIds", "type": "int256[]"},
          {"internalType": "uint256[]", "name": "distributionX", "type": "uint256[]"},
          {"internalType": "uint256[]", "name": "distributionY", "type": "uint256[]"},
          {"internalType": "address", "name": "to", "type": "address"},
          {"internalType": "uint256", "name": "deadline", "type": "uint256"}
        ],
        "internalType": "struct IBinPositionManager.BinAddLiquidityParams",
        "name": "params",
        "type": "tuple"
      }
    ],
    "name": "addLiquidity",
    "outputs": [],
    "stateMutability": "payable",
    "type": "function"
  },
  {
    "inputs": [
      {
        "components": [
          {
            "components": [
              {"internalType": "Currency", "name": "currency0", "type": "address"},
              {"internalType": "Currency", "name": "currency1", "type": "address"},
              {"internalType": "contract IHooks", "name": "hooks", "type": "address"},
              {"internalType": "contract IPoolManager", "name": "poolManager", "type": "address"},
              {"internalType": "uint24", "name": "fee", "type": "uint24"},
              {"internalType": "bytes32", "name": "parameters", "type": "bytes32"}
            ],
            "internalType": "struct PoolKey",
            "name": "poolKey",
            "type": "tuple"
          },
          {"internalType": "uint128", "name": "amount0Min", "type": "uint128"},
          {"internalType": "uint128", "name": "amount1Min", "type": "uint128"},
          {"internalType": "uint256[]", "name": "ids", "type": "uint256[]"},
          {"internalType": "uint256[]", "name": "amounts", "type": "uint256[]"},
          {"internalType": "address", "name": "from", "type": "address"},
          {"internalType": "address", "name": "to", "type": "address"},
          {"internalType": "uint256", "name": "deadline", "type": "uint256"}
        ],
        "internalType": "struct IBinPositionManager.BinRemoveLiquidityParams",
        "name": "params",
        "type": "tuple"
      }
    ],
    "name": "removeLiquidity",
    "outputs": [],
    "stateMutability": "payable",
    "type": "function"
  }
]`

var (
	binPositionManagerABI     abi.ABI
	binPositionManagerABIOnce sync.Once
	binPositionManagerABIErr  error
)

// BinPositionManagerABI returns the parsed liquidity ABI of the bin position manager.
func BinPositionManagerABI() (abi.ABI, error) {
	binPositionManagerABIOnce.Do(func() {
		binPositionManagerABI, binPositionManagerABIErr = abi.JSON(strings.NewReader(binPositionManagerABIJSON))
	})
	return binPositionManagerABI, binPositionManagerABIErr
}

func liquidityMethod(name string) (abi.Method, error) {
	parsed, err := BinPositionManagerABI()
	if err != nil {
		return abi.Method{}, err
	}
	method, ok := parsed.Methods[name]
	if !ok {
		return abi.Method{}, fmt.Errorf("method %s not in abi", name)
	}
	return method, nil
}
