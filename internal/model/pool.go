package model

import "github.com/ethereum/go-ethereum/common/hexutil"

// Pool is a pool key record for storage, keyed by pool id.
type Pool struct {
	PoolID      string `json:"pool_id"`
	PoolType    string `json:"pool_type"`
	Currency0   string `json:"currency0"`
	Currency1   string `json:"currency1"`
	Hooks       string `json:"hooks"`
	PoolManager string `json:"pool_manager"`
	Fee         uint32 `json:"fee"`
	Parameters  string `json:"parameters"`
}

// NewPool derives the storage record of a key.
func NewPool(key PoolKey) (Pool, error) {
	id, err := key.ID()
	if err != nil {
		return Pool{}, err
	}
	params, err := key.EncodeParameters()
	if err != nil {
		return Pool{}, err
	}
	return Pool{
		PoolID:      id.Hex(),
		PoolType:    string(key.PoolType()),
		Currency0:   key.Currency0.Hex(),
		Currency1:   key.Currency1.Hex(),
		Hooks:       key.Hooks.Hex(),
		PoolManager: key.PoolManager.Hex(),
		Fee:         key.Fee,
		Parameters:  hexutil.Encode(params[:]),
	}, nil
}
