package model

import "math/big"

// PoolKeyData is the JSON view of a pool key inside a decoded call.
type PoolKeyData struct {
	PoolID            string `json:"pool_id,omitempty"`
	PoolType          string `json:"pool_type"`
	Currency0         string `json:"currency0"`
	Currency1         string `json:"currency1"`
	Hooks             string `json:"hooks"`
	PoolManager       string `json:"pool_manager"`
	Fee               uint32 `json:"fee"`
	BinStep           uint16 `json:"bin_step,omitempty"`
	TickSpacing       int32  `json:"tick_spacing,omitempty"`
	HooksRegistration uint16 `json:"hooks_registration"`
}

// AddLiquidityData is the decoded addLiquidity payload.
type AddLiquidityData struct {
	PoolKey         PoolKeyData `json:"pool_key"`
	Amount0         string      `json:"amount0"`
	Amount1         string      `json:"amount1"`
	Amount0Min      string      `json:"amount0_min"`
	Amount1Min      string      `json:"amount1_min"`
	ActiveIDDesired string      `json:"active_id_desired"`
	IDSlippage      string      `json:"id_slippage"`
	DeltaIDs        []string    `json:"delta_ids"`
	DistributionX   []string    `json:"distribution_x"`
	DistributionY   []string    `json:"distribution_y"`
	To              string      `json:"to"`
	Deadline        string      `json:"deadline"`
}

// RemoveLiquidityData is the decoded removeLiquidity payload.
type RemoveLiquidityData struct {
	PoolKey    PoolKeyData `json:"pool_key"`
	Amount0Min string      `json:"amount0_min"`
	Amount1Min string      `json:"amount1_min"`
	IDs        []string    `json:"ids"`
	Amounts    []string    `json:"amounts"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	Deadline   string      `json:"deadline"`
}

// NewPoolKeyData flattens a key for output. The pool id is omitted when the
// key cannot be hashed.
func NewPoolKeyData(key PoolKey) PoolKeyData {
	data := PoolKeyData{
		PoolType:    string(key.PoolType()),
		Currency0:   key.Currency0.Hex(),
		Currency1:   key.Currency1.Hex(),
		Hooks:       key.Hooks.Hex(),
		PoolManager: key.PoolManager.Hex(),
		Fee:         key.Fee,
	}
	switch p := key.Parameters.(type) {
	case BinParameters:
		data.BinStep = p.BinStep
		data.HooksRegistration = p.HooksRegistration
	case CLParameters:
		data.TickSpacing = p.TickSpacing
		data.HooksRegistration = p.HooksRegistration
	}
	if id, err := key.ID(); err == nil {
		data.PoolID = id.Hex()
	}
	return data
}

// NewAddLiquidityData renders an add record with decimal string amounts.
func NewAddLiquidityData(p AddBinLiquidityParams) AddLiquidityData {
	return AddLiquidityData{
		PoolKey:         NewPoolKeyData(p.PoolKey),
		Amount0:         bigString(p.Amount0),
		Amount1:         bigString(p.Amount1),
		Amount0Min:      bigString(p.Amount0Min),
		Amount1Min:      bigString(p.Amount1Min),
		ActiveIDDesired: bigString(p.ActiveIDDesired),
		IDSlippage:      bigString(p.IDSlippage),
		DeltaIDs:        bigStrings(p.DeltaIDs),
		DistributionX:   bigStrings(p.DistributionX),
		DistributionY:   bigStrings(p.DistributionY),
		To:              p.To.Hex(),
		Deadline:        bigString(p.Deadline),
	}
}

// NewRemoveLiquidityData renders a remove record with decimal string amounts.
func NewRemoveLiquidityData(p RemoveBinLiquidityParams) RemoveLiquidityData {
	return RemoveLiquidityData{
		PoolKey:    NewPoolKeyData(p.PoolKey),
		Amount0Min: bigString(p.Amount0Min),
		Amount1Min: bigString(p.Amount1Min),
		IDs:        bigStrings(p.IDs),
		Amounts:    bigStrings(p.Amounts),
		From:       p.From.Hex(),
		To:         p.To.Hex(),
		Deadline:   bigString(p.Deadline),
	}
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func bigStrings(values []*big.Int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = bigString(v)
	}
	return out
}
