package main

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"binLiquidity/internal/config"
	"binLiquidity/internal/model"
	"binLiquidity/internal/params"
)

func poolKeyFromConfig(cfg config.PoolConfig) (model.PoolKey, error) {
	currency0, err := params.ParseAddress(cfg.Currency0)
	if err != nil {
		return model.PoolKey{}, fmt.Errorf("currency0: %w", err)
	}
	currency1, err := params.ParseAddress(cfg.Currency1)
	if err != nil {
		return model.PoolKey{}, fmt.Errorf("currency1: %w", err)
	}
	poolManager, err := params.ParseAddress(cfg.PoolManager)
	if err != nil {
		return model.PoolKey{}, fmt.Errorf("pool manager: %w", err)
	}

	var hooks common.Address
	if strings.TrimSpace(cfg.Hooks) != "" {
		hooks, err = params.ParseAddress(cfg.Hooks)
		if err != nil {
			return model.PoolKey{}, fmt.Errorf("hooks: %w", err)
		}
	}

	var poolParams model.PoolParameters
	switch cfg.PoolType {
	case "", "bin":
		poolParams = model.BinParameters{BinStep: cfg.BinStep, HooksRegistration: cfg.HooksRegistration}
	case "cl":
		poolParams = model.CLParameters{TickSpacing: cfg.TickSpacing, HooksRegistration: cfg.HooksRegistration}
	default:
		return model.PoolKey{}, fmt.Errorf("unsupported pool type: %s", cfg.PoolType)
	}

	key := model.PoolKey{
		Currency0:   currency0,
		Currency1:   currency1,
		Hooks:       hooks,
		PoolManager: poolManager,
		Fee:         cfg.Fee,
		Parameters:  poolParams,
	}
	if err := key.Validate(); err != nil {
		return model.PoolKey{}, err
	}
	return key, nil
}

// resolveDeadline prefers an explicit deadline and falls back to now+ttl.
func resolveDeadline(cfg config.DeadlineConfig, now time.Time) (*big.Int, error) {
	if strings.TrimSpace(cfg.Deadline) != "" {
		ts, err := config.ParseTimestamp(cfg.Deadline)
		if err != nil {
			return nil, fmt.Errorf("deadline: %w", err)
		}
		deadline := new(big.Int).SetUint64(ts)
		if cfg.RejectExpired {
			if err := params.CheckDeadline(deadline, now); err != nil {
				return nil, err
			}
		}
		return deadline, nil
	}

	if cfg.DeadlineTTL <= 0 {
		return nil, fmt.Errorf("deadline or a positive deadline ttl is required")
	}
	deadline := params.DeadlineAfter(now, cfg.DeadlineTTL)
	if cfg.RejectExpired {
		if err := params.CheckDeadline(deadline, now); err != nil {
			return nil, err
		}
	}
	return deadline, nil
}

func parseOptionalAddress(field, input string) (common.Address, error) {
	if strings.TrimSpace(input) == "" {
		return common.Address{}, nil
	}
	addr, err := params.ParseAddress(input)
	if err != nil {
		return common.Address{}, fmt.Errorf("%s: %w", field, err)
	}
	return addr, nil
}

func parseTokenAmount(field, input string, decimals uint8) (*big.Int, error) {
	if strings.TrimSpace(input) == "" {
		return new(big.Int), nil
	}
	v, err := params.ParseUnits(input, decimals)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}
