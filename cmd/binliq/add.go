package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"binLiquidity/internal/config"
	"binLiquidity/internal/dex"
	"binLiquidity/internal/model"
	"binLiquidity/internal/params"
)

func runAdd(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadAdd(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	intent, err := addIntentFromConfig(cfg, time.Now())
	if err != nil {
		return err
	}

	p, err := params.BuildAddParams(intent)
	if err != nil {
		return err
	}

	calldata, err := dex.BinPoolAddLiquidityCalldata(p)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("add start",
		zap.String("currency0", intent.PoolKey.Currency0.Hex()),
		zap.String("currency1", intent.PoolKey.Currency1.Hex()),
		zap.Uint32("active_id", cfg.ActiveID),
		zap.Int("num_bins", cfg.NumBins),
		zap.String("amount0", intent.Amount0.String()),
		zap.String("amount1", intent.Amount1.String()),
		zap.String("deadline", intent.Deadline.String()),
	)

	journal, err := openJournal(ctx, cfg.Output, logger)
	if err != nil {
		return err
	}
	defer journal.Close()

	payload, err := newPayload(dex.MethodAddLiquidity, dex.SelectorHex(dex.AddLiquiditySelector), p.PoolKey, calldata, p.Deadline.String(), time.Now())
	if err != nil {
		return err
	}
	if err := journal.Record(ctx, p.PoolKey, payload); err != nil {
		return fmt.Errorf("journal payload: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), calldata)

	logger.Info("add complete",
		zap.String("pool_id", payload.PoolID),
		zap.Int("bins", len(p.DeltaIDs)),
		zap.Int("calldata_bytes", (len(calldata)-2)/2),
		zap.String("journal", cfg.Output.Journal),
	)

	return nil
}

func addIntentFromConfig(cfg config.AddConfig, now time.Time) (params.AddIntent, error) {
	key, err := poolKeyFromConfig(cfg.Pool)
	if err != nil {
		return params.AddIntent{}, err
	}

	amount0, err := parseTokenAmount("amount0", cfg.Amount0, cfg.Decimals0)
	if err != nil {
		return params.AddIntent{}, err
	}
	amount1, err := parseTokenAmount("amount1", cfg.Amount1, cfg.Decimals1)
	if err != nil {
		return params.AddIntent{}, err
	}
	amount0Min, err := parseTokenAmount("amount0-min", cfg.Amount0Min, cfg.Decimals0)
	if err != nil {
		return params.AddIntent{}, err
	}
	amount1Min, err := parseTokenAmount("amount1-min", cfg.Amount1Min, cfg.Decimals1)
	if err != nil {
		return params.AddIntent{}, err
	}

	idSlippage, err := params.ParseAmount(cfg.IDSlippage)
	if err != nil {
		return params.AddIntent{}, fmt.Errorf("id-slippage: %w", err)
	}

	to, err := params.ParseAddress(cfg.To)
	if err != nil {
		return params.AddIntent{}, fmt.Errorf("to: %w", err)
	}
	if to == (common.Address{}) {
		return params.AddIntent{}, model.NewValidationError("to", "recipient is required")
	}

	deadline, err := resolveDeadline(cfg.Deadline, now)
	if err != nil {
		return params.AddIntent{}, err
	}

	return params.AddIntent{
		PoolKey:    key,
		ActiveID:   cfg.ActiveID,
		NumBins:    cfg.NumBins,
		IDSlippage: idSlippage,
		Amount0:    amount0,
		Amount1:    amount1,
		Amount0Min: amount0Min,
		Amount1Min: amount1Min,
		To:         to,
		Deadline:   deadline,
	}, nil
}
