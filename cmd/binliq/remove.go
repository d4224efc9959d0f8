package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"binLiquidity/internal/config"
	"binLiquidity/internal/dex"
	"binLiquidity/internal/params"
)

func runRemove(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadRemove(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	intent, err := removeIntentFromConfig(cfg, time.Now())
	if err != nil {
		return err
	}

	p, err := params.BuildRemoveParams(intent)
	if err != nil {
		return err
	}

	calldata, err := dex.BinPoolRemoveLiquidityCalldata(p)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("remove start",
		zap.String("currency0", intent.PoolKey.Currency0.Hex()),
		zap.String("currency1", intent.PoolKey.Currency1.Hex()),
		zap.Uint32("active_id", cfg.ActiveID),
		zap.Int("num_bins", cfg.NumBins),
		zap.String("from", p.From.Hex()),
		zap.String("to", p.To.Hex()),
		zap.String("deadline", intent.Deadline.String()),
	)

	journal, err := openJournal(ctx, cfg.Output, logger)
	if err != nil {
		return err
	}
	defer journal.Close()

	payload, err := newPayload(dex.MethodRemoveLiquidity, dex.SelectorHex(dex.RemoveLiquiditySelector), p.PoolKey, calldata, p.Deadline.String(), time.Now())
	if err != nil {
		return err
	}
	if err := journal.Record(ctx, p.PoolKey, payload); err != nil {
		return fmt.Errorf("journal payload: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), calldata)

	logger.Info("remove complete",
		zap.String("pool_id", payload.PoolID),
		zap.Int("bins", len(p.IDs)),
		zap.Int("calldata_bytes", (len(calldata)-2)/2),
		zap.String("journal", cfg.Output.Journal),
	)

	return nil
}

func removeIntentFromConfig(cfg config.RemoveConfig, now time.Time) (params.RemoveIntent, error) {
	key, err := poolKeyFromConfig(cfg.Pool)
	if err != nil {
		return params.RemoveIntent{}, err
	}

	amounts, err := params.ParseAmounts(cfg.Amounts)
	if err != nil {
		return params.RemoveIntent{}, fmt.Errorf("amounts: %w", err)
	}
	amount0Min, err := parseTokenAmount("amount0-min", cfg.Amount0Min, cfg.Decimals0)
	if err != nil {
		return params.RemoveIntent{}, err
	}
	amount1Min, err := parseTokenAmount("amount1-min", cfg.Amount1Min, cfg.Decimals1)
	if err != nil {
		return params.RemoveIntent{}, err
	}

	from, err := params.ParseAddress(cfg.From)
	if err != nil {
		return params.RemoveIntent{}, fmt.Errorf("from: %w", err)
	}
	to, err := parseOptionalAddress("to", cfg.To)
	if err != nil {
		return params.RemoveIntent{}, err
	}

	deadline, err := resolveDeadline(cfg.Deadline, now)
	if err != nil {
		return params.RemoveIntent{}, err
	}

	return params.RemoveIntent{
		PoolKey:    key,
		ActiveID:   cfg.ActiveID,
		NumBins:    cfg.NumBins,
		Amounts:    amounts,
		Amount0Min: amount0Min,
		Amount1Min: amount1Min,
		From:       from,
		To:         to,
		Deadline:   deadline,
	}, nil
}
