package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"binLiquidity/internal/config"
	"binLiquidity/internal/model"
)

func runPoolID(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadPoolID(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	key, err := poolKeyFromConfig(cfg.Pool)
	if err != nil {
		return err
	}

	pool, err := model.NewPool(key)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), pool.PoolID)

	logger.Debug("pool id",
		zap.String("pool_id", pool.PoolID),
		zap.String("pool_type", pool.PoolType),
		zap.String("parameters", pool.Parameters),
	)

	return nil
}
