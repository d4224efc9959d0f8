package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "binliq",
		Short:        "Bin pool liquidity calldata toolkit",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Build addLiquidity calldata for a bin pool",
		RunE:  runAdd,
	}

	addPoolFlags(addCmd.Flags())
	addCmd.Flags().Uint32("active-id", 0, "active bin id")
	addCmd.Flags().Int("num-bins", 1, "number of bins centred on the active bin")
	addCmd.Flags().String("id-slippage", "0", "allowed active id drift")
	addCmd.Flags().String("amount0", "0", "currency0 amount in token units (e.g. 1.5)")
	addCmd.Flags().String("amount1", "0", "currency1 amount in token units")
	addCmd.Flags().String("amount0-min", "0", "minimum currency0 amount in token units")
	addCmd.Flags().String("amount1-min", "0", "minimum currency1 amount in token units")
	addCmd.Flags().Uint8("decimals0", 18, "currency0 decimals")
	addCmd.Flags().Uint8("decimals1", 18, "currency1 decimals")
	addCmd.Flags().String("to", "", "recipient of the position")
	addOutputFlags(addCmd.Flags())

	root.AddCommand(addCmd)

	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Build removeLiquidity calldata for a bin pool",
		RunE:  runRemove,
	}

	addPoolFlags(removeCmd.Flags())
	removeCmd.Flags().Uint32("active-id", 0, "active bin id")
	removeCmd.Flags().Int("num-bins", 1, "number of bins centred on the active bin")
	removeCmd.Flags().StringSlice("amounts", nil, "shares to burn per bin, ascending by bin id (comma-separated)")
	removeCmd.Flags().String("amount0-min", "0", "minimum currency0 amount in token units")
	removeCmd.Flags().String("amount1-min", "0", "minimum currency1 amount in token units")
	removeCmd.Flags().Uint8("decimals0", 18, "currency0 decimals")
	removeCmd.Flags().Uint8("decimals1", 18, "currency1 decimals")
	removeCmd.Flags().String("from", "", "owner of the burned shares")
	removeCmd.Flags().String("to", "", "recipient of the withdrawn tokens, defaults to --from")
	addOutputFlags(removeCmd.Flags())

	root.AddCommand(removeCmd)

	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode liquidity calldata into typed records",
		RunE:  runDecode,
	}

	decodeCmd.Flags().String("in", "", "input JSONL payloads or raw hex lines")
	decodeCmd.Flags().String("out", "./data/decoded_calls.jsonl", "output decoded calls JSONL")
	decodeCmd.Flags().String("errors", "./data/decode_errors.jsonl", "decode errors JSONL")
	decodeCmd.Flags().String("selector-map", "", "extra selector->method mappings (comma-separated key=value)")
	decodeCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(decodeCmd)

	poolIDCmd := &cobra.Command{
		Use:   "pool-id",
		Short: "Print the id of a pool key",
		RunE:  runPoolID,
	}

	addPoolFlags(poolIDCmd.Flags())
	poolIDCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(poolIDCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPoolFlags(flags *pflag.FlagSet) {
	flags.String("pool-type", "bin", "pool type (bin, cl)")
	flags.String("currency0", "", "lower sorted token address")
	flags.String("currency1", "", "higher sorted token address")
	flags.String("hooks", "", "hooks contract address, empty for none")
	flags.String("pool-manager", "", "pool manager address")
	flags.Uint32("fee", 0, "pool fee (uint24)")
	flags.Uint16("bin-step", 0, "bin step of a bin pool")
	flags.Int32("tick-spacing", 0, "tick spacing of a cl pool")
	flags.Uint16("hooks-registration", 0, "hooks registration bitmap")
}

func addOutputFlags(flags *pflag.FlagSet) {
	flags.String("deadline", "", "deadline (unix seconds or RFC3339), overrides --deadline-ttl")
	flags.Duration("deadline-ttl", 20*time.Minute, "deadline relative to now")
	flags.Bool("reject-expired", false, "fail when the deadline is not in the future")
	flags.String("journal", "./data/payloads.jsonl", "payload journal JSONL path, empty to disable")
	flags.String("pg-dsn", "", "Postgres DSN for the payload journal")
	flags.Int("batch-size", 500, "batch size for DB writes")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
