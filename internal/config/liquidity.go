package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// OutputConfig selects where built calldata is journaled.
type OutputConfig struct {
	Journal   string
	PGDSN     string
	BatchSize int
}

// DeadlineConfig bounds the validity of a built payload. Deadline wins over
// DeadlineTTL when both are set.
type DeadlineConfig struct {
	Deadline      string
	DeadlineTTL   time.Duration
	RejectExpired bool
}

// AddConfig holds configuration for the add command.
type AddConfig struct {
	Pool       PoolConfig
	ActiveID   uint32
	NumBins    int
	IDSlippage string
	Amount0    string
	Amount1    string
	Amount0Min string
	Amount1Min string
	Decimals0  uint8
	Decimals1  uint8
	To         string
	Deadline   DeadlineConfig
	Output     OutputConfig
	LogLevel   string
}

// RemoveConfig holds configuration for the remove command.
type RemoveConfig struct {
	Pool       PoolConfig
	ActiveID   uint32
	NumBins    int
	Amounts    []string
	Amount0Min string
	Amount1Min string
	Decimals0  uint8
	Decimals1  uint8
	From       string
	To         string
	Deadline   DeadlineConfig
	Output     OutputConfig
	LogLevel   string
}

// PoolIDConfig holds configuration for the pool-id command.
type PoolIDConfig struct {
	Pool     PoolConfig
	LogLevel string
}

func liquidityDefaults() map[string]interface{} {
	return poolDefaults(map[string]interface{}{
		"num-bins":       1,
		"decimals0":      18,
		"decimals1":      18,
		"deadline-ttl":   20 * time.Minute,
		"reject-expired": false,
		"journal":        "./data/payloads.jsonl",
		"batch-size":     500,
	})
}

func loadDeadline(v *viper.Viper) DeadlineConfig {
	return DeadlineConfig{
		Deadline:      v.GetString("deadline"),
		DeadlineTTL:   v.GetDuration("deadline-ttl"),
		RejectExpired: v.GetBool("reject-expired"),
	}
}

func loadOutput(v *viper.Viper) OutputConfig {
	return OutputConfig{
		Journal:   v.GetString("journal"),
		PGDSN:     v.GetString("pg-dsn"),
		BatchSize: v.GetInt("batch-size"),
	}
}

func loadBinInputs(v *viper.Viper) (activeID uint32, decimals0, decimals1 uint8, err error) {
	id, err := getUint(v, "active-id", 32)
	if err != nil {
		return 0, 0, 0, err
	}
	d0, err := getUint(v, "decimals0", 8)
	if err != nil {
		return 0, 0, 0, err
	}
	d1, err := getUint(v, "decimals1", 8)
	if err != nil {
		return 0, 0, 0, err
	}
	return uint32(id), uint8(d0), uint8(d1), nil
}

// LoadAdd merges config file, environment variables, and flags into AddConfig.
func LoadAdd(cfgFile string, flags *pflag.FlagSet) (AddConfig, error) {
	v, err := load(cfgFile, flags, liquidityDefaults())
	if err != nil {
		return AddConfig{}, err
	}

	pool, err := loadPool(v)
	if err != nil {
		return AddConfig{}, err
	}
	activeID, decimals0, decimals1, err := loadBinInputs(v)
	if err != nil {
		return AddConfig{}, err
	}

	cfg := AddConfig{
		Pool:       pool,
		ActiveID:   activeID,
		NumBins:    v.GetInt("num-bins"),
		IDSlippage: v.GetString("id-slippage"),
		Amount0:    v.GetString("amount0"),
		Amount1:    v.GetString("amount1"),
		Amount0Min: v.GetString("amount0-min"),
		Amount1Min: v.GetString("amount1-min"),
		Decimals0:  decimals0,
		Decimals1:  decimals1,
		To:         v.GetString("to"),
		Deadline:   loadDeadline(v),
		Output:     loadOutput(v),
		LogLevel:   v.GetString("log-level"),
	}

	return cfg, nil
}

// LoadRemove merges config file, environment variables, and flags into RemoveConfig.
func LoadRemove(cfgFile string, flags *pflag.FlagSet) (RemoveConfig, error) {
	v, err := load(cfgFile, flags, liquidityDefaults())
	if err != nil {
		return RemoveConfig{}, err
	}

	pool, err := loadPool(v)
	if err != nil {
		return RemoveConfig{}, err
	}
	activeID, decimals0, decimals1, err := loadBinInputs(v)
	if err != nil {
		return RemoveConfig{}, err
	}

	cfg := RemoveConfig{
		Pool:       pool,
		ActiveID:   activeID,
		NumBins:    v.GetInt("num-bins"),
		Amounts:    getStringList(v, "amounts"),
		Amount0Min: v.GetString("amount0-min"),
		Amount1Min: v.GetString("amount1-min"),
		Decimals0:  decimals0,
		Decimals1:  decimals1,
		From:       v.GetString("from"),
		To:         v.GetString("to"),
		Deadline:   loadDeadline(v),
		Output:     loadOutput(v),
		LogLevel:   v.GetString("log-level"),
	}

	return cfg, nil
}

// LoadPoolID merges config file, environment variables, and flags into PoolIDConfig.
func LoadPoolID(cfgFile string, flags *pflag.FlagSet) (PoolIDConfig, error) {
	v, err := load(cfgFile, flags, poolDefaults(map[string]interface{}{}))
	if err != nil {
		return PoolIDConfig{}, err
	}

	pool, err := loadPool(v)
	if err != nil {
		return PoolIDConfig{}, err
	}

	return PoolIDConfig{
		Pool:     pool,
		LogLevel: v.GetString("log-level"),
	}, nil
}
