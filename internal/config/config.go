package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "BINLIQ"

// PoolConfig identifies the pool a command targets.
type PoolConfig struct {
	PoolType          string
	Currency0         string
	Currency1         string
	Hooks             string
	PoolManager       string
	Fee               uint32
	BinStep           uint16
	TickSpacing       int32
	HooksRegistration uint16
}

// load merges defaults, config file, environment variables, and flags.
func load(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return v, nil
}

func poolDefaults(defaults map[string]interface{}) map[string]interface{} {
	defaults["pool-type"] = "bin"
	defaults["hooks"] = ""
	return defaults
}

func loadPool(v *viper.Viper) (PoolConfig, error) {
	fee, err := getUint(v, "fee", 32)
	if err != nil {
		return PoolConfig{}, err
	}
	binStep, err := getUint(v, "bin-step", 16)
	if err != nil {
		return PoolConfig{}, err
	}
	tickSpacing, err := getInt(v, "tick-spacing", 32)
	if err != nil {
		return PoolConfig{}, err
	}
	hooksRegistration, err := getUint(v, "hooks-registration", 16)
	if err != nil {
		return PoolConfig{}, err
	}

	return PoolConfig{
		PoolType:          strings.ToLower(strings.TrimSpace(v.GetString("pool-type"))),
		Currency0:         v.GetString("currency0"),
		Currency1:         v.GetString("currency1"),
		Hooks:             v.GetString("hooks"),
		PoolManager:       v.GetString("pool-manager"),
		Fee:               uint32(fee),
		BinStep:           uint16(binStep),
		TickSpacing:       int32(tickSpacing),
		HooksRegistration: uint16(hooksRegistration),
	}, nil
}

// getUint reads an unsigned value and rejects it when it does not fit in
// bits. Unset keys read as zero.
func getUint(v *viper.Viper, key string, bits uint) (uint64, error) {
	raw := v.Get(key)
	if raw == nil {
		return 0, nil
	}
	if str, ok := raw.(string); ok && strings.TrimSpace(str) == "" {
		return 0, nil
	}
	val, err := cast.ToUint64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if bits < 64 && val >= 1<<bits {
		return 0, fmt.Errorf("%s: %d overflows uint%d", key, val, bits)
	}
	return val, nil
}

// getInt reads a signed value and rejects it when it does not fit in bits.
func getInt(v *viper.Viper, key string, bits uint) (int64, error) {
	raw := v.Get(key)
	if raw == nil {
		return 0, nil
	}
	if str, ok := raw.(string); ok && strings.TrimSpace(str) == "" {
		return 0, nil
	}
	val, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if val < -limit || val >= limit {
			return 0, fmt.Errorf("%s: %d overflows int%d", key, val, bits)
		}
	}
	return val, nil
}

// ParseTimestamp parses a timestamp value (unix seconds or RFC3339).
func ParseTimestamp(input string) (uint64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}

	if isNumeric(input) {
		val, err := strconv.ParseUint(input, 10, 64)
		if err != nil {
			return 0, err
		}
		return val, nil
	}

	tm, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return 0, err
	}
	if tm.Unix() < 0 {
		return 0, fmt.Errorf("timestamp %s is before the unix epoch", input)
	}
	return uint64(tm.Unix()), nil
}

func isNumeric(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

// getStringList reads a list like getStringSlice but keeps blank entries, so
// positional lists keep their positions.
func getStringList(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	var items []string
	switch typed := v.Get(key).(type) {
	case []string:
		items = typed
	case string:
		if strings.TrimSpace(typed) == "" {
			return nil
		}
		items = strings.Split(typed, ",")
	case []interface{}:
		items = make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
	default:
		return nil
	}

	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.TrimSpace(item)
	}
	return out
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func getStringMap(v *viper.Viper, key string) map[string]string {
	if !v.IsSet(key) {
		return map[string]string{}
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case map[string]string:
		return typed
	case map[string]interface{}:
		out := make(map[string]string, len(typed))
		for k, v := range typed {
			out[k] = fmt.Sprintf("%v", v)
		}
		return out
	case string:
		return parseStringMap(typed)
	default:
		return map[string]string{}
	}
}

func parseStringMap(input string) map[string]string {
	out := make(map[string]string)
	if strings.TrimSpace(input) == "" {
		return out
	}
	pairs := strings.Split(input, ",")
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}
