package config

import (
	"github.com/spf13/pflag"
)

// DecodeConfig holds configuration for the decode command.
type DecodeConfig struct {
	In          string
	Out         string
	Errors      string
	LogLevel    string
	SelectorMap map[string]string
}

// LoadDecode merges config file, environment variables, and flags into DecodeConfig.
func LoadDecode(cfgFile string, flags *pflag.FlagSet) (DecodeConfig, error) {
	v, err := load(cfgFile, flags, map[string]interface{}{
		"out":    "./data/decoded_calls.jsonl",
		"errors": "./data/decode_errors.jsonl",
	})
	if err != nil {
		return DecodeConfig{}, err
	}

	cfg := DecodeConfig{
		In:          v.GetString("in"),
		Out:         v.GetString("out"),
		Errors:      v.GetString("errors"),
		LogLevel:    v.GetString("log-level"),
		SelectorMap: getStringMap(v, "selector-map"),
	}

	return cfg, nil
}
