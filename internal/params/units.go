package params

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseUnits converts a human decimal such as "1.5" into base units with the
// given number of decimals. Digits past the token precision are an error.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(value, "-") {
		return nil, fmt.Errorf("negative amount: %s", value)
	}

	whole, frac := value, ""
	if i := strings.IndexByte(value, '.'); i >= 0 {
		whole, frac = value[:i], value[i+1:]
	}
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("invalid amount: %s", value)
	}
	if len(frac) > int(decimals) {
		if strings.TrimRight(frac[decimals:], "0") != "" {
			return nil, fmt.Errorf("amount %s has more than %d decimals", value, decimals)
		}
		frac = frac[:decimals]
	}
	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	if digits == "" {
		digits = "0"
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("invalid amount: %s", value)
		}
	}

	out, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", value)
	}
	return out, nil
}

// FormatUnits renders base units as a decimal string, dropping trailing
// fractional zeros.
func FormatUnits(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	if decimals == 0 {
		return value.String()
	}
	sign := value.Sign()
	abs := new(big.Int).Abs(value)
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	rat := new(big.Rat).SetFrac(abs, denom)
	text := rat.FloatString(int(decimals))
	text = strings.TrimRight(text, "0")
	text = strings.TrimSuffix(text, ".")
	if sign < 0 {
		return "-" + text
	}
	return text
}
