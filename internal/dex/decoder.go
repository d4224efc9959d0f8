package dex

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"binLiquidity/internal/model"
)

// Decoder defines a calldata decoder.
type Decoder interface {
	CanDecode(selector string) bool
	Decode(calldata string) (*model.DecodedCall, error)
}

// DecoderConfig configures decoder behavior.
type DecoderConfig struct {
	// SelectorMap routes extra selectors to a method, for wrappers that
	// forward the same params tuple under another entry point.
	SelectorMap map[string]string
}

// BinPositionDecoder decodes bin position manager liquidity calldata.
type BinPositionDecoder struct {
	selectorToName map[string]string
}

// NewBinPositionDecoder builds a bin position manager decoder.
func NewBinPositionDecoder(cfg DecoderConfig) (*BinPositionDecoder, error) {
	if _, err := BinPositionManagerABI(); err != nil {
		return nil, err
	}

	selectorToName := map[string]string{
		SelectorHex(AddLiquiditySelector):    MethodAddLiquidity,
		SelectorHex(RemoveLiquiditySelector): MethodRemoveLiquidity,
	}

	for selector, name := range cfg.SelectorMap {
		original := name
		name = normalizeMethodName(name)
		if name == "" {
			return nil, fmt.Errorf("unsupported method name in selector map: %s", original)
		}
		if selector == "" {
			continue
		}
		raw, err := hexutil.Decode(selector)
		if err != nil || len(raw) != 4 {
			return nil, fmt.Errorf("invalid selector in selector map: %s", selector)
		}
		selectorToName[strings.ToLower(selector)] = name
	}

	return &BinPositionDecoder{selectorToName: selectorToName}, nil
}

// CanDecode checks if the selector is supported.
func (d *BinPositionDecoder) CanDecode(selector string) bool {
	if selector == "" {
		return false
	}
	_, ok := d.selectorToName[strings.ToLower(selector)]
	return ok
}

// Decode converts hex calldata into a DecodedCall.
func (d *BinPositionDecoder) Decode(calldata string) (*model.DecodedCall, error) {
	data, err := ParseCalldata(calldata)
	if err != nil {
		return nil, err
	}
	if len(data) < 4 {
		return nil, &model.DecodingError{Err: fmt.Errorf("payload of %d bytes has no selector", len(data))}
	}
	selector := hexutil.Encode(data[:4])
	name, ok := d.selectorToName[selector]
	if !ok {
		return nil, &model.DecodingError{Err: fmt.Errorf("unsupported selector: %s", selector)}
	}

	switch name {
	case MethodAddLiquidity:
		if len(data) < addLiquidityHeadSize {
			return nil, &model.DecodingError{Method: name, Err: fmt.Errorf("payload of %d bytes is shorter than the %d byte head", len(data), addLiquidityHeadSize)}
		}
		params, err := decodeAddLiquidityBody(data[4:])
		if err != nil {
			return nil, &model.DecodingError{Method: name, Err: err}
		}
		return buildDecodedCall(name, selector, model.NewAddLiquidityData(params), calldata), nil
	case MethodRemoveLiquidity:
		if len(data) < removeLiquidityHeadSize {
			return nil, &model.DecodingError{Method: name, Err: fmt.Errorf("payload of %d bytes is shorter than the %d byte head", len(data), removeLiquidityHeadSize)}
		}
		params, err := decodeRemoveLiquidityBody(data[4:])
		if err != nil {
			return nil, &model.DecodingError{Method: name, Err: err}
		}
		return buildDecodedCall(name, selector, model.NewRemoveLiquidityData(params), calldata), nil
	default:
		return nil, &model.DecodingError{Err: fmt.Errorf("unsupported method name: %s", name)}
	}
}

func normalizeMethodName(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "addliquidity", "add":
		return MethodAddLiquidity
	case "removeliquidity", "remove":
		return MethodRemoveLiquidity
	default:
		return ""
	}
}

func buildDecodedCall(name, selector string, decoded interface{}, calldata string) *model.DecodedCall {
	return &model.DecodedCall{
		Method:   name,
		Selector: selector,
		Decoded:  decoded,
		Raw:      &model.RawCalldataRef{Calldata: calldata},
	}
}
