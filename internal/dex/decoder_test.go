package dex

import (
	"errors"
	"strings"
	"testing"

	"binLiquidity/internal/model"
)

func TestBinPositionDecoderAdd(t *testing.T) {
	decoder, err := NewBinPositionDecoder(DecoderConfig{})
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	if !decoder.CanDecode("0x8856809D") {
		t.Fatalf("add selector should be supported")
	}

	call, err := decoder.Decode(fixtureAddCalldata)
	if err != nil {
		t.Fatalf("decode add: %v", err)
	}
	if call.Method != MethodAddLiquidity || call.Selector != "0x8856809d" {
		t.Fatalf("method mismatch: %s %s", call.Method, call.Selector)
	}

	add, ok := call.Decoded.(model.AddLiquidityData)
	if !ok {
		t.Fatalf("decoded type mismatch")
	}
	if add.ActiveIDDesired != "8388608" || add.Deadline != "601" {
		t.Fatalf("scalar mismatch: %+v", add)
	}
	if len(add.DeltaIDs) != 3 || add.DeltaIDs[0] != "-1" || add.DeltaIDs[2] != "1" {
		t.Fatalf("delta ids mismatch: %v", add.DeltaIDs)
	}
	if add.PoolKey.BinStep != 10 || add.PoolKey.Fee != 3000 || add.PoolKey.PoolType != "Bin" {
		t.Fatalf("pool key mismatch: %+v", add.PoolKey)
	}
	if add.PoolKey.PoolID != "0xa375025910d942fe1f9e23d9dc9d8ea7d442bd911584f72fe5ec80924d093d4a" {
		t.Fatalf("pool id mismatch: %s", add.PoolKey.PoolID)
	}
	if call.Raw == nil || call.Raw.Calldata != fixtureAddCalldata {
		t.Fatalf("raw calldata missing")
	}
}

func TestBinPositionDecoderRemove(t *testing.T) {
	decoder, err := NewBinPositionDecoder(DecoderConfig{})
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	call, err := decoder.Decode(fixtureRemoveCalldata)
	if err != nil {
		t.Fatalf("decode remove: %v", err)
	}
	remove, ok := call.Decoded.(model.RemoveLiquidityData)
	if !ok {
		t.Fatalf("decoded type mismatch")
	}
	if len(remove.IDs) != 3 || remove.IDs[0] != "8388607" {
		t.Fatalf("ids mismatch: %v", remove.IDs)
	}
	if remove.Amounts[1] != "340282366920938463463374607431768211456000000000000000000" {
		t.Fatalf("amount mismatch: %v", remove.Amounts)
	}
	if !strings.EqualFold(remove.From, "0x328809Bc894f92807417D2dAD6b7C998c1aFdac6") {
		t.Fatalf("from mismatch: %s", remove.From)
	}
}

func TestBinPositionDecoderSelectorMap(t *testing.T) {
	decoder, err := NewBinPositionDecoder(DecoderConfig{
		SelectorMap: map[string]string{"0xDEADBEEF": "add"},
	})
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	if !decoder.CanDecode("0xdeadbeef") {
		t.Fatalf("mapped selector should be supported")
	}

	aliased := "0xdeadbeef" + fixtureAddCalldata[10:]
	call, err := decoder.Decode(aliased)
	if err != nil {
		t.Fatalf("decode aliased: %v", err)
	}
	if call.Method != MethodAddLiquidity || call.Selector != "0xdeadbeef" {
		t.Fatalf("method mismatch: %s %s", call.Method, call.Selector)
	}

	if _, err := NewBinPositionDecoder(DecoderConfig{SelectorMap: map[string]string{"0x01020304": "swap"}}); err == nil {
		t.Fatalf("expected error for unknown method name")
	}
	if _, err := NewBinPositionDecoder(DecoderConfig{SelectorMap: map[string]string{"0x0102": "add"}}); err == nil {
		t.Fatalf("expected error for short selector")
	}
}

func TestBinPositionDecoderErrors(t *testing.T) {
	decoder, err := NewBinPositionDecoder(DecoderConfig{})
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	if decoder.CanDecode("") || decoder.CanDecode("0x12345678") {
		t.Fatalf("unexpected selector support")
	}

	for _, calldata := range []string{
		"",
		"0x",
		"0x8856",
		"0x12345678" + fixtureAddCalldata[10:],
		fixtureAddCalldata[:200],
		"not hex",
	} {
		_, err := decoder.Decode(calldata)
		var dErr *model.DecodingError
		if !errors.As(err, &dErr) {
			t.Fatalf("calldata %q: expected decoding error, got %v", calldata, err)
		}
	}
}
