package dex

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"

	"binLiquidity/internal/model"
)

const fixtureAddCalldata = "0x8856809d" +
	"0000000000000000000000000000000000000000000000000000000000000020" +
	"000000000000000000000000a0cb889707d426a7a386870a03bc70d1b0697598" +
	"000000000000000000000000c7183455a4c133ae270771860664b6b7ec320bb1" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"000000000000000000000000f62849f9a0b5bf2913b396098f7c7019b51a820a" +
	"0000000000000000000000000000000000000000000000000000000000000bb8" +
	"00000000000000000000000000000000000000000000000000000000000a0000" +
	"0000000000000000000000000000000000000000000000000de0b6b3a7640000" +
	"0000000000000000000000000000000000000000000000000de0b6b3a7640000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000800000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000220" +
	"00000000000000000000000000000000000000000000000000000000000002a0" +
	"0000000000000000000000000000000000000000000000000000000000000320" +
	"0000000000000000000000001d96f2f6bef1202e4ce1ff6dad0c2cb002861d3e" +
	"0000000000000000000000000000000000000000000000000000000000000259" +
	"0000000000000000000000000000000000000000000000000000000000000003" +
	"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000001" +
	"0000000000000000000000000000000000000000000000000000000000000003" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"00000000000000000000000000000000000000000000000006f05b59d3b20000" +
	"00000000000000000000000000000000000000000000000006f05b59d3b20000" +
	"0000000000000000000000000000000000000000000000000000000000000003" +
	"00000000000000000000000000000000000000000000000006f05b59d3b20000" +
	"00000000000000000000000000000000000000000000000006f05b59d3b20000" +
	"0000000000000000000000000000000000000000000000000000000000000000"

const fixtureRemoveCalldata = "0x9264cb86" +
	"0000000000000000000000000000000000000000000000000000000000000020" +
	"000000000000000000000000a0cb889707d426a7a386870a03bc70d1b0697598" +
	"000000000000000000000000c7183455a4c133ae270771860664b6b7ec320bb1" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"000000000000000000000000f62849f9a0b5bf2913b396098f7c7019b51a820a" +
	"0000000000000000000000000000000000000000000000000000000000000bb8" +
	"00000000000000000000000000000000000000000000000000000000000a0000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"00000000000000000000000000000000000000000000000000000000000001a0" +
	"0000000000000000000000000000000000000000000000000000000000000220" +
	"000000000000000000000000328809bc894f92807417d2dad6b7c998c1afdac6" +
	"000000000000000000000000328809bc894f92807417d2dad6b7c998c1afdac6" +
	"0000000000000000000000000000000000000000000000000000000000000259" +
	"0000000000000000000000000000000000000000000000000000000000000003" +
	"00000000000000000000000000000000000000000000000000000000007fffff" +
	"0000000000000000000000000000000000000000000000000000000000800000" +
	"0000000000000000000000000000000000000000000000000000000000800001" +
	"0000000000000000000000000000000000000000000000000000000000000003" +
	"000000000000000006f05b59d3b2000000000000000000000000000000000000" +
	"00000000000000000de0b6b3a764000000000000000000000000000000000000" +
	"000000000000000006f2221926153ffffffffffffffffffffcd5fb353f360000"

func fixturePoolKey() model.PoolKey {
	return model.PoolKey{
		Currency0:   common.HexToAddress("0xa0Cb889707d426A7A386870A03bc70d1b0697598"),
		Currency1:   common.HexToAddress("0xc7183455a4C133Ae270771860664b6B7ec320bB1"),
		PoolManager: common.HexToAddress("0xF62849F9A0B5Bf2913b396098F7c7019b51A820a"),
		Fee:         3000,
		Parameters:  model.BinParameters{BinStep: 10},
	}
}

func bigInts(values ...int64) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = big.NewInt(v)
	}
	return out
}

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "parse %s", s)
	return v
}

func fixtureAddParams(t *testing.T) model.AddBinLiquidityParams {
	oneEther := mustBig(t, "1000000000000000000")
	half := mustBig(t, "500000000000000000")
	zero := big.NewInt(0)
	return model.AddBinLiquidityParams{
		PoolKey:         fixturePoolKey(),
		Amount0:         oneEther,
		Amount1:         oneEther,
		Amount0Min:      big.NewInt(0),
		Amount1Min:      big.NewInt(0),
		ActiveIDDesired: big.NewInt(1 << 23),
		IDSlippage:      big.NewInt(0),
		DeltaIDs:        bigInts(-1, 0, 1),
		DistributionX:   []*big.Int{zero, half, half},
		DistributionY:   []*big.Int{half, half, zero},
		To:              common.HexToAddress("0x1D96F2f6BeF1202E4Ce1Ff6Dad0c2CB002861d3e"),
		Deadline:        big.NewInt(601),
	}
}

func fixtureRemoveParams(t *testing.T) model.RemoveBinLiquidityParams {
	alice := common.HexToAddress("0x328809Bc894f92807417D2dAD6b7C998c1aFdac6")
	return model.RemoveBinLiquidityParams{
		PoolKey:    fixturePoolKey(),
		Amount0Min: big.NewInt(0),
		Amount1Min: big.NewInt(0),
		IDs:        bigInts(0x7fffff, 0x800000, 0x800001),
		Amounts: []*big.Int{
			mustBig(t, "170141183460469231731687303715884105728000000000000000000"),
			mustBig(t, "340282366920938463463374607431768211456000000000000000000"),
			mustBig(t, "170311324643929700963418991019599989833500000000000000000"),
		},
		From:     alice,
		To:       alice,
		Deadline: big.NewInt(601),
	}
}

func TestBinPoolAddLiquidityCalldataFixture(t *testing.T) {
	calldata, err := BinPoolAddLiquidityCalldata(fixtureAddParams(t))
	require.NoError(t, err)
	require.Equal(t, fixtureAddCalldata, calldata)
}

func TestBinPoolRemoveLiquidityCalldataFixture(t *testing.T) {
	calldata, err := BinPoolRemoveLiquidityCalldata(fixtureRemoveParams(t))
	require.NoError(t, err)
	require.Equal(t, fixtureRemoveCalldata, calldata)
}

func TestSelectorsMatchABI(t *testing.T) {
	parsed, err := BinPositionManagerABI()
	require.NoError(t, err)

	require.Equal(t, AddLiquiditySelector[:], parsed.Methods[MethodAddLiquidity].ID)
	require.Equal(t, RemoveLiquiditySelector[:], parsed.Methods[MethodRemoveLiquidity].ID)
	require.NotEqual(t, AddLiquiditySelector, RemoveLiquiditySelector)
	require.Equal(t, "0x8856809d", SelectorHex(AddLiquiditySelector))
	require.Equal(t, "0x9264cb86", SelectorHex(RemoveLiquiditySelector))
}

func TestEncodeDeterministic(t *testing.T) {
	first, err := EncodeAddLiquidity(fixtureAddParams(t))
	require.NoError(t, err)
	second, err := EncodeAddLiquidity(fixtureAddParams(t))
	require.NoError(t, err)
	require.True(t, bytes.Equal(first, second))
	require.True(t, bytes.HasPrefix(first, AddLiquiditySelector[:]))

	removal, err := EncodeRemoveLiquidity(fixtureRemoveParams(t))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(removal, RemoveLiquiditySelector[:]))
}

func TestAddLiquidityRoundTrip(t *testing.T) {
	params := fixtureAddParams(t)
	params.PoolKey.Hooks = common.HexToAddress("0x00000000000000000000000000000000000000ff")
	params.PoolKey.Parameters = model.BinParameters{BinStep: 25, HooksRegistration: 0x0041}
	params.Amount0Min = big.NewInt(12345)
	params.IDSlippage = big.NewInt(3)
	params.DeltaIDs = bigInts(-3, -2, -1, 0, 1)
	params.DistributionX = bigInts(0, 0, 0, 1, 2)
	params.DistributionY = bigInts(4, 5, 6, 7, 0)

	data, err := EncodeAddLiquidity(params)
	require.NoError(t, err)

	decoded, err := DecodeAddLiquidity(data)
	require.NoError(t, err)
	require.Equal(t, params, decoded)
}

func TestRemoveLiquidityRoundTrip(t *testing.T) {
	params := fixtureRemoveParams(t)
	data, err := hexutil.Decode(fixtureRemoveCalldata)
	require.NoError(t, err)

	decoded, err := DecodeRemoveLiquidity(data)
	require.NoError(t, err)
	require.Equal(t, params, decoded)
}

func TestDecodeAddLiquidityFixture(t *testing.T) {
	data, err := hexutil.Decode(fixtureAddCalldata)
	require.NoError(t, err)

	decoded, err := DecodeAddLiquidity(data)
	require.NoError(t, err)
	require.Equal(t, fixtureAddParams(t), decoded)
}

func TestEncodeEmptyBins(t *testing.T) {
	add := fixtureAddParams(t)
	add.DeltaIDs = []*big.Int{}
	add.DistributionX = []*big.Int{}
	add.DistributionY = []*big.Int{}

	data, err := EncodeAddLiquidity(add)
	require.NoError(t, err)
	require.Len(t, data, addLiquidityHeadSize+3*word)

	decoded, err := DecodeAddLiquidity(data)
	require.NoError(t, err)
	require.Empty(t, decoded.DeltaIDs)
	require.Empty(t, decoded.DistributionX)
	require.Empty(t, decoded.DistributionY)

	remove := fixtureRemoveParams(t)
	remove.IDs = nil
	remove.Amounts = nil
	data, err = EncodeRemoveLiquidity(remove)
	require.NoError(t, err)
	require.Len(t, data, removeLiquidityHeadSize+2*word)
}

func TestEncodeNilAmountsAsZero(t *testing.T) {
	params := fixtureRemoveParams(t)
	params.Amount0Min = nil
	params.Amount1Min = nil

	calldata, err := BinPoolRemoveLiquidityCalldata(params)
	require.NoError(t, err)
	require.Equal(t, fixtureRemoveCalldata, calldata)
}

func TestEncodeValidationErrors(t *testing.T) {
	add := fixtureAddParams(t)
	add.DistributionX = add.DistributionX[:2]
	_, err := EncodeAddLiquidity(add)
	var vErr *model.ValidationError
	require.True(t, errors.As(err, &vErr), "got %v", err)

	remove := fixtureRemoveParams(t)
	remove.Amounts = remove.Amounts[:1]
	_, err = EncodeRemoveLiquidity(remove)
	require.True(t, errors.As(err, &vErr), "got %v", err)

	remove = fixtureRemoveParams(t)
	remove.PoolKey.Currency0, remove.PoolKey.Currency1 = remove.PoolKey.Currency1, remove.PoolKey.Currency0
	_, err = EncodeRemoveLiquidity(remove)
	require.True(t, errors.As(err, &vErr), "got %v", err)
}

func TestEncodeOverflowErrors(t *testing.T) {
	maxUint128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	overflow128 := new(big.Int).Lsh(big.NewInt(1), 128)
	overflow256 := new(big.Int).Lsh(big.NewInt(1), 256)

	cases := []struct {
		name  string
		field string
		edit  func(p *model.AddBinLiquidityParams)
	}{
		{"fee", "pool_key.fee", func(p *model.AddBinLiquidityParams) { p.PoolKey.Fee = model.MaxFee + 1 }},
		{"amount0", "amount0", func(p *model.AddBinLiquidityParams) { p.Amount0 = overflow128 }},
		{"negative amount1", "amount1", func(p *model.AddBinLiquidityParams) { p.Amount1 = big.NewInt(-1) }},
		{"active id", "active_id_desired", func(p *model.AddBinLiquidityParams) { p.ActiveIDDesired = big.NewInt(1 << 24) }},
		{"deadline", "deadline", func(p *model.AddBinLiquidityParams) { p.Deadline = overflow256 }},
		{"delta", "delta_ids[2]", func(p *model.AddBinLiquidityParams) {
			p.DeltaIDs = []*big.Int{big.NewInt(-1), big.NewInt(0), new(big.Int).Lsh(big.NewInt(1), 255)}
		}},
		{"distribution", "distribution_y[0]", func(p *model.AddBinLiquidityParams) {
			p.DistributionY = []*big.Int{overflow256, big.NewInt(0), big.NewInt(0)}
		}},
	}

	for _, tc := range cases {
		params := fixtureAddParams(t)
		tc.edit(&params)
		_, err := EncodeAddLiquidity(params)
		var eErr *model.EncodingError
		require.True(t, errors.As(err, &eErr), "%s: got %v", tc.name, err)
		require.Equal(t, tc.field, eErr.Field, tc.name)
	}

	params := fixtureAddParams(t)
	params.Amount0 = maxUint128
	_, err := EncodeAddLiquidity(params)
	require.NoError(t, err)

	remove := fixtureRemoveParams(t)
	remove.IDs = bigInts(0x7fffff, 0x800000, 1<<24)
	_, err = EncodeRemoveLiquidity(remove)
	var eErr *model.EncodingError
	require.True(t, errors.As(err, &eErr), "got %v", err)
	require.Equal(t, "ids[2]", eErr.Field)
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	add, err := hexutil.Decode(fixtureAddCalldata)
	require.NoError(t, err)
	remove, err := hexutil.Decode(fixtureRemoveCalldata)
	require.NoError(t, err)

	truncatedTail := add[:len(add)-word]
	badOffset := append([]byte(nil), remove...)
	// ids offset slot, pointed past the buffer end
	copy(badOffset[4+word*9:4+word*10], common.LeftPadBytes(big.NewInt(0x10000).Bytes(), word))
	hugeLength := append([]byte(nil), remove...)
	// ids length word at tuple offset 0x1a0
	copy(hugeLength[4+word+0x1a0:4+word+0x1a0+word], common.LeftPadBytes(big.NewInt(1<<40).Bytes(), word))
	wideFee := append([]byte(nil), remove...)
	wideFee[4+word*6-4] = 0x01
	dirtyAddress := append([]byte(nil), add...)
	// high padding of the currency0 word
	for i := 4 + word; i < 4+word+12; i++ {
		dirtyAddress[i] = 0xff
	}
	trailing := append(append([]byte(nil), add...), 0x00, 0x00)
	removeTrailing := append(append([]byte(nil), remove...), make([]byte, word)...)
	dirtyTo := append([]byte(nil), remove...)
	// high padding of the to word
	dirtyTo[4+word*12] = 0x01

	cases := []struct {
		name   string
		decode func([]byte) error
		data   []byte
	}{
		{"empty", decodeAdd, nil},
		{"selector only", decodeAdd, add[:4]},
		{"wrong selector", decodeAdd, remove},
		{"short head", decodeAdd, add[:addLiquidityHeadSize-1]},
		{"truncated tail", decodeAdd, truncatedTail},
		{"remove wrong selector", decodeRemove, add},
		{"remove short head", decodeRemove, remove[:removeLiquidityHeadSize-1]},
		{"offset past end", decodeRemove, badOffset},
		{"length past end", decodeRemove, hugeLength},
		{"fee wider than uint24", decodeRemove, wideFee},
		{"dirty address padding", decodeAdd, dirtyAddress},
		{"trailing bytes", decodeAdd, trailing},
		{"remove trailing word", decodeRemove, removeTrailing},
		{"remove dirty recipient", decodeRemove, dirtyTo},
	}

	for _, tc := range cases {
		err := tc.decode(tc.data)
		var dErr *model.DecodingError
		require.True(t, errors.As(err, &dErr), "%s: got %v", tc.name, err)
	}
}

func decodeAdd(data []byte) error {
	_, err := DecodeAddLiquidity(data)
	return err
}

func decodeRemove(data []byte) error {
	_, err := DecodeRemoveLiquidity(data)
	return err
}

func TestParseCalldata(t *testing.T) {
	_, err := ParseCalldata("0xzz")
	var dErr *model.DecodingError
	require.True(t, errors.As(err, &dErr))

	data, err := ParseCalldata(strings.ToUpper(fixtureAddCalldata[2:10]))
	require.Error(t, err)
	require.Nil(t, data)
}
