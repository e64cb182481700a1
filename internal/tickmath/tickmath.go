package tickmath

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
)

const (
	// MinTick is the minimum tick that may be passed to GetSqrtRatioAtTick.
	MinTick = -887272
	// MaxTick is the maximum tick that may be passed to GetSqrtRatioAtTick.
	MaxTick = 887272
)

var (
	// MinSqrtRatio is the sqrt ratio at MinTick.
	MinSqrtRatio = big.NewInt(4295128739)
	// MaxSqrtRatio is the sqrt ratio at MaxTick.
	MaxSqrtRatio = mustBig("1461446703485210103287273052203988822378723970342")

	// Q96 is 2^96, the scaling factor of a Q64.96 fixed-point number.
	Q96 = new(big.Int).Lsh(big.NewInt(1), 96)
	// Q192 is 2^192, the scaling factor of a squared Q64.96 number.
	Q192 = new(big.Int).Lsh(big.NewInt(1), 192)

	ErrInvalidTick      = errors.New("tick outside [MinTick, MaxTick]")
	ErrInvalidSqrtRatio = errors.New("sqrt ratio outside [MinSqrtRatio, MaxSqrtRatio)")
)

// sqrtRatioMultipliers[i] is sqrt(1/1.0001^(2^i)) as a UQ128.128 number,
// straight out of TickMath.sol.
var sqrtRatioMultipliers = [20]*uint256.Int{
	mustU256("0xfffcb933bd6fad37aa2d162d1a594001"),
	mustU256("0xfff97272373d413259a46990580e213a"),
	mustU256("0xfff2e50f5f656932ef12357cf3c7fdcc"),
	mustU256("0xffe5caca7e10e4e61c3624eaa0941cd0"),
	mustU256("0xffcb9843d60f6159c9db58835c926644"),
	mustU256("0xff973b41fa98c081472e6896dfb254c0"),
	mustU256("0xff2ea16466c96a3843ec78b326b52861"),
	mustU256("0xfe5dee046a99a2a811c461f1969c3053"),
	mustU256("0xfcbe86c7900a88aedcffc83b479aa3a4"),
	mustU256("0xf987a7253ac413176f2b074cf7815e54"),
	mustU256("0xf3392b0822b70005940c7a398e4b70f3"),
	mustU256("0xe7159475a2c29b7443b29c7fa6e889d9"),
	mustU256("0xd097f3bdfd2022b8845ad8f792aa5825"),
	mustU256("0xa9f746462d870fdf8a65dc1f90e061e5"),
	mustU256("0x70d869a156d2a1b890bb3df62baf32f7"),
	mustU256("0x31be135f97d08fd981231505542fcfa6"),
	mustU256("0x9aa508b5b7a84e1c677de54f3e99bc9"),
	mustU256("0x5d6af8dedb81196699c329225ee604"),
	mustU256("0x2216e584f5fa1ea926041bedfe98"),
	mustU256("0x48a170391f7dc42444e8fa2"),
}

var (
	u256One    = uint256.NewInt(1)
	u256Q128   = mustU256("0x100000000000000000000000000000000")
	u256Low32  = mustU256("0xffffffff")
	u256MaxInt = new(uint256.Int).Not(new(uint256.Int))

	logBase  = mustBig("255738958999603826347141")
	logLowC  = mustBig("3402992956809132418596140100660247210")
	logHighC = mustBig("291339464771989622907027621153398088495")
)

// GetSqrtRatioAtTick returns sqrt(1.0001^tick) * 2^96 as a Q64.96 number,
// computed by the same closed-form multiplier chain as TickMath.sol.
func GetSqrtRatioAtTick(tick int) (*big.Int, error) {
	if tick < MinTick || tick > MaxTick {
		return nil, ErrInvalidTick
	}

	absTick := tick
	if absTick < 0 {
		absTick = -absTick
	}

	ratio := new(uint256.Int)
	if absTick&1 != 0 {
		ratio.Set(sqrtRatioMultipliers[0])
	} else {
		ratio.Set(u256Q128)
	}
	for i := 1; i < len(sqrtRatioMultipliers); i++ {
		if absTick&(1<<i) != 0 {
			ratio.Mul(ratio, sqrtRatioMultipliers[i])
			ratio.Rsh(ratio, 128)
		}
	}

	if tick > 0 {
		ratio.Div(u256MaxInt, ratio)
	}

	// Down-convert from Q128.128 to Q64.96, rounding up. The rounding
	// direction matters: it guarantees GetTickAtSqrtRatio(result) == tick.
	rem := new(uint256.Int).And(ratio, u256Low32)
	ratio.Rsh(ratio, 32)
	if !rem.IsZero() {
		ratio.Add(ratio, u256One)
	}

	return ratio.ToBig(), nil
}

// GetTickAtSqrtRatio returns the greatest tick whose sqrt ratio is less than
// or equal to the input. It inverts GetSqrtRatioAtTick through a closed-form
// base-2 logarithm rather than a search, matching TickMath.sol bit for bit.
func GetTickAtSqrtRatio(sqrtRatioX96 *big.Int) (int, error) {
	if sqrtRatioX96.Cmp(MinSqrtRatio) < 0 || sqrtRatioX96.Cmp(MaxSqrtRatio) >= 0 {
		return 0, ErrInvalidSqrtRatio
	}

	ratio := new(uint256.Int)
	ratio.SetFromBig(sqrtRatioX96)
	ratio.Lsh(ratio, 32)

	msb := ratio.BitLen() - 1

	r := new(uint256.Int)
	if msb >= 128 {
		r.Rsh(ratio, uint(msb-127))
	} else {
		r.Lsh(ratio, uint(127-msb))
	}

	// log_2 in signed Q64.64. The fractional bits below 64 are zero here, so
	// the Solidity bitwise ORs in the loop are plain additions.
	log2 := big.NewInt(int64(msb) - 128)
	log2.Lsh(log2, 64)

	for shift := 63; shift >= 50; shift-- {
		r.Mul(r, r)
		r.Rsh(r, 127)
		if r.BitLen() > 128 {
			log2.Add(log2, new(big.Int).Lsh(big.NewInt(1), uint(shift)))
			r.Rsh(r, 1)
		}
	}

	logSqrt10001 := new(big.Int).Mul(log2, logBase)

	tickLow := new(big.Int).Sub(logSqrt10001, logLowC)
	tickLow.Rsh(tickLow, 128)
	tickHigh := new(big.Int).Add(logSqrt10001, logHighC)
	tickHigh.Rsh(tickHigh, 128)

	low := int(tickLow.Int64())
	high := int(tickHigh.Int64())
	if low == high {
		return low, nil
	}

	sqrtAtHigh, err := GetSqrtRatioAtTick(high)
	if err != nil {
		return 0, err
	}
	if sqrtAtHigh.Cmp(sqrtRatioX96) <= 0 {
		return high, nil
	}
	return low, nil
}

func mustBig(dec string) *big.Int {
	n, ok := new(big.Int).SetString(dec, 10)
	if !ok {
		panic("tickmath: bad decimal constant " + dec)
	}
	return n
}

func mustU256(hex string) *uint256.Int {
	n, ok := new(big.Int).SetString(hex[2:], 16)
	if !ok {
		panic("tickmath: bad hex constant " + hex)
	}
	return uint256.MustFromBig(n)
}
