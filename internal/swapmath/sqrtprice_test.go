package swapmath

import (
	"math/big"
	"testing"

	"tickQuoter/internal/tickmath"
)

func q96Times(num, den int64) *big.Int {
	out := new(big.Int).Mul(tickmath.Q96, big.NewInt(num))
	return out.Div(out, big.NewInt(den))
}

func TestGetNextSqrtPriceFromInputZeroAmount(t *testing.T) {
	price := q96Times(1, 1)
	got, err := GetNextSqrtPriceFromInput(price, big.NewInt(1000), big.NewInt(0), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cmp(price) != 0 {
		t.Fatalf("price moved on zero input: %s", got)
	}
}

func TestGetNextSqrtPriceFromInputInvalid(t *testing.T) {
	if _, err := GetNextSqrtPriceFromInput(big.NewInt(0), big.NewInt(1000), big.NewInt(1), true); err != ErrZeroSqrtPrice {
		t.Fatalf("expected ErrZeroSqrtPrice, got %v", err)
	}
	if _, err := GetNextSqrtPriceFromInput(q96Times(1, 1), big.NewInt(0), big.NewInt(1), true); err != ErrZeroLiquidity {
		t.Fatalf("expected ErrZeroLiquidity, got %v", err)
	}
}

func TestGetNextSqrtPriceFromInputDirections(t *testing.T) {
	price := q96Times(1, 1)
	liquidity := big.NewInt(1000)
	amount := big.NewInt(100)

	down, err := GetNextSqrtPriceFromInput(price, liquidity, amount, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if down.Cmp(price) >= 0 {
		t.Fatalf("token0 input must lower the price: %s", down)
	}

	up, err := GetNextSqrtPriceFromInput(price, liquidity, amount, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if up.Cmp(price) <= 0 {
		t.Fatalf("token1 input must raise the price: %s", up)
	}
}

func TestGetNextSqrtPriceFromAmount1RemoveTooMuch(t *testing.T) {
	price := q96Times(1, 1)
	// Removing more token1 than the range holds would push the price
	// through zero.
	if _, err := GetNextSqrtPriceFromAmount1RoundingDown(price, big.NewInt(1), big.NewInt(1<<32), false); err != ErrPriceOverflow {
		t.Fatalf("expected ErrPriceOverflow, got %v", err)
	}
}

func TestGetNextSqrtPriceFromAmount0RemoveTooMuch(t *testing.T) {
	price := q96Times(1, 1)
	if _, err := GetNextSqrtPriceFromAmount0RoundingUp(price, big.NewInt(1), big.NewInt(2), false); err != ErrPriceOverflow {
		t.Fatalf("expected ErrPriceOverflow, got %v", err)
	}
}

func TestGetAmount0DeltaRounding(t *testing.T) {
	a := q96Times(1, 1)
	b := q96Times(2, 1)
	liquidity := big.NewInt(1001)

	// The exact amount is 500.5, so the two rounding directions differ by
	// one.
	up, err := GetAmount0Delta(a, b, liquidity, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if up.Cmp(big.NewInt(501)) != 0 {
		t.Fatalf("round up mismatch: %s", up)
	}

	down, err := GetAmount0Delta(a, b, liquidity, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if down.Cmp(big.NewInt(500)) != 0 {
		t.Fatalf("round down mismatch: %s", down)
	}
}

func TestGetAmount0DeltaOrderIndependent(t *testing.T) {
	a := q96Times(1, 1)
	b := q96Times(2, 1)
	liquidity := big.NewInt(1000)

	first, err := GetAmount0Delta(a, b, liquidity, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := GetAmount0Delta(b, a, liquidity, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Cmp(second) != 0 {
		t.Fatalf("delta depends on argument order: %s != %s", first, second)
	}
}

func TestGetAmount0DeltaZeroPrice(t *testing.T) {
	if _, err := GetAmount0Delta(big.NewInt(0), q96Times(1, 1), big.NewInt(1000), true); err != ErrZeroSqrtPrice {
		t.Fatalf("expected ErrZeroSqrtPrice, got %v", err)
	}
}

func TestGetAmount1DeltaRounding(t *testing.T) {
	a := q96Times(1, 1)
	b := q96Times(3, 2)
	liquidity := big.NewInt(1001)

	// 1001 * 0.5 = 500.5.
	if up := GetAmount1Delta(a, b, liquidity, true); up.Cmp(big.NewInt(501)) != 0 {
		t.Fatalf("round up mismatch: %s", up)
	}
	if down := GetAmount1Delta(a, b, liquidity, false); down.Cmp(big.NewInt(500)) != 0 {
		t.Fatalf("round down mismatch: %s", down)
	}
}
