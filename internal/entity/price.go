package entity

import "math/big"

// Price is an exact rational exchange rate between two tokens, expressed in
// raw units: Numerator raw quote units per Denominator raw base units.
type Price struct {
	Base        Token
	Quote       Token
	Numerator   *big.Int
	Denominator *big.Int
}

// NewPrice builds a price from a raw-unit ratio. Both integers are copied.
func NewPrice(base, quote Token, denominator, numerator *big.Int) Price {
	return Price{
		Base:        base,
		Quote:       quote,
		Numerator:   new(big.Int).Set(numerator),
		Denominator: new(big.Int).Set(denominator),
	}
}

// Cmp compares two prices by cross-multiplication, avoiding any rounding.
// Both prices must share the same base/quote orientation.
func (p Price) Cmp(other Price) int {
	left := new(big.Int).Mul(p.Numerator, other.Denominator)
	right := new(big.Int).Mul(other.Numerator, p.Denominator)
	return left.Cmp(right)
}

// Invert swaps the base and quote of the price.
func (p Price) Invert() Price {
	return Price{
		Base:        p.Quote,
		Quote:       p.Base,
		Numerator:   new(big.Int).Set(p.Denominator),
		Denominator: new(big.Int).Set(p.Numerator),
	}
}
