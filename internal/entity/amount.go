package entity

import "math/big"

// CurrencyAmount pairs a token with a raw integer amount in the token's
// smallest unit.
type CurrencyAmount struct {
	Token Token
	Raw   *big.Int
}

// FromRawAmount builds a currency amount from a raw integer value.
// The value is copied.
func FromRawAmount(token Token, raw *big.Int) CurrencyAmount {
	return CurrencyAmount{Token: token, Raw: new(big.Int).Set(raw)}
}

// FromRawInt64 builds a currency amount from an int64, mostly for tests
// and small fixed quantities.
func FromRawInt64(token Token, raw int64) CurrencyAmount {
	return CurrencyAmount{Token: token, Raw: big.NewInt(raw)}
}
