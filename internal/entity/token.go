package entity

import (
	"bytes"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrChainMismatch is returned when two tokens live on different chains.
	ErrChainMismatch = errors.New("tokens are on different chains")
	// ErrSameAddress is returned when two distinct tokens share an address.
	ErrSameAddress = errors.New("tokens have the same address")
)

// Token identifies an ERC-20 token on a specific chain.
type Token struct {
	ChainID  uint64
	Address  common.Address
	Decimals uint8
	Symbol   string
	Name     string
}

// NewToken builds a token from its chain id, address, and decimals.
func NewToken(chainID uint64, address common.Address, decimals uint8, symbol, name string) Token {
	return Token{
		ChainID:  chainID,
		Address:  address,
		Decimals: decimals,
		Symbol:   symbol,
		Name:     name,
	}
}

// Equal reports whether two tokens refer to the same asset.
// Decimals and display metadata do not participate in identity.
func (t Token) Equal(other Token) bool {
	return t.ChainID == other.ChainID && t.Address == other.Address
}

// SortsBefore reports whether this token sorts before the other by address.
// Both tokens must be on the same chain and have distinct addresses.
func (t Token) SortsBefore(other Token) (bool, error) {
	if t.ChainID != other.ChainID {
		return false, ErrChainMismatch
	}
	cmp := bytes.Compare(t.Address[:], other.Address[:])
	if cmp == 0 {
		return false, ErrSameAddress
	}
	return cmp < 0, nil
}
