package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"tickQuoter/internal/entity"
)

// Canonical mainnet deployment parameters for pool address derivation.
var (
	FactoryAddress   = common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984")
	PoolInitCodeHash = common.HexToHash("0xe34f199b19b2b4f47f68442619d555527d244f78a3297ea89325f843f87b8b54")
)

// ComputeAddress derives the CREATE2 pool address for a token pair and fee
// tier. Zero values for factory and initCodeHash select the canonical
// mainnet deployment.
func ComputeAddress(factory common.Address, tokenA, tokenB entity.Token, fee FeeTier, initCodeHash common.Hash) (common.Address, error) {
	aFirst, err := tokenA.SortsBefore(tokenB)
	if err != nil {
		return common.Address{}, err
	}
	token0, token1 := tokenA, tokenB
	if !aFirst {
		token0, token1 = tokenB, tokenA
	}

	if factory == (common.Address{}) {
		factory = FactoryAddress
	}
	if initCodeHash == (common.Hash{}) {
		initCodeHash = PoolInitCodeHash
	}

	// abi.encode(token0, token1, fee): three left-padded 32-byte words.
	encoded := make([]byte, 96)
	copy(encoded[12:32], token0.Address[:])
	copy(encoded[44:64], token1.Address[:])
	feeBytes := new(big.Int).SetInt64(fee.Fee).Bytes()
	copy(encoded[96-len(feeBytes):], feeBytes)
	salt := crypto.Keccak256(encoded)

	// CREATE2: keccak256(0xff ++ factory ++ salt ++ initCodeHash)[12:].
	payload := make([]byte, 0, 85)
	payload = append(payload, 0xff)
	payload = append(payload, factory[:]...)
	payload = append(payload, salt...)
	payload = append(payload, initCodeHash[:]...)

	return common.BytesToAddress(crypto.Keccak256(payload)[12:]), nil
}

// Address returns the canonical on-chain address of this pool.
func (p *Pool) Address() (common.Address, error) {
	return ComputeAddress(common.Address{}, p.Token0, p.Token1, p.Fee, common.Hash{})
}
