package chain

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// TickLensAddress is the canonical deployment of the periphery TickLens
// contract, which returns every populated tick of one bitmap word in a
// single eth_call.
var TickLensAddress = common.HexToAddress("0xbfd8137f7d1516D3ea5cA83523914859ec47F573")

const v3PoolABIJSON = `[
  {"inputs": [], "name": "token0", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "token1", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "fee", "outputs": [{"internalType": "uint24", "name": "", "type": "uint24"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "tickSpacing", "outputs": [{"internalType": "int24", "name": "", "type": "int24"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "liquidity", "outputs": [{"internalType": "uint128", "name": "", "type": "uint128"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"internalType": "int16", "name": "", "type": "int16"}], "name": "tickBitmap", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "slot0", "outputs": [
    {"internalType": "uint160", "name": "sqrtPriceX96", "type": "uint160"},
    {"internalType": "int24", "name": "tick", "type": "int24"},
    {"internalType": "uint16", "name": "observationIndex", "type": "uint16"},
    {"internalType": "uint16", "name": "observationCardinality", "type": "uint16"},
    {"internalType": "uint16", "name": "observationCardinalityNext", "type": "uint16"},
    {"internalType": "uint8", "name": "feeProtocol", "type": "uint8"},
    {"internalType": "bool", "name": "unlocked", "type": "bool"}
  ], "stateMutability": "view", "type": "function"}
]`

const tickLensABIJSON = `[
  {"inputs": [
    {"internalType": "address", "name": "pool", "type": "address"},
    {"internalType": "int16", "name": "tickBitmapIndex", "type": "int16"}
  ], "name": "getPopulatedTicksInWord", "outputs": [
    {"components": [
      {"internalType": "int24", "name": "tick", "type": "int24"},
      {"internalType": "int128", "name": "liquidityNet", "type": "int128"},
      {"internalType": "uint128", "name": "liquidityGross", "type": "uint128"}
    ], "internalType": "struct ITickLens.PopulatedTick[]", "name": "populatedTicks", "type": "tuple[]"}
  ], "stateMutability": "view", "type": "function"}
]`

const erc20ABIJSON = `[
  {"inputs": [], "name": "decimals", "outputs": [{"type": "uint8"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "name", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"}
]`

var (
	v3PoolABI      abi.ABI
	v3PoolABIOnce  sync.Once
	v3PoolABIErr   error
	tickLensABI    abi.ABI
	tickLensOnce   sync.Once
	tickLensErr    error
	erc20ABI       abi.ABI
	erc20ABIOnce   sync.Once
	erc20ABIErr    error
)

func v3PoolABIInstance() (abi.ABI, error) {
	v3PoolABIOnce.Do(func() {
		v3PoolABI, v3PoolABIErr = abi.JSON(strings.NewReader(v3PoolABIJSON))
	})
	return v3PoolABI, v3PoolABIErr
}

func tickLensABIInstance() (abi.ABI, error) {
	tickLensOnce.Do(func() {
		tickLensABI, tickLensErr = abi.JSON(strings.NewReader(tickLensABIJSON))
	})
	return tickLensABI, tickLensErr
}

func erc20ABIInstance() (abi.ABI, error) {
	erc20ABIOnce.Do(func() {
		erc20ABI, erc20ABIErr = abi.JSON(strings.NewReader(erc20ABIJSON))
	})
	return erc20ABI, erc20ABIErr
}
