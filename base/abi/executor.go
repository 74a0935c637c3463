package abi

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
)

const PayBidAndUpdateFeed = "payBidAndUpdateFeed"

// the three executor flavours share the entry point and differ in callbackData
var feedUpdaterABIJson = payBidABI(`{"internalType": "bytes[]", "name": "signedData", "type": "bytes[]"}`)

var liquidatorABIJson = payBidABI(`
  {"internalType": "bytes[]", "name": "signedData", "type": "bytes[]"},
  {"internalType": "address", "name": "collateralAsset", "type": "address"},
  {"internalType": "address", "name": "debtAsset", "type": "address"},
  {"internalType": "address", "name": "user", "type": "address"},
  {"internalType": "uint256", "name": "debtToCover", "type": "uint256"}`)

var flashLiquidatorABIJson = payBidABI(`
  {"internalType": "bytes[]", "name": "signedData", "type": "bytes[]"},
  {
    "components": [
      {"internalType": "address", "name": "collateralAsset", "type": "address"},
      {"internalType": "address", "name": "debtAsset", "type": "address"},
      {"internalType": "address", "name": "user", "type": "address"},
      {"internalType": "uint256", "name": "debtToCover", "type": "uint256"}
    ],
    "internalType": "struct LiquidationParams",
    "name": "liquidationParams",
    "type": "tuple"
  }`)

func payBidABI(callbackComponents string) string {
	return `
[
  {
    "inputs": [
      {
        "components": [
          {"internalType": "uint32", "name": "signedDataTimestampCutoff", "type": "uint32"},
          {"internalType": "bytes", "name": "signature", "type": "bytes"},
          {"internalType": "uint256", "name": "bidAmount", "type": "uint256"},
          {
            "components": [` + callbackComponents + `],
            "internalType": "struct CallbackData",
            "name": "callbackData",
            "type": "tuple"
          }
        ],
        "internalType": "struct PayOevBidCallbackData",
        "name": "args",
        "type": "tuple"
      }
    ],
    "name": "payBidAndUpdateFeed",
    "outputs": [],
    "stateMutability": "payable",
    "type": "function"
  }
]
`
}

// SignedDataArgs encodes the per-source payload sent to the executor:
// abi.encode(address airnode, bytes32 templateId, uint256 timestamp, bytes data, bytes signature)
var SignedDataArgs = abi.Arguments{
	{Type: mustType("address")},
	{Type: mustType("bytes32")},
	{Type: mustType("uint256")},
	{Type: mustType("bytes")},
	{Type: mustType("bytes")},
}

// BidDetailsArgs is abi.encode(address beneficiary, bytes32 nonce)
var BidDetailsArgs = abi.Arguments{
	{Type: mustType("address")},
	{Type: mustType("bytes32")},
}

// BeaconSetArgs decodes AirseekerRegistry details: (address[] airnodes, bytes32[] templateIds)
var BeaconSetArgs = abi.Arguments{
	{Type: mustType("address[]")},
	{Type: mustType("bytes32[]")},
}

// BeaconArgs decodes single beacon details: (address airnode, bytes32 templateId)
var BeaconArgs = abi.Arguments{
	{Type: mustType("address")},
	{Type: mustType("bytes32")},
}

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic("Failed to build abi type " + t + ": " + err.Error())
	}
	return typ
}
