package abi

const (
	DapiNameHashToDataFeedId = "dapiNameHashToDataFeedId"
	DataFeedIdToDetails      = "dataFeedIdToDetails"
)

var api3ServerV1ABIJson = `
[
  {
    "inputs": [{"internalType": "bytes32", "name": "", "type": "bytes32"}],
    "name": "dapiNameHashToDataFeedId",
    "outputs": [{"internalType": "bytes32", "name": "", "type": "bytes32"}],
    "stateMutability": "view",
    "type": "function"
  }
]
`

var airseekerRegistryABIJson = `
[
  {
    "inputs": [{"internalType": "bytes32", "name": "dataFeedId", "type": "bytes32"}],
    "name": "dataFeedIdToDetails",
    "outputs": [{"internalType": "bytes", "name": "", "type": "bytes"}],
    "stateMutability": "view",
    "type": "function"
  }
]
`
