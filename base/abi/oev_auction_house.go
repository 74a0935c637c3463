package abi

const (
	PlaceBidWithExpiration       = "placeBidWithExpiration"
	Bids                         = "bids"
	ReportFulfillment            = "reportFulfillment"
	AwardedBidEvent              = "AwardedBid"
	ConfirmedFulfillmentEvent    = "ConfirmedFulfillment"
	ContradictedFulfillmentEvent = "ContradictedFulfillment"
)

var oevAuctionHouseABIJson = `
[
  {
    "inputs": [
      {"internalType": "bytes32", "name": "bidTopic", "type": "bytes32"},
      {"internalType": "uint256", "name": "chainId", "type": "uint256"},
      {"internalType": "uint256", "name": "bidAmount", "type": "uint256"},
      {"internalType": "bytes", "name": "bidDetails", "type": "bytes"},
      {"internalType": "uint256", "name": "maxCollateralAmount", "type": "uint256"},
      {"internalType": "uint256", "name": "maxProtocolFeeAmount", "type": "uint256"},
      {"internalType": "uint32", "name": "expirationTimestamp", "type": "uint32"}
    ],
    "name": "placeBidWithExpiration",
    "outputs": [
      {"internalType": "uint256", "name": "collateralAmount", "type": "uint256"},
      {"internalType": "uint256", "name": "protocolFeeAmount", "type": "uint256"}
    ],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "bytes32", "name": "", "type": "bytes32"}],
    "name": "bids",
    "outputs": [
      {"internalType": "enum IOevAuctionHouse.BidStatus", "name": "status", "type": "uint8"},
      {"internalType": "uint32", "name": "expirationTimestamp", "type": "uint32"},
      {"internalType": "uint104", "name": "collateralAmount", "type": "uint104"},
      {"internalType": "uint104", "name": "protocolFeeAmount", "type": "uint104"}
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "bytes32", "name": "bidTopic", "type": "bytes32"},
      {"internalType": "bytes32", "name": "bidDetailsHash", "type": "bytes32"},
      {"internalType": "bytes", "name": "fulfillmentDetails", "type": "bytes"}
    ],
    "name": "reportFulfillment",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "bidder", "type": "address"},
      {"indexed": true, "internalType": "bytes32", "name": "bidTopic", "type": "bytes32"},
      {"indexed": true, "internalType": "bytes32", "name": "bidId", "type": "bytes32"},
      {"indexed": false, "internalType": "bytes", "name": "awardDetails", "type": "bytes"},
      {"indexed": false, "internalType": "uint256", "name": "bidderBalance", "type": "uint256"}
    ],
    "name": "AwardedBid",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "bidder", "type": "address"},
      {"indexed": true, "internalType": "bytes32", "name": "bidTopic", "type": "bytes32"},
      {"indexed": true, "internalType": "bytes32", "name": "bidId", "type": "bytes32"},
      {"indexed": false, "internalType": "uint256", "name": "bidderBalance", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "accumulatedProtocolFees", "type": "uint256"}
    ],
    "name": "ConfirmedFulfillment",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "bidder", "type": "address"},
      {"indexed": true, "internalType": "bytes32", "name": "bidTopic", "type": "bytes32"},
      {"indexed": true, "internalType": "bytes32", "name": "bidId", "type": "bytes32"},
      {"indexed": false, "internalType": "uint256", "name": "bidderBalance", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "accumulatedSlashedCollateral", "type": "uint256"}
    ],
    "name": "ContradictedFulfillment",
    "type": "event"
  }
]
`
