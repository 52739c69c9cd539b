package model

import "github.com/ethereum/go-ethereum/common/hexutil"

// NativeCurrency describes the gas token of a chain
type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// ChainDescriptor is the wallet_addEthereumChain parameter (EIP-3085)
type ChainDescriptor struct {
	ChainID           hexutil.Uint64 `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls,omitempty"`
}

// SwitchChainParam is the wallet_switchEthereumChain parameter (EIP-3326)
type SwitchChainParam struct {
	ChainID hexutil.Uint64 `json:"chainId"`
}
