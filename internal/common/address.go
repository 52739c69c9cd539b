package common

import (
	"fmt"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ZeroAddress is the sentinel address meaning "no wallet attached"
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// NormalizeAddress validates a 0x-prefixed 40-hex wallet address and returns it lower-cased
func NormalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !strings.HasPrefix(address, "0x") && !strings.HasPrefix(address, "0X") {
		return "", fmt.Errorf("invalid wallet address %q: missing 0x prefix", address)
	}
	if !ethcommon.IsHexAddress(address) {
		return "", fmt.Errorf("invalid wallet address %q", address)
	}
	return strings.ToLower(ethcommon.HexToAddress(address).Hex()), nil
}

// IsZeroAddress reports whether address is the sentinel zero address (or empty)
func IsZeroAddress(address string) bool {
	if address == "" {
		return true
	}
	normalized, err := NormalizeAddress(address)
	if err != nil {
		return false
	}
	return normalized == ZeroAddress
}

// SameAddress compares two addresses case-insensitively.
// Malformed input never matches.
func SameAddress(a, b string) bool {
	na, err := NormalizeAddress(a)
	if err != nil {
		return false
	}
	nb, err := NormalizeAddress(b)
	if err != nil {
		return false
	}
	return na == nb
}

// ShortAddress renders an address for display, e.g. "0x1203...2208"
func ShortAddress(address string) string {
	if len(address) != 42 {
		return address
	}
	return address[:6] + "..." + address[38:]
}

// ChainIDHex encodes a chain id the way EIP-1193 providers report it ("0xaa36a7")
func ChainIDHex(chainID uint64) string {
	return hexutil.EncodeUint64(chainID)
}

// ParseChainID decodes a provider chain id ("0xaa36a7")
func ParseChainID(s string) (uint64, error) {
	id, err := hexutil.DecodeUint64(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return 0, fmt.Errorf("invalid chain id %q: %w", s, err)
	}
	return id, nil
}
