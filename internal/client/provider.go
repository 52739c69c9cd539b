package client

import (
	"context"

	"github.com/ethereum/go-ethereum/event"

	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

// EventKind tells which provider event fired
type EventKind int

const (
	AccountsChanged EventKind = iota + 1
	ChainChanged
)

func (k EventKind) String() string {
	switch k {
	case AccountsChanged:
		return "accountsChanged"
	case ChainChanged:
		return "chainChanged"
	default:
		return "unknown"
	}
}

// ProviderEvent is a provider-originated notification
type ProviderEvent struct {
	Kind     EventKind
	Accounts []string
	ChainID  uint64
}

// Provider is an EIP-1193 style wallet provider.
// Accounts are returned in provider order; the first one is the selected account.
type Provider interface {
	// RequestAccounts prompts the user and returns the approved accounts
	RequestAccounts(ctx context.Context) ([]string, error)
	// Accounts returns the approved accounts without prompting
	Accounts(ctx context.Context) ([]string, error)
	ChainID(ctx context.Context) (uint64, error)
	// SwitchChain fails with CodeUnrecognizedChain when the chain is unknown to the provider
	SwitchChain(ctx context.Context, chainID uint64) error
	AddChain(ctx context.Context, chain model.ChainDescriptor) error
	// Subscribe delivers accountsChanged and chainChanged events to ch
	Subscribe(ctx context.Context, ch chan<- ProviderEvent) (event.Subscription, error)
}
