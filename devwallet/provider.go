package devwallet

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"

	"github.com/AlexZinkM/docuchain-wallet/internal/client"
	"github.com/AlexZinkM/docuchain-wallet/internal/common"
	keycrypto "github.com/AlexZinkM/docuchain-wallet/internal/crypto"
	"github.com/AlexZinkM/docuchain-wallet/internal/logger"
	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

// DefaultChainID is the chain a fresh development wallet starts on
const DefaultChainID uint64 = 1

// PasswordFunc supplies the password of a keyfile. An empty password means the user declined.
type PasswordFunc func(keyFile string) ([]byte, error)

// Provider is a wallet provider backed by local keyfiles.
// It only proves key ownership on unlock; it never signs anything.
type Provider struct {
	keyFiles []string
	password PasswordFunc
	logger   *zap.Logger

	mu       sync.Mutex
	accounts []string
	chainID  uint64
	chains   map[uint64]model.ChainDescriptor

	feed  event.Feed
	scope event.SubscriptionScope
}

var _ client.Provider = (*Provider)(nil)

// NewProvider creates a locked provider over keyFiles, sitting on chainID
func NewProvider(keyFiles []string, chainID uint64, password PasswordFunc, log *zap.Logger) *Provider {
	return &Provider{
		keyFiles: keyFiles,
		password: password,
		logger:   logger.OrNop(log),
		chainID:  chainID,
		chains:   map[uint64]model.ChainDescriptor{chainID: {}},
	}
}

// RequestAccounts unlocks every keyfile and returns their addresses.
// Already unlocked providers answer without prompting.
func (p *Provider) RequestAccounts(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	if len(p.accounts) > 0 {
		accounts := slices.Clone(p.accounts)
		p.mu.Unlock()
		return accounts, nil
	}
	p.mu.Unlock()

	accounts := make([]string, 0, len(p.keyFiles))
	for _, path := range p.keyFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		address, err := p.unlock(path)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(accounts, address) {
			accounts = append(accounts, address)
		}
	}

	p.mu.Lock()
	p.accounts = accounts
	p.mu.Unlock()

	p.logger.Info("development wallet unlocked", zap.Int("accounts", len(accounts)))
	return slices.Clone(accounts), nil
}

// Accounts returns the unlocked accounts, selected one first
func (p *Provider) Accounts(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.accounts), nil
}

func (p *Provider) ChainID(ctx context.Context) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chainID, nil
}

// SwitchChain moves to a registered chain and emits chainChanged
func (p *Provider) SwitchChain(ctx context.Context, chainID uint64) error {
	p.mu.Lock()
	if _, ok := p.chains[chainID]; !ok {
		p.mu.Unlock()
		return &client.ProviderError{
			Code:    client.CodeUnrecognizedChain,
			Message: fmt.Sprintf("Unrecognized chain ID %s", common.ChainIDHex(chainID)),
		}
	}
	changed := p.chainID != chainID
	p.chainID = chainID
	p.mu.Unlock()

	if changed {
		p.feed.Send(client.ProviderEvent{Kind: client.ChainChanged, ChainID: chainID})
	}
	return nil
}

// AddChain registers a chain so it can be switched to
func (p *Provider) AddChain(ctx context.Context, chain model.ChainDescriptor) error {
	if chain.ChainID == 0 {
		return &client.ProviderError{Code: -32602, Message: "chainId is required"}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.chains[uint64(chain.ChainID)] = chain
	p.logger.Info("chain added", zap.Uint64("chain_id", uint64(chain.ChainID)), zap.String("name", chain.ChainName))
	return nil
}

func (p *Provider) Subscribe(ctx context.Context, ch chan<- client.ProviderEvent) (event.Subscription, error) {
	return p.scope.Track(p.feed.Subscribe(ch)), nil
}

// SelectAccount makes address the selected account, as choosing it in a wallet UI would
func (p *Provider) SelectAccount(address string) error {
	address, err := common.NormalizeAddress(address)
	if err != nil {
		return err
	}

	p.mu.Lock()
	idx := slices.Index(p.accounts, address)
	if idx < 0 {
		p.mu.Unlock()
		return &client.ProviderError{Code: client.CodeUnauthorized, Message: "account is not unlocked"}
	}
	accounts := append([]string{address}, slices.Delete(slices.Clone(p.accounts), idx, idx+1)...)
	p.accounts = accounts
	p.mu.Unlock()

	p.feed.Send(client.ProviderEvent{Kind: client.AccountsChanged, Accounts: slices.Clone(accounts)})
	return nil
}

// Lock forgets the unlocked accounts and emits an empty accountsChanged
func (p *Provider) Lock() {
	p.mu.Lock()
	p.accounts = nil
	p.mu.Unlock()

	p.feed.Send(client.ProviderEvent{Kind: client.AccountsChanged, Accounts: []string{}})
}

// Close ends every subscription
func (p *Provider) Close() {
	p.scope.Close()
}

// unlock decrypts a keyfile and checks the key matches the recorded address
func (p *Provider) unlock(path string) (string, error) {
	password, err := p.password(path)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	defer clear(password)
	if len(password) == 0 {
		return "", &client.ProviderError{Code: client.CodeUserRejected, Message: "User rejected the request."}
	}

	keyFile, keyData, err := keycrypto.DecryptKey(path, password)
	if err != nil {
		if errors.Is(err, keycrypto.ErrInvalidPassword) {
			return "", &client.ProviderError{Code: client.CodeUnauthorized, Message: "invalid password"}
		}
		return "", fmt.Errorf("failed to unlock %s: %w", path, err)
	}
	defer clear(keyData.PrivateKey)

	key, err := crypto.ToECDSA(keyData.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("invalid key in %s: %w", path, err)
	}
	address, err := common.NormalizeAddress(crypto.PubkeyToAddress(key.PublicKey).Hex())
	if err != nil {
		return "", err
	}
	if !common.SameAddress(address, keyFile.Address) {
		return "", fmt.Errorf("keyfile %s: key does not match address %s", path, keyFile.Address)
	}
	return address, nil
}
