package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/AlexZinkM/docuchain-wallet/internal/logger"
	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

// RPCProvider talks to an external wallet over JSON-RPC (ws, ipc or http).
// Event subscriptions need a transport with notifications.
type RPCProvider struct {
	client *rpc.Client
	logger *zap.Logger
}

// DialProvider connects to a wallet endpoint
func DialProvider(ctx context.Context, url string, logger *zap.Logger) (*RPCProvider, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return NewRPCProvider(c, logger), nil
}

// NewRPCProvider wraps an existing rpc client
func NewRPCProvider(c *rpc.Client, log *zap.Logger) *RPCProvider {
	return &RPCProvider{client: c, logger: logger.OrNop(log)}
}

// Close closes the underlying connection
func (p *RPCProvider) Close() {
	p.client.Close()
}

func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := p.call(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (p *RPCProvider) Accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := p.call(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (p *RPCProvider) ChainID(ctx context.Context) (uint64, error) {
	var id hexutil.Uint64
	if err := p.call(ctx, &id, "eth_chainId"); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (p *RPCProvider) SwitchChain(ctx context.Context, chainID uint64) error {
	return p.call(ctx, nil, "wallet_switchEthereumChain", model.SwitchChainParam{ChainID: hexutil.Uint64(chainID)})
}

func (p *RPCProvider) AddChain(ctx context.Context, chain model.ChainDescriptor) error {
	return p.call(ctx, nil, "wallet_addEthereumChain", chain)
}

// Subscribe opens eth_subscribe streams for accountsChanged and chainChanged
// and merges them into ch until the subscription is cancelled.
func (p *RPCProvider) Subscribe(ctx context.Context, ch chan<- ProviderEvent) (event.Subscription, error) {
	accountsCh := make(chan []string)
	accountsSub, err := p.client.EthSubscribe(ctx, accountsCh, "accountsChanged")
	if err != nil {
		return nil, wrapRPCError("eth_subscribe", err)
	}

	chainCh := make(chan hexutil.Uint64)
	chainSub, err := p.client.EthSubscribe(ctx, chainCh, "chainChanged")
	if err != nil {
		accountsSub.Unsubscribe()
		return nil, wrapRPCError("eth_subscribe", err)
	}

	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer accountsSub.Unsubscribe()
		defer chainSub.Unsubscribe()

		for {
			var ev ProviderEvent
			select {
			case accounts := <-accountsCh:
				ev = ProviderEvent{Kind: AccountsChanged, Accounts: accounts}
			case id := <-chainCh:
				ev = ProviderEvent{Kind: ChainChanged, ChainID: uint64(id)}
			case err := <-accountsSub.Err():
				p.logger.Warn("accountsChanged subscription ended", zap.Error(err))
				return err
			case err := <-chainSub.Err():
				p.logger.Warn("chainChanged subscription ended", zap.Error(err))
				return err
			case <-quit:
				return nil
			}

			select {
			case ch <- ev:
			case <-quit:
				return nil
			}
		}
	}), nil
}

func (p *RPCProvider) call(ctx context.Context, result any, method string, args ...any) error {
	if err := p.client.CallContext(ctx, result, method, args...); err != nil {
		p.logger.Debug("provider call failed", zap.String("method", method), zap.Error(err))
		return wrapRPCError(method, err)
	}
	return nil
}

// wrapRPCError turns JSON-RPC error objects into *ProviderError
func wrapRPCError(method string, err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return &ProviderError{Code: rpcErr.ErrorCode(), Message: rpcErr.Error()}
	}
	return fmt.Errorf("provider %s failed: %w", method, err)
}
