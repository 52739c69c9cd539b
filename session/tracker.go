package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/AlexZinkM/docuchain-wallet/internal/client"
	"github.com/AlexZinkM/docuchain-wallet/internal/common"
	"github.com/AlexZinkM/docuchain-wallet/internal/logger"
	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

// eventBuffer is how many provider events may queue while one is processed
const eventBuffer = 16

// TrackerConfig wires a Tracker. Only Chain is required; nil collaborators are no-ops
// except Provider, whose absence makes Connect fail with ProviderUnavailable.
type TrackerConfig struct {
	Provider  client.Provider
	Backend   WalletSyncer
	Documents DocumentReloader
	Notifier  Notifier
	Renderer  Renderer
	Chain     model.ChainDescriptor
	Logger    *zap.Logger
}

// Tracker is the single source of which wallet is active right now.
// Provider events and user actions are its only inputs.
type Tracker struct {
	provider client.Provider
	backend  WalletSyncer
	docs     DocumentReloader
	renderer Renderer
	chain    model.ChainDescriptor
	logger   *zap.Logger
	reporter

	mu              sync.Mutex
	active          string
	connected       bool
	chainID         uint64
	onActiveChanged func(ctx context.Context, address string)
}

// NewTracker creates a disconnected tracker
func NewTracker(cfg TrackerConfig) *Tracker {
	t := &Tracker{
		provider: cfg.Provider,
		backend:  cfg.Backend,
		docs:     cfg.Documents,
		renderer: cfg.Renderer,
		chain:    cfg.Chain,
		logger:   logger.OrNop(cfg.Logger),
	}
	if t.docs == nil {
		t.docs = nopReloader{}
	}
	if t.renderer == nil {
		t.renderer = nopRenderer{}
	}
	t.reporter = newReporter(cfg.Notifier, t.logger)
	return t
}

// OnActiveChanged registers fn to run after a provider-driven change of the active wallet
func (t *Tracker) OnActiveChanged(fn func(ctx context.Context, address string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onActiveChanged = fn
}

// Connect asks the provider for account access and adopts the first account.
// Chain and backend problems after that are warnings, the connection stands.
func (t *Tracker) Connect(ctx context.Context) (string, error) {
	if t.provider == nil {
		return "", t.fail(&Error{Kind: ProviderUnavailable, Message: "no wallet provider available"})
	}

	accounts, err := t.provider.RequestAccounts(ctx)
	if err != nil {
		return "", t.fail(providerFailure("connect", err))
	}
	if len(accounts) == 0 {
		return "", t.fail(&Error{Kind: NoAccountsReturned, Message: "wallet returned no accounts"})
	}

	address, err := common.NormalizeAddress(accounts[0])
	if err != nil || common.IsZeroAddress(address) {
		return "", t.fail(invalidAddress(accounts[0], err))
	}

	changed := t.setActive(address)
	t.logger.Info("wallet connected", zap.String("wallet", address))

	t.ensureChain(ctx)
	t.syncBackend(ctx, address, true)
	t.reloadDocuments(ctx)
	if changed {
		t.activeChanged(ctx, address)
	}
	t.render()
	t.tell(LevelSuccess, "Wallet connected: "+common.ShortAddress(address))
	return address, nil
}

// Disconnect detaches the wallet from the session and tells the backend.
// The provider's own site permission is left alone.
func (t *Tracker) Disconnect(ctx context.Context) {
	t.mu.Lock()
	t.active = ""
	t.connected = false
	t.mu.Unlock()

	t.logger.Info("wallet disconnected")
	t.syncBackend(ctx, common.ZeroAddress, false)
	t.render()
	t.tell(LevelInfo, "Wallet disconnected")
}

// OnAccountsChanged handles the provider's accountsChanged event
func (t *Tracker) OnAccountsChanged(ctx context.Context, accounts []string) error {
	if len(accounts) == 0 {
		t.mu.Lock()
		wasConnected := t.connected
		t.active = ""
		t.connected = false
		t.mu.Unlock()

		t.render()
		if wasConnected {
			t.logger.Info("wallet locked or disconnected in provider")
			t.tell(LevelInfo, "Wallet disconnected")
		}
		return nil
	}

	address, err := common.NormalizeAddress(accounts[0])
	if err != nil || common.IsZeroAddress(address) {
		return t.fail(invalidAddress(accounts[0], err))
	}

	if !t.setActive(address) {
		t.render()
		return nil
	}

	t.logger.Info("provider account changed", zap.String("wallet", address))
	t.syncBackend(ctx, address, false)
	t.reloadDocuments(ctx)
	t.activeChanged(ctx, address)
	t.render()
	t.tell(LevelInfo, "Active wallet: "+common.ShortAddress(address))
	return nil
}

// OnChainChanged records the provider's chain. A wrong chain is only reported.
func (t *Tracker) OnChainChanged(chainID uint64) {
	t.setChain(chainID)

	if chainID != uint64(t.chain.ChainID) {
		t.warn(&Error{
			Kind:    ProviderError,
			Message: fmt.Sprintf("wrong network %s", common.ChainIDHex(chainID)),
			Suggestion: fmt.Sprintf("Please switch your wallet to %s (%s)",
				t.chain.ChainName, common.ChainIDHex(uint64(t.chain.ChainID))),
		})
	}
	t.render()
}

// Adopt republishes an active wallet chosen elsewhere, without backend or document side effects.
// An adopted wallet is not a provider connection: Connected stays as it was.
func (t *Tracker) Adopt(address string) {
	t.mu.Lock()
	t.active = address
	t.mu.Unlock()
	t.render()
}

// Release forgets an adopted wallet. A wallet connected through the provider is kept.
func (t *Tracker) Release() {
	t.mu.Lock()
	released := !t.connected && t.active != ""
	if released {
		t.active = ""
	}
	t.mu.Unlock()
	if released {
		t.render()
	}
}

// Run feeds provider events to the tracker one at a time, in arrival order,
// until ctx ends or the subscription fails.
func (t *Tracker) Run(ctx context.Context) error {
	if t.provider == nil {
		return &Error{Kind: ProviderUnavailable, Message: "no wallet provider available"}
	}

	events := make(chan client.ProviderEvent, eventBuffer)
	sub, err := t.provider.Subscribe(ctx, events)
	if err != nil {
		return fmt.Errorf("failed to subscribe to provider events: %w", err)
	}
	defer sub.Unsubscribe()

	for {
		select {
		case ev := <-events:
			t.handle(ctx, ev)
		case err := <-sub.Err():
			return err
		case <-ctx.Done():
			return nil
		}
	}
}

// View returns a snapshot for rendering.
// ActiveWallet may be set while Connected is false when the wallet was adopted from the account.
func (t *Tracker) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return View{
		Connected:    t.connected,
		ActiveWallet: t.active,
		ChainID:      t.chainID,
		ChainOK:      t.chainID != 0 && t.chainID == uint64(t.chain.ChainID),
	}
}

// Active returns the active wallet and whether one is set
func (t *Tracker) Active() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active, t.active != ""
}

// Chain returns the expected chain
func (t *Tracker) Chain() model.ChainDescriptor {
	return t.chain
}

func (t *Tracker) handle(ctx context.Context, ev client.ProviderEvent) {
	t.logger.Debug("provider event", zap.Stringer("kind", ev.Kind))
	switch ev.Kind {
	case client.AccountsChanged:
		_ = t.OnAccountsChanged(ctx, ev.Accounts)
	case client.ChainChanged:
		t.OnChainChanged(ev.ChainID)
	}
}

// setActive marks address connected and reports whether anything changed
func (t *Tracker) setActive(address string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	changed := !t.connected || t.active != address
	t.active = address
	t.connected = true
	return changed
}

// ensureChain moves the provider to the expected chain, registering it when unknown
func (t *Tracker) ensureChain(ctx context.Context) {
	expected := uint64(t.chain.ChainID)

	current, err := t.provider.ChainID(ctx)
	if err != nil {
		t.warn(providerFailure("report its network", err))
		return
	}
	if current == expected {
		t.setChain(current)
		return
	}

	err = t.provider.SwitchChain(ctx, expected)
	if code, ok := client.ProviderErrorCode(err); ok && code == client.CodeUnrecognizedChain {
		t.logger.Info("adding chain to wallet", zap.String("chain", t.chain.ChainName))
		if err = t.provider.AddChain(ctx, t.chain); err == nil {
			err = t.provider.SwitchChain(ctx, expected)
		}
	}
	if err != nil {
		t.setChain(current)
		failure := providerFailure("switch to "+t.chain.ChainName, err)
		failure.Suggestion = "Please switch your wallet network manually"
		t.warn(failure)
		return
	}
	t.setChain(expected)
}

func (t *Tracker) setChain(chainID uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.chainID = chainID
}

// syncBackend publishes address to the backend. Failures never fail the caller.
func (t *Tracker) syncBackend(ctx context.Context, address string, connect bool) {
	if t.backend == nil {
		return
	}

	resp, err := t.backend.SyncWallet(ctx, address)
	if err != nil {
		t.warn(backendFailure(address, "sync wallet with backend", err))
		return
	}
	if resp.Changed() {
		t.logger.Info("backend wallet updated",
			zap.String("old", resp.OldAddress),
			zap.String("new", resp.NewAddress),
		)
	}

	if !connect {
		return
	}
	if _, err := t.backend.ConnectWallet(ctx, address); err != nil {
		t.warn(backendFailure(address, "record wallet connection", err))
	}
}

func (t *Tracker) reloadDocuments(ctx context.Context) {
	t.docs.ReloadMyDocuments(ctx)
	t.docs.ReloadSharedDocuments(ctx)
}

func (t *Tracker) activeChanged(ctx context.Context, address string) {
	t.mu.Lock()
	fn := t.onActiveChanged
	t.mu.Unlock()
	if fn != nil {
		fn(ctx, address)
	}
}

func (t *Tracker) render() {
	t.renderer.RenderSession(t.View())
}
