package session

import (
	"context"
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/AlexZinkM/docuchain-wallet/internal/client"
	"github.com/AlexZinkM/docuchain-wallet/internal/common"
	"github.com/AlexZinkM/docuchain-wallet/internal/logger"
)

// State of the Multiplexer
type State int

const (
	Uninitialized State = iota
	Ready
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Publisher republishes the active wallet; implemented by Tracker
type Publisher interface {
	Adopt(address string)
}

// MultiplexerConfig wires a Multiplexer
type MultiplexerConfig struct {
	Backend   WalletBackend
	Provider  client.Provider
	Publisher Publisher
	Documents DocumentReloader
	Notifier  Notifier
	Renderer  Renderer
	Logger    *zap.Logger
}

// Multiplexer keeps the set of wallets linked to one backend account and the active one among them.
// The backend is the source of truth; the local set is re-fetched after every mutation.
type Multiplexer struct {
	backend   WalletBackend
	provider  client.Provider
	publisher Publisher
	docs      DocumentReloader
	renderer  Renderer
	logger    *zap.Logger
	reporter

	mu      sync.Mutex
	state   State
	account string
	wallets map[string]struct{}
	active  string
	// switchSeq fences switches: only the latest request may apply its response
	switchSeq uint64
}

// NewMultiplexer creates an uninitialized multiplexer
func NewMultiplexer(cfg MultiplexerConfig) *Multiplexer {
	m := &Multiplexer{
		backend:   cfg.Backend,
		provider:  cfg.Provider,
		publisher: cfg.Publisher,
		docs:      cfg.Documents,
		renderer:  cfg.Renderer,
		logger:    logger.OrNop(cfg.Logger),
		wallets:   make(map[string]struct{}),
	}
	if m.docs == nil {
		m.docs = nopReloader{}
	}
	if m.renderer == nil {
		m.renderer = nopRenderer{}
	}
	m.reporter = newReporter(cfg.Notifier, m.logger)
	return m
}

// Init loads the wallet set of account from the backend
func (m *Multiplexer) Init(ctx context.Context, account string) error {
	resp, err := m.backend.UserWallets(ctx)
	if err != nil {
		return m.fail(backendFailure("", "load linked wallets", err))
	}

	wallets, backendActive := m.normalizeSet(resp.Wallets, resp.ActiveWallet)

	m.mu.Lock()
	m.state = Ready
	m.account = account
	m.wallets = wallets
	m.active = pickActive(wallets, backendActive, "")
	m.switchSeq++
	active := m.active
	m.mu.Unlock()

	m.logger.Info("wallet set loaded",
		zap.String("account", account),
		zap.Int("wallets", len(wallets)),
		zap.String("active", active),
	)
	m.render()
	return nil
}

// Reset forgets the loaded account
func (m *Multiplexer) Reset() {
	m.mu.Lock()
	m.state = Uninitialized
	m.account = ""
	m.wallets = make(map[string]struct{})
	m.active = ""
	m.switchSeq++
	m.mu.Unlock()
	m.render()
}

// AddWallet links address to the account. Adding a member again is a no-op.
func (m *Multiplexer) AddWallet(ctx context.Context, address string) error {
	if err := m.addWallet(ctx, address); err != nil {
		return m.fail(err)
	}
	return nil
}

// SwitchWallet makes a linked wallet active. Only the latest of concurrent switches applies.
func (m *Multiplexer) SwitchWallet(ctx context.Context, address string) error {
	if err := m.switchWallet(ctx, address); err != nil {
		return m.fail(err)
	}
	return nil
}

// RemoveWallet unlinks address. The last wallet can never be removed.
// Removing the active wallet switches to the lowest remaining address.
func (m *Multiplexer) RemoveWallet(ctx context.Context, address string) error {
	address, e := m.prepare(address)
	if e != nil {
		return m.fail(e)
	}

	m.mu.Lock()
	count := len(m.wallets)
	_, member := m.wallets[address]
	m.mu.Unlock()

	if count <= 1 {
		return m.fail(&Error{
			Kind:    CannotRemoveLastWallet,
			Wallet:  address,
			Message: "cannot remove the last wallet of an account",
		})
	}
	if !member {
		return m.fail(&Error{Kind: WalletNotLinked, Wallet: address, Message: "wallet is not linked to this account"})
	}

	if err := m.backend.RemoveWallet(ctx, address); err != nil {
		return m.fail(backendFailure(address, "remove wallet", err))
	}

	m.mu.Lock()
	delete(m.wallets, address)
	wasActive := m.active == address
	if wasActive {
		m.active = lowest(m.wallets)
	}
	next := m.active
	m.mu.Unlock()

	m.logger.Info("wallet removed", zap.String("wallet", address), zap.Bool("was_active", wasActive))

	if wasActive && next != "" {
		if err := m.switchWallet(ctx, next); err != nil && !IsKind(err, Superseded) {
			m.warn(err)
			m.publish(m.ActiveWallet())
		}
	} else {
		m.reconcile(ctx)
	}
	m.render()
	m.tell(LevelSuccess, "Wallet removed: "+common.ShortAddress(address))
	return nil
}

// ConnectCurrentProviderWallet switches to the provider's current wallet, linking it first when needed.
// A failed switch after a successful link leaves the wallet linked and the active wallet unchanged.
func (m *Multiplexer) ConnectCurrentProviderWallet(ctx context.Context) (string, error) {
	if m.provider == nil {
		return "", m.fail(&Error{Kind: ProviderUnavailable, Message: "no wallet provider available"})
	}
	if e := m.ready(); e != nil {
		return "", m.fail(e)
	}

	accounts, err := m.provider.RequestAccounts(ctx)
	if err != nil {
		return "", m.fail(providerFailure("share its account", err))
	}
	if len(accounts) == 0 {
		return "", m.fail(&Error{Kind: NoAccountsReturned, Message: "wallet returned no accounts"})
	}

	address, e := m.prepare(accounts[0])
	if e != nil {
		return "", m.fail(e)
	}

	if !m.IsMember(address) {
		if err := m.addWallet(ctx, address); err != nil {
			return "", m.fail(err)
		}
		if err := m.switchWallet(ctx, address); err != nil {
			if IsKind(err, Superseded) {
				return "", m.fail(err)
			}
			return "", m.fail(&Error{
				Kind:    SwitchAfterAddFailed,
				Wallet:  address,
				Message: "wallet was linked but switching to it failed",
				Err:     err,
			})
		}
		return address, nil
	}

	if err := m.switchWallet(ctx, address); err != nil {
		return "", m.fail(err)
	}
	return address, nil
}

// Refresh re-fetches the wallet set from the backend
func (m *Multiplexer) Refresh(ctx context.Context) error {
	if e := m.ready(); e != nil {
		return e
	}
	if err := m.reconcile(ctx); err != nil {
		return err
	}
	m.render()
	return nil
}

// Wallets returns the linked wallets in ascending order
func (m *Multiplexer) Wallets() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.wallets))
}

// ActiveWallet returns the active wallet, empty when the set is empty
func (m *Multiplexer) ActiveWallet() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *Multiplexer) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Multiplexer) Account() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.account
}

// IsMember reports whether address is linked to the account
func (m *Multiplexer) IsMember(address string) bool {
	address, err := common.NormalizeAddress(address)
	if err != nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.wallets[address]
	return ok
}

// Snapshot returns the set for rendering
func (m *Multiplexer) Snapshot() WalletSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return WalletSet{
		Account: m.account,
		State:   m.state,
		Wallets: slices.Sorted(maps.Keys(m.wallets)),
		Active:  m.active,
	}
}

func (m *Multiplexer) addWallet(ctx context.Context, address string) *Error {
	address, e := m.prepare(address)
	if e != nil {
		return e
	}
	if m.IsMember(address) {
		return nil
	}

	if err := m.backend.AddWallet(ctx, address); err != nil {
		if backendErr, ok := client.AsBackendError(err); ok && client.IsWalletConflict(err) {
			return &Error{
				Kind:         WalletAlreadyLinked,
				Wallet:       address,
				Message:      backendErr.Message,
				Suggestion:   backendErr.Suggestion,
				ConflictUser: backendErr.ConflictUser,
				Err:          err,
			}
		}
		return backendFailure(address, "add wallet", err)
	}

	m.mu.Lock()
	m.wallets[address] = struct{}{}
	if m.active == "" {
		m.active = address
	}
	m.mu.Unlock()

	m.logger.Info("wallet added", zap.String("wallet", address))
	m.reconcile(ctx)
	m.render()
	m.tell(LevelSuccess, "Wallet added: "+common.ShortAddress(address))
	return nil
}

func (m *Multiplexer) switchWallet(ctx context.Context, address string) *Error {
	address, e := m.prepare(address)
	if e != nil {
		return e
	}

	m.mu.Lock()
	if _, ok := m.wallets[address]; !ok {
		m.mu.Unlock()
		return &Error{Kind: WalletNotLinked, Wallet: address, Message: "wallet is not linked to this account"}
	}
	m.switchSeq++
	seq := m.switchSeq
	m.mu.Unlock()

	_, err := m.backend.SwitchWallet(ctx, address)

	m.mu.Lock()
	if seq != m.switchSeq {
		m.mu.Unlock()
		m.logger.Debug("discarding stale wallet switch", zap.String("wallet", address))
		return &Error{Kind: Superseded, Wallet: address, Message: "a newer wallet switch was requested"}
	}
	if err != nil {
		m.mu.Unlock()
		return backendFailure(address, "switch wallet", err)
	}
	if _, ok := m.wallets[address]; !ok {
		m.mu.Unlock()
		return &Error{Kind: WalletNotLinked, Wallet: address, Message: "wallet was removed during the switch"}
	}
	m.active = address
	m.mu.Unlock()

	m.logger.Info("active wallet switched", zap.String("wallet", address))
	m.publish(address)
	m.docs.ReloadMyDocuments(ctx)
	m.docs.ReloadSharedDocuments(ctx)
	m.reconcile(ctx)
	m.render()
	m.tell(LevelSuccess, "Switched to wallet "+common.ShortAddress(address))
	return nil
}

// reconcile replaces the local set with the backend's.
// A switch issued meanwhile keeps its active wallet.
func (m *Multiplexer) reconcile(ctx context.Context) error {
	m.mu.Lock()
	seq := m.switchSeq
	m.mu.Unlock()

	resp, err := m.backend.UserWallets(ctx)
	if err != nil {
		e := backendFailure("", "refresh linked wallets", err)
		m.warn(e)
		return e
	}
	wallets, backendActive := m.normalizeSet(resp.Wallets, resp.ActiveWallet)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Ready {
		return nil
	}
	if seq != m.switchSeq {
		backendActive = ""
	}
	m.wallets = wallets
	m.active = pickActive(wallets, backendActive, m.active)
	return nil
}

// normalizeSet drops the sentinel and malformed entries the backend may hold
func (m *Multiplexer) normalizeSet(addresses []string, active string) (map[string]struct{}, string) {
	wallets := make(map[string]struct{}, len(addresses))
	for _, addr := range addresses {
		normalized, err := common.NormalizeAddress(addr)
		if err != nil {
			m.logger.Warn("ignoring malformed linked wallet", zap.String("wallet", addr))
			continue
		}
		if common.IsZeroAddress(normalized) {
			continue
		}
		wallets[normalized] = struct{}{}
	}

	active, err := common.NormalizeAddress(active)
	if err != nil || common.IsZeroAddress(active) {
		active = ""
	}
	return wallets, active
}

// prepare normalizes address and checks the multiplexer is loaded
func (m *Multiplexer) prepare(address string) (string, *Error) {
	normalized, err := common.NormalizeAddress(address)
	if err != nil || common.IsZeroAddress(normalized) {
		return "", invalidAddress(address, err)
	}
	if e := m.ready(); e != nil {
		return "", e
	}
	return normalized, nil
}

func (m *Multiplexer) ready() *Error {
	if m.State() != Ready {
		return &Error{Kind: NotInitialized, Message: "no account loaded"}
	}
	return nil
}

func (m *Multiplexer) publish(address string) {
	if m.publisher != nil {
		m.publisher.Adopt(address)
	}
}

func (m *Multiplexer) render() {
	m.renderer.RenderWallets(m.Snapshot())
}

// pickActive keeps active a member: preferred first, then current, then the lowest address
func pickActive(wallets map[string]struct{}, preferred, current string) string {
	if _, ok := wallets[preferred]; ok {
		return preferred
	}
	if _, ok := wallets[current]; ok {
		return current
	}
	return lowest(wallets)
}

// lowest returns the lexicographically smallest wallet, empty for an empty set
func lowest(wallets map[string]struct{}) string {
	if len(wallets) == 0 {
		return ""
	}
	return slices.Min(slices.Collect(maps.Keys(wallets)))
}
