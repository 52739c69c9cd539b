// Package session holds the wallet-side session state of a DocuChain client:
// which wallet is active, which wallets the logged-in account owns, and the
// documents visible through them.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/AlexZinkM/docuchain-wallet/internal/client"
	"github.com/AlexZinkM/docuchain-wallet/internal/logger"
	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

// Backend is everything the session needs from the DocuChain backend;
// *client.BackendClient implements it.
type Backend interface {
	WalletSyncer
	WalletBackend
	AccountBackend
	DocumentBackend
	Login(ctx context.Context, username, password string) (*model.AccountUser, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*model.AccountUser, error)
}

var _ Backend = (*client.BackendClient)(nil)

// Options configures a Session
type Options struct {
	Backend  Backend
	Provider client.Provider
	Chain    model.ChainDescriptor
	Renderer Renderer
	// InboxSize bounds the kept notifications, DefaultInboxSize when zero
	InboxSize int
	Logger    *zap.Logger
}

// Session is the explicit session context owned by the UI controller.
// Each component is the single writer of its own state.
type Session struct {
	Tracker   *Tracker
	Wallets   *Multiplexer
	Accounts  *AccountSwitcher
	Documents *Library
	Inbox     *Inbox

	backend Backend
	logger  *zap.Logger

	mu   sync.Mutex
	user *model.AccountUser
}

// New wires the session components together
func New(opts Options) *Session {
	log := logger.OrNop(opts.Logger)

	inbox := NewInbox(opts.InboxSize, log.Named("notify"))
	library := NewLibrary(opts.Backend, inbox, log.Named("documents"))
	tracker := NewTracker(TrackerConfig{
		Provider:  opts.Provider,
		Backend:   opts.Backend,
		Documents: library,
		Notifier:  inbox,
		Renderer:  opts.Renderer,
		Chain:     opts.Chain,
		Logger:    log.Named("tracker"),
	})
	wallets := NewMultiplexer(MultiplexerConfig{
		Backend:   opts.Backend,
		Provider:  opts.Provider,
		Publisher: tracker,
		Documents: library,
		Notifier:  inbox,
		Renderer:  opts.Renderer,
		Logger:    log.Named("wallets"),
	})

	s := &Session{
		Tracker:   tracker,
		Wallets:   wallets,
		Accounts:  NewAccountSwitcher(opts.Backend, opts.Provider, inbox, log.Named("accounts")),
		Documents: library,
		Inbox:     inbox,
		backend:   opts.Backend,
		logger:    log,
	}
	tracker.OnActiveChanged(s.activeChanged)
	return s
}

// Login authenticates with the backend and loads the account's wallets
func (s *Session) Login(ctx context.Context, username, password string) (*model.AccountUser, error) {
	user, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.load(ctx, user); err != nil {
		return user, err
	}
	return user, nil
}

// Logout ends the backend session and forgets the account
func (s *Session) Logout(ctx context.Context) error {
	if err := s.backend.Logout(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	s.Wallets.Reset()
	s.Tracker.Release()
	s.Documents.Clear()
	s.logger.Info("logged out")
	return nil
}

// SwitchAccount moves to another account of the same wallet and reloads it
func (s *Session) SwitchAccount(ctx context.Context, candidate model.AccountCandidate) (*model.AccountUser, error) {
	user, err := s.Accounts.SwitchToAccount(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if err := s.load(ctx, user); err != nil {
		return user, err
	}
	return user, nil
}

// ResolveAccounts lists the accounts wallet can log into, switching when there is exactly one
func (s *Session) ResolveAccounts(ctx context.Context, wallet string) (*Resolution, error) {
	res, err := s.Accounts.Resolve(ctx, wallet)
	if err != nil {
		return res, err
	}
	if res.User != nil {
		if err := s.load(ctx, res.User); err != nil {
			return res, err
		}
	}
	return res, nil
}

// User returns the logged-in account, nil before login
func (s *Session) User() *model.AccountUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// CurrentUser asks the backend who is logged in
func (s *Session) CurrentUser(ctx context.Context) (*model.AccountUser, error) {
	return s.backend.CurrentUser(ctx)
}

// Run processes provider events until ctx ends
func (s *Session) Run(ctx context.Context) error {
	return s.Tracker.Run(ctx)
}

func (s *Session) load(ctx context.Context, user *model.AccountUser) error {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if err := s.Wallets.Init(ctx, user.Username); err != nil {
		return err
	}
	s.Documents.ReloadMyDocuments(ctx)
	s.Documents.ReloadSharedDocuments(ctx)

	s.Tracker.Release()
	if _, ok := s.Tracker.Active(); !ok {
		if active := s.Wallets.ActiveWallet(); active != "" {
			s.Tracker.Adopt(active)
		}
	}
	return nil
}

// activeChanged reconciles the wallet set after the provider changed the active wallet
func (s *Session) activeChanged(ctx context.Context, address string) {
	if s.Wallets.State() != Ready {
		return
	}
	if err := s.Wallets.Refresh(ctx); err != nil {
		s.logger.Debug("wallet set refresh after provider change failed", zap.String("wallet", address), zap.Error(err))
	}
	if !s.Wallets.IsMember(address) {
		s.Inbox.Notify(Notification{
			Level:   LevelInfo,
			Message: "The selected wallet is not linked to this account. Add it to use it here.",
		})
	}
}
