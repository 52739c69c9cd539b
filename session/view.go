package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

// View is what the UI shows about the connected wallet
type View struct {
	Connected    bool
	ActiveWallet string
	ChainID      uint64
	ChainOK      bool
}

// WalletSet is what the UI shows about the account's linked wallets
type WalletSet struct {
	Account string
	State   State
	Wallets []string
	Active  string
}

// Renderer refreshes the UI after a state change
type Renderer interface {
	RenderSession(v View)
	RenderWallets(s WalletSet)
}

type nopRenderer struct{}

func (nopRenderer) RenderSession(View)      {}
func (nopRenderer) RenderWallets(WalletSet) {}

// LogRenderer renders state changes into the log, for headless use
type LogRenderer struct {
	Logger *zap.Logger
}

func (r LogRenderer) RenderSession(v View) {
	r.Logger.Debug("session view",
		zap.Bool("connected", v.Connected),
		zap.String("wallet", v.ActiveWallet),
		zap.Uint64("chain_id", v.ChainID),
		zap.Bool("chain_ok", v.ChainOK),
	)
}

func (r LogRenderer) RenderWallets(s WalletSet) {
	r.Logger.Debug("wallet set",
		zap.String("account", s.Account),
		zap.Stringer("state", s.State),
		zap.Strings("wallets", s.Wallets),
		zap.String("active", s.Active),
	)
}

// DocumentReloader refreshes the document lists after the active wallet changes
type DocumentReloader interface {
	ReloadMyDocuments(ctx context.Context)
	ReloadSharedDocuments(ctx context.Context)
}

type nopReloader struct{}

func (nopReloader) ReloadMyDocuments(context.Context)     {}
func (nopReloader) ReloadSharedDocuments(context.Context) {}

// WalletSyncer publishes the active wallet to the backend
type WalletSyncer interface {
	SyncWallet(ctx context.Context, walletAddress string) (*model.SyncWalletResponse, error)
	ConnectWallet(ctx context.Context, walletAddress string) (*model.ConnectWalletResponse, error)
}

// WalletBackend is the backend's view of an account's linked wallets
type WalletBackend interface {
	UserWallets(ctx context.Context) (*model.UserWalletsResponse, error)
	AddWallet(ctx context.Context, walletAddress string) error
	SwitchWallet(ctx context.Context, walletAddress string) (*model.SwitchWalletResponse, error)
	RemoveWallet(ctx context.Context, walletAddress string) error
}

// AccountBackend resolves and switches backend accounts by wallet
type AccountBackend interface {
	CheckWalletAccounts(ctx context.Context, walletAddress string) ([]model.AccountCandidate, error)
	SwitchToAccount(ctx context.Context, username, walletAddress string) (*model.AccountUser, error)
}

// DocumentBackend lists documents visible to the session
type DocumentBackend interface {
	MyDocuments(ctx context.Context) ([]model.Document, error)
	SharedDocuments(ctx context.Context) ([]model.Document, error)
}
