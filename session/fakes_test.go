package session

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/event"

	"github.com/AlexZinkM/docuchain-wallet/internal/client"
	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

const (
	w1 = "0x1111111111111111111111111111111111111111"
	w2 = "0x2222222222222222222222222222222222222222"
	w3 = "0x3333333333333333333333333333333333333333"
	wp = "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"

	sepolia uint64 = 11155111
)

var sepoliaChain = model.ChainDescriptor{ChainID: 11155111, ChainName: "Sepolia"}

var errUnreachable = errors.New("connection refused")

// fakeBackend keeps accounts and wallet links in memory
type fakeBackend struct {
	mu      sync.Mutex
	user    string
	wallets map[string][]string
	active  map[string]string
	owner   map[string]string
	// candidates by wallet for /check-wallet-accounts
	candidates map[string][]model.AccountCandidate
	mine       []model.Document
	shared     []model.Document

	calls map[string]int
	syncs []string
	fail  map[string]error

	// switchGate blocks /switch-wallet for a wallet until closed
	switchGate    map[string]chan struct{}
	switchStarted chan string
}

func newFakeBackend(user string, wallets ...string) *fakeBackend {
	b := &fakeBackend{
		user:       user,
		wallets:    map[string][]string{user: wallets},
		active:     map[string]string{},
		owner:      map[string]string{},
		candidates: map[string][]model.AccountCandidate{},
		calls:      map[string]int{},
		fail:       map[string]error{},
		switchGate: map[string]chan struct{}{},
	}
	for _, w := range wallets {
		b.owner[w] = user
	}
	if len(wallets) > 0 {
		b.active[user] = wallets[0]
	}
	return b
}

func (b *fakeBackend) record(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[path]++
	return b.fail[path]
}

func (b *fakeBackend) count(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

func (b *fakeBackend) setFail(path string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[path] = err
}

func (b *fakeBackend) SyncWallet(ctx context.Context, walletAddress string) (*model.SyncWalletResponse, error) {
	if err := b.record("/sync-wallet"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.syncs = append(b.syncs, walletAddress)
	return &model.SyncWalletResponse{Envelope: model.Envelope{Success: true}, WalletAddress: walletAddress}, nil
}

func (b *fakeBackend) ConnectWallet(ctx context.Context, walletAddress string) (*model.ConnectWalletResponse, error) {
	if err := b.record("/connect-wallet"); err != nil {
		return nil, err
	}
	return &model.ConnectWalletResponse{Envelope: model.Envelope{Success: true}, WalletAddress: walletAddress}, nil
}

func (b *fakeBackend) UserWallets(ctx context.Context) (*model.UserWalletsResponse, error) {
	if err := b.record("/user-wallets"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return &model.UserWalletsResponse{
		Envelope:     model.Envelope{Success: true},
		Wallets:      slices.Clone(b.wallets[b.user]),
		ActiveWallet: b.active[b.user],
	}, nil
}

func (b *fakeBackend) AddWallet(ctx context.Context, walletAddress string) error {
	if err := b.record("/add-wallet"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if owner, ok := b.owner[walletAddress]; ok && owner != b.user {
		return &client.BackendError{
			Status:       http.StatusConflict,
			Path:         "/add-wallet",
			Message:      "Wallet already connected to another account",
			Code:         model.CodeWalletAlreadyConnected,
			Suggestion:   "Log in as " + owner + " to use this wallet",
			ConflictUser: owner,
		}
	}
	b.owner[walletAddress] = b.user
	b.wallets[b.user] = append(b.wallets[b.user], walletAddress)
	return nil
}

func (b *fakeBackend) SwitchWallet(ctx context.Context, walletAddress string) (*model.SwitchWalletResponse, error) {
	b.mu.Lock()
	gate := b.switchGate[walletAddress]
	started := b.switchStarted
	b.mu.Unlock()

	if started != nil {
		started <- walletAddress
	}
	if gate != nil {
		<-gate
	}
	if err := b.record("/switch-wallet"); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.active[b.user] = walletAddress
	return &model.SwitchWalletResponse{Envelope: model.Envelope{Success: true}, ActiveWallet: walletAddress}, nil
}

func (b *fakeBackend) RemoveWallet(ctx context.Context, walletAddress string) error {
	if err := b.record("/remove-wallet"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.wallets[b.user] = slices.DeleteFunc(b.wallets[b.user], func(w string) bool { return w == walletAddress })
	delete(b.owner, walletAddress)
	return nil
}

func (b *fakeBackend) CheckWalletAccounts(ctx context.Context, walletAddress string) ([]model.AccountCandidate, error) {
	if err := b.record("/check-wallet-accounts"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.candidates[walletAddress], nil
}

func (b *fakeBackend) SwitchToAccount(ctx context.Context, username, walletAddress string) (*model.AccountUser, error) {
	if err := b.record("/switch-to-account"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.user = username
	return &model.AccountUser{Username: username, WalletAddress: walletAddress}, nil
}

func (b *fakeBackend) MyDocuments(ctx context.Context) ([]model.Document, error) {
	if err := b.record("/my-documents"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.mine), nil
}

func (b *fakeBackend) SharedDocuments(ctx context.Context) ([]model.Document, error) {
	if err := b.record("/shared-documents"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.shared), nil
}

func (b *fakeBackend) Login(ctx context.Context, username, password string) (*model.AccountUser, error) {
	if err := b.record("/login"); err != nil {
		return nil, err
	}
	if password != "pw" {
		return nil, &client.BackendError{Status: http.StatusUnauthorized, Path: "/login", Message: "Invalid credentials"}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.user = username
	return &model.AccountUser{Username: username, WalletAddress: b.active[username]}, nil
}

func (b *fakeBackend) Logout(ctx context.Context) error {
	if err := b.record("/logout"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.user = ""
	return nil
}

func (b *fakeBackend) CurrentUser(ctx context.Context) (*model.AccountUser, error) {
	if err := b.record("/current-user"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.user == "" {
		return nil, &client.BackendError{Status: http.StatusUnauthorized, Path: "/current-user", Message: "Not logged in"}
	}
	return &model.AccountUser{Username: b.user}, nil
}

// fakeProvider is a scripted wallet provider
type fakeProvider struct {
	mu         sync.Mutex
	accounts   []string
	requestErr error
	chainID    uint64
	known      map[uint64]bool
	switchErr  error
	added      []model.ChainDescriptor
	requests   int

	feed event.Feed
}

func newFakeProvider(accounts ...string) *fakeProvider {
	return &fakeProvider{
		accounts: accounts,
		chainID:  1,
		known:    map[uint64]bool{1: true},
	}
}

func (p *fakeProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests++
	if p.requestErr != nil {
		return nil, p.requestErr
	}
	return slices.Clone(p.accounts), nil
}

func (p *fakeProvider) Accounts(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.accounts), nil
}

func (p *fakeProvider) ChainID(ctx context.Context) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chainID, nil
}

func (p *fakeProvider) SwitchChain(ctx context.Context, chainID uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.switchErr != nil {
		return p.switchErr
	}
	if !p.known[chainID] {
		return &client.ProviderError{Code: client.CodeUnrecognizedChain, Message: "Unrecognized chain ID"}
	}
	p.chainID = chainID
	return nil
}

func (p *fakeProvider) AddChain(ctx context.Context, chain model.ChainDescriptor) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.known[uint64(chain.ChainID)] = true
	p.added = append(p.added, chain)
	return nil
}

func (p *fakeProvider) Subscribe(ctx context.Context, ch chan<- client.ProviderEvent) (event.Subscription, error) {
	return p.feed.Subscribe(ch), nil
}

// recordingRenderer counts renders and keeps the last views
type recordingRenderer struct {
	mu       sync.Mutex
	sessions []View
	sets     []WalletSet
}

func (r *recordingRenderer) RenderSession(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, v)
}

func (r *recordingRenderer) RenderWallets(s WalletSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets = append(r.sets, s)
}

func (r *recordingRenderer) sessionRenders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// countingReloader counts document reloads
type countingReloader struct {
	mu     sync.Mutex
	mine   int
	shared int
}

func (c *countingReloader) ReloadMyDocuments(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mine++
}

func (c *countingReloader) ReloadSharedDocuments(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shared++
}

func (c *countingReloader) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mine, c.shared
}

func hasKind(notes []Notification, kind Kind) bool {
	return slices.ContainsFunc(notes, func(n Notification) bool { return n.Kind == kind })
}
