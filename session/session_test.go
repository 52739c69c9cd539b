package session

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/docuchain-wallet/internal/client"
	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

func newTestSession(b *fakeBackend, p *fakeProvider) *Session {
	opts := Options{Backend: b, Chain: sepoliaChain}
	if p != nil {
		opts.Provider = p
	}
	return New(opts)
}

func TestSession_Login(t *testing.T) {
	b := newFakeBackend("alice", w1, w2)
	b.mine = []model.Document{{DocumentID: "1", FileName: "deed.pdf", Owner: w1}}
	b.shared = []model.Document{{DocumentID: "2", FileName: "lease.pdf"}}
	s := newTestSession(b, nil)
	ctx := context.Background()

	_, err := s.Login(ctx, "alice", "wrong")
	_, ok := client.AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, Uninitialized, s.Wallets.State())

	user, err := s.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, user, s.User())

	assert.Equal(t, Ready, s.Wallets.State())
	assert.Equal(t, []string{w1, w2}, s.Wallets.Wallets())
	require.Len(t, s.Documents.MyDocuments(), 1)
	assert.Equal(t, "deed.pdf", s.Documents.MyDocuments()[0].FileName)
	assert.Len(t, s.Documents.SharedDocuments(), 1)

	// the account's active wallet is published until a provider connects
	active, ok := s.Tracker.Active()
	assert.True(t, ok)
	assert.Equal(t, w1, active)
}

func TestSession_Logout(t *testing.T) {
	b := newFakeBackend("alice", w1)
	b.mine = []model.Document{{DocumentID: "1"}}
	s := newTestSession(b, nil)
	ctx := context.Background()

	_, err := s.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	assert.Nil(t, s.User())
	assert.Equal(t, Uninitialized, s.Wallets.State())
	assert.Empty(t, s.Documents.MyDocuments())
}

func TestSession_LogoutReleasesAdoptedWallet(t *testing.T) {
	b := newFakeBackend("alice", w1)
	b.wallets["bob"] = []string{w2, w3}
	b.active["bob"] = w3
	s := newTestSession(b, nil)
	ctx := context.Background()

	_, err := s.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	active, _ := s.Tracker.Active()
	require.Equal(t, w1, active)

	require.NoError(t, s.Logout(ctx))
	_, ok := s.Tracker.Active()
	assert.False(t, ok)

	_, err = s.Login(ctx, "bob", "pw")
	require.NoError(t, err)
	active, ok = s.Tracker.Active()
	assert.True(t, ok)
	assert.Equal(t, w3, active)
	assert.Equal(t, s.Wallets.ActiveWallet(), active)
}

func TestSession_LogoutKeepsProviderWallet(t *testing.T) {
	b := newFakeBackend("alice", w1)
	s := newTestSession(b, newFakeProvider(wp))
	ctx := context.Background()

	_, err := s.Tracker.Connect(ctx)
	require.NoError(t, err)
	_, err = s.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	view := s.Tracker.View()
	assert.True(t, view.Connected)
	assert.Equal(t, wp, view.ActiveWallet)
}

func TestSession_StaleSwitchAfterAccountChange(t *testing.T) {
	b := newFakeBackend("alice", w1, w2)
	b.wallets["bob"] = []string{w2, w3}
	b.active["bob"] = w3
	s := newTestSession(b, nil)
	ctx := context.Background()

	_, err := s.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	gate := make(chan struct{})
	started := make(chan string, 1)
	b.mu.Lock()
	b.switchGate[w2] = gate
	b.switchStarted = started
	b.mu.Unlock()

	slow := make(chan error, 1)
	go func() { slow <- s.Wallets.SwitchWallet(ctx, w2) }()
	require.Equal(t, w2, <-started)

	_, err = s.SwitchAccount(ctx, model.AccountCandidate{Username: "bob", WalletAddress: w3})
	require.NoError(t, err)
	require.Equal(t, w3, s.Wallets.ActiveWallet())
	close(gate)

	select {
	case err := <-slow:
		assert.True(t, IsKind(err, Superseded))
	case <-time.After(5 * time.Second):
		t.Fatal("switch for the previous account did not return")
	}
	assert.Equal(t, "bob", s.Wallets.Account())
	assert.Equal(t, w3, s.Wallets.ActiveWallet())
	active, _ := s.Tracker.Active()
	assert.Equal(t, w3, active)
}

func TestSession_SwitchAccountReloadsWallets(t *testing.T) {
	b := newFakeBackend("alice", w1)
	b.wallets["bob"] = []string{w2, w3}
	b.active["bob"] = w3
	b.candidates[w2] = []model.AccountCandidate{{Username: "bob", WalletAddress: w2}}
	s := newTestSession(b, nil)
	ctx := context.Background()

	_, err := s.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	res, err := s.ResolveAccounts(ctx, w2)
	require.NoError(t, err)
	assert.Equal(t, Single, res.Outcome)

	assert.Equal(t, "bob", s.User().Username)
	assert.Equal(t, "bob", s.Wallets.Account())
	assert.Equal(t, []string{w2, w3}, s.Wallets.Wallets())
	assert.Equal(t, w3, s.Wallets.ActiveWallet())
}

func TestSession_ProviderChangeReconciles(t *testing.T) {
	b := newFakeBackend("alice", w1)
	s := newTestSession(b, newFakeProvider(w1))
	ctx := context.Background()

	_, err := s.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	before := b.count("/user-wallets")

	// the wallet got linked elsewhere (another tab) before the provider switched to it
	require.NoError(t, b.AddWallet(ctx, w2))
	require.NoError(t, s.Tracker.OnAccountsChanged(ctx, []string{w2}))

	assert.Greater(t, b.count("/user-wallets"), before)
	assert.Equal(t, []string{w1, w2}, s.Wallets.Wallets())

	// an unlinked wallet only produces a hint
	require.NoError(t, s.Tracker.OnAccountsChanged(ctx, []string{wp}))
	hinted := slices.ContainsFunc(s.Inbox.Snapshot(), func(n Notification) bool {
		return strings.Contains(n.Message, "not linked")
	})
	assert.True(t, hinted)
}

func TestSession_DocumentReloadFailureIsNotified(t *testing.T) {
	b := newFakeBackend("alice", w1)
	b.setFail("/shared-documents", errUnreachable)
	s := newTestSession(b, nil)

	_, err := s.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.True(t, hasKind(s.Inbox.Snapshot(), BackendSyncFailure))
}
