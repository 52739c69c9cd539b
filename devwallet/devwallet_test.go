package devwallet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/docuchain-wallet/internal/client"
	"github.com/AlexZinkM/docuchain-wallet/internal/common"
	keycrypto "github.com/AlexZinkM/docuchain-wallet/internal/crypto"
	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

const sepolia uint64 = 11155111

func staticPassword(pw string) PasswordFunc {
	return func(string) ([]byte, error) {
		return []byte(pw), nil
	}
}

func newKeyFile(t *testing.T) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dev"+keycrypto.KeyFileExt)
	address, err := GenerateWallet(path, sepolia, []byte("hunter2"))
	require.NoError(t, err)
	return path, address
}

func TestGenerateWallet(t *testing.T) {
	path, address := newKeyFile(t)

	normalized, err := common.NormalizeAddress(address)
	require.NoError(t, err)
	assert.Equal(t, normalized, address)

	stored, err := keycrypto.ReadKeyAddress(path)
	require.NoError(t, err)
	assert.Equal(t, address, stored)

	_, err = GenerateWallet(path, sepolia, []byte("hunter2"))
	assert.ErrorIs(t, err, os.ErrExist)

	_, err = GenerateWallet(filepath.Join(t.TempDir(), "dev.json"), sepolia, []byte("hunter2"))
	assert.Error(t, err)
}

func TestProvider_RequestAccounts(t *testing.T) {
	path, address := newKeyFile(t)
	ctx := context.Background()

	declined := NewProvider([]string{path}, DefaultChainID, staticPassword(""), nil)
	_, err := declined.RequestAccounts(ctx)
	assert.True(t, client.IsUserRejected(err))

	wrong := NewProvider([]string{path}, DefaultChainID, staticPassword("nope"), nil)
	_, err = wrong.RequestAccounts(ctx)
	code, ok := client.ProviderErrorCode(err)
	require.True(t, ok)
	assert.Equal(t, client.CodeUnauthorized, code)

	p := NewProvider([]string{path}, DefaultChainID, staticPassword("hunter2"), nil)
	accounts, err := p.Accounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	accounts, err = p.RequestAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{address}, accounts)

	accounts, err = p.Accounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{address}, accounts)

	events := make(chan client.ProviderEvent, 4)
	sub, err := p.Subscribe(ctx, events)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.NoError(t, p.SelectAccount(address))
	ev := <-events
	assert.Equal(t, client.AccountsChanged, ev.Kind)
	assert.Equal(t, []string{address}, ev.Accounts)

	assert.Error(t, p.SelectAccount(common.ZeroAddress))

	p.Lock()
	ev = <-events
	assert.Equal(t, client.AccountsChanged, ev.Kind)
	assert.Empty(t, ev.Accounts)

	accounts, err = p.Accounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestProvider_SwitchChain(t *testing.T) {
	p := NewProvider(nil, DefaultChainID, staticPassword(""), nil)
	defer p.Close()
	ctx := context.Background()

	events := make(chan client.ProviderEvent, 4)
	sub, err := p.Subscribe(ctx, events)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	err = p.SwitchChain(ctx, sepolia)
	code, ok := client.ProviderErrorCode(err)
	require.True(t, ok)
	assert.Equal(t, client.CodeUnrecognizedChain, code)

	require.NoError(t, p.AddChain(ctx, model.ChainDescriptor{ChainID: 11155111, ChainName: "Sepolia"}))
	require.NoError(t, p.SwitchChain(ctx, sepolia))

	ev := <-events
	assert.Equal(t, client.ChainChanged, ev.Kind)
	assert.Equal(t, sepolia, ev.ChainID)

	id, err := p.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, sepolia, id)

	// same chain again emits nothing
	require.NoError(t, p.SwitchChain(ctx, sepolia))
	assert.Empty(t, events)
}
