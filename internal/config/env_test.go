package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KEY_FILES", "a.dcw,b.dcw")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, uint64(11155111), c.ChainID)
	assert.Equal(t, ProviderKeyfile, c.Provider)
	assert.Equal(t, []string{"a.dcw", "b.dcw"}, c.KeyFiles)
	assert.Equal(t, time.Duration(0), c.BackendTimeout)
}

func TestLoadRejectsBadProvider(t *testing.T) {
	t.Setenv("PROVIDER", "metamask")
	_, err := Load()
	assert.Error(t, err)

	c := &Config{Provider: ProviderKeyfile, ChainID: 1}
	assert.Error(t, c.Validate())

	c = &Config{Provider: ProviderNone}
	assert.Error(t, c.Validate(), "zero chain id")

	c = &Config{Provider: ProviderNone, ChainID: 1}
	assert.NoError(t, c.Validate())
}

func TestLoadRPCProvider(t *testing.T) {
	t.Setenv("PROVIDER", ProviderRPC)
	t.Setenv("PROVIDER_URL", "ws://127.0.0.1:1248")
	t.Setenv("BACKEND_TIMEOUT", "5s")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.BackendTimeout)
}

func TestGetPanicsBeforeInit(t *testing.T) {
	saved := cfg
	cfg = nil
	defer func() { cfg = saved }()

	assert.Panics(t, func() { Get() })
}

func TestGetPasswordBytesUnset(t *testing.T) {
	saved := passwordBytes
	passwordBytes = nil
	defer func() { passwordBytes = saved }()

	_, err := GetPasswordBytes()
	assert.Error(t, err)
}

func TestConfigChain(t *testing.T) {
	t.Setenv("PROVIDER", ProviderNone)

	c, err := Load()
	require.NoError(t, err)

	chain := c.Chain()
	assert.Equal(t, uint64(11155111), uint64(chain.ChainID))
	assert.Equal(t, "Sepolia Testnet", chain.ChainName)
	assert.Equal(t, uint8(18), chain.NativeCurrency.Decimals)
	assert.Equal(t, []string{"https://rpc.sepolia.org"}, chain.RPCURLs)
}
