package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"

	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

// Provider modes
const (
	ProviderKeyfile = "keyfile"
	ProviderRPC     = "rpc"
	ProviderNone    = "none"
)

// Config contains all configuration parameters for the application.
// Note: the keyfile password is prompted at runtime, see PromptForPassword()
type Config struct {
	Port             string        `envconfig:"PORT" default:"8080"`
	BackendURL       string        `envconfig:"BACKEND_URL" default:"http://localhost:5000/api"`
	BackendTimeout   time.Duration `envconfig:"BACKEND_TIMEOUT" default:"0s"`
	ChainID          uint64        `envconfig:"CHAIN_ID" default:"11155111"`
	ChainName        string        `envconfig:"CHAIN_NAME" default:"Sepolia Testnet"`
	ChainRPCURL      string        `envconfig:"CHAIN_RPC_URL" default:"https://rpc.sepolia.org"`
	ChainExplorerURL string        `envconfig:"CHAIN_EXPLORER_URL" default:"https://sepolia.etherscan.io"`
	Provider         string        `envconfig:"PROVIDER" default:"keyfile"`
	ProviderURL      string        `envconfig:"PROVIDER_URL" default:"ws://127.0.0.1:1248"`
	KeyFiles         []string      `envconfig:"KEY_FILES"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment   bool          `envconfig:"LOG_DEVELOPMENT" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
// A .env file in the working directory is applied first when present.
func Init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads the configuration from the environment without touching the global instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderKeyfile:
		if len(c.KeyFiles) == 0 {
			return errors.New("KEY_FILES must list at least one keyfile when PROVIDER=keyfile")
		}
	case ProviderRPC:
		if c.ProviderURL == "" {
			return errors.New("PROVIDER_URL is required when PROVIDER=rpc")
		}
	case ProviderNone:
	default:
		return fmt.Errorf("unknown PROVIDER %q: use keyfile, rpc or none", c.Provider)
	}
	if c.ChainID == 0 {
		return errors.New("CHAIN_ID must not be zero")
	}
	if c.BackendTimeout < 0 {
		return errors.New("BACKEND_TIMEOUT must not be negative")
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetBackendURL returns the backend API base URL
func GetBackendURL() string {
	return Get().BackendURL
}

// GetChainID returns the chain id the session expects the wallet to be on
func GetChainID() uint64 {
	return Get().ChainID
}

// Chain returns the wallet_addEthereumChain descriptor of the expected chain
func (c *Config) Chain() model.ChainDescriptor {
	chain := model.ChainDescriptor{
		ChainID:        hexutil.Uint64(c.ChainID),
		ChainName:      c.ChainName,
		NativeCurrency: model.NativeCurrency{Name: "ETH", Symbol: "ETH", Decimals: 18},
	}
	if c.ChainRPCURL != "" {
		chain.RPCURLs = []string{c.ChainRPCURL}
	}
	if c.ChainExplorerURL != "" {
		chain.BlockExplorerURLs = []string{c.ChainExplorerURL}
	}
	return chain
}

var passwordBytes []byte

// PromptForPassword prompts the user for the keyfile password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
func PromptForPassword() error {
	raw, err := ReadPassword("Enter wallet password: ")
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	passwordBytes = make([]byte, len(raw))
	copy(passwordBytes, raw)
	clear(raw)
	return nil
}

// ReadPassword reads one hidden line from the terminal.
// An empty result is returned as-is; callers decide whether that means "declined".
func ReadPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return raw, nil
}

// GetPasswordBytes returns the password stored in memory (from PromptForPassword).
// Caller must zero the returned slice after use for security.
func GetPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
