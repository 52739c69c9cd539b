package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

// maxResponseBytes caps how much of a backend response is read
const maxResponseBytes = 4 << 20

// enveloped is implemented by every backend response through the embedded model.Envelope
type enveloped interface {
	GetEnvelope() *model.Envelope
}

// BackendClient is a client for the DocuChain backend REST API.
// The session cookie set by /login is kept in the client's cookie jar.
type BackendClient struct {
	baseURL string
	client  *http.Client
}

// NewBackendClient creates a new backend client.
// A zero timeout leaves requests bounded only by their context.
func NewBackendClient(baseURL string, timeout time.Duration) (*BackendClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

// Login authenticates and stores the session cookie
func (c *BackendClient) Login(ctx context.Context, username, password string) (*model.AccountUser, error) {
	var resp model.UserResponse
	if err := c.do(ctx, http.MethodPost, "/login", model.LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("backend /login: response has no user")
	}
	return resp.User, nil
}

// Logout clears the backend session
func (c *BackendClient) Logout(ctx context.Context) error {
	var resp model.Envelope
	return c.do(ctx, http.MethodPost, "/logout", nil, &resp)
}

// CurrentUser returns the logged-in account
func (c *BackendClient) CurrentUser(ctx context.Context) (*model.AccountUser, error) {
	var resp model.UserResponse
	if err := c.do(ctx, http.MethodGet, "/current-user", nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("backend /current-user: response has no user")
	}
	return resp.User, nil
}

// SyncWallet upserts the account's active wallet
func (c *BackendClient) SyncWallet(ctx context.Context, walletAddress string) (*model.SyncWalletResponse, error) {
	var resp model.SyncWalletResponse
	if err := c.do(ctx, http.MethodPost, "/sync-wallet", model.WalletRequest{WalletAddress: walletAddress}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConnectWallet records a generic wallet connection
func (c *BackendClient) ConnectWallet(ctx context.Context, walletAddress string) (*model.ConnectWalletResponse, error) {
	var resp model.ConnectWalletResponse
	if err := c.do(ctx, http.MethodPost, "/connect-wallet", model.WalletRequest{WalletAddress: walletAddress}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UserWallets lists the wallets linked to the logged-in account
func (c *BackendClient) UserWallets(ctx context.Context) (*model.UserWalletsResponse, error) {
	var resp model.UserWalletsResponse
	if err := c.do(ctx, http.MethodGet, "/user-wallets", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddWallet links a wallet to the logged-in account.
// A wallet owned by another account yields a *BackendError with Code WALLET_ALREADY_CONNECTED.
func (c *BackendClient) AddWallet(ctx context.Context, walletAddress string) error {
	var resp model.Envelope
	return c.do(ctx, http.MethodPost, "/add-wallet", model.WalletRequest{WalletAddress: walletAddress}, &resp)
}

// SwitchWallet sets the account's active wallet
func (c *BackendClient) SwitchWallet(ctx context.Context, walletAddress string) (*model.SwitchWalletResponse, error) {
	var resp model.SwitchWalletResponse
	if err := c.do(ctx, http.MethodPost, "/switch-wallet", model.WalletRequest{WalletAddress: walletAddress}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveWallet unlinks a wallet from the account
func (c *BackendClient) RemoveWallet(ctx context.Context, walletAddress string) error {
	var resp model.Envelope
	return c.do(ctx, http.MethodPost, "/remove-wallet", model.WalletRequest{WalletAddress: walletAddress}, &resp)
}

// CheckWalletAccounts lists the accounts a wallet can log into
func (c *BackendClient) CheckWalletAccounts(ctx context.Context, walletAddress string) ([]model.AccountCandidate, error) {
	var resp model.CheckWalletAccountsResponse
	if err := c.do(ctx, http.MethodPost, "/check-wallet-accounts", model.WalletRequest{WalletAddress: walletAddress}, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// SwitchToAccount moves the backend session to another account
func (c *BackendClient) SwitchToAccount(ctx context.Context, username, walletAddress string) (*model.AccountUser, error) {
	var resp model.UserResponse
	req := model.SwitchAccountRequest{Username: username, WalletAddress: walletAddress}
	if err := c.do(ctx, http.MethodPost, "/switch-to-account", req, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("backend /switch-to-account: response has no user")
	}
	return resp.User, nil
}

// MyDocuments lists documents owned by the account's wallet
func (c *BackendClient) MyDocuments(ctx context.Context) ([]model.Document, error) {
	var resp model.DocumentsResponse
	if err := c.do(ctx, http.MethodGet, "/my-documents", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// SharedDocuments lists documents shared with the session's wallet
func (c *BackendClient) SharedDocuments(ctx context.Context) ([]model.Document, error) {
	var resp model.DocumentsResponse
	if err := c.do(ctx, http.MethodGet, "/shared-documents", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// do sends a JSON request and decodes the envelope into out.
// Failed envelopes and non-2xx statuses become *BackendError.
func (c *BackendClient) do(ctx context.Context, method, path string, body any, out enveloped) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", path, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", path, err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if err := json.Unmarshal(data, out); err != nil {
		if !ok {
			return &BackendError{Status: resp.StatusCode, Path: path, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	env := out.GetEnvelope()
	if !ok || !env.Success {
		return &BackendError{
			Status:       resp.StatusCode,
			Path:         path,
			Message:      env.Error,
			Code:         env.Code,
			Suggestion:   env.Suggestion,
			ConflictUser: env.ConflictUser,
		}
	}
	return nil
}
