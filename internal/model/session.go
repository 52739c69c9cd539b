package model

import "time"

// SessionResponse represents response for GET /wallet/session
type SessionResponse struct {
	Connected    bool   `json:"connected"`
	ActiveWallet string `json:"activeWallet,omitempty"`
	ShortWallet  string `json:"shortWallet,omitempty"`
	ChainID      string `json:"chainId,omitempty"`
	ChainOK      bool   `json:"chainOk"`
	Network      string `json:"network"`
}

// WalletsResponse represents response for GET /wallet/list
type WalletsResponse struct {
	Account      string   `json:"account,omitempty"`
	State        string   `json:"state"`
	Wallets      []string `json:"wallets"`
	ActiveWallet string   `json:"activeWallet,omitempty"`
}

// WalletActionRequest represents request for POST /wallet/{add,switch,remove} and /provider/select
type WalletActionRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

// ConnectResponse represents response for POST /wallet/connect and /wallet/connect-current
type ConnectResponse struct {
	Success      bool   `json:"success"`
	ActiveWallet string `json:"activeWallet"`
}

// NotificationResponse is one entry of GET /wallet/notifications
type NotificationResponse struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Kind      string    `json:"kind,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountResolutionResponse represents response for POST /accounts/check
type AccountResolutionResponse struct {
	Outcome    string             `json:"outcome"`
	Candidates []AccountCandidate `json:"candidates"`
}
