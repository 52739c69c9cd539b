package model

// CodeWalletAlreadyConnected is returned by /add-wallet when the wallet belongs to another account
const CodeWalletAlreadyConnected = "WALLET_ALREADY_CONNECTED"

// Envelope is the {success, ...} wrapper every backend response carries
type Envelope struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	Error        string `json:"error,omitempty"`
	Code         string `json:"code,omitempty"`
	Suggestion   string `json:"suggestion,omitempty"`
	ConflictUser string `json:"conflictUser,omitempty"`
}

// WalletRequest is the body of every wallet-scoped POST
type WalletRequest struct {
	WalletAddress string `json:"walletAddress"`
}

// LoginRequest represents request for POST /login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AccountUser is the backend's view of a logged-in account
type AccountUser struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	WalletAddress string `json:"walletAddress"`
}

// UserResponse represents response for /login, /current-user and /switch-to-account
type UserResponse struct {
	Envelope
	User *AccountUser `json:"user,omitempty"`
}

// SyncWalletResponse represents response for POST /sync-wallet
type SyncWalletResponse struct {
	Envelope
	WalletAddress  string `json:"walletAddress,omitempty"`
	AddressChanged bool   `json:"addressChanged,omitempty"`
	AddressUpdated bool   `json:"addressUpdated,omitempty"`
	OldAddress     string `json:"oldAddress,omitempty"`
	NewAddress     string `json:"newAddress,omitempty"`
}

// Changed reports whether the backend replaced the stored address
func (r *SyncWalletResponse) Changed() bool {
	return r.AddressChanged || r.AddressUpdated
}

// ConnectWalletResponse represents response for POST /connect-wallet
type ConnectWalletResponse struct {
	Envelope
	WalletAddress string `json:"walletAddress,omitempty"`
}

// UserWalletsResponse represents response for GET /user-wallets
type UserWalletsResponse struct {
	Envelope
	Wallets      []string `json:"wallets"`
	ActiveWallet string   `json:"activeWallet"`
}

// SwitchWalletResponse represents response for POST /switch-wallet
type SwitchWalletResponse struct {
	Envelope
	ActiveWallet string `json:"activeWallet,omitempty"`
}

// AccountCandidate is one account a wallet can log into
type AccountCandidate struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	WalletAddress string `json:"walletAddress"`
	DocumentCount int    `json:"documentCount"`
	IsPrimary     bool   `json:"isPrimary"`
}

// CheckWalletAccountsResponse represents response for POST /check-wallet-accounts
type CheckWalletAccountsResponse struct {
	Envelope
	Accounts []AccountCandidate `json:"accounts"`
	Count    int                `json:"count"`
}

// SwitchAccountRequest represents request for POST /switch-to-account
type SwitchAccountRequest struct {
	Username      string `json:"username"`
	WalletAddress string `json:"walletAddress,omitempty"`
}

// GetEnvelope exposes the embedded envelope of any response type
func (e *Envelope) GetEnvelope() *Envelope {
	return e
}
