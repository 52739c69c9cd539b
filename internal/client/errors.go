package client

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

// BackendError is a failed backend call: a {success:false} envelope or a non-2xx status
type BackendError struct {
	Status       int
	Path         string
	Message      string
	Code         string
	Suggestion   string
	ConflictUser string
}

func (e *BackendError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if e.Code != "" {
		return fmt.Sprintf("backend %s: %s (%s, status %d)", e.Path, msg, e.Code, e.Status)
	}
	return fmt.Sprintf("backend %s: %s (status %d)", e.Path, msg, e.Status)
}

// AsBackendError unwraps err into a *BackendError
func AsBackendError(err error) (*BackendError, bool) {
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr, true
	}
	return nil, false
}

// IsWalletConflict checks if error reports a wallet linked to another account
func IsWalletConflict(err error) bool {
	backendErr, ok := AsBackendError(err)
	return ok && backendErr.Code == model.CodeWalletAlreadyConnected
}

// EIP-1193 provider error codes
const (
	CodeUserRejected      = 4001
	CodeUnauthorized      = 4100
	CodeUnsupportedMethod = 4200
	CodeDisconnected      = 4900
	CodeChainDisconnected = 4901
	CodeUnrecognizedChain = 4902
)

// ErrProviderUnavailable means no wallet provider is attached
var ErrProviderUnavailable = errors.New("wallet provider unavailable")

// ProviderError is an error reported by the wallet provider.
// It satisfies go-ethereum's rpc.Error so it travels over JSON-RPC with its code.
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// ErrorCode returns the EIP-1193 code
func (e *ProviderError) ErrorCode() int {
	return e.Code
}

// ProviderErrorCode extracts the EIP-1193 code from err, if any
func ProviderErrorCode(err error) (int, bool) {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Code, true
	}
	return 0, false
}

// IsUserRejected checks if the user declined a provider prompt
func IsUserRejected(err error) bool {
	code, ok := ProviderErrorCode(err)
	return ok && code == CodeUserRejected
}
