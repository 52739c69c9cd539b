package session

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/docuchain-wallet/internal/client"
)

// Kind classifies a session failure
type Kind string

const (
	// ProviderUnavailable means no wallet provider is attached; blockchain actions are impossible
	ProviderUnavailable Kind = "ProviderUnavailable"
	// UserRejected means the user declined a provider prompt
	UserRejected       Kind = "UserRejected"
	NoAccountsReturned Kind = "NoAccountsReturned"
	// WalletAlreadyLinked means the backend linked the wallet to another account
	WalletAlreadyLinked    Kind = "WalletAlreadyLinked"
	WalletNotLinked        Kind = "WalletNotLinked"
	CannotRemoveLastWallet Kind = "CannotRemoveLastWallet"
	// BackendSyncFailure is a network or server error talking to the backend
	BackendSyncFailure Kind = "BackendSyncFailure"
	ProviderError      Kind = "ProviderError"
	InvalidAddress     Kind = "InvalidAddress"
	NotInitialized     Kind = "NotInitialized"
	// Superseded means a newer request replaced this one; it is not a failure
	Superseded           Kind = "Superseded"
	SwitchAfterAddFailed Kind = "SwitchAfterAddFailed"
)

// Error is the error every session operation returns
type Error struct {
	Kind         Kind
	Wallet       string
	Message      string
	Suggestion   string
	ConflictUser string
	Err          error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage is the text shown in a notification
func (e *Error) UserMessage() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Suggestion != "" {
		msg += ". " + e.Suggestion
	}
	return msg
}

// KindOf returns the kind of a session error
func KindOf(err error) (Kind, bool) {
	var sessionErr *Error
	if errors.As(err, &sessionErr) {
		return sessionErr.Kind, true
	}
	return "", false
}

// IsKind checks if err is a session error of the given kind
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// providerFailure converts a provider error at the operation boundary
func providerFailure(action string, err error) *Error {
	switch {
	case errors.Is(err, client.ErrProviderUnavailable):
		return &Error{Kind: ProviderUnavailable, Message: "no wallet provider available", Err: err}
	case client.IsUserRejected(err):
		return &Error{Kind: UserRejected, Message: action + " was rejected in the wallet", Err: err}
	default:
		return &Error{Kind: ProviderError, Message: fmt.Sprintf("wallet failed to %s", action), Err: err}
	}
}

// backendFailure converts a backend error at the operation boundary
func backendFailure(wallet, action string, err error) *Error {
	e := &Error{Kind: BackendSyncFailure, Wallet: wallet, Message: "failed to " + action, Err: err}
	if backendErr, ok := client.AsBackendError(err); ok {
		if backendErr.Message != "" {
			e.Message = backendErr.Message
		}
		e.Suggestion = backendErr.Suggestion
	}
	return e
}

func invalidAddress(address string, err error) *Error {
	return &Error{Kind: InvalidAddress, Wallet: address, Message: "invalid wallet address", Err: err}
}
