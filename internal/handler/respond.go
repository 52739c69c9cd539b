package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/docuchain-wallet/internal/client"
	"github.com/AlexZinkM/docuchain-wallet/internal/model"
	"github.com/AlexZinkM/docuchain-wallet/session"
)

// kindStatus maps session failures to HTTP statuses
var kindStatus = map[session.Kind]int{
	session.ProviderUnavailable:    http.StatusServiceUnavailable,
	session.UserRejected:           http.StatusForbidden,
	session.NoAccountsReturned:     http.StatusConflict,
	session.WalletAlreadyLinked:    http.StatusConflict,
	session.WalletNotLinked:        http.StatusNotFound,
	session.CannotRemoveLastWallet: http.StatusConflict,
	session.BackendSyncFailure:     http.StatusBadGateway,
	session.ProviderError:          http.StatusBadGateway,
	session.InvalidAddress:         http.StatusBadRequest,
	session.NotInitialized:         http.StatusUnauthorized,
	session.Superseded:             http.StatusConflict,
	session.SwitchAfterAddFailed:   http.StatusBadGateway,
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeError answers with model.ErrorResponse, choosing the status from the error
func writeError(w http.ResponseWriter, err error) {
	var sessionErr *session.Error
	if errors.As(err, &sessionErr) {
		status, ok := kindStatus[sessionErr.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, model.ErrorResponse{
			Error:      sessionErr.UserMessage(),
			Code:       string(sessionErr.Kind),
			Suggestion: sessionErr.Suggestion,
		})
		return
	}

	if backendErr, ok := client.AsBackendError(err); ok {
		status := backendErr.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		message := backendErr.Message
		if message == "" {
			message = backendErr.Error()
		}
		writeJSON(w, status, model.ErrorResponse{
			Error:      message,
			Code:       backendErr.Code,
			Suggestion: backendErr.Suggestion,
		})
		return
	}

	writeMessage(w, http.StatusInternalServerError, err.Error())
}

// allow rejects requests with another method
func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed. Should be "+method, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// decode reads a JSON body into v, answering 400 on failure
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
