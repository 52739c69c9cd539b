package handler

import (
	"net/http"

	"github.com/AlexZinkM/docuchain-wallet/internal/model"
	"github.com/AlexZinkM/docuchain-wallet/session"
)

// AccountHandler serves backend account operations
type AccountHandler struct {
	session *session.Session
}

func NewAccountHandler(s *session.Session) *AccountHandler {
	return &AccountHandler{session: s}
}

// Login handles POST /account/login
// @Summary      Log in
// @Description  Logs into the backend and loads the account's linked wallets
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request  body      model.LoginRequest  true  "Credentials"
// @Success      200      {object}  model.AccountUser
// @Failure      401      {object}  model.ErrorResponse
// @Router       /account/login [post]
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.session.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout handles POST /account/logout
// @Summary      Log out
// @Tags         account
// @Produce      json
// @Success      200  {object}  model.Envelope
// @Router       /account/logout [post]
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	if err := h.session.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.Envelope{Success: true, Message: "Logged out"})
}

// Me handles GET /account/me
// @Summary      Current account
// @Tags         account
// @Produce      json
// @Success      200  {object}  model.AccountUser
// @Failure      401  {object}  model.ErrorResponse
// @Router       /account/me [get]
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	user, err := h.session.CurrentUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Check handles POST /accounts/check
// @Summary      Accounts of a wallet
// @Description  Lists the accounts a wallet can log into, without switching
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request  body      model.WalletActionRequest  true  "Wallet"
// @Success      200      {object}  model.AccountResolutionResponse
// @Router       /accounts/check [post]
func (h *AccountHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.WalletActionRequest
	if !decode(w, r, &req) {
		return
	}

	candidates, err := h.session.Accounts.CheckAvailableAccounts(r.Context(), req.WalletAddress)
	if err != nil {
		writeError(w, err)
		return
	}
	res := session.NewResolution(candidates)
	if res.Candidates == nil {
		res.Candidates = []model.AccountCandidate{}
	}
	writeJSON(w, http.StatusOK, model.AccountResolutionResponse{
		Outcome:    string(res.Outcome),
		Candidates: res.Candidates,
	})
}

// Switch handles POST /accounts/switch
// @Summary      Switch account
// @Description  Moves the backend session to another account of the same wallet and reloads its wallets
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request  body      model.SwitchAccountRequest  true  "Target account"
// @Success      200      {object}  model.AccountUser
// @Router       /accounts/switch [post]
func (h *AccountHandler) Switch(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.SwitchAccountRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Username == "" {
		writeMessage(w, http.StatusBadRequest, "username is required")
		return
	}

	user, err := h.session.SwitchAccount(r.Context(), model.AccountCandidate{
		Username:      req.Username,
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
