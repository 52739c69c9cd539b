package handler

import (
	"context"
	"net/http"

	"github.com/AlexZinkM/docuchain-wallet/internal/common"
	"github.com/AlexZinkM/docuchain-wallet/internal/model"
	"github.com/AlexZinkM/docuchain-wallet/session"
)

// AccountSelector picks the selected account inside a wallet; implemented by the development wallet
type AccountSelector interface {
	SelectAccount(address string) error
}

// WalletHandler serves the wallet session and the account's linked wallets
type WalletHandler struct {
	session  *session.Session
	selector AccountSelector
}

// NewWalletHandler creates a WalletHandler; selector may be nil when the provider has no local UI
func NewWalletHandler(s *session.Session, selector AccountSelector) *WalletHandler {
	return &WalletHandler{session: s, selector: selector}
}

// Session handles GET /wallet/session
// @Summary      Wallet session
// @Description  Connected wallet and network as the tracker sees them
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /wallet/session [get]
func (h *WalletHandler) Session(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	view := h.session.Tracker.View()
	resp := model.SessionResponse{
		Connected:    view.Connected,
		ActiveWallet: view.ActiveWallet,
		ShortWallet:  common.ShortAddress(view.ActiveWallet),
		ChainOK:      view.ChainOK,
		Network:      h.session.Tracker.Chain().ChainName,
	}
	if view.ChainID != 0 {
		resp.ChainID = common.ChainIDHex(view.ChainID)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Connect handles POST /wallet/connect
// @Summary      Connect wallet
// @Description  Requests account access from the wallet provider and adopts the first account
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ConnectResponse
// @Failure      403  {object}  model.ErrorResponse
// @Failure      503  {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	address, err := h.session.Tracker.Connect(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ConnectResponse{Success: true, ActiveWallet: address})
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect wallet
// @Description  Detaches the wallet from the session; the provider's own permission is kept
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.Envelope
// @Router       /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	h.session.Tracker.Disconnect(r.Context())
	writeJSON(w, http.StatusOK, model.Envelope{Success: true, Message: "Wallet disconnected"})
}

// List handles GET /wallet/list
// @Summary      Linked wallets
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletsResponse
// @Router       /wallet/list [get]
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, http.StatusOK, walletsResponse(h.session.Wallets.Snapshot()))
}

// Add handles POST /wallet/add
// @Summary      Link wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.WalletActionRequest  true  "Wallet"
// @Success      200      {object}  model.WalletsResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/add [post]
func (h *WalletHandler) Add(w http.ResponseWriter, r *http.Request) {
	h.walletAction(w, r, h.session.Wallets.AddWallet)
}

// Switch handles POST /wallet/switch
// @Summary      Switch active wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.WalletActionRequest  true  "Wallet"
// @Success      200      {object}  model.WalletsResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /wallet/switch [post]
func (h *WalletHandler) Switch(w http.ResponseWriter, r *http.Request) {
	h.walletAction(w, r, h.session.Wallets.SwitchWallet)
}

// Remove handles POST /wallet/remove
// @Summary      Unlink wallet
// @Description  The last wallet of an account cannot be removed
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.WalletActionRequest  true  "Wallet"
// @Success      200      {object}  model.WalletsResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/remove [post]
func (h *WalletHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.walletAction(w, r, h.session.Wallets.RemoveWallet)
}

// ConnectCurrent handles POST /wallet/connect-current
// @Summary      Use the provider's wallet
// @Description  Switches to the provider's current wallet, linking it to the account first when needed
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ConnectResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /wallet/connect-current [post]
func (h *WalletHandler) ConnectCurrent(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	address, err := h.session.Wallets.ConnectCurrentProviderWallet(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ConnectResponse{Success: true, ActiveWallet: address})
}

// QR handles GET /wallet/qr
// @Summary      QR code of a wallet
// @Description  PNG QR code of the given address, or of the active wallet
// @Tags         wallet
// @Produce      png
// @Param        address  query  string  false  "Wallet address"
// @Success      200
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/qr [get]
func (h *WalletHandler) QR(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	address := r.URL.Query().Get("address")
	if address == "" {
		active, ok := h.session.Tracker.Active()
		if !ok {
			writeMessage(w, http.StatusNotFound, "no active wallet")
			return
		}
		address = active
	}
	address, err := common.NormalizeAddress(address)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	png, err := common.QRCodePNG(address)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// Notifications handles GET /wallet/notifications
// @Summary      Recent notifications
// @Tags         wallet
// @Produce      json
// @Success      200  {array}  model.NotificationResponse
// @Router       /wallet/notifications [get]
func (h *WalletHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	notes := h.session.Inbox.Snapshot()
	resp := make([]model.NotificationResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, model.NotificationResponse{
			ID:        n.ID,
			Level:     n.Level,
			Kind:      string(n.Kind),
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// MyDocuments handles GET /documents/mine
// @Summary      Documents of the active wallet
// @Tags         documents
// @Produce      json
// @Param        refresh  query     bool  false  "Reload from the backend first"
// @Success      200      {array}   model.Document
// @Router       /documents/mine [get]
func (h *WalletHandler) MyDocuments(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	if r.URL.Query().Get("refresh") == "true" {
		h.session.Documents.ReloadMyDocuments(r.Context())
	}
	writeDocuments(w, h.session.Documents.MyDocuments())
}

// SharedDocuments handles GET /documents/shared
// @Summary      Documents shared with the active wallet
// @Tags         documents
// @Produce      json
// @Param        refresh  query     bool  false  "Reload from the backend first"
// @Success      200      {array}   model.Document
// @Router       /documents/shared [get]
func (h *WalletHandler) SharedDocuments(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	if r.URL.Query().Get("refresh") == "true" {
		h.session.Documents.ReloadSharedDocuments(r.Context())
	}
	writeDocuments(w, h.session.Documents.SharedDocuments())
}

// SelectProviderAccount handles POST /provider/select
// @Summary      Select account in the development wallet
// @Description  Simulates picking another account in the wallet UI; emits accountsChanged
// @Tags         provider
// @Accept       json
// @Produce      json
// @Param        request  body      model.WalletActionRequest  true  "Wallet"
// @Success      200      {object}  model.Envelope
// @Failure      501      {object}  model.ErrorResponse
// @Router       /provider/select [post]
func (h *WalletHandler) SelectProviderAccount(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	if h.selector == nil {
		writeMessage(w, http.StatusNotImplemented, "the configured provider has no account selection")
		return
	}

	var req model.WalletActionRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.selector.SelectAccount(req.WalletAddress); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, model.Envelope{Success: true, Message: "Account selected"})
}

// walletAction runs a Multiplexer operation on the posted wallet and answers with the new set
func (h *WalletHandler) walletAction(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, address string) error) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.WalletActionRequest
	if !decode(w, r, &req) {
		return
	}
	if req.WalletAddress == "" {
		writeMessage(w, http.StatusBadRequest, "walletAddress is required")
		return
	}

	if err := op(r.Context(), req.WalletAddress); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, walletsResponse(h.session.Wallets.Snapshot()))
}

func writeDocuments(w http.ResponseWriter, docs []model.Document) {
	if docs == nil {
		docs = []model.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func walletsResponse(set session.WalletSet) model.WalletsResponse {
	wallets := set.Wallets
	if wallets == nil {
		wallets = []string{}
	}
	return model.WalletsResponse{
		Account:      set.Account,
		State:        set.State.String(),
		Wallets:      wallets,
		ActiveWallet: set.Active,
	}
}
