package httpserver

import (
	"net/http"

	"suite_hotel/internal/app"
	"suite_hotel/internal/domain"
)

type sessionResponse struct {
	User      *domain.User `json:"user"`
	Connected bool         `json:"connected"`
	Short     string       `json:"shortAddress,omitempty"`
	Display   string       `json:"displayBalance,omitempty"`
}

func newSessionResponse(u domain.User, ok, connected bool) sessionResponse {
	if !ok {
		return sessionResponse{Connected: connected}
	}
	return sessionResponse{
		User:      &u,
		Connected: connected,
		Short:     app.TruncateAddress(u.Address, 6, 4),
		Display:   app.FormatBalance(u.Balance, app.SuiDecimals),
	}
}

func (h *Handlers) getSession(w http.ResponseWriter, r *http.Request) {
	u, ok := h.Session.User()
	writeJSON(w, http.StatusOK, newSessionResponse(u, ok, h.Session.IsConnected()))
}

type connectRequest struct {
	Address    string `json:"address" validate:"required"`
	WalletName string `json:"walletName"`
}

func (h *Handlers) connect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	u, err := h.Session.Connect(r.Context(), req.Address, req.WalletName)
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(u, true, true))
}

func (h *Handlers) disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Disconnect(r.Context()); err != nil {
		writeError(w, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) refreshBalance(w http.ResponseWriter, r *http.Request) {
	u, err := h.Session.RefreshBalance(r.Context())
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(u, true, true))
}

func (h *Handlers) checkConnection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"connected": h.Session.CheckConnection(r.Context())})
}
