package handler

import (
	"net/http"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/usecase"
)

// WalletHandler handles wallet reads.
type WalletHandler struct {
	walletUC *usecase.WalletUseCase
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC *usecase.WalletUseCase) *WalletHandler {
	return &WalletHandler{walletUC: walletUC}
}

// GetBalance returns the caller's wallet number and balance.
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	snapshot, err := h.walletUC.GetBalance(r.Context(), identity.OwnerID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromSnapshot(snapshot))
}
