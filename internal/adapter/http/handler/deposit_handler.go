package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/usecase"
)

// DepositHandler handles deposit initiation.
type DepositHandler struct {
	depositUC *usecase.DepositUseCase
}

// NewDepositHandler creates a new DepositHandler.
func NewDepositHandler(depositUC *usecase.DepositUseCase) *DepositHandler {
	return &DepositHandler{depositUC: depositUC}
}

// Initiate starts a deposit and returns the provider's authorization URL.
// The wallet is not credited here; that happens when the provider confirms
// the charge through the webhook.
func (h *DepositHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := req.ParseAmount()
	if err != nil {
		writeError(w, mapDomainError(err), "invalid amount", err.Error())
		return
	}

	intent, err := h.depositUC.InitiateDeposit(r.Context(), identity.OwnerID, amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to initiate deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.DepositIntentFromUseCase(intent))
}
