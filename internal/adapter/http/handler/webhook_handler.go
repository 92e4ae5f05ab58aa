package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/gowallet/internal/adapter/provider"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
	"github.com/iho/gowallet/internal/usecase"
)

const maxWebhookBody = 1 << 20

// WebhookHandler receives charge notifications from the payment processor.
type WebhookHandler struct {
	verifier  *provider.WebhookVerifier
	depositUC *usecase.DepositUseCase
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(
	verifier *provider.WebhookVerifier,
	depositUC *usecase.DepositUseCase,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		verifier:  verifier,
		depositUC: depositUC,
		metrics:   m,
		logger:    logger,
	}
}

// Handle verifies and processes a processor notification. The processor
// retries on non-2xx, so anything already settled or unknown is acknowledged
// with 200; only a bad signature is rejected.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		h.count("read_error")
		writeError(w, http.StatusBadRequest, "failed to read body", err.Error())
		return
	}

	event, err := h.verifier.Verify(body, r.Header.Get(provider.SignatureHeader))
	if err != nil {
		h.count("invalid_signature")
		h.logger.Warn().Err(err).Msg("webhook signature verification failed")
		writeError(w, http.StatusUnauthorized, "invalid signature", "")
		return
	}

	if !event.IsChargeOutcome() {
		// Disputes and other informational events carry the charge
		// reference but do not decide it. Acknowledge and move on.
		h.count("ignored")
		h.logger.Info().
			Str("event", event.Event).
			Str("reference", event.Data.Reference).
			Msg("ignoring non-charge webhook event")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	credited, err := h.depositUC.ConfirmDeposit(r.Context(), event.Data.Reference, event.Succeeded())
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		// A reference we never issued. Log and acknowledge so the
		// processor stops retrying.
		h.count("unknown_reference")
		h.logger.Warn().
			Str("reference", event.Data.Reference).
			Str("event", event.Event).
			Msg("webhook for unknown reference")
	case err != nil:
		h.count("error")
		h.logger.Error().Err(err).
			Str("reference", event.Data.Reference).
			Msg("webhook processing failed")
		writeError(w, http.StatusInternalServerError, "failed to process webhook", "")
		return
	case credited:
		h.count("credited")
	default:
		h.count("no_op")
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *WebhookHandler) count(outcome string) {
	if h.metrics != nil {
		h.metrics.WebhookEvents.WithLabelValues(outcome).Inc()
	}
}
