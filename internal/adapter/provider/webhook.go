package provider

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"

	"github.com/iho/gowallet/internal/domain"
)

// Webhook event types sent by the processor.
const (
	WebhookEventChargeSuccess = "charge.success"
	WebhookEventChargeFailed  = "charge.failed"

	// SignatureHeader carries the hex HMAC-SHA512 of the raw webhook body.
	SignatureHeader = "X-Provider-Signature"
)

// WebhookEvent is the parsed payload of a processor notification.
type WebhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Status    string `json:"status"`
	} `json:"data"`
}

// Succeeded reports whether the event confirms a completed charge.
func (e *WebhookEvent) Succeeded() bool {
	return e.Event == WebhookEventChargeSuccess
}

// IsChargeOutcome reports whether the event settles a charge one way or the
// other. The processor also sends informational events (disputes, transfers)
// that carry a charge reference without deciding it.
func (e *WebhookEvent) IsChargeOutcome() bool {
	return e.Event == WebhookEventChargeSuccess || e.Event == WebhookEventChargeFailed
}

// WebhookVerifier authenticates and parses processor webhooks.
type WebhookVerifier struct {
	secretKey []byte
}

// NewWebhookVerifier creates a new WebhookVerifier.
func NewWebhookVerifier(secretKey string) *WebhookVerifier {
	return &WebhookVerifier{secretKey: []byte(secretKey)}
}

// Verify checks the signature over the raw body and parses the event. The
// comparison is constant time.
func (v *WebhookVerifier) Verify(body []byte, signature string) (*WebhookEvent, error) {
	mac := hmac.New(sha512.New, v.secretKey)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, domain.ErrInvalidSignature
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// Sign computes the signature the processor would attach to body. Used by
// tests and the static provider.
func (v *WebhookVerifier) Sign(body []byte) string {
	mac := hmac.New(sha512.New, v.secretKey)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
