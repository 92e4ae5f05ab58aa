package provider

import (
	"errors"
	"testing"

	"github.com/iho/gowallet/internal/domain"
)

func TestWebhookVerifyValidSignature(t *testing.T) {
	v := NewWebhookVerifier("sk_test")
	body := []byte(`{"event":"charge.success","data":{"reference":"txn_01","amount":500000,"status":"success"}}`)

	event, err := v.Verify(body, v.Sign(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !event.Succeeded() {
		t.Fatalf("expected success event")
	}
	if event.Data.Reference != "txn_01" {
		t.Fatalf("unexpected reference %q", event.Data.Reference)
	}
	if event.Data.Amount != 500000 {
		t.Fatalf("unexpected amount %d", event.Data.Amount)
	}
}

func TestWebhookVerifyInvalidSignature(t *testing.T) {
	v := NewWebhookVerifier("sk_test")
	body := []byte(`{"event":"charge.success"}`)

	_, err := v.Verify(body, "deadbeef")
	if !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestWebhookVerifyTamperedBody(t *testing.T) {
	v := NewWebhookVerifier("sk_test")
	body := []byte(`{"event":"charge.success","data":{"reference":"txn_01"}}`)
	sig := v.Sign(body)

	tampered := []byte(`{"event":"charge.success","data":{"reference":"txn_99"}}`)
	if _, err := v.Verify(tampered, sig); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestWebhookFailedEvent(t *testing.T) {
	v := NewWebhookVerifier("sk_test")
	body := []byte(`{"event":"charge.failed","data":{"reference":"txn_02","status":"failed"}}`)

	event, err := v.Verify(body, v.Sign(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Succeeded() {
		t.Fatalf("expected failed event")
	}
}
