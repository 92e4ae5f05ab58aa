package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	adaptershttp "github.com/iho/gowallet/internal/adapter/http"
	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/adapter/http/handler"
	"github.com/iho/gowallet/internal/adapter/provider"
	"github.com/iho/gowallet/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/gowallet/internal/adapter/repository/redis"
	"github.com/iho/gowallet/internal/infrastructure/auth"
	infraredis "github.com/iho/gowallet/internal/infrastructure/redis"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/tests/testutil"
)

const webhookSecret = "whsec_integration"

type testServer struct {
	router   http.Handler
	verifier *provider.WebhookVerifier
}

func newTestServer(t *testing.T, testDB *testutil.TestDB) *testServer {
	t.Helper()

	ctx := context.Background()
	pool := testDB.Pool

	walletRepo := postgres.NewWalletRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()
	numberGen := postgres.NewWalletNumberGenerator()
	retrier := postgres.NewRetrier()

	jwtManager := auth.NewJWTManager("integration-secret", time.Hour)
	verifier := provider.NewWebhookVerifier(webhookSecret)
	paymentProvider := provider.NewStaticProvider()

	walletUC := usecase.NewWalletUseCase(walletRepo, numberGen, idGen, nil, nil)
	depositUC := usecase.NewDepositUseCase(txManager, walletRepo, entryRepo, userRepo, outboxRepo, auditRepo, paymentProvider, idGen, nil, nil)
	transferUC := usecase.NewTransferUseCase(txManager, walletRepo, entryRepo, outboxRepo, auditRepo, idGen, retrier, nil, nil)
	entryUC := usecase.NewEntryUseCase(entryRepo, walletRepo)
	userUC := usecase.NewUserUseCase(txManager, userRepo, walletUC, outboxRepo, auditRepo, idGen)
	reconciliationUC := usecase.NewReconciliationUseCase(ledgerRepo)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AuthHandler:      handler.NewAuthHandler(userUC, jwtManager),
		WalletHandler:    handler.NewWalletHandler(walletUC),
		DepositHandler:   handler.NewDepositHandler(depositUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		EntryHandler:     handler.NewEntryHandler(entryUC),
		WebhookHandler:   handler.NewWebhookHandler(verifier, depositUC, nil, zerolog.Nop()),
		LedgerHandler:    handler.NewLedgerHandler(reconciliationUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		JWTManager:       jwtManager,
		IdempotencyStore: redisrepo.NewIdempotencyStore(redisClient),
	})

	return &testServer{router: router, verifier: verifier}
}

func (s *testServer) do(method, path, token string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) webhook(event, reference string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(map[string]any{
		"event": event,
		"data":  map[string]any{"reference": reference, "status": event},
	})

	req := httptest.NewRequest(http.MethodPost, "/webhooks/provider", bytes.NewReader(payload))
	req.Header.Set(provider.SignatureHeader, s.verifier.Sign(payload))

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(t *testing.T, email string) (token string, walletNumber string) {
	t.Helper()

	rec := s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Email:    email,
		Name:     "Integration Owner",
		Password: "s3cretpass",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var registered dto.RegisterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &registered); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		Email:    email,
		Password: "s3cretpass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var login dto.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	return login.Token, registered.Wallet.WalletNumber
}

func (s *testServer) balanceMinor(t *testing.T, token string) int64 {
	t.Helper()

	rec := s.do(http.MethodGet, "/api/v1/wallet/balance", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("balance: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var balance dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &balance); err != nil {
		t.Fatalf("failed to decode balance response: %v", err)
	}
	return balance.BalanceMinor
}

func TestWalletFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	server := newTestServer(t, testDB)

	senderToken, _ := server.register(t, "sender@example.com")
	recipientToken, recipientNumber := server.register(t, "recipient@example.com")

	// Deposit 500.00 through the provider flow.
	rec := server.do(http.MethodPost, "/api/v1/deposits", senderToken, dto.DepositRequest{Amount: "500.00"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("deposit: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var intent dto.DepositIntentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &intent); err != nil {
		t.Fatalf("failed to decode deposit response: %v", err)
	}
	if intent.AuthorizationURL == "" {
		t.Fatal("expected an authorization URL")
	}

	// Balance is untouched until the processor confirms.
	if got := server.balanceMinor(t, senderToken); got != 0 {
		t.Fatalf("expected balance 0 before confirmation, got %d", got)
	}

	if rec := server.webhook(provider.WebhookEventChargeSuccess, intent.Reference); rec.Code != http.StatusOK {
		t.Fatalf("webhook: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := server.balanceMinor(t, senderToken); got != 50000 {
		t.Fatalf("expected balance 50000 after confirmation, got %d", got)
	}

	// A replayed notification must not credit twice.
	if rec := server.webhook(provider.WebhookEventChargeSuccess, intent.Reference); rec.Code != http.StatusOK {
		t.Fatalf("webhook replay: expected 200, got %d", rec.Code)
	}
	if got := server.balanceMinor(t, senderToken); got != 50000 {
		t.Fatalf("replay changed the balance: got %d", got)
	}

	// Transfer 200.00 to the recipient.
	rec = server.do(http.MethodPost, "/api/v1/transfers", senderToken, dto.TransferRequest{
		RecipientWalletNumber: recipientNumber,
		Amount:                "200.00",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("transfer: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var transfer dto.TransferResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &transfer); err != nil {
		t.Fatalf("failed to decode transfer response: %v", err)
	}

	if got := server.balanceMinor(t, senderToken); got != 30000 {
		t.Fatalf("expected sender balance 30000, got %d", got)
	}
	if got := server.balanceMinor(t, recipientToken); got != 20000 {
		t.Fatalf("expected recipient balance 20000, got %d", got)
	}

	// Overdraw is rejected and changes nothing.
	rec = server.do(http.MethodPost, "/api/v1/transfers", senderToken, dto.TransferRequest{
		RecipientWalletNumber: recipientNumber,
		Amount:                "10000.00",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("overdraw: expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := server.balanceMinor(t, senderToken); got != 30000 {
		t.Fatalf("failed transfer changed the balance: got %d", got)
	}

	// The journal shows both movements, newest first.
	rec = server.do(http.MethodGet, "/api/v1/transactions", senderToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("transactions: expected 200, got %d", rec.Code)
	}
	var entries []*dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(entries))
	}

	rec = server.do(http.MethodGet, "/api/v1/transactions/"+transfer.Reference+"_d", senderToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("entry lookup: expected 200, got %d", rec.Code)
	}

	// Ledger-wide invariant holds after the whole flow.
	rec = server.do(http.MethodGet, "/api/v1/ledger/consistency", senderToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("consistency: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var consistency dto.ConsistencyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &consistency); err != nil {
		t.Fatalf("failed to decode consistency response: %v", err)
	}
	if !consistency.Consistent {
		t.Fatal("expected a consistent ledger")
	}
}
