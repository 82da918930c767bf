package payment

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stripe/stripe-go/v76"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *StripeProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
		MaxNetworkRetries: stripe.Int64(0),
	})
	p, err := NewStripeProvider("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	if err != nil {
		t.Fatalf("NewStripeProvider: %v", err)
	}
	return p
}

func TestStripeProvider_CreateIntent(t *testing.T) {
	var form url.Values
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/payment_intents" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		form, _ = url.ParseQuery(string(body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","object":"payment_intent","client_secret":"pi_1_secret_abc"}`))
	})

	secret, err := p.CreateIntent(context.Background(), 1999, "usd")
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if secret != "pi_1_secret_abc" {
		t.Errorf("unexpected client secret %q", secret)
	}
	if form.Get("amount") != "1999" || form.Get("currency") != "usd" || form.Get("payment_method_types[0]") != "card" {
		t.Errorf("unexpected form %v", form)
	}
}

func TestStripeProvider_CreateIntent_APIError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Amount must be at least 50 cents"}}`))
	})

	if _, err := p.CreateIntent(context.Background(), 1, "usd"); err == nil {
		t.Fatal("expected an error from a rejected intent")
	}
}

func TestNewStripeProvider_RequiresKey(t *testing.T) {
	if _, err := NewStripeProvider(" ", nil); err == nil {
		t.Fatal("expected error for empty key")
	}
}
