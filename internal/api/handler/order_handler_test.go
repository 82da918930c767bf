package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

func TestOrderHandler_CreatePaymentIntent(t *testing.T) {
	svc := &stubOrders{}
	h := NewOrderHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/create-payment-intent", `{"price":19.99}`)
	if err := h.CreatePaymentIntent(c); err != nil {
		t.Fatalf("CreatePaymentIntent: %v", err)
	}

	var resp paymentIntentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ClientSecret != "pi_secret" || svc.price != 19.99 {
		t.Fatalf("unexpected secret=%q price=%v", resp.ClientSecret, svc.price)
	}

	c, _ = newTestContext(http.MethodPost, "/create-payment-intent", `{"price":0}`)
	if err := h.CreatePaymentIntent(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestOrderHandler_RecordPayment(t *testing.T) {
	svc := &stubOrders{}
	h := NewOrderHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/payments",
		`{"email":"mallory@example.com","price":25,"transactionId":"tx_1","cartIds":["c1","c2"]}`)
	withIdentity(c, "ana@example.com")

	if err := h.RecordPayment(c); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.payer.Email != "ana@example.com" {
		t.Fatalf("payer must come from the token, got %q", svc.payer.Email)
	}
	if len(svc.payment.CartIDs) != 2 || svc.payment.TransactionID != "tx_1" {
		t.Fatalf("unexpected payment %+v", svc.payment)
	}
}

func TestOrderHandler_ListCartUsesIdentity(t *testing.T) {
	svc := &stubOrders{}
	h := NewOrderHandler(svc)

	c, _ := newTestContext(http.MethodGet, "/carts", "")
	withIdentity(c, "ana@example.com")

	if err := h.ListCart(c); err != nil {
		t.Fatalf("ListCart: %v", err)
	}
	if svc.cartFor != "ana@example.com" {
		t.Fatalf("unexpected cart owner %q", svc.cartFor)
	}
}
