package squarepay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestCreateInvoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/v2/invoices" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["idempotency_key"] == "" {
			t.Error("expected an idempotency key")
		}
		inv := body["invoice"].(map[string]interface{})
		if inv["location_id"] != "loc-9" {
			t.Errorf("expected location_id to be injected, got %v", inv["location_id"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"invoice": map[string]string{"id": "inv-1", "status": "DRAFT"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", "loc-9", zerolog.Nop())
	inv, err := c.CreateInvoice(context.Background(), &Invoice{OrderID: "ord-1", Title: "Visit"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.ID != "inv-1" || inv.Status != "DRAFT" {
		t.Errorf("unexpected invoice: %+v", inv)
	}
}

func TestCreateInvoice_SquareErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]string{{"detail": "order_id not found"}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", "loc-9", zerolog.Nop())
	_, err := c.CreateInvoice(context.Background(), &Invoice{OrderID: "missing"})
	if err == nil || !strings.Contains(err.Error(), "order_id not found") {
		t.Errorf("expected upstream detail in error, got %v", err)
	}
}

func TestListPayments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		q := r.URL.Query()
		if q.Get("location_id") != "loc-9" || q.Get("begin_time") == "" {
			t.Errorf("unexpected query: %v", q)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"payments": []map[string]interface{}{
				{"id": "pay-1", "status": "COMPLETED", "amount_money": map[string]interface{}{"amount": 12500, "currency": "USD"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", "loc-9", zerolog.Nop())
	payments, err := c.ListPayments(context.Background(), time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payments) != 1 || payments[0].AmountMoney.Amount != 12500 {
		t.Errorf("unexpected payments: %+v", payments)
	}
}
