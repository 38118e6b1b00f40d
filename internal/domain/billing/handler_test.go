package billing

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/occucare/clinic/internal/platform/auth"
)

func newTestHandler(pusher InvoicePusher) (*Handler, *echo.Echo) {
	h := NewHandler(NewService(newMockRepo(), pusher, zerolog.Nop()))
	e := echo.New()
	return h, e
}

func TestHandler_CreateInvoice(t *testing.T) {
	h, e := newTestHandler(&fakePusher{})

	body := `{"patientId":"` + uuid.New().String() + `","amountCents":12500,"description":"visit"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateInvoice(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp struct {
		Success bool    `json:"success"`
		Invoice Invoice `json:"invoice"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Invoice.ExternalStatus != ExternalPushed {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandler_CreateInvoice_PushFailureIs500WithRemoteError(t *testing.T) {
	h, e := newTestHandler(&fakePusher{err: errors.New("order_id not found")})

	body := `{"patientId":"` + uuid.New().String() + `","amountCents":500}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateInvoice(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Success || !strings.Contains(resp.Error, "order_id not found") {
		t.Errorf("expected remote error surfaced, got %+v", resp)
	}
}

func TestHandler_CreateInvoice_Validation(t *testing.T) {
	h, e := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amountCents":100}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateInvoice(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing patientId, got %v", err)
	}
}

func TestHandler_ListInvoices_BadDate(t *testing.T) {
	h, e := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/?from=01-02-2026", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ListInvoices(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad date, got %v", err)
	}
}

func TestHandler_RecordPayment_UnknownInvoice(t *testing.T) {
	h, e := newTestHandler(nil)

	body := `{"invoiceId":"` + uuid.New().String() + `","amountCents":100,"method":"card"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.RecordPayment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func serveWithRoles(h *Handler, roles []string, req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	api := e.Group("/api/v1", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(auth.UserRolesKey, roles)
			return next(c)
		}
	})
	h.RegisterRoutes(api)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_RejectWithoutBillingRole(t *testing.T) {
	h, _ := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	rec := serveWithRoles(h, []string{"nurse"}, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for nurse role, got %d", rec.Code)
	}
}

func TestRoutes_AllowBillingRole(t *testing.T) {
	h, _ := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	rec := serveWithRoles(h, []string{"billing"}, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for billing role, got %d", rec.Code)
	}
}
