package rcm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/occucare/clinic/internal/platform/auth"
)

func newTestHandler() (*Handler, *echo.Echo) {
	repo := &mockRepo{patients: Dataset{Headers: []string{"id"}, Rows: [][]string{{"p1"}}}}
	h := NewHandler(NewService(repo, zerolog.Nop()))
	e := echo.New()
	return h, e
}

func TestHandler_CheckEligibility(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"member_id":"W1008"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CheckEligibility(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Success     bool                `json:"success"`
		Eligibility EligibilityResponse `json:"eligibility"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Eligibility.Status != "active" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandler_CheckEligibility_MissingMemberID(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CheckEligibility(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Export_CSVAttachment(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"table":"patients","format":"csv"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Export(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(got, "patients.csv") {
		t.Errorf("unexpected disposition: %q", got)
	}
}

func TestHandler_Export_UnknownTable(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"table":"secrets","format":"csv"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Export(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
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
	h, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rcm/eligibility", strings.NewReader(`{"member_id":"W1008"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serveWithRoles(h, []string{"nurse"}, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for nurse role, got %d", rec.Code)
	}
}

func TestRoutes_AllowBillingRole(t *testing.T) {
	h, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rcm/eligibility", strings.NewReader(`{"member_id":"W1008"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serveWithRoles(h, []string{"billing"}, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for billing role, got %d", rec.Code)
	}
}
