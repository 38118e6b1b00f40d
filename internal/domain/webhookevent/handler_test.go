package webhookevent

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestHandler_Ingest_Always200(t *testing.T) {
	cases := []struct {
		name string
		repo *mockRepo
		body string
	}{
		{"valid payload", &mockRepo{}, `{"type":"invoice.paid"}`},
		{"malformed payload", &mockRepo{}, `<xml/>`},
		{"storage failure", &mockRepo{createErr: errors.New("db down")}, `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(NewService(tc.repo, zerolog.Nop()))
			e := echo.New()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("source")
			c.SetParamValues("square")

			if err := h.Ingest(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Errorf("ingestion must always return 200, got %d", rec.Code)
			}
		})
	}
}

func TestHandler_List(t *testing.T) {
	repo := &mockRepo{}
	h := NewHandler(NewService(repo, zerolog.Nop()))
	e := echo.New()
	h.svc.Ingest(nil, "ghl", []byte(`{}`))

	req := httptest.NewRequest(http.MethodGet, "/?source=ghl", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Data  []Event `json:"data"`
		Total int     `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 || resp.Data[0].Source != "ghl" {
		t.Errorf("unexpected response: %+v", resp)
	}
}
