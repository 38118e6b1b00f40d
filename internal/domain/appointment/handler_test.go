package appointment

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestHandler(cal CalendarClient) (*Handler, *echo.Echo) {
	h := NewHandler(NewService(newMockRepo(), cal, zerolog.Nop()))
	e := echo.New()
	return h, e
}

func TestHandler_Create(t *testing.T) {
	h, e := newTestHandler(nil)

	start := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	end := time.Now().Add(49 * time.Hour).UTC().Format(time.RFC3339)
	body := `{"patientId":"` + uuid.New().String() + `","practitioner":"dr-ortiz","startTime":"` + start + `","endTime":"` + end + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_Create_InvertedTimes(t *testing.T) {
	h, e := newTestHandler(nil)

	start := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	end := time.Now().Add(47 * time.Hour).UTC().Format(time.RFC3339)
	body := `{"patientId":"` + uuid.New().String() + `","startTime":"` + start + `","endTime":"` + end + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_PushToCalendar_RemoteFailureIs500(t *testing.T) {
	h, e := newTestHandler(&fakeCalendar{err: errors.New("calendar not found")})
	a := newAppointment()
	h.svc.Create(nil, a)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"calendarId":"cal-1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.PushToCalendar(c); err != nil {
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
	if resp.Success || !strings.Contains(resp.Error, "calendar not found") {
		t.Errorf("expected remote error surfaced, got %+v", resp)
	}
}

func TestHandler_PushToCalendar_NotFound(t *testing.T) {
	h, e := newTestHandler(&fakeCalendar{})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"calendarId":"cal-1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.PushToCalendar(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
