package intake

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(newTestService())
	e := echo.New()
	return h, e
}

func TestHandler_Create(t *testing.T) {
	h, e := newTestHandler()
	body := `{"injuryDate":"2026-08-01","location":"warehouse","description":"fell from ladder",
		"mechanismOfInjury":"fall","painLevel":8,
		"symptoms":["sharp pain","swelling","limited range of motion"],
		"affectedBodyParts":["Shoulder"]}`
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

	var resp struct {
		Success   bool                  `json:"success"`
		IntakeID  string                `json:"intakeId"`
		Diagnoses []DiagnosisSuggestion `json:"diagnoses"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.IntakeID == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(resp.Diagnoses) != 4 {
		t.Fatalf("expected 4 diagnoses, got %d", len(resp.Diagnoses))
	}
	if resp.Diagnoses[0].Name != "Rotator Cuff Strain" || resp.Diagnoses[0].Confidence != 0.95 {
		t.Errorf("unexpected rank-0 diagnosis: %+v", resp.Diagnoses[0])
	}
}

func TestHandler_GetOrList_SingleByQueryParam(t *testing.T) {
	h, e := newTestHandler()
	sub := &Submission{AffectedBodyParts: []string{"Knee"}}
	h.svc.Create(nil, sub)

	req := httptest.NewRequest(http.MethodGet, "/?id="+sub.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetOrList(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetOrList_List(t *testing.T) {
	h, e := newTestHandler()
	for i := 0; i < 3; i++ {
		h.svc.Create(nil, &Submission{})
	}

	req := httptest.NewRequest(http.MethodGet, "/?limit=2&offset=0", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetOrList(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Success bool              `json:"success"`
		Records []json.RawMessage `json:"records"`
		Total   int               `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 3 || len(resp.Records) != 2 {
		t.Errorf("expected total 3 with 2 records, got total %d with %d records", resp.Total, len(resp.Records))
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_GetPipeline_NullUntilToggled(t *testing.T) {
	h, e := newTestHandler()
	sub := &Submission{}
	h.svc.Create(nil, sub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(sub.ID.String())

	if err := h.GetPipeline(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp map[string]*PipelineStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["pipeline_status"] != nil {
		t.Errorf("expected null pipeline_status, got %+v", resp["pipeline_status"])
	}
}

func TestHandler_SetPipeline_PersistsExactObject(t *testing.T) {
	h, e := newTestHandler()
	sub := &Submission{}
	h.svc.Create(nil, sub)

	body := `{"pipeline":{"imaging_complete":true}}`
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(sub.ID.String())

	if err := h.SetPipeline(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var updated Submission
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	p := updated.PipelineStatus
	if p == nil || !p.ImagingComplete || p.HistoryComplete || p.NurseExamComplete || p.OrthoReviewComplete {
		t.Errorf("expected exactly the submitted flags, got %+v", p)
	}
	if updated.Status != StatusPending {
		t.Errorf("status must not change on pipeline write, got %s", updated.Status)
	}
}

func TestHandler_SetPipeline_MissingBody(t *testing.T) {
	h, e := newTestHandler()
	sub := &Submission{}
	h.svc.Create(nil, sub)

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(sub.ID.String())

	err := h.SetPipeline(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_SetStatus_Completion(t *testing.T) {
	h, e := newTestHandler()
	sub := &Submission{}
	h.svc.Create(nil, sub)

	body := `{"status":"completed"}`
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(sub.ID.String())

	if err := h.SetStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var updated Submission
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", updated.Status)
	}
}
