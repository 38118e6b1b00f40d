package gohl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestUpsertContact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/contacts/upsert" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["locationId"] != "loc-1" {
			t.Errorf("expected locationId to be injected, got %v", body["locationId"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"contact": map[string]string{"id": "c-1", "firstName": "Ana"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "loc-1", zerolog.Nop())
	contact, err := c.UpsertContact(context.Background(), &Contact{FirstName: "Ana", LastName: "Diaz"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contact.ID != "c-1" {
		t.Errorf("expected c-1, got %q", contact.ID)
	}
}

func TestUpsertContact_RemoteErrorMessageSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "phone number is invalid"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "loc-1", zerolog.Nop())
	_, err := c.UpsertContact(context.Background(), &Contact{FirstName: "Ana"})
	if err == nil || !strings.Contains(err.Error(), "phone number is invalid") {
		t.Errorf("expected upstream message in error, got %v", err)
	}
}

func TestSearchContacts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if got := r.URL.Query().Get("query"); got != "smith" {
			t.Errorf("expected query=smith, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"contacts": []map[string]string{{"id": "c-2", "lastName": "Smith"}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "loc-1", zerolog.Nop())
	contacts, err := c.SearchContacts(context.Background(), "smith", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 1 || contacts[0].LastName != "Smith" {
		t.Errorf("unexpected contacts: %+v", contacts)
	}
}

func TestCreateCalendarEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/calendars/events/appointments" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "ev-1", "appointmentStatus": "confirmed"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "loc-1", zerolog.Nop())
	ev, err := c.CreateCalendarEvent(context.Background(), &CalendarEvent{CalendarID: "cal-1", Title: "follow-up"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.ID != "ev-1" || ev.Status != "confirmed" {
		t.Errorf("unexpected event: %+v", ev)
	}
}
