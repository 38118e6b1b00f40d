// Package gohl is a thin client for the GoHighLevel CRM API: contacts,
// users, and calendar events. Every call is a fallible remote operation;
// errors carry the upstream message and callers decide how to surface them.
package gohl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

type Contact struct {
	ID        string   `json:"id,omitempty"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type CalendarEvent struct {
	ID         string `json:"id,omitempty"`
	CalendarID string `json:"calendarId"`
	ContactID  string `json:"contactId,omitempty"`
	Title      string `json:"title"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"appointmentStatus,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
}

type Client struct {
	http       *resty.Client
	locationID string
	logger     zerolog.Logger
}

func NewClient(baseURL, apiKey, locationID string, logger zerolog.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Version", "2021-07-28")

	return &Client{http: http, locationID: locationID, logger: logger}
}

// remoteError extracts the upstream error message so route handlers can
// attach it verbatim to their 500 responses.
func remoteError(op string, resp *resty.Response) error {
	var e apiError
	if err := json.Unmarshal(resp.Body(), &e); err == nil && e.Message != "" {
		return fmt.Errorf("%s: %s (status %d)", op, e.Message, resp.StatusCode())
	}
	return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode())
}

func (c *Client) UpsertContact(ctx context.Context, contact *Contact) (*Contact, error) {
	var result struct {
		Contact Contact `json:"contact"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"locationId": c.locationID,
			"firstName":  contact.FirstName,
			"lastName":   contact.LastName,
			"email":      contact.Email,
			"phone":      contact.Phone,
			"tags":       contact.Tags,
		}).
		SetResult(&result).
		Post("/contacts/upsert")
	if err != nil {
		return nil, fmt.Errorf("upsert contact: %w", err)
	}
	if resp.IsError() {
		return nil, remoteError("upsert contact", resp)
	}
	c.logger.Debug().Str("contact_id", result.Contact.ID).Msg("ghl contact upserted")
	return &result.Contact, nil
}

func (c *Client) SearchContacts(ctx context.Context, query string, limit int) ([]Contact, error) {
	var result struct {
		Contacts []Contact `json:"contacts"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("locationId", c.locationID).
		SetQueryParam("query", query).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		SetResult(&result).
		Get("/contacts/")
	if err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}
	if resp.IsError() {
		return nil, remoteError("search contacts", resp)
	}
	return result.Contacts, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var result struct {
		Users []User `json:"users"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("locationId", c.locationID).
		SetResult(&result).
		Get("/users/")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if resp.IsError() {
		return nil, remoteError("list users", resp)
	}
	return result.Users, nil
}

func (c *Client) CreateCalendarEvent(ctx context.Context, ev *CalendarEvent) (*CalendarEvent, error) {
	var result CalendarEvent
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(ev).
		SetResult(&result).
		Post("/calendars/events/appointments")
	if err != nil {
		return nil, fmt.Errorf("create calendar event: %w", err)
	}
	if resp.IsError() {
		return nil, remoteError("create calendar event", resp)
	}
	return &result, nil
}

func (c *Client) ListCalendarEvents(ctx context.Context, calendarID string, start, end time.Time) ([]CalendarEvent, error) {
	var result struct {
		Events []CalendarEvent `json:"events"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("locationId", c.locationID).
		SetQueryParam("calendarId", calendarID).
		SetQueryParam("startTime", fmt.Sprintf("%d", start.UnixMilli())).
		SetQueryParam("endTime", fmt.Sprintf("%d", end.UnixMilli())).
		SetResult(&result).
		Get("/calendars/events")
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	if resp.IsError() {
		return nil, remoteError("list calendar events", resp)
	}
	return result.Events, nil
}
