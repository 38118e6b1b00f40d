// Package osmind pushes patient demographics to the Osmind EHR sync API.
package osmind

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

type PatientRecord struct {
	ExternalID string `json:"externalId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	BirthDate  string `json:"birthDate,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type SyncResult struct {
	PatientID string `json:"patientId"`
	Status    string `json:"status"`
}

type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

func NewClient(baseURL, apiKey string, logger zerolog.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("X-API-Key", apiKey).
		SetHeader("Content-Type", "application/json")

	return &Client{http: http, logger: logger}
}

func (c *Client) SyncPatient(ctx context.Context, rec *PatientRecord) (*SyncResult, error) {
	var result SyncResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(rec).
		SetResult(&result).
		Post("/v1/patients/sync")
	if err != nil {
		return nil, fmt.Errorf("sync patient: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sync patient: unexpected status %d: %s", resp.StatusCode(), resp.String())
	}
	c.logger.Debug().Str("patient_id", result.PatientID).Msg("osmind patient synced")
	return &result, nil
}
