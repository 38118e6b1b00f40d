// Package squarepay is a thin client for the Square invoicing and payments
// API. Callers surface upstream errors verbatim; no retries on write paths.
package squarepay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type Invoice struct {
	ID            string `json:"id,omitempty"`
	OrderID       string `json:"order_id,omitempty"`
	CustomerID    string `json:"customer_id,omitempty"`
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status,omitempty"`
	DueDate       string `json:"due_date,omitempty"`
	PaymentAmount *Money `json:"payment_amount,omitempty"`
}

type Payment struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	AmountMoney Money  `json:"amount_money"`
	CreatedAt   string `json:"created_at"`
}

type squareErrors struct {
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

type Client struct {
	http       *resty.Client
	locationID string
	logger     zerolog.Logger
}

func NewClient(baseURL, accessToken, locationID string, logger zerolog.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetAuthToken(accessToken).
		SetHeader("Content-Type", "application/json")

	return &Client{http: http, locationID: locationID, logger: logger}
}

func remoteError(op string, resp *resty.Response) error {
	var e squareErrors
	if err := json.Unmarshal(resp.Body(), &e); err == nil && len(e.Errors) > 0 {
		return fmt.Errorf("%s: %s (status %d)", op, e.Errors[0].Detail, resp.StatusCode())
	}
	return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode())
}

func (c *Client) CreateInvoice(ctx context.Context, inv *Invoice) (*Invoice, error) {
	var result struct {
		Invoice Invoice `json:"invoice"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"idempotency_key": uuid.New().String(),
			"invoice": map[string]interface{}{
				"location_id": c.locationID,
				"order_id":    inv.OrderID,
				"title":       inv.Title,
				"description": inv.Description,
				"due_date":    inv.DueDate,
			},
		}).
		SetResult(&result).
		Post("/v2/invoices")
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	if resp.IsError() {
		return nil, remoteError("create invoice", resp)
	}
	c.logger.Debug().Str("invoice_id", result.Invoice.ID).Msg("square invoice created")
	return &result.Invoice, nil
}

func (c *Client) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	var result struct {
		Invoice Invoice `json:"invoice"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/v2/invoices/" + id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if resp.IsError() {
		return nil, remoteError("get invoice", resp)
	}
	return &result.Invoice, nil
}

func (c *Client) ListPayments(ctx context.Context, beginTime time.Time) ([]Payment, error) {
	var result struct {
		Payments []Payment `json:"payments"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("location_id", c.locationID).
		SetQueryParam("begin_time", beginTime.Format(time.RFC3339)).
		SetResult(&result).
		Get("/v2/payments")
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	if resp.IsError() {
		return nil, remoteError("list payments", resp)
	}
	return result.Payments, nil
}
