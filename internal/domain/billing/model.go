// Package billing manages invoices, payments, and remittance advice.
// Amounts are integer cents; the service never does float money math.
package billing

import (
	"time"

	"github.com/google/uuid"
)

// Invoice statuses.
const (
	InvoiceDraft = "draft"
	InvoiceOpen  = "open"
	InvoicePaid  = "paid"
	InvoiceVoid  = "void"
)

// External push states recorded on the invoice row.
const (
	ExternalPushed     = "pushed"
	ExternalPushFailed = "push_failed"
)

type Invoice struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patientId"`
	Description string    `json:"description,omitempty"`
	AmountCents int64     `json:"amountCents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	DueDate     string    `json:"dueDate,omitempty"`

	ExternalID     string    `json:"external_id,omitempty"`
	ExternalStatus string    `json:"external_status,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Payment struct {
	ID          uuid.UUID `json:"id"`
	InvoiceID   uuid.UUID `json:"invoiceId"`
	AmountCents int64     `json:"amountCents"`
	Method      string    `json:"method"` // "card", "check", "eft"
	Reference   string    `json:"reference,omitempty"`
	ReceivedAt  time.Time `json:"receivedAt"`
	CreatedAt   time.Time `json:"created_at"`
}

type Remittance struct {
	ID          uuid.UUID `json:"id"`
	PayerName   string    `json:"payerName"`
	ClaimNumber string    `json:"claimNumber,omitempty"`
	AmountCents int64     `json:"amountCents"`
	ReceivedAt  time.Time `json:"receivedAt"`
	CreatedAt   time.Time `json:"created_at"`
}

// InvoiceFilter narrows invoice listings; zero values mean "no filter".
type InvoiceFilter struct {
	Status string
	From   time.Time
	To     time.Time
}
