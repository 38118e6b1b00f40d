package billing

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter InvoiceFilter, limit, offset int) ([]*Invoice, int, error)
	SetInvoiceExternal(ctx context.Context, id uuid.UUID, externalID, externalStatus string) error
	SetInvoiceStatus(ctx context.Context, id uuid.UUID, status string) (*Invoice, error)

	CreatePayment(ctx context.Context, p *Payment) error
	ListPayments(ctx context.Context, limit, offset int) ([]*Payment, int, error)

	CreateRemittance(ctx context.Context, r *Remittance) error
	ListRemittances(ctx context.Context, limit, offset int) ([]*Remittance, int, error)
}
