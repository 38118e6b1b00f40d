package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/occucare/clinic/internal/integrations/squarepay"
)

// InvoicePusher is the slice of the payments SaaS client the billing service
// drives. *squarepay.Client satisfies it; nil disables the push.
type InvoicePusher interface {
	CreateInvoice(ctx context.Context, inv *squarepay.Invoice) (*squarepay.Invoice, error)
}

type Service struct {
	repo   Repository
	pusher InvoicePusher
	logger zerolog.Logger
}

func NewService(repo Repository, pusher InvoicePusher, logger zerolog.Logger) *Service {
	return &Service{repo: repo, pusher: pusher, logger: logger}
}

// CreateInvoice writes the local row, then pushes it to the payments SaaS.
// On push failure the local row is kept, marked external_status='push_failed',
// and the remote error is returned for the handler to surface as a 500.
func (s *Service) CreateInvoice(ctx context.Context, inv *Invoice) error {
	if inv.Status == "" {
		inv.Status = InvoiceDraft
	}
	if inv.Currency == "" {
		inv.Currency = "USD"
	}
	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return err
	}

	if s.pusher == nil {
		return nil
	}

	remote, err := s.pusher.CreateInvoice(ctx, &squarepay.Invoice{
		OrderID:     inv.ID.String(),
		Title:       inv.Description,
		DueDate:     inv.DueDate,
		PaymentAmount: &squarepay.Money{
			Amount:   inv.AmountCents,
			Currency: inv.Currency,
		},
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("invoice_id", inv.ID.String()).Msg("invoice push failed")
		inv.ExternalStatus = ExternalPushFailed
		if setErr := s.repo.SetInvoiceExternal(ctx, inv.ID, "", ExternalPushFailed); setErr != nil {
			return fmt.Errorf("record push failure: %w", setErr)
		}
		return err
	}

	inv.ExternalID = remote.ID
	inv.ExternalStatus = ExternalPushed
	return s.repo.SetInvoiceExternal(ctx, inv.ID, remote.ID, ExternalPushed)
}

func (s *Service) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) ListInvoices(ctx context.Context, filter InvoiceFilter, limit, offset int) ([]*Invoice, int, error) {
	return s.repo.ListInvoices(ctx, filter, limit, offset)
}

func (s *Service) SetInvoiceStatus(ctx context.Context, id uuid.UUID, status string) (*Invoice, error) {
	switch status {
	case InvoiceDraft, InvoiceOpen, InvoicePaid, InvoiceVoid:
	default:
		return nil, fmt.Errorf("invalid invoice status %q", status)
	}
	return s.repo.SetInvoiceStatus(ctx, id, status)
}

// RecordPayment stores the payment and marks the invoice paid when the
// payment covers the invoice amount.
func (s *Service) RecordPayment(ctx context.Context, p *Payment) error {
	inv, err := s.repo.GetInvoice(ctx, p.InvoiceID)
	if err != nil {
		return err
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return err
	}
	if p.AmountCents >= inv.AmountCents && inv.Status != InvoicePaid {
		if _, err := s.repo.SetInvoiceStatus(ctx, inv.ID, InvoicePaid); err != nil {
			return fmt.Errorf("mark invoice paid: %w", err)
		}
	}
	return nil
}

func (s *Service) ListPayments(ctx context.Context, limit, offset int) ([]*Payment, int, error) {
	return s.repo.ListPayments(ctx, limit, offset)
}

func (s *Service) RecordRemittance(ctx context.Context, r *Remittance) error {
	return s.repo.CreateRemittance(ctx, r)
}

func (s *Service) ListRemittances(ctx context.Context, limit, offset int) ([]*Remittance, int, error) {
	return s.repo.ListRemittances(ctx, limit, offset)
}
