package billing

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const invoiceCols = `id, patient_id, description, amount_cents, currency, status, due_date,
	external_id, external_status, created_at, updated_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.PatientID, &inv.Description, &inv.AmountCents, &inv.Currency,
		&inv.Status, &inv.DueDate, &inv.ExternalID, &inv.ExternalStatus, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repoPG) CreateInvoice(ctx context.Context, inv *Invoice) error {
	inv.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO invoices (id, patient_id, description, amount_cents, currency, status, due_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		inv.ID, inv.PatientID, inv.Description, inv.AmountCents, inv.Currency, inv.Status, inv.DueDate)
	return err
}

func (r *repoPG) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, `SELECT `+invoiceCols+` FROM invoices WHERE id = $1`, id))
}

func (r *repoPG) ListInvoices(ctx context.Context, filter InvoiceFilter, limit, offset int) ([]*Invoice, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += ` AND status = $` + strconv.Itoa(len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		where += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		where += ` AND created_at <= $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	rows, err := r.pool.Query(ctx,
		`SELECT `+invoiceCols+` FROM invoices`+where+
			` ORDER BY created_at DESC, id LIMIT $`+strconv.Itoa(n+1)+` OFFSET $`+strconv.Itoa(n+2),
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, inv)
	}
	return items, total, rows.Err()
}

func (r *repoPG) SetInvoiceExternal(ctx context.Context, id uuid.UUID, externalID, externalStatus string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE invoices SET external_id = $2, external_status = $3, updated_at = NOW()
		WHERE id = $1`, id, externalID, externalStatus)
	return err
}

func (r *repoPG) SetInvoiceStatus(ctx context.Context, id uuid.UUID, status string) (*Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, `
		UPDATE invoices SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+invoiceCols, id, status))
}

func (r *repoPG) CreatePayment(ctx context.Context, p *Payment) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payments (id, invoice_id, amount_cents, method, reference, received_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.InvoiceID, p.AmountCents, p.Method, p.Reference, p.ReceivedAt)
	return err
}

func (r *repoPG) ListPayments(ctx context.Context, limit, offset int) ([]*Payment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, invoice_id, amount_cents, method, reference, received_at, created_at
		FROM payments ORDER BY received_at DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.AmountCents, &p.Method, &p.Reference, &p.ReceivedAt, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) CreateRemittance(ctx context.Context, rem *Remittance) error {
	rem.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO remittances (id, payer_name, claim_number, amount_cents, received_at)
		VALUES ($1,$2,$3,$4,$5)`,
		rem.ID, rem.PayerName, rem.ClaimNumber, rem.AmountCents, rem.ReceivedAt)
	return err
}

func (r *repoPG) ListRemittances(ctx context.Context, limit, offset int) ([]*Remittance, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM remittances`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, payer_name, claim_number, amount_cents, received_at, created_at
		FROM remittances ORDER BY received_at DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Remittance
	for rows.Next() {
		var rem Remittance
		if err := rows.Scan(&rem.ID, &rem.PayerName, &rem.ClaimNumber, &rem.AmountCents, &rem.ReceivedAt, &rem.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &rem)
	}
	return items, total, rows.Err()
}
