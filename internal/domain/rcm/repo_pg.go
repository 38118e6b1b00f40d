package rcm

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func dateWhere(from, to time.Time) (string, []interface{}) {
	where := ``
	args := []interface{}{}
	if !from.IsZero() {
		args = append(args, from)
		where += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		where += ` AND created_at <= $` + strconv.Itoa(len(args))
	}
	return where, args
}

func collect(rows pgx.Rows, headers []string) (*Dataset, error) {
	defer rows.Close()
	ds := &Dataset{Headers: headers}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = stringify(v)
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, rows.Err()
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case int64:
		return strconv.FormatInt(t, 10)
	case [16]byte: // uuid columns come back as raw bytes
		return uuid.UUID(t).String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (r *repoPG) FetchPatients(ctx context.Context, from, to time.Time) (*Dataset, error) {
	where, args := dateWhere(from, to)
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, email, phone, employer_name, sync_status, created_at
		FROM patients WHERE 1=1`+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, []string{"id", "first_name", "last_name", "email", "phone", "employer_name", "sync_status", "created_at"})
}

func (r *repoPG) FetchInvoices(ctx context.Context, from, to time.Time) (*Dataset, error) {
	where, args := dateWhere(from, to)
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, amount_cents, currency, status, external_status, created_at
		FROM invoices WHERE 1=1`+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, []string{"id", "patient_id", "amount_cents", "currency", "status", "external_status", "created_at"})
}

func (r *repoPG) FetchPayments(ctx context.Context, from, to time.Time) (*Dataset, error) {
	where, args := dateWhere(from, to)
	rows, err := r.pool.Query(ctx, `
		SELECT id, invoice_id, amount_cents, method, reference, received_at, created_at
		FROM payments WHERE 1=1`+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, []string{"id", "invoice_id", "amount_cents", "method", "reference", "received_at", "created_at"})
}
