package rcm

import (
	"context"
	"time"
)

// Repository fetches flat datasets for export. Zero time bounds mean
// "no filter"; rows are filtered on each table's created_at.
type Repository interface {
	FetchPatients(ctx context.Context, from, to time.Time) (*Dataset, error)
	FetchInvoices(ctx context.Context, from, to time.Time) (*Dataset, error)
	FetchPayments(ctx context.Context, from, to time.Time) (*Dataset, error)
}
