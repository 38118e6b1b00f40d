package patient

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

const cols = `id, first_name, last_name, date_of_birth, email, phone, address,
	employer_name, insurance_provider, member_id,
	crm_contact_id, sync_status, created_at, updated_at`

func scanRow(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Email, &p.Phone, &p.Address,
		&p.EmployerName, &p.InsuranceProvider, &p.MemberID,
		&p.CRMContactID, &p.SyncStatus, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patients (id, first_name, last_name, date_of_birth, email, phone, address,
			employer_name, insurance_provider, member_id, sync_status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Email, p.Phone, p.Address,
		p.EmployerName, p.InsuranceProvider, p.MemberID, p.SyncStatus)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanRow(r.pool.QueryRow(ctx, `SELECT `+cols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) (*Patient, error) {
	return scanRow(r.pool.QueryRow(ctx, `
		UPDATE patients SET first_name = $2, last_name = $3, date_of_birth = $4, email = $5,
			phone = $6, address = $7, employer_name = $8, insurance_provider = $9,
			member_id = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING `+cols,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Email,
		p.Phone, p.Address, p.EmployerName, p.InsuranceProvider, p.MemberID))
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	where := ``
	args := []interface{}{}
	if query != "" {
		where = ` WHERE first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%'`
		args = append(args, query)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	rows, err := r.pool.Query(ctx,
		`SELECT `+cols+` FROM patients`+where+
			` ORDER BY created_at DESC, id LIMIT $`+strconv.Itoa(n+1)+` OFFSET $`+strconv.Itoa(n+2),
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) SetSync(ctx context.Context, id uuid.UUID, crmContactID, syncStatus string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE patients SET crm_contact_id = $2, sync_status = $3, updated_at = NOW()
		WHERE id = $1`, id, crmContactID, syncStatus)
	return err
}
