package doctor

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) CreateNote(ctx context.Context, n *ClinicalNote) error {
	n.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clinical_notes (id, intake_id, author, body)
		VALUES ($1,$2,$3,$4)`,
		n.ID, n.IntakeID, n.Author, n.Body)
	return err
}

func (r *repoPG) ListNotes(ctx context.Context, intakeID uuid.UUID, limit, offset int) ([]*ClinicalNote, int, error) {
	where := ``
	args := []interface{}{}
	if intakeID != uuid.Nil {
		where = ` WHERE intake_id = $1`
		args = append(args, intakeID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clinical_notes`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, intake_id, author, body, created_at FROM clinical_notes` + where +
		` ORDER BY created_at DESC, id`
	if intakeID != uuid.Nil {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*ClinicalNote
	for rows.Next() {
		var n ClinicalNote
		if err := rows.Scan(&n.ID, &n.IntakeID, &n.Author, &n.Body, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &n)
	}
	return items, total, rows.Err()
}
