package appointment

import (
	"context"
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

const cols = `id, patient_id, practitioner, reason, start_time, end_time, status,
	calendar_event_id, created_at, updated_at`

func scanRow(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.Practitioner, &a.Reason, &a.StartTime, &a.EndTime,
		&a.Status, &a.CalendarEventID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (id, patient_id, practitioner, reason, start_time, end_time, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.PatientID, a.Practitioner, a.Reason, a.StartTime, a.EndTime, a.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanRow(r.pool.QueryRow(ctx, `SELECT `+cols+` FROM appointments WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) (*Appointment, error) {
	return scanRow(r.pool.QueryRow(ctx, `
		UPDATE appointments SET practitioner = $2, reason = $3, start_time = $4, end_time = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+cols,
		a.ID, a.Practitioner, a.Reason, a.StartTime, a.EndTime))
}

func (r *repoPG) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	return scanRow(r.pool.QueryRow(ctx, `
		UPDATE appointments SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+cols, id, status))
}

func (r *repoPG) SetCalendarEvent(ctx context.Context, id uuid.UUID, eventID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE appointments SET calendar_event_id = $2, updated_at = NOW()
		WHERE id = $1`, id, eventID)
	return err
}

func (r *repoPG) List(ctx context.Context, filter Filter, limit, offset int) ([]*Appointment, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if filter.Practitioner != "" {
		args = append(args, filter.Practitioner)
		where += ` AND practitioner = $` + strconv.Itoa(len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		where += ` AND start_time >= $` + strconv.Itoa(len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		where += ` AND start_time <= $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	rows, err := r.pool.Query(ctx,
		`SELECT `+cols+` FROM appointments`+where+
			` ORDER BY start_time ASC, id LIMIT $`+strconv.Itoa(n+1)+` OFFSET $`+strconv.Itoa(n+2),
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) CountOnDate(ctx context.Context, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM appointments WHERE start_time >= $1 AND start_time < $2`,
		start, end).Scan(&count)
	return count, err
}
