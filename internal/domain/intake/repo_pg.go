package intake

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const cols = `id, injury_date, injury_time, location, description, mechanism_of_injury,
	employer_name, claim_number,
	previous_injuries, current_medications, allergies, medical_history,
	pain_level, symptoms, affected_body_parts,
	ai_diagnoses, pipeline_status, status, submitted_at, updated_at`

// Newest first; id breaks timestamp ties so pages stay disjoint.
const listQuery = `SELECT ` + cols + ` FROM intake_submissions ORDER BY submitted_at DESC, id LIMIT $1 OFFSET $2`

func scanRow(row pgx.Row) (*Submission, error) {
	var s Submission
	var diagnoses []byte
	var pipeline []byte
	err := row.Scan(&s.ID, &s.InjuryDate, &s.InjuryTime, &s.Location, &s.Description, &s.MechanismOfInjury,
		&s.EmployerName, &s.ClaimNumber,
		&s.PreviousInjuries, &s.CurrentMedications, &s.Allergies, &s.MedicalHistory,
		&s.PainLevel, &s.Symptoms, &s.AffectedBodyParts,
		&diagnoses, &pipeline, &s.Status, &s.SubmittedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(diagnoses) > 0 {
		if err := json.Unmarshal(diagnoses, &s.AIDiagnoses); err != nil {
			return nil, fmt.Errorf("decode ai_diagnoses: %w", err)
		}
	}
	if len(pipeline) > 0 {
		s.PipelineStatus = &PipelineStatus{}
		if err := json.Unmarshal(pipeline, s.PipelineStatus); err != nil {
			return nil, fmt.Errorf("decode pipeline_status: %w", err)
		}
	}
	return &s, nil
}

func (r *repoPG) Create(ctx context.Context, s *Submission) error {
	s.ID = uuid.New()
	diagnoses, err := json.Marshal(s.AIDiagnoses)
	if err != nil {
		return fmt.Errorf("encode ai_diagnoses: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO intake_submissions (id, injury_date, injury_time, location, description, mechanism_of_injury,
			employer_name, claim_number,
			previous_injuries, current_medications, allergies, medical_history,
			pain_level, symptoms, affected_body_parts,
			ai_diagnoses, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		s.ID, s.InjuryDate, s.InjuryTime, s.Location, s.Description, s.MechanismOfInjury,
		s.EmployerName, s.ClaimNumber,
		s.PreviousInjuries, s.CurrentMedications, s.Allergies, s.MedicalHistory,
		s.PainLevel, s.Symptoms, s.AffectedBodyParts,
		diagnoses, s.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Submission, error) {
	return scanRow(r.pool.QueryRow(ctx, `SELECT `+cols+` FROM intake_submissions WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Submission, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM intake_submissions`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, listQuery, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Submission
	for rows.Next() {
		s, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

func (r *repoPG) UpdatePipeline(ctx context.Context, id uuid.UUID, p *PipelineStatus) (*Submission, error) {
	pipeline, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode pipeline_status: %w", err)
	}
	return scanRow(r.pool.QueryRow(ctx, `
		UPDATE intake_submissions SET pipeline_status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+cols, id, pipeline))
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Submission, error) {
	return scanRow(r.pool.QueryRow(ctx, `
		UPDATE intake_submissions SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+cols, id, status))
}
