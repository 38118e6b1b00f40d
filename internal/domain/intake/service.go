package intake

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusInReview:  true,
	StatusCompleted: true,
}

// Create persists a new submission. The diagnosis differential is computed
// exactly once here, from the symptom fields present at this moment; there
// is no recomputation path afterwards. Nothing else is validated: the client
// wizard enforces required fields, the server stores what it is given.
func (s *Service) Create(ctx context.Context, sub *Submission) error {
	sub.AIDiagnoses = SuggestDiagnoses(SuggestionInput{
		Symptoms:          sub.Symptoms,
		AffectedBodyParts: sub.AffectedBodyParts,
		PainLevel:         sub.PainLevel,
		MechanismOfInjury: sub.MechanismOfInjury,
	})
	sub.Status = StatusPending
	sub.PipelineStatus = nil
	return s.repo.Create(ctx, sub)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Submission, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Submission, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// SetPipeline unconditionally overwrites the pipeline flags. No transition
// validation: any flag combination is accepted in any order, and flags may
// be cleared after being set. The overall submission status is not derived
// from the flags.
func (s *Service) SetPipeline(ctx context.Context, id uuid.UUID, p *PipelineStatus) (*Submission, error) {
	if p == nil {
		return nil, fmt.Errorf("pipeline is required")
	}
	return s.repo.UpdatePipeline(ctx, id, p)
}

// SetStatus is the separate write path used by the orthopedic review
// completion submit. It is the only way a submission reaches "completed".
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Submission, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
