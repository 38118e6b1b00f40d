package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/occucare/clinic/internal/integrations/gohl"
)

// ContactSyncer is the CRM surface the patient service needs. *gohl.Client
// satisfies it; a nil syncer disables the mirror entirely.
type ContactSyncer interface {
	UpsertContact(ctx context.Context, contact *gohl.Contact) (*gohl.Contact, error)
}

type Service struct {
	repo   Repository
	crm    ContactSyncer
	logger zerolog.Logger
}

func NewService(repo Repository, crm ContactSyncer, logger zerolog.Logger) *Service {
	return &Service{repo: repo, crm: crm, logger: logger}
}

// Create writes the local row, then mirrors the patient to the CRM. The CRM
// call is best-effort: its failure is returned as syncErr for the handler to
// report, but the local row is kept (marked sync_status='error') and the
// create still succeeds. There is no compensation or retry.
func (s *Service) Create(ctx context.Context, p *Patient) (syncErr error, err error) {
	p.SyncStatus = SyncPending
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if s.crm == nil {
		return nil, nil
	}

	contact, crmErr := s.crm.UpsertContact(ctx, &gohl.Contact{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Tags:      []string{"patient"},
	})
	if crmErr != nil {
		s.logger.Warn().Err(crmErr).Str("patient_id", p.ID.String()).Msg("crm sync failed")
		p.SyncStatus = SyncError
		if err := s.repo.SetSync(ctx, p.ID, "", SyncError); err != nil {
			return crmErr, fmt.Errorf("record sync failure: %w", err)
		}
		return crmErr, nil
	}

	p.CRMContactID = contact.ID
	p.SyncStatus = SyncSynced
	if err := s.repo.SetSync(ctx, p.ID, contact.ID, SyncSynced); err != nil {
		return nil, fmt.Errorf("record sync result: %w", err)
	}
	return nil, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) (*Patient, error) {
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, query, limit, offset)
}
