package doctor

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Service struct {
	repo   Repository
	erx    ERxSender
	mailer SecureMailer
	logger zerolog.Logger
}

func NewService(repo Repository, erx ERxSender, mailer SecureMailer, logger zerolog.Logger) *Service {
	return &Service{repo: repo, erx: erx, mailer: mailer, logger: logger}
}

func (s *Service) CreateNote(ctx context.Context, n *ClinicalNote) error {
	return s.repo.CreateNote(ctx, n)
}

func (s *Service) ListNotes(ctx context.Context, intakeID uuid.UUID, limit, offset int) ([]*ClinicalNote, int, error) {
	return s.repo.ListNotes(ctx, intakeID, limit, offset)
}

func (s *Service) SendPrescription(ctx context.Context, p *Prescription) (*ERxConfirmation, error) {
	conf, err := s.erx.Send(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("confirmation_id", conf.ConfirmationID).Bool("demo", conf.DemoMode).Msg("erx sent")
	return conf, nil
}

func (s *Service) SendSecureEmail(ctx context.Context, m *SecureEmail) (*MailConfirmation, error) {
	conf, err := s.mailer.Send(ctx, m)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("message_id", conf.MessageID).Bool("demo", conf.DemoMode).Msg("secure email sent")
	return conf, nil
}
