package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Stats gathers the dashboard counters concurrently. Reads only, so no
// coordination beyond the errgroup is needed.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.CountPatients(ctx)
		stats.Patients = n
		return err
	})
	g.Go(func() error {
		m, err := s.repo.CountIntakesByStatus(ctx)
		stats.IntakesByStatus = m
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountOpenInvoices(ctx)
		stats.OpenInvoices = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountAppointmentsOn(ctx, s.now())
		stats.AppointmentsToday = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if stats.IntakesByStatus == nil {
		stats.IntakesByStatus = map[string]int{}
	}
	return &stats, nil
}
