package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/occucare/clinic/internal/integrations/gohl"
)

// CalendarClient is the slice of the CRM client used for calendar pushes.
// *gohl.Client satisfies it; nil disables the passthrough.
type CalendarClient interface {
	CreateCalendarEvent(ctx context.Context, ev *gohl.CalendarEvent) (*gohl.CalendarEvent, error)
}

type Service struct {
	repo     Repository
	calendar CalendarClient
	logger   zerolog.Logger
}

func NewService(repo Repository, calendar CalendarClient, logger zerolog.Logger) *Service {
	return &Service{repo: repo, calendar: calendar, logger: logger}
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if !a.EndTime.After(a.StartTime) {
		return fmt.Errorf("endTime must be after startTime")
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Appointment) (*Appointment, error) {
	if !a.EndTime.After(a.StartTime) {
		return nil, fmt.Errorf("endTime must be after startTime")
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	switch status {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
	default:
		return nil, fmt.Errorf("invalid appointment status %q", status)
	}
	return s.repo.SetStatus(ctx, id, status)
}

func (s *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, filter, limit, offset)
}

// PushToCalendar forwards the appointment to the CRM calendar and stores the
// returned event id. The remote error propagates unchanged.
func (s *Service) PushToCalendar(ctx context.Context, id uuid.UUID, calendarID string) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.calendar == nil {
		return nil, fmt.Errorf("calendar integration is not configured")
	}

	ev, err := s.calendar.CreateCalendarEvent(ctx, &gohl.CalendarEvent{
		CalendarID: calendarID,
		Title:      fmt.Sprintf("%s - %s", a.Practitioner, a.Reason),
		StartTime:  a.StartTime.Format(time.RFC3339),
		EndTime:    a.EndTime.Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetCalendarEvent(ctx, a.ID, ev.ID); err != nil {
		return nil, fmt.Errorf("record calendar event: %w", err)
	}
	a.CalendarEventID = ev.ID
	s.logger.Debug().Str("appointment_id", a.ID.String()).Str("event_id", ev.ID).Msg("appointment pushed to calendar")
	return a, nil
}
