package dispense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehr/prescribeit/pkg/pagination"
)

type Service struct {
	mgr DispenseNotificationManager
	now func() time.Time
}

func NewService(mgr DispenseNotificationManager) *Service {
	return &Service{mgr: mgr, now: time.Now}
}

func (s *Service) List(ctx context.Context, f Filter, p pagination.Params) ([]*Notification, int, error) {
	return s.mgr.ListDispenseNotifications(ctx, f, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*Notification, error) {
	return s.mgr.GetDispenseNotification(ctx, id)
}

func (s *Service) Create(ctx context.Context, n *Notification) (int64, error) {
	if n.DispenseUUID == uuid.Nil {
		n.DispenseUUID = uuid.New()
	}
	if n.ReceivedDate.IsZero() {
		n.ReceivedDate = s.now().UTC()
	}
	return s.mgr.CreateDispenseNotification(ctx, n)
}

func (s *Service) Update(ctx context.Context, n *Notification) error {
	if _, err := s.mgr.GetDispenseNotification(ctx, n.DispenseNotificationID); err != nil {
		return err
	}
	return s.mgr.UpdateDispenseNotification(ctx, n)
}

// Cancel marks a notification cancelled. Cancelling an already cancelled
// notification changes nothing.
func (s *Service) Cancel(ctx context.Context, id int64, reason *string) error {
	n, err := s.mgr.GetDispenseNotification(ctx, id)
	if err != nil {
		return err
	}
	log := zerolog.Ctx(ctx)
	if n.Cancelled {
		log.Debug().Int64("dispense_notification_id", id).Msg("dispense notification already cancelled")
		return nil
	}
	if err := s.mgr.CancelDispenseNotification(ctx, id, s.now().UTC(), reason); err != nil {
		return err
	}
	log.Info().Int64("dispense_notification_id", id).Msg("dispense notification cancelled")
	return nil
}
