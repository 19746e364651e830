package dispense

import (
	"context"
	"time"

	"github.com/ehr/prescribeit/pkg/pagination"
)

type DispenseNotificationManager interface {
	ListDispenseNotifications(ctx context.Context, f Filter, p pagination.Params) ([]*Notification, int, error)
	GetDispenseNotification(ctx context.Context, id int64) (*Notification, error)
	CreateDispenseNotification(ctx context.Context, n *Notification) (int64, error)
	UpdateDispenseNotification(ctx context.Context, n *Notification) error
	CancelDispenseNotification(ctx context.Context, id int64, at time.Time, reason *string) error
}
