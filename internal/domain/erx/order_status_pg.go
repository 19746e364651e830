package erx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/prescribeit/internal/platform/db"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type orderStatusManagerPG struct{ pool *pgxpool.Pool }

func NewOrderStatusManagerPG(pool *pgxpool.Pool) OrderStatusManager {
	return &orderStatusManagerPG{pool: pool}
}

func (m *orderStatusManagerPG) conn(ctx context.Context) db.Querier {
	return db.Pick(ctx, m.pool)
}

const orderStatusCols = `order_status_id, prescription_id, eprescribe_job_id, status, status_date,
	pharmacy_identifier, note`

func (m *orderStatusManagerPG) ListOrderStatuses(ctx context.Context, f OrderStatusFilter, p pagination.Params) ([]*OrderStatus, int, error) {
	q := db.NewQuery("eprescribe_order_status", orderStatusCols, "order_status_id")
	db.Eq(q, "prescription_id", f.PrescriptionID)
	db.Eq(q, "eprescribe_job_id", f.EprescribeJobID)
	return db.Page[OrderStatus](ctx, m.conn(ctx), q, p)
}

func (m *orderStatusManagerPG) GetOrderStatus(ctx context.Context, id int64) (*OrderStatus, error) {
	s, err := db.One[OrderStatus](ctx, m.conn(ctx), `SELECT `+orderStatusCols+`
		FROM eprescribe_order_status WHERE order_status_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("order status %d: %w", id, err)
	}
	return s, nil
}

func (m *orderStatusManagerPG) CreateOrderStatus(ctx context.Context, s *OrderStatus) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO eprescribe_order_status (prescription_id, eprescribe_job_id, status, status_date,
			pharmacy_identifier, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING order_status_id`,
		s.PrescriptionID, s.EprescribeJobID, s.Status, s.StatusDate, s.PharmacyIdentifier, s.Note,
	).Scan(&s.OrderStatusID)
	return s.OrderStatusID, db.Translate(err)
}

func (m *orderStatusManagerPG) UpdateOrderStatus(ctx context.Context, s *OrderStatus) error {
	return execOne(ctx, m.conn(ctx), "order status", s.OrderStatusID, `
		UPDATE eprescribe_order_status SET prescription_id = $2, eprescribe_job_id = $3,
			status = $4, status_date = $5, pharmacy_identifier = $6, note = $7
		WHERE order_status_id = $1`,
		s.OrderStatusID, s.PrescriptionID, s.EprescribeJobID, s.Status, s.StatusDate,
		s.PharmacyIdentifier, s.Note)
}

func (m *orderStatusManagerPG) DeleteOrderStatus(ctx context.Context, id int64) error {
	return db.Delete(ctx, m.conn(ctx), "order status", id,
		`DELETE FROM eprescribe_order_status WHERE order_status_id = $1`, id)
}
