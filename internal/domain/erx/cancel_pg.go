package erx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/prescribeit/internal/platform/db"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type cancelManagerPG struct{ pool *pgxpool.Pool }

func NewCancelRequestManagerPG(pool *pgxpool.Pool) CancelRequestManager {
	return &cancelManagerPG{pool: pool}
}

func (m *cancelManagerPG) conn(ctx context.Context) db.Querier {
	return db.Pick(ctx, m.pool)
}

const cancelRequestCols = `cancel_request_id, eprescribe_job_id, prescription_id, reason, status,
	requested_date, requested_by_id`

func (m *cancelManagerPG) ListCancelRequests(ctx context.Context, f CancelRequestFilter, p pagination.Params) ([]*CancelRequest, int, error) {
	q := db.NewQuery("eprescribe_cancel_request", cancelRequestCols, "cancel_request_id").
		EqString("status", f.Status)
	db.Eq(q, "eprescribe_job_id", f.EprescribeJobID)
	return db.Page[CancelRequest](ctx, m.conn(ctx), q, p)
}

func (m *cancelManagerPG) GetCancelRequest(ctx context.Context, id int64) (*CancelRequest, error) {
	r, err := db.One[CancelRequest](ctx, m.conn(ctx), `SELECT `+cancelRequestCols+`
		FROM eprescribe_cancel_request WHERE cancel_request_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("cancel request %d: %w", id, err)
	}
	return r, nil
}

func (m *cancelManagerPG) CancelRequestExists(ctx context.Context, id int64) (bool, error) {
	return db.Exists(ctx, m.conn(ctx), `SELECT 1 FROM eprescribe_cancel_request WHERE cancel_request_id = $1`, id)
}

func (m *cancelManagerPG) CreateCancelRequest(ctx context.Context, r *CancelRequest) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO eprescribe_cancel_request (eprescribe_job_id, prescription_id, reason, status,
			requested_date, requested_by_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING cancel_request_id`,
		r.EprescribeJobID, r.PrescriptionID, r.Reason, r.Status, r.RequestedDate, r.RequestedByID,
	).Scan(&r.CancelRequestID)
	return r.CancelRequestID, db.Translate(err)
}

func (m *cancelManagerPG) UpdateCancelRequest(ctx context.Context, r *CancelRequest) error {
	return execOne(ctx, m.conn(ctx), "cancel request", r.CancelRequestID, `
		UPDATE eprescribe_cancel_request SET eprescribe_job_id = $2, prescription_id = $3,
			reason = $4, status = $5, requested_by_id = $6
		WHERE cancel_request_id = $1`,
		r.CancelRequestID, r.EprescribeJobID, r.PrescriptionID, r.Reason, r.Status, r.RequestedByID)
}

func (m *cancelManagerPG) DeleteCancelRequest(ctx context.Context, id int64) error {
	return db.Delete(ctx, m.conn(ctx), "cancel request", id,
		`DELETE FROM eprescribe_cancel_request WHERE cancel_request_id = $1`, id)
}

const cancelResponseCols = `cancel_response_id, cancel_request_id, response_type, response_date,
	responder, note`

func (m *cancelManagerPG) ListCancelResponses(ctx context.Context, cancelRequestID int64, p pagination.Params) ([]*CancelResponse, int, error) {
	q := db.NewQuery("eprescribe_cancel_response", cancelResponseCols, "cancel_response_id").
		Where("cancel_request_id = ?", cancelRequestID)
	return db.Page[CancelResponse](ctx, m.conn(ctx), q, p)
}

func (m *cancelManagerPG) CreateCancelResponse(ctx context.Context, r *CancelResponse) (int64, error) {
	err := db.InTx(ctx, m.pool, func(ctx context.Context) error {
		conn := m.conn(ctx)
		err := conn.QueryRow(ctx, `
			INSERT INTO eprescribe_cancel_response (cancel_request_id, response_type, response_date,
				responder, note)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING cancel_response_id`,
			r.CancelRequestID, r.ResponseType, r.ResponseDate, r.Responder, r.Note,
		).Scan(&r.CancelResponseID)
		if err != nil {
			return db.Translate(err)
		}
		return execOne(ctx, conn, "cancel request", r.CancelRequestID,
			`UPDATE eprescribe_cancel_request SET status = $2 WHERE cancel_request_id = $1`,
			r.CancelRequestID, r.ResponseType)
	})
	return r.CancelResponseID, err
}
