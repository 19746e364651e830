package renewal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/prescribeit/internal/platform/db"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type renewalManagerPG struct{ pool *pgxpool.Pool }

func NewRenewalManagerPG(pool *pgxpool.Pool) RenewalManager {
	return &renewalManagerPG{pool: pool}
}

func (m *renewalManagerPG) conn(ctx context.Context) db.Querier {
	return db.Pick(ctx, m.pool)
}

func (m *renewalManagerPG) exec(ctx context.Context, what string, id int64, sql string, args ...interface{}) error {
	tag, err := m.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return db.Translate(err)
	}
	return db.Affected(what, id, tag.RowsAffected())
}

// -- Groups --

const groupCols = `renewal_request_group_id, group_uuid, pharmacy_name, pharmacy_identifier,
	patient_id, received_date, status`

func (m *renewalManagerPG) ListGroups(ctx context.Context, f GroupFilter, p pagination.Params) ([]*Group, int, error) {
	q := db.NewQuery("renewal_request_group", groupCols, "renewal_request_group_id").
		EqString("status", f.Status)
	db.Eq(q, "patient_id", f.PatientID)
	return db.Page[Group](ctx, m.conn(ctx), q, p)
}

func (m *renewalManagerPG) GetGroup(ctx context.Context, id int64) (*Group, error) {
	g, err := db.One[Group](ctx, m.conn(ctx), `SELECT `+groupCols+`
		FROM renewal_request_group WHERE renewal_request_group_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("renewal request group %d: %w", id, err)
	}
	return g, nil
}

func (m *renewalManagerPG) GroupExists(ctx context.Context, id int64) (bool, error) {
	return db.Exists(ctx, m.conn(ctx),
		`SELECT 1 FROM renewal_request_group WHERE renewal_request_group_id = $1`, id)
}

func (m *renewalManagerPG) CreateGroup(ctx context.Context, g *Group) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO renewal_request_group (group_uuid, pharmacy_name, pharmacy_identifier,
			patient_id, received_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING renewal_request_group_id`,
		g.GroupUUID, g.PharmacyName, g.PharmacyIdentifier, g.PatientID, g.ReceivedDate, g.Status,
	).Scan(&g.RenewalRequestGroupID)
	return g.RenewalRequestGroupID, db.Translate(err)
}

func (m *renewalManagerPG) UpdateGroup(ctx context.Context, g *Group) error {
	return m.exec(ctx, "renewal request group", g.RenewalRequestGroupID, `
		UPDATE renewal_request_group SET pharmacy_name = $2, pharmacy_identifier = $3,
			patient_id = $4, status = $5
		WHERE renewal_request_group_id = $1`,
		g.RenewalRequestGroupID, g.PharmacyName, g.PharmacyIdentifier, g.PatientID, g.Status)
}

func (m *renewalManagerPG) DeleteGroup(ctx context.Context, id int64) error {
	return db.Delete(ctx, m.conn(ctx), "renewal request group", id,
		`DELETE FROM renewal_request_group WHERE renewal_request_group_id = $1`, id)
}

// -- Requests --

const requestCols = `renewal_request_id, renewal_request_group_id, prescription_id, medication_name,
	quantity, refills_requested, status, requested_date, note`

func (m *renewalManagerPG) ListRequests(ctx context.Context, f RequestFilter, p pagination.Params) ([]*Request, int, error) {
	q := db.NewQuery("renewal_request", requestCols, "renewal_request_id").
		EqString("status", f.Status)
	db.Eq(q, "renewal_request_group_id", f.RenewalRequestGroupID)
	db.Eq(q, "prescription_id", f.PrescriptionID)
	return db.Page[Request](ctx, m.conn(ctx), q, p)
}

func (m *renewalManagerPG) GetRequest(ctx context.Context, id int64) (*Request, error) {
	r, err := db.One[Request](ctx, m.conn(ctx), `SELECT `+requestCols+`
		FROM renewal_request WHERE renewal_request_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("renewal request %d: %w", id, err)
	}
	return r, nil
}

func (m *renewalManagerPG) RequestExists(ctx context.Context, id int64) (bool, error) {
	return db.Exists(ctx, m.conn(ctx), `SELECT 1 FROM renewal_request WHERE renewal_request_id = $1`, id)
}

func (m *renewalManagerPG) CreateRequest(ctx context.Context, r *Request) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO renewal_request (renewal_request_group_id, prescription_id, medication_name,
			quantity, refills_requested, status, requested_date, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING renewal_request_id`,
		r.RenewalRequestGroupID, r.PrescriptionID, r.MedicationName,
		r.Quantity, r.RefillsRequested, r.Status, r.RequestedDate, r.Note,
	).Scan(&r.RenewalRequestID)
	return r.RenewalRequestID, db.Translate(err)
}

func (m *renewalManagerPG) UpdateRequest(ctx context.Context, r *Request) error {
	return m.exec(ctx, "renewal request", r.RenewalRequestID, `
		UPDATE renewal_request SET renewal_request_group_id = $2, prescription_id = $3,
			medication_name = $4, quantity = $5, refills_requested = $6, status = $7, note = $8
		WHERE renewal_request_id = $1`,
		r.RenewalRequestID, r.RenewalRequestGroupID, r.PrescriptionID, r.MedicationName,
		r.Quantity, r.RefillsRequested, r.Status, r.Note)
}

func (m *renewalManagerPG) DeleteRequest(ctx context.Context, id int64) error {
	return db.Delete(ctx, m.conn(ctx), "renewal request", id, `DELETE FROM renewal_request WHERE renewal_request_id = $1`, id)
}

// -- Responses --

const responseCols = `renewal_response_id, renewal_request_id, response_type, responder_id,
	response_date, quantity, refills, note`

func (m *renewalManagerPG) ListResponses(ctx context.Context, f ResponseFilter, p pagination.Params) ([]*Response, int, error) {
	q := db.NewQuery("renewal_request_response", responseCols, "renewal_response_id")
	db.Eq(q, "renewal_request_id", f.RenewalRequestID)
	return db.Page[Response](ctx, m.conn(ctx), q, p)
}

func (m *renewalManagerPG) GetResponse(ctx context.Context, id int64) (*Response, error) {
	r, err := db.One[Response](ctx, m.conn(ctx), `SELECT `+responseCols+`
		FROM renewal_request_response WHERE renewal_response_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("renewal response %d: %w", id, err)
	}
	return r, nil
}

func (m *renewalManagerPG) setRequestStatus(ctx context.Context, r *Response) error {
	return m.exec(ctx, "renewal request", r.RenewalRequestID,
		`UPDATE renewal_request SET status = $2 WHERE renewal_request_id = $1`,
		r.RenewalRequestID, r.ResponseType)
}

func (m *renewalManagerPG) CreateResponse(ctx context.Context, r *Response) (int64, error) {
	err := db.InTx(ctx, m.pool, func(ctx context.Context) error {
		err := m.conn(ctx).QueryRow(ctx, `
			INSERT INTO renewal_request_response (renewal_request_id, response_type, responder_id,
				response_date, quantity, refills, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING renewal_response_id`,
			r.RenewalRequestID, r.ResponseType, r.ResponderID, r.ResponseDate, r.Quantity, r.Refills, r.Note,
		).Scan(&r.RenewalResponseID)
		if err != nil {
			return db.Translate(err)
		}
		return m.setRequestStatus(ctx, r)
	})
	return r.RenewalResponseID, err
}

func (m *renewalManagerPG) UpdateResponse(ctx context.Context, r *Response) error {
	return db.InTx(ctx, m.pool, func(ctx context.Context) error {
		err := m.exec(ctx, "renewal response", r.RenewalResponseID, `
			UPDATE renewal_request_response SET renewal_request_id = $2, response_type = $3,
				responder_id = $4, response_date = $5, quantity = $6, refills = $7, note = $8
			WHERE renewal_response_id = $1`,
			r.RenewalResponseID, r.RenewalRequestID, r.ResponseType, r.ResponderID,
			r.ResponseDate, r.Quantity, r.Refills, r.Note)
		if err != nil {
			return err
		}
		return m.setRequestStatus(ctx, r)
	})
}

func (m *renewalManagerPG) DeleteResponse(ctx context.Context, id int64) error {
	return db.Delete(ctx, m.conn(ctx), "renewal response", id,
		`DELETE FROM renewal_request_response WHERE renewal_response_id = $1`, id)
}
