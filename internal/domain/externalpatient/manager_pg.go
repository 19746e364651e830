package externalpatient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/prescribeit/internal/platform/db"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type externalPatientManagerPG struct{ pool *pgxpool.Pool }

func NewExternalPatientManagerPG(pool *pgxpool.Pool) ExternalPatientManager {
	return &externalPatientManagerPG{pool: pool}
}

func (m *externalPatientManagerPG) conn(ctx context.Context) db.Querier {
	return db.Pick(ctx, m.pool)
}

const externalPatientCols = `external_patient_id, external_patient_uuid, identifier_system,
	identifier, health_number, health_number_province, patient_id, first_name, last_name,
	date_of_birth, gender, phone, address, created_date`

func listQuery(f Filter) *db.Query {
	q := db.NewQuery("external_patient", externalPatientCols, "external_patient_id").
		EqString("identifier", f.Identifier).
		EqString("health_number", f.HealthNumber)
	return db.Eq(q, "patient_id", f.PatientID)
}

func (m *externalPatientManagerPG) ListExternalPatients(ctx context.Context, f Filter, p pagination.Params) ([]*ExternalPatient, int, error) {
	return db.Page[ExternalPatient](ctx, m.conn(ctx), listQuery(f), p)
}

func (m *externalPatientManagerPG) GetExternalPatient(ctx context.Context, id int64) (*ExternalPatient, error) {
	p, err := db.One[ExternalPatient](ctx, m.conn(ctx), `SELECT `+externalPatientCols+`
		FROM external_patient WHERE external_patient_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("external patient %d: %w", id, err)
	}
	return p, nil
}

func (m *externalPatientManagerPG) GetExternalPatientByUUID(ctx context.Context, id uuid.UUID) (*ExternalPatient, error) {
	p, err := db.One[ExternalPatient](ctx, m.conn(ctx), `SELECT `+externalPatientCols+`
		FROM external_patient WHERE external_patient_uuid = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("external patient %s: %w", id, err)
	}
	return p, nil
}

func (m *externalPatientManagerPG) ExternalPatientExists(ctx context.Context, id int64) (bool, error) {
	return db.Exists(ctx, m.conn(ctx),
		`SELECT 1 FROM external_patient WHERE external_patient_id = $1`, id)
}

func (m *externalPatientManagerPG) IdentifierTaken(ctx context.Context, system, identifier string, exceptID int64) (bool, error) {
	return db.Exists(ctx, m.conn(ctx), `SELECT 1 FROM external_patient
		WHERE identifier_system = $1 AND identifier = $2 AND external_patient_id <> $3`,
		system, identifier, exceptID)
}

func (m *externalPatientManagerPG) CreateExternalPatient(ctx context.Context, p *ExternalPatient) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO external_patient (external_patient_uuid, identifier_system, identifier,
			health_number, health_number_province, patient_id, first_name, last_name,
			date_of_birth, gender, phone, address, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING external_patient_id`,
		p.ExternalPatientUUID, p.IdentifierSystem, p.Identifier,
		p.HealthNumber, p.HealthNumberProvince, p.PatientID, p.FirstName, p.LastName,
		p.DateOfBirth, p.Gender, p.Phone, p.Address, p.CreatedDate,
	).Scan(&p.ExternalPatientID)
	return p.ExternalPatientID, db.Translate(err)
}

func (m *externalPatientManagerPG) UpdateExternalPatient(ctx context.Context, p *ExternalPatient) error {
	tag, err := m.conn(ctx).Exec(ctx, `
		UPDATE external_patient SET identifier_system = $2, identifier = $3, health_number = $4,
			health_number_province = $5, patient_id = $6, first_name = $7, last_name = $8,
			date_of_birth = $9, gender = $10, phone = $11, address = $12
		WHERE external_patient_id = $1`,
		p.ExternalPatientID, p.IdentifierSystem, p.Identifier, p.HealthNumber,
		p.HealthNumberProvince, p.PatientID, p.FirstName, p.LastName,
		p.DateOfBirth, p.Gender, p.Phone, p.Address)
	if err != nil {
		return db.Translate(err)
	}
	return db.Affected("external patient", p.ExternalPatientID, tag.RowsAffected())
}

func (m *externalPatientManagerPG) DeleteExternalPatient(ctx context.Context, id int64) error {
	return db.Delete(ctx, m.conn(ctx), "external patient", id,
		`DELETE FROM external_patient WHERE external_patient_id = $1`, id)
}
