package materials

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/prescribeit/internal/platform/db"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type materialsManagerPG struct{ pool *pgxpool.Pool }

func NewAppointmentMaterialsManagerPG(pool *pgxpool.Pool) AppointmentMaterialsManager {
	return &materialsManagerPG{pool: pool}
}

func (m *materialsManagerPG) conn(ctx context.Context) db.Querier {
	return db.Pick(ctx, m.pool)
}

const appointmentCols = `appointment_id, row_version, patient_id, provider_id, office_id,
	appointment_date, start_time, duration_minutes, appointment_type, status, bill_only, reason`

const reminderCols = `reminder_id, appointment_id, method, destination, scheduled_date, sent_date, status`

func buildQuery(f Filter) *db.Query {
	q := db.NewQuery("appointment", appointmentCols, "row_version").
		Where("appointment_date BETWEEN ? AND ?", f.StartDate, f.EndDate)
	db.Eq(q, "provider_id", f.ProviderID)

	switch {
	case len(f.OfficeIDs) > 0 && f.IncludeNullOffice:
		q.Where("(office_id = ANY(?) OR office_id IS NULL)", f.OfficeIDs)
	case len(f.OfficeIDs) > 0:
		db.In(q, "office_id", f.OfficeIDs)
	case !f.IncludeNullOffice:
		q.Where("office_id IS NOT NULL")
	}
	if !f.IncludeBillOnly {
		q.Where("bill_only = FALSE")
	}
	if f.AccessionNumber != "" {
		q.Where(`EXISTS (SELECT 1 FROM appointment_accession aa
			WHERE aa.appointment_id = appointment.appointment_id AND aa.accession_number = ?)`, f.AccessionNumber)
	}
	return q
}

func (m *materialsManagerPG) ListAppointmentMaterials(ctx context.Context, f Filter, p pagination.Params) ([]*Appointment, int, error) {
	conn := m.conn(ctx)
	items, total, err := db.Page[Appointment](ctx, conn, buildQuery(f), p)
	if err != nil || len(items) == 0 {
		return items, total, err
	}

	byID := make(map[int64]*Appointment, len(items))
	ids := make([]int64, 0, len(items))
	for _, a := range items {
		a.AccessionNumbers = []string{}
		a.Reminders = []*Reminder{}
		byID[a.AppointmentID] = a
		ids = append(ids, a.AppointmentID)
	}

	type accession struct {
		AppointmentID   int64  `db:"appointment_id"`
		AccessionNumber string `db:"accession_number"`
	}
	accs, err := db.All[accession](ctx, conn, `
		SELECT appointment_id, accession_number FROM appointment_accession
		WHERE appointment_id = ANY($1) ORDER BY accession_number`, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("load accession numbers: %w", err)
	}
	for _, a := range accs {
		byID[a.AppointmentID].AccessionNumbers = append(byID[a.AppointmentID].AccessionNumbers, a.AccessionNumber)
	}

	rems, err := db.All[Reminder](ctx, conn, `SELECT `+reminderCols+` FROM appointment_reminder
		WHERE appointment_id = ANY($1) ORDER BY scheduled_date, reminder_id`, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("load reminders: %w", err)
	}
	for _, r := range rems {
		byID[r.AppointmentID].Reminders = append(byID[r.AppointmentID].Reminders, r)
	}
	return items, total, nil
}
