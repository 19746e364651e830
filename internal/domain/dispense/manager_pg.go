package dispense

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/prescribeit/internal/platform/db"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type dispenseManagerPG struct{ pool *pgxpool.Pool }

func NewDispenseNotificationManagerPG(pool *pgxpool.Pool) DispenseNotificationManager {
	return &dispenseManagerPG{pool: pool}
}

func (m *dispenseManagerPG) conn(ctx context.Context) db.Querier {
	return db.Pick(ctx, m.pool)
}

const notificationCols = `dispense_notification_id, dispense_uuid, prescription_uuid,
	prescription_identifier, patient_uuid, patient_identifier, pharmacy_name,
	pharmacy_identifier, dispensed_date, medication_name, din, quantity, quantity_unit,
	days_supply, refills_remaining, pharmacist_name, notes, cancelled, cancelled_date,
	cancel_reason, received_date`

func listQuery(f Filter) *db.Query {
	q := db.NewQuery("dispense_notification", notificationCols, "dispense_notification_id").
		EqString("prescription_identifier", f.PrescriptionIdentifier).
		EqString("patient_identifier", f.PatientIdentifier)
	db.Eq(q, "prescription_uuid", f.PrescriptionUUID)
	db.Eq(q, "patient_uuid", f.PatientUUID)
	if !f.IncludeCancelled {
		q.Where("cancelled = FALSE")
	}
	return q
}

func (m *dispenseManagerPG) ListDispenseNotifications(ctx context.Context, f Filter, p pagination.Params) ([]*Notification, int, error) {
	return db.Page[Notification](ctx, m.conn(ctx), listQuery(f), p)
}

func (m *dispenseManagerPG) GetDispenseNotification(ctx context.Context, id int64) (*Notification, error) {
	n, err := db.One[Notification](ctx, m.conn(ctx), `SELECT `+notificationCols+`
		FROM dispense_notification WHERE dispense_notification_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("dispense notification %d: %w", id, err)
	}
	return n, nil
}

func (m *dispenseManagerPG) CreateDispenseNotification(ctx context.Context, n *Notification) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO dispense_notification (dispense_uuid, prescription_uuid, prescription_identifier,
			patient_uuid, patient_identifier, pharmacy_name, pharmacy_identifier, dispensed_date,
			medication_name, din, quantity, quantity_unit, days_supply, refills_remaining,
			pharmacist_name, notes, received_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING dispense_notification_id`,
		n.DispenseUUID, n.PrescriptionUUID, n.PrescriptionIdentifier,
		n.PatientUUID, n.PatientIdentifier, n.PharmacyName, n.PharmacyIdentifier, n.DispensedDate,
		n.MedicationName, n.DIN, n.Quantity, n.QuantityUnit, n.DaysSupply, n.RefillsRemaining,
		n.PharmacistName, n.Notes, n.ReceivedDate,
	).Scan(&n.DispenseNotificationID)
	return n.DispenseNotificationID, db.Translate(err)
}

func (m *dispenseManagerPG) UpdateDispenseNotification(ctx context.Context, n *Notification) error {
	tag, err := m.conn(ctx).Exec(ctx, `
		UPDATE dispense_notification SET prescription_uuid = $2, prescription_identifier = $3,
			patient_uuid = $4, patient_identifier = $5, pharmacy_name = $6, pharmacy_identifier = $7,
			dispensed_date = $8, medication_name = $9, din = $10, quantity = $11, quantity_unit = $12,
			days_supply = $13, refills_remaining = $14, pharmacist_name = $15, notes = $16
		WHERE dispense_notification_id = $1`,
		n.DispenseNotificationID, n.PrescriptionUUID, n.PrescriptionIdentifier,
		n.PatientUUID, n.PatientIdentifier, n.PharmacyName, n.PharmacyIdentifier,
		n.DispensedDate, n.MedicationName, n.DIN, n.Quantity, n.QuantityUnit,
		n.DaysSupply, n.RefillsRemaining, n.PharmacistName, n.Notes)
	if err != nil {
		return db.Translate(err)
	}
	return db.Affected("dispense notification", n.DispenseNotificationID, tag.RowsAffected())
}

// cancelSQL matches the row whether or not it is already cancelled, so a
// concurrent second cancel still affects it. The first cancel's date and
// reason win.
const cancelSQL = `
	UPDATE dispense_notification SET cancelled = TRUE,
		cancelled_date = COALESCE(cancelled_date, $2),
		cancel_reason = CASE WHEN cancelled THEN cancel_reason ELSE $3 END
	WHERE dispense_notification_id = $1`

func (m *dispenseManagerPG) CancelDispenseNotification(ctx context.Context, id int64, at time.Time, reason *string) error {
	tag, err := m.conn(ctx).Exec(ctx, cancelSQL, id, at, reason)
	if err != nil {
		return db.Translate(err)
	}
	return db.Affected("dispense notification", id, tag.RowsAffected())
}
