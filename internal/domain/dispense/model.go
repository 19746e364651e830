package dispense

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a pharmacy's report that a prescription was dispensed.
// Notifications are never deleted; cancelling one marks it Cancelled.
type Notification struct {
	DispenseNotificationID int64      `db:"dispense_notification_id"`
	DispenseUUID           uuid.UUID  `db:"dispense_uuid"`
	PrescriptionUUID       *uuid.UUID `db:"prescription_uuid"`
	PrescriptionIdentifier *string    `db:"prescription_identifier"`
	PatientUUID            *uuid.UUID `db:"patient_uuid"`
	PatientIdentifier      *string    `db:"patient_identifier"`
	PharmacyName           string     `db:"pharmacy_name"`
	PharmacyIdentifier     *string    `db:"pharmacy_identifier"`
	DispensedDate          time.Time  `db:"dispensed_date"`
	MedicationName         string     `db:"medication_name"`
	DIN                    *string    `db:"din"`
	Quantity               float64    `db:"quantity"`
	QuantityUnit           *string    `db:"quantity_unit"`
	DaysSupply             *int       `db:"days_supply"`
	RefillsRemaining       *int       `db:"refills_remaining"`
	PharmacistName         *string    `db:"pharmacist_name"`
	Notes                  *string    `db:"notes"`
	Cancelled              bool       `db:"cancelled"`
	CancelledDate          *time.Time `db:"cancelled_date"`
	CancelReason           *string    `db:"cancel_reason"`
	ReceivedDate           time.Time  `db:"received_date"`
}

type Filter struct {
	PrescriptionUUID       *uuid.UUID
	PatientUUID            *uuid.UUID
	PrescriptionIdentifier string
	PatientIdentifier      string
	IncludeCancelled       bool
}
