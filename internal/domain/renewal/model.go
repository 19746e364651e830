package renewal

import (
	"time"

	"github.com/google/uuid"
)

// Group bundles the renewal requests a pharmacy sent together for one
// patient.
type Group struct {
	RenewalRequestGroupID int64     `db:"renewal_request_group_id"`
	GroupUUID             uuid.UUID `db:"group_uuid"`
	PharmacyName          string    `db:"pharmacy_name"`
	PharmacyIdentifier    *string   `db:"pharmacy_identifier"`
	PatientID             *int64    `db:"patient_id"`
	ReceivedDate          time.Time `db:"received_date"`
	Status                string    `db:"status"`
}

// Request asks the prescriber to renew one medication. Its status tracks
// the most recent Response.
type Request struct {
	RenewalRequestID      int64     `db:"renewal_request_id"`
	RenewalRequestGroupID int64     `db:"renewal_request_group_id"`
	PrescriptionID        *int64    `db:"prescription_id"`
	MedicationName        string    `db:"medication_name"`
	Quantity              *float64  `db:"quantity"`
	RefillsRequested      *int      `db:"refills_requested"`
	Status                string    `db:"status"`
	RequestedDate         time.Time `db:"requested_date"`
	Note                  *string   `db:"note"`
}

type Response struct {
	RenewalResponseID int64     `db:"renewal_response_id"`
	RenewalRequestID  int64     `db:"renewal_request_id"`
	ResponseType      string    `db:"response_type"`
	ResponderID       *int64    `db:"responder_id"`
	ResponseDate      time.Time `db:"response_date"`
	Quantity          *float64  `db:"quantity"`
	Refills           *int      `db:"refills"`
	Note              *string   `db:"note"`
}

type GroupFilter struct {
	PatientID *int64
	Status    string
}

type RequestFilter struct {
	RenewalRequestGroupID *int64
	PrescriptionID        *int64
	Status                string
}

type ResponseFilter struct {
	RenewalRequestID *int64
}
