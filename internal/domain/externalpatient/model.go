package externalpatient

import (
	"time"

	"github.com/google/uuid"
)

// ExternalPatient is a patient record received from another system, keyed
// by the identifier that system assigned. PatientID links it to a local
// chart once matched.
type ExternalPatient struct {
	ExternalPatientID    int64      `db:"external_patient_id"`
	ExternalPatientUUID  uuid.UUID  `db:"external_patient_uuid"`
	IdentifierSystem     string     `db:"identifier_system"`
	Identifier           string     `db:"identifier"`
	HealthNumber         *string    `db:"health_number"`
	HealthNumberProvince *string    `db:"health_number_province"`
	PatientID            *int64     `db:"patient_id"`
	FirstName            string     `db:"first_name"`
	LastName             string     `db:"last_name"`
	DateOfBirth          *time.Time `db:"date_of_birth"`
	Gender               *string    `db:"gender"`
	Phone                *string    `db:"phone"`
	Address              *string    `db:"address"`
	CreatedDate          time.Time  `db:"created_date"`
}

type Filter struct {
	Identifier   string
	HealthNumber string
	PatientID    *int64
}
