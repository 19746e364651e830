package externalpatient

import (
	"time"

	"github.com/google/uuid"
)

type ExternalPatientDto struct {
	ExternalPatientID    int64      `json:"externalPatientId"`
	ExternalPatientUUID  uuid.UUID  `json:"externalPatientUuid"`
	IdentifierSystem     string     `json:"identifierSystem" validate:"required"`
	Identifier           string     `json:"identifier" validate:"required"`
	HealthNumber         *string    `json:"healthNumber,omitempty"`
	HealthNumberProvince *string    `json:"healthNumberProvince,omitempty" validate:"omitempty,len=2,uppercase"`
	PatientID            *int64     `json:"patientId,omitempty" validate:"omitempty,gt=0"`
	FirstName            string     `json:"firstName" validate:"required"`
	LastName             string     `json:"lastName" validate:"required"`
	DateOfBirth          *time.Time `json:"dateOfBirth,omitempty"`
	Gender               *string    `json:"gender,omitempty" validate:"omitempty,oneof=male female other unknown"`
	Phone                *string    `json:"phone,omitempty"`
	Address              *string    `json:"address,omitempty"`
	CreatedDate          time.Time  `json:"createdDate"`
}
