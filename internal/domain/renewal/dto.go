package renewal

import (
	"time"

	"github.com/google/uuid"
)

type RenewalRequestGroupDto struct {
	RenewalRequestGroupID int64     `json:"renewalRequestGroupId"`
	GroupUUID             uuid.UUID `json:"groupUuid"`
	PharmacyName          string    `json:"pharmacyName" validate:"required"`
	PharmacyIdentifier    *string   `json:"pharmacyIdentifier,omitempty"`
	PatientID             *int64    `json:"patientId,omitempty" validate:"omitempty,gt=0"`
	ReceivedDate          time.Time `json:"receivedDate"`
	Status                string    `json:"status"`
}

type RenewalRequestDto struct {
	RenewalRequestID      int64     `json:"renewalRequestId"`
	RenewalRequestGroupID int64     `json:"renewalRequestGroupId" validate:"required,gt=0"`
	PrescriptionID        *int64    `json:"prescriptionId,omitempty"`
	MedicationName        string    `json:"medicationName" validate:"required"`
	Quantity              *float64  `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	RefillsRequested      *int      `json:"refillsRequested,omitempty" validate:"omitempty,gte=0"`
	Status                string    `json:"status"`
	RequestedDate         time.Time `json:"requestedDate"`
	Note                  *string   `json:"note,omitempty"`
}

type RenewalRequestResponseDto struct {
	RenewalResponseID int64     `json:"renewalResponseId"`
	RenewalRequestID  int64     `json:"renewalRequestId" validate:"required,gt=0"`
	ResponseType      string    `json:"responseType" validate:"required,oneof=approved approved-with-changes denied under-review"`
	ResponderID       *int64    `json:"responderId,omitempty"`
	ResponseDate      time.Time `json:"responseDate"`
	Quantity          *float64  `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Refills           *int      `json:"refills,omitempty" validate:"omitempty,gte=0"`
	Note              *string   `json:"note,omitempty"`
}
