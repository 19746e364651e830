package dispense

import (
	"time"

	"github.com/google/uuid"
)

type DispenseNotificationDto struct {
	DispenseNotificationID int64      `json:"dispenseNotificationId"`
	DispenseUUID           uuid.UUID  `json:"dispenseUuid"`
	PrescriptionUUID       *uuid.UUID `json:"prescriptionUuid,omitempty"`
	PrescriptionIdentifier *string    `json:"prescriptionIdentifier,omitempty"`
	PatientUUID            *uuid.UUID `json:"patientUuid,omitempty"`
	PatientIdentifier      *string    `json:"patientIdentifier,omitempty"`
	PharmacyName           string     `json:"pharmacyName" validate:"required"`
	PharmacyIdentifier     *string    `json:"pharmacyIdentifier,omitempty"`
	DispensedDate          time.Time  `json:"dispensedDate" validate:"required"`
	MedicationName         string     `json:"medicationName" validate:"required"`
	DIN                    *string    `json:"din,omitempty" validate:"omitempty,numeric,len=8"`
	Quantity               float64    `json:"quantity" validate:"gt=0"`
	QuantityUnit           *string    `json:"quantityUnit,omitempty"`
	DaysSupply             *int       `json:"daysSupply,omitempty" validate:"omitempty,gte=0"`
	RefillsRemaining       *int       `json:"refillsRemaining,omitempty" validate:"omitempty,gte=0"`
	PharmacistName         *string    `json:"pharmacistName,omitempty"`
	Notes                  *string    `json:"notes,omitempty"`
	Cancelled              bool       `json:"cancelled"`
	CancelledDate          *time.Time `json:"cancelledDate,omitempty"`
	CancelReason           *string    `json:"cancelReason,omitempty"`
	ReceivedDate           time.Time  `json:"receivedDate"`
}
