package prescription

import (
	"time"

	"github.com/google/uuid"
)

type PrescriptionMedicationDto struct {
	PrescriptionID      int64      `json:"prescriptionId"`
	PrescriptionUUID    uuid.UUID  `json:"prescriptionUuid"`
	PatientID           int64      `json:"patientId"`
	ProviderID          int64      `json:"providerId"`
	Status              string     `json:"status"`
	WrittenDate         time.Time  `json:"writtenDate"`
	StartDate           *time.Time `json:"startDate,omitempty"`
	EndDate             *time.Time `json:"endDate,omitempty"`
	MedicationName      string     `json:"medicationName"`
	DIN                 *string    `json:"din,omitempty"`
	Strength            *string    `json:"strength,omitempty"`
	Form                *string    `json:"form,omitempty"`
	Route               *string    `json:"route,omitempty"`
	Quantity            *float64   `json:"quantity,omitempty"`
	QuantityUnit        *string    `json:"quantityUnit,omitempty"`
	Refills             int        `json:"refills"`
	RefillIntervalDays  *int       `json:"refillIntervalDays,omitempty"`
	DaysSupply          *int       `json:"daysSupply,omitempty"`
	SubstitutionAllowed bool       `json:"substitutionAllowed"`
	LongTerm            bool       `json:"longTerm"`
	Instructions        *string    `json:"instructions,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	PharmacyID          *int64     `json:"pharmacyId,omitempty"`
	PrescribeItRxID     *string    `json:"prescribeItRxId,omitempty"`
	LastModified        time.Time  `json:"lastModified"`

	Dosages         []DosageDto        `json:"dosages,omitempty"`
	Indications     []IndicationDto    `json:"indications,omitempty"`
	Annotations     []AnnotationDto    `json:"annotations,omitempty"`
	StatusHistories []StatusHistoryDto `json:"statusHistories,omitempty"`
	Interactions    []InteractionDto   `json:"interactions,omitempty"`
	Links           []LinkDto          `json:"links,omitempty"`
}

type DosageDto struct {
	DosageID       int64      `json:"dosageId"`
	PrescriptionID int64      `json:"prescriptionId"`
	DoseMin        *float64   `json:"doseMin,omitempty"`
	DoseMax        *float64   `json:"doseMax,omitempty"`
	DoseUnit       *string    `json:"doseUnit,omitempty"`
	Frequency      *string    `json:"frequency,omitempty"`
	Duration       *int       `json:"duration,omitempty"`
	DurationUnit   *string    `json:"durationUnit,omitempty"`
	IntervalValue  *int       `json:"interval,omitempty"`
	IntervalUnit   *string    `json:"intervalUnit,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	PRN            bool       `json:"proReNata"`
	Concurrent     bool       `json:"concurrent"`
	EyeCode        *string    `json:"eyeCode,omitempty"`
}

type IndicationDto struct {
	IndicationID   int64   `json:"indicationId"`
	PrescriptionID int64   `json:"prescriptionId"`
	Code           *string `json:"code,omitempty"`
	CodeSystem     *string `json:"codeSystem,omitempty"`
	Description    string  `json:"description"`
}

type AnnotationDto struct {
	AnnotationID   int64     `json:"annotationId"`
	PrescriptionID int64     `json:"prescriptionId"`
	AnnotationDate time.Time `json:"annotationDate"`
	AnnotationType string    `json:"annotationType" validate:"required"`
	AuthorID       *int64    `json:"authorId,omitempty"`
	EnteredByID    *int64    `json:"enteredById,omitempty"`
	Comments       string    `json:"comments" validate:"required"`
}

type StatusHistoryDto struct {
	StatusHistoryID       int64      `json:"statusHistoryId"`
	PrescriptionID        int64      `json:"prescriptionId"`
	Status                string     `json:"status"`
	EffectiveDate         time.Time  `json:"effectiveDate"`
	EndDate               *time.Time `json:"endDate,omitempty"`
	Reason                *string    `json:"reason,omitempty"`
	AuthorizingProviderID *int64     `json:"authorizingProviderId,omitempty"`
}

type InteractionDto struct {
	InteractionID             int64     `json:"interactionId"`
	PrescriptionID            int64     `json:"prescriptionId"`
	InteractingPrescriptionID *int64    `json:"interactingPrescriptionId,omitempty"`
	Severity                  string    `json:"severity"`
	InteractionType           string    `json:"interactionType"`
	Description               string    `json:"description"`
	DetectedDate              time.Time `json:"detectedDate"`

	ManagementDetails []InteractionManagementDetailsDto `json:"managementDetails"`
}

type InteractionManagementDetailsDto struct {
	ManagementDetailID int64     `json:"managementDetailId"`
	InteractionID      int64     `json:"interactionId"`
	ManagedByID        int64     `json:"managedById" validate:"required"`
	ManagedDate        time.Time `json:"managedDate"`
	Action             string    `json:"action" validate:"required"`
	Comments           *string   `json:"comments,omitempty"`
}

type LinkDto struct {
	LinkID               int64  `json:"linkId"`
	PrescriptionID       int64  `json:"prescriptionId"`
	LinkedPrescriptionID int64  `json:"linkedPrescriptionId"`
	LinkType             string `json:"linkType"`
}
