package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Prescription is the aggregate root. Child collections are only populated
// when the full aggregate is loaded.
type Prescription struct {
	PrescriptionID      int64      `db:"prescription_id"`
	PrescriptionUUID    uuid.UUID  `db:"prescription_uuid"`
	PatientID           int64      `db:"patient_id"`
	ProviderID          int64      `db:"provider_id"`
	Status              string     `db:"status"`
	WrittenDate         time.Time  `db:"written_date"`
	StartDate           *time.Time `db:"start_date"`
	EndDate             *time.Time `db:"end_date"`
	MedicationName      string     `db:"medication_name"`
	DIN                 *string    `db:"din"`
	Strength            *string    `db:"strength"`
	Form                *string    `db:"form"`
	Route               *string    `db:"route"`
	Quantity            *float64   `db:"quantity"`
	QuantityUnit        *string    `db:"quantity_unit"`
	Refills             int        `db:"refills"`
	RefillIntervalDays  *int       `db:"refill_interval_days"`
	DaysSupply          *int       `db:"days_supply"`
	SubstitutionAllowed bool       `db:"substitution_allowed"`
	LongTerm            bool       `db:"long_term"`
	Instructions        *string    `db:"instructions"`
	Notes               *string    `db:"notes"`
	PharmacyID          *int64     `db:"pharmacy_id"`
	PrescribeItRxID     *string    `db:"prescribeit_rx_id"`
	LastModified        time.Time  `db:"last_modified"`

	Dosages         []*Dosage        `db:"-"`
	Indications     []*Indication    `db:"-"`
	Annotations     []*Annotation    `db:"-"`
	StatusHistories []*StatusHistory `db:"-"`
	Interactions    []*Interaction   `db:"-"`
	Links           []*Link          `db:"-"`
}

type Dosage struct {
	DosageID       int64      `db:"dosage_id"`
	PrescriptionID int64      `db:"prescription_id"`
	DoseMin        *float64   `db:"dose_min"`
	DoseMax        *float64   `db:"dose_max"`
	DoseUnit       *string    `db:"dose_unit"`
	Frequency      *string    `db:"frequency"`
	Duration       *int       `db:"duration"`
	DurationUnit   *string    `db:"duration_unit"`
	IntervalValue  *int       `db:"interval_value"`
	IntervalUnit   *string    `db:"interval_unit"`
	StartDate      *time.Time `db:"start_date"`
	PRN            bool       `db:"prn"`
	Concurrent     bool       `db:"concurrent"`
	EyeCode        *string    `db:"eye_code"`
}

type Indication struct {
	IndicationID   int64   `db:"indication_id"`
	PrescriptionID int64   `db:"prescription_id"`
	Code           *string `db:"code"`
	CodeSystem     *string `db:"code_system"`
	Description    string  `db:"description"`
}

type Annotation struct {
	AnnotationID   int64     `db:"annotation_id"`
	PrescriptionID int64     `db:"prescription_id"`
	AnnotationDate time.Time `db:"annotation_date"`
	AnnotationType string    `db:"annotation_type"`
	AuthorID       *int64    `db:"author_id"`
	EnteredByID    *int64    `db:"entered_by_id"`
	Comments       string    `db:"comments"`
}

// StatusHistory records one status a prescription held and for how long.
type StatusHistory struct {
	StatusHistoryID       int64      `db:"status_history_id"`
	PrescriptionID        int64      `db:"prescription_id"`
	Status                string     `db:"status"`
	EffectiveDate         time.Time  `db:"effective_date"`
	EndDate               *time.Time `db:"end_date"`
	Reason                *string    `db:"reason"`
	AuthorizingProviderID *int64     `db:"authorizing_provider_id"`
}

// Interaction is a drug interaction warning raised against a prescription.
type Interaction struct {
	InteractionID             int64     `db:"interaction_id"`
	PrescriptionID            int64     `db:"prescription_id"`
	InteractingPrescriptionID *int64    `db:"interacting_prescription_id"`
	Severity                  string    `db:"severity"`
	InteractionType           string    `db:"interaction_type"`
	Description               string    `db:"description"`
	DetectedDate              time.Time `db:"detected_date"`

	ManagementDetails []*ManagementDetail `db:"-"`
}

// ManagementDetail records how a clinician resolved an interaction.
type ManagementDetail struct {
	ManagementDetailID int64     `db:"management_detail_id"`
	InteractionID      int64     `db:"interaction_id"`
	ManagedByID        int64     `db:"managed_by_id"`
	ManagedDate        time.Time `db:"managed_date"`
	Action             string    `db:"action"`
	Comments           *string   `db:"comments"`
}

type Link struct {
	LinkID               int64  `db:"link_id"`
	PrescriptionID       int64  `db:"prescription_id"`
	LinkedPrescriptionID int64  `db:"linked_prescription_id"`
	LinkType             string `db:"link_type"`
}

type Filter struct {
	PatientID   *int64
	ProviderID  *int64
	Status      string
	WrittenFrom *time.Time
	WrittenTo   *time.Time
}
