package erx

import (
	"time"

	"github.com/google/uuid"
)

type EprescribeJobTypeDto struct {
	JobTypeID   int64  `json:"jobTypeId"`
	Code        string `json:"code" validate:"required,max=60"`
	Description string `json:"description" validate:"required"`
	Active      bool   `json:"active"`
}

type EprescribeJobOutcomeDto struct {
	JobOutcomeID int64  `json:"jobOutcomeId"`
	Code         string `json:"code" validate:"required,max=60"`
	Description  string `json:"description" validate:"required"`
	Successful   bool   `json:"successful"`
}

type EprescribeJobDto struct {
	EprescribeJobID int64      `json:"eprescribeJobId"`
	JobUUID         uuid.UUID  `json:"jobUuid"`
	JobTypeID       int64      `json:"jobTypeId" validate:"required,gt=0"`
	JobOutcomeID    *int64     `json:"jobOutcomeId,omitempty" validate:"omitempty,gt=0"`
	PrescriptionID  *int64     `json:"prescriptionId,omitempty"`
	PatientID       *int64     `json:"patientId,omitempty"`
	Status          string     `json:"status"`
	MessageID       *string    `json:"messageId,omitempty"`
	SubmittedDate   time.Time  `json:"submittedDate"`
	CompletedDate   *time.Time `json:"completedDate,omitempty"`
	Attempts        int        `json:"attempts" validate:"gte=0"`
	ErrorMessage    *string    `json:"errorMessage,omitempty"`
	CreatedByID     *int64     `json:"createdById,omitempty"`
}

type EprescribeJobTaskDto struct {
	JobTaskID       int64      `json:"jobTaskId"`
	EprescribeJobID int64      `json:"eprescribeJobId" validate:"required,gt=0"`
	TaskType        string     `json:"taskType" validate:"required"`
	Status          string     `json:"status" validate:"required"`
	Sequence        int        `json:"sequence" validate:"gte=0"`
	StartedDate     *time.Time `json:"startedDate,omitempty"`
	CompletedDate   *time.Time `json:"completedDate,omitempty"`
	ErrorMessage    *string    `json:"errorMessage,omitempty"`
}

type EprescribeCancelRequestDto struct {
	CancelRequestID int64     `json:"cancelRequestId"`
	EprescribeJobID int64     `json:"eprescribeJobId" validate:"required,gt=0"`
	PrescriptionID  *int64    `json:"prescriptionId,omitempty"`
	Reason          string    `json:"reason" validate:"required"`
	Status          string    `json:"status"`
	RequestedDate   time.Time `json:"requestedDate"`
	RequestedByID   *int64    `json:"requestedById,omitempty"`
}

type EprescribeCancelResponseDto struct {
	CancelResponseID int64     `json:"cancelResponseId"`
	CancelRequestID  int64     `json:"cancelRequestId"`
	ResponseType     string    `json:"responseType" validate:"required,oneof=approved denied"`
	ResponseDate     time.Time `json:"responseDate"`
	Responder        *string   `json:"responder,omitempty"`
	Note             *string   `json:"note,omitempty"`
}

type EprescribeOrderStatusDto struct {
	OrderStatusID      int64     `json:"orderStatusId"`
	PrescriptionID     int64     `json:"prescriptionId" validate:"required,gt=0"`
	EprescribeJobID    *int64    `json:"eprescribeJobId,omitempty" validate:"omitempty,gt=0"`
	Status             string    `json:"status" validate:"required"`
	StatusDate         time.Time `json:"statusDate"`
	PharmacyIdentifier *string   `json:"pharmacyIdentifier,omitempty"`
	Note               *string   `json:"note,omitempty"`
}
