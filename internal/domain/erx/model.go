package erx

import (
	"time"

	"github.com/google/uuid"
)

// JobType classifies what an e-prescribe job sends, e.g. a new
// prescription or a cancellation.
type JobType struct {
	JobTypeID   int64  `db:"job_type_id"`
	Code        string `db:"code"`
	Description string `db:"description"`
	Active      bool   `db:"active"`
}

// JobOutcome is the terminal result recorded against a job.
type JobOutcome struct {
	JobOutcomeID int64  `db:"job_outcome_id"`
	Code         string `db:"code"`
	Description  string `db:"description"`
	Successful   bool   `db:"successful"`
}

// Job is one submission of a prescribing message to the e-prescribing
// network. JobOutcomeID stays nil until the job completes.
type Job struct {
	EprescribeJobID int64      `db:"eprescribe_job_id"`
	JobUUID         uuid.UUID  `db:"job_uuid"`
	JobTypeID       int64      `db:"job_type_id"`
	JobOutcomeID    *int64     `db:"job_outcome_id"`
	PrescriptionID  *int64     `db:"prescription_id"`
	PatientID       *int64     `db:"patient_id"`
	Status          string     `db:"status"`
	MessageID       *string    `db:"message_id"`
	SubmittedDate   time.Time  `db:"submitted_date"`
	CompletedDate   *time.Time `db:"completed_date"`
	Attempts        int        `db:"attempts"`
	ErrorMessage    *string    `db:"error_message"`
	CreatedByID     *int64     `db:"created_by_id"`
}

// Task is a step within a job, ordered by Sequence.
type Task struct {
	JobTaskID       int64      `db:"job_task_id"`
	EprescribeJobID int64      `db:"eprescribe_job_id"`
	TaskType        string     `db:"task_type"`
	Status          string     `db:"status"`
	Sequence        int        `db:"sequence"`
	StartedDate     *time.Time `db:"started_date"`
	CompletedDate   *time.Time `db:"completed_date"`
	ErrorMessage    *string    `db:"error_message"`
}

// CancelRequest asks the pharmacy to cancel what a job sent. Its status
// follows the latest CancelResponse.
type CancelRequest struct {
	CancelRequestID int64     `db:"cancel_request_id"`
	EprescribeJobID int64     `db:"eprescribe_job_id"`
	PrescriptionID  *int64    `db:"prescription_id"`
	Reason          string    `db:"reason"`
	Status          string    `db:"status"`
	RequestedDate   time.Time `db:"requested_date"`
	RequestedByID   *int64    `db:"requested_by_id"`
}

type CancelResponse struct {
	CancelResponseID int64     `db:"cancel_response_id"`
	CancelRequestID  int64     `db:"cancel_request_id"`
	ResponseType     string    `db:"response_type"`
	ResponseDate     time.Time `db:"response_date"`
	Responder        *string   `db:"responder"`
	Note             *string   `db:"note"`
}

// OrderStatus is a status the pharmacy reported for a prescription order.
type OrderStatus struct {
	OrderStatusID      int64     `db:"order_status_id"`
	PrescriptionID     int64     `db:"prescription_id"`
	EprescribeJobID    *int64    `db:"eprescribe_job_id"`
	Status             string    `db:"status"`
	StatusDate         time.Time `db:"status_date"`
	PharmacyIdentifier *string   `db:"pharmacy_identifier"`
	Note               *string   `db:"note"`
}

type JobFilter struct {
	Status         string
	JobTypeID      *int64
	PrescriptionID *int64
	PatientID      *int64
}

type TaskFilter struct {
	EprescribeJobID *int64
}

type CancelRequestFilter struct {
	EprescribeJobID *int64
	Status          string
}

type OrderStatusFilter struct {
	PrescriptionID  *int64
	EprescribeJobID *int64
}
