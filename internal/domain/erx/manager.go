package erx

import (
	"context"

	"github.com/ehr/prescribeit/pkg/pagination"
)

// EprescribeJobManager persists jobs, their tasks and the job type and
// outcome lookups. Duplicate type or outcome codes fail with a conflict.
type EprescribeJobManager interface {
	ListJobTypes(ctx context.Context, p pagination.Params) ([]*JobType, int, error)
	GetJobType(ctx context.Context, id int64) (*JobType, error)
	JobTypeExists(ctx context.Context, id int64) (bool, error)
	CreateJobType(ctx context.Context, t *JobType) (int64, error)
	UpdateJobType(ctx context.Context, t *JobType) error
	DeleteJobType(ctx context.Context, id int64) error

	ListJobOutcomes(ctx context.Context, p pagination.Params) ([]*JobOutcome, int, error)
	GetJobOutcome(ctx context.Context, id int64) (*JobOutcome, error)
	JobOutcomeExists(ctx context.Context, id int64) (bool, error)
	CreateJobOutcome(ctx context.Context, o *JobOutcome) (int64, error)
	UpdateJobOutcome(ctx context.Context, o *JobOutcome) error
	DeleteJobOutcome(ctx context.Context, id int64) error

	ListEprescribeJobs(ctx context.Context, f JobFilter, p pagination.Params) ([]*Job, int, error)
	GetEprescribeJob(ctx context.Context, id int64) (*Job, error)
	EprescribeJobExists(ctx context.Context, id int64) (bool, error)
	CreateEprescribeJob(ctx context.Context, j *Job) (int64, error)
	UpdateEprescribeJob(ctx context.Context, j *Job) error
	DeleteEprescribeJob(ctx context.Context, id int64) error

	ListJobTasks(ctx context.Context, f TaskFilter, p pagination.Params) ([]*Task, int, error)
	GetJobTask(ctx context.Context, id int64) (*Task, error)
	CreateJobTask(ctx context.Context, t *Task) (int64, error)
	UpdateJobTask(ctx context.Context, t *Task) error
	DeleteJobTask(ctx context.Context, id int64) error
}

type CancelRequestManager interface {
	ListCancelRequests(ctx context.Context, f CancelRequestFilter, p pagination.Params) ([]*CancelRequest, int, error)
	GetCancelRequest(ctx context.Context, id int64) (*CancelRequest, error)
	CancelRequestExists(ctx context.Context, id int64) (bool, error)
	CreateCancelRequest(ctx context.Context, r *CancelRequest) (int64, error)
	UpdateCancelRequest(ctx context.Context, r *CancelRequest) error
	DeleteCancelRequest(ctx context.Context, id int64) error

	ListCancelResponses(ctx context.Context, cancelRequestID int64, p pagination.Params) ([]*CancelResponse, int, error)
	// CreateCancelResponse records r and sets the request's status to
	// r.ResponseType atomically.
	CreateCancelResponse(ctx context.Context, r *CancelResponse) (int64, error)
}

type OrderStatusManager interface {
	ListOrderStatuses(ctx context.Context, f OrderStatusFilter, p pagination.Params) ([]*OrderStatus, int, error)
	GetOrderStatus(ctx context.Context, id int64) (*OrderStatus, error)
	CreateOrderStatus(ctx context.Context, s *OrderStatus) (int64, error)
	UpdateOrderStatus(ctx context.Context, s *OrderStatus) error
	DeleteOrderStatus(ctx context.Context, id int64) error
}
