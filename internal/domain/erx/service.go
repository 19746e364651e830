package erx

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/pkg/pagination"
)

const (
	defaultJobStatus    = "pending"
	defaultCancelStatus = "pending"
)

type Service struct {
	jobs    EprescribeJobManager
	cancels CancelRequestManager
	orders  OrderStatusManager
	now     func() time.Time
}

func NewService(jobs EprescribeJobManager, cancels CancelRequestManager, orders OrderStatusManager) *Service {
	return &Service{jobs: jobs, cancels: cancels, orders: orders, now: time.Now}
}

// referenced fails with an invalid-input error when a body reference
// points at a missing row.
func referenced(ctx context.Context, exists func(context.Context, int64) (bool, error), id int64, what string) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Invalid("%s %d does not exist", what, id)
	}
	return nil
}

// -- Job types and outcomes --

func (s *Service) ListJobTypes(ctx context.Context, p pagination.Params) ([]*JobType, int, error) {
	return s.jobs.ListJobTypes(ctx, p)
}

func (s *Service) GetJobType(ctx context.Context, id int64) (*JobType, error) {
	return s.jobs.GetJobType(ctx, id)
}

func (s *Service) CreateJobType(ctx context.Context, t *JobType) (int64, error) {
	return s.jobs.CreateJobType(ctx, t)
}

func (s *Service) UpdateJobType(ctx context.Context, t *JobType) error {
	return s.jobs.UpdateJobType(ctx, t)
}

func (s *Service) DeleteJobType(ctx context.Context, id int64) error {
	return s.jobs.DeleteJobType(ctx, id)
}

func (s *Service) ListJobOutcomes(ctx context.Context, p pagination.Params) ([]*JobOutcome, int, error) {
	return s.jobs.ListJobOutcomes(ctx, p)
}

func (s *Service) GetJobOutcome(ctx context.Context, id int64) (*JobOutcome, error) {
	return s.jobs.GetJobOutcome(ctx, id)
}

func (s *Service) CreateJobOutcome(ctx context.Context, o *JobOutcome) (int64, error) {
	return s.jobs.CreateJobOutcome(ctx, o)
}

func (s *Service) UpdateJobOutcome(ctx context.Context, o *JobOutcome) error {
	return s.jobs.UpdateJobOutcome(ctx, o)
}

func (s *Service) DeleteJobOutcome(ctx context.Context, id int64) error {
	return s.jobs.DeleteJobOutcome(ctx, id)
}

// -- Jobs --

func (s *Service) ListJobs(ctx context.Context, f JobFilter, p pagination.Params) ([]*Job, int, error) {
	return s.jobs.ListEprescribeJobs(ctx, f, p)
}

func (s *Service) GetJob(ctx context.Context, id int64) (*Job, error) {
	return s.jobs.GetEprescribeJob(ctx, id)
}

func (s *Service) checkJobRefs(ctx context.Context, j *Job) error {
	if err := referenced(ctx, s.jobs.JobTypeExists, j.JobTypeID, "job type"); err != nil {
		return err
	}
	if j.JobOutcomeID != nil {
		return referenced(ctx, s.jobs.JobOutcomeExists, *j.JobOutcomeID, "job outcome")
	}
	return nil
}

func (s *Service) CreateJob(ctx context.Context, j *Job) (int64, error) {
	if err := s.checkJobRefs(ctx, j); err != nil {
		return 0, err
	}
	j.JobUUID = uuid.New()
	if j.Status == "" {
		j.Status = defaultJobStatus
	}
	if j.SubmittedDate.IsZero() {
		j.SubmittedDate = s.now().UTC()
	}
	return s.jobs.CreateEprescribeJob(ctx, j)
}

// UpdateJob replaces a job. An empty status keeps the stored one.
func (s *Service) UpdateJob(ctx context.Context, j *Job) error {
	stored, err := s.jobs.GetEprescribeJob(ctx, j.EprescribeJobID)
	if err != nil {
		return err
	}
	if err := s.checkJobRefs(ctx, j); err != nil {
		return err
	}
	if j.Status == "" {
		j.Status = stored.Status
	}
	if err := s.jobs.UpdateEprescribeJob(ctx, j); err != nil {
		return err
	}
	if j.JobOutcomeID != nil {
		zerolog.Ctx(ctx).Info().
			Int64("eprescribe_job_id", j.EprescribeJobID).
			Int64("job_outcome_id", *j.JobOutcomeID).
			Str("status", j.Status).
			Msg("eprescribe job outcome recorded")
	}
	return nil
}

func (s *Service) DeleteJob(ctx context.Context, id int64) error {
	return s.jobs.DeleteEprescribeJob(ctx, id)
}

// -- Tasks --

func (s *Service) ListTasks(ctx context.Context, f TaskFilter, p pagination.Params) ([]*Task, int, error) {
	return s.jobs.ListJobTasks(ctx, f, p)
}

func (s *Service) GetTask(ctx context.Context, id int64) (*Task, error) {
	return s.jobs.GetJobTask(ctx, id)
}

func (s *Service) CreateTask(ctx context.Context, t *Task) (int64, error) {
	if err := referenced(ctx, s.jobs.EprescribeJobExists, t.EprescribeJobID, "eprescribe job"); err != nil {
		return 0, err
	}
	return s.jobs.CreateJobTask(ctx, t)
}

func (s *Service) UpdateTask(ctx context.Context, t *Task) error {
	if err := referenced(ctx, s.jobs.EprescribeJobExists, t.EprescribeJobID, "eprescribe job"); err != nil {
		return err
	}
	return s.jobs.UpdateJobTask(ctx, t)
}

func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	return s.jobs.DeleteJobTask(ctx, id)
}

// -- Cancel requests --

func (s *Service) ListCancelRequests(ctx context.Context, f CancelRequestFilter, p pagination.Params) ([]*CancelRequest, int, error) {
	return s.cancels.ListCancelRequests(ctx, f, p)
}

func (s *Service) GetCancelRequest(ctx context.Context, id int64) (*CancelRequest, error) {
	return s.cancels.GetCancelRequest(ctx, id)
}

func (s *Service) CreateCancelRequest(ctx context.Context, r *CancelRequest) (int64, error) {
	if err := referenced(ctx, s.jobs.EprescribeJobExists, r.EprescribeJobID, "eprescribe job"); err != nil {
		return 0, err
	}
	if r.Status == "" {
		r.Status = defaultCancelStatus
	}
	if r.RequestedDate.IsZero() {
		r.RequestedDate = s.now().UTC()
	}
	id, err := s.cancels.CreateCancelRequest(ctx, r)
	if err != nil {
		return 0, err
	}
	zerolog.Ctx(ctx).Info().
		Int64("cancel_request_id", id).
		Int64("eprescribe_job_id", r.EprescribeJobID).
		Msg("cancel request created")
	return id, nil
}

// UpdateCancelRequest replaces a cancel request. An empty status keeps the
// stored one, which may have been set by a response.
func (s *Service) UpdateCancelRequest(ctx context.Context, r *CancelRequest) error {
	stored, err := s.cancels.GetCancelRequest(ctx, r.CancelRequestID)
	if err != nil {
		return err
	}
	if err := referenced(ctx, s.jobs.EprescribeJobExists, r.EprescribeJobID, "eprescribe job"); err != nil {
		return err
	}
	if r.Status == "" {
		r.Status = stored.Status
	}
	return s.cancels.UpdateCancelRequest(ctx, r)
}

func (s *Service) DeleteCancelRequest(ctx context.Context, id int64) error {
	return s.cancels.DeleteCancelRequest(ctx, id)
}

func (s *Service) requireCancelRequest(ctx context.Context, id int64) error {
	ok, err := s.cancels.CancelRequestExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("cancel request %d", id)
	}
	return nil
}

func (s *Service) ListCancelResponses(ctx context.Context, cancelRequestID int64, p pagination.Params) ([]*CancelResponse, int, error) {
	if err := s.requireCancelRequest(ctx, cancelRequestID); err != nil {
		return nil, 0, err
	}
	return s.cancels.ListCancelResponses(ctx, cancelRequestID, p)
}

// RespondToCancelRequest records the pharmacy's answer; the request takes
// the response type as its status.
func (s *Service) RespondToCancelRequest(ctx context.Context, cancelRequestID int64, r *CancelResponse) (int64, error) {
	if err := s.requireCancelRequest(ctx, cancelRequestID); err != nil {
		return 0, err
	}
	r.CancelRequestID = cancelRequestID
	if r.ResponseDate.IsZero() {
		r.ResponseDate = s.now().UTC()
	}
	id, err := s.cancels.CreateCancelResponse(ctx, r)
	if err != nil {
		return 0, err
	}
	zerolog.Ctx(ctx).Info().
		Int64("cancel_request_id", cancelRequestID).
		Str("response_type", r.ResponseType).
		Msg("cancel request answered")
	return id, nil
}

// -- Order statuses --

func (s *Service) ListOrderStatuses(ctx context.Context, f OrderStatusFilter, p pagination.Params) ([]*OrderStatus, int, error) {
	return s.orders.ListOrderStatuses(ctx, f, p)
}

func (s *Service) GetOrderStatus(ctx context.Context, id int64) (*OrderStatus, error) {
	return s.orders.GetOrderStatus(ctx, id)
}

func (s *Service) checkOrderStatus(ctx context.Context, o *OrderStatus) error {
	if o.EprescribeJobID != nil {
		if err := referenced(ctx, s.jobs.EprescribeJobExists, *o.EprescribeJobID, "eprescribe job"); err != nil {
			return err
		}
	}
	if o.StatusDate.IsZero() {
		o.StatusDate = s.now().UTC()
	}
	return nil
}

func (s *Service) CreateOrderStatus(ctx context.Context, o *OrderStatus) (int64, error) {
	if err := s.checkOrderStatus(ctx, o); err != nil {
		return 0, err
	}
	return s.orders.CreateOrderStatus(ctx, o)
}

func (s *Service) UpdateOrderStatus(ctx context.Context, o *OrderStatus) error {
	if err := s.checkOrderStatus(ctx, o); err != nil {
		return err
	}
	return s.orders.UpdateOrderStatus(ctx, o)
}

func (s *Service) DeleteOrderStatus(ctx context.Context, id int64) error {
	return s.orders.DeleteOrderStatus(ctx, id)
}
