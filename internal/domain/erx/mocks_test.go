package erx

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/internal/testutil"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type mockJobs struct {
	mock.Mock
}

func (m *mockJobs) ListJobTypes(ctx context.Context, p pagination.Params) ([]*JobType, int, error) {
	args := m.Called(ctx, p)
	items, _ := args.Get(0).([]*JobType)
	return items, args.Int(1), args.Error(2)
}

func (m *mockJobs) GetJobType(ctx context.Context, id int64) (*JobType, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*JobType)
	return t, args.Error(1)
}

func (m *mockJobs) JobTypeExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockJobs) CreateJobType(ctx context.Context, t *JobType) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockJobs) UpdateJobType(ctx context.Context, t *JobType) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockJobs) DeleteJobType(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockJobs) ListJobOutcomes(ctx context.Context, p pagination.Params) ([]*JobOutcome, int, error) {
	args := m.Called(ctx, p)
	items, _ := args.Get(0).([]*JobOutcome)
	return items, args.Int(1), args.Error(2)
}

func (m *mockJobs) GetJobOutcome(ctx context.Context, id int64) (*JobOutcome, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*JobOutcome)
	return o, args.Error(1)
}

func (m *mockJobs) JobOutcomeExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockJobs) CreateJobOutcome(ctx context.Context, o *JobOutcome) (int64, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockJobs) UpdateJobOutcome(ctx context.Context, o *JobOutcome) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockJobs) DeleteJobOutcome(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockJobs) ListEprescribeJobs(ctx context.Context, f JobFilter, p pagination.Params) ([]*Job, int, error) {
	args := m.Called(ctx, f, p)
	items, _ := args.Get(0).([]*Job)
	return items, args.Int(1), args.Error(2)
}

func (m *mockJobs) GetEprescribeJob(ctx context.Context, id int64) (*Job, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*Job)
	return j, args.Error(1)
}

func (m *mockJobs) EprescribeJobExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockJobs) CreateEprescribeJob(ctx context.Context, j *Job) (int64, error) {
	args := m.Called(ctx, j)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockJobs) UpdateEprescribeJob(ctx context.Context, j *Job) error {
	return m.Called(ctx, j).Error(0)
}

func (m *mockJobs) DeleteEprescribeJob(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockJobs) ListJobTasks(ctx context.Context, f TaskFilter, p pagination.Params) ([]*Task, int, error) {
	args := m.Called(ctx, f, p)
	items, _ := args.Get(0).([]*Task)
	return items, args.Int(1), args.Error(2)
}

func (m *mockJobs) GetJobTask(ctx context.Context, id int64) (*Task, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*Task)
	return t, args.Error(1)
}

func (m *mockJobs) CreateJobTask(ctx context.Context, t *Task) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockJobs) UpdateJobTask(ctx context.Context, t *Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockJobs) DeleteJobTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// fakeCancels keeps cancel requests and responses in memory.
type fakeCancels struct {
	requests  map[int64]*CancelRequest
	responses map[int64]*CancelResponse
	nextID    int64
}

func newFakeCancels() *fakeCancels {
	return &fakeCancels{
		requests:  make(map[int64]*CancelRequest),
		responses: make(map[int64]*CancelResponse),
	}
}

func (f *fakeCancels) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeCancels) ListCancelRequests(_ context.Context, flt CancelRequestFilter, p pagination.Params) ([]*CancelRequest, int, error) {
	items, total := testutil.Page(f.requests, cancelRequestCursor, func(r *CancelRequest) bool {
		if flt.EprescribeJobID != nil && r.EprescribeJobID != *flt.EprescribeJobID {
			return false
		}
		return flt.Status == "" || r.Status == flt.Status
	}, p)
	return items, total, nil
}

func (f *fakeCancels) GetCancelRequest(_ context.Context, id int64) (*CancelRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, apperr.NotFound("cancel request %d", id)
	}
	return r, nil
}

func (f *fakeCancels) CancelRequestExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.requests[id]
	return ok, nil
}

func (f *fakeCancels) CreateCancelRequest(_ context.Context, r *CancelRequest) (int64, error) {
	r.CancelRequestID = f.id()
	f.requests[r.CancelRequestID] = r
	return r.CancelRequestID, nil
}

func (f *fakeCancels) UpdateCancelRequest(_ context.Context, r *CancelRequest) error {
	if _, ok := f.requests[r.CancelRequestID]; !ok {
		return apperr.NotFound("cancel request %d", r.CancelRequestID)
	}
	f.requests[r.CancelRequestID] = r
	return nil
}

func (f *fakeCancels) DeleteCancelRequest(_ context.Context, id int64) error {
	if _, ok := f.requests[id]; !ok {
		return apperr.NotFound("cancel request %d", id)
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeCancels) ListCancelResponses(_ context.Context, cancelRequestID int64, p pagination.Params) ([]*CancelResponse, int, error) {
	items, total := testutil.Page(f.responses, cancelResponseCursor, func(r *CancelResponse) bool {
		return r.CancelRequestID == cancelRequestID
	}, p)
	return items, total, nil
}

func (f *fakeCancels) CreateCancelResponse(_ context.Context, r *CancelResponse) (int64, error) {
	req, ok := f.requests[r.CancelRequestID]
	if !ok {
		return 0, apperr.NotFound("cancel request %d", r.CancelRequestID)
	}
	r.CancelResponseID = f.id()
	f.responses[r.CancelResponseID] = r
	req.Status = r.ResponseType
	return r.CancelResponseID, nil
}

type fakeOrders struct {
	statuses map[int64]*OrderStatus
	nextID   int64
}

func (f *fakeOrders) ListOrderStatuses(_ context.Context, flt OrderStatusFilter, p pagination.Params) ([]*OrderStatus, int, error) {
	items, total := testutil.Page(f.statuses, orderStatusCursor, func(s *OrderStatus) bool {
		if flt.PrescriptionID != nil && s.PrescriptionID != *flt.PrescriptionID {
			return false
		}
		return flt.EprescribeJobID == nil || (s.EprescribeJobID != nil && *s.EprescribeJobID == *flt.EprescribeJobID)
	}, p)
	return items, total, nil
}

func (f *fakeOrders) GetOrderStatus(_ context.Context, id int64) (*OrderStatus, error) {
	s, ok := f.statuses[id]
	if !ok {
		return nil, apperr.NotFound("order status %d", id)
	}
	return s, nil
}

func (f *fakeOrders) CreateOrderStatus(_ context.Context, s *OrderStatus) (int64, error) {
	f.nextID++
	s.OrderStatusID = f.nextID
	f.statuses[s.OrderStatusID] = s
	return s.OrderStatusID, nil
}

func (f *fakeOrders) UpdateOrderStatus(_ context.Context, s *OrderStatus) error {
	if _, ok := f.statuses[s.OrderStatusID]; !ok {
		return apperr.NotFound("order status %d", s.OrderStatusID)
	}
	f.statuses[s.OrderStatusID] = s
	return nil
}

func (f *fakeOrders) DeleteOrderStatus(_ context.Context, id int64) error {
	if _, ok := f.statuses[id]; !ok {
		return apperr.NotFound("order status %d", id)
	}
	delete(f.statuses, id)
	return nil
}
