package erx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/pkg/pagination"
	"github.com/ehr/prescribeit/pkg/response"
	"github.com/ehr/prescribeit/pkg/validate"
)

var fixedNow = time.Date(2024, 4, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	h       *Handler
	jobs    *mockJobs
	cancels *fakeCancels
	orders  *fakeOrders
	e       *echo.Echo
}

func newFixture() *fixture {
	f := &fixture{
		jobs:    &mockJobs{},
		cancels: newFakeCancels(),
		orders:  &fakeOrders{statuses: make(map[int64]*OrderStatus)},
		e:       echo.New(),
	}
	svc := NewService(f.jobs, f.cancels, f.orders)
	svc.now = func() time.Time { return fixedNow }
	f.h = NewHandler(svc)
	f.e.Validator = validate.New()
	return f
}

func (f *fixture) request(method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	// both in one call: a context built outside the router has no value slots
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func createdID(t *testing.T, rec *httptest.ResponseRecorder) int64 {
	t.Helper()
	require.Equal(t, http.StatusCreated, rec.Code)
	var out response.IDResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.ID
}

// -- Jobs --

func TestHandler_UpdateJob_IDMismatch(t *testing.T) {
	f := newFixture()

	c, _ := f.request(http.MethodPut, "/erx-jobs/5", `{"eprescribeJobId":4,"jobTypeId":1}`, "jobId", "5")
	err := f.h.UpdateJob(c)

	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	assert.Contains(t, err.Error(), "jobId in path (5) does not match body (4)")
	f.jobs.AssertNotCalled(t, "UpdateEprescribeJob", mock.Anything, mock.Anything)
	f.jobs.AssertNotCalled(t, "GetEprescribeJob", mock.Anything, mock.Anything)
}

func TestHandler_UpdateJob_UnknownOutcome(t *testing.T) {
	f := newFixture()
	f.jobs.On("GetEprescribeJob", mock.Anything, int64(5)).Return(&Job{EprescribeJobID: 5, Status: "pending"}, nil)
	f.jobs.On("JobTypeExists", mock.Anything, int64(1)).Return(true, nil)
	f.jobs.On("JobOutcomeExists", mock.Anything, int64(77)).Return(false, nil)

	c, _ := f.request(http.MethodPut, "/erx-jobs/5",
		`{"eprescribeJobId":5,"jobTypeId":1,"jobOutcomeId":77,"status":"completed"}`, "jobId", "5")
	err := f.h.UpdateJob(c)

	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	assert.Contains(t, err.Error(), "job outcome 77")
	f.jobs.AssertNotCalled(t, "UpdateEprescribeJob", mock.Anything, mock.Anything)
}

func TestHandler_UpdateJob(t *testing.T) {
	f := newFixture()
	f.jobs.On("GetEprescribeJob", mock.Anything, int64(5)).Return(&Job{EprescribeJobID: 5, Status: "submitted"}, nil)
	f.jobs.On("JobTypeExists", mock.Anything, int64(1)).Return(true, nil)
	f.jobs.On("JobOutcomeExists", mock.Anything, int64(2)).Return(true, nil)
	f.jobs.On("UpdateEprescribeJob", mock.Anything, mock.MatchedBy(func(j *Job) bool {
		return j.EprescribeJobID == 5 && *j.JobOutcomeID == 2 && j.Status == "completed"
	})).Return(nil)

	c, rec := f.request(http.MethodPut, "/erx-jobs/5",
		`{"eprescribeJobId":5,"jobTypeId":1,"jobOutcomeId":2,"status":"completed"}`, "jobId", "5")
	require.NoError(t, f.h.UpdateJob(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.jobs.AssertExpectations(t)
}

func TestHandler_UpdateJob_NotFound(t *testing.T) {
	f := newFixture()
	f.jobs.On("GetEprescribeJob", mock.Anything, int64(5)).Return(nil, apperr.NotFound("eprescribe job %d", 5))

	c, _ := f.request(http.MethodPut, "/erx-jobs/5", `{"eprescribeJobId":5,"jobTypeId":1}`, "jobId", "5")

	assert.Equal(t, http.StatusNotFound, apperr.Status(f.h.UpdateJob(c)))
	f.jobs.AssertNotCalled(t, "UpdateEprescribeJob", mock.Anything, mock.Anything)
}

func TestHandler_UpdateJob_KeepsStoredStatus(t *testing.T) {
	f := newFixture()
	f.jobs.On("GetEprescribeJob", mock.Anything, int64(5)).Return(&Job{EprescribeJobID: 5, Status: "cancelled"}, nil)
	f.jobs.On("JobTypeExists", mock.Anything, int64(1)).Return(true, nil)
	f.jobs.On("UpdateEprescribeJob", mock.Anything, mock.MatchedBy(func(j *Job) bool {
		return j.EprescribeJobID == 5 && j.Status == "cancelled" && j.Attempts == 2
	})).Return(nil)

	c, rec := f.request(http.MethodPut, "/erx-jobs/5", `{"eprescribeJobId":5,"jobTypeId":1,"attempts":2}`, "jobId", "5")
	require.NoError(t, f.h.UpdateJob(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.jobs.AssertExpectations(t)
}

func TestHandler_CreateJob(t *testing.T) {
	f := newFixture()
	f.jobs.On("JobTypeExists", mock.Anything, int64(1)).Return(true, nil)
	f.jobs.On("CreateEprescribeJob", mock.Anything, mock.MatchedBy(func(j *Job) bool {
		return j.JobUUID != uuid.Nil && j.Status == "pending" && j.SubmittedDate.Equal(fixedNow)
	})).Return(int64(12), nil)

	c, rec := f.request(http.MethodPost, "/erx-jobs", `{"jobTypeId":1,"prescriptionId":3}`)
	require.NoError(t, f.h.CreateJob(c))

	assert.Equal(t, int64(12), createdID(t, rec))
	f.jobs.AssertExpectations(t)
}

func TestHandler_CreateJob_UnknownType(t *testing.T) {
	f := newFixture()
	f.jobs.On("JobTypeExists", mock.Anything, int64(9)).Return(false, nil)

	c, _ := f.request(http.MethodPost, "/erx-jobs", `{"jobTypeId":9}`)
	err := f.h.CreateJob(c)

	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	f.jobs.AssertNotCalled(t, "CreateEprescribeJob", mock.Anything, mock.Anything)
}

func TestHandler_ListJobs_Filters(t *testing.T) {
	f := newFixture()
	match := mock.MatchedBy(func(flt JobFilter) bool {
		return flt.Status == "failed" && flt.JobTypeID != nil && *flt.JobTypeID == 2 &&
			flt.PatientID != nil && *flt.PatientID == 40 && flt.PrescriptionID == nil
	})
	f.jobs.On("ListEprescribeJobs", mock.Anything, match, pagination.Params{PageSize: 50}).
		Return([]*Job{{EprescribeJobID: 8}, {EprescribeJobID: 9}}, 2, nil)

	c, rec := f.request(http.MethodGet, "/erx-jobs?status=failed&jobTypeId=2&patientId=40&pageSize=500", "")
	require.NoError(t, f.h.ListJobs(c))

	var env pagination.Envelope[EprescribeJobDto]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 2, env.Count)
	assert.Equal(t, int64(9), *env.LastID)
	f.jobs.AssertExpectations(t)
}

func TestHandler_ListJobs_BadFilter(t *testing.T) {
	f := newFixture()

	c, _ := f.request(http.MethodGet, "/erx-jobs?jobTypeId=two", "")
	err := f.h.ListJobs(c)

	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	f.jobs.AssertNotCalled(t, "ListEprescribeJobs", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_GetJob_InvalidID(t *testing.T) {
	f := newFixture()

	c, _ := f.request(http.MethodGet, "/erx-jobs/x", "", "jobId", "x")

	assert.Equal(t, http.StatusBadRequest, apperr.Status(f.h.GetJob(c)))
}

// -- Types and outcomes --

func TestHandler_CreateJobType_DuplicateCode(t *testing.T) {
	f := newFixture()
	f.jobs.On("CreateJobType", mock.Anything, mock.Anything).
		Return(int64(0), apperr.Conflict("eprescribe job type code NEWRX"))

	c, _ := f.request(http.MethodPost, "/erx-job-types", `{"code":"NEWRX","description":"New prescription"}`)

	assert.Equal(t, http.StatusConflict, apperr.Status(f.h.CreateJobType(c)))
}

func TestHandler_CreateJobOutcome_MissingCode(t *testing.T) {
	f := newFixture()

	c, _ := f.request(http.MethodPost, "/erx-job-outcomes", `{"description":"Delivered"}`)
	err := f.h.CreateJobOutcome(c)

	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	assert.Contains(t, err.Error(), "code")
	f.jobs.AssertNotCalled(t, "CreateJobOutcome", mock.Anything, mock.Anything)
}

func TestHandler_DeleteJobType_NotFound(t *testing.T) {
	f := newFixture()
	f.jobs.On("DeleteJobType", mock.Anything, int64(3)).Return(apperr.NotFound("job type 3"))

	c, _ := f.request(http.MethodDelete, "/erx-job-types/3", "", "jobTypeId", "3")

	assert.Equal(t, http.StatusNotFound, apperr.Status(f.h.DeleteJobType(c)))
}

// -- Tasks --

func TestHandler_CreateTask_UnknownJob(t *testing.T) {
	f := newFixture()
	f.jobs.On("EprescribeJobExists", mock.Anything, int64(4)).Return(false, nil)

	c, _ := f.request(http.MethodPost, "/erx-job-tasks", `{"eprescribeJobId":4,"taskType":"transmit","status":"queued"}`)

	assert.Equal(t, http.StatusBadRequest, apperr.Status(f.h.CreateTask(c)))
	f.jobs.AssertNotCalled(t, "CreateJobTask", mock.Anything, mock.Anything)
}

func TestHandler_ListTasks_ByJob(t *testing.T) {
	f := newFixture()
	job := int64(4)
	f.jobs.On("ListJobTasks", mock.Anything, TaskFilter{EprescribeJobID: &job}, pagination.Params{PageSize: 25}).
		Return(nil, 0, nil)

	c, rec := f.request(http.MethodGet, "/erx-job-tasks?eprescribeJobId=4", "")
	require.NoError(t, f.h.ListTasks(c))

	assert.JSONEq(t, `{"contents":[],"count":0,"total":0,"lastId":null}`, rec.Body.String())
	f.jobs.AssertExpectations(t)
}

// -- Cancel requests --

func TestHandler_CancelRequestLifecycle(t *testing.T) {
	f := newFixture()
	f.jobs.On("EprescribeJobExists", mock.Anything, int64(6)).Return(true, nil)

	c, rec := f.request(http.MethodPost, "/erx-cancel-requests", `{"eprescribeJobId":6,"reason":"wrong dose"}`)
	require.NoError(t, f.h.CreateCancelRequest(c))
	reqID := createdID(t, rec)

	stored := f.cancels.requests[reqID]
	assert.Equal(t, "pending", stored.Status)
	assert.True(t, stored.RequestedDate.Equal(fixedNow))

	c, rec = f.request(http.MethodPost, "/", `{"responseType":"approved","responder":"Main St Pharmacy"}`,
		"cancelRequestId", "1")
	require.NoError(t, f.h.CreateCancelResponse(c))
	respID := createdID(t, rec)

	assert.Equal(t, "approved", f.cancels.requests[reqID].Status)
	assert.Equal(t, reqID, f.cancels.responses[respID].CancelRequestID)

	c, rec = f.request(http.MethodGet, "/", "", "cancelRequestId", "1")
	require.NoError(t, f.h.ListCancelResponses(c))
	var env pagination.Envelope[EprescribeCancelResponseDto]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Contents, 1)
	assert.Equal(t, "approved", env.Contents[0].ResponseType)
}

func TestHandler_CreateCancelResponse_UnknownRequest(t *testing.T) {
	f := newFixture()

	c, _ := f.request(http.MethodPost, "/", `{"responseType":"denied"}`, "cancelRequestId", "40")

	assert.Equal(t, http.StatusNotFound, apperr.Status(f.h.CreateCancelResponse(c)))
	assert.Empty(t, f.cancels.responses)
}

func TestHandler_CreateCancelResponse_BadType(t *testing.T) {
	f := newFixture()
	f.cancels.requests[1] = &CancelRequest{CancelRequestID: 1, Status: "pending"}

	c, _ := f.request(http.MethodPost, "/", `{"responseType":"maybe"}`, "cancelRequestId", "1")

	assert.Equal(t, http.StatusBadRequest, apperr.Status(f.h.CreateCancelResponse(c)))
	assert.Equal(t, "pending", f.cancels.requests[1].Status)
}

func TestHandler_CreateCancelResponse_BodyMismatch(t *testing.T) {
	f := newFixture()
	f.cancels.requests[1] = &CancelRequest{CancelRequestID: 1, Status: "pending"}

	c, _ := f.request(http.MethodPost, "/", `{"cancelRequestId":2,"responseType":"denied"}`, "cancelRequestId", "1")

	assert.Equal(t, http.StatusBadRequest, apperr.Status(f.h.CreateCancelResponse(c)))
	assert.Empty(t, f.cancels.responses)
}

func TestHandler_ListCancelRequests_Filter(t *testing.T) {
	f := newFixture()
	f.cancels.requests[1] = &CancelRequest{CancelRequestID: 1, EprescribeJobID: 6, Status: "pending"}
	f.cancels.requests[2] = &CancelRequest{CancelRequestID: 2, EprescribeJobID: 6, Status: "approved"}
	f.cancels.requests[3] = &CancelRequest{CancelRequestID: 3, EprescribeJobID: 7, Status: "pending"}

	c, rec := f.request(http.MethodGet, "/erx-cancel-requests?eprescribeJobId=6&status=pending", "")
	require.NoError(t, f.h.ListCancelRequests(c))

	var env pagination.Envelope[EprescribeCancelRequestDto]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, 1, env.Total)
	assert.Equal(t, int64(1), env.Contents[0].CancelRequestID)
}

func TestHandler_UpdateCancelRequest_KeepsAnsweredStatus(t *testing.T) {
	f := newFixture()
	f.cancels.requests[1] = &CancelRequest{CancelRequestID: 1, EprescribeJobID: 6, Reason: "wrong dose", Status: "approved"}
	f.jobs.On("EprescribeJobExists", mock.Anything, int64(6)).Return(true, nil)

	c, rec := f.request(http.MethodPut, "/", `{"cancelRequestId":1,"eprescribeJobId":6,"reason":"wrong dose and route"}`,
		"cancelRequestId", "1")
	require.NoError(t, f.h.UpdateCancelRequest(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "approved", f.cancels.requests[1].Status)
	assert.Equal(t, "wrong dose and route", f.cancels.requests[1].Reason)
}

func TestHandler_UpdateCancelRequest_NotFound(t *testing.T) {
	f := newFixture()

	c, _ := f.request(http.MethodPut, "/", `{"cancelRequestId":3,"eprescribeJobId":6,"reason":"r"}`,
		"cancelRequestId", "3")

	assert.Equal(t, http.StatusNotFound, apperr.Status(f.h.UpdateCancelRequest(c)))
	f.jobs.AssertNotCalled(t, "EprescribeJobExists", mock.Anything, mock.Anything)
}

func TestHandler_UpdateCancelRequest_UnknownJob(t *testing.T) {
	f := newFixture()
	f.cancels.requests[1] = &CancelRequest{CancelRequestID: 1, EprescribeJobID: 6, Status: "pending"}
	f.jobs.On("EprescribeJobExists", mock.Anything, int64(99)).Return(false, nil)

	c, _ := f.request(http.MethodPut, "/", `{"cancelRequestId":1,"eprescribeJobId":99,"reason":"r"}`,
		"cancelRequestId", "1")

	assert.Equal(t, http.StatusBadRequest, apperr.Status(f.h.UpdateCancelRequest(c)))
	assert.Equal(t, int64(6), f.cancels.requests[1].EprescribeJobID)
}

// -- Order statuses --

func TestHandler_OrderStatuses(t *testing.T) {
	f := newFixture()

	c, rec := f.request(http.MethodPost, "/eprescribe-order-statuses", `{"prescriptionId":3,"status":"dispensed"}`)
	require.NoError(t, f.h.CreateOrderStatus(c))
	id := createdID(t, rec)
	assert.True(t, f.orders.statuses[id].StatusDate.Equal(fixedNow))

	c, rec = f.request(http.MethodGet, "/eprescribe-order-statuses?prescriptionId=3", "")
	require.NoError(t, f.h.ListOrderStatuses(c))
	var env pagination.Envelope[EprescribeOrderStatusDto]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 1, env.Total)

	c, rec = f.request(http.MethodDelete, "/", "", "orderStatusId", "1")
	require.NoError(t, f.h.DeleteOrderStatus(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, f.orders.statuses)
}

func TestHandler_CreateOrderStatus_UnknownJob(t *testing.T) {
	f := newFixture()
	f.jobs.On("EprescribeJobExists", mock.Anything, int64(8)).Return(false, nil)

	c, _ := f.request(http.MethodPost, "/eprescribe-order-statuses",
		`{"prescriptionId":3,"eprescribeJobId":8,"status":"dispensed"}`)

	assert.Equal(t, http.StatusBadRequest, apperr.Status(f.h.CreateOrderStatus(c)))
	assert.Empty(t, f.orders.statuses)
}
