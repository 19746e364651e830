package erx

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/internal/platform/auth"
	"github.com/ehr/prescribeit/pkg/pagination"
	"github.com/ehr/prescribeit/pkg/response"
	"github.com/ehr/prescribeit/pkg/validate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	read := g.Group("", auth.RequireRole(auth.Readers...))
	read.GET("/erx-job-types", h.ListJobTypes)
	read.GET("/erx-job-types/:jobTypeId", h.GetJobType)
	read.GET("/erx-job-outcomes", h.ListJobOutcomes)
	read.GET("/erx-job-outcomes/:jobOutcomeId", h.GetJobOutcome)
	read.GET("/erx-jobs", h.ListJobs)
	read.GET("/erx-jobs/:jobId", h.GetJob)
	read.GET("/erx-job-tasks", h.ListTasks)
	read.GET("/erx-job-tasks/:jobTaskId", h.GetTask)
	read.GET("/erx-cancel-requests", h.ListCancelRequests)
	read.GET("/erx-cancel-requests/:cancelRequestId", h.GetCancelRequest)
	read.GET("/erx-cancel-requests/:cancelRequestId/responses", h.ListCancelResponses)
	read.GET("/eprescribe-order-statuses", h.ListOrderStatuses)
	read.GET("/eprescribe-order-statuses/:orderStatusId", h.GetOrderStatus)

	write := g.Group("", auth.RequireRole(auth.Writers...))
	write.POST("/erx-job-types", h.CreateJobType)
	write.PUT("/erx-job-types/:jobTypeId", h.UpdateJobType)
	write.DELETE("/erx-job-types/:jobTypeId", h.DeleteJobType)
	write.POST("/erx-job-outcomes", h.CreateJobOutcome)
	write.PUT("/erx-job-outcomes/:jobOutcomeId", h.UpdateJobOutcome)
	write.DELETE("/erx-job-outcomes/:jobOutcomeId", h.DeleteJobOutcome)
	write.POST("/erx-jobs", h.CreateJob)
	write.PUT("/erx-jobs/:jobId", h.UpdateJob)
	write.DELETE("/erx-jobs/:jobId", h.DeleteJob)
	write.POST("/erx-job-tasks", h.CreateTask)
	write.PUT("/erx-job-tasks/:jobTaskId", h.UpdateTask)
	write.DELETE("/erx-job-tasks/:jobTaskId", h.DeleteTask)
	write.POST("/erx-cancel-requests", h.CreateCancelRequest)
	write.PUT("/erx-cancel-requests/:cancelRequestId", h.UpdateCancelRequest)
	write.DELETE("/erx-cancel-requests/:cancelRequestId", h.DeleteCancelRequest)
	write.POST("/erx-cancel-requests/:cancelRequestId/responses", h.CreateCancelResponse)
	write.POST("/eprescribe-order-statuses", h.CreateOrderStatus)
	write.PUT("/eprescribe-order-statuses/:orderStatusId", h.UpdateOrderStatus)
	write.DELETE("/eprescribe-order-statuses/:orderStatusId", h.DeleteOrderStatus)
}

// The helpers below carry the shape every erx resource shares: read the
// path id, bind and validate the body, check path/body agreement, then
// hand off to the service.

func getOne[M, D any](c echo.Context, param string, get func(context.Context, int64) (*M, error), toDto func(*M) D) error {
	id, err := validate.PathID(c, param)
	if err != nil {
		return err
	}
	m, err := get(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, toDto(m))
}

func createOne[D, M any](c echo.Context, fromDto func(D) *M, save func(context.Context, *M) (int64, error)) error {
	var dto D
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	id, err := save(c.Request().Context(), fromDto(dto))
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, id)
}

func updateOne[D, M any](c echo.Context, param string, bodyID func(D) int64, fromDto func(D) *M, save func(context.Context, *M) error) error {
	id, err := validate.PathID(c, param)
	if err != nil {
		return err
	}
	var dto D
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if err := validate.MatchIDs(param, id, bodyID(dto)); err != nil {
		return err
	}
	if err := save(c.Request().Context(), fromDto(dto)); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func deleteOne(c echo.Context, param string, del func(context.Context, int64) error) error {
	id, err := validate.PathID(c, param)
	if err != nil {
		return err
	}
	if err := del(c.Request().Context(), id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Job types --

func (h *Handler) ListJobTypes(c echo.Context) error {
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListJobTypes(c.Request().Context(), p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total, jobTypeCursor, jobTypeToDto))
}

func (h *Handler) GetJobType(c echo.Context) error {
	return getOne(c, "jobTypeId", h.svc.GetJobType, jobTypeToDto)
}

func (h *Handler) CreateJobType(c echo.Context) error {
	return createOne(c, jobTypeFromDto, h.svc.CreateJobType)
}

func (h *Handler) UpdateJobType(c echo.Context) error {
	return updateOne(c, "jobTypeId", func(d EprescribeJobTypeDto) int64 { return d.JobTypeID },
		jobTypeFromDto, h.svc.UpdateJobType)
}

func (h *Handler) DeleteJobType(c echo.Context) error {
	return deleteOne(c, "jobTypeId", h.svc.DeleteJobType)
}

// -- Job outcomes --

func (h *Handler) ListJobOutcomes(c echo.Context) error {
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListJobOutcomes(c.Request().Context(), p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total, jobOutcomeCursor, jobOutcomeToDto))
}

func (h *Handler) GetJobOutcome(c echo.Context) error {
	return getOne(c, "jobOutcomeId", h.svc.GetJobOutcome, jobOutcomeToDto)
}

func (h *Handler) CreateJobOutcome(c echo.Context) error {
	return createOne(c, jobOutcomeFromDto, h.svc.CreateJobOutcome)
}

func (h *Handler) UpdateJobOutcome(c echo.Context) error {
	return updateOne(c, "jobOutcomeId", func(d EprescribeJobOutcomeDto) int64 { return d.JobOutcomeID },
		jobOutcomeFromDto, h.svc.UpdateJobOutcome)
}

func (h *Handler) DeleteJobOutcome(c echo.Context) error {
	return deleteOne(c, "jobOutcomeId", h.svc.DeleteJobOutcome)
}

// -- Jobs --

type jobParams struct {
	Status         string `query:"status" json:"status"`
	JobTypeID      *int64 `query:"jobTypeId" json:"jobTypeId"`
	PrescriptionID *int64 `query:"prescriptionId" json:"prescriptionId"`
	PatientID      *int64 `query:"patientId" json:"patientId"`
}

func (h *Handler) ListJobs(c echo.Context) error {
	var q jobParams
	if err := validate.Query(c, &q); err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListJobs(c.Request().Context(), JobFilter(q), p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total, jobCursor, jobToDto))
}

func (h *Handler) GetJob(c echo.Context) error {
	return getOne(c, "jobId", h.svc.GetJob, jobToDto)
}

func (h *Handler) CreateJob(c echo.Context) error {
	return createOne(c, jobFromDto, h.svc.CreateJob)
}

func (h *Handler) UpdateJob(c echo.Context) error {
	return updateOne(c, "jobId", func(d EprescribeJobDto) int64 { return d.EprescribeJobID },
		jobFromDto, h.svc.UpdateJob)
}

func (h *Handler) DeleteJob(c echo.Context) error {
	return deleteOne(c, "jobId", h.svc.DeleteJob)
}

// -- Tasks --

type taskParams struct {
	EprescribeJobID *int64 `query:"eprescribeJobId" json:"eprescribeJobId"`
}

func (h *Handler) ListTasks(c echo.Context) error {
	var q taskParams
	if err := validate.Query(c, &q); err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListTasks(c.Request().Context(), TaskFilter(q), p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total, taskCursor, taskToDto))
}

func (h *Handler) GetTask(c echo.Context) error {
	return getOne(c, "jobTaskId", h.svc.GetTask, taskToDto)
}

func (h *Handler) CreateTask(c echo.Context) error {
	return createOne(c, taskFromDto, h.svc.CreateTask)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	return updateOne(c, "jobTaskId", func(d EprescribeJobTaskDto) int64 { return d.JobTaskID },
		taskFromDto, h.svc.UpdateTask)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	return deleteOne(c, "jobTaskId", h.svc.DeleteTask)
}
