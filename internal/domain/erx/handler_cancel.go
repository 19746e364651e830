package erx

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/pkg/pagination"
	"github.com/ehr/prescribeit/pkg/response"
	"github.com/ehr/prescribeit/pkg/validate"
)

type cancelRequestParams struct {
	EprescribeJobID *int64 `query:"eprescribeJobId" json:"eprescribeJobId"`
	Status          string `query:"status" json:"status"`
}

func (h *Handler) ListCancelRequests(c echo.Context) error {
	var q cancelRequestParams
	if err := validate.Query(c, &q); err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListCancelRequests(c.Request().Context(), CancelRequestFilter(q), p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total, cancelRequestCursor, cancelRequestToDto))
}

func (h *Handler) GetCancelRequest(c echo.Context) error {
	return getOne(c, "cancelRequestId", h.svc.GetCancelRequest, cancelRequestToDto)
}

func (h *Handler) CreateCancelRequest(c echo.Context) error {
	return createOne(c, cancelRequestFromDto, h.svc.CreateCancelRequest)
}

func (h *Handler) UpdateCancelRequest(c echo.Context) error {
	return updateOne(c, "cancelRequestId", func(d EprescribeCancelRequestDto) int64 { return d.CancelRequestID },
		cancelRequestFromDto, h.svc.UpdateCancelRequest)
}

func (h *Handler) DeleteCancelRequest(c echo.Context) error {
	return deleteOne(c, "cancelRequestId", h.svc.DeleteCancelRequest)
}

func (h *Handler) ListCancelResponses(c echo.Context) error {
	id, err := validate.PathID(c, "cancelRequestId")
	if err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListCancelResponses(c.Request().Context(), id, p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total, cancelResponseCursor, cancelResponseToDto))
}

// CreateCancelResponse takes the cancel request from the path. A body
// cancelRequestId, if sent, must agree with it.
func (h *Handler) CreateCancelResponse(c echo.Context) error {
	id, err := validate.PathID(c, "cancelRequestId")
	if err != nil {
		return err
	}
	var dto EprescribeCancelResponseDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if dto.CancelRequestID != 0 {
		if err := validate.MatchIDs("cancelRequestId", id, dto.CancelRequestID); err != nil {
			return err
		}
	}
	respID, err := h.svc.RespondToCancelRequest(c.Request().Context(), id, cancelResponseFromDto(dto))
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, respID)
}

// -- Order statuses --

type orderStatusParams struct {
	PrescriptionID  *int64 `query:"prescriptionId" json:"prescriptionId"`
	EprescribeJobID *int64 `query:"eprescribeJobId" json:"eprescribeJobId"`
}

func (h *Handler) ListOrderStatuses(c echo.Context) error {
	var q orderStatusParams
	if err := validate.Query(c, &q); err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListOrderStatuses(c.Request().Context(), OrderStatusFilter(q), p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total, orderStatusCursor, orderStatusToDto))
}

func (h *Handler) GetOrderStatus(c echo.Context) error {
	return getOne(c, "orderStatusId", h.svc.GetOrderStatus, orderStatusToDto)
}

func (h *Handler) CreateOrderStatus(c echo.Context) error {
	return createOne(c, orderStatusFromDto, h.svc.CreateOrderStatus)
}

func (h *Handler) UpdateOrderStatus(c echo.Context) error {
	return updateOne(c, "orderStatusId", func(d EprescribeOrderStatusDto) int64 { return d.OrderStatusID },
		orderStatusFromDto, h.svc.UpdateOrderStatus)
}

func (h *Handler) DeleteOrderStatus(c echo.Context) error {
	return deleteOne(c, "orderStatusId", h.svc.DeleteOrderStatus)
}
