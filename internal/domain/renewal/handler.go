package renewal

import (
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

// RegisterRoutes mounts the renewal endpoints. Renewals originate at
// pharmacies, so pharmacists may write here too.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	rw := g.Group("", auth.ReadWrite(auth.RolePharmacist))

	rw.GET("/renewal-request-groups", h.ListGroups)
	rw.GET("/renewal-request-groups/:renewalRequestGroupId", h.GetGroup)
	rw.POST("/renewal-request-groups", h.CreateGroup)
	rw.PUT("/renewal-request-groups/:renewalRequestGroupId", h.UpdateGroup)
	rw.DELETE("/renewal-request-groups/:renewalRequestGroupId", h.DeleteGroup)

	rw.GET("/renewal-requests", h.ListRequests)
	rw.GET("/renewal-requests/:renewalRequestId", h.GetRequest)
	rw.POST("/renewal-requests", h.CreateRequest)
	rw.PUT("/renewal-requests/:renewalRequestId", h.UpdateRequest)
	rw.DELETE("/renewal-requests/:renewalRequestId", h.DeleteRequest)

	rw.GET("/renewal-request-responses", h.ListResponses)
	rw.GET("/renewal-request-responses/:renewalResponseId", h.GetResponse)
	rw.POST("/renewal-request-responses", h.CreateResponse)
	rw.PUT("/renewal-request-responses/:renewalResponseId", h.UpdateResponse)
	rw.DELETE("/renewal-request-responses/:renewalResponseId", h.DeleteResponse)
}

// -- Groups --

type groupParams struct {
	PatientID *int64 `query:"patientId" json:"patientId"`
	Status    string `query:"status" json:"status"`
}

func (h *Handler) ListGroups(c echo.Context) error {
	var q groupParams
	if err := validate.Query(c, &q); err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListGroups(c.Request().Context(), GroupFilter(q), p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total, groupCursor, groupToDto))
}

func (h *Handler) GetGroup(c echo.Context) error {
	id, err := validate.PathID(c, "renewalRequestGroupId")
	if err != nil {
		return err
	}
	g, err := h.svc.GetGroup(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, groupToDto(g))
}

func (h *Handler) CreateGroup(c echo.Context) error {
	var dto RenewalRequestGroupDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	id, err := h.svc.CreateGroup(c.Request().Context(), groupFromDto(dto))
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, id)
}

func (h *Handler) UpdateGroup(c echo.Context) error {
	id, err := validate.PathID(c, "renewalRequestGroupId")
	if err != nil {
		return err
	}
	var dto RenewalRequestGroupDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if err := validate.MatchIDs("renewalRequestGroupId", id, dto.RenewalRequestGroupID); err != nil {
		return err
	}
	if err := h.svc.UpdateGroup(c.Request().Context(), groupFromDto(dto)); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteGroup(c echo.Context) error {
	id, err := validate.PathID(c, "renewalRequestGroupId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteGroup(c.Request().Context(), id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Requests --

type requestParams struct {
	RenewalRequestGroupID *int64 `query:"renewalRequestGroupId" json:"renewalRequestGroupId"`
	PrescriptionID        *int64 `query:"prescriptionId" json:"prescriptionId"`
	Status                string `query:"status" json:"status"`
}

func (h *Handler) ListRequests(c echo.Context) error {
	var q requestParams
	if err := validate.Query(c, &q); err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListRequests(c.Request().Context(), RequestFilter(q), p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total, requestCursor, requestToDto))
}

func (h *Handler) GetRequest(c echo.Context) error {
	id, err := validate.PathID(c, "renewalRequestId")
	if err != nil {
		return err
	}
	r, err := h.svc.GetRequest(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, requestToDto(r))
}

func (h *Handler) CreateRequest(c echo.Context) error {
	var dto RenewalRequestDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	id, err := h.svc.CreateRequest(c.Request().Context(), requestFromDto(dto))
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, id)
}

func (h *Handler) UpdateRequest(c echo.Context) error {
	id, err := validate.PathID(c, "renewalRequestId")
	if err != nil {
		return err
	}
	var dto RenewalRequestDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if err := validate.MatchIDs("renewalRequestId", id, dto.RenewalRequestID); err != nil {
		return err
	}
	if err := h.svc.UpdateRequest(c.Request().Context(), requestFromDto(dto)); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteRequest(c echo.Context) error {
	id, err := validate.PathID(c, "renewalRequestId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteRequest(c.Request().Context(), id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Responses --

type responseParams struct {
	RenewalRequestID *int64 `query:"renewalRequestId" json:"renewalRequestId"`
}

func (h *Handler) ListResponses(c echo.Context) error {
	var q responseParams
	if err := validate.Query(c, &q); err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListResponses(c.Request().Context(), ResponseFilter(q), p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total, responseCursor, responseToDto))
}

func (h *Handler) GetResponse(c echo.Context) error {
	id, err := validate.PathID(c, "renewalResponseId")
	if err != nil {
		return err
	}
	r, err := h.svc.GetResponse(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, responseToDto(r))
}

func (h *Handler) CreateResponse(c echo.Context) error {
	var dto RenewalRequestResponseDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	id, err := h.svc.CreateResponse(c.Request().Context(), responseFromDto(dto))
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, id)
}

func (h *Handler) UpdateResponse(c echo.Context) error {
	id, err := validate.PathID(c, "renewalResponseId")
	if err != nil {
		return err
	}
	var dto RenewalRequestResponseDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if err := validate.MatchIDs("renewalResponseId", id, dto.RenewalResponseID); err != nil {
		return err
	}
	if err := h.svc.UpdateResponse(c.Request().Context(), responseFromDto(dto)); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteResponse(c echo.Context) error {
	id, err := validate.PathID(c, "renewalResponseId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteResponse(c.Request().Context(), id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
