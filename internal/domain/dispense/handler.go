package dispense

import (
	"net/http"

	"github.com/google/uuid"
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

// RegisterRoutes mounts the dispense endpoints. Pharmacists may write
// dispense notifications as well as read them.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	dn := g.Group("/dispense-notifications", auth.ReadWrite(auth.RolePharmacist))
	dn.GET("", h.List)
	dn.GET("/:dispenseNotificationId", h.Get)
	dn.POST("", h.Create)
	dn.PUT("/:dispenseNotificationId", h.Update)
	dn.DELETE("/:dispenseNotificationId", h.Cancel)
}

type listParams struct {
	PrescriptionUUID       *uuid.UUID `query:"prescriptionUuid" json:"prescriptionUuid"`
	PatientUUID            *uuid.UUID `query:"patientUuid" json:"patientUuid"`
	PrescriptionIdentifier string     `query:"prescriptionIdentifier" json:"prescriptionIdentifier"`
	PatientIdentifier      string     `query:"patientIdentifier" json:"patientIdentifier"`
	IncludeCancelled       bool       `query:"includeCancelled" json:"includeCancelled"`
}

func (h *Handler) List(c echo.Context) error {
	var q listParams
	if err := validate.Query(c, &q); err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.List(c.Request().Context(), Filter(q), p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total, cursor, toDto))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := validate.PathID(c, "dispenseNotificationId")
	if err != nil {
		return err
	}
	n, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, toDto(n))
}

func (h *Handler) Create(c echo.Context) error {
	var dto DispenseNotificationDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	n := fromDto(dto)
	n.Cancelled, n.CancelledDate, n.CancelReason = false, nil, nil

	id, err := h.svc.Create(c.Request().Context(), n)
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, id)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := validate.PathID(c, "dispenseNotificationId")
	if err != nil {
		return err
	}
	var dto DispenseNotificationDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if err := validate.MatchIDs("dispenseNotificationId", id, dto.DispenseNotificationID); err != nil {
		return err
	}
	if err := h.svc.Update(c.Request().Context(), fromDto(dto)); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := validate.PathID(c, "dispenseNotificationId")
	if err != nil {
		return err
	}
	var reason *string
	if r := c.QueryParam("reason"); r != "" {
		reason = &r
	}
	if err := h.svc.Cancel(c.Request().Context(), id, reason); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
