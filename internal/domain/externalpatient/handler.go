package externalpatient

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

func (h *Handler) RegisterRoutes(g *echo.Group) {
	read := g.Group("", auth.RequireRole(auth.Readers...))
	read.GET("/external-patients", h.List)
	read.GET("/external-patients/uuid/:externalPatientUuid", h.GetByUUID)
	read.GET("/external-patients/:externalPatientId", h.Get)

	write := g.Group("", auth.RequireRole(auth.Writers...))
	write.POST("/external-patients", h.Create)
	write.PUT("/external-patients/:externalPatientId", h.Update)
	write.DELETE("/external-patients/:externalPatientId", h.Delete)
}

type listParams struct {
	Identifier   string `query:"identifier" json:"identifier"`
	HealthNumber string `query:"healthNumber" json:"healthNumber"`
	PatientID    *int64 `query:"patientId" json:"patientId"`
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
	id, err := validate.PathID(c, "externalPatientId")
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, toDto(p))
}

func (h *Handler) GetByUUID(c echo.Context) error {
	id, err := validate.ParseUUID("externalPatientUuid", c.Param("externalPatientUuid"))
	if err != nil {
		return err
	}
	p, err := h.svc.GetByUUID(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, toDto(p))
}

func (h *Handler) Create(c echo.Context) error {
	var dto ExternalPatientDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	id, err := h.svc.Create(c.Request().Context(), fromDto(dto))
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, id)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := validate.PathID(c, "externalPatientId")
	if err != nil {
		return err
	}
	var dto ExternalPatientDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if err := validate.MatchIDs("externalPatientId", id, dto.ExternalPatientID); err != nil {
		return err
	}
	if err := h.svc.Update(c.Request().Context(), fromDto(dto)); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := validate.PathID(c, "externalPatientId")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
