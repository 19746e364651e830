package prescription

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
	read.GET("", h.ListPrescriptions)
	read.GET("/:prescriptionId", h.GetPrescription)
	read.GET("/uuid/:prescriptionUuid", h.GetPrescriptionByUUID)
	read.GET("/:prescriptionId/annotations", h.ListAnnotations)
	read.GET("/:prescriptionId/status-histories", h.ListStatusHistories)
	read.GET("/:prescriptionId/interactions", h.ListInteractions)

	write := g.Group("", auth.RequireRole(auth.Writers...))
	write.POST("/:prescriptionId/annotations", h.CreateAnnotation)
	write.POST("/:prescriptionId/interactions/:interactionId/management-details", h.CreateManagementDetail)
}

type prescriptionQuery struct {
	PatientID   *int64         `query:"patientId" json:"patientId"`
	ProviderID  *int64         `query:"providerId" json:"providerId"`
	Status      string         `query:"status" json:"status"`
	WrittenFrom *validate.Date `query:"writtenFrom" json:"writtenFrom"`
	WrittenTo   *validate.Date `query:"writtenTo" json:"writtenTo"`
}

func (h *Handler) ListPrescriptions(c echo.Context) error {
	var q prescriptionQuery
	if err := validate.Query(c, &q); err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	from, to := validate.NormalizeRange(q.WrittenFrom.Ptr(), q.WrittenTo.Ptr())
	f := Filter{
		PatientID:   q.PatientID,
		ProviderID:  q.ProviderID,
		Status:      q.Status,
		WrittenFrom: from,
		WrittenTo:   to,
	}

	items, total, err := h.svc.ListPrescriptions(c.Request().Context(), f, p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total,
		func(rx *Prescription) int64 { return rx.PrescriptionID }, toDto))
}

func (h *Handler) GetPrescription(c echo.Context) error {
	id, err := validate.PathID(c, "prescriptionId")
	if err != nil {
		return err
	}
	p, err := h.svc.GetPrescription(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, toDto(p))
}

func (h *Handler) GetPrescriptionByUUID(c echo.Context) error {
	id, err := validate.ParseUUID("prescriptionUuid", c.Param("prescriptionUuid"))
	if err != nil {
		return err
	}
	p, err := h.svc.GetPrescriptionByUUID(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, toDto(p))
}

func (h *Handler) ListAnnotations(c echo.Context) error {
	id, err := validate.PathID(c, "prescriptionId")
	if err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListAnnotations(c.Request().Context(), id, p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total,
		func(a *Annotation) int64 { return a.AnnotationID }, annotationToDto))
}

func (h *Handler) CreateAnnotation(c echo.Context) error {
	id, err := validate.PathID(c, "prescriptionId")
	if err != nil {
		return err
	}
	var dto AnnotationDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if dto.PrescriptionID != 0 {
		if err := validate.MatchIDs("prescriptionId", id, dto.PrescriptionID); err != nil {
			return err
		}
	}
	a := annotationFromDto(dto)
	a.PrescriptionID = id

	newID, err := h.svc.CreateAnnotation(c.Request().Context(), a)
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, newID)
}

func (h *Handler) ListStatusHistories(c echo.Context) error {
	id, err := validate.PathID(c, "prescriptionId")
	if err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListStatusHistories(c.Request().Context(), id, p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total,
		func(s *StatusHistory) int64 { return s.StatusHistoryID }, statusHistoryToDto))
}

func (h *Handler) ListInteractions(c echo.Context) error {
	id, err := validate.PathID(c, "prescriptionId")
	if err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListInteractions(c.Request().Context(), id, p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total,
		func(i *Interaction) int64 { return i.InteractionID }, interactionToDto))
}

func (h *Handler) CreateManagementDetail(c echo.Context) error {
	prescriptionID, err := validate.PathID(c, "prescriptionId")
	if err != nil {
		return err
	}
	interactionID, err := validate.PathID(c, "interactionId")
	if err != nil {
		return err
	}
	var dto InteractionManagementDetailsDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if dto.InteractionID != 0 {
		if err := validate.MatchIDs("interactionId", interactionID, dto.InteractionID); err != nil {
			return err
		}
	}
	d := managementDetailFromDto(dto)
	d.InteractionID = interactionID

	newID, err := h.svc.ManageInteraction(c.Request().Context(), prescriptionID, d)
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, newID)
}
