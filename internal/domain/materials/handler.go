package materials

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/internal/platform/auth"
	"github.com/ehr/prescribeit/pkg/pagination"
	"github.com/ehr/prescribeit/pkg/validate"
)

type Handler struct {
	mgr AppointmentMaterialsManager
}

func NewHandler(mgr AppointmentMaterialsManager) *Handler {
	return &Handler{mgr: mgr}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	read := g.Group("", auth.RequireRole(auth.Readers...))
	read.GET("/appointments", h.ListAppointments)
}

type appointmentQuery struct {
	StartDate         *validate.Date `query:"startDate" json:"startDate" validate:"required"`
	EndDate           *validate.Date `query:"endDate" json:"endDate"`
	OfficeIDs         []int64        `query:"officeId" json:"officeId"`
	ProviderID        *int64         `query:"providerId" json:"providerId"`
	IncludeBillOnly   bool           `query:"includeBillOnly" json:"includeBillOnly"`
	IncludeNullOffice bool           `query:"includeNullOffice" json:"includeNullOffice"`
	AccessionNumber   string         `query:"accessionNumber" json:"accessionNumber"`
}

func (q appointmentQuery) filter() Filter {
	start := q.StartDate.Ptr()
	end := q.EndDate.Ptr()
	if end == nil {
		end = start
	}
	start, end = validate.NormalizeRange(start, end)
	return Filter{
		StartDate:         *start,
		EndDate:           *end,
		OfficeIDs:         q.OfficeIDs,
		ProviderID:        q.ProviderID,
		IncludeBillOnly:   q.IncludeBillOnly,
		IncludeNullOffice: q.IncludeNullOffice,
		AccessionNumber:   q.AccessionNumber,
	}
}

func (h *Handler) ListAppointments(c echo.Context) error {
	var q appointmentQuery
	if err := validate.Query(c, &q); err != nil {
		return err
	}
	if q.StartDate == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "startDate is required")
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}

	items, total, err := h.mgr.ListAppointmentMaterials(c.Request().Context(), q.filter(), p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total, cursor, toDto))
}
