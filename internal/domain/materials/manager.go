package materials

import (
	"context"

	"github.com/ehr/prescribeit/pkg/pagination"
)

// AppointmentMaterialsManager lists appointments with their accession
// numbers and reminders, paged on row version.
type AppointmentMaterialsManager interface {
	ListAppointmentMaterials(ctx context.Context, f Filter, p pagination.Params) ([]*Appointment, int, error)
}
