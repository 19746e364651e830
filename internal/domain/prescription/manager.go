package prescription

import (
	"context"

	"github.com/google/uuid"

	"github.com/ehr/prescribeit/pkg/pagination"
)

// PrescriptionManager reads prescriptions and records annotations and
// interaction management against them.
type PrescriptionManager interface {
	ListPrescriptions(ctx context.Context, f Filter, p pagination.Params) ([]*Prescription, int, error)
	GetPrescription(ctx context.Context, id int64) (*Prescription, error)
	GetPrescriptionByUUID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	PrescriptionExists(ctx context.Context, id int64) (bool, error)

	ListAnnotations(ctx context.Context, prescriptionID int64, p pagination.Params) ([]*Annotation, int, error)
	CreateAnnotation(ctx context.Context, a *Annotation) (int64, error)

	ListStatusHistories(ctx context.Context, prescriptionID int64, p pagination.Params) ([]*StatusHistory, int, error)

	ListInteractions(ctx context.Context, prescriptionID int64, p pagination.Params) ([]*Interaction, int, error)
	GetInteraction(ctx context.Context, prescriptionID, interactionID int64) (*Interaction, error)
	CreateManagementDetail(ctx context.Context, d *ManagementDetail) (int64, error)
}
