package prescription

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type Service struct {
	mgr PrescriptionManager
	now func() time.Time
}

func NewService(mgr PrescriptionManager) *Service {
	return &Service{mgr: mgr, now: time.Now}
}

func (s *Service) ListPrescriptions(ctx context.Context, f Filter, p pagination.Params) ([]*Prescription, int, error) {
	return s.mgr.ListPrescriptions(ctx, f, p)
}

func (s *Service) GetPrescription(ctx context.Context, id int64) (*Prescription, error) {
	return s.mgr.GetPrescription(ctx, id)
}

func (s *Service) GetPrescriptionByUUID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.mgr.GetPrescriptionByUUID(ctx, id)
}

// PrescriptionExists is used by other packages that link to prescriptions.
func (s *Service) PrescriptionExists(ctx context.Context, id int64) (bool, error) {
	return s.mgr.PrescriptionExists(ctx, id)
}

func (s *Service) requirePrescription(ctx context.Context, id int64) error {
	ok, err := s.mgr.PrescriptionExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("prescription %d", id)
	}
	return nil
}

func (s *Service) ListAnnotations(ctx context.Context, prescriptionID int64, p pagination.Params) ([]*Annotation, int, error) {
	if err := s.requirePrescription(ctx, prescriptionID); err != nil {
		return nil, 0, err
	}
	return s.mgr.ListAnnotations(ctx, prescriptionID, p)
}

func (s *Service) CreateAnnotation(ctx context.Context, a *Annotation) (int64, error) {
	if err := s.requirePrescription(ctx, a.PrescriptionID); err != nil {
		return 0, err
	}
	if a.AnnotationDate.IsZero() {
		a.AnnotationDate = s.now().UTC()
	}
	return s.mgr.CreateAnnotation(ctx, a)
}

func (s *Service) ListStatusHistories(ctx context.Context, prescriptionID int64, p pagination.Params) ([]*StatusHistory, int, error) {
	if err := s.requirePrescription(ctx, prescriptionID); err != nil {
		return nil, 0, err
	}
	return s.mgr.ListStatusHistories(ctx, prescriptionID, p)
}

func (s *Service) ListInteractions(ctx context.Context, prescriptionID int64, p pagination.Params) ([]*Interaction, int, error) {
	if err := s.requirePrescription(ctx, prescriptionID); err != nil {
		return nil, 0, err
	}
	return s.mgr.ListInteractions(ctx, prescriptionID, p)
}

// ManageInteraction records a management detail. The interaction must belong
// to prescriptionID.
func (s *Service) ManageInteraction(ctx context.Context, prescriptionID int64, d *ManagementDetail) (int64, error) {
	if _, err := s.mgr.GetInteraction(ctx, prescriptionID, d.InteractionID); err != nil {
		return 0, err
	}
	if d.ManagedDate.IsZero() {
		d.ManagedDate = s.now().UTC()
	}
	id, err := s.mgr.CreateManagementDetail(ctx, d)
	if err != nil {
		return 0, err
	}
	zerolog.Ctx(ctx).Info().
		Int64("prescription_id", prescriptionID).
		Int64("interaction_id", d.InteractionID).
		Str("action", d.Action).
		Msg("interaction managed")
	return id, nil
}
