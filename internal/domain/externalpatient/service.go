package externalpatient

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type Service struct {
	mgr ExternalPatientManager
	now func() time.Time
}

func NewService(mgr ExternalPatientManager) *Service {
	return &Service{mgr: mgr, now: time.Now}
}

func (s *Service) List(ctx context.Context, f Filter, p pagination.Params) ([]*ExternalPatient, int, error) {
	return s.mgr.ListExternalPatients(ctx, f, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*ExternalPatient, error) {
	return s.mgr.GetExternalPatient(ctx, id)
}

func (s *Service) GetByUUID(ctx context.Context, id uuid.UUID) (*ExternalPatient, error) {
	return s.mgr.GetExternalPatientByUUID(ctx, id)
}

// ExternalPatientExists lets conversations verify link targets.
func (s *Service) ExternalPatientExists(ctx context.Context, id int64) (bool, error) {
	return s.mgr.ExternalPatientExists(ctx, id)
}

func (s *Service) checkIdentifier(ctx context.Context, p *ExternalPatient) error {
	taken, err := s.mgr.IdentifierTaken(ctx, p.IdentifierSystem, p.Identifier, p.ExternalPatientID)
	if err != nil {
		return err
	}
	if taken {
		zerolog.Ctx(ctx).Warn().
			Str("identifier_system", p.IdentifierSystem).
			Msg("duplicate external patient identifier")
		return apperr.Conflict("external patient %s|%s already exists", p.IdentifierSystem, p.Identifier)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p *ExternalPatient) (int64, error) {
	p.ExternalPatientID = 0
	if err := s.checkIdentifier(ctx, p); err != nil {
		return 0, err
	}
	p.ExternalPatientUUID = uuid.New()
	p.CreatedDate = s.now().UTC()
	return s.mgr.CreateExternalPatient(ctx, p)
}

func (s *Service) Update(ctx context.Context, p *ExternalPatient) error {
	ok, err := s.mgr.ExternalPatientExists(ctx, p.ExternalPatientID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("external patient %d", p.ExternalPatientID)
	}
	if err := s.checkIdentifier(ctx, p); err != nil {
		return err
	}
	return s.mgr.UpdateExternalPatient(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.mgr.DeleteExternalPatient(ctx, id)
}
