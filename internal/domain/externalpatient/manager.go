package externalpatient

import (
	"context"

	"github.com/google/uuid"

	"github.com/ehr/prescribeit/pkg/pagination"
)

type ExternalPatientManager interface {
	ListExternalPatients(ctx context.Context, f Filter, p pagination.Params) ([]*ExternalPatient, int, error)
	GetExternalPatient(ctx context.Context, id int64) (*ExternalPatient, error)
	GetExternalPatientByUUID(ctx context.Context, id uuid.UUID) (*ExternalPatient, error)
	ExternalPatientExists(ctx context.Context, id int64) (bool, error)
	// IdentifierTaken reports whether another record, other than exceptID,
	// already uses system and identifier.
	IdentifierTaken(ctx context.Context, system, identifier string, exceptID int64) (bool, error)
	CreateExternalPatient(ctx context.Context, p *ExternalPatient) (int64, error)
	UpdateExternalPatient(ctx context.Context, p *ExternalPatient) error
	DeleteExternalPatient(ctx context.Context, id int64) error
}
