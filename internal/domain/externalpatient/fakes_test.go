package externalpatient

import (
	"context"

	"github.com/google/uuid"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/internal/testutil"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type fakeManager struct {
	patients map[int64]*ExternalPatient
	nextID   int64
	creates  int
}

func newFakeManager() *fakeManager {
	return &fakeManager{patients: make(map[int64]*ExternalPatient)}
}

func (f *fakeManager) add(system, identifier string) *ExternalPatient {
	f.nextID++
	p := &ExternalPatient{
		ExternalPatientID:   f.nextID,
		ExternalPatientUUID: uuid.New(),
		IdentifierSystem:    system,
		Identifier:          identifier,
		FirstName:           "Ada",
		LastName:            "Byron",
	}
	f.patients[p.ExternalPatientID] = p
	return p
}

func (f *fakeManager) ListExternalPatients(_ context.Context, flt Filter, p pagination.Params) ([]*ExternalPatient, int, error) {
	items, total := testutil.Page(f.patients, cursor, func(ep *ExternalPatient) bool {
		if flt.Identifier != "" && ep.Identifier != flt.Identifier {
			return false
		}
		if flt.HealthNumber != "" && (ep.HealthNumber == nil || *ep.HealthNumber != flt.HealthNumber) {
			return false
		}
		return flt.PatientID == nil || (ep.PatientID != nil && *ep.PatientID == *flt.PatientID)
	}, p)
	return items, total, nil
}

func (f *fakeManager) GetExternalPatient(_ context.Context, id int64) (*ExternalPatient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, apperr.NotFound("external patient %d", id)
	}
	return p, nil
}

func (f *fakeManager) GetExternalPatientByUUID(_ context.Context, id uuid.UUID) (*ExternalPatient, error) {
	for _, p := range f.patients {
		if p.ExternalPatientUUID == id {
			return p, nil
		}
	}
	return nil, apperr.NotFound("external patient %s", id)
}

func (f *fakeManager) ExternalPatientExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.patients[id]
	return ok, nil
}

func (f *fakeManager) IdentifierTaken(_ context.Context, system, identifier string, exceptID int64) (bool, error) {
	for _, p := range f.patients {
		if p.ExternalPatientID != exceptID && p.IdentifierSystem == system && p.Identifier == identifier {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeManager) CreateExternalPatient(_ context.Context, p *ExternalPatient) (int64, error) {
	f.creates++
	f.nextID++
	p.ExternalPatientID = f.nextID
	f.patients[p.ExternalPatientID] = p
	return p.ExternalPatientID, nil
}

func (f *fakeManager) UpdateExternalPatient(_ context.Context, p *ExternalPatient) error {
	if _, ok := f.patients[p.ExternalPatientID]; !ok {
		return apperr.NotFound("external patient %d", p.ExternalPatientID)
	}
	f.patients[p.ExternalPatientID] = p
	return nil
}

func (f *fakeManager) DeleteExternalPatient(_ context.Context, id int64) error {
	if _, ok := f.patients[id]; !ok {
		return apperr.NotFound("external patient %d", id)
	}
	delete(f.patients, id)
	return nil
}
