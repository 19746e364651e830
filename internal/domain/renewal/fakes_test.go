package renewal

import (
	"context"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/internal/testutil"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type fakeManager struct {
	groups    map[int64]*Group
	requests  map[int64]*Request
	responses map[int64]*Response
	nextID    int64
	writes    int
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		groups:    make(map[int64]*Group),
		requests:  make(map[int64]*Request),
		responses: make(map[int64]*Response),
	}
}

func (f *fakeManager) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeManager) addGroup() *Group {
	g := &Group{RenewalRequestGroupID: f.id(), PharmacyName: "Main St Pharmacy", Status: statusReceived}
	f.groups[g.RenewalRequestGroupID] = g
	return g
}

func (f *fakeManager) addRequest(groupID int64, status string) *Request {
	r := &Request{RenewalRequestID: f.id(), RenewalRequestGroupID: groupID, MedicationName: "Ramipril 5mg", Status: status}
	f.requests[r.RenewalRequestID] = r
	return r
}

func (f *fakeManager) ListGroups(_ context.Context, flt GroupFilter, p pagination.Params) ([]*Group, int, error) {
	items, total := testutil.Page(f.groups, groupCursor, func(g *Group) bool {
		if flt.Status != "" && g.Status != flt.Status {
			return false
		}
		return flt.PatientID == nil || (g.PatientID != nil && *g.PatientID == *flt.PatientID)
	}, p)
	return items, total, nil
}

func (f *fakeManager) GetGroup(_ context.Context, id int64) (*Group, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, apperr.NotFound("renewal request group %d", id)
	}
	return g, nil
}

func (f *fakeManager) GroupExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.groups[id]
	return ok, nil
}

func (f *fakeManager) CreateGroup(_ context.Context, g *Group) (int64, error) {
	f.writes++
	g.RenewalRequestGroupID = f.id()
	f.groups[g.RenewalRequestGroupID] = g
	return g.RenewalRequestGroupID, nil
}

func (f *fakeManager) UpdateGroup(_ context.Context, g *Group) error {
	f.writes++
	if _, ok := f.groups[g.RenewalRequestGroupID]; !ok {
		return apperr.NotFound("renewal request group %d", g.RenewalRequestGroupID)
	}
	f.groups[g.RenewalRequestGroupID] = g
	return nil
}

func (f *fakeManager) DeleteGroup(_ context.Context, id int64) error {
	if _, ok := f.groups[id]; !ok {
		return apperr.NotFound("renewal request group %d", id)
	}
	delete(f.groups, id)
	for rid, r := range f.requests {
		if r.RenewalRequestGroupID == id {
			delete(f.requests, rid)
		}
	}
	return nil
}

func (f *fakeManager) ListRequests(_ context.Context, flt RequestFilter, p pagination.Params) ([]*Request, int, error) {
	items, total := testutil.Page(f.requests, requestCursor, func(r *Request) bool {
		if flt.RenewalRequestGroupID != nil && r.RenewalRequestGroupID != *flt.RenewalRequestGroupID {
			return false
		}
		if flt.PrescriptionID != nil && (r.PrescriptionID == nil || *r.PrescriptionID != *flt.PrescriptionID) {
			return false
		}
		return flt.Status == "" || r.Status == flt.Status
	}, p)
	return items, total, nil
}

func (f *fakeManager) GetRequest(_ context.Context, id int64) (*Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, apperr.NotFound("renewal request %d", id)
	}
	return r, nil
}

func (f *fakeManager) RequestExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.requests[id]
	return ok, nil
}

func (f *fakeManager) CreateRequest(_ context.Context, r *Request) (int64, error) {
	f.writes++
	r.RenewalRequestID = f.id()
	f.requests[r.RenewalRequestID] = r
	return r.RenewalRequestID, nil
}

func (f *fakeManager) UpdateRequest(_ context.Context, r *Request) error {
	f.writes++
	if _, ok := f.requests[r.RenewalRequestID]; !ok {
		return apperr.NotFound("renewal request %d", r.RenewalRequestID)
	}
	f.requests[r.RenewalRequestID] = r
	return nil
}

func (f *fakeManager) DeleteRequest(_ context.Context, id int64) error {
	if _, ok := f.requests[id]; !ok {
		return apperr.NotFound("renewal request %d", id)
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeManager) ListResponses(_ context.Context, flt ResponseFilter, p pagination.Params) ([]*Response, int, error) {
	items, total := testutil.Page(f.responses, responseCursor, func(r *Response) bool {
		return flt.RenewalRequestID == nil || r.RenewalRequestID == *flt.RenewalRequestID
	}, p)
	return items, total, nil
}

func (f *fakeManager) GetResponse(_ context.Context, id int64) (*Response, error) {
	r, ok := f.responses[id]
	if !ok {
		return nil, apperr.NotFound("renewal response %d", id)
	}
	return r, nil
}

func (f *fakeManager) CreateResponse(_ context.Context, r *Response) (int64, error) {
	f.writes++
	r.RenewalResponseID = f.id()
	f.responses[r.RenewalResponseID] = r
	f.requests[r.RenewalRequestID].Status = r.ResponseType
	return r.RenewalResponseID, nil
}

func (f *fakeManager) UpdateResponse(_ context.Context, r *Response) error {
	f.writes++
	if _, ok := f.responses[r.RenewalResponseID]; !ok {
		return apperr.NotFound("renewal response %d", r.RenewalResponseID)
	}
	f.responses[r.RenewalResponseID] = r
	f.requests[r.RenewalRequestID].Status = r.ResponseType
	return nil
}

func (f *fakeManager) DeleteResponse(_ context.Context, id int64) error {
	if _, ok := f.responses[id]; !ok {
		return apperr.NotFound("renewal response %d", id)
	}
	delete(f.responses, id)
	return nil
}
