package renewal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/pkg/pagination"
)

const (
	statusReceived = "received"
	statusPending  = "pending"
)

type Service struct {
	mgr RenewalManager
	now func() time.Time
}

func NewService(mgr RenewalManager) *Service {
	return &Service{mgr: mgr, now: time.Now}
}

func (s *Service) ListGroups(ctx context.Context, f GroupFilter, p pagination.Params) ([]*Group, int, error) {
	return s.mgr.ListGroups(ctx, f, p)
}

func (s *Service) GetGroup(ctx context.Context, id int64) (*Group, error) {
	return s.mgr.GetGroup(ctx, id)
}

func (s *Service) CreateGroup(ctx context.Context, g *Group) (int64, error) {
	g.GroupUUID = uuid.New()
	if g.ReceivedDate.IsZero() {
		g.ReceivedDate = s.now().UTC()
	}
	if g.Status == "" {
		g.Status = statusReceived
	}
	return s.mgr.CreateGroup(ctx, g)
}

func (s *Service) UpdateGroup(ctx context.Context, g *Group) error {
	stored, err := s.mgr.GetGroup(ctx, g.RenewalRequestGroupID)
	if err != nil {
		return err
	}
	if g.Status == "" {
		g.Status = stored.Status
	}
	return s.mgr.UpdateGroup(ctx, g)
}

func (s *Service) DeleteGroup(ctx context.Context, id int64) error {
	return s.mgr.DeleteGroup(ctx, id)
}

func (s *Service) ListRequests(ctx context.Context, f RequestFilter, p pagination.Params) ([]*Request, int, error) {
	return s.mgr.ListRequests(ctx, f, p)
}

func (s *Service) GetRequest(ctx context.Context, id int64) (*Request, error) {
	return s.mgr.GetRequest(ctx, id)
}

func (s *Service) requireGroup(ctx context.Context, id int64) error {
	ok, err := s.mgr.GroupExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Invalid("renewal request group %d does not exist", id)
	}
	return nil
}

func (s *Service) CreateRequest(ctx context.Context, r *Request) (int64, error) {
	if err := s.requireGroup(ctx, r.RenewalRequestGroupID); err != nil {
		return 0, err
	}
	if r.Status == "" {
		r.Status = statusPending
	}
	if r.RequestedDate.IsZero() {
		r.RequestedDate = s.now().UTC()
	}
	return s.mgr.CreateRequest(ctx, r)
}

// UpdateRequest replaces a renewal request. An empty status keeps the stored
// one, so an edit does not undo the status a response set.
func (s *Service) UpdateRequest(ctx context.Context, r *Request) error {
	stored, err := s.mgr.GetRequest(ctx, r.RenewalRequestID)
	if err != nil {
		return err
	}
	if err := s.requireGroup(ctx, r.RenewalRequestGroupID); err != nil {
		return err
	}
	if r.Status == "" {
		r.Status = stored.Status
	}
	return s.mgr.UpdateRequest(ctx, r)
}

func (s *Service) DeleteRequest(ctx context.Context, id int64) error {
	return s.mgr.DeleteRequest(ctx, id)
}

func (s *Service) ListResponses(ctx context.Context, f ResponseFilter, p pagination.Params) ([]*Response, int, error) {
	return s.mgr.ListResponses(ctx, f, p)
}

func (s *Service) GetResponse(ctx context.Context, id int64) (*Response, error) {
	return s.mgr.GetResponse(ctx, id)
}

func (s *Service) requireRequest(ctx context.Context, id int64) error {
	ok, err := s.mgr.RequestExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Invalid("renewal request %d does not exist", id)
	}
	return nil
}

// CreateResponse answers a renewal request. The request's status becomes
// the response type.
func (s *Service) CreateResponse(ctx context.Context, r *Response) (int64, error) {
	if err := s.requireRequest(ctx, r.RenewalRequestID); err != nil {
		return 0, err
	}
	if r.ResponseDate.IsZero() {
		r.ResponseDate = s.now().UTC()
	}
	id, err := s.mgr.CreateResponse(ctx, r)
	if err != nil {
		return 0, err
	}
	zerolog.Ctx(ctx).Info().
		Int64("renewal_request_id", r.RenewalRequestID).
		Str("response_type", r.ResponseType).
		Msg("renewal request answered")
	return id, nil
}

func (s *Service) UpdateResponse(ctx context.Context, r *Response) error {
	if err := s.requireRequest(ctx, r.RenewalRequestID); err != nil {
		return err
	}
	if r.ResponseDate.IsZero() {
		r.ResponseDate = s.now().UTC()
	}
	return s.mgr.UpdateResponse(ctx, r)
}

func (s *Service) DeleteResponse(ctx context.Context, id int64) error {
	return s.mgr.DeleteResponse(ctx, id)
}
