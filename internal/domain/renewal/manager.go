package renewal

import (
	"context"

	"github.com/ehr/prescribeit/pkg/pagination"
)

type RenewalManager interface {
	ListGroups(ctx context.Context, f GroupFilter, p pagination.Params) ([]*Group, int, error)
	GetGroup(ctx context.Context, id int64) (*Group, error)
	GroupExists(ctx context.Context, id int64) (bool, error)
	CreateGroup(ctx context.Context, g *Group) (int64, error)
	UpdateGroup(ctx context.Context, g *Group) error
	DeleteGroup(ctx context.Context, id int64) error

	ListRequests(ctx context.Context, f RequestFilter, p pagination.Params) ([]*Request, int, error)
	GetRequest(ctx context.Context, id int64) (*Request, error)
	RequestExists(ctx context.Context, id int64) (bool, error)
	CreateRequest(ctx context.Context, r *Request) (int64, error)
	UpdateRequest(ctx context.Context, r *Request) error
	DeleteRequest(ctx context.Context, id int64) error

	ListResponses(ctx context.Context, f ResponseFilter, p pagination.Params) ([]*Response, int, error)
	GetResponse(ctx context.Context, id int64) (*Response, error)
	// CreateResponse and UpdateResponse also set the owning request's
	// status to the response type, in the same transaction.
	CreateResponse(ctx context.Context, r *Response) (int64, error)
	UpdateResponse(ctx context.Context, r *Response) error
	DeleteResponse(ctx context.Context, id int64) error
}
