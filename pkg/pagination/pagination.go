package pagination

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 50
)

// Params holds keyset pagination parameters extracted from a request.
// A nil StartingID means the first page.
type Params struct {
	PageSize   int
	StartingID *int64
}

// EffectivePageSize clamps a requested page size. A missing or non-positive
// request yields def; anything above max yields max.
func EffectivePageSize(requested *int, def, max int) int {
	if requested == nil || *requested <= 0 {
		return def
	}
	if *requested > max {
		return max
	}
	return *requested
}

// FromContext reads pageSize and startingId from the query string. Out of
// range or unparseable page sizes are clamped rather than rejected; a
// malformed cursor is a client error.
func FromContext(c echo.Context) (Params, error) {
	var requested *int
	if raw := c.QueryParam("pageSize"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			requested = &n
		}
	}
	p := Params{PageSize: EffectivePageSize(requested, DefaultPageSize, MaxPageSize)}

	if raw := c.QueryParam("startingId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return p, echo.NewHTTPError(http.StatusBadRequest, "invalid startingId")
		}
		p.StartingID = &id
	}
	return p, nil
}

// FirstPage returns parameters for the first page of the given size.
func FirstPage(size int) Params {
	return Params{PageSize: EffectivePageSize(&size, DefaultPageSize, MaxPageSize)}
}

// Envelope is the paging wrapper returned by every list endpoint.
type Envelope[T any] struct {
	Contents []T    `json:"contents"`
	Count    int    `json:"count"`
	Total    int    `json:"total"`
	LastID   *int64 `json:"lastId"`
}

// NewEnvelope maps a page of items to DTOs, preserving order. cursor extracts
// the keyset value of an item; the last item's value becomes LastID.
func NewEnvelope[M any, T any](items []M, total int, cursor func(M) int64, toDTO func(M) T) Envelope[T] {
	env := Envelope[T]{
		Contents: make([]T, 0, len(items)),
		Total:    total,
	}
	for _, it := range items {
		env.Contents = append(env.Contents, toDTO(it))
	}
	env.Count = len(env.Contents)
	if n := len(items); n > 0 {
		last := cursor(items[n-1])
		env.LastID = &last
	}
	return env
}
