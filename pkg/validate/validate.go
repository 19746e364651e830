// Package validate holds the request checks shared by every handler: body
// binding and struct validation, path ids, query decoding, path/body id
// agreement and date range normalisation.
package validate

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &Validator{v: v}
}

// Validate reports failing fields by their JSON names.
func (cv *Validator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid fields: "+strings.Join(fields, ", "))
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// Body binds the JSON request body into dst and validates it. An empty body
// is rejected.
func Body(c echo.Context, dst interface{}) error {
	req := c.Request()
	if req.Body == nil || req.Body == http.NoBody || req.ContentLength == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "request body is required")
	}
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(dst)
}

// PathID parses a positive int64 path parameter.
func PathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// ParseUUID parses raw as a UUID, naming field in the error.
func ParseUUID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+field)
	}
	return id, nil
}

// MatchIDs rejects an update whose body id disagrees with the path id.
func MatchIDs(field string, path, body int64) error {
	if path != body {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("%s in path (%d) does not match body (%d)", field, path, body))
	}
	return nil
}

// NormalizeRange swaps start and end when both are set and start is after end.
func NormalizeRange(start, end *time.Time) (*time.Time, *time.Time) {
	if start != nil && end != nil && start.After(*end) {
		return end, start
	}
	return start, end
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.SetAliasTag("query")
	return d
}

// Query decodes the query string into dst using `query` tags and validates
// the result. Unparseable values are reported by parameter name.
func Query(c echo.Context, dst interface{}) error {
	if err := decoder.Decode(dst, c.QueryParams()); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters: "+queryFields(err))
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(dst)
}

func queryFields(err error) string {
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return err.Error()
	}
	keys := make([]string, 0, len(multi))
	for k := range multi {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
