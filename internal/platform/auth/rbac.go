package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	RoleProvider    = "provider"
	RolePharmacist  = "pharmacist"
	RoleStaff       = "staff"
	RoleIntegration = "integration"
	RoleAdmin       = "admin"
)

// Readers may view clinical data; Writers may change it.
var (
	Readers = []string{RoleProvider, RolePharmacist, RoleStaff, RoleIntegration}
	Writers = []string{RoleProvider, RoleStaff, RoleIntegration}
)

// RequireRole admits callers holding at least one of roles. Admins are
// always admitted.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRoles := RolesFromContext(c.Request().Context())
			for _, has := range userRoles {
				if has == RoleAdmin {
					return next(c)
				}
				for _, required := range roles {
					if has == required {
						return next(c)
					}
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}

// ReadWrite admits Readers to safe methods and Writers, plus any
// extraWriters, to everything else.
func ReadWrite(extraWriters ...string) echo.MiddlewareFunc {
	read := RequireRole(Readers...)
	write := RequireRole(append(append([]string{}, Writers...), extraWriters...)...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		r, w := read(next), write(next)
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return r(c)
			default:
				return w(c)
			}
		}
	}
}
