package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextWithRoles(method string, roles ...string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserRolesKey, roles))
	return e.NewContext(req, httptest.NewRecorder())
}

func ok(echo.Context) error { return nil }

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		has     []string
		require []string
		allowed bool
	}{
		{"matching role", []string{RoleProvider}, []string{RoleProvider}, true},
		{"one of several", []string{RoleStaff}, []string{RoleProvider, RoleStaff}, true},
		{"admin passes", []string{RoleAdmin}, []string{RolePharmacist}, true},
		{"missing role", []string{RolePharmacist}, []string{RoleProvider}, false},
		{"no roles", nil, []string{RoleProvider}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireRole(tt.require...)(ok)(contextWithRoles(http.MethodGet, tt.has...))
			if tt.allowed && err != nil {
				t.Fatalf("expected access, got %v", err)
			}
			if !tt.allowed {
				expectStatus(t, err, http.StatusForbidden)
			}
		})
	}
}

func TestReadWrite(t *testing.T) {
	if err := ReadWrite()(ok)(contextWithRoles(http.MethodGet, RolePharmacist)); err != nil {
		t.Errorf("pharmacist should read: %v", err)
	}
	expectStatus(t, ReadWrite()(ok)(contextWithRoles(http.MethodPost, RolePharmacist)), http.StatusForbidden)

	if err := ReadWrite(RolePharmacist)(ok)(contextWithRoles(http.MethodPost, RolePharmacist)); err != nil {
		t.Errorf("pharmacist should write when listed: %v", err)
	}
	if err := ReadWrite()(ok)(contextWithRoles(http.MethodDelete, RoleProvider)); err != nil {
		t.Errorf("provider should write: %v", err)
	}
}
