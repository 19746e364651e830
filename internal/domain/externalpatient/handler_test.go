package externalpatient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/pkg/pagination"
	"github.com/ehr/prescribeit/pkg/validate"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestHandler() (*Handler, *fakeManager, *echo.Echo) {
	mgr := newFakeManager()
	svc := NewService(mgr)
	svc.now = func() time.Time { return fixedNow }
	e := echo.New()
	e.Validator = validate.New()
	return NewHandler(svc), mgr, e
}

func request(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_List_FilterByIdentifier(t *testing.T) {
	h, mgr, e := newTestHandler()
	mgr.add("urn:ehr:clinic-a", "A-100")
	mgr.add("urn:ehr:clinic-a", "A-200")

	c, rec := request(e, http.MethodGet, "/external-patients?identifier=A-200", "")
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var env pagination.Envelope[ExternalPatientDto]
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Total != 1 || env.Contents[0].Identifier != "A-200" {
		t.Errorf("expected only A-200, got %+v", env.Contents)
	}
}

func TestHandler_List_BadPatientID(t *testing.T) {
	h, _, e := newTestHandler()

	c, _ := request(e, http.MethodGet, "/external-patients?patientId=abc", "")
	if err := h.List(c); apperr.Status(err) != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_GetByUUID(t *testing.T) {
	h, mgr, e := newTestHandler()
	p := mgr.add("urn:ehr:clinic-a", "A-100")

	c, rec := request(e, http.MethodGet, "/", "")
	c.SetParamNames("externalPatientUuid")
	c.SetParamValues(p.ExternalPatientUUID.String())
	if err := h.GetByUUID(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var dto ExternalPatientDto
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.ExternalPatientID != p.ExternalPatientID {
		t.Errorf("expected id %d, got %d", p.ExternalPatientID, dto.ExternalPatientID)
	}
}

func TestHandler_GetByUUID_Malformed(t *testing.T) {
	h, _, e := newTestHandler()

	c, _ := request(e, http.MethodGet, "/", "")
	c.SetParamNames("externalPatientUuid")
	c.SetParamValues("nope")
	if err := h.GetByUUID(c); apperr.Status(err) != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Create(t *testing.T) {
	h, mgr, e := newTestHandler()

	c, rec := request(e, http.MethodPost, "/external-patients",
		`{"identifierSystem":"urn:ehr:clinic-a","identifier":"A-1","firstName":"Grace","lastName":"Hopper","healthNumberProvince":"ON"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	got := mgr.patients[1]
	if got == nil || !got.CreatedDate.Equal(fixedNow) || got.ExternalPatientUUID.String() == "" {
		t.Errorf("expected stamped record, got %+v", got)
	}
}

func TestHandler_Create_Duplicate(t *testing.T) {
	h, mgr, e := newTestHandler()
	mgr.add("urn:ehr:clinic-a", "A-1")

	c, _ := request(e, http.MethodPost, "/external-patients",
		`{"identifierSystem":"urn:ehr:clinic-a","identifier":"A-1","firstName":"Grace","lastName":"Hopper"}`)
	if err := h.Create(c); apperr.Status(err) != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
	if mgr.creates != 0 {
		t.Errorf("create should not be called on a duplicate")
	}
}

func TestHandler_Create_SameIdentifierOtherSystem(t *testing.T) {
	h, mgr, e := newTestHandler()
	mgr.add("urn:ehr:clinic-a", "A-1")

	c, rec := request(e, http.MethodPost, "/external-patients",
		`{"identifierSystem":"urn:ehr:clinic-b","identifier":"A-1","firstName":"Grace","lastName":"Hopper"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_Create_InvalidProvince(t *testing.T) {
	h, _, e := newTestHandler()

	c, _ := request(e, http.MethodPost, "/external-patients",
		`{"identifierSystem":"s","identifier":"A-1","firstName":"G","lastName":"H","healthNumberProvince":"Ontario"}`)
	err := h.Create(c)
	if apperr.Status(err) != http.StatusBadRequest || !strings.Contains(err.Error(), "healthNumberProvince") {
		t.Errorf("expected 400 naming healthNumberProvince, got %v", err)
	}
}

func TestHandler_Update(t *testing.T) {
	h, mgr, e := newTestHandler()
	p := mgr.add("urn:ehr:clinic-a", "A-1")

	c, rec := request(e, http.MethodPut, "/", `{"externalPatientId":1,"identifierSystem":"urn:ehr:clinic-a","identifier":"A-1","firstName":"Augusta","lastName":"King"}`)
	c.SetParamNames("externalPatientId")
	c.SetParamValues("1")
	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if mgr.patients[p.ExternalPatientID].LastName != "King" {
		t.Errorf("expected update to be stored")
	}
}

func TestHandler_Update_ConflictAndMissing(t *testing.T) {
	h, mgr, e := newTestHandler()
	mgr.add("urn:ehr:clinic-a", "A-1")
	mgr.add("urn:ehr:clinic-a", "A-2")

	tests := []struct {
		name string
		id   string
		body string
		want int
	}{
		{"onto another identifier", "2", `{"externalPatientId":2,"identifierSystem":"urn:ehr:clinic-a","identifier":"A-1","firstName":"a","lastName":"b"}`, http.StatusConflict},
		{"missing", "9", `{"externalPatientId":9,"identifierSystem":"x","identifier":"y","firstName":"a","lastName":"b"}`, http.StatusNotFound},
		{"id mismatch", "1", `{"externalPatientId":2,"identifierSystem":"x","identifier":"y","firstName":"a","lastName":"b"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := request(e, http.MethodPut, "/", tt.body)
			c.SetParamNames("externalPatientId")
			c.SetParamValues(tt.id)
			if got := apperr.Status(h.Update(c)); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	h, mgr, e := newTestHandler()
	mgr.add("urn:ehr:clinic-a", "A-1")

	for _, want := range []int{http.StatusNoContent, http.StatusNotFound} {
		c, rec := request(e, http.MethodDelete, "/", "")
		c.SetParamNames("externalPatientId")
		c.SetParamValues("1")
		err := h.Delete(c)
		got := rec.Code
		if err != nil {
			got = apperr.Status(err)
		}
		if got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	}
}
