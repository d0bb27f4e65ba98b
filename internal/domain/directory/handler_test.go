package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/docsearch/docsearch/internal/domain/identity"
	"github.com/docsearch/docsearch/internal/platform/apperr"
	"github.com/docsearch/docsearch/internal/platform/auth"
	"github.com/docsearch/docsearch/pkg/pagination"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _ := newTestService()
	return NewHandler(svc), echo.New()
}

func doctorContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID string) echo.Context {
	req = req.WithContext(auth.WithIdentity(req.Context(), userID, identity.RoleDoctor))
	return e.NewContext(req, rec)
}

func TestHandler_UpsertProfile(t *testing.T) {
	h, e := newTestHandler()

	body := `{"specialty":"Cardiology","experience":8,"fee":150,"location":{"city":"Austin","state":"TX"}}`
	req := httptest.NewRequest(http.MethodPost, "/doctor/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := doctorContext(e, req, rec, uuid.NewString())

	if err := h.UpsertProfile(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var p DoctorProfile
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.Specialty != "Cardiology" {
		t.Errorf("specialty = %q", p.Specialty)
	}
	if len(p.Availability) != 7 {
		t.Errorf("expected a full week of availability, got %d days", len(p.Availability))
	}
}

func TestHandler_UpsertProfile_MissingFields(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/doctor/profile", strings.NewReader(`{"bio":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := doctorContext(e, req, rec, uuid.NewString())

	err := h.UpsertProfile(c)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestHandler_UpsertProfile_Unauthenticated(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/doctor/profile", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.UpsertProfile(c)
	if !apperr.IsKind(err, apperr.KindAuthentication) {
		t.Errorf("err = %v, want authentication error", err)
	}
}

func TestHandler_GetOwnProfile(t *testing.T) {
	h, e := newTestHandler()
	userID := uuid.NewString()
	if _, err := h.svc.Upsert(context.Background(), userID, identity.RoleDoctor, ProfileInput{
		Specialty:  "Cardiology",
		Experience: intPtr(8),
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/doctor/profile", nil)
	rec := httptest.NewRecorder()
	c := doctorContext(e, req, rec, userID)

	if err := h.GetOwnProfile(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetOwnProfile_NotFound(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/doctor/profile", nil)
	rec := httptest.NewRecorder()
	c := doctorContext(e, req, rec, uuid.NewString())

	err := h.GetOwnProfile(c)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("err = %v, want not found error", err)
	}
}

func TestHandler_GetProfile(t *testing.T) {
	h, e := newTestHandler()
	p, err := h.svc.Upsert(context.Background(), uuid.NewString(), identity.RoleDoctor, ProfileInput{
		Specialty:  "Cardiology",
		Experience: intPtr(8),
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.GetProfile(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetProfile_InvalidID(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetProfile(c)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestHandler_Search_QueryParams(t *testing.T) {
	h, e := newTestHandler()
	if _, err := h.svc.Upsert(context.Background(), uuid.NewString(), identity.RoleDoctor, ProfileInput{
		Specialty:  "Cardiology",
		Experience: intPtr(8),
		Location:   &Location{City: "Austin", State: "TX"},
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/doctor/search?specialty=cardio", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp pagination.Response
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
}

func TestHandler_Search_PostBody(t *testing.T) {
	h, e := newTestHandler()
	if _, err := h.svc.Upsert(context.Background(), uuid.NewString(), identity.RoleDoctor, ProfileInput{
		Specialty:  "Dermatology",
		Experience: intPtr(3),
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	body := `{"specialty":"derma"}`
	req := httptest.NewRequest(http.MethodPost, "/doctor/search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp pagination.Response
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
}

func TestHandler_Search_EmptyResultIsNotError(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/doctor/search?specialty=neuro", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("expected empty data array, got %s", rec.Body.String())
	}
}
