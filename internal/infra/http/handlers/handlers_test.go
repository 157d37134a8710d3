package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/experttechtutors/tutor-leads/internal/entity"
	"github.com/experttechtutors/tutor-leads/internal/usecase"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Execute(ctx context.Context, raw usecase.RawLead) (*usecase.SubmitLeadOutput, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SubmitLeadOutput), args.Error(1)
}

type MockLeadManager struct {
	mock.Mock
}

func (m *MockLeadManager) List(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadManager) UpdateStatus(ctx context.Context, id string, input usecase.UpdateStatusInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func validationErr(field, message string) error {
	return &usecase.DomainError{
		Code:       usecase.CodeValidation,
		Message:    message,
		Violations: []usecase.ValidationError{{Field: field, Message: message}},
	}
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func redirectQuery(t *testing.T, rec *httptest.ResponseRecorder) url.Values {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/contact", loc.Path)
	return loc.Query()
}

func decodeAPI(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSubmitForm_Success(t *testing.T) {
	sub := new(MockSubmitter)
	sub.On("Execute", mock.Anything, mock.MatchedBy(func(raw usecase.RawLead) bool {
		return raw.StudentName == "Asha Rao" &&
			len(raw.Subjects) == 2 && raw.Subjects[0] == "Python" && raw.Subjects[1] == "AI"
	})).Return(&usecase.SubmitLeadOutput{LeadID: "lead-1"}, nil)

	form := url.Values{
		"studentName":  {"Asha Rao"},
		"phone":        {"9876543210"},
		"email":        {"asha@example.com"},
		"area":         {"Gachibowli"},
		"learningGoal": {"beginner"},
		"subjects":     {"Python"},
		"subjects[]":   {"AI"},
	}
	rec := httptest.NewRecorder()
	NewContactHandler(sub, nil).SubmitForm(rec, formRequest("/contact", form))

	q := redirectQuery(t, rec)
	assert.Equal(t, FormSuccessMessage, q.Get("success"))
	assert.Empty(t, q.Get("error"))
	sub.AssertExpectations(t)
}

func TestSubmitForm_ValidationError(t *testing.T) {
	sub := new(MockSubmitter)
	sub.On("Execute", mock.Anything, mock.Anything).
		Return(nil, validationErr("phone", "Please enter a valid 10-digit phone number"))

	rec := httptest.NewRecorder()
	NewContactHandler(sub, nil).SubmitForm(rec, formRequest("/contact", url.Values{"phone": {"12345"}}))

	q := redirectQuery(t, rec)
	assert.Equal(t, "Please enter a valid 10-digit phone number", q.Get("error"))
}

func TestSubmitForm_UnexpectedError(t *testing.T) {
	sub := new(MockSubmitter)
	sub.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &usecase.TechnicalError{Code: usecase.CodePersistence, Message: "failed to save lead", Err: errors.New("boom")})

	rec := httptest.NewRecorder()
	NewContactHandler(sub, nil).SubmitForm(rec, formRequest("/contact", url.Values{}))

	q := redirectQuery(t, rec)
	assert.Equal(t, GenericFormError, q.Get("error"))
}

func TestSubmitAPI_Success(t *testing.T) {
	sub := new(MockSubmitter)
	sub.On("Execute", mock.Anything, mock.MatchedBy(func(raw usecase.RawLead) bool {
		return len(raw.Subjects) == 1 && raw.Subjects[0] == "Python"
	})).Return(&usecase.SubmitLeadOutput{LeadID: "lead-1"}, nil)

	body := `{"studentName":"Asha Rao","phone":"9876543210","email":"ASHA@Example.com",
		"area":"Gachibowli","learningGoal":"beginner","subjects":"Python"}`
	rec := httptest.NewRecorder()
	NewContactHandler(sub, nil).SubmitAPI(rec, jsonRequest(http.MethodPost, "/contact/api", body))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeAPI(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, APISuccessMessage, resp.Message)
}

func TestSubmitAPI_ValidationErrors(t *testing.T) {
	sub := new(MockSubmitter)
	sub.On("Execute", mock.Anything, mock.Anything).
		Return(nil, validationErr("subjects", "Invalid subject selection"))

	rec := httptest.NewRecorder()
	NewContactHandler(sub, nil).SubmitAPI(rec, jsonRequest(http.MethodPost, "/contact/api", `{"subjects":["COBOL"]}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeAPI(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, []usecase.ValidationError{{Field: "subjects", Message: "Invalid subject selection"}}, resp.Errors)
}

func TestSubmitAPI_MalformedBody(t *testing.T) {
	sub := new(MockSubmitter)

	rec := httptest.NewRecorder()
	NewContactHandler(sub, nil).SubmitAPI(rec, jsonRequest(http.MethodPost, "/contact/api", `{"studentName":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, GenericAPIError, decodeAPI(t, rec).Message)
	sub.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestSubmitAPI_UnexpectedError(t *testing.T) {
	sub := new(MockSubmitter)
	sub.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	rec := httptest.NewRecorder()
	NewContactHandler(sub, nil).SubmitAPI(rec, jsonRequest(http.MethodPost, "/contact/api", `{}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, GenericAPIError, decodeAPI(t, rec).Message)
}

func TestShowContactPage_RendersBanners(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/contact?error="+url.QueryEscape("Area is required"), nil)

	NewContactHandler(nil, nil).ShowContactPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Area is required")
	assert.Contains(t, rec.Body.String(), `value="Data Science"`)
	assert.Contains(t, rec.Body.String(), `value="Hitech City"`)
}

func TestReferenceHandler(t *testing.T) {
	h := NewReferenceHandler()

	rec := httptest.NewRecorder()
	h.Subjects(rec, httptest.NewRequest(http.MethodGet, "/contact/subjects", nil))
	var subjects SubjectsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &subjects))
	assert.True(t, subjects.Success)
	assert.Len(t, subjects.Subjects, 12)
	assert.Equal(t, "python", subjects.Subjects[0].ID)
	assert.NotContains(t, rec.Body.String(), `"Value"`)

	rec = httptest.NewRecorder()
	h.Areas(rec, httptest.NewRequest(http.MethodGet, "/contact/areas", nil))
	var areas AreasResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &areas))
	assert.True(t, areas.Success)
	assert.Len(t, areas.Areas, 12)
	assert.Equal(t, "West", areas.Areas[0].Zone)
}

func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAdminHandler_ListContacts(t *testing.T) {
	m := new(MockLeadManager)
	m.On("List", mock.Anything).Return([]entity.Lead{}, nil)

	rec := httptest.NewRecorder()
	NewAdminHandler(m, nil).ListContacts(rec, httptest.NewRequest(http.MethodGet, "/contact/admin", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"contacts":[]}`, rec.Body.String())
}

func TestAdminHandler_UpdateStatus(t *testing.T) {
	m := new(MockLeadManager)
	m.On("UpdateStatus", mock.Anything, "lead-1", usecase.UpdateStatusInput{Status: "matched"}).Return(nil)
	m.On("UpdateStatus", mock.Anything, "lead-1", usecase.UpdateStatusInput{Status: "archived"}).
		Return(validationErr("status", "Invalid status"))
	m.On("UpdateStatus", mock.Anything, "missing", usecase.UpdateStatusInput{Status: "closed"}).
		Return(&usecase.DomainError{Code: usecase.CodeLeadNotFound, Message: "lead not found"})

	h := NewAdminHandler(m, nil)

	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, withID(jsonRequest(http.MethodPut, "/contact/admin/lead-1/status", `{"status":"matched"}`), "lead-1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.UpdateStatus(rec, withID(jsonRequest(http.MethodPut, "/contact/admin/lead-1/status", `{"status":"archived"}`), "lead-1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid status", decodeAPI(t, rec).Errors[0].Message)

	rec = httptest.NewRecorder()
	h.UpdateStatus(rec, withID(jsonRequest(http.MethodPut, "/contact/admin/missing/status", `{"status":"closed"}`), "missing"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	ok := Dependency{Name: "database", Check: func(context.Context) error { return nil }}
	off := Dependency{Name: "redis"}
	down := Dependency{Name: "rabbitmq", Check: func(context.Context) error { return errors.New("connection closed") }}

	rec := httptest.NewRecorder()
	NewHealthHandler("test", ok, off).Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "not configured", resp.Dependencies["redis"])

	rec = httptest.NewRecorder()
	NewHealthHandler("test", ok, down).Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unhealthy: connection closed", resp.Dependencies["rabbitmq"])
}

func TestHealthHandler_Status(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler("test", Dependency{Name: "database"}).Status(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ServerName, resp.Server)
	assert.Equal(t, "Active", resp.Status)
	assert.Equal(t, "Not configured", resp.Database)

	rec = httptest.NewRecorder()
	NewHealthHandler("test", Dependency{Name: "database", Check: func(context.Context) error { return nil }}).
		Status(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Connected", resp.Database)
}
