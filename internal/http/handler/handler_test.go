package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"projectapi/internal/http/middleware"
	"projectapi/internal/model"
	"projectapi/internal/service"
	serviceMocks "projectapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testUserID    = "7f1b7c9e-3a52-4c38-9d3e-5a0f0e1c2b11"
	testProjectID = "0c6f2d9a-8b4e-4f11-a0d2-93c1e5b7a4f0"
	testItemID    = "5d2e8a41-6c0b-4b7f-8e93-1f4a7c2d9b65"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestApp returns an app whose requests are authenticated as testUserID.
func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDLocalKey, testUserID)
		return c.Next()
	})
	return app
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

type stubValidator map[string]string

func (s stubValidator) Validate(token string) (string, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", errors.New("invalid token")
}

type stubReadiness struct{ err error }

func (s stubReadiness) Ready(context.Context) error { return s.err }

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	get := func(t *testing.T, h fiber.Handler) *http.Response {
		t.Helper()
		app := fiber.New()
		app.Get("/health", h)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		return resp
	}

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing()

		resp := get(t, HealthCheck(db, stubReadiness{}))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, map[string]string{"status": "healthy", "database": "ok", "storage": "ok"}, body)
	})

	t.Run("without storage", func(t *testing.T) {
		dbMock.ExpectPing()

		resp := get(t, HealthCheck(db, nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotContains(t, body, "storage")
	})

	t.Run("database down", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp := get(t, HealthCheck(db, stubReadiness{}))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
		assert.Equal(t, "database unavailable", body.Error.Message)
	})

	t.Run("storage down", func(t *testing.T) {
		dbMock.ExpectPing()

		resp := get(t, HealthCheck(db, stubReadiness{err: errors.New("bucket gone")}))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "storage unavailable", decodeError(t, resp).Error.Message)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	promauto.With(reg).NewCounter(prometheus.CounterOpts{Name: "test_events_total", Help: "test"}).Inc()

	app := fiber.New()
	app.Get("/metrics", Metrics(reg))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "test_events_total 1")
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: &service.ValidationError{Fields: map[string]string{"title": "required"}}, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "not found", err: service.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "permission denied", err: service.ErrPermissionDenied, wantStatus: http.StatusForbidden, wantCode: "PERMISSION_DENIED"},
		{name: "wrapped conflict", err: errors.Join(errors.New("ctx"), service.ErrConflict), wantStatus: http.StatusConflict, wantCode: "CONFLICT"},
		{name: "id required", err: service.ErrIDRequired, wantStatus: http.StatusBadRequest, wantCode: "INVALID_ID"},
		{name: "request error", err: errInvalidLimit, wantStatus: http.StatusBadRequest, wantCode: "INVALID_LIMIT"},
		{name: "unknown", err: errors.New("pq: connection reset"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return handleError(c, tt.err) })

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotContains(t, body.Error.Message, "pq:")
		})
	}
}

func TestHandleError_ValidationFields(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return handleError(c, &service.ValidationError{Fields: map[string]string{"reminder_datetime": "Reminder datetime must be in the future."}})
	})

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

	body := decodeError(t, resp)
	assert.Equal(t, "Reminder datetime must be in the future.", body.Error.Fields["reminder_datetime"])
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})
	app.Use(middleware.RequestID())

	projects := new(serviceMocks.MockProjectService)
	shareLinks := new(serviceMocks.MockShareLinkService)
	RegisterRoutes(app, Deps{
		Auth:     stubValidator{"good-token": testUserID},
		Gatherer: prometheus.NewRegistry(),
		Services: Services{
			Projects:   projects,
			Files:      new(serviceMocks.MockFileService),
			Notes:      new(serviceMocks.MockNoteService),
			Comments:   new(serviceMocks.MockCommentService),
			Reminders:  new(serviceMocks.MockReminderService),
			ShareLinks: shareLinks,
		},
		PublicBaseURL: "https://projects.example.com",
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-401")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
		assert.Equal(t, "req-401", body.RequestID)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer forged")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("authenticated request reaches handler", func(t *testing.T) {
		projects.On("List", mock.Anything, testUserID, 10, 0).
			Return(&service.ListResult[model.Project]{Items: []model.Project{}, Total: 0}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer good-token")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		projects.AssertExpectations(t)
	})

	t.Run("shared view is public", func(t *testing.T) {
		shareLinks.On("Resolve", mock.Anything, "tok").Return(&service.SharedProject{
			Project:   model.Project{ID: testProjectID, Name: "Bridge"},
			OwnerName: "Owner",
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/shared/tok", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body sharedProjectResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Bridge", body.Project.Name)
		assert.NotNil(t, body.Notes)
		shareLinks.AssertExpectations(t)
	})

	t.Run("share uses configured base url", func(t *testing.T) {
		shareLinks.On("Ensure", mock.Anything, testUserID, testProjectID).
			Return(&model.ShareLink{ID: testItemID, ProjectID: testProjectID, ProjectName: "Bridge", Token: "tok", IsActive: true}, false, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/projects/"+testProjectID+"/share", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer good-token")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body shareLinkResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "https://projects.example.com/projects/shared/tok/", body.ShareURL)
		shareLinks.AssertExpectations(t)
	})

	t.Run("issued share url resolves without auth", func(t *testing.T) {
		shareLinks.On("Ensure", mock.Anything, testUserID, testProjectID).
			Return(&model.ShareLink{ID: testItemID, ProjectID: testProjectID, ProjectName: "Bridge", Token: "tok2", IsActive: true}, true, nil).Once()
		shareLinks.On("Resolve", mock.Anything, "tok2").Return(&service.SharedProject{
			Project:   model.Project{ID: testProjectID, Name: "Bridge"},
			OwnerName: "Owner",
		}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/projects/"+testProjectID+"/share", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer good-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var issued shareLinkResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&issued))
		u, err := url.Parse(issued.ShareURL)
		require.NoError(t, err)

		resp, err = app.Test(httptest.NewRequest(http.MethodGet, u.Path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var view sharedProjectResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
		assert.Equal(t, "Bridge", view.Project.Name)
		shareLinks.AssertExpectations(t)
	})
}
