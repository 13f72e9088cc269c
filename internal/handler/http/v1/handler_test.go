package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/incident_reporting_system/internal/auth"
	"github.com/shenikar/incident_reporting_system/internal/feed"
	"github.com/shenikar/incident_reporting_system/internal/handler/http/v1/mocks"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testServices struct {
	incidents     *mocks.MockIncidentService
	notifications *mocks.MockNotificationService
	auth          *mocks.MockAuthService
	dashboard     *mocks.MockDashboardService
	feed          *stubSubscriber
	tokens        *auth.JWTManager
}

// stubSubscriber отдает заранее подготовленные события и закрывает канал
type stubSubscriber struct {
	topic  string
	events []feed.Event
	err    error
}

func (s *stubSubscriber) Subscribe(_ context.Context, topic string) (<-chan feed.Event, error) {
	s.topic = topic
	if s.err != nil {
		return nil, s.err
	}
	ch := make(chan feed.Event, len(s.events))
	for _, e := range s.events {
		ch <- e
	}
	close(ch)
	return ch, nil
}

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*Handler, testServices, *gin.Engine) {
	ctrl := gomock.NewController(t)
	deps := testServices{
		incidents:     mocks.NewMockIncidentService(ctrl),
		notifications: mocks.NewMockNotificationService(ctrl),
		auth:          mocks.NewMockAuthService(ctrl),
		dashboard:     mocks.NewMockDashboardService(ctrl),
		feed:          &stubSubscriber{},
		tokens:        auth.NewJWTManager("test-secret", time.Hour),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	policy, err := auth.NewPolicy()
	require.NoError(t, err)

	handler := NewHandler(Services{
		Incidents:     deps.incidents,
		Notifications: deps.notifications,
		Auth:          deps.auth,
		Dashboard:     deps.dashboard,
	}, deps.tokens, policy, deps.feed, logger)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, deps, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// bearer выпускает токен для пользователя с указанной ролью
func bearer(t *testing.T, deps testServices, user *models.User) map[string]string {
	token, err := deps.tokens.Issue(user)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func testUser(role models.Role) *models.User {
	return &models.User{
		ID:       uuid.New(),
		FullName: "Test " + string(role),
		Email:    fmt.Sprintf("%s@example.com", role),
		Role:     role,
		Active:   true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	bodyBytes, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(bodyBytes)
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.incidents.EXPECT().ListIncidents(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authorization token required")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents", nil, map[string]string{"Authorization": "Bearer garbage"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid authorization token")
}

func TestCreateIncident_Success(t *testing.T) {
	_, deps, router := newTestHandler(t)
	reporter := testUser(models.RoleCitizen)
	incidentID := uuid.New()
	reqBody := CreateIncidentRequest{
		Title:     "Person collapsed",
		Category:  "MEDICAL",
		Latitude:  floatPtr(10.0),
		Longitude: floatPtr(20.0),
	}

	deps.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any(), reporter.Email).
		DoAndReturn(func(_ context.Context, inc *models.Incident, _ string) error {
			assert.Equal(t, models.CategoryMedical, inc.Category)
			// Симулируем заполнение полей сервисом
			inc.ID = incidentID
			inc.Status = models.StatusPending
			inc.Priority = models.PriorityHigh
			inc.ReporterID = reporter.ID
			return nil
		}).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/incidents", jsonBody(t, reqBody), bearer(t, deps, reporter))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, incidentID, resp.ID)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "HIGH", resp.Priority)
	assert.Nil(t, resp.ResolvedAt)
	assert.Equal(t, []string{}, resp.MediaURLs)
}

func TestCreateIncident_InvalidJSON(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, http.MethodPost, "/api/v1/incidents", bytes.NewBufferString(`{"title": "test"`), bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateIncident_ValidationError(t *testing.T) {
	_, deps, router := newTestHandler(t)
	reqBody := CreateIncidentRequest{ // Категория в нижнем регистре не принимается
		Title:     "Lost wallet",
		Category:  "theft",
		Latitude:  floatPtr(1),
		Longitude: floatPtr(1),
	}

	deps.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPost, "/api/v1/incidents", jsonBody(t, reqBody), bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Category' failed on the 'oneof' tag")
}

func TestCreateIncident_MissingCoordinates(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPost, "/api/v1/incidents",
		bytes.NewBufferString(`{"title":"No location","category":"FIRE"}`), bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Latitude' failed on the 'required' tag")
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Longitude' failed on the 'required' tag")
}

func TestCreateIncident_ZeroCoordinatesAccepted(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, inc *models.Incident, _ string) {
			assert.Equal(t, 0.0, inc.Latitude)
			assert.Equal(t, 0.0, inc.Longitude)
		}).Return(nil).Times(1)

	// Точка на пересечении экватора и нулевого меридиана допустима
	w := makeRequest(router, http.MethodPost, "/api/v1/incidents",
		bytes.NewBufferString(`{"title":"Buoy adrift","category":"OTHER","latitude":0,"longitude":0}`), bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateIncident_DuplicateMediaURLs(t *testing.T) {
	_, deps, router := newTestHandler(t)
	reqBody := CreateIncidentRequest{
		Title:     "Broken window",
		Category:  "VANDALISM",
		Latitude:  floatPtr(55.75),
		Longitude: floatPtr(37.61),
		MediaURLs: []string{"http://a/x.png", "http://a/y.png", "http://a/x.png"},
	}

	deps.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, inc *models.Incident, _ string) {
			assert.Equal(t, []string{"http://a/x.png", "http://a/y.png"}, inc.MediaURLs)
		}).Return(nil).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/incidents", jsonBody(t, reqBody), bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateIncident_ReporterNotFound(t *testing.T) {
	_, deps, router := newTestHandler(t)
	reqBody := CreateIncidentRequest{Title: "Lost wallet", Category: "THEFT", Latitude: floatPtr(1), Longitude: floatPtr(1)}

	deps.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("service: reporter not found: %w", service.ErrNotFound))

	w := makeRequest(router, http.MethodPost, "/api/v1/incidents", jsonBody(t, reqBody), bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "reporter not found")
}

func TestCreateIncident_ServiceError(t *testing.T) {
	_, deps, router := newTestHandler(t)
	reqBody := CreateIncidentRequest{Title: "Lost wallet", Category: "THEFT", Latitude: floatPtr(1), Longitude: floatPtr(1)}

	deps.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("database error")).
		Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/incidents", jsonBody(t, reqBody), bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestGetIncident_Success(t *testing.T) {
	_, deps, router := newTestHandler(t)
	incidentID := uuid.New()
	expectedIncident := &models.Incident{
		ID:        incidentID,
		Title:     "Retrieved Incident",
		Category:  models.CategoryTheft,
		Status:    models.StatusAssigned,
		Latitude:  30.0,
		Longitude: 40.0,
	}

	deps.incidents.EXPECT().GetIncident(gomock.Any(), incidentID).Return(expectedIncident, nil).Times(1)

	w := makeRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/incidents/%s", incidentID.String()), nil, bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, incidentID, resp.ID)
	assert.Equal(t, expectedIncident.Title, resp.Title)
	assert.Equal(t, "ASSIGNED", resp.Status)
}

func TestGetIncident_InvalidID(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.incidents.EXPECT().GetIncident(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents/invalid-uuid", nil, bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid incident ID")
}

func TestGetIncident_NotFound(t *testing.T) {
	_, deps, router := newTestHandler(t)
	incidentID := uuid.New()

	deps.incidents.EXPECT().
		GetIncident(gomock.Any(), incidentID).
		Return(nil, fmt.Errorf("service: could not get incident: %w", service.ErrNotFound)).
		Times(1)

	w := makeRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/incidents/%s", incidentID.String()), nil, bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "incident not found")
}

func TestGetIncident_ServiceError(t *testing.T) {
	_, deps, router := newTestHandler(t)
	incidentID := uuid.New()

	deps.incidents.EXPECT().GetIncident(gomock.Any(), incidentID).Return(nil, errors.New("database error")).Times(1)

	w := makeRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/incidents/%s", incidentID.String()), nil, bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListIncidents_Success(t *testing.T) {
	_, deps, router := newTestHandler(t)
	expectedIncidents := []*models.Incident{
		{ID: uuid.New(), Title: "Incident 1", Status: models.StatusPending},
		{ID: uuid.New(), Title: "Incident 2", Status: models.StatusClosed},
	}

	deps.incidents.EXPECT().ListIncidents(gomock.Any(), 1, 10).Return(expectedIncidents, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents?page=1&pageSize=10", nil, bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, expectedIncidents[0].Title, resp[0].Title)
}

func TestListMyIncidents_UsesTokenEmail(t *testing.T) {
	_, deps, router := newTestHandler(t)
	reporter := testUser(models.RoleCitizen)

	deps.incidents.EXPECT().ListMyIncidents(gomock.Any(), reporter.Email).Return([]*models.Incident{}, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents/my", nil, bearer(t, deps, reporter))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListPendingIncidents_ForbiddenForCitizen(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.incidents.EXPECT().ListPendingIncidents(gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents/pending", nil, bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient permissions")
}

func TestListPendingIncidents_Police(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.incidents.EXPECT().ListPendingIncidents(gomock.Any()).Return([]*models.Incident{{ID: uuid.New()}}, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents/pending", nil, bearer(t, deps, testUser(models.RolePolice)))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListIncidentsInBounds(t *testing.T) {
	_, deps, router := newTestHandler(t)
	expected := models.Bounds{MinLat: 1.5, MaxLat: 2.5, MinLon: -10, MaxLon: 10}

	deps.incidents.EXPECT().ListIncidentsInBounds(gomock.Any(), expected).Return([]*models.Incident{}, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents/bounds?minLat=1.5&maxLat=2.5&minLon=-10&maxLon=10", nil, bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListIncidentsInBounds_InvalidQuery(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.incidents.EXPECT().ListIncidentsInBounds(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents/bounds?minLat=north", nil, bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid minLat")
}

func TestUpdateIncidentStatus_Success(t *testing.T) {
	_, deps, router := newTestHandler(t)
	officer := testUser(models.RolePolice)
	incidentID := uuid.New()
	resolvedAt := time.Now().UTC()
	notes := "handled"

	deps.incidents.EXPECT().
		UpdateStatus(gomock.Any(), incidentID, models.StatusResolved, gomock.Any(), officer.Email).
		DoAndReturn(func(_ context.Context, id uuid.UUID, status models.Status, n *string, _ string) (*models.Incident, error) {
			require.NotNil(t, n)
			assert.Equal(t, notes, *n)
			return &models.Incident{ID: id, Status: status, OfficerNotes: n, ResolvedAt: &resolvedAt}, nil
		}).Times(1)

	w := makeRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/incidents/%s/status", incidentID),
		jsonBody(t, UpdateStatusRequest{Status: "RESOLVED", Notes: &notes}), bearer(t, deps, officer))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RESOLVED", resp.Status)
	require.NotNil(t, resp.ResolvedAt)
	assert.Equal(t, "handled", *resp.OfficerNotes)
}

func TestUpdateIncidentStatus_CaseSensitive(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.incidents.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/incidents/%s/status", uuid.New()),
		jsonBody(t, UpdateStatusRequest{Status: "resolved"}), bearer(t, deps, testUser(models.RolePolice)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid status")
}

func TestUpdateIncidentStatus_ForbiddenForCitizen(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.incidents.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/incidents/%s/status", uuid.New()),
		jsonBody(t, UpdateStatusRequest{Status: "CLOSED"}), bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateIncidentStatus_NotFound(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.incidents.EXPECT().
		UpdateStatus(gomock.Any(), gomock.Any(), models.StatusClosed, gomock.Nil(), gomock.Any()).
		Return(nil, fmt.Errorf("service: %w", service.ErrNotFound))

	w := makeRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/incidents/%s/status", uuid.New()),
		jsonBody(t, UpdateStatusRequest{Status: "CLOSED"}), bearer(t, deps, testUser(models.RoleWatch)))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignIncident_Success(t *testing.T) {
	_, deps, router := newTestHandler(t)
	dispatcher := testUser(models.RoleNGO)
	incidentID := uuid.New()
	officerID := uuid.New()

	deps.incidents.EXPECT().
		AssignIncident(gomock.Any(), incidentID, officerID, dispatcher.Email).
		Return(&models.Incident{ID: incidentID, Status: models.StatusAssigned, AssignedOfficerID: &officerID}, nil).
		Times(1)

	w := makeRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/incidents/%s/assign", incidentID),
		jsonBody(t, AssignIncidentRequest{OfficerID: officerID.String()}), bearer(t, deps, dispatcher))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ASSIGNED", resp.Status)
	assert.Equal(t, officerID, *resp.AssignedOfficerID)
}

func TestAssignIncident_InvalidOfficerID(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.incidents.EXPECT().AssignIncident(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/incidents/%s/assign", uuid.New()),
		jsonBody(t, AssignIncidentRequest{OfficerID: "officer-1"}), bearer(t, deps, testUser(models.RolePolice)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListIncidentUpdates(t *testing.T) {
	_, deps, router := newTestHandler(t)
	incidentID := uuid.New()
	status := models.StatusResolved

	deps.incidents.EXPECT().ListIncidentUpdates(gomock.Any(), incidentID).Return([]*models.IncidentUpdate{
		{ID: uuid.New(), IncidentID: incidentID, Message: "handled", NewStatus: &status},
	}, nil)

	w := makeRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/incidents/%s/updates", incidentID), nil, bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentUpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "RESOLVED", *resp[0].NewStatus)
}

func TestListNotifications_UnreadOnly(t *testing.T) {
	_, deps, router := newTestHandler(t)
	user := testUser(models.RoleCitizen)

	deps.notifications.EXPECT().
		ListNotifications(gomock.Any(), user.Email, true).
		Return([]*models.Notification{{ID: uuid.New(), Type: models.NotificationIncidentUpdated}}, nil).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/notifications?unreadOnly=true", nil, bearer(t, deps, user))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "INCIDENT_UPDATED")
}

func TestUnreadCount(t *testing.T) {
	_, deps, router := newTestHandler(t)
	user := testUser(models.RoleCitizen)

	deps.notifications.EXPECT().UnreadCount(gomock.Any(), user.Email).Return(int64(3), nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/notifications/unread-count", nil, bearer(t, deps, user))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":3}`, w.Body.String())
}

func TestMarkNotificationUnread(t *testing.T) {
	_, deps, router := newTestHandler(t)
	user := testUser(models.RoleCitizen)
	id := uuid.New()

	deps.notifications.EXPECT().MarkRead(gomock.Any(), user.Email, id, false).Return(&models.Notification{ID: id, Read: false}, nil)

	w := makeRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/notifications/%s/unread", id), nil, bearer(t, deps, user))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMarkNotificationRead_Forbidden(t *testing.T) {
	_, deps, router := newTestHandler(t)
	user := testUser(models.RoleCitizen)
	id := uuid.New()

	deps.notifications.EXPECT().
		MarkRead(gomock.Any(), user.Email, id, true).
		Return(nil, fmt.Errorf("service: notification belongs to another user: %w", service.ErrForbidden))

	w := makeRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/notifications/%s/read", id), nil, bearer(t, deps, user))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegister_Success(t *testing.T) {
	_, deps, router := newTestHandler(t)
	user := testUser(models.RoleCitizen)

	deps.auth.EXPECT().
		Register(gomock.Any(), service.RegisterInput{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Password: "s3cret-pass",
			Role:     models.RoleCitizen,
		}).
		Return(&service.AuthResult{Token: "signed", User: user}, nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/auth/register", jsonBody(t, RegisterRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "s3cret-pass",
		Role:     "CITIZEN",
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed", resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestRegister_Conflict(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("service: %w", service.ErrConflict))

	w := makeRequest(router, http.MethodPost, "/api/v1/auth/register", jsonBody(t, RegisterRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "s3cret-pass",
		Role:     "POLICE",
	}))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.auth.EXPECT().Login(gomock.Any(), "jane@example.com", "wrong").Return(nil, fmt.Errorf("service: %w", service.ErrUnauthorized))

	w := makeRequest(router, http.MethodPost, "/api/v1/auth/login", jsonBody(t, LoginRequest{Email: "jane@example.com", Password: "wrong"}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestUpdatePushToken(t *testing.T) {
	_, deps, router := newTestHandler(t)
	user := testUser(models.RolePolice)

	deps.auth.EXPECT().UpdatePushToken(gomock.Any(), user.Email, "device-1").Return(nil).Times(1)

	w := makeRequest(router, http.MethodPut, "/api/v1/auth/push-token", jsonBody(t, PushTokenRequest{Token: "device-1"}), bearer(t, deps, user))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestTrackEvent_Anonymous(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.dashboard.EXPECT().
		TrackEvent(gomock.Any(), gomock.Any(), "").
		Do(func(_ context.Context, event *models.AnalyticsEvent, _ string) {
			assert.Equal(t, "open_map", event.EventType)
		}).Return(nil).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/analytics/track", jsonBody(t, TrackEventRequest{EventType: "open_map"}))

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestTrackEvent_Authenticated(t *testing.T) {
	_, deps, router := newTestHandler(t)
	user := testUser(models.RoleCitizen)

	deps.dashboard.EXPECT().TrackEvent(gomock.Any(), gomock.Any(), user.Email).Return(nil).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/analytics/track", jsonBody(t, TrackEventRequest{EventType: "view_incident"}), bearer(t, deps, user))

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestGetDashboard(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.dashboard.EXPECT().Stats(gomock.Any()).Return(&models.DashboardStats{
		TotalUsers:          4,
		TotalIncidents:      9,
		IncidentsByCategory: map[models.Category]int64{models.CategoryFire: 2},
	}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/analytics/dashboard", nil, bearer(t, deps, testUser(models.RoleWatch)))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(9), resp.TotalIncidents)
	assert.Equal(t, int64(2), resp.IncidentsByCategory["FIRE"])
}

func TestGetDashboard_ForbiddenForCitizen(t *testing.T) {
	_, deps, router := newTestHandler(t)

	deps.dashboard.EXPECT().Stats(gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodGet, "/api/v1/analytics/dashboard", nil, bearer(t, deps, testUser(models.RoleCitizen)))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStreamNotifications_WritesEvents(t *testing.T) {
	_, deps, router := newTestHandler(t)
	user := testUser(models.RoleCitizen)
	deps.feed.events = []feed.Event{
		{Type: feed.EventNotification, Payload: json.RawMessage(`{"title":"Incident Updated"}`)},
	}
	token, err := deps.tokens.Issue(user)
	require.NoError(t, err)

	// Токен передается параметром, как это делает EventSource
	w := makeRequest(router, http.MethodGet, "/api/v1/feed/notifications?token="+token, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, feed.UserNotificationsTopic(user.ID), deps.feed.topic)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream"))
	assert.Contains(t, w.Body.String(), "event:notification")
	assert.Contains(t, w.Body.String(), `"title":"Incident Updated"`)
}

func TestStreamIncident_SubscribeError(t *testing.T) {
	_, deps, router := newTestHandler(t)
	deps.feed.err = errors.New("redis down")
	incidentID := uuid.New()

	w := makeRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/feed/incidents/%s", incidentID), nil, bearer(t, deps, testUser(models.RolePolice)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, feed.IncidentTopic(incidentID), deps.feed.topic)
}
