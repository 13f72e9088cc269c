package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/push"
	"github.com/shenikar/incident_reporting_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// passthroughTx выполняет fn без транзакции
type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type incidentTestDeps struct {
	incidents     *mocks.MockIncidentRepository
	updates       *mocks.MockIncidentUpdateRepository
	users         *mocks.MockUserRepository
	notifications *mocks.MockNotificationRepository
	feed          *mocks.MockLiveFeed
	push          *mocks.MockPushQueue
}

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

// newTestIncidentService - вспомогательная функция для создания инстанса сервиса с моками.
// Диспетчер уведомлений настоящий, моками закрыты только его зависимости.
func newTestIncidentService(t *testing.T) (*incidentService, incidentTestDeps) {
	ctrl := gomock.NewController(t)
	deps := incidentTestDeps{
		incidents:     mocks.NewMockIncidentRepository(ctrl),
		updates:       mocks.NewMockIncidentUpdateRepository(ctrl),
		users:         mocks.NewMockUserRepository(ctrl),
		notifications: mocks.NewMockNotificationRepository(ctrl),
		feed:          mocks.NewMockLiveFeed(ctrl),
		push:          mocks.NewMockPushQueue(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	notifier := NewNotificationService(deps.notifications, deps.users, deps.feed, deps.push, logger)
	svc := NewIncidentService(passthroughTx{}, deps.incidents, deps.updates, deps.users, notifier, deps.feed, logger)
	impl := svc.(*incidentService)
	impl.now = func() time.Time { return fixedNow }
	return impl, deps
}

func newUser(name string, role models.Role) *models.User {
	return &models.User{
		ID:       uuid.New(),
		FullName: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Role:     role,
		Active:   true,
	}
}

func strPtr(s string) *string { return &s }

// expectStoredNotifications ожидает ровно count сохраненных уведомлений
// и возвращает указатель на собранный список
func expectStoredNotifications(deps incidentTestDeps, count int) *[]*models.Notification {
	stored := make([]*models.Notification, 0, count)
	deps.notifications.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Notification) error {
			n.ID = uuid.New()
			stored = append(stored, n)
			return nil
		}).Times(count)
	return &stored
}

func TestCreateIncident_Success_NotifiesEveryPoliceOfficer(t *testing.T) {
	// Подготовка
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	reporter := newUser("reporter", models.RoleCitizen)
	officerA := newUser("officer_a", models.RolePolice)
	officerB := newUser("officer_b", models.RolePolice)
	officerB.PushToken = strPtr("device-b")
	incident := &models.Incident{
		Title:     "House on fire",
		Category:  models.CategoryFire,
		Latitude:  10.0,
		Longitude: 20.0,
	}

	// Ожидания
	deps.users.EXPECT().GetByEmail(ctx, reporter.Email).Return(reporter, nil).Times(1)
	deps.incidents.EXPECT().
		Create(ctx, incident).
		DoAndReturn(func(_ context.Context, inc *models.Incident) error {
			// Симулируем, что БД присвоила ID
			inc.ID = uuid.New()
			inc.CreatedAt = fixedNow
			inc.UpdatedAt = fixedNow
			return nil
		}).Times(1)
	deps.users.EXPECT().ListActiveByRole(ctx, models.RolePolice).Return([]*models.User{officerA, officerB}, nil).Times(1)
	stored := expectStoredNotifications(deps, 2)
	deps.feed.EXPECT().PublishNotification(ctx, officerA.ID, gomock.Any()).Return(nil).Times(1)
	deps.feed.EXPECT().PublishNotification(ctx, officerB.ID, gomock.Any()).Return(nil).Times(1)
	deps.push.EXPECT().
		Enqueue(ctx, gomock.Any()).
		Do(func(_ context.Context, msg push.Message) {
			assert.Equal(t, "device-b", msg.Token)
			assert.Equal(t, "New Incident Reported", msg.Title)
			assert.Equal(t, incident.ID.String(), msg.Data["incident_id"])
		}).Return(nil).Times(1)
	deps.feed.EXPECT().PublishIncidentCreated(ctx, incident).Return(nil).Times(1)

	// Действие
	err := service.CreateIncident(ctx, incident, reporter.Email)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, incident.Status)
	assert.Equal(t, models.PriorityHigh, incident.Priority)
	assert.Equal(t, reporter.ID, incident.ReporterID)
	assert.Equal(t, reporter.FullName, incident.ReporterName)
	assert.Nil(t, incident.AssignedOfficerID)
	assert.Nil(t, incident.ResolvedAt)

	require.Len(t, *stored, 2)
	recipients := []uuid.UUID{(*stored)[0].UserID, (*stored)[1].UserID}
	assert.ElementsMatch(t, []uuid.UUID{officerA.ID, officerB.ID}, recipients)
	for _, n := range *stored {
		assert.Equal(t, models.NotificationIncidentCreated, n.Type)
		assert.False(t, n.Read)
		assert.Equal(t, "House on fire - FIRE", n.Message)
		require.NotNil(t, n.RelatedIncidentID)
		assert.Equal(t, incident.ID, *n.RelatedIncidentID)
	}
}

func TestCreateIncident_PriorityByCategory(t *testing.T) {
	cases := map[models.Category]models.Priority{
		models.CategoryFire:      models.PriorityHigh,
		models.CategoryTheft:     models.PriorityMedium,
		models.CategoryOther:     models.PriorityLow,
		models.CategoryVandalism: models.PriorityLow,
	}

	for category, expected := range cases {
		t.Run(string(category), func(t *testing.T) {
			service, deps := newTestIncidentService(t)
			ctx := context.Background()
			reporter := newUser("reporter", models.RoleCitizen)
			incident := &models.Incident{Title: "Report", Category: category, Latitude: 1, Longitude: 2}

			deps.users.EXPECT().GetByEmail(ctx, reporter.Email).Return(reporter, nil)
			deps.incidents.EXPECT().Create(ctx, incident).Return(nil)
			deps.users.EXPECT().ListActiveByRole(ctx, models.RolePolice).Return(nil, nil)
			deps.feed.EXPECT().PublishIncidentCreated(ctx, incident).Return(nil)

			err := service.CreateIncident(ctx, incident, reporter.Email)

			require.NoError(t, err)
			assert.Equal(t, expected, incident.Priority)
		})
	}
}

func TestCreateIncident_ReporterNotFound(t *testing.T) {
	// Подготовка
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{Title: "Lost bike", Category: models.CategoryTheft}

	// Ожидания
	deps.users.EXPECT().
		GetByEmail(ctx, "ghost@example.com").
		Return(nil, fmt.Errorf("user with email ghost@example.com: %w", ErrNotFound)).
		Times(1)
	deps.incidents.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
	deps.feed.EXPECT().PublishIncidentCreated(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.CreateIncident(ctx, incident, "ghost@example.com")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateIncident_InvalidCategory(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Times(0)

	err := service.CreateIncident(ctx, &models.Incident{Title: "x", Category: "fire"}, "a@example.com")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateIncident_PushFailureDoesNotFailOperation(t *testing.T) {
	// Подготовка
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	reporter := newUser("reporter", models.RoleCitizen)
	officer := newUser("officer", models.RolePolice)
	officer.PushToken = strPtr("device-token")
	incident := &models.Incident{Title: "Break-in", Category: models.CategoryTheft}

	// Ожидания
	deps.users.EXPECT().GetByEmail(ctx, reporter.Email).Return(reporter, nil)
	deps.incidents.EXPECT().Create(ctx, incident).Return(nil)
	deps.users.EXPECT().ListActiveByRole(ctx, models.RolePolice).Return([]*models.User{officer}, nil)
	stored := expectStoredNotifications(deps, 1)
	deps.feed.EXPECT().PublishNotification(ctx, officer.ID, gomock.Any()).Return(nil)
	// Провайдер недоступен
	deps.push.EXPECT().Enqueue(ctx, gomock.Any()).Return(errors.New("push provider unavailable")).Times(1)
	deps.feed.EXPECT().PublishIncidentCreated(ctx, incident).Return(nil)

	// Действие
	err := service.CreateIncident(ctx, incident, reporter.Email)

	// Проверки
	require.NoError(t, err)
	require.Len(t, *stored, 1)
	assert.Equal(t, officer.ID, (*stored)[0].UserID)
}

func TestCreateIncident_LiveFeedFailureDoesNotFailOperation(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	reporter := newUser("reporter", models.RoleCitizen)
	incident := &models.Incident{Title: "Crash", Category: models.CategoryTraffic}

	deps.users.EXPECT().GetByEmail(ctx, reporter.Email).Return(reporter, nil)
	deps.incidents.EXPECT().Create(ctx, incident).Return(nil)
	deps.users.EXPECT().ListActiveByRole(ctx, models.RolePolice).Return(nil, nil)
	deps.feed.EXPECT().PublishIncidentCreated(ctx, incident).Return(errors.New("redis down"))

	err := service.CreateIncident(ctx, incident, reporter.Email)

	require.NoError(t, err)
}

func TestCreateIncident_NotificationStoreFailureAbortsBeforePublish(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	reporter := newUser("reporter", models.RoleCitizen)
	officer := newUser("officer", models.RolePolice)
	incident := &models.Incident{Title: "Fight", Category: models.CategoryAssault}

	deps.users.EXPECT().GetByEmail(ctx, reporter.Email).Return(reporter, nil)
	deps.incidents.EXPECT().Create(ctx, incident).Return(nil)
	deps.users.EXPECT().ListActiveByRole(ctx, models.RolePolice).Return([]*models.User{officer}, nil)
	deps.notifications.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("insert failed"))
	// Публикации после фиксации не происходит
	deps.feed.EXPECT().PublishNotification(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	deps.feed.EXPECT().PublishIncidentCreated(gomock.Any(), gomock.Any()).Times(0)

	err := service.CreateIncident(ctx, incident, reporter.Email)

	require.Error(t, err)
	assert.ErrorContains(t, err, "could not create notification")
}

func TestCreateThenResolve_Scenario(t *testing.T) {
	// Подготовка
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	reporter := newUser("reporter", models.RoleCitizen)
	officer := newUser("officer", models.RolePolice)
	incident := &models.Incident{
		Title:     "Person collapsed",
		Category:  models.CategoryMedical,
		Latitude:  10.0,
		Longitude: 20.0,
	}

	// Создание
	deps.users.EXPECT().GetByEmail(ctx, reporter.Email).Return(reporter, nil)
	deps.incidents.EXPECT().Create(ctx, incident).DoAndReturn(func(_ context.Context, inc *models.Incident) error {
		inc.ID = uuid.New()
		return nil
	})
	deps.users.EXPECT().ListActiveByRole(ctx, models.RolePolice).Return(nil, nil)
	deps.feed.EXPECT().PublishIncidentCreated(ctx, incident).Return(nil)

	require.NoError(t, service.CreateIncident(ctx, incident, reporter.Email))
	assert.Equal(t, models.StatusPending, incident.Status)
	assert.Equal(t, models.PriorityHigh, incident.Priority)
	assert.Nil(t, incident.ResolvedAt)

	// Решение
	var audit []*models.IncidentUpdate
	deps.incidents.EXPECT().GetByID(ctx, incident.ID).Return(incident, nil)
	deps.users.EXPECT().GetByEmail(ctx, officer.Email).Return(officer, nil)
	deps.users.EXPECT().GetByID(ctx, reporter.ID).Return(reporter, nil)
	deps.incidents.EXPECT().Update(ctx, incident).Return(nil).Times(1)
	deps.updates.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.IncidentUpdate) error {
			audit = append(audit, u)
			return nil
		}).Times(1)
	stored := expectStoredNotifications(deps, 1)
	deps.feed.EXPECT().PublishNotification(ctx, reporter.ID, gomock.Any()).Return(nil)
	deps.feed.EXPECT().PublishIncidentChanged(ctx, incident).Return(nil).Times(1)

	updated, err := service.UpdateStatus(ctx, incident.ID, models.StatusResolved, strPtr("handled"), officer.Email)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, updated.Status)
	require.NotNil(t, updated.ResolvedAt)
	assert.True(t, fixedNow.Equal(*updated.ResolvedAt))
	require.NotNil(t, updated.OfficerNotes)
	assert.Equal(t, "handled", *updated.OfficerNotes)

	require.Len(t, audit, 1)
	assert.Equal(t, incident.ID, audit[0].IncidentID)
	assert.Equal(t, officer.ID, audit[0].UserID)
	assert.Equal(t, "handled", audit[0].Message)
	require.NotNil(t, audit[0].NewStatus)
	assert.Equal(t, models.StatusResolved, *audit[0].NewStatus)

	require.Len(t, *stored, 1)
	assert.Equal(t, reporter.ID, (*stored)[0].UserID)
	assert.Equal(t, models.NotificationIncidentUpdated, (*stored)[0].Type)
	assert.Equal(t, "Your incident 'Person collapsed' has been updated", (*stored)[0].Message)
}

func TestUpdateStatus_WithoutNotes(t *testing.T) {
	// Подготовка
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	reporter := newUser("reporter", models.RoleCitizen)
	officer := newUser("officer", models.RolePolice)
	existing := &models.Incident{
		ID:           uuid.New(),
		Title:        "Graffiti",
		ReporterID:   reporter.ID,
		Status:       models.StatusAssigned,
		OfficerNotes: strPtr("earlier note"),
	}

	// Ожидания
	deps.incidents.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
	deps.users.EXPECT().GetByEmail(ctx, officer.Email).Return(officer, nil)
	deps.users.EXPECT().GetByID(ctx, reporter.ID).Return(reporter, nil)
	deps.incidents.EXPECT().Update(ctx, existing).Return(nil)
	deps.updates.EXPECT().
		Create(ctx, gomock.Any()).
		Do(func(_ context.Context, u *models.IncidentUpdate) {
			assert.Equal(t, "Status updated to IN_PROGRESS", u.Message)
			assert.Equal(t, models.StatusInProgress, *u.NewStatus)
		}).Return(nil)
	expectStoredNotifications(deps, 1)
	deps.feed.EXPECT().PublishNotification(ctx, reporter.ID, gomock.Any()).Return(nil)
	deps.feed.EXPECT().PublishIncidentChanged(ctx, existing).Return(nil)

	// Действие
	updated, err := service.UpdateStatus(ctx, existing.ID, models.StatusInProgress, nil, officer.Email)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Nil(t, updated.ResolvedAt)
	assert.Equal(t, "earlier note", *updated.OfficerNotes)
}

func TestUpdateStatus_ResolvedAtNotClearedWhenReopened(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	reporter := newUser("reporter", models.RoleCitizen)
	officer := newUser("officer", models.RolePolice)
	resolvedAt := fixedNow.Add(-time.Hour)
	existing := &models.Incident{
		ID:         uuid.New(),
		Title:      "Stolen car",
		ReporterID: reporter.ID,
		Status:     models.StatusResolved,
		ResolvedAt: &resolvedAt,
	}

	deps.incidents.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
	deps.users.EXPECT().GetByEmail(ctx, officer.Email).Return(officer, nil)
	deps.users.EXPECT().GetByID(ctx, reporter.ID).Return(reporter, nil)
	deps.incidents.EXPECT().Update(ctx, existing).Return(nil)
	deps.updates.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	expectStoredNotifications(deps, 1)
	deps.feed.EXPECT().PublishNotification(ctx, reporter.ID, gomock.Any()).Return(nil)
	deps.feed.EXPECT().PublishIncidentChanged(ctx, existing).Return(nil)

	updated, err := service.UpdateStatus(ctx, existing.ID, models.StatusInProgress, nil, officer.Email)

	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	require.NotNil(t, updated.ResolvedAt)
	assert.True(t, resolvedAt.Equal(*updated.ResolvedAt))
}

func TestUpdateStatus_AnyToAnyTransition(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	reporter := newUser("reporter", models.RoleCitizen)
	officer := newUser("officer", models.RoleWatch)
	existing := &models.Incident{ID: uuid.New(), Title: "Noise", ReporterID: reporter.ID, Status: models.StatusRejected}

	deps.incidents.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
	deps.users.EXPECT().GetByEmail(ctx, officer.Email).Return(officer, nil)
	deps.users.EXPECT().GetByID(ctx, reporter.ID).Return(reporter, nil)
	deps.incidents.EXPECT().Update(ctx, existing).Return(nil)
	deps.updates.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	expectStoredNotifications(deps, 1)
	deps.feed.EXPECT().PublishNotification(ctx, reporter.ID, gomock.Any()).Return(nil)
	deps.feed.EXPECT().PublishIncidentChanged(ctx, existing).Return(nil)

	updated, err := service.UpdateStatus(ctx, existing.ID, models.StatusPending, nil, officer.Email)

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.incidents.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)
	deps.incidents.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.UpdateStatus(ctx, uuid.New(), models.Status("resolved"), nil, "officer@example.com")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatus_IncidentNotFound(t *testing.T) {
	// Подготовка
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	// Ожидания
	deps.incidents.EXPECT().
		GetByID(ctx, incidentID).
		Return(nil, fmt.Errorf("incident with id %s: %w", incidentID, ErrNotFound))
	deps.incidents.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
	deps.updates.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, err := service.UpdateStatus(ctx, incidentID, models.StatusClosed, nil, "officer@example.com")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "not found for status update")
}

func TestUpdateStatus_ActorNotFound(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	existing := &models.Incident{ID: uuid.New(), Status: models.StatusPending}

	deps.incidents.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
	deps.users.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, ErrNotFound)
	deps.incidents.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.UpdateStatus(ctx, existing.ID, models.StatusClosed, nil, "ghost@example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, models.StatusPending, existing.Status)
}

func TestAssignIncident_Success(t *testing.T) {
	// Подготовка
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	officer := newUser("officer", models.RolePolice)
	officer.PushToken = strPtr("officer-device")
	existing := &models.Incident{
		ID:     uuid.New(),
		Title:  "Suspicious van",
		Status: models.StatusInProgress,
	}

	// Ожидания
	deps.incidents.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
	deps.users.EXPECT().GetByID(ctx, officer.ID).Return(officer, nil)
	deps.incidents.EXPECT().
		Update(ctx, existing).
		Do(func(_ context.Context, inc *models.Incident) {
			assert.Equal(t, models.StatusAssigned, inc.Status)
			assert.Equal(t, officer.ID, *inc.AssignedOfficerID)
		}).Return(nil).Times(1)
	// Назначение не пишет запись в журнал
	deps.updates.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
	stored := expectStoredNotifications(deps, 1)
	deps.feed.EXPECT().PublishNotification(ctx, officer.ID, gomock.Any()).Return(nil).Times(1)
	deps.push.EXPECT().
		Enqueue(ctx, gomock.Any()).
		Do(func(_ context.Context, msg push.Message) {
			assert.Equal(t, "officer-device", msg.Token)
			assert.Equal(t, "You have been assigned to: Suspicious van", msg.Body)
		}).Return(nil).Times(1)
	deps.feed.EXPECT().PublishIncidentChanged(ctx, existing).Return(nil).Times(1)

	// Действие
	updated, err := service.AssignIncident(ctx, existing.ID, officer.ID, "dispatcher@example.com")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, updated.Status)
	require.NotNil(t, updated.AssignedOfficerName)
	assert.Equal(t, officer.FullName, *updated.AssignedOfficerName)
	require.Len(t, *stored, 1)
	assert.Equal(t, officer.ID, (*stored)[0].UserID)
	assert.Equal(t, models.NotificationIncidentAssigned, (*stored)[0].Type)
}

func TestAssignIncident_OfficerNotFound(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	existing := &models.Incident{ID: uuid.New(), Status: models.StatusPending}
	officerID := uuid.New()

	deps.incidents.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
	deps.users.EXPECT().GetByID(ctx, officerID).Return(nil, fmt.Errorf("user with id %s: %w", officerID, ErrNotFound))
	deps.incidents.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
	deps.feed.EXPECT().PublishIncidentChanged(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.AssignIncident(ctx, existing.ID, officerID, "dispatcher@example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, existing.AssignedOfficerID)
}

func TestAssignIncident_IncidentNotFound(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	deps.incidents.EXPECT().GetByID(ctx, incidentID).Return(nil, ErrNotFound)
	deps.users.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.AssignIncident(ctx, incidentID, uuid.New(), "dispatcher@example.com")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetIncident_NotFound(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	deps.incidents.EXPECT().GetByID(ctx, incidentID).Return(nil, ErrNotFound).Times(1)

	incident, err := service.GetIncident(ctx, incidentID)

	require.Error(t, err)
	assert.Nil(t, incident)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "could not get incident")
}

func TestListIncidents_DefaultsPagination(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	expected := []*models.Incident{{ID: uuid.New(), Title: "Инцидент 1"}}

	deps.incidents.EXPECT().ListIncidents(ctx, 1, 20).Return(expected, nil).Times(1)

	incidents, err := service.ListIncidents(ctx, 0, 500)

	require.NoError(t, err)
	assert.Equal(t, expected, incidents)
}

func TestListMyIncidents(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	reporter := newUser("reporter", models.RoleCitizen)
	expected := []*models.Incident{{ID: uuid.New(), ReporterID: reporter.ID}}

	deps.users.EXPECT().GetByEmail(ctx, reporter.Email).Return(reporter, nil)
	deps.incidents.EXPECT().ListByReporter(ctx, reporter.ID).Return(expected, nil)

	incidents, err := service.ListMyIncidents(ctx, reporter.Email)

	require.NoError(t, err)
	assert.Equal(t, expected, incidents)
}

func TestListAssignedIncidents(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	officer := newUser("officer", models.RolePolice)

	deps.users.EXPECT().GetByEmail(ctx, officer.Email).Return(officer, nil)
	deps.incidents.EXPECT().ListByAssignedOfficer(ctx, officer.ID).Return([]*models.Incident{}, nil)

	incidents, err := service.ListAssignedIncidents(ctx, officer.Email)

	require.NoError(t, err)
	assert.Empty(t, incidents)
}

func TestListPendingIncidents(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.incidents.EXPECT().ListByStatus(ctx, models.StatusPending).Return(nil, errors.New("db down"))

	_, err := service.ListPendingIncidents(ctx)

	assert.ErrorContains(t, err, "could not list pending incidents")
}

func TestListIncidentsInBounds_Inverted(t *testing.T) {
	service, deps := newTestIncidentService(t)

	deps.incidents.EXPECT().ListInBounds(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.ListIncidentsInBounds(context.Background(), models.Bounds{MinLat: 10, MaxLat: 5, MinLon: 0, MaxLon: 1})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestListIncidentUpdates(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expected := []*models.IncidentUpdate{{ID: uuid.New(), IncidentID: incidentID, Message: "handled"}}

	deps.incidents.EXPECT().GetByID(ctx, incidentID).Return(&models.Incident{ID: incidentID}, nil)
	deps.updates.EXPECT().ListByIncident(ctx, incidentID).Return(expected, nil)

	updates, err := service.ListIncidentUpdates(ctx, incidentID)

	require.NoError(t, err)
	assert.Equal(t, expected, updates)
}
