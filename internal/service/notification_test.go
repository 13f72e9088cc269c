package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type notificationTestDeps struct {
	repo  *mocks.MockNotificationRepository
	users *mocks.MockUserRepository
	feed  *mocks.MockLiveFeed
	push  *mocks.MockPushQueue
}

func newTestNotificationService(t *testing.T) (NotificationService, notificationTestDeps) {
	ctrl := gomock.NewController(t)
	deps := notificationTestDeps{
		repo:  mocks.NewMockNotificationRepository(ctrl),
		users: mocks.NewMockUserRepository(ctrl),
		feed:  mocks.NewMockLiveFeed(ctrl),
		push:  mocks.NewMockPushQueue(ctrl),
	}
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewNotificationService(deps.repo, deps.users, deps.feed, deps.push, logger), deps
}

func TestNotifyIncidentCreated_NoRecipients(t *testing.T) {
	service, deps := newTestNotificationService(t)

	deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	dispatches, err := service.NotifyIncidentCreated(context.Background(), &models.Incident{ID: uuid.New()}, nil)

	require.NoError(t, err)
	assert.Empty(t, dispatches)
}

func TestDeliver_SkipsPushWithoutToken(t *testing.T) {
	// Подготовка
	service, deps := newTestNotificationService(t)
	ctx := context.Background()
	withToken := newUser("with_token", models.RolePolice)
	withToken.PushToken = strPtr("device")
	emptyToken := newUser("empty_token", models.RolePolice)
	emptyToken.PushToken = strPtr("")
	noToken := newUser("no_token", models.RolePolice)

	dispatches := []Dispatch{
		{Recipient: withToken, Notification: &models.Notification{ID: uuid.New(), Title: "t", Message: "m"}},
		{Recipient: emptyToken, Notification: &models.Notification{ID: uuid.New(), Title: "t", Message: "m"}},
		{Recipient: noToken, Notification: &models.Notification{ID: uuid.New(), Title: "t", Message: "m"}},
	}

	// Ожидания
	deps.feed.EXPECT().PublishNotification(ctx, gomock.Any(), gomock.Any()).Return(nil).Times(3)
	deps.push.EXPECT().Enqueue(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	service.Deliver(ctx, dispatches)
}

func TestDeliver_FeedFailureStillEnqueuesPush(t *testing.T) {
	service, deps := newTestNotificationService(t)
	ctx := context.Background()
	user := newUser("officer", models.RolePolice)
	user.PushToken = strPtr("device")

	deps.feed.EXPECT().PublishNotification(ctx, user.ID, gomock.Any()).Return(errors.New("redis down"))
	deps.push.EXPECT().Enqueue(ctx, gomock.Any()).Return(nil).Times(1)

	service.Deliver(ctx, []Dispatch{{Recipient: user, Notification: &models.Notification{ID: uuid.New()}}})
}

func TestListNotifications_UnreadOnly(t *testing.T) {
	// Подготовка
	service, deps := newTestNotificationService(t)
	ctx := context.Background()
	user := newUser("citizen", models.RoleCitizen)
	expected := []*models.Notification{{ID: uuid.New(), UserID: user.ID}}

	// Ожидания
	deps.users.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)
	deps.repo.EXPECT().ListByUser(ctx, user.ID, true).Return(expected, nil).Times(1)

	// Действие
	notifications, err := service.ListNotifications(ctx, user.Email, true)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, notifications)
}

func TestListNotifications_UnknownUser(t *testing.T) {
	service, deps := newTestNotificationService(t)
	ctx := context.Background()

	deps.users.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, ErrNotFound)
	deps.repo.EXPECT().ListByUser(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := service.ListNotifications(ctx, "ghost@example.com", false)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnreadCount(t *testing.T) {
	service, deps := newTestNotificationService(t)
	ctx := context.Background()
	user := newUser("citizen", models.RoleCitizen)

	deps.users.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)
	deps.repo.EXPECT().CountUnread(ctx, user.ID).Return(int64(4), nil)

	count, err := service.UnreadCount(ctx, user.Email)

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestMarkRead_Success(t *testing.T) {
	// Подготовка
	service, deps := newTestNotificationService(t)
	ctx := context.Background()
	user := newUser("citizen", models.RoleCitizen)
	notification := &models.Notification{ID: uuid.New(), UserID: user.ID, Read: false}

	// Ожидания
	deps.users.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)
	deps.repo.EXPECT().GetByID(ctx, notification.ID).Return(notification, nil)
	deps.repo.EXPECT().SetRead(ctx, notification.ID, true).Return(nil).Times(1)

	// Действие
	updated, err := service.MarkRead(ctx, user.Email, notification.ID, true)

	// Проверки
	require.NoError(t, err)
	assert.True(t, updated.Read)
}

func TestMarkRead_BackToUnread(t *testing.T) {
	service, deps := newTestNotificationService(t)
	ctx := context.Background()
	user := newUser("citizen", models.RoleCitizen)
	notification := &models.Notification{ID: uuid.New(), UserID: user.ID, Read: true}

	deps.users.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)
	deps.repo.EXPECT().GetByID(ctx, notification.ID).Return(notification, nil)
	deps.repo.EXPECT().SetRead(ctx, notification.ID, false).Return(nil)

	updated, err := service.MarkRead(ctx, user.Email, notification.ID, false)

	require.NoError(t, err)
	assert.False(t, updated.Read)
}

func TestMarkRead_AnotherUsersNotification(t *testing.T) {
	// Подготовка
	service, deps := newTestNotificationService(t)
	ctx := context.Background()
	user := newUser("citizen", models.RoleCitizen)
	notification := &models.Notification{ID: uuid.New(), UserID: uuid.New()}

	// Ожидания
	deps.users.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)
	deps.repo.EXPECT().GetByID(ctx, notification.ID).Return(notification, nil)
	deps.repo.EXPECT().SetRead(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, err := service.MarkRead(ctx, user.Email, notification.ID, true)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMarkRead_NotFound(t *testing.T) {
	service, deps := newTestNotificationService(t)
	ctx := context.Background()
	user := newUser("citizen", models.RoleCitizen)
	id := uuid.New()

	deps.users.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)
	deps.repo.EXPECT().GetByID(ctx, id).Return(nil, ErrNotFound)

	_, err := service.MarkRead(ctx, user.Email, id, true)

	assert.ErrorIs(t, err, ErrNotFound)
}
