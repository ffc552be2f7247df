package notifications

import (
	"context"
	"errors"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/timetable"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockFriendRepository struct {
	mock.Mock
}

func (m *MockFriendRepository) ListByOwner(ctx context.Context, ownerUID string) ([]models.Friend, error) {
	args := m.Called(ctx, ownerUID)
	friends, _ := args.Get(0).([]models.Friend)
	return friends, args.Error(1)
}

func (m *MockFriendRepository) IsFriend(ctx context.Context, ownerUID, uid string) (bool, error) {
	args := m.Called(ctx, ownerUID, uid)
	return args.Bool(0), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, uids []string) (map[string]*models.User, error) {
	args := m.Called(ctx, uids)
	users, _ := args.Get(0).(map[string]*models.User)
	return users, args.Error(1)
}

type MockPushPublisher struct {
	mock.Mock
}

func (m *MockPushPublisher) Publish(ctx context.Context, message *models.PushMessage) error {
	return m.Called(ctx, message).Error(0)
}

var slotThree = timetable.ResolvedSlot{Weekday: "Monday", Ordinal: 3}

func monday(status string) timetable.WeeklySchedule {
	return timetable.WeeklySchedule{"Monday": {"3": status}}
}

func disabled() *bool {
	off := false
	return &off
}

func TestBecameFree(t *testing.T) {
	cases := []struct {
		name     string
		previous timetable.WeeklySchedule
		current  timetable.WeeklySchedule
		resolved timetable.ResolvedSlot
		expected bool
	}{
		{"busy to free", monday("BUSY"), monday("FREE"), slotThree, true},
		{"free to free", monday("FREE"), monday("FREE"), slotThree, false},
		{"never saved to free", nil, monday("FREE"), slotThree, false},
		{"busy to busy", monday("BUSY"), monday("BUSY"), slotThree, false},
		{"other slot changed", timetable.WeeklySchedule{"Monday": {"4": "BUSY"}}, timetable.WeeklySchedule{"Monday": {"4": "FREE"}}, slotThree, false},
		{"no running slot", monday("BUSY"), monday("FREE"), timetable.ResolvedSlot{Weekday: "Monday", IsBeforeFirst: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, becameFree(tc.previous, tc.current, tc.resolved))
		})
	}
}

func TestNotificationUsecase_NotifyFriendFree(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes to friends that accept notifications", func(t *testing.T) {
		friends := new(MockFriendRepository)
		users := new(MockUserRepository)
		publisher := new(MockPushPublisher)

		friends.On("ListByOwner", ctx, "u1").Return([]models.Friend{{UID: "f1"}, {UID: "f2"}, {UID: "f3"}, {UID: "f4"}}, nil)
		users.On("FindByID", ctx, "u1").Return(&models.User{UID: "u1", Name: "Asha"}, nil)
		users.On("FindByIDs", ctx, []string{"f1", "f2", "f3", "f4"}).Return(map[string]*models.User{
			"f1": {UID: "f1", FCMToken: "token-1"},
			"f2": {UID: "f2"},
			"f3": {UID: "f3", FCMToken: "token-3", NotificationsEnabled: disabled()},
		}, nil)
		publisher.On("Publish", ctx, &models.PushMessage{
			Token: "token-1",
			Notification: models.PushNotification{
				Title: "Asha is Free Now!",
				Body:  "Asha is free during slot 3. Catch up!",
			},
			Data: map[string]string{"type": "friend_free", "friendUid": "u1", "slot": "3"},
		}).Return(nil).Once()

		uc := NewNotificationUsecase(friends, users, publisher, zap.NewNop())
		sent, err := uc.NotifyFriendFree(ctx, "u1", monday("BUSY"), monday("FREE"), slotThree)

		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		publisher.AssertExpectations(t)
	})

	t.Run("missing name falls back", func(t *testing.T) {
		friends := new(MockFriendRepository)
		users := new(MockUserRepository)
		publisher := new(MockPushPublisher)

		friends.On("ListByOwner", ctx, "u1").Return([]models.Friend{{UID: "f1"}}, nil)
		users.On("FindByID", ctx, "u1").Return(nil, nil)
		users.On("FindByIDs", ctx, []string{"f1"}).Return(map[string]*models.User{"f1": {UID: "f1", FCMToken: "t"}}, nil)
		publisher.On("Publish", ctx, mock.MatchedBy(func(message *models.PushMessage) bool {
			return message.Notification.Title == "Your friend is Free Now!"
		})).Return(nil)

		sent, err := NewNotificationUsecase(friends, users, publisher, zap.NewNop()).
			NotifyFriendFree(ctx, "u1", monday("BUSY"), monday("FREE"), slotThree)

		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("one failed publish does not stop the rest", func(t *testing.T) {
		friends := new(MockFriendRepository)
		users := new(MockUserRepository)
		publisher := new(MockPushPublisher)

		friends.On("ListByOwner", ctx, "u1").Return([]models.Friend{{UID: "f1"}, {UID: "f2"}}, nil)
		users.On("FindByID", ctx, "u1").Return(&models.User{Name: "Asha"}, nil)
		users.On("FindByIDs", ctx, []string{"f1", "f2"}).Return(map[string]*models.User{
			"f1": {UID: "f1", FCMToken: "bad"},
			"f2": {UID: "f2", FCMToken: "good"},
		}, nil)
		publisher.On("Publish", ctx, mock.MatchedBy(func(m *models.PushMessage) bool { return m.Token == "bad" })).Return(errors.New("broker down"))
		publisher.On("Publish", ctx, mock.MatchedBy(func(m *models.PushMessage) bool { return m.Token == "good" })).Return(nil)

		sent, err := NewNotificationUsecase(friends, users, publisher, zap.NewNop()).
			NotifyFriendFree(ctx, "u1", monday("BUSY"), monday("FREE"), slotThree)

		assert.Error(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("no transition touches nothing", func(t *testing.T) {
		friends := new(MockFriendRepository)
		users := new(MockUserRepository)
		publisher := new(MockPushPublisher)

		sent, err := NewNotificationUsecase(friends, users, publisher, zap.NewNop()).
			NotifyFriendFree(ctx, "u1", monday("FREE"), monday("FREE"), slotThree)

		require.NoError(t, err)
		assert.Zero(t, sent)
		friends.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
	})
}
