package slot

import (
	"context"
	"errors"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/timetable"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockTimetableRepository struct {
	mock.Mock
}

func (m *MockTimetableRepository) FindByUID(ctx context.Context, uid string) (*models.Timetable, error) {
	args := m.Called(ctx, uid)
	document, _ := args.Get(0).(*models.Timetable)
	return document, args.Error(1)
}

func (m *MockTimetableRepository) Replace(ctx context.Context, document *models.Timetable) error {
	return m.Called(ctx, document).Error(0)
}

func newSlotUsecase(repo *MockTimetableRepository, now time.Time) *slotUsecase {
	uc := NewSlotUsecase(repo, time.UTC, zap.NewNop()).(*slotUsecase)
	uc.now = func() time.Time { return now }
	return uc
}

func TestSlotUsecase_GetSlots(t *testing.T) {
	uc := newSlotUsecase(new(MockTimetableRepository), time.Now())

	slots := uc.GetSlots(context.Background())

	require.Len(t, slots, timetable.SlotCount)
	assert.Equal(t, "09:30", slots[0].Start)
	assert.Equal(t, "16:25", slots[7].End)
	assert.Equal(t, "11:20 - 12:10", slots[2].Label)
}

func TestSlotUsecase_GetCurrentSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("in progress carries own status", func(t *testing.T) {
		repo := new(MockTimetableRepository)
		repo.On("FindByUID", ctx, "u1").Return(&models.Timetable{
			UID:      "u1",
			Schedule: timetable.WeeklySchedule{"Monday": {"3": "FREE"}},
		}, nil)
		uc := newSlotUsecase(repo, time.Date(2024, 7, 1, 11, 45, 0, 0, time.UTC))

		current, err := uc.GetCurrentSlot(ctx, "u1")

		require.NoError(t, err)
		require.NotNil(t, current.Ordinal)
		assert.Equal(t, 3, *current.Ordinal)
		assert.Equal(t, "in-progress", current.Phase)
		assert.Equal(t, "11:45", current.CurrentTime)
		require.NotNil(t, current.MyStatus)
		assert.Equal(t, "FREE", *current.MyStatus)
	})

	t.Run("never saved is unknown", func(t *testing.T) {
		repo := new(MockTimetableRepository)
		repo.On("FindByUID", ctx, "u1").Return(nil, nil)
		uc := newSlotUsecase(repo, time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC))

		current, err := uc.GetCurrentSlot(ctx, "u1")

		require.NoError(t, err)
		require.NotNil(t, current.MyStatus)
		assert.Equal(t, "UNKNOWN", *current.MyStatus)
	})

	t.Run("break has no status and no lookup", func(t *testing.T) {
		repo := new(MockTimetableRepository)
		uc := newSlotUsecase(repo, time.Date(2024, 7, 1, 11, 15, 0, 0, time.UTC))

		current, err := uc.GetCurrentSlot(ctx, "u1")

		require.NoError(t, err)
		assert.Nil(t, current.Ordinal)
		assert.Nil(t, current.MyStatus)
		assert.Equal(t, "Break Time", current.Label)
		repo.AssertNotCalled(t, "FindByUID", mock.Anything, mock.Anything)
	})

	t.Run("weekend", func(t *testing.T) {
		uc := newSlotUsecase(new(MockTimetableRepository), time.Date(2024, 7, 7, 11, 45, 0, 0, time.UTC))

		current, err := uc.GetCurrentSlot(ctx, "u1")

		require.NoError(t, err)
		assert.True(t, current.IsWeekend)
		assert.Equal(t, "Weekend", current.Label)
		assert.Nil(t, current.MyStatus)
	})

	t.Run("store error", func(t *testing.T) {
		repo := new(MockTimetableRepository)
		repo.On("FindByUID", ctx, "u1").Return(nil, errors.New("mongo down"))
		uc := newSlotUsecase(repo, time.Date(2024, 7, 1, 11, 45, 0, 0, time.UTC))

		_, err := uc.GetCurrentSlot(ctx, "u1")

		assert.Error(t, err)
	})
}
