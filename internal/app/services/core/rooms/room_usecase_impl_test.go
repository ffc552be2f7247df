package rooms

import (
	"context"
	"errors"
	"kiskibreak-service/internal/app/config"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/dto/requests"
	"kiskibreak-service/internal/pkg/exceptions"
	"kiskibreak-service/internal/pkg/rooms"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const roomsObject = "rooms/occupancy.json"

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) PutJSON(ctx context.Context, objectName string, value interface{}) error {
	return m.Called(ctx, objectName, value).Error(0)
}

func (m *MockObjectStorage) GetJSON(ctx context.Context, objectName string, dest interface{}) (bool, error) {
	args := m.Called(ctx, objectName, dest)
	return args.Bool(0), args.Error(1)
}

func sampleExport() rooms.Export {
	return rooms.Export{
		AllRooms: []string{"S-606", "N-101"},
		OccupiedRooms: map[string]map[string][]string{
			"Mo": {"3": {"S-606"}, "5": {"N-101", "C-12"}},
		},
	}
}

func exportInto(export rooms.Export) func(mock.Arguments) {
	return func(args mock.Arguments) {
		*args.Get(2).(*rooms.Export) = export
	}
}

func newRoomUsecase(t *testing.T, storage *MockObjectStorage, now time.Time) *roomUsecase {
	cfg := &config.InternalConfig{Minio: config.AppMinio{RoomsObject: roomsObject}}
	uc, err := NewRoomUsecase(context.Background(), storage, cfg, time.UTC, zap.NewNop())
	require.NoError(t, err)
	impl := uc.(*roomUsecase)
	impl.now = func() time.Time { return now }
	return impl
}

func loadedStorage() *MockObjectStorage {
	storage := new(MockObjectStorage)
	storage.On("GetJSON", mock.Anything, roomsObject, mock.AnythingOfType("*rooms.Export")).
		Run(exportInto(sampleExport())).Return(true, nil)
	return storage
}

func TestNewRoomUsecase(t *testing.T) {
	t.Run("missing export gives an empty directory", func(t *testing.T) {
		storage := new(MockObjectStorage)
		storage.On("GetJSON", mock.Anything, roomsObject, mock.Anything).Return(false, nil)

		uc := newRoomUsecase(t, storage, time.Now())

		assert.Zero(t, uc.ListRooms(context.Background()).Total)
	})

	t.Run("storage failure", func(t *testing.T) {
		storage := new(MockObjectStorage)
		storage.On("GetJSON", mock.Anything, roomsObject, mock.Anything).Return(false, errors.New("minio down"))

		_, err := NewRoomUsecase(context.Background(), storage, &config.InternalConfig{Minio: config.AppMinio{RoomsObject: roomsObject}}, time.UTC, zap.NewNop())

		assert.Error(t, err)
	})

	t.Run("invalid export", func(t *testing.T) {
		storage := new(MockObjectStorage)
		storage.On("GetJSON", mock.Anything, roomsObject, mock.Anything).
			Run(exportInto(rooms.Export{OccupiedRooms: map[string]map[string][]string{"Sa": {"1": {"S-606"}}}})).
			Return(true, nil)

		_, err := NewRoomUsecase(context.Background(), storage, &config.InternalConfig{Minio: config.AppMinio{RoomsObject: roomsObject}}, time.UTC, zap.NewNop())

		assert.Equal(t, constvars.StatusInternalServerError, exceptions.StatusCodeOf(err))
	})
}

func TestRoomUsecase_ListRooms(t *testing.T) {
	uc := newRoomUsecase(t, loadedStorage(), time.Now())

	result := uc.ListRooms(context.Background())

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, []string{"C-12", "N-101", "S-606"}, result.Rooms)
}

func TestRoomUsecase_GetVacantNow(t *testing.T) {
	t.Run("running slot excludes occupied rooms", func(t *testing.T) {
		uc := newRoomUsecase(t, loadedStorage(), time.Date(2024, 7, 1, 11, 45, 0, 0, time.UTC))

		result := uc.GetVacantNow(context.Background())

		assert.Equal(t, "Monday", result.Weekday)
		require.NotNil(t, result.Slot)
		assert.Equal(t, 3, result.Slot.Ordinal)
		assert.Equal(t, []string{"C-12", "N-101"}, result.Vacant)
	})

	t.Run("outside class hours every room is vacant", func(t *testing.T) {
		uc := newRoomUsecase(t, loadedStorage(), time.Date(2024, 7, 1, 18, 0, 0, 0, time.UTC))

		result := uc.GetVacantNow(context.Background())

		assert.Nil(t, result.Slot)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, "Classes ended at 16:25", result.Label)
	})
}

func TestRoomUsecase_GetVacant(t *testing.T) {
	ctx := context.Background()
	uc := newRoomUsecase(t, loadedStorage(), time.Now())

	t.Run("day token and slot", func(t *testing.T) {
		result, err := uc.GetVacant(ctx, &requests.VacantRoomsQuery{Day: "monday", Slot: 5})

		require.NoError(t, err)
		assert.Equal(t, "Monday", result.Weekday)
		assert.Equal(t, []string{"S-606"}, result.Vacant)
		assert.Equal(t, "13:05 - 13:55", result.Label)
	})

	t.Run("weekend day", func(t *testing.T) {
		_, err := uc.GetVacant(ctx, &requests.VacantRoomsQuery{Day: "Saturday", Slot: 1})

		assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
	})

	t.Run("slot out of range", func(t *testing.T) {
		_, err := uc.GetVacant(ctx, &requests.VacantRoomsQuery{Day: "Tu", Slot: 9})

		assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
	})
}

func TestRoomUsecase_GetOccupancy(t *testing.T) {
	ctx := context.Background()
	uc := newRoomUsecase(t, loadedStorage(), time.Now())

	result, err := uc.GetOccupancy(ctx, "S-606")
	require.NoError(t, err)
	assert.Equal(t, rooms.StateOccupied, result.Schedule["Monday"]["3"])
	assert.Equal(t, rooms.StateVacant, result.Schedule["Friday"]["3"])

	_, err = uc.GetOccupancy(ctx, "X-1")
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
}

func TestRoomUsecase_Reload(t *testing.T) {
	storage := new(MockObjectStorage)
	storage.On("GetJSON", mock.Anything, roomsObject, mock.Anything).Return(false, nil).Once()
	uc := newRoomUsecase(t, storage, time.Now())
	storage.On("GetJSON", mock.Anything, roomsObject, mock.Anything).Run(exportInto(sampleExport())).Return(true, nil).Once()

	result, err := uc.Reload(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, uc.ListRooms(context.Background()).Total)
}
