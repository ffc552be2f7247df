package routers

import (
	"bytes"
	"context"
	"kiskibreak-service/internal/app/config"
	"kiskibreak-service/internal/app/delivery/http/controllers"
	"kiskibreak-service/internal/app/delivery/http/middlewares"
	"kiskibreak-service/internal/app/services/shared/jwtmanager"
	"kiskibreak-service/internal/app/services/shared/ratelimiter"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/dto/requests"
	"kiskibreak-service/internal/pkg/dto/responses"
	"kiskibreak-service/internal/pkg/exceptions"
	"kiskibreak-service/internal/pkg/timetable"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSlotUsecase struct {
	mock.Mock
}

func (m *MockSlotUsecase) GetSlots(ctx context.Context) []responses.Slot {
	return m.Called(ctx).Get(0).([]responses.Slot)
}

func (m *MockSlotUsecase) GetCurrentSlot(ctx context.Context, uid string) (*responses.CurrentSlot, error) {
	args := m.Called(ctx, uid)
	result, _ := args.Get(0).(*responses.CurrentSlot)
	return result, args.Error(1)
}

type MockTimetableUsecase struct {
	mock.Mock
}

func (m *MockTimetableUsecase) GetTimetable(ctx context.Context, uid string) (*responses.Timetable, error) {
	args := m.Called(ctx, uid)
	result, _ := args.Get(0).(*responses.Timetable)
	return result, args.Error(1)
}

func (m *MockTimetableUsecase) SaveTimetable(ctx context.Context, uid string, request *requests.SaveTimetable) (*responses.Timetable, error) {
	args := m.Called(ctx, uid, request)
	result, _ := args.Get(0).(*responses.Timetable)
	return result, args.Error(1)
}

func (m *MockTimetableUsecase) GetFriendToday(ctx context.Context, viewerUID, friendUID string) (*responses.FriendToday, error) {
	args := m.Called(ctx, viewerUID, friendUID)
	result, _ := args.Get(0).(*responses.FriendToday)
	return result, args.Error(1)
}

type MockAvailabilityUsecase struct {
	mock.Mock
}

func (m *MockAvailabilityUsecase) GetFreeFriends(ctx context.Context, viewerUID string) (*responses.FreeFriends, error) {
	args := m.Called(ctx, viewerUID)
	result, _ := args.Get(0).(*responses.FreeFriends)
	return result, args.Error(1)
}

func (m *MockAvailabilityUsecase) GetGroupAvailability(ctx context.Context, viewerUID, groupID string) (*responses.GroupAvailability, error) {
	args := m.Called(ctx, viewerUID, groupID)
	result, _ := args.Get(0).(*responses.GroupAvailability)
	return result, args.Error(1)
}

func (m *MockAvailabilityUsecase) WatchFreeFriends(ctx context.Context, viewerUID string) (<-chan *responses.FreeFriends, error) {
	args := m.Called(ctx, viewerUID)
	updates, _ := args.Get(0).(chan *responses.FreeFriends)
	return updates, args.Error(1)
}

type MockRoomUsecase struct {
	mock.Mock
}

func (m *MockRoomUsecase) ListRooms(ctx context.Context) *responses.Rooms {
	return m.Called(ctx).Get(0).(*responses.Rooms)
}

func (m *MockRoomUsecase) GetVacantNow(ctx context.Context) *responses.VacantRooms {
	return m.Called(ctx).Get(0).(*responses.VacantRooms)
}

func (m *MockRoomUsecase) GetVacant(ctx context.Context, query *requests.VacantRoomsQuery) (*responses.VacantRooms, error) {
	args := m.Called(ctx, query)
	result, _ := args.Get(0).(*responses.VacantRooms)
	return result, args.Error(1)
}

func (m *MockRoomUsecase) GetOccupancy(ctx context.Context, room string) (*responses.RoomOccupancy, error) {
	args := m.Called(ctx, room)
	result, _ := args.Get(0).(*responses.RoomOccupancy)
	return result, args.Error(1)
}

func (m *MockRoomUsecase) Reload(ctx context.Context) (*responses.Rooms, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*responses.Rooms)
	return result, args.Error(1)
}

type MockActionLimiter struct {
	mock.Mock
}

func (m *MockActionLimiter) Allow(ctx context.Context, action, uid string, quota int, window time.Duration) (*ratelimiter.Decision, error) {
	args := m.Called(ctx, action, uid, quota, window)
	decision, _ := args.Get(0).(*ratelimiter.Decision)
	return decision, args.Error(1)
}

type routerFixture struct {
	router       *chi.Mux
	token        string
	slots        *MockSlotUsecase
	timetables   *MockTimetableUsecase
	availability *MockAvailabilityUsecase
	rooms        *MockRoomUsecase
	limiter      *MockActionLimiter
}

func newRouterFixture(t *testing.T) *routerFixture {
	logger := zap.NewNop()
	cfg := &config.InternalConfig{
		App:     config.App{EndpointPrefix: "api", Version: "v1", MaxRequests: 1000},
		JWT:     config.AppJWT{Secret: "router-test-secret"},
		Limiter: config.AppLimiter{Window: time.Minute, StreamOpens: 5, RoomReloads: 1},
	}

	jwtManager, err := jwtmanager.NewJWTManager(cfg, logger)
	require.NoError(t, err)
	token, err := jwtManager.CreateToken(context.Background(), "u1")
	require.NoError(t, err)

	f := &routerFixture{
		router:       chi.NewRouter(),
		token:        token,
		slots:        new(MockSlotUsecase),
		timetables:   new(MockTimetableUsecase),
		availability: new(MockAvailabilityUsecase),
		rooms:        new(MockRoomUsecase),
		limiter:      new(MockActionLimiter),
	}

	SetupRoutes(
		f.router,
		cfg,
		middlewares.NewMiddlewares(logger, cfg, jwtManager, f.limiter),
		controllers.NewHealthController("v1", "test"),
		controllers.NewSlotController(logger, f.slots),
		controllers.NewTimetableController(logger, f.timetables),
		controllers.NewAvailabilityController(logger, f.availability),
		controllers.NewRoomController(logger, f.rooms),
	)
	return f
}

func (f *routerFixture) do(method, path string, body []byte, authenticated bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if authenticated {
		req.Header.Set(constvars.HeaderAuthorization, constvars.HeaderBearerPrefix+f.token)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) responses.ResponseDTO {
	var body responses.ResponseDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestRouter_PublicRoutes(t *testing.T) {
	f := newRouterFixture(t)

	rr := f.do(http.MethodGet, "/api/v1/healthz", nil, false)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode(t, rr).Success)

	f.slots.On("GetSlots", mock.Anything).Return([]responses.Slot{responses.NewSlot(timetable.FirstSlot())})
	rr = f.do(http.MethodGet, "/api/v1/slots", nil, false)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "09:30 - 10:20")
}

func TestRouter_RequiresToken(t *testing.T) {
	f := newRouterFixture(t)

	for _, path := range []string{
		"/api/v1/slots/current",
		"/api/v1/timetables/me",
		"/api/v1/availability/friends/free",
		"/api/v1/rooms",
	} {
		rr := f.do(http.MethodGet, path, nil, false)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestRouter_SaveTimetable(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("rejected by request validation", func(t *testing.T) {
		rr := f.do(http.MethodPut, "/api/v1/timetables/me", []byte(`{"schedule":{"Saturday":{"1":"FREE"}}}`), true)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		f.timetables.AssertNotCalled(t, "SaveTimetable", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed json", func(t *testing.T) {
		rr := f.do(http.MethodPut, "/api/v1/timetables/me", []byte(`{"schedule":`), true)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("saved for the token's uid", func(t *testing.T) {
		f.timetables.On("SaveTimetable", mock.Anything, "u1", mock.MatchedBy(func(request *requests.SaveTimetable) bool {
			return request.Schedule["Monday"]["3"] == "FREE"
		})).Return(&responses.Timetable{UID: "u1", FreeCount: 1, Saved: true}, nil).Once()

		rr := f.do(http.MethodPut, "/api/v1/timetables/me", []byte(`{"schedule":{"Monday":{"3":"FREE"}}}`), true)

		assert.Equal(t, http.StatusOK, rr.Code)
		f.timetables.AssertExpectations(t)
	})
}

func TestRouter_FriendToday(t *testing.T) {
	f := newRouterFixture(t)
	f.timetables.On("GetFriendToday", mock.Anything, "u1", "u2").
		Return(nil, exceptions.ErrNotFriends(nil, "u1", "u2"))

	rr := f.do(http.MethodGet, "/api/v1/timetables/u2/today", nil, true)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, decode(t, rr).Success)
}

func TestRouter_StreamFreeFriends(t *testing.T) {
	f := newRouterFixture(t)
	updates := make(chan *responses.FreeFriends, 1)
	updates <- &responses.FreeFriends{Friends: []responses.Person{{UID: "u2", Name: "Ben"}}}
	close(updates)
	f.limiter.On("Allow", mock.Anything, constvars.LimitActionStream, "u1", 5, time.Minute).
		Return(&ratelimiter.Decision{Allowed: true}, nil)
	f.availability.On("WatchFreeFriends", mock.Anything, "u1").Return(updates, nil)

	rr := f.do(http.MethodGet, "/api/v1/availability/friends/stream", nil, true)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, constvars.MIMETextEventStream, rr.Header().Get(constvars.HeaderContentType))
	assert.Contains(t, rr.Body.String(), "event: free-friends\n")
	assert.Contains(t, rr.Body.String(), `"name":"Ben"`)
}

func TestRouter_Rooms(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("slot must be a number", func(t *testing.T) {
		rr := f.do(http.MethodGet, "/api/v1/rooms/vacant?day=Monday&slot=third", nil, true)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("vacant query", func(t *testing.T) {
		f.rooms.On("GetVacant", mock.Anything, &requests.VacantRoomsQuery{Day: "Monday", Slot: 3}).
			Return(&responses.VacantRooms{Weekday: "Monday", Total: 1, Vacant: []string{"S-606"}}, nil)

		rr := f.do(http.MethodGet, "/api/v1/rooms/vacant?day=Monday&slot=3", nil, true)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "S-606")
	})

	t.Run("vacant now is not a room name", func(t *testing.T) {
		f.rooms.On("GetVacantNow", mock.Anything).Return(&responses.VacantRooms{Weekday: "Sunday"})

		rr := f.do(http.MethodGet, "/api/v1/rooms/vacant/now", nil, true)

		assert.Equal(t, http.StatusOK, rr.Code)
		f.rooms.AssertNotCalled(t, "GetOccupancy", mock.Anything, mock.Anything)
	})

	t.Run("reload over quota", func(t *testing.T) {
		f.limiter.On("Allow", mock.Anything, constvars.LimitActionRoomReload, "u1", 1, time.Minute).
			Return(&ratelimiter.Decision{Allowed: false, RetryAfter: 30 * time.Second}, nil)

		rr := f.do(http.MethodPost, "/api/v1/rooms/reload", nil, true)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "30", rr.Header().Get(constvars.HeaderRetryAfter))
		f.rooms.AssertNotCalled(t, "Reload", mock.Anything)
	})
}
