package availability

import (
	"context"
	"kiskibreak-service/internal/app/config"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/dto/responses"
	"kiskibreak-service/internal/pkg/exceptions"
	"kiskibreak-service/internal/pkg/timetable"
	"kiskibreak-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type availabilityUsecase struct {
	FriendRepository contracts.FriendRepository
	GroupRepository  contracts.GroupRepository
	UserRepository   contracts.UserRepository
	Scanner          contracts.RosterScanner
	EventBus         contracts.ScheduleEventBus
	InternalConfig   *config.InternalConfig
	Location         *time.Location
	Log              *zap.Logger
	now              func() time.Time
}

func NewAvailabilityUsecase(
	friendRepository contracts.FriendRepository,
	groupRepository contracts.GroupRepository,
	userRepository contracts.UserRepository,
	scanner contracts.RosterScanner,
	eventBus contracts.ScheduleEventBus,
	internalConfig *config.InternalConfig,
	location *time.Location,
	logger *zap.Logger,
) contracts.AvailabilityUsecase {
	return &availabilityUsecase{
		FriendRepository: friendRepository,
		GroupRepository:  groupRepository,
		UserRepository:   userRepository,
		Scanner:          scanner,
		EventBus:         eventBus,
		InternalConfig:   internalConfig,
		Location:         location,
		Log:              logger,
		now:              time.Now,
	}
}

func (uc *availabilityUsecase) GetFreeFriends(ctx context.Context, viewerUID string) (*responses.FreeFriends, error) {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("availabilityUsecase.GetFreeFriends called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingViewerUIDKey, viewerUID),
	)

	result, _, err := uc.scanFriends(ctx, viewerUID)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("availabilityUsecase.GetFreeFriends succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingFreeCountKey, len(result.Friends)),
	)
	return result, nil
}

// scanFriends also returns the uids of the scanned roster so a watcher can
// tell which schedule events concern it.
func (uc *availabilityUsecase) scanFriends(ctx context.Context, viewerUID string) (*responses.FreeFriends, map[string]struct{}, error) {
	requestID := utils.RequestIDFromContext(ctx)

	friends, err := uc.FriendRepository.ListByOwner(ctx, viewerUID)
	if err != nil {
		uc.Log.Error("availabilityUsecase.scanFriends error fetching friends",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingViewerUIDKey, viewerUID),
			zap.Error(err),
		)
		return nil, nil, err
	}

	roster := make([]models.Person, len(friends))
	watched := make(map[string]struct{}, len(friends))
	for i, friend := range friends {
		roster[i] = friend.Person()
		watched[friend.UID] = struct{}{}
	}

	now := uc.now()
	current, _ := responses.CurrentSlotAt(now, uc.Location)
	free := uc.Scanner.ScanFree(ctx, now, roster)

	result := &responses.FreeFriends{
		Current: current,
		Friends: make([]responses.Person, len(free)),
	}
	for i, person := range free {
		result.Friends[i] = toPersonDTO(person)
	}
	return result, watched, nil
}

func (uc *availabilityUsecase) GetGroupAvailability(ctx context.Context, viewerUID, groupID string) (*responses.GroupAvailability, error) {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("availabilityUsecase.GetGroupAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingViewerUIDKey, viewerUID),
		zap.String(constvars.LoggingGroupIDKey, groupID),
	)

	group, err := uc.GroupRepository.FindByID(ctx, groupID)
	if err != nil {
		uc.Log.Error("availabilityUsecase.GetGroupAvailability error fetching group",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if group == nil {
		return nil, exceptions.ErrGroupNotExist(nil, groupID)
	}
	if !group.HasMember(viewerUID) {
		return nil, exceptions.ErrNotGroupMember(nil, viewerUID, groupID)
	}

	users, err := uc.UserRepository.FindByIDs(ctx, group.Members)
	if err != nil {
		uc.Log.Error("availabilityUsecase.GetGroupAvailability error fetching members",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	roster := make([]models.Person, len(group.Members))
	for i, uid := range group.Members {
		if user, ok := users[uid]; ok {
			roster[i] = user.Person()
			roster[i].Name = user.DisplayName(constvars.UnknownMemberName)
			continue
		}
		roster[i] = models.Person{UID: uid, Name: constvars.UnknownMemberName}
	}

	now := uc.now()
	current, _ := responses.CurrentSlotAt(now, uc.Location)
	scanned := uc.Scanner.ScanRoster(ctx, now, roster)

	result := &responses.GroupAvailability{
		GroupID:   group.ID,
		GroupName: group.Name,
		Current:   current,
		Members:   make([]responses.MemberAvailability, len(scanned)),
	}
	for i, member := range scanned {
		if member.Status == timetable.StatusFree {
			result.FreeCount++
		}
		result.Members[i] = responses.MemberAvailability{
			Person: toPersonDTO(member.Person),
			Status: string(member.Status),
		}
	}

	uc.Log.Info("availabilityUsecase.GetGroupAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingRosterSizeKey, len(roster)),
		zap.Int(constvars.LoggingFreeCountKey, result.FreeCount),
	)
	return result, nil
}

func (uc *availabilityUsecase) WatchFreeFriends(ctx context.Context, viewerUID string) (<-chan *responses.FreeFriends, error) {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("availabilityUsecase.WatchFreeFriends called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingViewerUIDKey, viewerUID),
	)

	first, watched, err := uc.scanFriends(ctx, viewerUID)
	if err != nil {
		return nil, err
	}

	cfg := uc.InternalConfig.Availability
	events, stopEvents := uc.EventBus.Subscribe(ctx)
	watcher := NewWatcher(WatcherOptions{
		ViewerUID:    viewerUID,
		Scan:         uc.scanFriends,
		Events:       events,
		StopEvents:   stopEvents,
		PollInterval: cfg.PollInterval,
		Limiter:      rate.NewLimiter(rate.Every(cfg.EventInterval), max(cfg.EventBurst, 1)),
		Log:          uc.Log,
	})
	watcher.Start(ctx, first, watched)

	go func() {
		<-ctx.Done()
		watcher.Stop()
	}()

	return watcher.Updates(), nil
}

func toPersonDTO(person models.Person) responses.Person {
	return responses.Person{UID: person.UID, Name: person.Name, Email: person.Email}
}
