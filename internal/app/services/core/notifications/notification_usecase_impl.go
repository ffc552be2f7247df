package notifications

import (
	"context"
	"errors"
	"fmt"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/timetable"
	"kiskibreak-service/internal/pkg/utils"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const publishConcurrency = 8

type notificationUsecase struct {
	FriendRepository contracts.FriendRepository
	UserRepository   contracts.UserRepository
	PushPublisher    contracts.PushPublisher
	Log              *zap.Logger
}

func NewNotificationUsecase(
	friendRepository contracts.FriendRepository,
	userRepository contracts.UserRepository,
	pushPublisher contracts.PushPublisher,
	logger *zap.Logger,
) contracts.NotificationUsecase {
	return &notificationUsecase{
		FriendRepository: friendRepository,
		UserRepository:   userRepository,
		PushPublisher:    pushPublisher,
		Log:              logger,
	}
}

// becameFree is true only for a literal BUSY to FREE change of the resolved
// cell. Missing or unrecognized values never count.
func becameFree(previous, current timetable.WeeklySchedule, resolved timetable.ResolvedSlot) bool {
	if !resolved.InSlot() {
		return false
	}
	key := timetable.OrdinalKey(resolved.Ordinal)
	return previous[resolved.Weekday][key] == string(timetable.StatusBusy) &&
		current[resolved.Weekday][key] == string(timetable.StatusFree)
}

func (uc *notificationUsecase) NotifyFriendFree(ctx context.Context, uid string, previous, current timetable.WeeklySchedule, resolved timetable.ResolvedSlot) (int, error) {
	requestID := utils.RequestIDFromContext(ctx)
	if !becameFree(previous, current, resolved) {
		return 0, nil
	}

	uc.Log.Info("notificationUsecase.NotifyFriendFree called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUIDKey, uid),
		zap.Int(constvars.LoggingSlotKey, resolved.Ordinal),
	)

	friends, err := uc.FriendRepository.ListByOwner(ctx, uid)
	if err != nil {
		return 0, err
	}
	if len(friends) == 0 {
		return 0, nil
	}

	sender, err := uc.UserRepository.FindByID(ctx, uid)
	if err != nil {
		return 0, err
	}
	name := sender.DisplayName(constvars.PushFallbackName)

	friendUIDs := make([]string, len(friends))
	for i, friend := range friends {
		friendUIDs[i] = friend.UID
	}
	recipients, err := uc.UserRepository.FindByIDs(ctx, friendUIDs)
	if err != nil {
		return 0, err
	}

	var (
		mu        sync.Mutex
		published int
		failures  []error
	)
	var group errgroup.Group
	group.SetLimit(publishConcurrency)
	for _, friendUID := range friendUIDs {
		friendUID := friendUID
		recipient, ok := recipients[friendUID]
		if !ok || !recipient.WantsPush() {
			continue
		}
		message := friendFreeMessage(recipient.FCMToken, uid, name, resolved.Ordinal)
		group.Go(func() error {
			err := uc.PushPublisher.Publish(ctx, message)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, fmt.Errorf("notify %s: %w", friendUID, err))
				return nil
			}
			published++
			return nil
		})
	}
	_ = group.Wait()

	uc.Log.Info("notificationUsecase.NotifyFriendFree finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUIDKey, uid),
		zap.Int(constvars.LoggingNotifiedKey, published),
		zap.Int(constvars.LoggingRosterSizeKey, len(friendUIDs)),
	)
	return published, errors.Join(failures...)
}

func friendFreeMessage(token, uid, name string, ordinal int) *models.PushMessage {
	return &models.PushMessage{
		Token: token,
		Notification: models.PushNotification{
			Title: fmt.Sprintf(constvars.PushFriendFreeTitle, name),
			Body:  fmt.Sprintf(constvars.PushFriendFreeBody, name, ordinal),
		},
		Data: map[string]string{
			"type":      constvars.PushTypeFriendFree,
			"friendUid": uid,
			"slot":      strconv.Itoa(ordinal),
		},
	}
}
