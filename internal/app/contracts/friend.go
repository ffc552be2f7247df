package contracts

import (
	"context"
	"kiskibreak-service/internal/app/models"
)

type FriendRepository interface {
	ListByOwner(ctx context.Context, ownerUID string) ([]models.Friend, error)
	IsFriend(ctx context.Context, ownerUID, uid string) (bool, error)
}
