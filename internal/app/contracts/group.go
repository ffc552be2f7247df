package contracts

import (
	"context"
	"kiskibreak-service/internal/app/models"
)

type GroupRepository interface {
	FindByID(ctx context.Context, groupID string) (*models.Group, error)
}
