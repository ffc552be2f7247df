package contracts

import (
	"context"
	"kiskibreak-service/internal/app/models"
)

type UserRepository interface {
	FindByID(ctx context.Context, uid string) (*models.User, error)
	// FindByIDs returns the users that exist, keyed by uid.
	FindByIDs(ctx context.Context, uids []string) (map[string]*models.User, error)
}
