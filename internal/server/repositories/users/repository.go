package users

import (
	"context"

	"github.com/dsmirnovs/notekeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Exists(ctx context.Context, username string, email string) (bool, error)
}
