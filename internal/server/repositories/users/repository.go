package users

import (
	"context"

	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}
