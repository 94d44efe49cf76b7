package messages

import (
	"context"

	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, msg *models.Message) (*models.Message, error)
	ListByChannel(ctx context.Context, channel string) ([]*models.Message, error)
	DeleteByChannel(ctx context.Context, channel string) error
	DeleteAll(ctx context.Context) error
}
