package notes

import (
	"context"

	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	List(ctx context.Context) ([]*models.Note, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
