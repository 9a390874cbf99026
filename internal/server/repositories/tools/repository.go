package tools

import (
	"context"

	"github.com/rz2606/lab-website-sub002/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, item *models.Tool) (*models.Tool, error)
	GetByID(ctx context.Context, id int64) (*models.Tool, error)
	List(ctx context.Context, p models.ListParams) ([]models.Tool, int64, error)
	Update(ctx context.Context, item *models.Tool) error
	Delete(ctx context.Context, id int64) error
}
