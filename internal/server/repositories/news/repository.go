package news

import (
	"context"

	"github.com/rz2606/lab-website-sub002/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, item *models.News) (*models.News, error)
	GetByID(ctx context.Context, id int64) (*models.News, error)
	List(ctx context.Context, p models.ListParams) ([]models.News, int64, error)
	Update(ctx context.Context, item *models.News) error
	Delete(ctx context.Context, id int64) error
}
