package publications

import (
	"context"

	"github.com/rz2606/lab-website-sub002/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, item *models.Publication) (*models.Publication, error)
	GetByID(ctx context.Context, id int64) (*models.Publication, error)
	List(ctx context.Context, p models.ListParams) ([]models.Publication, int64, error)
	Update(ctx context.Context, item *models.Publication) error
	Delete(ctx context.Context, id int64) error
}
