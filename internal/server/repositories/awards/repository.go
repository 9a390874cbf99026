package awards

import (
	"context"

	"github.com/rz2606/lab-website-sub002/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, item *models.Award) (*models.Award, error)
	GetByID(ctx context.Context, id int64) (*models.Award, error)
	List(ctx context.Context, p models.ListParams) ([]models.Award, int64, error)
	Update(ctx context.Context, item *models.Award) error
	Delete(ctx context.Context, id int64) error
}
