package members

import (
	"context"

	"github.com/rz2606/lab-website-sub002/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, item *models.Member) (*models.Member, error)
	GetByID(ctx context.Context, id int64) (*models.Member, error)
	List(ctx context.Context, p models.ListParams, memberType string) ([]models.Member, int64, error)
	Update(ctx context.Context, item *models.Member) error
	Delete(ctx context.Context, id int64) error
}
