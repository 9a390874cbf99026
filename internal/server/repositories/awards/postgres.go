package awards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rz2606/lab-website-sub002/internal/common"
	"github.com/rz2606/lab-website-sub002/internal/dbx"
	"github.com/rz2606/lab-website-sub002/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const awardColumns = `id, title, recipient, level, awarded_at, created_by, updated_by, created_at, updated_at`

func scanAward(row interface{ Scan(...any) error }) (*models.Award, error) {
	item := &models.Award{}
	err := row.Scan(&item.ID, &item.Title, &item.Recipient, &item.Level,
		&item.AwardedAt, &item.CreatedBy, &item.UpdatedBy,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func sortColumn(key string) string {
	switch key {
	case "title", "awarded_at", "created_at", "updated_at":
		return key
	}
	return "awarded_at"
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.Award) (*models.Award, error) {
	query :=
		`INSERT INTO awards (title, recipient, level, awarded_at, created_by, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $5)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.Title, item.Recipient, item.Level, item.AwardedAt, item.CreatedBy).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	item.UpdatedBy = item.CreatedBy

	return item, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Award, error) {
	query := `SELECT ` + awardColumns + ` FROM awards WHERE id = $1`
	return scanAward(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) List(ctx context.Context, p models.ListParams) ([]models.Award, int64, error) {
	p = p.Normalize()

	where := ``
	args := []any{}
	if p.Search != "" {
		where = `WHERE title ILIKE $1 OR recipient ILIKE $1`
		args = append(args, "%"+p.Search+"%")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM awards `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	dir := "ASC"
	if p.Desc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM awards %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		awardColumns, where, sortColumn(p.SortBy), dir, len(args)+1, len(args)+2)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]models.Award, 0, p.PageSize)
	for rows.Next() {
		item, err := scanAward(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return items, total, nil
}

func (r *PostgresRepository) Update(ctx context.Context, item *models.Award) error {
	query :=
		`UPDATE awards
		 SET title = $2, recipient = $3, level = $4, awarded_at = $5,
		     updated_by = $6, updated_at = now()
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		item.ID, item.Title, item.Recipient, item.Level, item.AwardedAt, item.UpdatedBy)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM awards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
