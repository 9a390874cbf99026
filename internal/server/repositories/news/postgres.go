package news

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

const newsColumns = `id, title, summary, content, cover_url, published_at, created_by, updated_by, created_at, updated_at`

func scanNews(row interface{ Scan(...any) error }) (*models.News, error) {
	item := &models.News{}
	err := row.Scan(&item.ID, &item.Title, &item.Summary, &item.Content,
		&item.CoverURL, &item.PublishedAt, &item.CreatedBy, &item.UpdatedBy,
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
	case "title", "published_at", "created_at", "updated_at":
		return key
	}
	return "created_at"
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.News) (*models.News, error) {
	query :=
		`INSERT INTO news (title, summary, content, cover_url, published_at, created_by, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.Title, item.Summary, item.Content, item.CoverURL, item.PublishedAt, item.CreatedBy).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	item.UpdatedBy = item.CreatedBy

	return item, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.News, error) {
	query := `SELECT ` + newsColumns + ` FROM news WHERE id = $1`
	return scanNews(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) List(ctx context.Context, p models.ListParams) ([]models.News, int64, error) {
	p = p.Normalize()

	where := ``
	args := []any{}
	if p.Search != "" {
		where = `WHERE title ILIKE $1 OR summary ILIKE $1`
		args = append(args, "%"+p.Search+"%")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM news `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	dir := "ASC"
	if p.Desc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM news %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		newsColumns, where, sortColumn(p.SortBy), dir, len(args)+1, len(args)+2)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]models.News, 0, p.PageSize)
	for rows.Next() {
		item, err := scanNews(rows)
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

func (r *PostgresRepository) Update(ctx context.Context, item *models.News) error {
	query :=
		`UPDATE news
		 SET title = $2, summary = $3, content = $4, cover_url = $5, published_at = $6,
		     updated_by = $7, updated_at = now()
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		item.ID, item.Title, item.Summary, item.Content, item.CoverURL,
		item.PublishedAt, item.UpdatedBy)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
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
