package tools

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

const toolColumns = `id, name, description, repo_url, homepage_url, icon_key, created_by, updated_by, created_at, updated_at`

func scanTool(row interface{ Scan(...any) error }) (*models.Tool, error) {
	item := &models.Tool{}
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.RepoURL,
		&item.HomepageURL, &item.IconKey, &item.CreatedBy, &item.UpdatedBy,
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
	case "name", "created_at", "updated_at":
		return key
	}
	return "name"
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.Tool) (*models.Tool, error) {
	query :=
		`INSERT INTO tools (name, description, repo_url, homepage_url, icon_key, created_by, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.Name, item.Description, item.RepoURL, item.HomepageURL, item.IconKey, item.CreatedBy).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	item.UpdatedBy = item.CreatedBy

	return item, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE id = $1`
	return scanTool(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) List(ctx context.Context, p models.ListParams) ([]models.Tool, int64, error) {
	p = p.Normalize()

	where := ``
	args := []any{}
	if p.Search != "" {
		where = `WHERE name ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+p.Search+"%")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM tools `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	dir := "ASC"
	if p.Desc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM tools %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		toolColumns, where, sortColumn(p.SortBy), dir, len(args)+1, len(args)+2)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]models.Tool, 0, p.PageSize)
	for rows.Next() {
		item, err := scanTool(rows)
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

func (r *PostgresRepository) Update(ctx context.Context, item *models.Tool) error {
	query :=
		`UPDATE tools
		 SET name = $2, description = $3, repo_url = $4, homepage_url = $5, icon_key = $6,
		     updated_by = $7, updated_at = now()
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Description, item.RepoURL, item.HomepageURL,
		item.IconKey, item.UpdatedBy)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM tools WHERE id = $1`, id)
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
