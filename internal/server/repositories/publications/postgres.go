package publications

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

const pubColumns = `id, title, authors, venue, year, doi, pdf_key, created_by, updated_by, created_at, updated_at`

func scanPublication(row interface{ Scan(...any) error }) (*models.Publication, error) {
	item := &models.Publication{}
	err := row.Scan(&item.ID, &item.Title, &item.Authors, &item.Venue,
		&item.Year, &item.DOI, &item.PDFKey, &item.CreatedBy, &item.UpdatedBy,
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
	case "title", "year", "venue", "created_at", "updated_at":
		return key
	}
	return "year"
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.Publication) (*models.Publication, error) {
	query :=
		`INSERT INTO publications (title, authors, venue, year, doi, pdf_key, created_by, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.Title, item.Authors, item.Venue, item.Year, item.DOI, item.PDFKey, item.CreatedBy).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	item.UpdatedBy = item.CreatedBy

	return item, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Publication, error) {
	query := `SELECT ` + pubColumns + ` FROM publications WHERE id = $1`
	return scanPublication(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) List(ctx context.Context, p models.ListParams) ([]models.Publication, int64, error) {
	p = p.Normalize()

	where := ``
	args := []any{}
	if p.Search != "" {
		where = `WHERE title ILIKE $1 OR authors ILIKE $1 OR venue ILIKE $1`
		args = append(args, "%"+p.Search+"%")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM publications `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	dir := "ASC"
	if p.Desc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM publications %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		pubColumns, where, sortColumn(p.SortBy), dir, len(args)+1, len(args)+2)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]models.Publication, 0, p.PageSize)
	for rows.Next() {
		item, err := scanPublication(rows)
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

func (r *PostgresRepository) Update(ctx context.Context, item *models.Publication) error {
	query :=
		`UPDATE publications
		 SET title = $2, authors = $3, venue = $4, year = $5, doi = $6, pdf_key = $7,
		     updated_by = $8, updated_at = now()
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		item.ID, item.Title, item.Authors, item.Venue, item.Year, item.DOI,
		item.PDFKey, item.UpdatedBy)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM publications WHERE id = $1`, id)
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
