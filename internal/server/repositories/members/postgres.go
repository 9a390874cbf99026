package members

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

const memberColumns = `id, name, member_type, title, email, avatar_key, bio, joined_at, graduated_at, created_by, updated_by, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (*models.Member, error) {
	item := &models.Member{}
	err := row.Scan(&item.ID, &item.Name, &item.MemberType, &item.Title,
		&item.Email, &item.AvatarKey, &item.Bio, &item.JoinedAt, &item.GraduatedAt,
		&item.CreatedBy, &item.UpdatedBy, &item.CreatedAt, &item.UpdatedAt)
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
	case "name", "member_type", "joined_at", "created_at", "updated_at":
		return key
	}
	return "joined_at"
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.Member) (*models.Member, error) {
	query :=
		`INSERT INTO members (name, member_type, title, email, avatar_key, bio, joined_at, graduated_at, created_by, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.Name, item.MemberType, item.Title, item.Email, item.AvatarKey,
		item.Bio, item.JoinedAt, item.GraduatedAt, item.CreatedBy).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	item.UpdatedBy = item.CreatedBy

	return item, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	return scanMember(r.db.QueryRowContext(ctx, query, id))
}

// List returns a page of members, optionally restricted to one member type
// (pi, researcher, graduate). An empty memberType returns all of them.
func (r *PostgresRepository) List(ctx context.Context, p models.ListParams, memberType string) ([]models.Member, int64, error) {
	p = p.Normalize()

	conds := []string{}
	args := []any{}
	if p.Search != "" {
		args = append(args, "%"+p.Search+"%")
		conds = append(conds, fmt.Sprintf(`(name ILIKE $%d OR title ILIKE $%d)`, len(args), len(args)))
	}
	if memberType != "" {
		args = append(args, memberType)
		conds = append(conds, fmt.Sprintf(`member_type = $%d`, len(args)))
	}

	where := ``
	for i, c := range conds {
		if i == 0 {
			where = `WHERE ` + c
		} else {
			where += ` AND ` + c
		}
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM members `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	dir := "ASC"
	if p.Desc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM members %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		memberColumns, where, sortColumn(p.SortBy), dir, len(args)+1, len(args)+2)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]models.Member, 0, p.PageSize)
	for rows.Next() {
		item, err := scanMember(rows)
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

func (r *PostgresRepository) Update(ctx context.Context, item *models.Member) error {
	query :=
		`UPDATE members
		 SET name = $2, member_type = $3, title = $4, email = $5, avatar_key = $6,
		     bio = $7, joined_at = $8, graduated_at = $9, updated_by = $10, updated_at = now()
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.MemberType, item.Title, item.Email,
		item.AvatarKey, item.Bio, item.JoinedAt, item.GraduatedAt, item.UpdatedBy)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
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
