package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	domcategory "example.com/fastshop/internal/domain/category"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domcategory.Category, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, name, slug, description
        FROM categories
        WHERE id = $1
    `, id)

	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domcategory.ErrCategoryNotFound
		}
		return nil, errors.Wrapf(err, "get category %d", id)
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domcategory.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, slug, description FROM categories ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	defer rows.Close()

	categories := []*domcategory.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan category")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return categories, nil
}

func scanCategory(row pgx.Row) (*domcategory.Category, error) {
	var (
		c    domcategory.Category
		desc *string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &desc); err != nil {
		return nil, err
	}
	c.Description = deref(desc)
	return &c, nil
}
