package mysql

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	domcategory "example.com/fastshop/internal/domain/category"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domcategory.Category, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, slug, description
        FROM categories
        WHERE id = ?
    `, id)

	var (
		c    domcategory.Category
		desc sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &desc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domcategory.ErrCategoryNotFound
		}
		return nil, errors.Wrapf(err, "get category %d", id)
	}
	c.Description = desc.String
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domcategory.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug, description FROM categories ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	defer rows.Close()

	categories := []*domcategory.Category{}
	for rows.Next() {
		var (
			c    domcategory.Category
			desc sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &desc); err != nil {
			return nil, errors.Wrap(err, "scan category")
		}
		c.Description = desc.String
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return categories, nil
}
