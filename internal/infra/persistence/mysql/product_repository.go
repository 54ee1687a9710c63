package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	domcategory "example.com/fastshop/internal/domain/category"
	domproduct "example.com/fastshop/internal/domain/product"
)

const productColumns = `
        p.id, p.name, p.description, p.price, p.category_id, p.image_url, p.created_at,
        c.id, c.name, c.slug, c.description
`

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT`+productColumns+`
        FROM products p
        JOIN categories c ON c.id = p.category_id
        WHERE p.id = ?
    `, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, errors.Wrapf(err, "get product %d", id)
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	query := `
        SELECT` + productColumns + `
        FROM products p
        JOIN categories c ON c.id = p.category_id
    `
	var clauses []string
	var args []any

	if filter.CategoryID != nil {
		clauses = append(clauses, "p.category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.Search != "" {
		clauses = append(clauses, "p.name LIKE ?")
		args = append(args, fmt.Sprintf("%%%s%%", filter.Search))
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY p.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer rows.Close()

	products := []*domproduct.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*domproduct.Product, error) {
	var (
		p           domproduct.Product
		c           domcategory.Category
		description sql.NullString
		imageURL    sql.NullString
		catDesc     sql.NullString
	)
	if err := s.Scan(
		&p.ID, &p.Name, &description, &p.Price, &p.CategoryID, &imageURL, &p.CreatedAt,
		&c.ID, &c.Name, &c.Slug, &catDesc,
	); err != nil {
		return nil, err
	}
	p.Description = description.String
	p.ImageURL = imageURL.String
	c.Description = catDesc.String
	p.Category = &c
	return &p, nil
}
