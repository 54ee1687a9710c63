package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	domcategory "example.com/fastshop/internal/domain/category"
	domproduct "example.com/fastshop/internal/domain/product"
)

const productColumns = `
        p.id, p.name, p.description, p.price, p.category_id, p.image_url, p.created_at,
        c.id, c.name, c.slug, c.description
`

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT`+productColumns+`
        FROM products p
        JOIN categories c ON c.id = p.category_id
        WHERE p.id = $1
    `, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("p.name ILIKE $%d", len(args)))
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY p.id"

	rows, err := r.pool.Query(ctx, query, args...)
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

func scanProduct(row pgx.Row) (*domproduct.Product, error) {
	var (
		p           domproduct.Product
		c           domcategory.Category
		description *string
		imageURL    *string
		catDesc     *string
	)
	if err := row.Scan(
		&p.ID, &p.Name, &description, &p.Price, &p.CategoryID, &imageURL, &p.CreatedAt,
		&c.ID, &c.Name, &c.Slug, &catDesc,
	); err != nil {
		return nil, err
	}
	p.Description = deref(description)
	p.ImageURL = deref(imageURL)
	c.Description = deref(catDesc)
	p.Category = &c
	return &p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
