package memory

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	domcategory "example.com/fastshop/internal/domain/category"
	domproduct "example.com/fastshop/internal/domain/product"
)

// Catalog keeps products and categories in memory. Reads return copies so
// callers never share state with the store.
type Catalog struct {
	mu         sync.RWMutex
	products   map[int64]domproduct.Product
	categories map[int64]domcategory.Category
}

func NewCatalog() *Catalog {
	return &Catalog{
		products:   make(map[int64]domproduct.Product),
		categories: make(map[int64]domcategory.Category),
	}
}

type seedFile struct {
	Categories []struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	} `json:"categories"`
	Products []struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		CategoryID  int64   `json:"category_id"`
		ImageURL    string  `json:"image_url"`
	} `json:"products"`
}

// LoadFile seeds the catalog from a JSON document with "categories" and
// "products" arrays.
func (c *Catalog) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read catalog seed")
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return errors.Wrapf(err, "parse catalog seed %s", path)
	}

	for _, sc := range seed.Categories {
		if err := c.PutCategory(domcategory.Category{
			ID:          sc.ID,
			Name:        sc.Name,
			Slug:        sc.Slug,
			Description: sc.Description,
		}); err != nil {
			return err
		}
	}
	for _, sp := range seed.Products {
		if err := c.PutProduct(domproduct.Product{
			ID:          sp.ID,
			Name:        sp.Name,
			Description: sp.Description,
			Price:       sp.Price,
			CategoryID:  sp.CategoryID,
			ImageURL:    sp.ImageURL,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) PutCategory(cat domcategory.Category) error {
	if cat.ID <= 0 || strings.TrimSpace(cat.Name) == "" {
		return errors.Errorf("invalid category %d", cat.ID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories[cat.ID] = cat
	return nil
}

// PutProduct inserts or replaces a product. The category must exist.
func (c *Catalog) PutProduct(p domproduct.Product) error {
	if p.ID <= 0 || strings.TrimSpace(p.Name) == "" || p.Price <= 0 {
		return errors.Errorf("invalid product %d", p.ID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.categories[p.CategoryID]; !ok {
		return errors.Wrapf(domcategory.ErrCategoryNotFound, "product %d", p.ID)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.Category = nil
	c.products[p.ID] = p
	return nil
}

func (c *Catalog) DeleteProduct(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.products, id)
}

func (c *Catalog) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	return c.withCategory(p), nil
}

func (c *Catalog) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	products := []*domproduct.Product{}
	for _, p := range c.products {
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		products = append(products, c.withCategory(p))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// Categories exposes the category side of the catalog as its own repository.
func (c *Catalog) Categories() *CategoryRepository {
	return &CategoryRepository{catalog: c}
}

// caller holds c.mu
func (c *Catalog) withCategory(p domproduct.Product) *domproduct.Product {
	if cat, ok := c.categories[p.CategoryID]; ok {
		p.Category = &cat
	}
	return &p
}

type CategoryRepository struct {
	catalog *Catalog
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domcategory.Category, error) {
	r.catalog.mu.RLock()
	defer r.catalog.mu.RUnlock()
	cat, ok := r.catalog.categories[id]
	if !ok {
		return nil, domcategory.ErrCategoryNotFound
	}
	return &cat, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domcategory.Category, error) {
	r.catalog.mu.RLock()
	defer r.catalog.mu.RUnlock()
	categories := make([]*domcategory.Category, 0, len(r.catalog.categories))
	for _, cat := range r.catalog.categories {
		cat := cat
		categories = append(categories, &cat)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}
