package product

import (
	"context"

	domcategory "example.com/fastshop/internal/domain/category"
	dom "example.com/fastshop/internal/domain/product"
)

type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*domcategory.Category, error)
}

type Service struct {
	repo         dom.Repository
	categoryRepo CategoryRepository
}

func NewService(repo dom.Repository, categoryRepo CategoryRepository) *Service {
	return &Service{repo: repo, categoryRepo: categoryRepo}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*dom.Product, error) {
	if id <= 0 {
		return nil, dom.ErrProductNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter dom.ListFilter) ([]*dom.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*dom.Product{}
	}
	return products, nil
}

// ListByCategory lists the products of an existing category.
func (s *Service) ListByCategory(ctx context.Context, categoryID int64) ([]*dom.Product, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.List(ctx, dom.ListFilter{CategoryID: &categoryID})
}
