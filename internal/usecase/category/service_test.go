package category

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	dom "example.com/fastshop/internal/domain/category"
)

type mockCategoryRepository struct {
	categories []*dom.Category
	listErr    error
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*dom.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			cloned := *c
			return &cloned, nil
		}
	}
	return nil, dom.ErrCategoryNotFound
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*dom.Category, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.categories, nil
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: []*dom.Category{
			{ID: 1, Name: "Electronics", Slug: "electronics", Description: "Electronic devices and gadgets"},
			{ID: 2, Name: "Home & Garden", Slug: "home-garden"},
		},
	}
}

func TestGetCategory_Found(t *testing.T) {
	svc := NewService(newMockCategoryRepository())

	category, err := svc.GetByID(context.Background(), 1)

	require.NoError(t, err)
	require.Equal(t, "Electronics", category.Name)
	require.Equal(t, "electronics", category.Slug)
}

func TestGetCategory_NotFound(t *testing.T) {
	svc := NewService(newMockCategoryRepository())

	for _, id := range []int64{999, 0} {
		category, err := svc.GetByID(context.Background(), id)

		require.ErrorIs(t, err, dom.ErrCategoryNotFound)
		require.Nil(t, category)
	}
}

func TestListCategories(t *testing.T) {
	svc := NewService(newMockCategoryRepository())

	categories, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
}

func TestListCategories_EmptyIsNotNil(t *testing.T) {
	svc := NewService(&mockCategoryRepository{})

	categories, err := svc.List(context.Background())

	require.NoError(t, err)
	require.NotNil(t, categories)
	require.Len(t, categories, 0)
}

func TestListCategories_RepositoryError(t *testing.T) {
	svc := NewService(&mockCategoryRepository{listErr: errors.New("db down")})

	categories, err := svc.List(context.Background())

	require.Error(t, err)
	require.Nil(t, categories)
}
