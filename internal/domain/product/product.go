package product

import (
	"time"

	domcategory "example.com/fastshop/internal/domain/category"
)

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	CategoryID  int64
	Category    *domcategory.Category
	ImageURL    string
	CreatedAt   time.Time
}

type ListFilter struct {
	CategoryID *int64
	Search     string
}
