package repository

import (
	"context"

	"github.com/jhoicas/megastore-web/internal/domain/entity"
)

// CategoryInput cuerpo de alta/edición de categoría y de marca.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SubcategoryInput cuerpo de alta/edición de subcategoría.
type SubcategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  int64  `json:"categoryId"`
}

// CategoryRepository puerto hacia /categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	Create(ctx context.Context, in CategoryInput) error
	Update(ctx context.Context, id int64, in CategoryInput) error
	Delete(ctx context.Context, id int64) error
}

// SubcategoryRepository puerto hacia /subcategories.
type SubcategoryRepository interface {
	List(ctx context.Context) ([]entity.Subcategory, error)
	GetByID(ctx context.Context, id int64) (*entity.Subcategory, error)
	Create(ctx context.Context, in SubcategoryInput) error
	Update(ctx context.Context, id int64, in SubcategoryInput) error
	Delete(ctx context.Context, id int64) error
}

// BrandRepository puerto hacia /brands.
type BrandRepository interface {
	List(ctx context.Context) ([]entity.Brand, error)
	GetByID(ctx context.Context, id int64) (*entity.Brand, error)
	Create(ctx context.Context, in CategoryInput) error
	Update(ctx context.Context, id int64, in CategoryInput) error
	Delete(ctx context.Context, id int64) error
}
