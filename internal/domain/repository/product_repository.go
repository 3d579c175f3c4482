package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/megastore-web/internal/domain/entity"
)

// ProductFilter filtros opcionales de GET /products (cero = sin filtro).
type ProductFilter struct {
	BrandID       int64
	CategoryID    int64
	SubcategoryID int64
	Search        string
}

// IsZero indica que no hay ningún filtro activo.
func (f ProductFilter) IsZero() bool {
	return f.BrandID == 0 && f.CategoryID == 0 && f.SubcategoryID == 0 && f.Search == ""
}

// ProductInput cuerpo de alta/edición de producto. Price viaja con dos decimales.
type ProductInput struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    int64           `json:"categoryId"`
	SubcategoryID int64           `json:"subcategoryId"`
	BrandID       int64           `json:"brandId"`
}

// ProductRepository puerto hacia /products.
type ProductRepository interface {
	List(ctx context.Context, f ProductFilter) ([]entity.Product, error)
	ListDeleted(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, in ProductInput) error
	Update(ctx context.Context, id int64, in ProductInput) error
	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}

// Upload archivo recibido de un formulario y reenviado a la API.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// VariantInput cuerpo de alta/edición de variante. Con Image, la edición viaja como multipart.
type VariantInput struct {
	ProductID int64   `json:"productId,omitempty"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	Stock     int     `json:"stock"`
	Image     *Upload `json:"-"`
}

// VariantRepository puerto hacia /variants.
type VariantRepository interface {
	ListByProduct(ctx context.Context, productID int64) ([]entity.Variant, error)
	GetByID(ctx context.Context, id int64) (*entity.Variant, error)
	Create(ctx context.Context, in VariantInput) error
	Update(ctx context.Context, id int64, in VariantInput) error
	Delete(ctx context.Context, id int64) error
}
