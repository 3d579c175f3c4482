package entity

import "github.com/shopspring/decimal"

// Product producto del catálogo. La API puede enviar las relaciones como ids planos
// (categoryId, subcategoryId, brandId) o como objetos embebidos; ver los helpers *ID.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    int64           `json:"categoryId,omitempty"`
	Category      *Ref            `json:"category,omitempty"`
	SubcategoryID int64           `json:"subcategoryId,omitempty"`
	Subcategory   *Ref            `json:"subcategory,omitempty"`
	BrandID       int64           `json:"brandId,omitempty"`
	Brand         *Ref            `json:"brand,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}

func refID(flat int64, ref *Ref) int64 {
	if flat != 0 {
		return flat
	}
	if ref != nil {
		return ref.ID
	}
	return 0
}

// CategoryRef id de categoría del producto (0 si no tiene).
func (p *Product) CategoryRef() int64 { return refID(p.CategoryID, p.Category) }

// SubcategoryRef id de subcategoría del producto (0 si no tiene).
func (p *Product) SubcategoryRef() int64 { return refID(p.SubcategoryID, p.Subcategory) }

// BrandRef id de marca del producto (0 si no tiene).
func (p *Product) BrandRef() int64 { return refID(p.BrandID, p.Brand) }

// Variant combinación color/talle de un producto con su stock.
type Variant struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Stock     int    `json:"stock"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Product   *Ref   `json:"product,omitempty"`
}

// Label descripción corta "Color / Talle".
func (v *Variant) Label() string {
	switch {
	case v.Color != "" && v.Size != "":
		return v.Color + " / " + v.Size
	case v.Color != "":
		return v.Color
	default:
		return v.Size
	}
}

// ProductName nombre del producto embebido, si viene.
func (v *Variant) ProductName() string {
	if v.Product != nil {
		return v.Product.Name
	}
	return ""
}
