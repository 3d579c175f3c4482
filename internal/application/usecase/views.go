package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/megastore-web/internal/application/listing"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/pkg/money"
)

// Textos para relaciones sin resolver.
const (
	noCategory    = "Sin categoría"
	noSubcategory = "Sin subcategoría"
	noBrand       = "Sin marca"
)

// Option opción de un select o filtro.
type Option struct {
	ID       int64
	Name     string
	ParentID int64 // categoría de una subcategoría
	Selected bool
}

func categoryOptions(items []entity.Category, selected int64) []Option {
	out := make([]Option, 0, len(items))
	for _, c := range items {
		out = append(out, Option{ID: c.ID, Name: c.Name, Selected: c.ID == selected})
	}
	return out
}

func subcategoryOptions(items []entity.Subcategory, selected int64) []Option {
	out := make([]Option, 0, len(items))
	for _, s := range items {
		out = append(out, Option{ID: s.ID, Name: s.Name, ParentID: s.ParentID(), Selected: s.ID == selected})
	}
	return out
}

func brandOptions(items []entity.Brand, selected int64) []Option {
	out := make([]Option, 0, len(items))
	for _, b := range items {
		out = append(out, Option{ID: b.ID, Name: b.Name, Selected: b.ID == selected})
	}
	return out
}

// ProductCard producto tal como se muestra en grillas y tablas.
type ProductCard struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Brand       string `json:"brand"`
}

func refName(ref *entity.Ref, names map[int64]string, id int64, fallback string) string {
	if ref != nil && ref.Name != "" {
		return ref.Name
	}
	return listing.NameOr(names, id, fallback)
}

// nameIndex índices id → nombre para resolver relaciones de producto.
type nameIndex struct {
	categories    map[int64]string
	subcategories map[int64]string
	brands        map[int64]string
}

func toProductCard(p entity.Product, idx nameIndex) ProductCard {
	return ProductCard{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money.Format(p.Price),
		ImageURL:    p.ImageURL,
		Category:    refName(p.Category, idx.categories, p.CategoryRef(), noCategory),
		Subcategory: refName(p.Subcategory, idx.subcategories, p.SubcategoryRef(), noSubcategory),
		Brand:       refName(p.Brand, idx.brands, p.BrandRef(), noBrand),
	}
}

// SaleLineView línea de venta para la vista.
type SaleLineView struct {
	Product   string
	Variant   string
	Quantity  int
	UnitPrice string
	Subtotal  string
}

// SaleView venta formateada para la vista.
type SaleView struct {
	ID             int64
	Date           string
	Customer       string
	CustomerEmail  string
	PaymentMethod  string
	ShippingMethod string
	ShippingCost   string
	Total          string
	Status         string
	StatusLabel    string
	NextStatuses   []StatusOption
	Lines          []SaleLineView
	ShipTo         string
	FullName       string
}

// StatusOption transición ofrecida en el panel.
type StatusOption struct {
	Status string
	Label  string
}

func toSaleView(s entity.Sale) SaleView {
	v := SaleView{
		ID:             s.ID,
		Date:           s.SaleDate.Display(),
		PaymentMethod:  s.PaymentMethod,
		ShippingMethod: shippingLabel(s.ShippingMethod),
		ShippingCost:   money.Format(s.ShippingCost),
		Total:          money.Format(s.TotalAmount),
		Status:         s.Status,
		StatusLabel:    s.StatusLabel(),
		FullName:       s.FullName,
		ShipTo:         joinNonEmpty(s.Address, s.City, s.State, s.PostalCode, s.Country),
	}
	if s.User != nil {
		v.Customer = s.User.FullName()
		v.CustomerEmail = s.User.Email
	}
	if v.Customer == "" {
		v.Customer = s.FullName
	}
	for _, st := range s.NextStatuses() {
		v.NextStatuses = append(v.NextStatuses, StatusOption{Status: st, Label: entity.SaleStatusLabels[st]})
	}
	for _, d := range s.SaleDetails {
		v.Lines = append(v.Lines, SaleLineView{
			Product:   d.Variant.ProductName(),
			Variant:   d.Variant.Label(),
			Quantity:  d.Quantity,
			UnitPrice: money.Format(d.UnitPrice),
			Subtotal:  money.Format(d.Subtotal),
		})
	}
	return v
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}

func sumDecimal(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
