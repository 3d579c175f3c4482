package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/megastore-web/internal/application/fetch"
	"github.com/jhoicas/megastore-web/internal/application/listing"
	"github.com/jhoicas/megastore-web/internal/application/session"
	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

const (
	msgLoadProducts = "Error al cargar los productos."
	msgLoadProduct  = "Error al cargar el producto."
	msgLoadVariants = "Error al cargar las variantes."
	msgAddToCart    = "No se pudo agregar el producto al carrito."
)

// CatalogPage grilla de la tienda con el modal de filtros.
type CatalogPage struct {
	Products      fetch.State[[]ProductCard]
	Filter        repository.ProductFilter
	Categories    []Option
	Subcategories []Option
	Brands        []Option
	Filtered      bool
}

// ProductDetailPage ficha de producto con selección de variante.
type ProductDetailPage struct {
	Product  fetch.State[ProductCard]
	Variants fetch.State[[]VariantOption]
	Error    string
}

// VariantOption variante seleccionable en la ficha.
type VariantOption struct {
	ID       int64
	Label    string
	Color    string
	Size     string
	Stock    int
	ImageURL string
}

// CatalogUseCase casos de uso de la tienda pública: grilla, búsqueda, ficha y agregar al carrito.
type CatalogUseCase struct {
	products      repository.ProductRepository
	variants      repository.VariantRepository
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
	brands        repository.BrandRepository
	cart          repository.CartRepository
	searches      *fetch.Registry[repository.ProductFilter, []entity.Product]
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	products repository.ProductRepository,
	variants repository.VariantRepository,
	categories repository.CategoryRepository,
	subcategories repository.SubcategoryRepository,
	brands repository.BrandRepository,
	cart repository.CartRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		products:      products,
		variants:      variants,
		categories:    categories,
		subcategories: subcategories,
		brands:        brands,
		cart:          cart,
		searches:      fetch.NewRegistry(products.List, msgLoadProducts),
	}
}

// Browse arma la grilla: productos filtrados y opciones del modal de filtros, en paralelo.
func (uc *CatalogUseCase) Browse(ctx context.Context, f repository.ProductFilter) *CatalogPage {
	f.Search = strings.TrimSpace(f.Search)
	page := &CatalogPage{Filter: f, Filtered: !f.IsZero()}

	var (
		products fetch.State[[]entity.Product]
		cats     []entity.Category
		subs     []entity.Subcategory
		brands   []entity.Brand
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products = fetch.Run(gctx, uc.products.List, f, msgLoadProducts)
		return nil
	})
	// las opciones del filtro son accesorias: si fallan el modal queda vacío
	g.Go(func() error {
		cats, _ = uc.categories.List(gctx)
		return nil
	})
	g.Go(func() error {
		subs, _ = uc.subcategories.List(gctx)
		return nil
	})
	g.Go(func() error {
		brands, _ = uc.brands.List(gctx)
		return nil
	})
	_ = g.Wait()

	page.Categories = categoryOptions(cats, f.CategoryID)
	page.Subcategories = subcategoryOptions(subs, f.SubcategoryID)
	page.Brands = brandOptions(brands, f.BrandID)
	page.Products = fetch.State[[]ProductCard]{
		Data:   toCards(products.Data, newNameIndex(cats, subs, brands)),
		Loaded: products.Loaded,
		Error:  products.Error,
	}
	return page
}

// Search búsqueda en vivo para el input con debounce. visitor identifica al navegador: una búsqueda
// nueva del mismo visitante cancela la anterior, que devuelve fetch.ErrStale.
func (uc *CatalogUseCase) Search(ctx context.Context, visitor string, f repository.ProductFilter) ([]ProductCard, error) {
	f.Search = strings.TrimSpace(f.Search)
	q := uc.searches.Acquire(visitor)
	defer uc.searches.Release(visitor)

	if err := q.Load(ctx, f); err != nil {
		return nil, err
	}
	return toCards(q.Data(), nameIndex{}), nil
}

func newNameIndex(cats []entity.Category, subs []entity.Subcategory, brands []entity.Brand) nameIndex {
	return nameIndex{
		categories:    listing.Names(cats, func(c entity.Category) int64 { return c.ID }, func(c entity.Category) string { return c.Name }),
		subcategories: listing.Names(subs, func(s entity.Subcategory) int64 { return s.ID }, func(s entity.Subcategory) string { return s.Name }),
		brands:        listing.Names(brands, func(b entity.Brand) int64 { return b.ID }, func(b entity.Brand) string { return b.Name }),
	}
}

func toCards(products []entity.Product, idx nameIndex) []ProductCard {
	out := make([]ProductCard, 0, len(products))
	for _, p := range products {
		out = append(out, toProductCard(p, idx))
	}
	return out
}

// Detail carga producto y variantes en paralelo.
func (uc *CatalogUseCase) Detail(ctx context.Context, productID int64) *ProductDetailPage {
	page := &ProductDetailPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st := fetch.Run(gctx, uc.products.GetByID, productID, msgLoadProduct)
		page.Product = fetch.State[ProductCard]{Loaded: st.Loaded, Error: st.Error}
		if st.Data != nil {
			page.Product.Data = toProductCard(*st.Data, nameIndex{})
		}
		return nil
	})
	g.Go(func() error {
		st := fetch.Run(gctx, uc.variants.ListByProduct, productID, msgLoadVariants)
		page.Variants = fetch.State[[]VariantOption]{Data: toVariantOptions(st.Data), Loaded: st.Loaded, Error: st.Error}
		return nil
	})
	_ = g.Wait()
	return page
}

func toVariantOptions(variants []entity.Variant) []VariantOption {
	out := make([]VariantOption, 0, len(variants))
	for _, v := range variants {
		out = append(out, VariantOption{ID: v.ID, Label: v.Label(), Color: v.Color, Size: v.Size, Stock: v.Stock, ImageURL: v.ImageURL})
	}
	return out
}

// ClampQuantity acota la cantidad pedida a [1, stock].
func ClampQuantity(qty, stock int) int {
	if qty > stock {
		qty = stock
	}
	if qty < 1 {
		qty = 1
	}
	return qty
}

// AddToCart agrega qty unidades de la variante (acotadas al stock) al carrito de la sesión.
func (uc *CatalogUseCase) AddToCart(ctx context.Context, variantID int64, qty int) error {
	if _, err := session.Require(ctx); err != nil {
		return err
	}
	if variantID == 0 {
		return domain.NewValidationError("variant", "Por favor, selecciona una variante.")
	}
	v, err := uc.variants.GetByID(ctx, variantID)
	if err != nil {
		return fmt.Errorf("catálogo: obtener variante: %w", err)
	}
	if v.Stock < 1 {
		return domain.NewValidationError("quantity", "No hay stock disponible para esta variante.")
	}
	return uc.cart.AddItem(ctx, variantID, ClampQuantity(qty, v.Stock))
}

// AddToCartMessage mensaje a mostrar si AddToCart falla.
func AddToCartMessage(err error) string { return domain.UserMessage(err, msgAddToCart) }
