package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/megastore-web/internal/application/fetch"
	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

type catalogFixture struct {
	products *fakeProducts
	variants *fakeVariants
	cart     *fakeCart
	uc       *CatalogUseCase
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		products: &fakeProducts{products: []entity.Product{
			{ID: 3, Name: "Remera", Price: decimal.NewFromInt(2500), CategoryID: 1, BrandID: 4},
			{ID: 5, Name: "Buzo", Price: decimal.RequireFromString("7999.9"), Category: &entity.Ref{ID: 1, Name: "Ropa"}},
		}},
		variants: &fakeVariants{variants: []entity.Variant{
			{ID: 9, ProductID: 3, Color: "Rojo", Size: "M", Stock: 4},
			{ID: 10, ProductID: 3, Color: "Azul", Size: "L", Stock: 0},
		}},
		cart: &fakeCart{},
	}
	f.uc = NewCatalogUseCase(
		f.products,
		f.variants,
		&fakeCategories{items: []entity.Category{{ID: 1, Name: "Indumentaria"}}},
		&fakeSubcategories{},
		&fakeBrands{items: []entity.Brand{{ID: 4, Name: "Acme"}}},
		f.cart,
	)
	return f
}

func TestCatalog_BrowseResuelveNombres(t *testing.T) {
	f := newCatalogFixture()
	page := f.uc.Browse(context.Background(), repository.ProductFilter{})

	require.Len(t, page.Products.Data, 2)
	remera := page.Products.Data[0]
	assert.Equal(t, "Indumentaria", remera.Category)
	assert.Equal(t, "Sin subcategoría", remera.Subcategory)
	assert.Equal(t, "Acme", remera.Brand)
	assert.Equal(t, "$ 2.500,00", remera.Price)
	assert.Equal(t, "Ropa", page.Products.Data[1].Category, "el objeto embebido tiene prioridad")
	assert.Equal(t, "Sin marca", page.Products.Data[1].Brand)
	assert.False(t, page.Filtered)
}

func TestCatalog_BrowseErrorConservaLasOpciones(t *testing.T) {
	f := newCatalogFixture()
	f.products.listErr = apiNoBody()
	page := f.uc.Browse(context.Background(), repository.ProductFilter{CategoryID: 1})

	assert.Equal(t, "Error al cargar los productos.", page.Products.Error)
	assert.True(t, page.Filtered)
	require.Len(t, page.Categories, 1)
	assert.True(t, page.Categories[0].Selected)
}

func TestCatalog_BusquedaNuevaDescartaLaAnterior(t *testing.T) {
	f := newCatalogFixture()
	started := make(chan struct{})
	f.products.onList = func(ctx context.Context, filter repository.ProductFilter) error {
		if filter.Search == "rem" {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		}
		return nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.uc.Search(context.Background(), "visitante", repository.ProductFilter{Search: "rem"})
		done <- err
	}()
	<-started

	cards, err := f.uc.Search(context.Background(), "visitante", repository.ProductFilter{Search: "remera"})
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.ErrorIs(t, <-done, fetch.ErrStale)
}

func TestCatalog_DetalleCargaProductoYVariantes(t *testing.T) {
	f := newCatalogFixture()
	page := f.uc.Detail(context.Background(), 3)

	assert.Equal(t, "Remera", page.Product.Data.Name)
	require.Len(t, page.Variants.Data, 2)
	assert.Equal(t, "Rojo / M", page.Variants.Data[0].Label)
}

func TestCatalog_DetalleInexistente(t *testing.T) {
	f := newCatalogFixture()
	page := f.uc.Detail(context.Background(), 99)
	assert.Equal(t, msgLoadProduct, page.Product.Error)
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 4, ClampQuantity(10, 4))
	assert.Equal(t, 1, ClampQuantity(0, 4))
	assert.Equal(t, 2, ClampQuantity(2, 4))
}

func TestCatalog_AgregarAlCarritoAcotaAlStock(t *testing.T) {
	f := newCatalogFixture()
	require.NoError(t, f.uc.AddToCart(withUser(customer), 9, 10))
	assert.Equal(t, []string{"add 9 4"}, f.cart.all())
}

func TestCatalog_AgregarSinStockNoLlama(t *testing.T) {
	f := newCatalogFixture()
	err := f.uc.AddToCart(withUser(customer), 10, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "No hay stock disponible para esta variante.", AddToCartMessage(err))
	assert.Empty(t, f.cart.all())
}

func TestCatalog_AgregarSinSesion(t *testing.T) {
	f := newCatalogFixture()
	err := f.uc.AddToCart(context.Background(), 9, 1)
	assert.True(t, errors.Is(err, domain.ErrNoSession))
	assert.Empty(t, f.variants.all())
}

func TestCatalog_AgregarErrorDeAPI(t *testing.T) {
	f := newCatalogFixture()
	f.cart.addErr = apiMessage("X")
	err := f.uc.AddToCart(withUser(customer), 9, 1)
	assert.Equal(t, "X", AddToCartMessage(err))

	f.cart.addErr = apiNoBody()
	err = f.uc.AddToCart(withUser(customer), 9, 1)
	assert.Equal(t, "No se pudo agregar el producto al carrito.", AddToCartMessage(err))
}
