package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

type productAdminFixture struct {
	products *fakeProducts
	variants *fakeVariants
	uc       *ProductAdminUseCase
}

func newProductAdminFixture(n int) *productAdminFixture {
	f := &productAdminFixture{products: &fakeProducts{}, variants: &fakeVariants{}}
	for i := 1; i <= n; i++ {
		p := entity.Product{ID: int64(i), Name: fmt.Sprintf("Producto %02d", i), Price: decimal.NewFromInt(100), CategoryID: 1, BrandID: 2}
		if i%2 == 0 {
			p.CategoryID = 3
			p.Name = fmt.Sprintf("Zapatilla %02d", i)
		}
		f.products.products = append(f.products.products, p)
	}
	f.uc = NewProductAdminUseCase(
		f.products,
		f.variants,
		&fakeCategories{items: []entity.Category{{ID: 1, Name: "Ropa"}, {ID: 3, Name: "Calzado"}}},
		&fakeSubcategories{items: []entity.Subcategory{{ID: 8, Name: "Running", CategoryID: 3}}},
		&fakeBrands{items: []entity.Brand{{ID: 2, Name: "Acme"}}},
	)
	return f
}

func validProductForm() dto.ProductForm {
	return dto.ProductForm{Price: "10.50", Name: "Remera", Description: "Algodón", CategoryID: 1, SubcategoryID: 8, BrandID: 2}
}

func TestProductAdmin_ListFiltraBuscaYPagina(t *testing.T) {
	f := newProductAdminFixture(25)
	ctx := withUser(admin)

	page, err := f.uc.List(ctx, dto.ListQuery{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 25, page.Rows.Data.TotalItems)
	assert.Equal(t, 3, page.Rows.Data.TotalPages)
	assert.Len(t, page.Rows.Data.Items, 10)
	assert.Equal(t, int64(11), page.Rows.Data.Items[0].ID)

	page, err = f.uc.List(ctx, dto.ListQuery{CategoryID: 3})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Rows.Data.TotalItems)
	assert.Equal(t, "Calzado", page.Rows.Data.Items[0].Category)
	assert.True(t, page.Categories[1].Selected)

	page, err = f.uc.List(ctx, dto.ListQuery{Search: "zapa", Page: 99})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Rows.Data.TotalItems)
	assert.Equal(t, 2, page.Rows.Data.Number, "la página se acota al total")

	page, err = f.uc.List(ctx, dto.ListQuery{Search: "acme"})
	require.NoError(t, err)
	assert.Equal(t, 25, page.Rows.Data.TotalItems, "la búsqueda incluye la marca")
}

func TestProductAdmin_SinRolAdmin(t *testing.T) {
	f := newProductAdminFixture(1)
	_, err := f.uc.List(withUser(customer), dto.ListQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = f.uc.Delete(withUser(customer), 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.products.all())
}

func TestProductAdmin_CreateValidaAntesDeLlamar(t *testing.T) {
	f := newProductAdminFixture(0)
	ctx := withUser(admin)

	cases := map[string]func(*dto.ProductForm){
		"Por favor, completa todos los campos requeridos.":                  func(p *dto.ProductForm) { p.BrandID = 0 },
		"El precio debe ser un número positivo con hasta dos decimales.":    func(p *dto.ProductForm) { p.Price = "10.555" },
		"El nombre del producto debe tener al menos 2 caracteres.":          func(p *dto.ProductForm) { p.Name = "R" },
		"La descripción del producto no puede tener más de 128 caracteres.": func(p *dto.ProductForm) { p.Description = string(make([]byte, 129)) },
	}
	for want, mutate := range cases {
		form := validProductForm()
		mutate(&form)
		err := f.uc.Create(ctx, form)
		require.Error(t, err, want)
		assert.Equal(t, want, Message(err))
	}
	assert.Empty(t, f.products.all(), "con errores de validación no hay llamadas")
}

func TestProductAdmin_CreateEnviaPrecioDecimal(t *testing.T) {
	f := newProductAdminFixture(0)
	require.NoError(t, f.uc.Create(withUser(admin), validProductForm()))

	require.NotNil(t, f.products.last)
	assert.True(t, decimal.RequireFromString("10.5").Equal(f.products.last.Price))
	assert.Equal(t, "Remera", f.products.last.Name)
	assert.Equal(t, int64(8), f.products.last.SubcategoryID)
}

func TestProductAdmin_ErrorDeAPIMensajeOFallback(t *testing.T) {
	f := newProductAdminFixture(1)
	ctx := withUser(admin)

	f.products.mutErr = apiMessage("X")
	assert.Equal(t, "X", Message(f.uc.Update(ctx, 1, validProductForm())))

	f.products.mutErr = apiNoBody()
	assert.Equal(t, "Error al actualizar el producto.", Message(f.uc.Update(ctx, 1, validProductForm())))
	assert.Equal(t, "Error al restaurar el producto.", Message(f.uc.Restore(ctx, 1)))
}

func TestProductAdmin_EditFormPrecarga(t *testing.T) {
	f := newProductAdminFixture(2)
	page, err := f.uc.EditForm(withUser(admin), 2)
	require.NoError(t, err)
	assert.Equal(t, "100.00", page.Form.Price)
	assert.Equal(t, int64(3), page.Form.CategoryID)
	assert.True(t, page.Categories[1].Selected)
	require.Len(t, page.Subcategories, 1)
	assert.Equal(t, int64(3), page.Subcategories[0].ParentID)
}

func TestProductAdmin_Variantes(t *testing.T) {
	f := newProductAdminFixture(1)
	ctx := withUser(admin)
	f.variants.variants = []entity.Variant{{ID: 9, ProductID: 1, Color: "Rojo", Size: "M", Stock: 3}}

	page, err := f.uc.Variants(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Producto 01", page.Product.Data.Name)
	assert.Len(t, page.Variants.Data, 1)

	err = f.uc.CreateVariant(ctx, 1, dto.VariantForm{Color: "Azul", Size: "L", Stock: "-1"})
	assert.Equal(t, "El stock debe ser un número entero no negativo.", Message(err))
	assert.NotContains(t, f.variants.all(), "create")

	require.NoError(t, f.uc.CreateVariant(ctx, 1, dto.VariantForm{Color: "Azul", Size: "L", Stock: "12"}))
	assert.Equal(t, 12, f.variants.last.Stock)
	assert.Equal(t, int64(1), f.variants.last.ProductID)

	v, err := f.uc.Variant(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "3", VariantForm(v).Stock)
}

func TestProductAdmin_EditarVarianteConImagen(t *testing.T) {
	f := newProductAdminFixture(1)
	ctx := withUser(admin)
	form := dto.VariantForm{Color: "Rojo", Size: "M", Stock: "4"}

	err := f.uc.UpdateVariant(ctx, 9, 1, form, &repository.Upload{Filename: "nota.txt", ContentType: "text/plain", Data: []byte("x")})
	assert.Equal(t, "El archivo debe ser una imagen.", Message(err))
	assert.NotContains(t, f.variants.all(), "update 9")

	img := &repository.Upload{Filename: "rojo.png", ContentType: "image/png", Data: []byte("png")}
	require.NoError(t, f.uc.UpdateVariant(ctx, 9, 1, form, img))
	assert.Same(t, img, f.variants.last.Image)
	assert.Equal(t, 4, f.variants.last.Stock)

	require.NoError(t, f.uc.UpdateVariant(ctx, 9, 1, form, nil))
	assert.Nil(t, f.variants.last.Image)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías, subcategorías y marcas
// ──────────────────────────────────────────────────────────────────────────────

func TestTaxonomy_SubcategoriasFiltradasPorCategoria(t *testing.T) {
	subs := &fakeSubcategories{items: []entity.Subcategory{
		{ID: 1, Name: "Remeras", CategoryID: 1},
		{ID: 2, Name: "Running", Category: &entity.Ref{ID: 3, Name: "Calzado"}},
		{ID: 3, Name: "Huérfana", CategoryID: 77},
	}}
	uc := NewTaxonomyUseCase(&fakeCategories{items: []entity.Category{{ID: 1, Name: "Ropa"}}}, subs, &fakeBrands{})

	page, err := uc.Subcategories(withUser(admin), dto.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Rows.Data.Items, 3)
	assert.Equal(t, "Ropa", page.Rows.Data.Items[0].Category)
	assert.Equal(t, "Calzado", page.Rows.Data.Items[1].Category)
	assert.Equal(t, "Sin categoría", page.Rows.Data.Items[2].Category)

	page, err = uc.Subcategories(withUser(admin), dto.ListQuery{CategoryID: 3})
	require.NoError(t, err)
	require.Len(t, page.Rows.Data.Items, 1)
	assert.Equal(t, "Running", page.Rows.Data.Items[0].Name)
}

func TestTaxonomy_GuardarCategoria(t *testing.T) {
	cats := &fakeCategories{}
	uc := NewTaxonomyUseCase(cats, &fakeSubcategories{}, &fakeBrands{})
	ctx := withUser(admin)

	err := uc.SaveCategory(ctx, 0, dto.CategoryForm{Name: "   "})
	assert.Equal(t, "El nombre de la categoría no puede estar vacío.", Message(err))
	err = uc.SaveCategory(ctx, 0, dto.CategoryForm{})
	assert.Equal(t, "Por favor, completa el campo de nombre.", Message(err))
	assert.Empty(t, cats.all())

	require.NoError(t, uc.SaveCategory(ctx, 0, dto.CategoryForm{Name: " Ropa "}))
	require.NoError(t, uc.SaveCategory(ctx, 4, dto.CategoryForm{Name: "Calzado"}))
	assert.Equal(t, []string{"create Ropa", "update 4 Calzado"}, cats.all())
}

func TestTaxonomy_SubcategoriaRequiereCategoria(t *testing.T) {
	subs := &fakeSubcategories{}
	uc := NewTaxonomyUseCase(&fakeCategories{}, subs, &fakeBrands{})

	err := uc.SaveSubcategory(withUser(admin), 0, dto.SubcategoryForm{Name: "Running"})
	assert.Equal(t, "Por favor, selecciona una categoría.", Message(err))
	assert.Empty(t, subs.all())
}

func TestTaxonomy_MarcasBuscadas(t *testing.T) {
	brands := &fakeBrands{items: []entity.Brand{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Nike", Description: "Deportiva"}}}
	uc := NewTaxonomyUseCase(&fakeCategories{}, &fakeSubcategories{}, brands)

	page, err := uc.Brands(withUser(admin), dto.ListQuery{Search: "deport"})
	require.NoError(t, err)
	require.Len(t, page.Rows.Data.Items, 1)
	assert.Equal(t, "Nike", page.Rows.Data.Items[0].Name)

	brands.mutErr = apiNoBody()
	assert.Equal(t, "Error al eliminar la marca.", Message(uc.DeleteBrand(withUser(admin), 2)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUserAdmin_ListFiltraPorRol(t *testing.T) {
	repo := &fakeUsers{users: []entity.User{
		admin,
		customer,
		{ID: 8, Email: "lu@mail.com", FirstName: "Lucía", Roles: []entity.Role{{Name: entity.RoleUser}},
			Address: &entity.Address{Street: "Mitre", Number: "10", City: "Rosario", PostalCode: "2000", Country: "Argentina"}},
	}}
	uc := NewUserUseCase(repo)

	page, err := uc.List(withUser(admin), dto.ListQuery{Role: entity.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Rows.Data.TotalItems)
	assert.True(t, page.Roles[0].Selected)

	page, err = uc.List(withUser(admin), dto.ListQuery{Search: "rosario"})
	require.NoError(t, err)
	require.Len(t, page.Rows.Data.Items, 1)
	assert.Equal(t, "Mitre 10, Rosario, 2000, Argentina", page.Rows.Data.Items[0].Address)
	assert.Equal(t, []string{"Usuario"}, page.Rows.Data.Items[0].Roles)
}

func TestUserAdmin_CreateRequiereRol(t *testing.T) {
	repo := &fakeUsers{}
	uc := NewUserUseCase(repo)
	form := dto.UserCreateForm{
		Email: "nuevo@mail.com", FirstName: "N", LastName: "U",
		Password: "secreta", PasswordConfirmation: "secreta", Roles: []string{"ROOT"},
	}

	err := uc.Create(withUser(admin), form)
	assert.Equal(t, "Por favor, selecciona al menos un rol.", Message(err))
	assert.Empty(t, repo.all())

	form.Roles = []string{entity.RoleAdmin}
	require.NoError(t, uc.Create(withUser(admin), form))
	assert.Equal(t, []string{entity.RoleAdmin}, repo.lastUser.Roles)
}

func TestUserAdmin_UpdateEnviaDireccion(t *testing.T) {
	repo := &fakeUsers{users: []entity.User{customer}}
	uc := NewUserUseCase(repo)
	u := customer
	u.PhoneNumber = "3515551234"
	u.Address = &entity.Address{ID: 5, Street: "Mitre", Number: "10", City: "Rosario", PostalCode: "2000", Country: "Argentina"}

	form := UserEditForm(&u)
	require.NoError(t, uc.Update(withUser(admin), 7, 5, form))
	require.NotNil(t, repo.lastUser.Address)
	assert.Equal(t, int64(5), repo.lastUser.Address.ID)
	assert.Equal(t, "Rosario", repo.lastUser.Address.City)

	form.PhoneNumber = "123"
	assert.Equal(t, "El número de teléfono debe tener entre 9 y 15 dígitos.", Message(uc.Update(withUser(admin), 7, 5, form)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSales_ListPaginaDeCinco(t *testing.T) {
	sales := &fakeSales{}
	for i := 1; i <= 12; i++ {
		sales.sales = append(sales.sales, entity.Sale{ID: int64(i), Status: entity.SaleInProcess, User: &customer})
	}
	uc := NewSalesUseCase(sales)

	page, err := uc.List(withUser(admin), dto.ListQuery{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Rows.Data.TotalPages)
	require.Len(t, page.Rows.Data.Items, 2)
	assert.Equal(t, int64(11), page.Rows.Data.Items[0].ID, "se respeta el orden de la API")
	assert.Equal(t, "Juan Pérez", page.Rows.Data.Items[0].Customer)
}

func TestSales_DetalleOfreceTransiciones(t *testing.T) {
	sales := &fakeSales{sales: []entity.Sale{{ID: 1, Status: entity.SaleInProcess}, {ID: 2, Status: entity.SaleSent}}}
	uc := NewSalesUseCase(sales)

	st, err := uc.Detail(withUser(admin), 1)
	require.NoError(t, err)
	assert.Equal(t, []StatusOption{{Status: entity.SaleSent, Label: "Enviado"}, {Status: entity.SaleCanceled, Label: "Cancelado"}}, st.Data.NextStatuses)

	st, err = uc.Detail(withUser(admin), 2)
	require.NoError(t, err)
	assert.Equal(t, []StatusOption{{Status: entity.SaleCompleted, Label: "Completado"}}, st.Data.NextStatuses)
}

func TestSales_TransicionInvalidaNoLlama(t *testing.T) {
	sales := &fakeSales{}
	uc := NewSalesUseCase(sales)

	err := uc.Transition(withUser(admin), 1, "SHIPPED")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, sales.all())

	require.NoError(t, uc.Transition(withUser(admin), 1, entity.SaleSent))
	assert.Equal(t, []string{"transition 1 SENT"}, sales.all())

	sales.transErr = apiMessage("La venta ya fue enviada")
	assert.Equal(t, "La venta ya fue enviada", Message(uc.Transition(withUser(admin), 1, entity.SaleSent)))
}

func TestFail_ErroresDeSesionPasanSinEnvolver(t *testing.T) {
	assert.Nil(t, fail(nil, "x"))
	assert.Equal(t, domain.ErrNoSession, fail(domain.ErrNoSession, "x"))
	unauth := &domain.RemoteError{Kind: domain.KindUnauthorized, Status: 401}
	assert.Equal(t, error(unauth), fail(unauth, "x"))

	var f *Failure
	assert.ErrorAs(t, fail(&domain.RemoteError{Kind: domain.KindForbidden, Status: 403}, "x"), &f)
	assert.Equal(t, "x", f.Message)
	assert.Equal(t, msgGeneric, Message(context.Canceled))
}
