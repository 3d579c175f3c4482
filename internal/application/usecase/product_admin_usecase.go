package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/fetch"
	"github.com/jhoicas/megastore-web/internal/application/listing"
	"github.com/jhoicas/megastore-web/internal/application/validation"
	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

const (
	msgCreateProduct  = "Error al crear el producto."
	msgUpdateProduct  = "Error al actualizar el producto."
	msgDeleteProduct  = "Error al eliminar el producto."
	msgRestoreProduct = "Error al restaurar el producto."
	msgLoadDeleted    = "Error al cargar los productos eliminados."
	msgCreateVariant  = "Error al crear la variante."
	msgUpdateVariant  = "Error al actualizar la variante."
	msgDeleteVariant  = "Error al eliminar la variante."
	msgLoadVariant    = "Error al cargar la variante."
	msgImageType      = "El archivo debe ser una imagen."
)

// ProductListPage listado de productos del panel con sus filtros.
type ProductListPage struct {
	ListPage[ProductCard]
	Categories    []Option
	Subcategories []Option
	Brands        []Option
}

// ProductFormPage alta/edición de producto.
type ProductFormPage struct {
	ID            int64
	Form          dto.ProductForm
	Categories    []Option
	Subcategories []Option
	Brands        []Option
	Error         string
}

// VariantListPage variantes de un producto.
type VariantListPage struct {
	Product  fetch.State[ProductCard]
	Variants fetch.State[[]entity.Variant]
}

// ProductAdminUseCase administración de productos y variantes.
type ProductAdminUseCase struct {
	products      repository.ProductRepository
	variants      repository.VariantRepository
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
	brands        repository.BrandRepository
}

// NewProductAdminUseCase construye el caso de uso.
func NewProductAdminUseCase(
	products repository.ProductRepository,
	variants repository.VariantRepository,
	categories repository.CategoryRepository,
	subcategories repository.SubcategoryRepository,
	brands repository.BrandRepository,
) *ProductAdminUseCase {
	return &ProductAdminUseCase{
		products:      products,
		variants:      variants,
		categories:    categories,
		subcategories: subcategories,
		brands:        brands,
	}
}

type taxonomy struct {
	categories    []entity.Category
	subcategories []entity.Subcategory
	brands        []entity.Brand
}

func (t taxonomy) index() nameIndex {
	return newNameIndex(t.categories, t.subcategories, t.brands)
}

// loadTaxonomy agrega al grupo la carga de categorías, subcategorías y marcas.
// Son accesorias: si alguna falla los selects quedan vacíos y los nombres caen en "Sin ...".
func (uc *ProductAdminUseCase) loadTaxonomy(ctx context.Context, g *errgroup.Group, t *taxonomy) {
	g.Go(func() error {
		t.categories, _ = uc.categories.List(ctx)
		return nil
	})
	g.Go(func() error {
		t.subcategories, _ = uc.subcategories.List(ctx)
		return nil
	})
	g.Go(func() error {
		t.brands, _ = uc.brands.List(ctx)
		return nil
	})
}

func productMatches(q dto.ListQuery) func(entity.Product) bool {
	return func(p entity.Product) bool {
		return (q.CategoryID == 0 || p.CategoryRef() == q.CategoryID) &&
			(q.SubcategoryID == 0 || p.SubcategoryRef() == q.SubcategoryID) &&
			(q.BrandID == 0 || p.BrandRef() == q.BrandID)
	}
}

func productFields(c ProductCard) []string {
	return []string{c.Name, c.Description, c.Category, c.Subcategory, c.Brand}
}

// List productos activos filtrados, buscados y paginados en memoria.
func (uc *ProductAdminUseCase) List(ctx context.Context, q dto.ListQuery) (*ProductListPage, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	q.DefaultPage()
	var (
		st fetch.State[[]entity.Product]
		t  taxonomy
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st = fetch.Run(gctx, uc.products.List, repository.ProductFilter{}, msgLoadProducts)
		return nil
	})
	uc.loadTaxonomy(gctx, g, &t)
	_ = g.Wait()

	rows := listing.Search(toCards(listing.Filter(st.Data, productMatches(q)), t.index()), q.Search, productFields)

	return &ProductListPage{
		ListPage:      paged(rows, st, q, listing.DefaultPageSize),
		Categories:    categoryOptions(t.categories, q.CategoryID),
		Subcategories: subcategoryOptions(t.subcategories, q.SubcategoryID),
		Brands:        brandOptions(t.brands, q.BrandID),
	}, nil
}

// Deleted productos dados de baja (buscados y paginados).
func (uc *ProductAdminUseCase) Deleted(ctx context.Context, q dto.ListQuery) (*ListPage[ProductCard], error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	q.DefaultPage()
	var (
		st fetch.State[[]entity.Product]
		t  taxonomy
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st = fetch.Run(gctx, func(ctx context.Context, _ struct{}) ([]entity.Product, error) {
			return uc.products.ListDeleted(ctx)
		}, struct{}{}, msgLoadDeleted)
		return nil
	})
	uc.loadTaxonomy(gctx, g, &t)
	_ = g.Wait()

	rows := listing.Search(toCards(st.Data, t.index()), q.Search, productFields)
	page := paged(rows, st, q, listing.DefaultPageSize)
	return &page, nil
}

// Delete baja lógica del producto.
func (uc *ProductAdminUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return fail(uc.products.Delete(ctx, id), msgDeleteProduct)
}

// Restore reactiva un producto dado de baja.
func (uc *ProductAdminUseCase) Restore(ctx context.Context, id int64) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return fail(uc.products.Restore(ctx, id), msgRestoreProduct)
}

// Summary nombre y datos visibles de un producto (páginas de confirmación).
func (uc *ProductAdminUseCase) Summary(ctx context.Context, id int64) (ProductCard, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return ProductCard{}, err
	}
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return ProductCard{}, fail(err, msgLoadProduct)
	}
	return toProductCard(*p, nameIndex{}), nil
}

// NewForm formulario de alta vacío con sus opciones.
func (uc *ProductAdminUseCase) NewForm(ctx context.Context) (*ProductFormPage, error) {
	return uc.FormPage(ctx, 0, dto.ProductForm{})
}

// EditForm formulario de edición precargado desde GET /products/{id}.
func (uc *ProductAdminUseCase) EditForm(ctx context.Context, id int64) (*ProductFormPage, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, fail(err, msgLoadProduct)
	}
	return uc.FormPage(ctx, id, dto.ProductForm{
		Price:         p.Price.StringFixed(2),
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryRef(),
		SubcategoryID: p.SubcategoryRef(),
		BrandID:       p.BrandRef(),
	})
}

// FormPage arma la página del formulario con form (p. ej. para volver a mostrarlo tras un error).
func (uc *ProductAdminUseCase) FormPage(ctx context.Context, id int64, form dto.ProductForm) (*ProductFormPage, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	var t taxonomy
	g, gctx := errgroup.WithContext(ctx)
	uc.loadTaxonomy(gctx, g, &t)
	_ = g.Wait()
	return &ProductFormPage{
		ID:            id,
		Form:          form,
		Categories:    categoryOptions(t.categories, form.CategoryID),
		Subcategories: subcategoryOptions(t.subcategories, form.SubcategoryID),
		Brands:        brandOptions(t.brands, form.BrandID),
	}, nil
}

func productInput(form dto.ProductForm) repository.ProductInput {
	price, _ := decimal.NewFromString(strings.TrimSpace(form.Price))
	return repository.ProductInput{
		Name:          strings.TrimSpace(form.Name),
		Description:   strings.TrimSpace(form.Description),
		Price:         price,
		CategoryID:    form.CategoryID,
		SubcategoryID: form.SubcategoryID,
		BrandID:       form.BrandID,
	}
}

// Create valida y da de alta el producto. Con errores de validación no se llama a la API.
func (uc *ProductAdminUseCase) Create(ctx context.Context, form dto.ProductForm) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := validation.First(form); err != nil {
		return fail(err, msgCreateProduct)
	}
	return fail(uc.products.Create(ctx, productInput(form)), msgCreateProduct)
}

// Update valida y guarda el producto.
func (uc *ProductAdminUseCase) Update(ctx context.Context, id int64, form dto.ProductForm) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := validation.First(form); err != nil {
		return fail(err, msgUpdateProduct)
	}
	return fail(uc.products.Update(ctx, id, productInput(form)), msgUpdateProduct)
}

// Variants producto y sus variantes, en paralelo.
func (uc *ProductAdminUseCase) Variants(ctx context.Context, productID int64) (*VariantListPage, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	page := &VariantListPage{}
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
		page.Variants = fetch.Run(gctx, uc.variants.ListByProduct, productID, msgLoadVariants)
		return nil
	})
	_ = g.Wait()
	return page, nil
}

// Variant variante por id (edición y confirmación de borrado).
func (uc *ProductAdminUseCase) Variant(ctx context.Context, id int64) (*entity.Variant, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	v, err := uc.variants.GetByID(ctx, id)
	if err != nil {
		return nil, fail(err, msgLoadVariant)
	}
	return v, nil
}

// VariantForm precarga el formulario de edición de una variante.
func VariantForm(v *entity.Variant) dto.VariantForm {
	return dto.VariantForm{Color: v.Color, Size: v.Size, Stock: strconv.Itoa(v.Stock), ImageURL: v.ImageURL}
}

func variantInput(productID int64, form dto.VariantForm) repository.VariantInput {
	stock, _ := strconv.Atoi(strings.TrimSpace(form.Stock))
	return repository.VariantInput{
		ProductID: productID,
		Color:     strings.TrimSpace(form.Color),
		Size:      strings.TrimSpace(form.Size),
		Stock:     stock,
	}
}

// CreateVariant valida y da de alta una variante del producto.
func (uc *ProductAdminUseCase) CreateVariant(ctx context.Context, productID int64, form dto.VariantForm) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := validation.First(form); err != nil {
		return fail(err, msgCreateVariant)
	}
	return fail(uc.variants.Create(ctx, variantInput(productID, form)), msgCreateVariant)
}

// UpdateVariant valida y guarda una variante. image (opcional) reemplaza la imagen actual.
func (uc *ProductAdminUseCase) UpdateVariant(ctx context.Context, id, productID int64, form dto.VariantForm, image *repository.Upload) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := validation.First(form); err != nil {
		return fail(err, msgUpdateVariant)
	}
	if image != nil && !strings.HasPrefix(image.ContentType, "image/") {
		return fail(domain.NewValidationError("Image", msgImageType), msgUpdateVariant)
	}
	in := variantInput(productID, form)
	in.Image = image
	return fail(uc.variants.Update(ctx, id, in), msgUpdateVariant)
}

// DeleteVariant elimina una variante.
func (uc *ProductAdminUseCase) DeleteVariant(ctx context.Context, id int64) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return fail(uc.variants.Delete(ctx, id), msgDeleteVariant)
}
