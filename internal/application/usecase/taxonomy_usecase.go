package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/fetch"
	"github.com/jhoicas/megastore-web/internal/application/listing"
	"github.com/jhoicas/megastore-web/internal/application/validation"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

const (
	msgLoadCategories    = "Error al cargar las categorías."
	msgLoadSubcategories = "Error al cargar las subcategorías."
	msgLoadBrands        = "Error al cargar las marcas."
	msgSaveCategory      = "Error al guardar la categoría."
	msgDeleteCategory    = "Error al eliminar la categoría."
	msgSaveSubcategory   = "Error al guardar la subcategoría."
	msgDeleteSubcategory = "Error al eliminar la subcategoría."
	msgSaveBrand         = "Error al guardar la marca."
	msgDeleteBrand       = "Error al eliminar la marca."
)

// SubcategoryRow subcategoría con el nombre de su categoría resuelto.
type SubcategoryRow struct {
	ID          int64
	Name        string
	Description string
	CategoryID  int64
	Category    string
}

// SubcategoryListPage listado de subcategorías con el filtro por categoría.
type SubcategoryListPage struct {
	ListPage[SubcategoryRow]
	Categories []Option
}

// TaxonomyUseCase administración de categorías, subcategorías y marcas.
type TaxonomyUseCase struct {
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
	brands        repository.BrandRepository
}

// NewTaxonomyUseCase construye el caso de uso.
func NewTaxonomyUseCase(
	categories repository.CategoryRepository,
	subcategories repository.SubcategoryRepository,
	brands repository.BrandRepository,
) *TaxonomyUseCase {
	return &TaxonomyUseCase{categories: categories, subcategories: subcategories, brands: brands}
}

func nameAndDescription[T any](name, desc func(T) string) func(T) []string {
	return func(it T) []string { return []string{name(it), desc(it)} }
}

// ─── Categorías ───────────────────────────────────────────────────────────────

// Categories listado de categorías buscado y paginado.
func (uc *TaxonomyUseCase) Categories(ctx context.Context, q dto.ListQuery) (*ListPage[entity.Category], error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	q.DefaultPage()
	st := fetch.Run(ctx, func(ctx context.Context, _ struct{}) ([]entity.Category, error) {
		return uc.categories.List(ctx)
	}, struct{}{}, msgLoadCategories)
	rows := listing.Search(st.Data, q.Search, nameAndDescription(
		func(c entity.Category) string { return c.Name },
		func(c entity.Category) string { return c.Description },
	))
	page := paged(rows, st, q, listing.DefaultPageSize)
	return &page, nil
}

// Category categoría por id (edición y confirmación de borrado).
func (uc *TaxonomyUseCase) Category(ctx context.Context, id int64) (*entity.Category, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, fail(err, msgLoadCategories)
	}
	return c, nil
}

// SaveCategory valida y crea (id == 0) o actualiza la categoría.
func (uc *TaxonomyUseCase) SaveCategory(ctx context.Context, id int64, form dto.CategoryForm) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := validation.First(form); err != nil {
		return fail(err, msgSaveCategory)
	}
	in := repository.CategoryInput{Name: strings.TrimSpace(form.Name), Description: strings.TrimSpace(form.Description)}
	if id == 0 {
		return fail(uc.categories.Create(ctx, in), msgSaveCategory)
	}
	return fail(uc.categories.Update(ctx, id, in), msgSaveCategory)
}

// DeleteCategory elimina la categoría.
func (uc *TaxonomyUseCase) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return fail(uc.categories.Delete(ctx, id), msgDeleteCategory)
}

// ─── Subcategorías ────────────────────────────────────────────────────────────

// Subcategories listado de subcategorías, filtrado por categoría (q.CategoryID), buscado y paginado.
func (uc *TaxonomyUseCase) Subcategories(ctx context.Context, q dto.ListQuery) (*SubcategoryListPage, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	q.DefaultPage()
	var (
		st   fetch.State[[]entity.Subcategory]
		cats []entity.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st = fetch.Run(gctx, func(ctx context.Context, _ struct{}) ([]entity.Subcategory, error) {
			return uc.subcategories.List(ctx)
		}, struct{}{}, msgLoadSubcategories)
		return nil
	})
	g.Go(func() error {
		cats, _ = uc.categories.List(gctx)
		return nil
	})
	_ = g.Wait()

	names := listing.Names(cats, func(c entity.Category) int64 { return c.ID }, func(c entity.Category) string { return c.Name })
	rows := make([]SubcategoryRow, 0, len(st.Data))
	for _, s := range st.Data {
		if q.CategoryID != 0 && s.ParentID() != q.CategoryID {
			continue
		}
		rows = append(rows, SubcategoryRow{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			CategoryID:  s.ParentID(),
			Category:    refName(s.Category, names, s.ParentID(), noCategory),
		})
	}
	rows = listing.Search(rows, q.Search, func(r SubcategoryRow) []string {
		return []string{r.Name, r.Description, r.Category}
	})
	return &SubcategoryListPage{
		ListPage:   paged(rows, st, q, listing.DefaultPageSize),
		Categories: categoryOptions(cats, q.CategoryID),
	}, nil
}

// Subcategory subcategoría por id.
func (uc *TaxonomyUseCase) Subcategory(ctx context.Context, id int64) (*entity.Subcategory, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	s, err := uc.subcategories.GetByID(ctx, id)
	if err != nil {
		return nil, fail(err, msgLoadSubcategories)
	}
	return s, nil
}

// CategoryOptions opciones del select de categoría del formulario de subcategoría.
func (uc *TaxonomyUseCase) CategoryOptions(ctx context.Context, selected int64) []Option {
	cats, _ := uc.categories.List(ctx)
	return categoryOptions(cats, selected)
}

// SaveSubcategory valida y crea (id == 0) o actualiza la subcategoría.
func (uc *TaxonomyUseCase) SaveSubcategory(ctx context.Context, id int64, form dto.SubcategoryForm) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := validation.First(form); err != nil {
		return fail(err, msgSaveSubcategory)
	}
	in := repository.SubcategoryInput{
		Name:        strings.TrimSpace(form.Name),
		Description: strings.TrimSpace(form.Description),
		CategoryID:  form.CategoryID,
	}
	if id == 0 {
		return fail(uc.subcategories.Create(ctx, in), msgSaveSubcategory)
	}
	return fail(uc.subcategories.Update(ctx, id, in), msgSaveSubcategory)
}

// DeleteSubcategory elimina la subcategoría.
func (uc *TaxonomyUseCase) DeleteSubcategory(ctx context.Context, id int64) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return fail(uc.subcategories.Delete(ctx, id), msgDeleteSubcategory)
}

// ─── Marcas ───────────────────────────────────────────────────────────────────

// Brands listado de marcas buscado y paginado.
func (uc *TaxonomyUseCase) Brands(ctx context.Context, q dto.ListQuery) (*ListPage[entity.Brand], error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	q.DefaultPage()
	st := fetch.Run(ctx, func(ctx context.Context, _ struct{}) ([]entity.Brand, error) {
		return uc.brands.List(ctx)
	}, struct{}{}, msgLoadBrands)
	rows := listing.Search(st.Data, q.Search, nameAndDescription(
		func(b entity.Brand) string { return b.Name },
		func(b entity.Brand) string { return b.Description },
	))
	page := paged(rows, st, q, listing.DefaultPageSize)
	return &page, nil
}

// Brand marca por id.
func (uc *TaxonomyUseCase) Brand(ctx context.Context, id int64) (*entity.Brand, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	b, err := uc.brands.GetByID(ctx, id)
	if err != nil {
		return nil, fail(err, msgLoadBrands)
	}
	return b, nil
}

// SaveBrand valida y crea (id == 0) o actualiza la marca.
func (uc *TaxonomyUseCase) SaveBrand(ctx context.Context, id int64, form dto.BrandForm) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := validation.First(form); err != nil {
		return fail(err, msgSaveBrand)
	}
	in := repository.CategoryInput{Name: strings.TrimSpace(form.Name), Description: strings.TrimSpace(form.Description)}
	if id == 0 {
		return fail(uc.brands.Create(ctx, in), msgSaveBrand)
	}
	return fail(uc.brands.Update(ctx, id, in), msgSaveBrand)
}

// DeleteBrand elimina la marca.
func (uc *TaxonomyUseCase) DeleteBrand(ctx context.Context, id int64) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return fail(uc.brands.Delete(ctx, id), msgDeleteBrand)
}
