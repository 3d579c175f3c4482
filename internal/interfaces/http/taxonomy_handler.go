package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/usecase"
)

const (
	pathCategories    = "/dashboard/categories"
	pathSubcategories = "/dashboard/subcategories"
	pathBrands        = "/dashboard/brands"
)

// TaxonomyHandler categorías, subcategorías y marcas en el panel.
type TaxonomyHandler struct {
	uc    *usecase.TaxonomyUseCase
	guard *SessionGuard
}

// NewTaxonomyHandler construye el handler.
func NewTaxonomyHandler(uc *usecase.TaxonomyUseCase, guard *SessionGuard) *TaxonomyHandler {
	return &TaxonomyHandler{uc: uc, guard: guard}
}

// nameForm formulario nombre/descripción que comparten categorías y marcas.
type nameForm struct {
	Name        string
	Description string
}

// ─── Categorías ───────────────────────────────────────────────────────────────

// Categories GET /dashboard/categories?page=&q=
func (h *TaxonomyHandler) Categories(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	page, err := h.uc.Categories(c.UserContext(), q)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return render(c, "dashboard/categories", layoutDashboard, fiber.Map{"Title": "Categorías", "Page": page, "Base": pathCategories})
}

// CategoryPage alta (sin :id) o edición de categoría.
// GET /dashboard/categories/new, GET /dashboard/categories/:id/edit
func (h *TaxonomyHandler) CategoryPage(c *fiber.Ctx) error {
	if c.Params("id") == "" {
		return h.renderNameForm(c, "Nueva categoría", pathCategories, nameForm{}, "")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	cat, err := h.uc.Category(c.UserContext(), id)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return h.renderNameForm(c, "Editar categoría", pathCategories, nameForm{Name: cat.Name, Description: cat.Description}, "")
}

// SaveCategory POST /dashboard/categories/new, POST /dashboard/categories/:id/edit
func (h *TaxonomyHandler) SaveCategory(c *fiber.Ctx) error {
	id, err := optionalID(c)
	if err != nil {
		return err
	}
	var form dto.CategoryForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	if err := h.uc.SaveCategory(c.UserContext(), id, form); err != nil {
		msg, ok := failure(err)
		if !ok {
			return h.guard.Handle(c, err)
		}
		return h.renderNameForm(c, formTitle(id, "Nueva categoría", "Editar categoría"), pathCategories,
			nameForm{Name: form.Name, Description: form.Description}, msg)
	}
	return redirect(c, pathCategories)
}

// ConfirmDeleteCategory GET /dashboard/categories/:id/delete
func (h *TaxonomyHandler) ConfirmDeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	cat, err := h.uc.Category(c.UserContext(), id)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return renderConfirm(c, deleteConfirm("Eliminar categoría", "la categoría", cat.Name, c.Path(), pathCategories))
}

// DeleteCategory POST /dashboard/categories/:id/delete
func (h *TaxonomyHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	v := deleteConfirm("Eliminar categoría", "la categoría", "", c.Path(), pathCategories)
	return confirmed(c, h.guard, v, pathCategories, func() error { return h.uc.DeleteCategory(c.UserContext(), id) })
}

// ─── Subcategorías ────────────────────────────────────────────────────────────

// Subcategories GET /dashboard/subcategories?page=&q=&category=
func (h *TaxonomyHandler) Subcategories(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	page, err := h.uc.Subcategories(c.UserContext(), q)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return render(c, "dashboard/subcategories", layoutDashboard, fiber.Map{"Title": "Subcategorías", "Page": page, "Base": pathSubcategories})
}

// SubcategoryPage GET /dashboard/subcategories/new, GET /dashboard/subcategories/:id/edit
func (h *TaxonomyHandler) SubcategoryPage(c *fiber.Ctx) error {
	if c.Params("id") == "" {
		return h.renderSubcategoryForm(c, 0, dto.SubcategoryForm{CategoryID: int64(c.QueryInt("category"))}, "")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.uc.Subcategory(c.UserContext(), id)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	form := dto.SubcategoryForm{Name: s.Name, Description: s.Description, CategoryID: s.ParentID()}
	return h.renderSubcategoryForm(c, id, form, "")
}

// SaveSubcategory POST /dashboard/subcategories/new, POST /dashboard/subcategories/:id/edit
func (h *TaxonomyHandler) SaveSubcategory(c *fiber.Ctx) error {
	id, err := optionalID(c)
	if err != nil {
		return err
	}
	var form dto.SubcategoryForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	if err := h.uc.SaveSubcategory(c.UserContext(), id, form); err != nil {
		msg, ok := failure(err)
		if !ok {
			return h.guard.Handle(c, err)
		}
		return h.renderSubcategoryForm(c, id, form, msg)
	}
	return redirect(c, pathSubcategories)
}

func (h *TaxonomyHandler) renderSubcategoryForm(c *fiber.Ctx, id int64, form dto.SubcategoryForm, msg string) error {
	return render(c, "dashboard/subcategory_form", layoutDashboard, fiber.Map{
		"Title":      formTitle(id, "Nueva subcategoría", "Editar subcategoría"),
		"Form":       form,
		"Categories": h.uc.CategoryOptions(c.UserContext(), form.CategoryID),
		"Back":       pathSubcategories,
		"Error":      msg,
	})
}

// ConfirmDeleteSubcategory GET /dashboard/subcategories/:id/delete
func (h *TaxonomyHandler) ConfirmDeleteSubcategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.uc.Subcategory(c.UserContext(), id)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return renderConfirm(c, deleteConfirm("Eliminar subcategoría", "la subcategoría", s.Name, c.Path(), pathSubcategories))
}

// DeleteSubcategory POST /dashboard/subcategories/:id/delete
func (h *TaxonomyHandler) DeleteSubcategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	v := deleteConfirm("Eliminar subcategoría", "la subcategoría", "", c.Path(), pathSubcategories)
	return confirmed(c, h.guard, v, pathSubcategories, func() error { return h.uc.DeleteSubcategory(c.UserContext(), id) })
}

// ─── Marcas ───────────────────────────────────────────────────────────────────

// Brands GET /dashboard/brands?page=&q=
func (h *TaxonomyHandler) Brands(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	page, err := h.uc.Brands(c.UserContext(), q)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return render(c, "dashboard/brands", layoutDashboard, fiber.Map{"Title": "Marcas", "Page": page, "Base": pathBrands})
}

// BrandPage GET /dashboard/brands/new, GET /dashboard/brands/:id/edit
func (h *TaxonomyHandler) BrandPage(c *fiber.Ctx) error {
	if c.Params("id") == "" {
		return h.renderNameForm(c, "Nueva marca", pathBrands, nameForm{}, "")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	b, err := h.uc.Brand(c.UserContext(), id)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return h.renderNameForm(c, "Editar marca", pathBrands, nameForm{Name: b.Name, Description: b.Description}, "")
}

// SaveBrand POST /dashboard/brands/new, POST /dashboard/brands/:id/edit
func (h *TaxonomyHandler) SaveBrand(c *fiber.Ctx) error {
	id, err := optionalID(c)
	if err != nil {
		return err
	}
	var form dto.BrandForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	if err := h.uc.SaveBrand(c.UserContext(), id, form); err != nil {
		msg, ok := failure(err)
		if !ok {
			return h.guard.Handle(c, err)
		}
		return h.renderNameForm(c, formTitle(id, "Nueva marca", "Editar marca"), pathBrands,
			nameForm{Name: form.Name, Description: form.Description}, msg)
	}
	return redirect(c, pathBrands)
}

// ConfirmDeleteBrand GET /dashboard/brands/:id/delete
func (h *TaxonomyHandler) ConfirmDeleteBrand(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	b, err := h.uc.Brand(c.UserContext(), id)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return renderConfirm(c, deleteConfirm("Eliminar marca", "la marca", b.Name, c.Path(), pathBrands))
}

// DeleteBrand POST /dashboard/brands/:id/delete
func (h *TaxonomyHandler) DeleteBrand(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	v := deleteConfirm("Eliminar marca", "la marca", "", c.Path(), pathBrands)
	return confirmed(c, h.guard, v, pathBrands, func() error { return h.uc.DeleteBrand(c.UserContext(), id) })
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func (h *TaxonomyHandler) renderNameForm(c *fiber.Ctx, title, back string, form nameForm, msg string) error {
	return render(c, "dashboard/name_form", layoutDashboard, fiber.Map{
		"Title": title,
		"Form":  form,
		"Back":  back,
		"Error": msg,
	})
}

// optionalID id de la ruta, o 0 en las rutas de alta.
func optionalID(c *fiber.Ctx) (int64, error) {
	if c.Params("id") == "" {
		return 0, nil
	}
	return paramID(c, "id")
}

func formTitle(id int64, create, edit string) string {
	if id == 0 {
		return create
	}
	return edit
}

func deleteConfirm(title, what, name, action, cancel string) ConfirmView {
	msg := fmt.Sprintf("¿Estás seguro de que deseas eliminar %s?", what)
	if name != "" {
		msg = fmt.Sprintf("¿Estás seguro de que deseas eliminar %s %s?", what, name)
	}
	return ConfirmView{Title: title, Message: msg, Action: action, Cancel: cancel}
}
