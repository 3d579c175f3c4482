package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/usecase"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

const pathProducts = "/dashboard/products"

// ProductAdminHandler productos y variantes en el panel.
type ProductAdminHandler struct {
	uc    *usecase.ProductAdminUseCase
	guard *SessionGuard
}

// NewProductAdminHandler construye el handler.
func NewProductAdminHandler(uc *usecase.ProductAdminUseCase, guard *SessionGuard) *ProductAdminHandler {
	return &ProductAdminHandler{uc: uc, guard: guard}
}

// List GET /dashboard/products?page=&q=&category=&subcategory=&brand=
func (h *ProductAdminHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	page, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return render(c, "dashboard/products", layoutDashboard, fiber.Map{"Title": "Productos", "Page": page, "Base": pathProducts})
}

// Deleted GET /dashboard/products/deleted
func (h *ProductAdminHandler) Deleted(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	page, err := h.uc.Deleted(c.UserContext(), q)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return render(c, "dashboard/products_deleted", layoutDashboard, fiber.Map{
		"Title": "Productos eliminados",
		"Page":  page,
		"Base":  pathProducts + "/deleted",
	})
}

// NewPage GET /dashboard/products/new
func (h *ProductAdminHandler) NewPage(c *fiber.Ctx) error {
	page, err := h.uc.NewForm(c.UserContext())
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return h.renderForm(c, page)
}

// Create POST /dashboard/products/new
func (h *ProductAdminHandler) Create(c *fiber.Ctx) error {
	var form dto.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	return h.save(c, 0, form, h.uc.Create(c.UserContext(), form))
}

// EditPage GET /dashboard/products/:id/edit
func (h *ProductAdminHandler) EditPage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	page, err := h.uc.EditForm(c.UserContext(), id)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return h.renderForm(c, page)
}

// Update POST /dashboard/products/:id/edit
func (h *ProductAdminHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var form dto.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	return h.save(c, id, form, h.uc.Update(c.UserContext(), id, form))
}

// save redirige al listado si saveErr es nil; si no, vuelve a mostrar el formulario con el mensaje.
func (h *ProductAdminHandler) save(c *fiber.Ctx, id int64, form dto.ProductForm, saveErr error) error {
	if saveErr == nil {
		return redirect(c, pathProducts)
	}
	msg, ok := failure(saveErr)
	if !ok {
		return h.guard.Handle(c, saveErr)
	}
	page, err := h.uc.FormPage(c.UserContext(), id, form)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	page.Error = msg
	return h.renderForm(c, page)
}

func (h *ProductAdminHandler) renderForm(c *fiber.Ctx, page *usecase.ProductFormPage) error {
	title := "Nuevo producto"
	if page.ID != 0 {
		title = "Editar producto"
	}
	return render(c, "dashboard/product_form", layoutDashboard, fiber.Map{"Title": title, "Page": page})
}

// productConfirm arma la confirmación de una acción sobre el producto id.
func (h *ProductAdminHandler) productConfirm(c *fiber.Ctx, id int64, title, verb, action string) ConfirmView {
	name := fmt.Sprintf("#%d", id)
	// un producto dado de baja puede no estar disponible por id
	if p, err := h.uc.Summary(c.UserContext(), id); err == nil {
		name = p.Name
	}
	return ConfirmView{
		Title:   title,
		Message: fmt.Sprintf("¿Estás seguro de que deseas %s el producto %s?", verb, name),
		Action:  action,
		Cancel:  pathProducts,
	}
}

// ConfirmDelete GET /dashboard/products/:id/delete
func (h *ProductAdminHandler) ConfirmDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	return renderConfirm(c, h.productConfirm(c, id, "Eliminar producto", "eliminar", c.Path()))
}

// Delete POST /dashboard/products/:id/delete
func (h *ProductAdminHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	v := ConfirmView{Title: "Eliminar producto", Message: "¿Estás seguro de que deseas eliminar este producto?", Action: c.Path(), Cancel: pathProducts}
	return confirmed(c, h.guard, v, pathProducts, func() error { return h.uc.Delete(c.UserContext(), id) })
}

// ConfirmRestore GET /dashboard/products/:id/restore
func (h *ProductAdminHandler) ConfirmRestore(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	v := h.productConfirm(c, id, "Restaurar producto", "restaurar", c.Path())
	v.Cancel = pathProducts + "/deleted"
	return renderConfirm(c, v)
}

// Restore POST /dashboard/products/:id/restore
func (h *ProductAdminHandler) Restore(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	back := pathProducts + "/deleted"
	v := ConfirmView{Title: "Restaurar producto", Message: "¿Estás seguro de que deseas restaurar este producto?", Action: c.Path(), Cancel: back}
	return confirmed(c, h.guard, v, back, func() error { return h.uc.Restore(c.UserContext(), id) })
}

// ─── Variantes ────────────────────────────────────────────────────────────────

func variantsPath(productID int64) string {
	return fmt.Sprintf("%s/%d/variants", pathProducts, productID)
}

// Variants GET /dashboard/products/:id/variants
func (h *ProductAdminHandler) Variants(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	page, err := h.uc.Variants(c.UserContext(), id)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return render(c, "dashboard/variants", layoutDashboard, fiber.Map{
		"Title":     "Variantes",
		"Page":      page,
		"ProductID": id,
	})
}

// NewVariantPage GET /dashboard/products/:id/variants/new
func (h *ProductAdminHandler) NewVariantPage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	return h.renderVariantForm(c, id, 0, dto.VariantForm{}, "")
}

// CreateVariant POST /dashboard/products/:id/variants/new
func (h *ProductAdminHandler) CreateVariant(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var form dto.VariantForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	return h.saveVariant(c, id, 0, form, h.uc.CreateVariant(c.UserContext(), id, form))
}

// EditVariantPage GET /dashboard/products/:id/variants/:variantId/edit
func (h *ProductAdminHandler) EditVariantPage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	variantID, err := paramID(c, "variantId")
	if err != nil {
		return err
	}
	v, err := h.uc.Variant(c.UserContext(), variantID)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return h.renderVariantForm(c, id, variantID, usecase.VariantForm(v), "")
}

// UpdateVariant POST /dashboard/products/:id/variants/:variantId/edit
func (h *ProductAdminHandler) UpdateVariant(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	variantID, err := paramID(c, "variantId")
	if err != nil {
		return err
	}
	var form dto.VariantForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	form.ImageURL = c.FormValue("current_image")
	image, err := formUpload(c, "image")
	if err != nil {
		return fiber.ErrBadRequest
	}
	return h.saveVariant(c, id, variantID, form, h.uc.UpdateVariant(c.UserContext(), variantID, id, form, image))
}

// formUpload lee el archivo field del formulario multipart; nil si no se eligió ninguno.
func formUpload(c *fiber.Ctx, field string) (*repository.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh.Filename == "" || fh.Size == 0 {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &repository.Upload{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}, nil
}

func (h *ProductAdminHandler) saveVariant(c *fiber.Ctx, productID, variantID int64, form dto.VariantForm, saveErr error) error {
	if saveErr == nil {
		return redirect(c, variantsPath(productID))
	}
	msg, ok := failure(saveErr)
	if !ok {
		return h.guard.Handle(c, saveErr)
	}
	return h.renderVariantForm(c, productID, variantID, form, msg)
}

func (h *ProductAdminHandler) renderVariantForm(c *fiber.Ctx, productID, variantID int64, form dto.VariantForm, msg string) error {
	title := "Nueva variante"
	if variantID != 0 {
		title = "Editar variante"
	}
	return render(c, "dashboard/variant_form", layoutDashboard, fiber.Map{
		"Title":     title,
		"Form":      form,
		"ProductID": productID,
		"VariantID": variantID,
		"Back":      variantsPath(productID),
		"Error":     msg,
	})
}

// ConfirmDeleteVariant GET /dashboard/products/:id/variants/:variantId/delete
func (h *ProductAdminHandler) ConfirmDeleteVariant(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	variantID, err := paramID(c, "variantId")
	if err != nil {
		return err
	}
	v, err := h.uc.Variant(c.UserContext(), variantID)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return renderConfirm(c, ConfirmView{
		Title:   "Eliminar variante",
		Message: fmt.Sprintf("¿Estás seguro de que deseas eliminar la variante %s?", v.Label()),
		Action:  c.Path(),
		Cancel:  variantsPath(id),
	})
}

// DeleteVariant POST /dashboard/products/:id/variants/:variantId/delete
func (h *ProductAdminHandler) DeleteVariant(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	variantID, err := paramID(c, "variantId")
	if err != nil {
		return err
	}
	back := variantsPath(id)
	v := ConfirmView{Title: "Eliminar variante", Message: "¿Estás seguro de que deseas eliminar esta variante?", Action: c.Path(), Cancel: back}
	return confirmed(c, h.guard, v, back, func() error { return h.uc.DeleteVariant(c.UserContext(), variantID) })
}
