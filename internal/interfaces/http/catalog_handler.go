package http

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/megastore-web/internal/application/auth"
	"github.com/jhoicas/megastore-web/internal/application/usecase"
	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

// catalogQuery filtros de la grilla tal como llegan en la query string.
type catalogQuery struct {
	BrandID       int64  `query:"brandId"`
	CategoryID    int64  `query:"categoryId"`
	SubcategoryID int64  `query:"subcategoryId"`
	Search        string `query:"search"`
}

func (q catalogQuery) filter() repository.ProductFilter {
	return repository.ProductFilter{
		BrandID:       q.BrandID,
		CategoryID:    q.CategoryID,
		SubcategoryID: q.SubcategoryID,
		Search:        q.Search,
	}
}

// addToCartForm formulario de la ficha de producto.
type addToCartForm struct {
	VariantID int64 `form:"variant_id"`
	Quantity  int   `form:"quantity"`
}

// CatalogHandler tienda pública: grilla, ficha de producto y agregar al carrito.
type CatalogHandler struct {
	uc         *usecase.CatalogUseCase
	guard      *SessionGuard
	debounceMS int
}

// NewCatalogHandler construye el handler. debounceMS es la espera del buscador en vivo.
func NewCatalogHandler(uc *usecase.CatalogUseCase, guard *SessionGuard, debounceMS int) *CatalogHandler {
	return &CatalogHandler{uc: uc, guard: guard, debounceMS: debounceMS}
}

// Home grilla de productos con filtros opcionales.
// GET /?brandId=&categoryId=&subcategoryId=&search=
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	var q catalogQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.ErrBadRequest
	}
	page := h.uc.Browse(c.UserContext(), q.filter())
	return render(c, "store/catalog", layoutStore, fiber.Map{
		"Title":      "Megastore",
		"Page":       page,
		"DebounceMS": h.debounceMS,
	})
}

// Product ficha de producto.
// GET /products/:id
func (h *CatalogHandler) Product(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	return h.renderProduct(c, id, "")
}

func (h *CatalogHandler) renderProduct(c *fiber.Ctx, id int64, msg string) error {
	page := h.uc.Detail(c.UserContext(), id)
	page.Error = msg
	title := page.Product.Data.Name
	if title == "" {
		title = "Producto"
	}
	return render(c, "store/product", layoutStore, fiber.Map{"Title": title, "Page": page})
}

// AddToCart agrega la variante elegida y redirige al carrito.
// POST /products/:id/cart
func (h *CatalogHandler) AddToCart(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var form addToCartForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	if err := h.uc.AddToCart(c.UserContext(), form.VariantID, form.Quantity); err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			// sin sesión se vuelve a la ficha después del login
			return redirect(c, auth.PathLogin+"?next="+url.QueryEscape(productPath(id)))
		}
		if domain.IsUnauthorized(err) {
			return h.guard.Handle(c, err)
		}
		return h.renderProduct(c, id, usecase.AddToCartMessage(err))
	}
	return redirect(c, "/cart")
}

// productPath ruta de la ficha de producto.
func productPath(id int64) string { return fmt.Sprintf("/products/%d", id) }
