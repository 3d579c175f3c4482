package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/megastore-web/internal/application/usecase"
)

// cartLineForm campos ocultos de cada línea: cantidad visible y stock de la variante.
type cartLineForm struct {
	Quantity string `form:"quantity"`
	Stock    int    `form:"stock"`
}

// quantity cantidad tipeada; texto inválido cuenta como 0 y lo rechaza el caso de uso.
func (f cartLineForm) quantity() int {
	n, err := strconv.Atoi(strings.TrimSpace(f.Quantity))
	if err != nil {
		return 0
	}
	return n
}

// CartHandler página del carrito y sus mutaciones por línea.
type CartHandler struct {
	uc    *usecase.CartUseCase
	guard *SessionGuard
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *usecase.CartUseCase, guard *SessionGuard) *CartHandler {
	return &CartHandler{uc: uc, guard: guard}
}

// View GET /cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	page, err := h.uc.View(c.UserContext())
	return h.render(c, page, err)
}

// Increment POST /cart/items/:variantId/increment
func (h *CartHandler) Increment(c *fiber.Ctx) error {
	id, form, err := h.line(c)
	if err != nil {
		return err
	}
	page, err := h.uc.Increment(c.UserContext(), id, form.quantity(), form.Stock)
	return h.render(c, page, err)
}

// Decrement POST /cart/items/:variantId/decrement
func (h *CartHandler) Decrement(c *fiber.Ctx) error {
	id, form, err := h.line(c)
	if err != nil {
		return err
	}
	page, err := h.uc.Decrement(c.UserContext(), id, form.quantity())
	return h.render(c, page, err)
}

// SetQuantity edición directa de la cantidad.
// POST /cart/items/:variantId/quantity
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	id, form, err := h.line(c)
	if err != nil {
		return err
	}
	page, err := h.uc.SetQuantity(c.UserContext(), id, form.quantity())
	return h.render(c, page, err)
}

// Remove POST /cart/items/:variantId/remove
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, err := paramID(c, "variantId")
	if err != nil {
		return err
	}
	page, err := h.uc.Remove(c.UserContext(), id)
	return h.render(c, page, err)
}

func (h *CartHandler) line(c *fiber.Ctx) (int64, cartLineForm, error) {
	var form cartLineForm
	id, err := paramID(c, "variantId")
	if err != nil {
		return 0, form, err
	}
	if err := c.BodyParser(&form); err != nil {
		return 0, form, fiber.ErrBadRequest
	}
	return id, form, nil
}

func (h *CartHandler) render(c *fiber.Ctx, page *usecase.CartPage, err error) error {
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return render(c, "store/cart", layoutStore, fiber.Map{
		"Title":     "Carrito",
		"Page":      page,
		"CartCount": page.Cart.Data.Count,
	})
}
