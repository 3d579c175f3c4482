package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/fetch"
	"github.com/jhoicas/megastore-web/internal/application/usecase"
	"github.com/jhoicas/megastore-web/internal/domain"
)

// CookieVisitor identifica al navegador para cancelar búsquedas en vivo superadas.
const CookieVisitor = "visitor"

// Acciones de PUT /vm/cart/items/:variantId.
const (
	cartActionIncrement = "increment"
	cartActionDecrement = "decrement"
	cartActionSet       = "set"
	cartActionRemove    = "remove"
)

// SearchResponse resultado de la búsqueda en vivo.
type SearchResponse struct {
	Products []usecase.ProductCard `json:"products"`
}

// CartResponse carrito tras una lectura o mutación; Error es el fallo de la mutación, si hubo.
type CartResponse struct {
	Cart  usecase.CartView `json:"cart"`
	Error string           `json:"error,omitempty"`
}

// CartLineRequest cuerpo de PUT /vm/cart/items/:variantId.
type CartLineRequest struct {
	Action   string `json:"action"`
	Quantity int    `json:"quantity"`
	Stock    int    `json:"stock"`
}

// VMHandler endpoints JSON de view models que consume el script de las páginas.
type VMHandler struct {
	catalog *usecase.CatalogUseCase
	cart    *usecase.CartUseCase
	guard   *SessionGuard
}

// NewVMHandler construye el handler.
func NewVMHandler(catalog *usecase.CatalogUseCase, cart *usecase.CartUseCase, guard *SessionGuard) *VMHandler {
	return &VMHandler{catalog: catalog, cart: cart, guard: guard}
}

// Search godoc
// @Summary      Búsqueda en vivo del catálogo
// @Description  Una búsqueda nueva del mismo visitante cancela la anterior, que responde 204.
// @Tags         vm
// @Produce      json
// @Param        search         query  string  false  "texto a buscar"
// @Param        brandId        query  int     false  "marca"
// @Param        categoryId     query  int     false  "categoría"
// @Param        subcategoryId  query  int     false  "subcategoría"
// @Success      200  {object}  SearchResponse
// @Success      204
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /vm/catalog/search [get]
func (h *VMHandler) Search(c *fiber.Ctx) error {
	var q catalogQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	products, err := h.catalog.Search(c.UserContext(), h.visitor(c), q.filter())
	if err != nil {
		if errors.Is(err, fetch.ErrStale) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code:    "API_ERROR",
			Message: domain.UserMessage(err, "Error al cargar los productos."),
		})
	}
	return c.JSON(SearchResponse{Products: products})
}

// visitor id del navegador; si no tiene cookie se le asigna uno nuevo.
func (h *VMHandler) visitor(c *fiber.Ctx) string {
	if id := c.Cookies(CookieVisitor); id != "" {
		return id
	}
	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     CookieVisitor,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		Secure:   h.guard.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return id
}

// Cart godoc
// @Summary      Carrito de la sesión
// @Tags         vm
// @Produce      json
// @Success      200  {object}  CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /vm/cart [get]
func (h *VMHandler) Cart(c *fiber.Ctx) error {
	page, err := h.cart.View(c.UserContext())
	if err != nil {
		return h.sessionError(c, err)
	}
	return h.cartJSON(c, page)
}

// UpdateLine godoc
// @Summary      Modificar una línea del carrito
// @Description  action: increment | decrement | set | remove. Cada cambio va seguido de una recarga completa del carrito.
// @Tags         vm
// @Accept       json
// @Produce      json
// @Param        variantId  path  int              true  "variante"
// @Param        body       body  CartLineRequest  true  "acción, cantidad visible y stock"
// @Success      200  {object}  CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /vm/cart/items/{variantId} [put]
func (h *VMHandler) UpdateLine(c *fiber.Ctx) error {
	id, err := paramID(c, "variantId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "variante inválida"})
	}
	var in CartLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ctx := c.UserContext()
	var page *usecase.CartPage
	switch in.Action {
	case cartActionIncrement:
		page, err = h.cart.Increment(ctx, id, in.Quantity, in.Stock)
	case cartActionDecrement:
		page, err = h.cart.Decrement(ctx, id, in.Quantity)
	case cartActionSet:
		page, err = h.cart.SetQuantity(ctx, id, in.Quantity)
	case cartActionRemove:
		page, err = h.cart.Remove(ctx, id)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ACTION", Message: "acción inválida"})
	}
	if err != nil {
		return h.sessionError(c, err)
	}
	return h.cartJSON(c, page)
}

func (h *VMHandler) cartJSON(c *fiber.Ctx, page *usecase.CartPage) error {
	msg := page.Error
	if msg == "" {
		msg = page.Cart.Error
	}
	return c.JSON(CartResponse{Cart: page.Cart.Data, Error: msg})
}

// sessionError responde 401 en JSON; un 401 de la API además borra la sesión.
func (h *VMHandler) sessionError(c *fiber.Ctx, err error) error {
	if domain.IsUnauthorized(err) {
		h.guard.sessions.Clear(h.guard.Store(c))
	}
	if isSessionError(err) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión vencida o inexistente"})
	}
	h.guard.log.Error().Err(err).Str("path", c.Path()).Msg("error en view model")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: usecase.Message(err)})
}
