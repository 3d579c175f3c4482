package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/usecase"
)

// Acción del formulario de checkout.
const actionConfirm = "confirm"

// CheckoutHandler checkout, confirmación y comprobante PDF.
type CheckoutHandler struct {
	uc    *usecase.CheckoutUseCase
	guard *SessionGuard
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *usecase.CheckoutUseCase, guard *SessionGuard) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, guard: guard}
}

// Page checkout precargado con los datos del usuario.
// GET /checkout
func (h *CheckoutHandler) Page(c *fiber.Ctx) error {
	var form dto.CheckoutForm
	if s := GetSession(c); s != nil {
		form = usecase.DefaultForm(s.User)
	}
	return h.renderPage(c, form, "")
}

// Submit recalcula el checkout o, con action=confirm, registra la venta y redirige a la confirmación.
// POST /checkout
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	var form dto.CheckoutForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	if c.FormValue("action") != actionConfirm {
		return h.renderPage(c, form, "")
	}
	path, err := h.uc.Confirm(c.UserContext(), form)
	if err != nil {
		if isSessionError(err) {
			return h.guard.Handle(c, err)
		}
		h.guard.log.Warn().Err(err).Msg("checkout rechazado")
		return h.renderPage(c, form, usecase.ConfirmMessage(err))
	}
	return redirect(c, path)
}

func (h *CheckoutHandler) renderPage(c *fiber.Ctx, form dto.CheckoutForm, msg string) error {
	page, err := h.uc.Page(c.UserContext(), form)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	page.Error = msg
	return render(c, "store/checkout", layoutStore, fiber.Map{
		"Title":     "Checkout",
		"Page":      page,
		"CartCount": page.Cart.Data.Count,
	})
}

// Confirmation compra confirmada.
// GET /checkout/confirmation/:id
func (h *CheckoutHandler) Confirmation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	page, err := h.uc.Confirmation(c.UserContext(), id)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return render(c, "store/confirmation", layoutStore, fiber.Map{"Title": "¡Gracias por tu compra!", "Page": page})
}

// Receipt comprobante PDF de la compra.
// GET /checkout/confirmation/:id/receipt.pdf
func (h *CheckoutHandler) Receipt(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	pdf, err := h.uc.Receipt(c.UserContext(), id)
	if err != nil {
		if isSessionError(err) {
			return h.guard.Handle(c, err)
		}
		h.guard.log.Error().Err(err).Int64("sale_id", id).Msg("comprobante PDF")
		return fiber.NewError(fiber.StatusBadGateway, usecase.ReceiptMessage(err))
	}
	c.Attachment(fmt.Sprintf("compra-%d.pdf", id))
	return c.Send(pdf)
}
