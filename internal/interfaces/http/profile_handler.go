package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/usecase"
)

const titleProfile = "Mi perfil"

// ProfileHandler perfil propio y compras del usuario.
type ProfileHandler struct {
	uc    *usecase.ProfileUseCase
	guard *SessionGuard
}

// NewProfileHandler construye el handler.
func NewProfileHandler(uc *usecase.ProfileUseCase, guard *SessionGuard) *ProfileHandler {
	return &ProfileHandler{uc: uc, guard: guard}
}

// View GET /profile?page=
func (h *ProfileHandler) View(c *fiber.Ctx) error {
	page, err := h.uc.Page(c.UserContext(), c.QueryInt("page", 1))
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return render(c, "store/profile", layoutStore, fiber.Map{"Title": titleProfile, "Page": page})
}

// EditPage GET /profile/edit
func (h *ProfileHandler) EditPage(c *fiber.Ctx) error {
	form, err := h.uc.EditForm(c.UserContext())
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return h.renderForm(c, form, "")
}

// Update guarda el perfil y refresca la cookie de usuario.
// POST /profile/edit
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var form dto.ProfileForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	u, err := h.uc.Update(c.UserContext(), form)
	if err != nil {
		if isSessionError(err) {
			return h.guard.Handle(c, err)
		}
		return h.renderForm(c, form, usecase.ProfileMessage(err))
	}
	if s := GetSession(c); s != nil {
		if err := h.guard.sessions.UpdateUser(h.guard.Store(c), s, *u); err != nil {
			h.guard.log.Warn().Err(err).Msg("no se pudo refrescar la cookie de usuario")
		}
	}
	return redirect(c, "/profile")
}

func (h *ProfileHandler) renderForm(c *fiber.Ctx, form dto.ProfileForm, msg string) error {
	return render(c, "store/profile_edit", layoutStore, fiber.Map{
		"Title": "Editar perfil",
		"Form":  form,
		"Error": msg,
	})
}
