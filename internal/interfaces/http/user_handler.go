package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/usecase"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
)

const pathUsers = "/dashboard/users"

// UserHandler usuarios en el panel.
type UserHandler struct {
	uc    *usecase.UserUseCase
	guard *SessionGuard
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, guard *SessionGuard) *UserHandler {
	return &UserHandler{uc: uc, guard: guard}
}

// List GET /dashboard/users?page=&q=&role=
func (h *UserHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	page, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return render(c, "dashboard/users", layoutDashboard, fiber.Map{"Title": "Usuarios", "Page": page, "Base": pathUsers})
}

// NewPage GET /dashboard/users/new
func (h *UserHandler) NewPage(c *fiber.Ctx) error {
	return h.renderCreate(c, dto.UserCreateForm{Roles: []string{entity.RoleUser}}, "")
}

// Create POST /dashboard/users/new
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var form dto.UserCreateForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	if err := h.uc.Create(c.UserContext(), form); err != nil {
		msg, ok := failure(err)
		if !ok {
			return h.guard.Handle(c, err)
		}
		form.Password, form.PasswordConfirmation = "", ""
		return h.renderCreate(c, form, msg)
	}
	return redirect(c, pathUsers)
}

func (h *UserHandler) renderCreate(c *fiber.Ctx, form dto.UserCreateForm, msg string) error {
	return render(c, "dashboard/user_new", layoutDashboard, fiber.Map{
		"Title": "Nuevo usuario",
		"Form":  form,
		"Roles": usecase.RoleOptions(form.Roles...),
		"Error": msg,
	})
}

// EditPage GET /dashboard/users/:id/edit
func (h *UserHandler) EditPage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	u, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	var addressID int64
	if u.Address != nil {
		addressID = u.Address.ID
	}
	return h.renderEdit(c, id, addressID, usecase.UserEditForm(u), "")
}

// Update POST /dashboard/users/:id/edit
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var form dto.UserEditForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	// el id de la dirección viaja oculto para no duplicarla en la API
	addressID, _ := strconv.ParseInt(c.FormValue("address_id"), 10, 64)
	if err := h.uc.Update(c.UserContext(), id, addressID, form); err != nil {
		msg, ok := failure(err)
		if !ok {
			return h.guard.Handle(c, err)
		}
		return h.renderEdit(c, id, addressID, form, msg)
	}
	return redirect(c, pathUsers)
}

func (h *UserHandler) renderEdit(c *fiber.Ctx, id, addressID int64, form dto.UserEditForm, msg string) error {
	return render(c, "dashboard/user_edit", layoutDashboard, fiber.Map{
		"Title":     "Editar usuario",
		"ID":        id,
		"AddressID": addressID,
		"Form":      form,
		"Roles":     usecase.RoleOptions(form.Roles...),
		"Error":     msg,
	})
}

// ConfirmDelete GET /dashboard/users/:id/delete
func (h *UserHandler) ConfirmDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	u, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return renderConfirm(c, deleteConfirm("Eliminar usuario", "al usuario", u.FullName(), c.Path(), pathUsers))
}

// Delete POST /dashboard/users/:id/delete
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	v := deleteConfirm("Eliminar usuario", "al usuario", "", c.Path(), pathUsers)
	return confirmed(c, h.guard, v, pathUsers, func() error { return h.uc.Delete(c.UserContext(), id) })
}
