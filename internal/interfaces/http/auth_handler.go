package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/megastore-web/internal/application/auth"
	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/usecase"
)

const (
	msgRegistered = "Registro exitoso. Ya podés iniciar sesión."
	titleLogin    = "Iniciar sesión"
	titleRegister = "Crear cuenta"
	titleReset    = "Recuperar contraseña"
)

// AuthHandler login, registro, recuperación de contraseña y logout.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	guard *SessionGuard
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, guard *SessionGuard) *AuthHandler {
	return &AuthHandler{uc: uc, guard: guard}
}

// LoginPage GET /auth/login?next=
// Con sesión activa redirige directamente al destino que corresponde al rol.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	next := c.Query("next")
	if s := GetSession(c); s != nil {
		return redirect(c, auth.RedirectAfterLogin(s.IsAdmin(), next))
	}
	var notice string
	switch {
	case c.Query("registered") != "":
		notice = msgRegistered
	case c.Query("reset") != "":
		notice = auth.MsgPasswordReset
	}
	return render(c, "auth/login", layoutStore, fiber.Map{
		"Title":  titleLogin,
		"Form":   dto.LoginForm{Next: next},
		"Notice": notice,
	})
}

// Login valida, autentica contra la API y escribe la sesión.
// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form dto.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	path, err := h.uc.Login(c.UserContext(), h.guard.Store(c), form)
	if err != nil {
		h.guard.log.Info().Err(err).Msg("login rechazado")
		form.Password = ""
		return render(c, "auth/login", layoutStore, fiber.Map{
			"Title": titleLogin,
			"Form":  form,
			"Error": auth.LoginMessage(err),
		})
	}
	return redirect(c, path)
}

// RegisterPage GET /auth/register
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return render(c, "auth/register", layoutStore, fiber.Map{"Title": titleRegister, "Form": dto.RegisterForm{}})
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form dto.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	if err := h.uc.Register(c.UserContext(), form); err != nil {
		form.Password, form.PasswordConfirmation = "", ""
		return render(c, "auth/register", layoutStore, fiber.Map{
			"Title": titleRegister,
			"Form":  form,
			"Error": auth.RegisterMessage(err),
		})
	}
	return redirect(c, auth.PathLogin+"?registered=1")
}

// ResetPage paso 1 de recuperación.
// GET /auth/reset
func (h *AuthHandler) ResetPage(c *fiber.Ctx) error {
	return render(c, "auth/reset", layoutStore, fiber.Map{"Title": titleReset, "Step": 1})
}

// SendResetToken POST /auth/reset
// Si la API acepta, se pasa al paso 2 con el email ya cargado.
func (h *AuthHandler) SendResetToken(c *fiber.Ctx) error {
	var form dto.ResetRequestForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	if err := h.uc.SendResetToken(c.UserContext(), form); err != nil {
		return render(c, "auth/reset", layoutStore, fiber.Map{
			"Title": titleReset,
			"Step":  1,
			"Email": form.Email,
			"Error": usecase.Message(err),
		})
	}
	return render(c, "auth/reset", layoutStore, fiber.Map{
		"Title":  titleReset,
		"Step":   2,
		"Email":  form.Email,
		"Notice": auth.MsgTokenSent,
	})
}

// ResetPassword paso 2: token y nueva contraseña.
// POST /auth/reset/confirm
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var form dto.ResetPasswordForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	if err := h.uc.ResetPassword(c.UserContext(), form); err != nil {
		return render(c, "auth/reset", layoutStore, fiber.Map{
			"Title": titleReset,
			"Step":  2,
			"Email": form.Email,
			"Token": form.Token,
			"Error": usecase.Message(err),
		})
	}
	return redirect(c, auth.PathLogin+"?reset=1")
}

// Logout borra la sesión y vuelve al login.
// POST /auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.uc.Logout(h.guard.Store(c))
	return redirect(c, auth.PathLogin)
}
