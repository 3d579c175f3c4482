package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/usecase"
	"github.com/jhoicas/megastore-web/pkg/logger"
)

// Layouts de web/views/layouts.
const (
	layoutStore     = "layouts/store"
	layoutDashboard = "layouts/dashboard"
)

// render dibuja name dentro de layout agregando los datos comunes (sesión y ruta actual).
func render(c *fiber.Ctx, name, layout string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Session"] = GetSession(c)
	data["Path"] = c.Path()
	return c.Render(name, data, layout)
}

// ErrorHandler dibuja la página de error: el código de un *fiber.Error o 500 con un mensaje genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := usecase.Message(err)
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		} else {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		}
		c.Status(code)
		if rerr := render(c, "error", layoutStore, fiber.Map{"Title": "Error", "Code": code, "Message": msg}); rerr != nil {
			return c.SendString(msg)
		}
		return nil
	}
}

// ConfirmView página de confirmación previa a una acción destructiva.
type ConfirmView struct {
	Title   string
	Message string
	Action  string // URL del POST
	Cancel  string
	Error   string
}

func renderConfirm(c *fiber.Ctx, v ConfirmView) error {
	return render(c, "dashboard/confirm", layoutDashboard, fiber.Map{"Title": v.Title, "Page": v})
}

// failure mensaje de un *usecase.Failure; ok es false para errores ajenos a la acción (sesión, permisos).
func failure(err error) (string, bool) {
	var f *usecase.Failure
	if errors.As(err, &f) {
		return f.Message, true
	}
	return "", false
}

// paramID parsea un id de ruta; uno inválido responde 404.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}

func redirect(c *fiber.Ctx, path string) error {
	return c.Redirect(path, fiber.StatusSeeOther)
}

// confirmed ejecuta la acción confirmada y redirige a back. Si la acción falla se vuelve a mostrar
// la confirmación con el mensaje; los errores de sesión los resuelve el guard.
func confirmed(c *fiber.Ctx, g *SessionGuard, v ConfirmView, back string, action func() error) error {
	if err := action(); err != nil {
		msg, ok := failure(err)
		if !ok {
			return g.Handle(c, err)
		}
		v.Error = msg
		return renderConfirm(c, v)
	}
	return redirect(c, back)
}

// listQuery parsea ?page=&q=&category=&subcategory=&brand=&role=.
func listQuery(c *fiber.Ctx) (dto.ListQuery, error) {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return q, fiber.ErrBadRequest
	}
	q.DefaultPage()
	return q, nil
}
