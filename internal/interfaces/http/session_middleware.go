package http

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/megastore-web/internal/application/auth"
	"github.com/jhoicas/megastore-web/internal/application/session"
	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/infrastructure/api"
	"github.com/jhoicas/megastore-web/pkg/logger"
)

// LocalSession key de c.Locals con la *session.Session del request (nil si no hay).
const LocalSession = "session"

// cookieStore adapta las cookies de Fiber a session.CookieStore.
type cookieStore struct {
	c      *fiber.Ctx
	secure bool
}

func (s cookieStore) Cookie(name string) string { return s.c.Cookies(name) }

func (s cookieStore) SetCookie(name, value string, expires time.Time) {
	s.c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s cookieStore) ClearCookie(name string) {
	s.c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SessionGuard carga la sesión de cada request y protege las rutas de tienda y panel.
type SessionGuard struct {
	sessions *session.Manager
	secure   bool
	log      *logger.Logger
}

// NewSessionGuard construye el guard. secure marca las cookies como Secure (HTTPS).
func NewSessionGuard(sessions *session.Manager, secure bool, log *logger.Logger) *SessionGuard {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionGuard{sessions: sessions, secure: secure, log: log.Named("http")}
}

// Store cookies del request actual.
func (g *SessionGuard) Store(c *fiber.Ctx) session.CookieStore {
	return cookieStore{c: c, secure: g.secure}
}

// Load lee la sesión de las cookies y la deja en c.Locals y en el contexto del request,
// junto con el request id que se propaga a la API.
func (g *SessionGuard) Load() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
			ctx = api.WithRequestID(ctx, id)
		}
		if s, err := g.sessions.Read(g.Store(c)); err == nil {
			c.Locals(LocalSession, s)
			ctx = session.WithContext(ctx, s)
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// RequireSession redirige a /auth/login?next=<ruta> si no hay sesión.
func (g *SessionGuard) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetSession(c) == nil {
			return c.Redirect(loginURL(c), fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// RequireAdmin sin sesión redirige al login; con sesión sin rol ADMIN, a la tienda.
func (g *SessionGuard) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		if s == nil {
			return c.Redirect(loginURL(c), fiber.StatusSeeOther)
		}
		if !s.IsAdmin() {
			return c.Redirect(auth.PathHome, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// Handle traduce los errores de sesión a redirecciones. Un 401 de la API borra la sesión.
// Cualquier otro error se devuelve tal cual al ErrorHandler de Fiber.
func (g *SessionGuard) Handle(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNoSession):
		return c.Redirect(loginURL(c), fiber.StatusSeeOther)
	case domain.IsUnauthorized(err):
		g.log.Info().Str("path", c.Path()).Msg("la API rechazó el token; se cierra la sesión")
		g.sessions.Clear(g.Store(c))
		return c.Redirect(loginURL(c), fiber.StatusSeeOther)
	case errors.Is(err, domain.ErrForbidden) && !api.IsRemote(err):
		return c.Redirect(auth.PathHome, fiber.StatusSeeOther)
	}
	g.log.Error().Err(err).Str("path", c.Path()).Msg("error en handler")
	return err
}

// isSessionError errores que Handle convierte en redirección (sin sesión, 401 de la API, sin permiso).
func isSessionError(err error) bool {
	return errors.Is(err, domain.ErrNoSession) || domain.IsUnauthorized(err) ||
		(errors.Is(err, domain.ErrForbidden) && !api.IsRemote(err))
}

// GetSession devuelve la sesión del request (después de Load).
func GetSession(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals(LocalSession).(*session.Session)
	return s
}

func loginURL(c *fiber.Ctx) string {
	next := c.OriginalURL()
	if c.Method() != fiber.MethodGet || !auth.SafeNext(next) {
		return auth.PathLogin
	}
	return auth.PathLogin + "?next=" + url.QueryEscape(next)
}
