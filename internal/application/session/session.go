// Package session modela la sesión del visitante: usuario y bearer token emitidos por la API,
// persistidos en dos cookies selladas con vencimiento fijo.
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/pkg/jwt"
)

// Nombres de cookie.
const (
	CookieUser  = "user"
	CookieToken = "access_token"
)

// Session sesión activa.
type Session struct {
	User      entity.User
	Token     string
	ExpiresAt time.Time
}

// IsAdmin indica si el usuario de la sesión tiene el rol ADMIN.
func (s *Session) IsAdmin() bool {
	return s != nil && s.User.IsAdmin()
}

// CookieStore acceso a las cookies del request/response actual.
type CookieStore interface {
	Cookie(name string) string
	SetCookie(name, value string, expires time.Time)
	ClearCookie(name string)
}

// Manager lee, escribe y borra la sesión.
type Manager struct {
	codec *Codec
	ttl   time.Duration
	now   func() time.Time
}

// NewManager construye el manager. ttl es la vida máxima de la sesión (5 h por defecto).
func NewManager(codec *Codec, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 5 * time.Hour
	}
	return &Manager{codec: codec, ttl: ttl, now: time.Now}
}

type userCookie struct {
	User      entity.User `json:"user"`
	ExpiresAt time.Time   `json:"exp"`
}

type tokenCookie struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"exp"`
}

// New arma la sesión para un login. El vencimiento es now+ttl, o el exp del JWT si es anterior.
func (m *Manager) New(user entity.User, token string) Session {
	exp := m.now().Add(m.ttl)
	if info, err := jwt.Inspect(token); err == nil && !info.ExpiresAt.IsZero() && info.ExpiresAt.Before(exp) {
		exp = info.ExpiresAt
	}
	return Session{User: user, Token: token, ExpiresAt: exp}
}

// Write persiste s en las dos cookies.
func (m *Manager) Write(store CookieStore, s Session) error {
	userRaw, err := json.Marshal(userCookie{User: s.User, ExpiresAt: s.ExpiresAt})
	if err != nil {
		return err
	}
	tokenRaw, err := json.Marshal(tokenCookie{Token: s.Token, ExpiresAt: s.ExpiresAt})
	if err != nil {
		return err
	}
	userVal, err := m.codec.Seal(userRaw)
	if err != nil {
		return err
	}
	tokenVal, err := m.codec.Seal(tokenRaw)
	if err != nil {
		return err
	}
	store.SetCookie(CookieUser, userVal, s.ExpiresAt)
	store.SetCookie(CookieToken, tokenVal, s.ExpiresAt)
	return nil
}

// Read devuelve la sesión vigente o domain.ErrNoSession si falta alguna cookie,
// alguna fue manipulada o ya venció.
func (m *Manager) Read(store CookieStore) (*Session, error) {
	userVal, tokenVal := store.Cookie(CookieUser), store.Cookie(CookieToken)
	if userVal == "" || tokenVal == "" {
		return nil, domain.ErrNoSession
	}

	var uc userCookie
	if err := m.open(userVal, &uc); err != nil {
		return nil, domain.ErrNoSession
	}
	var tc tokenCookie
	if err := m.open(tokenVal, &tc); err != nil {
		return nil, domain.ErrNoSession
	}
	if tc.Token == "" || !m.now().Before(tc.ExpiresAt) {
		return nil, domain.ErrNoSession
	}
	return &Session{User: uc.User, Token: tc.Token, ExpiresAt: tc.ExpiresAt}, nil
}

// UpdateUser reescribe la cookie de usuario conservando token y vencimiento (p. ej. tras editar el perfil).
func (m *Manager) UpdateUser(store CookieStore, s *Session, user entity.User) error {
	s.User = user
	return m.Write(store, *s)
}

// Clear borra ambas cookies.
func (m *Manager) Clear(store CookieStore) {
	store.ClearCookie(CookieUser)
	store.ClearCookie(CookieToken)
}

func (m *Manager) open(value string, out any) error {
	plain, err := m.codec.Open(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(plain, out)
}

type ctxKey struct{}

// WithContext guarda s en ctx para las capas inferiores (cliente de la API).
func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext recupera la sesión guardada con WithContext.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// TokenFromContext bearer token de la sesión en ctx ("" si no hay).
func TokenFromContext(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.Token
	}
	return ""
}

// Require devuelve la sesión de ctx o domain.ErrNoSession.
func Require(ctx context.Context) (*Session, error) {
	if s, ok := FromContext(ctx); ok {
		return s, nil
	}
	return nil, domain.ErrNoSession
}
