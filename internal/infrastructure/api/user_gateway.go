package api

import (
	"context"
	"net/url"

	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

var (
	_ repository.AuthGateway    = (*AuthGateway)(nil)
	_ repository.UserRepository = (*UserGateway)(nil)
)

// AuthGateway implementa repository.AuthGateway.
type AuthGateway struct {
	c *Client
}

// NewAuthGateway construye el gateway.
func NewAuthGateway(c *Client) *AuthGateway { return &AuthGateway{c: c} }

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login devuelve el usuario y el token emitido por la API.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (*entity.LoginResult, error) {
	var out entity.LoginResult
	if err := g.c.post(ctx, "/auth/login", nil, loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *AuthGateway) Register(ctx context.Context, in repository.RegisterInput) error {
	return g.c.post(ctx, "/auth/register", nil, in, nil)
}

// SendResetToken pide a la API que envíe el token de recuperación por email.
func (g *AuthGateway) SendResetToken(ctx context.Context, email string) error {
	return g.c.post(ctx, "/users/send-reset-token", url.Values{"email": {email}}, nil, nil)
}

// ResetPassword los tres datos viajan como query string.
func (g *AuthGateway) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	q := url.Values{
		"email":       {email},
		"token":       {token},
		"newPassword": {newPassword},
	}
	return g.c.post(ctx, "/users/reset-password", q, nil, nil)
}

// UserGateway implementa repository.UserRepository sobre /users.
type UserGateway struct {
	res resource[entity.User, repository.UserInput]
}

// NewUserGateway construye el gateway.
func NewUserGateway(c *Client) *UserGateway {
	return &UserGateway{res: resource[entity.User, repository.UserInput]{c: c, path: "/users"}}
}

func (g *UserGateway) Me(ctx context.Context) (*entity.User, error) {
	var out entity.User
	if err := g.res.c.get(ctx, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMe devuelve el usuario actualizado tal como lo responde la API.
func (g *UserGateway) UpdateMe(ctx context.Context, in repository.ProfileInput) (*entity.User, error) {
	var out entity.User
	if err := g.res.c.put(ctx, "/users/me", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *UserGateway) List(ctx context.Context) ([]entity.User, error) {
	return g.res.list(ctx, nil)
}

func (g *UserGateway) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return g.res.getByID(ctx, id)
}

func (g *UserGateway) Create(ctx context.Context, in repository.UserInput) error {
	return g.res.create(ctx, in)
}

func (g *UserGateway) Update(ctx context.Context, id int64, in repository.UserInput) error {
	return g.res.update(ctx, id, in)
}

func (g *UserGateway) Delete(ctx context.Context, id int64) error {
	return g.res.remove(ctx, id)
}
