package repository

import (
	"context"

	"github.com/jhoicas/megastore-web/internal/domain/entity"
)

// RegisterInput cuerpo de POST /auth/register.
type RegisterInput struct {
	Email                string `json:"email"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	PhoneNumber          string `json:"phone_number"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// AuthGateway puerto hacia los endpoints de autenticación de la API.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*entity.LoginResult, error)
	Register(ctx context.Context, in RegisterInput) error
	SendResetToken(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, token, newPassword string) error
}

// UserInput cuerpo de alta/edición de usuario desde el panel.
// Password vacío en edición significa "no cambiar".
type UserInput struct {
	Email                string          `json:"email"`
	FirstName            string          `json:"first_name"`
	LastName             string          `json:"last_name"`
	PhoneNumber          string          `json:"phone_number,omitempty"`
	Address              *entity.Address `json:"address,omitempty"`
	Password             string          `json:"password,omitempty"`
	PasswordConfirmation string          `json:"password_confirmation,omitempty"`
	Roles                []string        `json:"roles"`
}

// ProfileInput cuerpo de PUT /users/me.
type ProfileInput struct {
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	PhoneNumber string         `json:"phone_number"`
	Address     entity.Address `json:"address"`
}

// UserRepository puerto hacia /users.
type UserRepository interface {
	Me(ctx context.Context) (*entity.User, error)
	UpdateMe(ctx context.Context, in ProfileInput) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	Create(ctx context.Context, in UserInput) error
	Update(ctx context.Context, id int64, in UserInput) error
	Delete(ctx context.Context, id int64) error
}
