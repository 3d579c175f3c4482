package dto

import (
	"strings"

	"github.com/jhoicas/megastore-web/internal/application/validation"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
)

const (
	msgRequired       = "Por favor, completa todos los campos."
	msgRequiredFields = "Por favor, completa todos los campos requeridos."
	msgPasswordsMatch = "Las contraseñas no coinciden."
	msgPhone          = "El número de teléfono debe tener entre 9 y 15 dígitos."
)

// LoginForm formulario de inicio de sesión.
type LoginForm struct {
	Email    string `form:"email" json:"email" validate:"required,mail"`
	Password string `form:"password" json:"password" validate:"required"`
	Next     string `form:"next" json:"-"`
}

func (LoginForm) Messages() validation.Messages {
	return validation.Messages{
		Required: msgRequired,
		Rules:    map[string]string{"Email.mail": "Por favor, ingresa un email válido."},
	}
}

// RegisterForm formulario de registro público.
type RegisterForm struct {
	Email                string `form:"email" validate:"required,mail"`
	FirstName            string `form:"first_name" validate:"required"`
	LastName             string `form:"last_name" validate:"required"`
	Password             string `form:"password" validate:"required"`
	PasswordConfirmation string `form:"password_confirmation" validate:"required,eqfield=Password"`
}

func (RegisterForm) Messages() validation.Messages {
	return validation.Messages{
		Required: msgRequired,
		Rules: map[string]string{
			"Email.mail":                   "Por favor, ingresa un email válido.",
			"PasswordConfirmation.eqfield": msgPasswordsMatch,
		},
	}
}

// ResetRequestForm paso 1 de recuperación de contraseña.
type ResetRequestForm struct {
	Email string `form:"email" validate:"required,mail"`
}

func (ResetRequestForm) Messages() validation.Messages {
	return validation.Messages{
		Required: "Por favor, ingresa tu email.",
		Rules:    map[string]string{"Email.mail": "Por favor, ingresa un email válido."},
	}
}

// ResetPasswordForm paso 2: token recibido por email y nueva contraseña.
type ResetPasswordForm struct {
	Email           string `form:"email" validate:"required,mail"`
	Token           string `form:"token" validate:"required"`
	NewPassword     string `form:"new_password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=NewPassword"`
}

func (ResetPasswordForm) Messages() validation.Messages {
	return validation.Messages{
		Required: msgRequired,
		Rules: map[string]string{
			"Email.mail":              "Por favor, ingresa un email válido.",
			"ConfirmPassword.eqfield": msgPasswordsMatch,
		},
	}
}

// AddressFields campos de dirección compartidos por perfil y edición de usuario.
type AddressFields struct {
	Street     string `form:"street" validate:"required"`
	Number     string `form:"number" validate:"required"`
	Floor      string `form:"floor"`
	Apartment  string `form:"apartment"`
	City       string `form:"city" validate:"required"`
	State      string `form:"state"`
	PostalCode string `form:"postal_code" validate:"required"`
	Country    string `form:"country" validate:"required"`
}

// ToAddress arma la dirección de dominio.
func (a AddressFields) ToAddress(id int64) entity.Address {
	return entity.Address{
		ID:         id,
		Street:     strings.TrimSpace(a.Street),
		Number:     strings.TrimSpace(a.Number),
		Floor:      strings.TrimSpace(a.Floor),
		Apartment:  strings.TrimSpace(a.Apartment),
		City:       strings.TrimSpace(a.City),
		State:      strings.TrimSpace(a.State),
		PostalCode: strings.TrimSpace(a.PostalCode),
		Country:    strings.TrimSpace(a.Country),
	}
}

// AddressFieldsFrom precarga los campos desde una dirección existente.
func AddressFieldsFrom(a *entity.Address) AddressFields {
	if a == nil {
		return AddressFields{}
	}
	return AddressFields{
		Street: a.Street, Number: a.Number, Floor: a.Floor, Apartment: a.Apartment,
		City: a.City, State: a.State, PostalCode: a.PostalCode, Country: a.Country,
	}
}

// ProfileForm edición del perfil propio.
type ProfileForm struct {
	FirstName   string `form:"first_name" validate:"required"`
	LastName    string `form:"last_name" validate:"required"`
	PhoneNumber string `form:"phone_number" validate:"required,phone"`
	AddressFields
}

func (ProfileForm) Messages() validation.Messages {
	return validation.Messages{
		Required: msgRequiredFields,
		Rules:    map[string]string{"PhoneNumber.phone": msgPhone},
	}
}

// UserCreateForm alta de usuario desde el panel.
type UserCreateForm struct {
	Email                string   `form:"email" validate:"required,mail"`
	FirstName            string   `form:"first_name" validate:"required"`
	LastName             string   `form:"last_name" validate:"required"`
	Password             string   `form:"password" validate:"required"`
	PasswordConfirmation string   `form:"password_confirmation" validate:"required,eqfield=Password"`
	Roles                []string `form:"roles" validate:"min=1"`
}

func (UserCreateForm) Messages() validation.Messages {
	return validation.Messages{
		Required: msgRequiredFields,
		Rules: map[string]string{
			"Email.mail":                   "Por favor, ingresa un correo electrónico válido.",
			"PasswordConfirmation.eqfield": msgPasswordsMatch,
			"Roles.min":                    "Por favor, selecciona al menos un rol.",
		},
	}
}

// UserEditForm edición de usuario desde el panel.
type UserEditForm struct {
	Email       string   `form:"email" validate:"required,mail"`
	FirstName   string   `form:"first_name" validate:"required"`
	LastName    string   `form:"last_name" validate:"required"`
	PhoneNumber string   `form:"phone_number" validate:"required,phone"`
	Roles       []string `form:"roles" validate:"min=1"`
	AddressFields
}

func (UserEditForm) Messages() validation.Messages {
	return validation.Messages{
		Required: msgRequiredFields,
		Rules: map[string]string{
			"Email.mail":        "Por favor, ingresa un correo electrónico válido.",
			"PhoneNumber.phone": msgPhone,
			"Roles.min":         "Por favor, selecciona al menos un rol.",
		},
	}
}

// KnownRoles descarta roles que la API no reconoce.
func KnownRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if _, ok := entity.RoleLabels[r]; ok {
			out = append(out, r)
		}
	}
	return out
}
