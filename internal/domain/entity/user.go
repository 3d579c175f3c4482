package entity

import "strings"

// Roles válidos para User (tal como los envía la API).
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// RoleLabels etiqueta visible de cada rol.
var RoleLabels = map[string]string{
	RoleUser:  "Usuario",
	RoleAdmin: "Admin",
}

// Role rol asignado a un usuario.
type Role struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// Address dirección postal del usuario.
type Address struct {
	ID         int64  `json:"id,omitempty"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Floor      string `json:"floor,omitempty"`
	Apartment  string `json:"apartment,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// String formatea la dirección en una línea ("Calle 123, Piso 2, Depto B, Ciudad, CP, País").
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 6)
	if street := strings.TrimSpace(a.Street + " " + a.Number); street != "" {
		parts = append(parts, street)
	}
	if a.Floor != "" {
		parts = append(parts, "Piso "+a.Floor)
	}
	if a.Apartment != "" {
		parts = append(parts, "Depto "+a.Apartment)
	}
	for _, s := range []string{a.City, a.State, a.PostalCode, a.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// User representa un usuario de Megastore tal como lo devuelve la API.
type User struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Address     *Address `json:"address,omitempty"`
	Roles       []Role   `json:"roles"`
}

// FullName nombre y apellido.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasRole indica si el usuario tiene el rol indicado.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// IsAdmin indica si el usuario tiene el rol ADMIN.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// RoleNames etiquetas de los roles del usuario, en el orden recibido.
func (u *User) RoleNames() []string {
	out := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		if label, ok := RoleLabels[r.Name]; ok {
			out = append(out, label)
			continue
		}
		out = append(out, r.Name)
	}
	return out
}
