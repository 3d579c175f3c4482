package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims que emite la API de Megastore. La firma la verifica la API;
// aquí solo se leen para conocer sujeto y vencimiento.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

// Info datos legibles de un token.
type Info struct {
	Subject   string
	Roles     []string
	ExpiresAt time.Time // cero si el token no trae exp
}

// Expired indica si el token ya venció respecto de now.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Inspect decodifica el token sin verificar la firma (la clave es de la API).
// Retorna error si el token está mal formado.
func Inspect(tokenString string) (Info, error) {
	if tokenString == "" {
		return Info{}, fmt.Errorf("jwt: token vacío")
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return Info{}, fmt.Errorf("jwt: token mal formado: %w", err)
	}
	info := Info{Subject: claims.Subject, Roles: claims.Roles}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// Generate firma un token HS256; lo usan los tests y los entornos locales sin API real.
func Generate(secret, subject string, roles []string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Roles: roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
