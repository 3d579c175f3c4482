package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrNoSession    = errors.New("no hay sesión activa")
	ErrEmptyCart    = errors.New("el carrito está vacío")
)

// RemoteErrorKind clasifica un fallo de la API remota.
type RemoteErrorKind string

const (
	KindValidation   RemoteErrorKind = "validation"
	KindUnauthorized RemoteErrorKind = "unauthorized"
	KindForbidden    RemoteErrorKind = "forbidden"
	KindNotFound     RemoteErrorKind = "not_found"
	KindServer       RemoteErrorKind = "server"
	KindNetwork      RemoteErrorKind = "network"
	KindDecode       RemoteErrorKind = "decode"
)

// RemoteError error normalizado de una llamada a la API REST.
// Message es el texto que envió la API (vacío si no envió ninguno utilizable).
type RemoteError struct {
	Kind    RemoteErrorKind
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("api %s (%d): %s", e.Kind, e.Status, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("api %s (%d): %v", e.Kind, e.Status, e.Err)
	default:
		return fmt.Sprintf("api %s (%d)", e.Kind, e.Status)
	}
}

func (e *RemoteError) Unwrap() error {
	switch e.Kind {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindForbidden:
		return ErrForbidden
	case KindNotFound:
		return ErrNotFound
	}
	return e.Err
}

// ValidationError error de validación local de un formulario; Message ya es apto para el usuario.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UserMessage devuelve el texto a mostrar para err: el mensaje de validación local,
// el mensaje de la API si lo trae, o fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Message != "" {
		return ve.Message
	}
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}

// IsUnauthorized indica si la API rechazó la credencial (401).
func IsUnauthorized(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Kind == KindUnauthorized
}
