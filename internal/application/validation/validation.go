// Package validation valida formularios con etiquetas `validate` y traduce la primera
// regla incumplida a un mensaje en español para el usuario.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/megastore-web/internal/domain"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{9,15}$`)
	priceRe = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	stockRe = regexp.MustCompile(`^\d+$`)
)

// IsEmail valida el formato de email que acepta la tienda.
func IsEmail(s string) bool { return emailRe.MatchString(s) }

// IsPhone valida un teléfono de 9 a 15 dígitos.
func IsPhone(s string) bool { return phoneRe.MatchString(s) }

// IsPrice valida un precio positivo con hasta dos decimales.
func IsPrice(s string) bool {
	if !priceRe.MatchString(s) {
		return false
	}
	d, err := decimal.NewFromString(s)
	return err == nil && d.IsPositive()
}

// IsStock valida un entero no negativo.
func IsStock(s string) bool { return stockRe.MatchString(s) }

// Messages textos de un formulario.
// Required se muestra ante cualquier campo obligatorio vacío.
// Rules se indexa por "Campo.regla" o, en su defecto, por "Campo".
type Messages struct {
	Required string
	Rules    map[string]string
	Default  string
}

// Form formulario que conoce sus propios mensajes.
type Form interface {
	Messages() Messages
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		str := func(fn func(string) bool) validator.Func {
			return func(fl validator.FieldLevel) bool { return fn(fl.Field().String()) }
		}
		rules := map[string]validator.Func{
			"mail":     str(IsEmail),
			"phone":    str(IsPhone),
			"price":    str(IsPrice),
			"stock":    str(IsStock),
			"nonblank": str(func(s string) bool { return strings.TrimSpace(s) != "" }),
		}
		if err := register(v, rules); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

func register(v *validator.Validate, rules map[string]validator.Func) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("validation: registrar regla %q: %w", tag, err)
		}
	}
	return nil
}

// First valida form y devuelve nil o un *domain.ValidationError con el mensaje a mostrar.
// Un campo obligatorio vacío tiene prioridad; si no hay, gana la primera regla incumplida en orden de campos.
func First(form Form) error {
	err := instance().Struct(form)
	if err == nil {
		return nil
	}
	msgs := form.Messages()

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError("", msgs.fallback())
	}

	for _, fe := range verrs {
		if strings.HasPrefix(fe.Tag(), "required") {
			if m, ok := msgs.Rules[fe.StructField()+"."+fe.Tag()]; ok {
				return domain.NewValidationError(fe.StructField(), m)
			}
			return domain.NewValidationError(fe.StructField(), msgs.fallbackRequired())
		}
	}

	fe := verrs[0]
	return domain.NewValidationError(fe.StructField(), msgs.lookup(fe.StructField(), fe.Tag()))
}

func (m Messages) lookup(field, tag string) string {
	if s, ok := m.Rules[field+"."+tag]; ok {
		return s
	}
	if s, ok := m.Rules[field]; ok {
		return s
	}
	return m.fallback()
}

func (m Messages) fallbackRequired() string {
	if m.Required != "" {
		return m.Required
	}
	return "Por favor, completa todos los campos."
}

func (m Messages) fallback() string {
	if m.Default != "" {
		return m.Default
	}
	return "Por favor, revisa los datos ingresados."
}
