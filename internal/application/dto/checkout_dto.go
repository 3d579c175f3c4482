package dto

import "github.com/jhoicas/megastore-web/internal/application/validation"

// CheckoutForm datos de envío y pago. Los campos de tarjeta solo son obligatorios para credit_card.
type CheckoutForm struct {
	ShippingMethod string `form:"shipping_method" validate:"required,oneof=standard express moto"`
	PaymentMethod  string `form:"payment_method" validate:"required,oneof=paypal credit_card"`
	FullName       string `form:"full_name" validate:"required,nonblank"`
	Address        string `form:"address" validate:"required,nonblank"`
	City           string `form:"city" validate:"required,nonblank"`
	State          string `form:"state" validate:"required,nonblank"`
	PostalCode     string `form:"postal_code" validate:"required,nonblank"`
	Country        string `form:"country" validate:"required,nonblank"`
	CardNumber     string `form:"card_number" validate:"required_if=PaymentMethod credit_card"`
	CardName       string `form:"card_name" validate:"required_if=PaymentMethod credit_card"`
	ExpiryDate     string `form:"expiry_date" validate:"required_if=PaymentMethod credit_card"`
	CVV            string `form:"cvv" validate:"required_if=PaymentMethod credit_card"`
}

func (CheckoutForm) Messages() validation.Messages {
	return validation.Messages{
		Required: "Por favor, completa todos los datos de envío y pago.",
		Rules: map[string]string{
			"ShippingMethod.oneof": "Selecciona un método de envío válido.",
			"PaymentMethod.oneof":  "Selecciona un método de pago válido.",
			"FullName.nonblank":    "Por favor, completa todos los datos de envío y pago.",
			"Address.nonblank":     "Por favor, completa todos los datos de envío y pago.",
			"City.nonblank":        "Por favor, completa todos los datos de envío y pago.",
			"State.nonblank":       "Por favor, completa todos los datos de envío y pago.",
			"PostalCode.nonblank":  "Por favor, completa todos los datos de envío y pago.",
			"Country.nonblank":     "Por favor, completa todos los datos de envío y pago.",
		},
	}
}
