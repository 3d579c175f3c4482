package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/fetch"
	"github.com/jhoicas/megastore-web/internal/application/ports"
	"github.com/jhoicas/megastore-web/internal/application/session"
	"github.com/jhoicas/megastore-web/internal/application/validation"
	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
	"github.com/jhoicas/megastore-web/pkg/money"
)

const (
	msgCheckout     = "Ocurrió un error al procesar tu compra. Por favor, intenta nuevamente."
	msgIncomplete   = "Por favor, completa todos los datos de envío y pago."
	msgEmptyCart    = "Tu carrito está vacío."
	msgLoadSale     = "Error al cargar la compra."
	msgReceipt      = "No se pudo generar el comprobante."
	paymentCard     = "credit_card"
	paymentPayPal   = "paypal"
	shippingDefault = "standard"
)

// ShippingOption método de envío con costo fijo.
type ShippingOption struct {
	Code      string
	Label     string
	Days      string
	Cost      decimal.Decimal
	CostLabel string
	Selected  bool
}

// PaymentOption medio de pago. Sale es el valor que se envía a la API.
type PaymentOption struct {
	Code     string
	Label    string
	Sale     string
	Selected bool
}

var shippingOptions = []ShippingOption{
	{Code: "standard", Label: "Estándar", Days: "3-5 días", Cost: decimal.NewFromInt(500)},
	{Code: "express", Label: "Express", Days: "1-2 días", Cost: decimal.NewFromInt(1000)},
	{Code: "moto", Label: "Moto", Days: "Mismo día", Cost: decimal.NewFromInt(1500)},
}

var paymentOptions = []PaymentOption{
	{Code: paymentPayPal, Label: "PayPal", Sale: "PayPal"},
	{Code: paymentCard, Label: "Tarjeta de Crédito", Sale: "Tarjeta"},
}

func findShipping(code string) (ShippingOption, bool) {
	for _, o := range shippingOptions {
		if o.Code == code {
			return o, true
		}
	}
	return ShippingOption{}, false
}

// ShippingCost costo del método de envío (cero si es desconocido).
func ShippingCost(code string) decimal.Decimal {
	o, _ := findShipping(code)
	return o.Cost
}

func shippingLabel(code string) string {
	if o, ok := findShipping(code); ok {
		return o.Label
	}
	return code
}

func paymentSaleValue(code string) string {
	for _, o := range paymentOptions {
		if o.Code == code {
			return o.Sale
		}
	}
	return code
}

// Complete indica si el formulario habilita "Confirmar compra": todos los datos de envío
// y, para tarjeta, todos los datos de pago.
func Complete(f dto.CheckoutForm) bool {
	required := []string{f.ShippingMethod, f.PaymentMethod, f.FullName, f.Address, f.City, f.State, f.PostalCode, f.Country}
	if f.PaymentMethod == paymentCard {
		required = append(required, f.CardNumber, f.CardName, f.ExpiryDate, f.CVV)
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// CheckoutPage pantalla de checkout.
type CheckoutPage struct {
	Cart         fetch.State[CartView]
	Form         dto.CheckoutForm
	Shipping     []ShippingOption
	Payments     []PaymentOption
	ShippingCost string
	Total        string
	CanConfirm   bool
	Error        string
}

// ConfirmationPage compra confirmada.
type ConfirmationPage struct {
	Sale fetch.State[SaleView]
}

// CheckoutUseCase checkout y confirmación de compra.
type CheckoutUseCase struct {
	cart  repository.CartRepository
	sales repository.SaleRepository
	docs  ports.DocumentGenerator
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(cart repository.CartRepository, sales repository.SaleRepository, docs ports.DocumentGenerator) *CheckoutUseCase {
	return &CheckoutUseCase{cart: cart, sales: sales, docs: docs}
}

// DefaultForm precarga el formulario con los datos del usuario de la sesión.
func DefaultForm(u entity.User) dto.CheckoutForm {
	f := dto.CheckoutForm{
		ShippingMethod: shippingDefault,
		PaymentMethod:  paymentPayPal,
		FullName:       u.FullName(),
	}
	if a := u.Address; a != nil {
		f.Address = strings.TrimSpace(a.Street + " " + a.Number)
		f.City = a.City
		f.State = a.State
		f.PostalCode = a.PostalCode
		f.Country = a.Country
	}
	return f
}

// Page arma el checkout para form (carrito, opciones, costo y total).
func (uc *CheckoutUseCase) Page(ctx context.Context, form dto.CheckoutForm) (*CheckoutPage, error) {
	if _, err := session.Require(ctx); err != nil {
		return nil, err
	}
	st := fetch.Run(ctx, func(ctx context.Context, _ struct{}) (*entity.Cart, error) {
		return uc.cart.Get(ctx)
	}, struct{}{}, msgLoadCart)

	page := &CheckoutPage{Form: form}
	page.Cart = fetch.State[CartView]{Loaded: st.Loaded, Error: st.Error}
	subtotal := decimal.Zero
	if st.Data != nil {
		page.Cart.Data = toCartView(st.Data)
		subtotal = st.Data.Total
	}
	page.CanConfirm = Complete(form) && !st.Data.IsEmpty()
	cost := ShippingCost(form.ShippingMethod)
	for _, o := range shippingOptions {
		o.CostLabel = money.Format(o.Cost)
		o.Selected = o.Code == form.ShippingMethod
		page.Shipping = append(page.Shipping, o)
	}
	for _, o := range paymentOptions {
		o.Selected = o.Code == form.PaymentMethod
		page.Payments = append(page.Payments, o)
	}
	page.ShippingCost = money.Format(cost)
	page.Total = money.Format(sumDecimal(subtotal, cost))
	return page, nil
}

// Confirm registra la venta con el carrito actual y devuelve la ruta de confirmación.
// Con el formulario incompleto no se llama a la API.
func (uc *CheckoutUseCase) Confirm(ctx context.Context, form dto.CheckoutForm) (string, error) {
	s, err := session.Require(ctx)
	if err != nil {
		return "", err
	}
	if !Complete(form) {
		return "", domain.NewValidationError("", msgIncomplete)
	}
	if err := validation.First(form); err != nil {
		return "", err
	}

	cart, err := uc.cart.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("checkout: obtener carrito: %w", err)
	}
	if cart.IsEmpty() {
		return "", errors.Join(domain.ErrEmptyCart, domain.NewValidationError("cart", msgEmptyCart))
	}

	in := repository.SaleInput{
		UserID:        s.User.ID,
		PaymentMethod: paymentSaleValue(form.PaymentMethod),
		SaleDetails:   make([]repository.SaleLine, 0, len(cart.CartItems)),
		ShippingCost:  ShippingCost(form.ShippingMethod),
		ShippingInfo: repository.ShippingInfo{
			FullName:   strings.TrimSpace(form.FullName),
			Address:    strings.TrimSpace(form.Address),
			City:       strings.TrimSpace(form.City),
			State:      strings.TrimSpace(form.State),
			PostalCode: strings.TrimSpace(form.PostalCode),
			Country:    strings.TrimSpace(form.Country),
		},
		ShippingMethod: form.ShippingMethod,
	}
	for _, it := range cart.CartItems {
		in.SaleDetails = append(in.SaleDetails, repository.SaleLine{VariantID: it.Variant.ID, Quantity: it.Quantity})
	}

	sale, err := uc.sales.Create(ctx, in)
	if err != nil {
		return "", fmt.Errorf("checkout: crear venta: %w", err)
	}
	return ConfirmationPath(sale.ID), nil
}

// ConfirmationPath ruta de la confirmación de una venta.
func ConfirmationPath(saleID int64) string {
	return fmt.Sprintf("/checkout/confirmation/%d", saleID)
}

// ConfirmMessage mensaje a mostrar si Confirm falla.
func ConfirmMessage(err error) string { return domain.UserMessage(err, msgCheckout) }

// Confirmation carga la venta recién creada.
func (uc *CheckoutUseCase) Confirmation(ctx context.Context, saleID int64) (*ConfirmationPage, error) {
	if _, err := session.Require(ctx); err != nil {
		return nil, err
	}
	st := fetch.Run(ctx, uc.sales.GetByID, saleID, msgLoadSale)
	page := &ConfirmationPage{Sale: fetch.State[SaleView]{Loaded: st.Loaded, Error: st.Error}}
	if st.Data != nil {
		page.Sale.Data = toSaleView(*st.Data)
	}
	return page, nil
}

// Receipt PDF del comprobante de la venta.
func (uc *CheckoutUseCase) Receipt(ctx context.Context, saleID int64) ([]byte, error) {
	if _, err := session.Require(ctx); err != nil {
		return nil, err
	}
	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("checkout: obtener venta: %w", err)
	}
	pdf, err := uc.docs.SaleReceipt(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("checkout: comprobante %d: %w", saleID, err)
	}
	return pdf, nil
}

// ReceiptMessage mensaje a mostrar si Receipt falla.
func ReceiptMessage(err error) string { return domain.UserMessage(err, msgReceipt) }
