package repository

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/megastore-web/internal/domain/entity"
)

// CartRepository puerto hacia /carts del usuario autenticado.
type CartRepository interface {
	Get(ctx context.Context) (*entity.Cart, error)
	AddItem(ctx context.Context, variantID int64, quantity int) error
	SetQuantity(ctx context.Context, variantID int64, quantity int) error
	RemoveItem(ctx context.Context, variantID int64) error
}

// SaleLine línea de una venta nueva.
type SaleLine struct {
	VariantID int64 `json:"variantId"`
	Quantity  int   `json:"quantity"`
}

// ShippingInfo datos de envío de una venta nueva.
type ShippingInfo struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// SaleInput cuerpo de POST /sales.
type SaleInput struct {
	UserID         int64           `json:"userId"`
	PaymentMethod  string          `json:"paymentMethod"`
	SaleDetails    []SaleLine      `json:"saleDetails"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	ShippingInfo   ShippingInfo    `json:"shippingInfo"`
	ShippingMethod string          `json:"shippingMethod"`
}

// MarshalJSON envía shippingCost como número; la API no acepta el decimal entre comillas.
func (in SaleInput) MarshalJSON() ([]byte, error) {
	type plain SaleInput
	return json.Marshal(struct {
		plain
		ShippingCost json.Number `json:"shippingCost"`
	}{plain(in), json.Number(in.ShippingCost.String())})
}

// Períodos aceptados por GET /sales/reports.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// SaleRepository puerto hacia /sales.
type SaleRepository interface {
	List(ctx context.Context) ([]entity.Sale, error)
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.Sale, error)
	Create(ctx context.Context, in SaleInput) (*entity.Sale, error)
	// Transition aplica POST /sales/{id}/sent|completed|canceled según status.
	Transition(ctx context.Context, id int64, status string) error
	Report(ctx context.Context, period string) (*entity.SalesReport, error)
	CustomerStatistics(ctx context.Context) (*entity.CustomerStatistics, error)
}
