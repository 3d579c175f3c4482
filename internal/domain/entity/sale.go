package entity

import "github.com/shopspring/decimal"

// CartItem línea del carrito.
type CartItem struct {
	Variant      Variant         `json:"variant"`
	Quantity     int             `json:"quantity"`
	ProductPrice decimal.Decimal `json:"productPrice"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Cart carrito del usuario autenticado (GET /carts/me).
type Cart struct {
	CartItems []CartItem      `json:"cartItems"`
	Total     decimal.Decimal `json:"total"`
}

// IsEmpty indica si el carrito no tiene líneas.
func (c *Cart) IsEmpty() bool { return c == nil || len(c.CartItems) == 0 }

// Item busca la línea de una variante.
func (c *Cart) Item(variantID int64) (*CartItem, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.CartItems {
		if c.CartItems[i].Variant.ID == variantID {
			return &c.CartItems[i], true
		}
	}
	return nil, false
}

// Estados de una venta.
const (
	SaleInProcess = "IN_PROCESS"
	SaleSent      = "SENT"
	SaleCompleted = "COMPLETED"
	SaleCanceled  = "CANCELED"
)

// SaleStatusLabels etiqueta visible de cada estado.
var SaleStatusLabels = map[string]string{
	SaleInProcess: "En Proceso",
	SaleSent:      "Enviado",
	SaleCompleted: "Completado",
	SaleCanceled:  "Cancelado",
}

// SaleDetail línea de una venta.
type SaleDetail struct {
	Variant   Variant         `json:"variant"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Sale venta registrada en la API.
type Sale struct {
	ID             int64           `json:"id"`
	SaleDate       Timestamp       `json:"saleDate"`
	User           *User           `json:"user,omitempty"`
	PaymentMethod  string          `json:"paymentMethod"`
	ShippingMethod string          `json:"shippingMethod"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Status         string          `json:"status"`
	SaleDetails    []SaleDetail    `json:"saleDetails"`
	FullName       string          `json:"fullName"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	PostalCode     string          `json:"postalCode"`
	Country        string          `json:"country"`
}

// StatusLabel etiqueta del estado (el código crudo si es desconocido).
func (s *Sale) StatusLabel() string {
	if l, ok := SaleStatusLabels[s.Status]; ok {
		return l
	}
	return s.Status
}

// NextStatuses transiciones que ofrece el panel para el estado actual.
// La API sigue siendo la autoridad sobre si la transición es válida.
func (s *Sale) NextStatuses() []string {
	switch s.Status {
	case SaleInProcess:
		return []string{SaleSent, SaleCanceled}
	case SaleSent:
		return []string{SaleCompleted}
	default:
		return nil
	}
}

// SalesReport reporte agregado de ventas por período.
type SalesReport struct {
	TotalSales  decimal.Decimal `json:"totalSales"`
	TotalOrders int             `json:"totalOrders"`
	TopProducts map[string]int  `json:"topProducts"`
}

// CustomerStatistics estadísticas de clientes.
type CustomerStatistics struct {
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	FavoriteProducts  map[string]int  `json:"favoriteProducts"`
	PurchaseFrequency map[string]int  `json:"purchaseFrequency"`
}

// LoginResult respuesta de POST /auth/login.
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"jwt-token"`
}
