package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

var (
	_ repository.CartRepository = (*CartGateway)(nil)
	_ repository.SaleRepository = (*SaleGateway)(nil)
)

// CartGateway implementa repository.CartRepository sobre /carts.
type CartGateway struct {
	c *Client
}

// NewCartGateway construye el gateway.
func NewCartGateway(c *Client) *CartGateway { return &CartGateway{c: c} }

func (g *CartGateway) Get(ctx context.Context) (*entity.Cart, error) {
	var out entity.Cart
	if err := g.c.get(ctx, "/carts/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func itemQuantityPath(variantID int64, quantity int) string {
	return fmt.Sprintf("/carts/items/%d/quantity/%d", variantID, quantity)
}

// AddItem agrega quantity unidades de la variante al carrito.
func (g *CartGateway) AddItem(ctx context.Context, variantID int64, quantity int) error {
	return g.c.post(ctx, itemQuantityPath(variantID, quantity), nil, nil, nil)
}

// SetQuantity fija la cantidad absoluta de la línea.
func (g *CartGateway) SetQuantity(ctx context.Context, variantID int64, quantity int) error {
	return g.c.put(ctx, itemQuantityPath(variantID, quantity), nil, nil)
}

func (g *CartGateway) RemoveItem(ctx context.Context, variantID int64) error {
	return g.c.delete(ctx, "/carts/items/"+strconv.FormatInt(variantID, 10))
}

// SaleGateway implementa repository.SaleRepository sobre /sales.
type SaleGateway struct {
	c *Client
}

// NewSaleGateway construye el gateway.
func NewSaleGateway(c *Client) *SaleGateway { return &SaleGateway{c: c} }

func (g *SaleGateway) List(ctx context.Context) ([]entity.Sale, error) {
	var out []entity.Sale
	if err := g.c.get(ctx, "/sales", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *SaleGateway) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var out entity.Sale
	if err := g.c.get(ctx, "/sales/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *SaleGateway) ListByUser(ctx context.Context, userID int64) ([]entity.Sale, error) {
	var out []entity.Sale
	if err := g.c.get(ctx, fmt.Sprintf("/sales/%d/my-sales", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create registra la venta y devuelve la venta creada (con su id).
func (g *SaleGateway) Create(ctx context.Context, in repository.SaleInput) (*entity.Sale, error) {
	var out entity.Sale
	if err := g.c.post(ctx, "/sales", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

var transitionPaths = map[string]string{
	entity.SaleSent:      "sent",
	entity.SaleCompleted: "completed",
	entity.SaleCanceled:  "canceled",
}

func (g *SaleGateway) Transition(ctx context.Context, id int64, status string) error {
	suffix, ok := transitionPaths[status]
	if !ok {
		return fmt.Errorf("api: estado de venta desconocido %q", status)
	}
	return g.c.post(ctx, fmt.Sprintf("/sales/%d/%s", id, suffix), nil, nil, nil)
}

func (g *SaleGateway) Report(ctx context.Context, period string) (*entity.SalesReport, error) {
	var q url.Values
	if period != "" {
		q = url.Values{"period": {period}}
	}
	var out entity.SalesReport
	if err := g.c.get(ctx, "/sales/reports", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *SaleGateway) CustomerStatistics(ctx context.Context) (*entity.CustomerStatistics, error) {
	var out entity.CustomerStatistics
	if err := g.c.get(ctx, "/sales/customer-statistics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
