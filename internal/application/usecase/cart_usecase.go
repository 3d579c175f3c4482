package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/megastore-web/internal/application/fetch"
	"github.com/jhoicas/megastore-web/internal/application/session"
	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
	"github.com/jhoicas/megastore-web/pkg/money"
)

const (
	msgLoadCart    = "Error al cargar el carrito."
	msgUpdateCart  = "No se pudo actualizar la cantidad."
	msgRemoveItem  = "No se pudo eliminar el producto del carrito."
	msgMinQuantity = "La cantidad mínima es 1."
	msgMaxQuantity = "No hay más stock disponible para esta variante."
)

// CartLine línea del carrito para la vista.
type CartLine struct {
	VariantID    int64  `json:"variantId"`
	ProductName  string `json:"productName"`
	Variant      string `json:"variant"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Quantity     int    `json:"quantity"`
	Stock        int    `json:"stock"`
	UnitPrice    string `json:"unitPrice"`
	Subtotal     string `json:"subtotal"`
	CanDecrement bool   `json:"canDecrement"`
	CanIncrement bool   `json:"canIncrement"`
}

// CartView carrito formateado.
type CartView struct {
	Lines []CartLine `json:"lines"`
	Total string     `json:"total"`
	Count int        `json:"count"`
}

// CartPage estado de la página del carrito; Error es el fallo de la última mutación.
type CartPage struct {
	Cart  fetch.State[CartView]
	Error string
}

// CartUseCase lectura y mutaciones del carrito. Cada mutación va seguida de una recarga completa:
// la vista nunca conserva aritmética local de un cambio que falló.
type CartUseCase struct {
	cart  repository.CartRepository
	locks *lineLocks
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(cart repository.CartRepository) *CartUseCase {
	return &CartUseCase{cart: cart, locks: newLineLocks()}
}

func (uc *CartUseCase) query() *fetch.Query[struct{}, CartView] {
	return fetch.New(func(ctx context.Context, _ struct{}) (CartView, error) {
		c, err := uc.cart.Get(ctx)
		if err != nil {
			return CartView{}, err
		}
		return toCartView(c), nil
	}, msgLoadCart)
}

// View carga el carrito de la sesión.
func (uc *CartUseCase) View(ctx context.Context) (*CartPage, error) {
	if _, err := session.Require(ctx); err != nil {
		return nil, err
	}
	q := uc.query()
	_ = q.Load(ctx, struct{}{})
	return &CartPage{Cart: q.State()}, nil
}

// Increment suma una unidad a la línea cuya cantidad visible es current.
func (uc *CartUseCase) Increment(ctx context.Context, variantID int64, current, stock int) (*CartPage, error) {
	if stock > 0 && current >= stock {
		return uc.rejected(ctx, msgMaxQuantity)
	}
	return uc.SetQuantity(ctx, variantID, current+1)
}

// Decrement resta una unidad. Con cantidad 1 se rechaza sin llamar a la API.
func (uc *CartUseCase) Decrement(ctx context.Context, variantID int64, current int) (*CartPage, error) {
	if current <= 1 {
		return uc.rejected(ctx, msgMinQuantity)
	}
	return uc.SetQuantity(ctx, variantID, current-1)
}

// SetQuantity fija la cantidad de la línea (edición directa). Menor a 1 se rechaza sin llamar a la API.
func (uc *CartUseCase) SetQuantity(ctx context.Context, variantID int64, qty int) (*CartPage, error) {
	if qty < 1 {
		return uc.rejected(ctx, msgMinQuantity)
	}
	return uc.mutate(ctx, variantID, msgUpdateCart, func(ctx context.Context) error {
		return uc.cart.SetQuantity(ctx, variantID, qty)
	})
}

// Remove elimina la línea del carrito.
func (uc *CartUseCase) Remove(ctx context.Context, variantID int64) (*CartPage, error) {
	return uc.mutate(ctx, variantID, msgRemoveItem, func(ctx context.Context) error {
		return uc.cart.RemoveItem(ctx, variantID)
	})
}

// mutate ejecuta op y recarga el carrito, ambos bajo el candado de la línea.
func (uc *CartUseCase) mutate(ctx context.Context, variantID int64, fallback string, op func(context.Context) error) (*CartPage, error) {
	s, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	unlock := uc.locks.lock(fmt.Sprintf("%d:%d", s.User.ID, variantID))
	defer unlock()

	page := &CartPage{}
	opErr := op(ctx)
	if opErr != nil {
		if domain.IsUnauthorized(opErr) {
			return nil, opErr
		}
		page.Error = domain.UserMessage(opErr, fallback)
	}
	q := uc.query()
	_ = q.Load(ctx, struct{}{})
	page.Cart = q.State()
	return page, nil
}

// rejected devuelve el carrito actual con un error de validación local.
func (uc *CartUseCase) rejected(ctx context.Context, msg string) (*CartPage, error) {
	page, err := uc.View(ctx)
	if err != nil {
		return nil, err
	}
	page.Error = msg
	return page, nil
}

func toCartView(c *entity.Cart) CartView {
	v := CartView{Lines: []CartLine{}, Total: money.Format(c.Total)}
	for _, it := range c.CartItems {
		name := it.Variant.ProductName()
		v.Lines = append(v.Lines, CartLine{
			VariantID:    it.Variant.ID,
			ProductName:  name,
			Variant:      it.Variant.Label(),
			ImageURL:     it.Variant.ImageURL,
			Quantity:     it.Quantity,
			Stock:        it.Variant.Stock,
			UnitPrice:    money.Format(it.ProductPrice),
			Subtotal:     money.Format(it.Subtotal),
			CanDecrement: it.Quantity > 1,
			CanIncrement: it.Variant.Stock == 0 || it.Quantity < it.Variant.Stock,
		})
		v.Count += it.Quantity
	}
	return v
}
