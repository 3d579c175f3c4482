package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
)

func cartWith(qty, stock int) entity.Cart {
	price := decimal.NewFromInt(2500)
	return entity.Cart{
		CartItems: []entity.CartItem{{
			Variant:      entity.Variant{ID: 9, Color: "Rojo", Size: "M", Stock: stock, Product: &entity.Ref{ID: 3, Name: "Remera"}},
			Quantity:     qty,
			ProductPrice: price,
			Subtotal:     price.Mul(decimal.NewFromInt(int64(qty))),
		}},
		Total: price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestCart_DecrementEnUnoNoLlamaALaAPI(t *testing.T) {
	repo := &fakeCart{cart: cartWith(1, 5)}
	uc := NewCartUseCase(repo)

	page, err := uc.Decrement(withUser(customer), 9, 1)
	require.NoError(t, err)
	assert.Equal(t, "La cantidad mínima es 1.", page.Error)
	assert.Equal(t, []string{"get"}, repo.all(), "solo se recarga el carrito, sin PUT")
	assert.False(t, page.Cart.Data.Lines[0].CanDecrement)
}

func TestCart_EdicionDirectaMenorAUnoNoLlama(t *testing.T) {
	repo := &fakeCart{cart: cartWith(3, 5)}
	uc := NewCartUseCase(repo)

	page, err := uc.SetQuantity(withUser(customer), 9, 0)
	require.NoError(t, err)
	assert.Equal(t, "La cantidad mínima es 1.", page.Error)
	assert.NotContains(t, repo.all(), "put 9 0")
}

func TestCart_IncrementHacePUTYRecarga(t *testing.T) {
	repo := &fakeCart{cart: cartWith(2, 5)}
	uc := NewCartUseCase(repo)

	page, err := uc.Increment(withUser(customer), 9, 2, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Error)
	assert.Equal(t, []string{"put 9 3", "get"}, repo.all())
	assert.Equal(t, 3, page.Cart.Data.Lines[0].Quantity)
	assert.Equal(t, "Remera", page.Cart.Data.Lines[0].ProductName)
	assert.Equal(t, "Rojo / M", page.Cart.Data.Lines[0].Variant)
}

func TestCart_IncrementSinStockNoLlama(t *testing.T) {
	repo := &fakeCart{cart: cartWith(5, 5)}
	uc := NewCartUseCase(repo)

	page, err := uc.Increment(withUser(customer), 9, 5, 5)
	require.NoError(t, err)
	assert.NotEmpty(t, page.Error)
	assert.Equal(t, []string{"get"}, repo.all())
}

func TestCart_ErrorDeAPIMuestraMensajeYRecarga(t *testing.T) {
	repo := &fakeCart{cart: cartWith(2, 5), setErr: apiMessage("X")}
	uc := NewCartUseCase(repo)

	page, err := uc.Increment(withUser(customer), 9, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "X", page.Error)
	assert.Equal(t, 2, page.Cart.Data.Lines[0].Quantity, "no queda aritmética local de un cambio fallido")
	assert.Equal(t, []string{"put 9 3", "get"}, repo.all())
}

func TestCart_ErrorSinCuerpoUsaFallback(t *testing.T) {
	repo := &fakeCart{cart: cartWith(2, 5), removeErr: apiNoBody()}
	uc := NewCartUseCase(repo)

	page, err := uc.Remove(withUser(customer), 9)
	require.NoError(t, err)
	assert.Equal(t, msgRemoveItem, page.Error)
}

func TestCart_SinSesion(t *testing.T) {
	repo := &fakeCart{}
	uc := NewCartUseCase(repo)

	_, err := uc.View(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSession)
	_, err = uc.SetQuantity(context.Background(), 9, 2)
	assert.ErrorIs(t, err, domain.ErrNoSession)
	assert.Empty(t, repo.all())
}

func TestCart_401DeLaAPISePropaga(t *testing.T) {
	repo := &fakeCart{cart: cartWith(2, 5), setErr: &domain.RemoteError{Kind: domain.KindUnauthorized, Status: 401}}
	uc := NewCartUseCase(repo)

	_, err := uc.SetQuantity(withUser(customer), 9, 3)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestCart_MutacionesDeLaMismaLineaSeSerializan(t *testing.T) {
	var inflight, peak int32
	repo := &fakeCart{cart: cartWith(1, 100)}
	repo.onSet = func() {
		n := atomic.AddInt32(&inflight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&inflight, -1)
	}
	uc := NewCartUseCase(repo)
	ctx := withUser(customer)

	var wg sync.WaitGroup
	for i := 2; i < 12; i++ {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			_, _ = uc.SetQuantity(ctx, 9, q)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
	assert.Equal(t, 0, uc.locks.size(), "los candados se liberan al terminar")
}

func TestCart_VistaFormateaMontos(t *testing.T) {
	repo := &fakeCart{cart: cartWith(2, 5)}
	uc := NewCartUseCase(repo)

	page, err := uc.View(withUser(customer))
	require.NoError(t, err)
	assert.Equal(t, "$ 5.000,00", page.Cart.Data.Total)
	assert.Equal(t, 2, page.Cart.Data.Count)
}
