package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/fetch"
	"github.com/jhoicas/megastore-web/internal/application/listing"
	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

const (
	msgLoadSales  = "Error al cargar las ventas."
	msgTransition = "Error al actualizar el estado de la venta."
)

// SalesUseCase ventas en el panel: listado, detalle y cambios de estado.
type SalesUseCase struct {
	sales repository.SaleRepository
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(sales repository.SaleRepository) *SalesUseCase {
	return &SalesUseCase{sales: sales}
}

// List ventas en el orden que las devuelve la API, 5 por página.
func (uc *SalesUseCase) List(ctx context.Context, q dto.ListQuery) (*ListPage[SaleView], error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	q.DefaultPage()
	st := fetch.Run(ctx, func(ctx context.Context, _ struct{}) ([]entity.Sale, error) {
		return uc.sales.List(ctx)
	}, struct{}{}, msgLoadSales)
	rows := make([]SaleView, 0, len(st.Data))
	for _, s := range st.Data {
		rows = append(rows, toSaleView(s))
	}
	rows = listing.Search(rows, q.Search, func(v SaleView) []string {
		return []string{fmt.Sprint(v.ID), v.Customer, v.CustomerEmail, v.StatusLabel}
	})
	page := paged(rows, st, q, listing.SalesPageSize)
	return &page, nil
}

// Detail venta por id.
func (uc *SalesUseCase) Detail(ctx context.Context, id int64) (fetch.State[SaleView], error) {
	if _, err := requireAdmin(ctx); err != nil {
		return fetch.State[SaleView]{}, err
	}
	st := fetch.Run(ctx, uc.sales.GetByID, id, msgLoadSale)
	out := fetch.State[SaleView]{Loaded: st.Loaded, Error: st.Error}
	if st.Data != nil {
		out.Data = toSaleView(*st.Data)
	}
	return out, nil
}

// Transition cambia el estado de la venta. Solo se aceptan los estados destino conocidos;
// la validez de la transición la decide la API.
func (uc *SalesUseCase) Transition(ctx context.Context, id int64, status string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	switch status {
	case entity.SaleSent, entity.SaleCompleted, entity.SaleCanceled:
	default:
		return fail(domain.NewValidationError("status", "Estado de venta inválido."), msgTransition)
	}
	return fail(uc.sales.Transition(ctx, id, status), msgTransition)
}
