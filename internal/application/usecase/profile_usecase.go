package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/fetch"
	"github.com/jhoicas/megastore-web/internal/application/listing"
	"github.com/jhoicas/megastore-web/internal/application/session"
	"github.com/jhoicas/megastore-web/internal/application/validation"
	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

const (
	msgLoadProfile   = "Error al cargar el perfil."
	msgLoadOrders    = "Error al cargar tus compras."
	msgUpdateProfile = "No se pudo actualizar el perfil."
)

// ProfilePage perfil del usuario con sus compras paginadas.
type ProfilePage struct {
	User    fetch.State[*entity.User]
	Address string
	Orders  fetch.State[listing.Page[SaleView]]
}

// ProfileUseCase perfil propio: ver, editar y listar compras.
type ProfileUseCase struct {
	users repository.UserRepository
	sales repository.SaleRepository
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(users repository.UserRepository, sales repository.SaleRepository) *ProfileUseCase {
	return &ProfileUseCase{users: users, sales: sales}
}

// Page carga /users/me y las compras del usuario de la sesión en paralelo.
func (uc *ProfileUseCase) Page(ctx context.Context, page int) (*ProfilePage, error) {
	s, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	out := &ProfilePage{}
	var orders fetch.State[[]entity.Sale]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.User = fetch.Run(gctx, func(ctx context.Context, _ struct{}) (*entity.User, error) {
			return uc.users.Me(ctx)
		}, struct{}{}, msgLoadProfile)
		return nil
	})
	g.Go(func() error {
		orders = fetch.Run(gctx, uc.sales.ListByUser, s.User.ID, msgLoadOrders)
		return nil
	})
	_ = g.Wait()

	if out.User.Data != nil {
		out.Address = out.User.Data.Address.String()
	}
	views := make([]SaleView, 0, len(orders.Data))
	for _, o := range orders.Data {
		views = append(views, toSaleView(o))
	}
	out.Orders = fetch.State[listing.Page[SaleView]]{
		Data:   listing.Paginate(views, page, listing.SalesPageSize),
		Loaded: orders.Loaded,
		Error:  orders.Error,
	}
	return out, nil
}

// EditForm precarga el formulario de edición desde /users/me.
func (uc *ProfileUseCase) EditForm(ctx context.Context) (dto.ProfileForm, error) {
	if _, err := session.Require(ctx); err != nil {
		return dto.ProfileForm{}, err
	}
	u, err := uc.users.Me(ctx)
	if err != nil {
		return dto.ProfileForm{}, fmt.Errorf("perfil: obtener usuario: %w", err)
	}
	return dto.ProfileForm{
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		PhoneNumber:   u.PhoneNumber,
		AddressFields: dto.AddressFieldsFrom(u.Address),
	}, nil
}

// Update valida y guarda el perfil. Devuelve el usuario actualizado para refrescar la sesión.
func (uc *ProfileUseCase) Update(ctx context.Context, form dto.ProfileForm) (*entity.User, error) {
	s, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	if err := validation.First(form); err != nil {
		return nil, err
	}
	var addressID int64
	if s.User.Address != nil {
		addressID = s.User.Address.ID
	}
	in := repository.ProfileInput{
		FirstName:   strings.TrimSpace(form.FirstName),
		LastName:    strings.TrimSpace(form.LastName),
		PhoneNumber: strings.TrimSpace(form.PhoneNumber),
		Address:     form.ToAddress(addressID),
	}
	u, err := uc.users.UpdateMe(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("perfil: actualizar: %w", err)
	}
	// la API puede omitir los roles en la respuesta; se conservan los de la sesión
	if len(u.Roles) == 0 {
		u.Roles = s.User.Roles
	}
	return u, nil
}

// ProfileMessage mensaje a mostrar si Update falla.
func ProfileMessage(err error) string { return domain.UserMessage(err, msgUpdateProfile) }
