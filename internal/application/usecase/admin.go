package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/fetch"
	"github.com/jhoicas/megastore-web/internal/application/listing"
	"github.com/jhoicas/megastore-web/internal/application/session"
	"github.com/jhoicas/megastore-web/internal/domain"
)

const msgGeneric = "Ocurrió un error. Por favor, intenta nuevamente."

// Failure error de una acción del panel con el mensaje ya resuelto para el usuario.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// fail resuelve el mensaje de err (validación, API o fallback). Los errores de sesión pasan sin envolver.
func fail(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoSession) || (errors.Is(err, domain.ErrForbidden) && !isRemote(err)) || domain.IsUnauthorized(err) {
		return err
	}
	return &Failure{Message: domain.UserMessage(err, fallback), Err: err}
}

func isRemote(err error) bool {
	var re *domain.RemoteError
	return errors.As(err, &re)
}

// Message texto a mostrar para un error devuelto por los casos de uso.
func Message(err error) string {
	var f *Failure
	if errors.As(err, &f) {
		return f.Message
	}
	return domain.UserMessage(err, msgGeneric)
}

// requireAdmin exige una sesión con rol ADMIN en ctx.
func requireAdmin(ctx context.Context) (*session.Session, error) {
	s, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	if !s.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

// ListPage listado paginado del panel junto con la consulta que lo produjo.
type ListPage[T any] struct {
	Rows  fetch.State[listing.Page[T]]
	Query dto.ListQuery
}

// paged arma un ListPage a partir de filas ya filtradas y del estado de su carga.
func paged[T any, S any](rows []T, src fetch.State[S], q dto.ListQuery, size int) ListPage[T] {
	return ListPage[T]{
		Rows: fetch.State[listing.Page[T]]{
			Data:   listing.Paginate(rows, q.Page, size),
			Loaded: src.Loaded,
			Error:  src.Error,
		},
		Query: q,
	}
}
