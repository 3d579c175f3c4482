// Package fetch contiene la abstracción de lectura remota que usan todas las pantallas:
// estado {data, loading, error}, recarga con los mismos parámetros y cancelación de lo obsoleto.
package fetch

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/megastore-web/internal/domain"
)

// ErrStale lo devuelve Load cuando una carga posterior la reemplazó; su resultado se descartó.
var ErrStale = errors.New("fetch: respuesta obsoleta descartada")

// Loader obtiene T para los parámetros p.
type Loader[P any, T any] func(ctx context.Context, p P) (T, error)

// State foto del estado de una Query.
type State[T any] struct {
	Data    T
	Loaded  bool // hubo al menos una carga exitosa
	Loading bool
	Error   string // mensaje para el usuario; vacío si la última carga fue exitosa
}

// Query lectura remota con estado. Una nueva Load cancela la anterior en vuelo y
// una respuesta de una generación vieja nunca pisa el estado. Sin caché ni reintentos.
// Es segura para uso concurrente.
type Query[P any, T any] struct {
	load     Loader[P, T]
	fallback string

	mu        sync.Mutex
	gen       uint64
	cancel    context.CancelFunc
	params    P
	hasParams bool
	loading   bool
	data      T
	loaded    bool
	err       error
}

// New construye una Query. fallback es el mensaje cuando el error no trae uno propio.
func New[P any, T any](load Loader[P, T], fallback string) *Query[P, T] {
	return &Query[P, T]{load: load, fallback: fallback}
}

// Load ejecuta la carga con p. En error conserva los datos previos.
func (q *Query[P, T]) Load(ctx context.Context, p P) error {
	q.mu.Lock()
	if q.cancel != nil {
		q.cancel()
	}
	q.gen++
	gen := q.gen
	cctx, cancel := context.WithCancel(ctx)
	q.cancel = cancel
	q.params = p
	q.hasParams = true
	q.loading = true
	q.mu.Unlock()

	data, err := q.load(cctx, p)
	cancel()

	q.mu.Lock()
	defer q.mu.Unlock()
	if gen != q.gen {
		return ErrStale
	}
	q.loading = false
	q.cancel = nil
	if err != nil {
		q.err = err
		return err
	}
	q.data = data
	q.loaded = true
	q.err = nil
	return nil
}

// Refetch repite la última carga con los mismos parámetros (o el valor cero de P si nunca cargó).
func (q *Query[P, T]) Refetch(ctx context.Context) error {
	q.mu.Lock()
	p := q.params
	q.mu.Unlock()
	return q.Load(ctx, p)
}

// Loading indica si hay una carga en vuelo.
func (q *Query[P, T]) Loading() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loading
}

// Data últimos datos cargados con éxito.
func (q *Query[P, T]) Data() T {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.data
}

// Err error de la última carga terminada (nil si fue exitosa).
func (q *Query[P, T]) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err
}

// Params últimos parámetros pedidos.
func (q *Query[P, T]) Params() (P, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.params, q.hasParams
}

// State devuelve una foto consistente del estado.
func (q *Query[P, T]) State() State[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	s := State[T]{Data: q.data, Loaded: q.loaded, Loading: q.loading}
	if q.err != nil {
		s.Error = domain.UserMessage(q.err, q.fallback)
	}
	return s
}

// Run atajo para pantallas de un solo uso: carga p y devuelve el estado resultante.
// Los errores quedan reflejados en State.Error.
func Run[P any, T any](ctx context.Context, load Loader[P, T], p P, fallback string) State[T] {
	q := New(load, fallback)
	_ = q.Load(ctx, p)
	return q.State()
}
