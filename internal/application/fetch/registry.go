package fetch

import "sync"

// Registry mantiene una Query por clave (p. ej. por visitante) mientras tenga cargas en vuelo,
// para que una búsqueda nueva del mismo visitante cancele la anterior.
type Registry[P any, T any] struct {
	load     Loader[P, T]
	fallback string

	mu      sync.Mutex
	queries map[string]*entry[P, T]
}

type entry[P any, T any] struct {
	q    *Query[P, T]
	refs int
}

// NewRegistry construye un Registry vacío.
func NewRegistry[P any, T any](load Loader[P, T], fallback string) *Registry[P, T] {
	return &Registry[P, T]{load: load, fallback: fallback, queries: make(map[string]*entry[P, T])}
}

// Acquire devuelve la Query de key (creándola si hace falta). Llamar a Release al terminar.
func (r *Registry[P, T]) Acquire(key string) *Query[P, T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.queries[key]
	if !ok {
		e = &entry[P, T]{q: New(r.load, r.fallback)}
		r.queries[key] = e
	}
	e.refs++
	return e.q
}

// Release libera la Query de key; se elimina cuando nadie la usa.
func (r *Registry[P, T]) Release(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.queries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(r.queries, key)
	}
}

// Len cantidad de claves activas.
func (r *Registry[P, T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queries)
}
