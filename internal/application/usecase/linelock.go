package usecase

import "sync"

// lineLocks serializa las mutaciones de una misma línea de carrito (sesión + variante),
// de modo que la recarga posterior a una mutación no se cruce con otra de la misma línea.
type lineLocks struct {
	mu    sync.Mutex
	locks map[string]*lineLock
}

type lineLock struct {
	mu   sync.Mutex
	refs int
}

func newLineLocks() *lineLocks {
	return &lineLocks{locks: make(map[string]*lineLock)}
}

// lock toma el candado de key y devuelve la función que lo libera.
func (l *lineLocks) lock(key string) func() {
	l.mu.Lock()
	ll, ok := l.locks[key]
	if !ok {
		ll = &lineLock{}
		l.locks[key] = ll
	}
	ll.refs++
	l.mu.Unlock()

	ll.mu.Lock()
	return func() {
		ll.mu.Unlock()
		l.mu.Lock()
		ll.refs--
		if ll.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *lineLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
