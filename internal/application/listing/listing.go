// Package listing aplica filtro, búsqueda y paginación en memoria a los listados del panel.
package listing

import (
	"strings"
)

// Tamaños de página.
const (
	DefaultPageSize = 10
	SalesPageSize   = 5
)

// Page porción de un listado paginado.
type Page[T any] struct {
	Items      []T
	Number     int // 1-based, ya acotado a [1, TotalPages]
	Size       int
	TotalItems int
	TotalPages int // al menos 1
}

// HasPrev indica si existe página anterior.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext indica si existe página siguiente.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// Prev número de la página anterior.
func (p Page[T]) Prev() int { return p.Number - 1 }

// Next número de la página siguiente.
func (p Page[T]) Next() int { return p.Number + 1 }

// Numbers 1..TotalPages para dibujar el paginador.
func (p Page[T]) Numbers() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Paginate devuelve la página number (1-based) de items. number fuera de rango se acota.
func Paginate[T any](items []T, number, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}
	start := (number - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	if start > total {
		start = total
	}
	return Page[T]{
		Items:      items[start:end],
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: pages,
	}
}

// Filter devuelve los elementos que cumplen keep, preservando el orden.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Search filtra por subcadena sin distinguir mayúsculas sobre los campos que devuelve fields.
// Un término vacío devuelve todo.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	return Filter(items, func(it T) bool {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
		return false
	})
}

// Names índice id → nombre para resolver referencias en tablas.
func Names[T any](items []T, id func(T) int64, name func(T) string) map[int64]string {
	out := make(map[int64]string, len(items))
	for _, it := range items {
		out[id(it)] = name(it)
	}
	return out
}

// NameOr devuelve names[id] o fallback si no existe.
func NameOr(names map[int64]string, id int64, fallback string) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return fallback
}
