package listing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/megastore-web/internal/application/listing"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	p := listing.Paginate(seq(23), 3, 10)
	assert.Equal(t, []int{21, 22, 23}, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
	assert.Equal(t, []int{1, 2, 3}, p.Numbers())
}

func TestPaginate_AcotaNumero(t *testing.T) {
	assert.Equal(t, 1, listing.Paginate(seq(5), 0, 5).Number)
	assert.Equal(t, 2, listing.Paginate(seq(6), 99, 5).Number)

	empty := listing.Paginate([]int{}, 4, 10)
	assert.Equal(t, 1, empty.Number)
	assert.Equal(t, 1, empty.TotalPages, "un listado vacío tiene una página")
	assert.Empty(t, empty.Items)
}

func TestPaginate_TamanioPorDefecto(t *testing.T) {
	p := listing.Paginate(seq(15), 1, 0)
	assert.Equal(t, listing.DefaultPageSize, p.Size)
	assert.Len(t, p.Items, 10)
}

func TestSearch_SinMayusculas(t *testing.T) {
	type row struct{ name, email string }
	rows := []row{{"Ana", "ana@x.com"}, {"Bruno", "bruno@y.com"}, {"Carla", "CARLA@Y.COM"}}

	got := listing.Search(rows, " y.com ", func(r row) []string { return []string{r.name, r.email} })
	assert.Equal(t, []row{{"Bruno", "bruno@y.com"}, {"Carla", "CARLA@Y.COM"}}, got)

	assert.Len(t, listing.Search(rows, "", func(r row) []string { return nil }), 3)
}

func TestNames(t *testing.T) {
	type cat struct {
		id   int64
		name string
	}
	names := listing.Names([]cat{{1, "Ropa"}}, func(c cat) int64 { return c.id }, func(c cat) string { return c.name })
	assert.Equal(t, "Ropa", listing.NameOr(names, 1, "Sin categoría"))
	assert.Equal(t, "Sin categoría", listing.NameOr(names, 2, "Sin categoría"))
}
