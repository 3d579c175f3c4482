package fetch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/megastore-web/internal/application/fetch"
	"github.com/jhoicas/megastore-web/internal/domain"
)

const fallback = "Error al cargar los productos."

func TestQuery_CargaExitosa(t *testing.T) {
	q := fetch.New(func(_ context.Context, id int) (string, error) {
		return "producto", nil
	}, fallback)

	require.NoError(t, q.Load(context.Background(), 7))
	st := q.State()
	assert.Equal(t, "producto", st.Data)
	assert.True(t, st.Loaded)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
}

func TestQuery_ErrorConservaDatosPrevios(t *testing.T) {
	fail := false
	q := fetch.New(func(_ context.Context, _ struct{}) ([]string, error) {
		if fail {
			return nil, &domain.RemoteError{Kind: domain.KindServer, Status: 500}
		}
		return []string{"a", "b"}, nil
	}, fallback)

	require.NoError(t, q.Load(context.Background(), struct{}{}))
	fail = true
	require.Error(t, q.Refetch(context.Background()))

	st := q.State()
	assert.Equal(t, []string{"a", "b"}, st.Data, "los datos previos no se pierden")
	assert.Equal(t, fallback, st.Error, "sin mensaje de la API se usa el genérico")
}

func TestQuery_MensajeDeLaAPI(t *testing.T) {
	q := fetch.New(func(_ context.Context, _ int) (int, error) {
		return 0, &domain.RemoteError{Kind: domain.KindValidation, Status: 400, Message: "X"}
	}, fallback)

	_ = q.Load(context.Background(), 1)
	assert.Equal(t, "X", q.State().Error)
}

func TestQuery_RefetchRepiteParametros(t *testing.T) {
	var seen []string
	q := fetch.New(func(_ context.Context, p string) (string, error) {
		seen = append(seen, p)
		return p, nil
	}, fallback)

	require.NoError(t, q.Load(context.Background(), "remera"))
	require.NoError(t, q.Refetch(context.Background()))
	assert.Equal(t, []string{"remera", "remera"}, seen)

	p, ok := q.Params()
	assert.True(t, ok)
	assert.Equal(t, "remera", p)
}

// Una carga lenta reemplazada por otra no pisa el estado aunque responda después.
func TestQuery_DescartaRespuestaObsoleta(t *testing.T) {
	release := make(chan struct{})
	var canceled bool
	var mu sync.Mutex

	q := fetch.New(func(ctx context.Context, p string) (string, error) {
		if p == "lenta" {
			<-release
			mu.Lock()
			canceled = ctx.Err() != nil
			mu.Unlock()
			return "vieja", nil
		}
		return "nueva", nil
	}, fallback)

	done := make(chan error, 1)
	go func() { done <- q.Load(context.Background(), "lenta") }()

	require.Eventually(t, q.Loading, time.Second, time.Millisecond)
	require.NoError(t, q.Load(context.Background(), "rapida"))
	close(release)

	assert.ErrorIs(t, <-done, fetch.ErrStale)
	assert.Equal(t, "nueva", q.Data())
	assert.False(t, q.Loading())

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, canceled, "la carga reemplazada recibe su contexto cancelado")
}

func TestRun(t *testing.T) {
	st := fetch.Run(context.Background(), func(_ context.Context, _ int) (int, error) {
		return 0, errors.New("conexión rechazada")
	}, 1, fallback)
	assert.Equal(t, fallback, st.Error)
	assert.False(t, st.Loaded)
}

func TestRegistry_LiberaClaves(t *testing.T) {
	r := fetch.NewRegistry(func(_ context.Context, s string) (string, error) { return s, nil }, fallback)

	q1 := r.Acquire("visitante-1")
	q2 := r.Acquire("visitante-1")
	assert.Same(t, q1, q2, "la misma clave comparte Query")
	assert.Equal(t, 1, r.Len())

	r.Release("visitante-1")
	assert.Equal(t, 1, r.Len())
	r.Release("visitante-1")
	assert.Zero(t, r.Len())
}
