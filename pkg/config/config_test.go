package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/megastore-web/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "megastore-web", cfg.App.Name)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, 5*time.Hour, cfg.Session.TTL(), "la sesión dura 5 horas por defecto")
	assert.Equal(t, 500, cfg.Store.SearchDebounceMS)
	assert.Zero(t, cfg.API.Timeout(), "sin timeout propio salvo que se configure")
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("API_BASE_URL", "https://api.megastore.test/")
	t.Setenv("API_TIMEOUT_SECONDS", "12")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "https://api.megastore.test", cfg.API.BaseURL, "se recorta la barra final")
	assert.Equal(t, 12*time.Second, cfg.API.Timeout())
	assert.True(t, cfg.Session.CookieSecure)
}

func TestLoad_ProductionSinSecret_Falla(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}
