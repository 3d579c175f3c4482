package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/megastore-web/pkg/jwt"
)

func TestInspect_LeeSubjectYExp(t *testing.T) {
	tok, err := pkgjwt.Generate("cualquier-clave", "ana@megastore.com", []string{"ADMIN"}, 60)
	require.NoError(t, err)

	info, err := pkgjwt.Inspect(tok)
	require.NoError(t, err)

	assert.Equal(t, "ana@megastore.com", info.Subject)
	assert.Equal(t, []string{"ADMIN"}, info.Roles)
	assert.WithinDuration(t, time.Now().Add(time.Hour), info.ExpiresAt, 5*time.Second)
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(time.Now().Add(2*time.Hour)))
}

func TestInspect_TokenMalFormado(t *testing.T) {
	_, err := pkgjwt.Inspect("no-es-un-jwt")
	assert.Error(t, err)

	_, err = pkgjwt.Inspect("")
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "x", nil, 5)
	assert.Error(t, err)
}
