package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/megastore-web/internal/domain"
)

func TestUserMessage(t *testing.T) {
	fallback := "Error al crear el producto."

	remote := &domain.RemoteError{Kind: domain.KindValidation, Status: 400, Message: "El nombre ya existe"}
	assert.Equal(t, "El nombre ya existe", domain.UserMessage(fmt.Errorf("crear: %w", remote), fallback))

	bare := &domain.RemoteError{Kind: domain.KindServer, Status: 500}
	assert.Equal(t, fallback, domain.UserMessage(bare, fallback), "sin mensaje de la API se usa el genérico")

	val := domain.NewValidationError("email", "Por favor, ingresa un email válido.")
	assert.Equal(t, "Por favor, ingresa un email válido.", domain.UserMessage(val, fallback))

	assert.Equal(t, fallback, domain.UserMessage(errors.New("boom"), fallback))
	assert.Empty(t, domain.UserMessage(nil, fallback))
}

func TestRemoteError_Unwrap(t *testing.T) {
	err := &domain.RemoteError{Kind: domain.KindNotFound, Status: 404}
	assert.ErrorIs(t, err, domain.ErrNotFound)

	unauth := &domain.RemoteError{Kind: domain.KindUnauthorized, Status: 401}
	assert.True(t, domain.IsUnauthorized(unauth))
	assert.ErrorIs(t, unauth, domain.ErrUnauthorized)
	assert.False(t, domain.IsUnauthorized(err))
}
