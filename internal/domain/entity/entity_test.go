package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/megastore-web/internal/domain/entity"
)

func TestUser_IsAdmin(t *testing.T) {
	u := entity.User{Roles: []entity.Role{{Name: entity.RoleUser}, {Name: entity.RoleAdmin}}}
	assert.True(t, u.IsAdmin())
	assert.Equal(t, []string{"Usuario", "Admin"}, u.RoleNames())

	u.Roles = []entity.Role{{Name: entity.RoleUser}}
	assert.False(t, u.IsAdmin(), "sin ADMIN no es administrador")
}

func TestAddress_String(t *testing.T) {
	a := &entity.Address{Street: "Av. Siempreviva", Number: "742", Floor: "2", City: "Springfield", PostalCode: "1234", Country: "Argentina"}
	assert.Equal(t, "Av. Siempreviva 742, Piso 2, Springfield, 1234, Argentina", a.String())

	var nilAddr *entity.Address
	assert.Empty(t, nilAddr.String())
}

func TestProduct_RefsPlanosOEmbebidos(t *testing.T) {
	var p entity.Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Remera","price":"10.50","categoryId":3,"brand":{"id":7,"name":"Acme"}}`), &p))

	assert.Equal(t, int64(3), p.CategoryRef())
	assert.Equal(t, int64(7), p.BrandRef())
	assert.Zero(t, p.SubcategoryRef())
	assert.Equal(t, "10.5", p.Price.String())
}

func TestSale_NextStatuses(t *testing.T) {
	s := entity.Sale{Status: entity.SaleInProcess}
	assert.Equal(t, []string{entity.SaleSent, entity.SaleCanceled}, s.NextStatuses())
	assert.Equal(t, "En Proceso", s.StatusLabel())

	s.Status = entity.SaleSent
	assert.Equal(t, []string{entity.SaleCompleted}, s.NextStatuses())

	s.Status = entity.SaleCompleted
	assert.Empty(t, s.NextStatuses(), "un estado final no ofrece transiciones")
}

func TestTimestamp_AceptaFechaLocalSinZona(t *testing.T) {
	var s entity.Sale
	require.NoError(t, json.Unmarshal([]byte(`{"id":9,"saleDate":"2024-11-10T12:34:56.123","status":"SENT"}`), &s))
	assert.Equal(t, "10/11/2024", s.SaleDate.Display())

	require.NoError(t, json.Unmarshal([]byte(`{"saleDate":null}`), &s))
	assert.True(t, s.SaleDate.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"saleDate":"ayer"}`), &s))
}

func TestLoginResult_TokenConGuion(t *testing.T) {
	var r entity.LoginResult
	require.NoError(t, json.Unmarshal([]byte(`{"user":{"id":1,"email":"a@b.co","roles":[{"name":"ADMIN"}]},"jwt-token":"abc"}`), &r))
	assert.Equal(t, "abc", r.Token)
	assert.True(t, r.User.IsAdmin())
}
