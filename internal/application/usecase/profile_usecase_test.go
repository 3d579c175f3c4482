package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
)

func TestProfile_PaginaConComprasDeCincoEnCinco(t *testing.T) {
	me := customer
	me.Address = &entity.Address{Street: "Mitre", Number: "10", City: "Rosario", PostalCode: "2000", Country: "Argentina"}
	users := &fakeUsers{me: &me}
	sales := &fakeSales{}
	for i := 1; i <= 7; i++ {
		sales.sales = append(sales.sales, entity.Sale{ID: int64(i), Status: entity.SaleCompleted})
	}

	page, err := NewProfileUseCase(users, sales).Page(withUser(customer), 2)
	require.NoError(t, err)
	assert.Equal(t, "Juan", page.User.Data.FirstName)
	assert.Equal(t, "Mitre 10, Rosario, 2000, Argentina", page.Address)
	assert.Equal(t, 2, page.Orders.Data.TotalPages)
	require.Len(t, page.Orders.Data.Items, 2)
	assert.Equal(t, "Completado", page.Orders.Data.Items[0].StatusLabel)
	assert.Contains(t, sales.all(), "my-sales 7")
}

func validProfileForm() dto.ProfileForm {
	return dto.ProfileForm{
		FirstName:   "Juan",
		LastName:    "Pérez",
		PhoneNumber: "3515551234",
		AddressFields: dto.AddressFields{
			Street: "Mitre", Number: "10", City: "Rosario", PostalCode: "2000", Country: "Argentina",
		},
	}
}

func TestProfile_UpdateValidaAntesDeLlamar(t *testing.T) {
	users := &fakeUsers{}
	uc := NewProfileUseCase(users, &fakeSales{})

	form := validProfileForm()
	form.PhoneNumber = "12ab"
	_, err := uc.Update(withUser(customer), form)
	assert.Equal(t, "El número de teléfono debe tener entre 9 y 15 dígitos.", ProfileMessage(err))

	form = validProfileForm()
	form.Country = ""
	_, err = uc.Update(withUser(customer), form)
	assert.Equal(t, "Por favor, completa todos los campos requeridos.", ProfileMessage(err))
	assert.Empty(t, users.all())
}

func TestProfile_UpdateConservaRolesDeLaSesion(t *testing.T) {
	updated := entity.User{ID: 7, FirstName: "Juan", LastName: "Pérez"}
	users := &fakeUsers{updatedMe: &updated}
	uc := NewProfileUseCase(users, &fakeSales{})

	u, err := uc.Update(withUser(customer), validProfileForm())
	require.NoError(t, err)
	assert.Equal(t, customer.Roles, u.Roles)
	assert.Equal(t, "Rosario", users.lastMe.Address.City)
}

func TestProfile_UpdateErrorDeAPI(t *testing.T) {
	users := &fakeUsers{mutErr: apiMessage("X")}
	_, err := NewProfileUseCase(users, &fakeSales{}).Update(withUser(customer), validProfileForm())
	assert.Equal(t, "X", ProfileMessage(err))

	users.mutErr = apiNoBody()
	_, err = NewProfileUseCase(users, &fakeSales{}).Update(withUser(customer), validProfileForm())
	assert.Equal(t, "No se pudo actualizar el perfil.", ProfileMessage(err))
}
