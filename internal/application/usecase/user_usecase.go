package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/fetch"
	"github.com/jhoicas/megastore-web/internal/application/listing"
	"github.com/jhoicas/megastore-web/internal/application/validation"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

const (
	msgLoadUsers  = "Error al cargar los usuarios."
	msgLoadUser   = "Error al cargar el usuario."
	msgCreateUser = "Error al crear el usuario."
	msgUpdateUser = "Error al actualizar el usuario."
	msgDeleteUser = "Error al eliminar el usuario."
)

// UserRow usuario tal como se muestra en la tabla del panel.
type UserRow struct {
	ID       int64
	Email    string
	FullName string
	Phone    string
	Address  string
	Roles    []string
}

func toUserRow(u entity.User) UserRow {
	return UserRow{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName(),
		Phone:    u.PhoneNumber,
		Address:  u.Address.String(),
		Roles:    u.RoleNames(),
	}
}

// RoleOption rol seleccionable en filtros y formularios.
type RoleOption struct {
	Name     string
	Label    string
	Selected bool
}

// RoleOptions roles conocidos (USER, ADMIN) marcando los seleccionados.
func RoleOptions(selected ...string) []RoleOption {
	out := make([]RoleOption, 0, len(entity.RoleLabels))
	for _, r := range []string{entity.RoleUser, entity.RoleAdmin} {
		opt := RoleOption{Name: r, Label: entity.RoleLabels[r]}
		for _, s := range selected {
			if s == r {
				opt.Selected = true
			}
		}
		out = append(out, opt)
	}
	return out
}

// UserListPage listado de usuarios con el filtro de rol.
type UserListPage struct {
	ListPage[UserRow]
	Roles []RoleOption
}

// UserUseCase administración de usuarios desde el panel.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto hacia /users.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List usuarios filtrados por rol, buscados y paginados.
func (uc *UserUseCase) List(ctx context.Context, q dto.ListQuery) (*UserListPage, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	q.DefaultPage()
	st := fetch.Run(ctx, func(ctx context.Context, _ struct{}) ([]entity.User, error) {
		return uc.repo.List(ctx)
	}, struct{}{}, msgLoadUsers)

	users := st.Data
	if q.Role != "" {
		users = listing.Filter(users, func(u entity.User) bool { return u.HasRole(q.Role) })
	}
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, toUserRow(u))
	}
	rows = listing.Search(rows, q.Search, func(r UserRow) []string {
		return []string{r.FullName, r.Email, r.Phone, r.Address}
	})
	return &UserListPage{
		ListPage: paged(rows, st, q, listing.DefaultPageSize),
		Roles:    RoleOptions(q.Role),
	}, nil
}

// GetByID usuario por id (edición y confirmación de borrado).
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fail(err, msgLoadUser)
	}
	return u, nil
}

// UserEditForm formulario de edición precargado.
func UserEditForm(u *entity.User) dto.UserEditForm {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Name)
	}
	return dto.UserEditForm{
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		PhoneNumber:   u.PhoneNumber,
		Roles:         roles,
		AddressFields: dto.AddressFieldsFrom(u.Address),
	}
}

// Create valida y da de alta el usuario.
func (uc *UserUseCase) Create(ctx context.Context, form dto.UserCreateForm) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	form.Roles = dto.KnownRoles(form.Roles)
	if err := validation.First(form); err != nil {
		return fail(err, msgCreateUser)
	}
	in := repository.UserInput{
		Email:                strings.TrimSpace(form.Email),
		FirstName:            strings.TrimSpace(form.FirstName),
		LastName:             strings.TrimSpace(form.LastName),
		Password:             form.Password,
		PasswordConfirmation: form.PasswordConfirmation,
		Roles:                form.Roles,
	}
	return fail(uc.repo.Create(ctx, in), msgCreateUser)
}

// Update valida y guarda el usuario. addressID conserva la dirección existente.
func (uc *UserUseCase) Update(ctx context.Context, id, addressID int64, form dto.UserEditForm) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	form.Roles = dto.KnownRoles(form.Roles)
	if err := validation.First(form); err != nil {
		return fail(err, msgUpdateUser)
	}
	addr := form.ToAddress(addressID)
	in := repository.UserInput{
		Email:       strings.TrimSpace(form.Email),
		FirstName:   strings.TrimSpace(form.FirstName),
		LastName:    strings.TrimSpace(form.LastName),
		PhoneNumber: strings.TrimSpace(form.PhoneNumber),
		Address:     &addr,
		Roles:       form.Roles,
	}
	return fail(uc.repo.Update(ctx, id, in), msgUpdateUser)
}

// Delete elimina el usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return fail(uc.repo.Delete(ctx, id), msgDeleteUser)
}
