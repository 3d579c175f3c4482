package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/megastore-web/internal/application/session"
	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: puertos en memoria que registran las llamadas
// ──────────────────────────────────────────────────────────────────────────────

type calls struct {
	mu  sync.Mutex
	log []string
}

func (c *calls) add(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = append(c.log, fmt.Sprintf(format, args...))
}

func (c *calls) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.log...)
}

func apiMessage(msg string) error {
	return &domain.RemoteError{Kind: domain.KindValidation, Status: 400, Message: msg}
}

func apiNoBody() error {
	return &domain.RemoteError{Kind: domain.KindServer, Status: 500}
}

func withUser(u entity.User) context.Context {
	return session.WithContext(context.Background(), &session.Session{User: u, Token: "tok"})
}

var (
	customer = entity.User{ID: 7, Email: "juan@mail.com", FirstName: "Juan", LastName: "Pérez", Roles: []entity.Role{{Name: entity.RoleUser}}}
	admin    = entity.User{ID: 1, Email: "ana@megastore.com", FirstName: "Ana", Roles: []entity.Role{{Name: entity.RoleAdmin}}}
)

// ─── Carrito ──────────────────────────────────────────────────────────────────

type fakeCart struct {
	calls
	mu        sync.Mutex
	cart      entity.Cart
	getErr    error
	addErr    error
	setErr    error
	removeErr error
	onSet     func()
}

func (f *fakeCart) Get(context.Context) (*entity.Cart, error) {
	f.add("get")
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.cart
	c.CartItems = append([]entity.CartItem(nil), f.cart.CartItems...)
	return &c, nil
}

func (f *fakeCart) AddItem(_ context.Context, variantID int64, qty int) error {
	f.add("add %d %d", variantID, qty)
	return f.addErr
}

func (f *fakeCart) SetQuantity(_ context.Context, variantID int64, qty int) error {
	f.add("put %d %d", variantID, qty)
	if f.onSet != nil {
		f.onSet()
	}
	if f.setErr != nil {
		return f.setErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if it, ok := f.cart.Item(variantID); ok {
		it.Quantity = qty
	}
	return nil
}

func (f *fakeCart) RemoveItem(_ context.Context, variantID int64) error {
	f.add("delete %d", variantID)
	return f.removeErr
}

// ─── Ventas ───────────────────────────────────────────────────────────────────

type fakeSales struct {
	calls
	sales     []entity.Sale
	created   *repository.SaleInput
	createID  int64
	createErr error
	getErr    error
	report    *entity.SalesReport
	reportErr error
	stats     *entity.CustomerStatistics
	statsErr  error
	transErr  error
}

func (f *fakeSales) List(context.Context) ([]entity.Sale, error) {
	f.add("list")
	return f.sales, nil
}

func (f *fakeSales) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	f.add("get %d", id)
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.sales {
		if f.sales[i].ID == id {
			return &f.sales[i], nil
		}
	}
	return nil, &domain.RemoteError{Kind: domain.KindNotFound, Status: 404}
}

func (f *fakeSales) ListByUser(_ context.Context, userID int64) ([]entity.Sale, error) {
	f.add("my-sales %d", userID)
	return f.sales, nil
}

func (f *fakeSales) Create(_ context.Context, in repository.SaleInput) (*entity.Sale, error) {
	f.add("create")
	f.created = &in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &entity.Sale{ID: f.createID, Status: entity.SaleInProcess}, nil
}

func (f *fakeSales) Transition(_ context.Context, id int64, status string) error {
	f.add("transition %d %s", id, status)
	return f.transErr
}

func (f *fakeSales) Report(_ context.Context, period string) (*entity.SalesReport, error) {
	f.add("report %s", period)
	return f.report, f.reportErr
}

func (f *fakeSales) CustomerStatistics(context.Context) (*entity.CustomerStatistics, error) {
	f.add("customer-statistics")
	return f.stats, f.statsErr
}

// ─── Catálogo ─────────────────────────────────────────────────────────────────

type fakeProducts struct {
	calls
	products []entity.Product
	deleted  []entity.Product
	listErr  error
	mutErr   error
	last     *repository.ProductInput
	onList   func(ctx context.Context, f repository.ProductFilter) error
}

func (f *fakeProducts) List(ctx context.Context, filter repository.ProductFilter) ([]entity.Product, error) {
	f.add("list %q", filter.Search)
	if f.onList != nil {
		if err := f.onList(ctx, filter); err != nil {
			return nil, err
		}
	}
	return f.products, f.listErr
}

func (f *fakeProducts) ListDeleted(context.Context) ([]entity.Product, error) {
	f.add("deleted")
	return f.deleted, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	f.add("get %d", id)
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, &domain.RemoteError{Kind: domain.KindNotFound, Status: 404}
}

func (f *fakeProducts) Create(_ context.Context, in repository.ProductInput) error {
	f.add("create")
	f.last = &in
	return f.mutErr
}

func (f *fakeProducts) Update(_ context.Context, id int64, in repository.ProductInput) error {
	f.add("update %d", id)
	f.last = &in
	return f.mutErr
}

func (f *fakeProducts) Delete(_ context.Context, id int64) error {
	f.add("delete %d", id)
	return f.mutErr
}

func (f *fakeProducts) Restore(_ context.Context, id int64) error {
	f.add("restore %d", id)
	return f.mutErr
}

type fakeVariants struct {
	calls
	variants []entity.Variant
	mutErr   error
	last     *repository.VariantInput
}

func (f *fakeVariants) ListByProduct(_ context.Context, productID int64) ([]entity.Variant, error) {
	f.add("list %d", productID)
	out := make([]entity.Variant, 0)
	for _, v := range f.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVariants) GetByID(_ context.Context, id int64) (*entity.Variant, error) {
	f.add("get %d", id)
	for i := range f.variants {
		if f.variants[i].ID == id {
			return &f.variants[i], nil
		}
	}
	return nil, &domain.RemoteError{Kind: domain.KindNotFound, Status: 404}
}

func (f *fakeVariants) Create(_ context.Context, in repository.VariantInput) error {
	f.add("create")
	f.last = &in
	return f.mutErr
}

func (f *fakeVariants) Update(_ context.Context, id int64, in repository.VariantInput) error {
	f.add("update %d", id)
	f.last = &in
	return f.mutErr
}

func (f *fakeVariants) Delete(_ context.Context, id int64) error {
	f.add("delete %d", id)
	return f.mutErr
}

type fakeCategories struct {
	calls
	items  []entity.Category
	mutErr error
	last   *repository.CategoryInput
}

func (f *fakeCategories) List(context.Context) ([]entity.Category, error) {
	return f.items, nil
}

func (f *fakeCategories) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, &domain.RemoteError{Kind: domain.KindNotFound, Status: 404}
}

func (f *fakeCategories) Create(_ context.Context, in repository.CategoryInput) error {
	f.add("create %s", in.Name)
	f.last = &in
	return f.mutErr
}

func (f *fakeCategories) Update(_ context.Context, id int64, in repository.CategoryInput) error {
	f.add("update %d %s", id, in.Name)
	f.last = &in
	return f.mutErr
}

func (f *fakeCategories) Delete(_ context.Context, id int64) error {
	f.add("delete %d", id)
	return f.mutErr
}

type fakeSubcategories struct {
	calls
	items  []entity.Subcategory
	mutErr error
	last   *repository.SubcategoryInput
}

func (f *fakeSubcategories) List(context.Context) ([]entity.Subcategory, error) {
	return f.items, nil
}

func (f *fakeSubcategories) GetByID(_ context.Context, id int64) (*entity.Subcategory, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, &domain.RemoteError{Kind: domain.KindNotFound, Status: 404}
}

func (f *fakeSubcategories) Create(_ context.Context, in repository.SubcategoryInput) error {
	f.add("create %s", in.Name)
	f.last = &in
	return f.mutErr
}

func (f *fakeSubcategories) Update(_ context.Context, id int64, in repository.SubcategoryInput) error {
	f.add("update %d %s", id, in.Name)
	f.last = &in
	return f.mutErr
}

func (f *fakeSubcategories) Delete(_ context.Context, id int64) error {
	f.add("delete %d", id)
	return f.mutErr
}

type fakeBrands struct {
	calls
	items  []entity.Brand
	mutErr error
}

func (f *fakeBrands) List(context.Context) ([]entity.Brand, error) {
	return f.items, nil
}

func (f *fakeBrands) GetByID(_ context.Context, id int64) (*entity.Brand, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, &domain.RemoteError{Kind: domain.KindNotFound, Status: 404}
}

func (f *fakeBrands) Create(_ context.Context, in repository.CategoryInput) error {
	f.add("create %s", in.Name)
	return f.mutErr
}

func (f *fakeBrands) Update(_ context.Context, id int64, in repository.CategoryInput) error {
	f.add("update %d %s", id, in.Name)
	return f.mutErr
}

func (f *fakeBrands) Delete(_ context.Context, id int64) error {
	f.add("delete %d", id)
	return f.mutErr
}

// ─── Usuarios ─────────────────────────────────────────────────────────────────

type fakeUsers struct {
	calls
	me        *entity.User
	users     []entity.User
	mutErr    error
	lastUser  *repository.UserInput
	lastMe    *repository.ProfileInput
	updatedMe *entity.User
}

func (f *fakeUsers) Me(context.Context) (*entity.User, error) {
	f.add("me")
	return f.me, nil
}

func (f *fakeUsers) UpdateMe(_ context.Context, in repository.ProfileInput) (*entity.User, error) {
	f.add("update-me")
	f.lastMe = &in
	if f.mutErr != nil {
		return nil, f.mutErr
	}
	return f.updatedMe, nil
}

func (f *fakeUsers) List(context.Context) ([]entity.User, error) {
	f.add("list")
	return f.users, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	f.add("get %d", id)
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, &domain.RemoteError{Kind: domain.KindNotFound, Status: 404}
}

func (f *fakeUsers) Create(_ context.Context, in repository.UserInput) error {
	f.add("create")
	f.lastUser = &in
	return f.mutErr
}

func (f *fakeUsers) Update(_ context.Context, id int64, in repository.UserInput) error {
	f.add("update %d", id)
	f.lastUser = &in
	return f.mutErr
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	f.add("delete %d", id)
	return f.mutErr
}

// ─── Documentos ───────────────────────────────────────────────────────────────

type fakeDocs struct {
	calls
	err error
}

func (f *fakeDocs) SaleReceipt(_ context.Context, sale *entity.Sale) ([]byte, error) {
	f.add("receipt %d", sale.ID)
	return []byte("%PDF-receipt"), f.err
}

func (f *fakeDocs) SalesReport(_ context.Context, period string, _ *entity.SalesReport, _ *entity.CustomerStatistics) ([]byte, error) {
	f.add("report %s", period)
	return []byte("%PDF-report"), f.err
}
