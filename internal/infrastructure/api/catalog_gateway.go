package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

var (
	_ repository.CategoryRepository    = (*CategoryGateway)(nil)
	_ repository.SubcategoryRepository = (*SubcategoryGateway)(nil)
	_ repository.BrandRepository       = (*BrandGateway)(nil)
	_ repository.ProductRepository     = (*ProductGateway)(nil)
	_ repository.VariantRepository     = (*VariantGateway)(nil)
)

// CategoryGateway implementa CategoryRepository sobre /categories.
type CategoryGateway struct {
	res resource[entity.Category, repository.CategoryInput]
}

// NewCategoryGateway construye el gateway.
func NewCategoryGateway(c *Client) *CategoryGateway {
	return &CategoryGateway{res: resource[entity.Category, repository.CategoryInput]{c: c, path: "/categories"}}
}

func (g *CategoryGateway) List(ctx context.Context) ([]entity.Category, error) {
	return g.res.list(ctx, nil)
}

func (g *CategoryGateway) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return g.res.getByID(ctx, id)
}

func (g *CategoryGateway) Create(ctx context.Context, in repository.CategoryInput) error {
	return g.res.create(ctx, in)
}

func (g *CategoryGateway) Update(ctx context.Context, id int64, in repository.CategoryInput) error {
	return g.res.update(ctx, id, in)
}

func (g *CategoryGateway) Delete(ctx context.Context, id int64) error {
	return g.res.remove(ctx, id)
}

// SubcategoryGateway implementa SubcategoryRepository sobre /subcategories.
type SubcategoryGateway struct {
	res resource[entity.Subcategory, repository.SubcategoryInput]
}

// NewSubcategoryGateway construye el gateway.
func NewSubcategoryGateway(c *Client) *SubcategoryGateway {
	return &SubcategoryGateway{res: resource[entity.Subcategory, repository.SubcategoryInput]{c: c, path: "/subcategories"}}
}

func (g *SubcategoryGateway) List(ctx context.Context) ([]entity.Subcategory, error) {
	return g.res.list(ctx, nil)
}

func (g *SubcategoryGateway) GetByID(ctx context.Context, id int64) (*entity.Subcategory, error) {
	return g.res.getByID(ctx, id)
}

func (g *SubcategoryGateway) Create(ctx context.Context, in repository.SubcategoryInput) error {
	return g.res.create(ctx, in)
}

func (g *SubcategoryGateway) Update(ctx context.Context, id int64, in repository.SubcategoryInput) error {
	return g.res.update(ctx, id, in)
}

func (g *SubcategoryGateway) Delete(ctx context.Context, id int64) error {
	return g.res.remove(ctx, id)
}

// BrandGateway implementa BrandRepository sobre /brands.
type BrandGateway struct {
	res resource[entity.Brand, repository.CategoryInput]
}

// NewBrandGateway construye el gateway.
func NewBrandGateway(c *Client) *BrandGateway {
	return &BrandGateway{res: resource[entity.Brand, repository.CategoryInput]{c: c, path: "/brands"}}
}

func (g *BrandGateway) List(ctx context.Context) ([]entity.Brand, error) {
	return g.res.list(ctx, nil)
}

func (g *BrandGateway) GetByID(ctx context.Context, id int64) (*entity.Brand, error) {
	return g.res.getByID(ctx, id)
}

func (g *BrandGateway) Create(ctx context.Context, in repository.CategoryInput) error {
	return g.res.create(ctx, in)
}

func (g *BrandGateway) Update(ctx context.Context, id int64, in repository.CategoryInput) error {
	return g.res.update(ctx, id, in)
}

func (g *BrandGateway) Delete(ctx context.Context, id int64) error {
	return g.res.remove(ctx, id)
}

// ProductGateway implementa ProductRepository sobre /products.
type ProductGateway struct {
	res resource[entity.Product, repository.ProductInput]
}

// NewProductGateway construye el gateway.
func NewProductGateway(c *Client) *ProductGateway {
	return &ProductGateway{res: resource[entity.Product, repository.ProductInput]{c: c, path: "/products"}}
}

// List reenvía a la API solo los filtros presentes.
func (g *ProductGateway) List(ctx context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	q := url.Values{}
	setID(q, "brandId", f.BrandID)
	setID(q, "categoryId", f.CategoryID)
	setID(q, "subcategoryId", f.SubcategoryID)
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return g.res.list(ctx, q)
}

func (g *ProductGateway) ListDeleted(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	if err := g.res.c.get(ctx, "/products/deleted", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *ProductGateway) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return g.res.getByID(ctx, id)
}

func (g *ProductGateway) Create(ctx context.Context, in repository.ProductInput) error {
	in.Price = in.Price.Round(2)
	return g.res.create(ctx, in)
}

func (g *ProductGateway) Update(ctx context.Context, id int64, in repository.ProductInput) error {
	in.Price = in.Price.Round(2)
	return g.res.update(ctx, id, in)
}

// Delete baja lógica; el producto pasa a /products/deleted.
func (g *ProductGateway) Delete(ctx context.Context, id int64) error {
	return g.res.remove(ctx, id)
}

func (g *ProductGateway) Restore(ctx context.Context, id int64) error {
	return g.res.c.post(ctx, g.res.itemPath(id)+"/restore", nil, struct{}{}, nil)
}

// VariantGateway implementa VariantRepository sobre /variants.
type VariantGateway struct {
	res resource[entity.Variant, repository.VariantInput]
}

// NewVariantGateway construye el gateway.
func NewVariantGateway(c *Client) *VariantGateway {
	return &VariantGateway{res: resource[entity.Variant, repository.VariantInput]{c: c, path: "/variants"}}
}

func (g *VariantGateway) ListByProduct(ctx context.Context, productID int64) ([]entity.Variant, error) {
	q := url.Values{}
	setID(q, "productId", productID)
	return g.res.list(ctx, q)
}

func (g *VariantGateway) GetByID(ctx context.Context, id int64) (*entity.Variant, error) {
	return g.res.getByID(ctx, id)
}

func (g *VariantGateway) Create(ctx context.Context, in repository.VariantInput) error {
	return g.res.create(ctx, in)
}

// Update envía JSON, o multipart con color/size/stock/image si la edición trae imagen nueva.
func (g *VariantGateway) Update(ctx context.Context, id int64, in repository.VariantInput) error {
	if in.Image == nil {
		return g.res.update(ctx, id, in)
	}
	fields := [][2]string{
		{"color", in.Color},
		{"size", in.Size},
		{"stock", strconv.Itoa(in.Stock)},
	}
	file := &FilePart{Field: "image", Filename: in.Image.Filename, ContentType: in.Image.ContentType, Data: in.Image.Data}
	return g.res.c.DoMultipart(ctx, http.MethodPut, g.res.itemPath(id), fields, file, nil)
}

func (g *VariantGateway) Delete(ctx context.Context, id int64) error {
	return g.res.remove(ctx, id)
}

func setID(q url.Values, key string, id int64) {
	if id != 0 {
		q.Set(key, strconv.FormatInt(id, 10))
	}
}
