package dto

import (
	"github.com/jhoicas/megastore-web/internal/application/validation"
)

const msgCategoryName = "Por favor, completa el campo de nombre."

// ProductForm alta/edición de producto. Price llega como texto y se valida antes de convertirlo.
type ProductForm struct {
	Price         string `form:"price" validate:"required,price"`
	Name          string `form:"name" validate:"required,min=2,max=50"`
	Description   string `form:"description" validate:"max=128"`
	CategoryID    int64  `form:"category_id" validate:"required"`
	SubcategoryID int64  `form:"subcategory_id" validate:"required"`
	BrandID       int64  `form:"brand_id" validate:"required"`
}

func (ProductForm) Messages() validation.Messages {
	return validation.Messages{
		Required: msgRequiredFields,
		Rules: map[string]string{
			"Price.price":     "El precio debe ser un número positivo con hasta dos decimales.",
			"Name.min":        "El nombre del producto debe tener al menos 2 caracteres.",
			"Name.max":        "El nombre del producto no puede tener más de 50 caracteres.",
			"Description.max": "La descripción del producto no puede tener más de 128 caracteres.",
		},
	}
}

// CategoryForm alta/edición de categoría.
type CategoryForm struct {
	Name        string `form:"name" validate:"required,nonblank,max=30"`
	Description string `form:"description" validate:"max=255"`
}

func (CategoryForm) Messages() validation.Messages {
	return validation.Messages{
		Required: msgCategoryName,
		Rules: map[string]string{
			"Name.nonblank":   "El nombre de la categoría no puede estar vacío.",
			"Name.max":        "El nombre de la categoría no puede exceder los 30 caracteres.",
			"Description.max": "La descripción no puede exceder los 255 caracteres.",
		},
	}
}

// BrandForm alta/edición de marca.
type BrandForm struct {
	Name        string `form:"name" validate:"required,nonblank,max=30"`
	Description string `form:"description" validate:"max=255"`
}

func (BrandForm) Messages() validation.Messages {
	return validation.Messages{
		Required: msgCategoryName,
		Rules: map[string]string{
			"Name.nonblank":   "El nombre de la marca no puede estar vacío.",
			"Name.max":        "El nombre de la marca no puede exceder los 30 caracteres.",
			"Description.max": "La descripción no puede exceder los 255 caracteres.",
		},
	}
}

// SubcategoryForm alta/edición de subcategoría.
type SubcategoryForm struct {
	Name        string `form:"name" validate:"required,nonblank,max=30"`
	Description string `form:"description" validate:"max=128"`
	CategoryID  int64  `form:"category_id" validate:"required"`
}

func (SubcategoryForm) Messages() validation.Messages {
	return validation.Messages{
		Required: msgCategoryName,
		Rules: map[string]string{
			"Name.nonblank":       "El nombre no puede estar vacío.",
			"Name.max":            "El nombre no puede exceder los 30 caracteres.",
			"Description.max":     "La descripción no puede exceder los 128 caracteres.",
			"CategoryID.required": "Por favor, selecciona una categoría.",
		},
	}
}

// VariantForm alta/edición de variante. Stock llega como texto.
type VariantForm struct {
	Color    string `form:"color" validate:"required"`
	Size     string `form:"size" validate:"required"`
	Stock    string `form:"stock" validate:"required,stock"`
	// ImageURL imagen actual; sólo se muestra, la nueva llega como archivo "image".
	ImageURL string `form:"-"`
}

func (VariantForm) Messages() validation.Messages {
	return validation.Messages{
		Required: msgRequiredFields,
		Rules: map[string]string{
			"Stock.stock": "El stock debe ser un número entero no negativo.",
		},
	}
}
