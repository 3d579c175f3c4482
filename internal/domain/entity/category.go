package entity

// Ref referencia embebida {id, name} que la API incluye en productos y subcategorías.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category categoría de productos.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Subcategory subcategoría; siempre pertenece a una Category.
type Subcategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  int64  `json:"categoryId"`
	Category    *Ref   `json:"category,omitempty"`
}

// ParentID devuelve el id de la categoría, venga plano o embebido.
func (s *Subcategory) ParentID() int64 {
	if s.CategoryID != 0 {
		return s.CategoryID
	}
	if s.Category != nil {
		return s.Category.ID
	}
	return 0
}

// Brand marca de productos.
type Brand struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
