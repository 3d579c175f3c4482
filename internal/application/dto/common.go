package dto

// ListQuery parámetros de listado del panel (query string).
type ListQuery struct {
	Page          int    `query:"page"`
	Search        string `query:"q"`
	CategoryID    int64  `query:"category"`
	SubcategoryID int64  `query:"subcategory"`
	BrandID       int64  `query:"brand"`
	Role          string `query:"role"`
}

// DefaultPage aplica valores por defecto.
func (q *ListQuery) DefaultPage() {
	if q.Page <= 0 {
		q.Page = 1
	}
}

// ErrorResponse cuerpo de error HTTP de los endpoints JSON.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
