package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o reemplazar un producto (el formulario completo).
type ProductRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Category string          `json:"category" validate:"max=100"`
	Stock    int             `json:"stock" validate:"min=0"`
	MinStock int             `json:"min_stock" validate:"min=0"`
	Price    decimal.Decimal `json:"price"` // >= 0, se valida en el caso de uso
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"min_stock"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Critical  bool            `json:"critical"`
	Value     decimal.Decimal `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos en orden de almacenamiento.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
