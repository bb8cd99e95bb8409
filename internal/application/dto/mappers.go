package dto

import (
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
)

// UnknownProductName nombre mostrado para movimientos cuyo producto fue eliminado.
const UnknownProductName = "Producto desconocido"

// NewProductResponse mapea la entidad a la salida HTTP.
func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Critical:  p.IsCritical(),
		Value:     p.Value(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewProductList mapea una lista de entidades conservando el orden.
func NewProductList(list []*entity.Product) []ProductResponse {
	items := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *NewProductResponse(p))
	}
	return items
}

// NewMovementResponse mapea el movimiento; names resuelve productID -> nombre.
func NewMovementResponse(m *entity.Movement, names map[string]string) MovementResponse {
	name, ok := names[m.ProductID]
	if !ok {
		name = UnknownProductName
	}
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: name,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Date:        m.Date.Format(entity.DateLayout),
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
}

// ProductNames construye el índice id -> nombre usado al listar movimientos.
func ProductNames(products []*entity.Product) map[string]string {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names
}
