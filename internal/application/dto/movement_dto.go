package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=entry exit"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Notes     string `json:"notes" validate:"max=500"`
}

// MovementResponse salida de un movimiento. ProductName es "Producto desconocido" si el producto ya no existe.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Date        string    `json:"date"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementListResponse lista de movimientos en orden de almacenamiento.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}
