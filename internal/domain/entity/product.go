package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario. Stock se modifica por edición directa o vía movimientos.
type Product struct {
	ID          string
	Name        string
	Category    string
	Stock       int
	MinStock    int             // umbral: Stock <= MinStock marca el producto como crítico
	Price       decimal.Decimal // precio unitario
	ImageURL    string          // vacío si no tiene imagen
	ImageObject string          // nombre del objeto en el almacenamiento de imágenes
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsCritical indica stock en o por debajo del mínimo (la igualdad cuenta como crítico).
func (p *Product) IsCritical() bool {
	return p.Stock <= p.MinStock
}

// Value devuelve stock * precio.
func (p *Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}
