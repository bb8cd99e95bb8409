package inventory

import (
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
)

// ApplyMovement aplica el movimiento al stock del producto: entry suma, exit resta.
// No hay piso en cero; una salida mayor que el stock deja el producto en negativo.
func ApplyMovement(product *entity.Product, movement *entity.Movement) {
	product.Stock += movement.Delta()
}
