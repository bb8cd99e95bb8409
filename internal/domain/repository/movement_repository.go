package repository

import (
	"context"

	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos. No hay Update ni Delete:
// los movimientos son inmutables.
type MovementRepository interface {
	// Create persiste el movimiento; si ID está vacío el adaptador lo asigna.
	Create(ctx context.Context, movement *entity.Movement) error
	// List devuelve todos los movimientos en orden de almacenamiento.
	List(ctx context.Context) ([]*entity.Movement, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
}
